package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/creatorhub/internal/client/client"
)

// fail reports a backend error. An auth rejection means the restored token
// is no longer good, so the session is dropped.
func (a *App) fail(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.session.Logout(ctx)
		printlnFn("Session expired, please log in again")
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		printlnFn("Server unavailable, try again later")
	case errors.Is(err, client.ErrForbidden):
		printlnFn("Admin only")
	case errors.Is(err, client.ErrAlreadyClaimed):
		printlnFn("Already claimed")
	case errors.Is(err, client.ErrNotFound):
		printlnFn("Not found")
	case errors.Is(err, client.ErrInvalidArgument):
		printlnFn("Invalid input: " + err.Error())
	default:
		printlnFn("Error: " + err.Error())
	}
	return err
}
