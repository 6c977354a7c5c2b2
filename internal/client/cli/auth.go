package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/creatorhub/internal/client/client"
	"github.com/dmitrijs2005/creatorhub/internal/client/session"
	"github.com/dmitrijs2005/creatorhub/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password and signs up. The
// session is authenticated on success.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, username, email, string(password)); err != nil {
		a.reportAuthFailure(err)
		return err
	}

	user := a.session.State().User
	printlnFn(fmt.Sprintf("Welcome, %s! You have %d credits.", user.Username, user.Credits))
	return nil
}

// Login prompts for email and password.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		a.reportAuthFailure(err)
		return err
	}

	user := a.session.State().User
	printlnFn(fmt.Sprintf("Logged in as %s (%s)", user.Username, user.Role))
	a.checkOnline(ctx)
	return nil
}

func (a *App) reportAuthFailure(err error) {
	switch {
	case errors.Is(err, session.ErrOperationInProgress):
		printlnFn("Another login is in progress")
		return
	case errors.Is(err, session.ErrSuperseded):
		printlnFn("Login cancelled by logout")
		return
	}
	printlnFn("Error: " + a.session.State().Error)
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// Whoami refreshes the session user from the server and prints it. When
// the server cannot be reached the saved copy is shown instead.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	if err := a.session.Refresh(ctx); err != nil {
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			printlnFn("Session expired, please log in again")
			return err
		case errors.Is(err, client.ErrUnavailable):
			a.setMode(ModeOffline)
			printlnFn("Server unavailable, showing saved profile")
		default:
			printlnFn("Error: " + err.Error())
			return err
		}
	}

	u := a.session.State().User
	printlnFn(fmt.Sprintf("%s <%s> id=%s role=%s credits=%d member since %s",
		u.Username, u.Email, u.ID, u.Role, u.Credits, u.CreatedAt.Format("2006-01-02")))
	return nil
}
