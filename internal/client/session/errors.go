package session

import "errors"

var (
	// ErrOperationInProgress rejects a login or register started while
	// another one is still waiting on the server.
	ErrOperationInProgress = errors.New("authentication already in progress")
	ErrAlreadyRestored     = errors.New("session already restored")
	// ErrSuperseded is returned by a login or register whose result
	// arrived after a Logout. The result is dropped.
	ErrSuperseded = errors.New("authentication superseded by logout")
)
