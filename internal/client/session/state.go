package session

import "github.com/dmitrijs2005/creatorhub/internal/models"

type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseLoggedOut
	PhaseAuthenticating
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseLoggedOut:
		return "logged out"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is a point-in-time view of the session. Error holds the message of
// the last failed login or register and is cleared when a new one starts.
type State struct {
	User      *models.User
	Token     string
	IsLoading bool
	Error     string
	Phase     Phase
}

// IsAuthenticated is derived, never stored.
func (s State) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// settledPhase is the phase implied by the credentials alone.
func (s State) settledPhase() Phase {
	if s.IsAuthenticated() {
		return PhaseAuthenticated
	}
	return PhaseLoggedOut
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
