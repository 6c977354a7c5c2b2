// Package session owns the client's authentication state: who is logged
// in, with which token, and whether a login is under way. It persists the
// authenticated session in a local store and restores it at start-up
// without asking the server (trust-on-read).
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/dmitrijs2005/creatorhub/internal/client/client"
	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/models"
)

const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
)

// Authenticator exchanges credentials for a session and looks up the user
// behind a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// SnapshotStore persists the session between runs. Get on an absent key
// returns common.ErrorNotFound.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Manager struct {
	api    Authenticator
	store  SnapshotStore
	logger logging.Logger

	mu       sync.Mutex
	state    State
	inFlight bool
	restored bool
	// gen is bumped by Logout. An authentication started under an older
	// generation must not touch the state.
	gen uint64

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

func NewManager(api Authenticator, store SnapshotStore, logger logging.Logger) *Manager {
	return &Manager{
		api:    api,
		store:  store,
		logger: logger.With("module", "session"),
		state:  State{Phase: PhaseInitializing, IsLoading: true},
		subs:   map[int]func(State){},
	}
}

// State returns a copy of the current session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// CheckAuth reports whether a user and token are present. It does no I/O.
func (m *Manager) CheckAuth() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsAuthenticated()
}

// Token returns the current bearer token, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Token
}

// Subscribe registers fn to receive the state after every transition.
// Calling the returned func stops delivery.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *Manager) notify(s State) {
	m.subMu.Lock()
	fns := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(s.clone())
	}
}

// Restore adopts the persisted snapshot, if any. An unreadable snapshot is
// deleted. Only the first call has an effect.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	if m.restored {
		m.mu.Unlock()
		return ErrAlreadyRestored
	}
	m.restored = true

	if snap := m.readSnapshot(ctx); snap != nil {
		m.state.User = snap.User
		m.state.Token = snap.Token
	}
	m.state.IsLoading = false
	m.state.Phase = m.state.settledPhase()
	s := m.state.clone()
	m.mu.Unlock()

	m.logger.Debug(ctx, "session restored", "phase", s.Phase.String())
	m.notify(s)
	return nil
}

// readSnapshot must be called with mu held.
func (m *Manager) readSnapshot(ctx context.Context) *Snapshot {
	data, err := m.store.Get(ctx, SnapshotKey)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			m.logger.Warn(ctx, "snapshot read failed", "error", err)
		}
		return nil
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		m.logger.Warn(ctx, "discarding unreadable snapshot", "error", err)
		m.deleteSnapshot(ctx)
		return nil
	}
	return snap
}

// deleteSnapshot must be called with mu held.
func (m *Manager) deleteSnapshot(ctx context.Context) {
	if err := m.store.Delete(ctx, SnapshotKey); err != nil {
		m.logger.Error(ctx, "snapshot delete failed", "error", err)
	}
}

// writeSnapshot must be called with mu held.
func (m *Manager) writeSnapshot(ctx context.Context, s Snapshot) {
	data, err := json.Marshal(s)
	if err == nil {
		err = m.store.Set(ctx, SnapshotKey, data)
	}
	if err != nil {
		m.logger.Error(ctx, "snapshot write failed", "error", err)
	}
}

// Login authenticates with email and password. On failure the previous
// user and token stay in place and Error carries the server's message.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, msgLoginFailed, func(ctx context.Context) (*models.AuthResponse, error) {
		return m.api.Login(ctx, email, password)
	})
}

// Register creates an account and authenticates with it.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	return m.authenticate(ctx, msgRegisterFailed, func(ctx context.Context) (*models.AuthResponse, error) {
		return m.api.Register(ctx, username, email, password)
	})
}

func (m *Manager) authenticate(ctx context.Context, fallback string, call func(context.Context) (*models.AuthResponse, error)) error {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return ErrOperationInProgress
	}
	m.inFlight = true
	gen := m.gen
	m.state.IsLoading = true
	m.state.Error = ""
	m.state.Phase = PhaseAuthenticating
	s := m.state.clone()
	m.mu.Unlock()
	m.notify(s)

	resp, err := call(ctx)
	if err == nil && (resp == nil || resp.User == nil || resp.Token == "") {
		err = client.ErrMalformedResponse
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		m.logger.Info(ctx, "authentication result dropped after logout")
		return ErrSuperseded
	}
	m.inFlight = false
	m.state.IsLoading = false
	if err != nil {
		m.state.Error = fallback
		if msg, ok := client.ServerMessage(err); ok {
			m.state.Error = msg
		}
		m.state.Phase = m.state.settledPhase()
	} else {
		m.state.User = resp.User
		m.state.Token = resp.Token
		m.state.Phase = PhaseAuthenticated
		m.writeSnapshot(ctx, Snapshot{User: resp.User, Token: resp.Token})
	}
	s = m.state.clone()
	m.mu.Unlock()
	m.notify(s)

	if err != nil {
		m.logger.Info(ctx, "authentication failed", "error", err)
		return err
	}
	m.logger.Info(ctx, "authenticated", "user_id", s.User.ID)
	return nil
}

// Refresh replaces the session user with the server's current copy and
// rewrites the snapshot. Restore trusts the stored user, so this is how a
// caller picks up balance or profile changes. A token the server rejects
// ends the session. Logged out, it does nothing.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if !m.state.IsAuthenticated() {
		m.mu.Unlock()
		return nil
	}
	token, gen := m.state.Token, m.gen
	m.mu.Unlock()

	user, err := m.api.Me(ctx, token)
	if err == nil && user == nil {
		err = client.ErrMalformedResponse
	}

	m.mu.Lock()
	if m.gen != gen || m.state.Token != token {
		m.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		if !errors.Is(err, client.ErrUnauthorized) {
			m.mu.Unlock()
			return err
		}
		m.logger.Info(ctx, "stored token rejected", "error", err)
		s := m.logoutLocked(ctx)
		m.mu.Unlock()
		m.notify(s)
		return err
	}
	m.state.User = user
	m.writeSnapshot(ctx, Snapshot{User: user, Token: token})
	s := m.state.clone()
	m.mu.Unlock()

	m.notify(s)
	return nil
}

// Logout forgets the user and token and deletes the snapshot. It never
// fails and may be called any number of times. A login or register still
// waiting on the server is abandoned: its result will be dropped and a new
// one may start right away.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	s := m.logoutLocked(ctx)
	m.mu.Unlock()

	m.notify(s)
}

// logoutLocked must be called with mu held.
func (m *Manager) logoutLocked(ctx context.Context) State {
	m.gen++
	m.inFlight = false
	m.state.User = nil
	m.state.Token = ""
	m.state.Error = ""
	m.state.IsLoading = false
	m.state.Phase = PhaseLoggedOut
	m.deleteSnapshot(ctx)
	return m.state.clone()
}
