// Package cli is the interactive CreatorHub terminal client. It restores
// the saved session, then reads commands until exit. Auth commands go
// through the session manager; credit and feed commands call the backend
// directly with the session token.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/creatorhub/internal/client/client"
	"github.com/dmitrijs2005/creatorhub/internal/client/config"
	"github.com/dmitrijs2005/creatorhub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/creatorhub/internal/client/session"
	"github.com/dmitrijs2005/creatorhub/internal/filex"
	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Backend is the ledger and feed surface the commands use.
type Backend interface {
	Ping(ctx context.Context) error
	GetCredits(ctx context.Context) (int64, error)
	GetTransactions(ctx context.Context) ([]models.CreditTransaction, error)
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	ClaimDailyBonus(ctx context.Context) (int64, error)
	CompleteProfile(ctx context.Context) (int64, error)
	AdjustUserCredits(ctx context.Context, userID string, credits int64) (*models.CreditTransaction, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetAdminStats(ctx context.Context) (*models.AdminStats, error)
	FetchFeed(ctx context.Context, sources ...models.FeedSource) ([]models.FeedItem, error)
	ToggleSave(ctx context.Context, postID string) (bool, error)
	GetSaved(ctx context.Context) ([]models.FeedItem, error)
	Report(ctx context.Context, postID, reason string) error
	Share(ctx context.Context, postID string) (string, error)
	GetReported(ctx context.Context) ([]models.ReportedPost, error)
}

type App struct {
	session *session.Manager
	backend Backend
	reader  *bufio.Reader
	Mode    Mode
	closers []func() error
}

func newApp(s *session.Manager, b Backend, reader *bufio.Reader) *App {
	return &App{session: s, backend: b, reader: reader}
}

// NewApp opens the local store under the data directory and wires the
// session manager and the backend client.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(logging.BackendSlog, c.LogLevel, os.Stderr)

	dir, err := filex.EnsureDataDir(c.DataDir)
	if err != nil {
		return nil, err
	}
	db, err := client.OpenDatabase(ctx, filepath.Join(dir, c.DBFile))
	if err != nil {
		return nil, fmt.Errorf("local database: %w", err)
	}

	auth := client.NewAuthClient(c.BaseURL, c.RequestTimeout)
	s := session.NewManager(auth, metadata.NewSQLiteRepository(db), logger)

	backend, err := client.NewGRPCClient(c.GRPCAddr, s.Token, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(s, backend, bufio.NewReader(os.Stdin))
	a.closers = []func() error{backend.Close, db.Close}
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn(fmt.Sprintf("Switched to %s mode", mode))
	}
}

// checkOnline pings the backend and records the result in Mode.
func (a *App) checkOnline(ctx context.Context) {
	if err := a.backend.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) isLoggedIn() bool {
	return a.session.CheckAuth()
}

func (a *App) isAdmin() bool {
	return a.session.State().User.IsAdmin()
}

func (a *App) status() string {
	s := a.session.State()
	label := string(a.Mode)
	if s.User != nil {
		label = s.User.Username + " " + label
	}
	if label == "" {
		return ""
	}
	return "(" + label + ")"
}

// Run restores the session and serves the REPL on stdin until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.session.Restore(ctx); err != nil {
		return err
	}
	printlnFn("Welcome to CreatorHub CLI (type 'help' for commands)")
	a.checkOnline(ctx)
	if a.isLoggedIn() {
		printlnFn("Welcome back, " + a.session.State().User.Username)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}
