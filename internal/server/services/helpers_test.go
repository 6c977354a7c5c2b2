package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	servermodels "github.com/dmitrijs2005/creatorhub/internal/server/models"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/feed"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/ledger"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/users"
)

var fixedNow = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fixture struct {
	users  *users.MemoryRepository
	ledger *ledger.MemoryRepository
	feed   *feed.MemoryRepository
	repos  *repomanager.MemoryRepositoryManager
}

func newFixture(t *testing.T, accounts ...*servermodels.Account) *fixture {
	t.Helper()
	f := &fixture{
		users:  users.NewMemoryRepository(accounts...),
		ledger: ledger.NewMemoryRepository(nil),
		feed:   feed.NewMemoryRepository(),
	}
	f.repos = repomanager.NewMemoryRepositoryManager(f.users, f.ledger, f.feed)
	return f
}

func (f *fixture) ledgerService() *LedgerService {
	s := NewLedgerService(f.repos, logging.Nop{})
	s.now = clock
	return s
}

func (f *fixture) feedService(signer ...func(string) (string, error)) *FeedService {
	var sg fakeSigner
	if len(signer) > 0 {
		sg.fn = signer[0]
	}
	s := NewFeedService(f.repos, feed.NewCatalog(fixedNow), &sg, logging.Nop{})
	s.now = clock
	return s
}

func (f *fixture) userService() *UserService {
	s := NewUserService(f.repos, "test-secret", 0, logging.Nop{})
	s.now = clock
	return s
}

func account(id, role string) *servermodels.Account {
	return &servermodels.Account{
		ID:          id,
		Username:    "name-" + id,
		Email:       id + "@example.com",
		Role:        role,
		CreatedAt:   fixedNow.Add(-48 * time.Hour),
		LastLoginAt: fixedNow.Add(-time.Hour),
	}
}

type fakeSigner struct {
	fn    func(string) (string, error)
	calls []string
}

func (s *fakeSigner) Resolve(_ context.Context, ref string) (string, error) {
	s.calls = append(s.calls, ref)
	if s.fn == nil {
		return ref, nil
	}
	return s.fn(ref)
}

// failingLedger lets InsertTransaction fail on demand.
type failingLedger struct {
	*ledger.MemoryRepository
	insertErr error
}

func (l *failingLedger) InsertTransaction(ctx context.Context, t *models.CreditTransaction) error {
	if l.insertErr != nil {
		return l.insertErr
	}
	return l.MemoryRepository.InsertTransaction(ctx, t)
}

var errBoom = errors.New("boom")
