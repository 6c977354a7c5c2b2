package repomanager

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/cryptox"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	servermodels "github.com/dmitrijs2005/creatorhub/internal/server/models"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/feed"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/ledger"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/users"
)

// MemoryRepositoryManager serves in-process repositories. WithTx
// serialises transactional work behind one mutex; changes are not rolled
// back when fn fails.
type MemoryRepositoryManager struct {
	txMu  sync.Mutex
	repos Repositories
}

func NewMemoryRepositoryManager(u users.Repository, l ledger.Repository, f feed.Repository) *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repos: Repositories{Users: u, Ledger: l, Feed: f}}
}

// DemoPassword is the password of every seeded demo account.
const DemoPassword = "password"

// NewSeededMemoryRepositoryManager returns a manager pre-loaded with the demo
// accounts, balances and transaction history, all relative to now.
func NewSeededMemoryRepositoryManager(now time.Time) (*MemoryRepositoryManager, error) {
	hash, err := cryptox.HashPassword([]byte(DemoPassword))
	if err != nil {
		return nil, err
	}

	account := func(id, username, email, role string, completed bool, age, lastLogin time.Duration) *servermodels.Account {
		return &servermodels.Account{
			ID:               id,
			Username:         username,
			Email:            email,
			PasswordHash:     hash,
			Role:             role,
			ProfileCompleted: completed,
			CreatedAt:        now.Add(-age),
			LastLoginAt:      now.Add(-lastLogin),
		}
	}
	day := 24 * time.Hour

	u := users.NewMemoryRepository(
		account("user-1", "regularuser", "user@example.com", common.RoleUser, true, 30*day, 2*time.Hour),
		account("admin-1", "admin", "admin@example.com", common.RoleAdmin, true, 60*day, time.Hour),
		account("user-2", "newcreator", "newcreator@example.com", common.RoleUser, false, 2*day, 12*time.Hour),
		account("user-3", "contentmaker", "contentmaker@example.com", common.RoleUser, true, 15*day, 6*time.Hour),
	)

	l := ledger.NewMemoryRepository(
		map[string]int64{"user-1": 100, "admin-1": 500, "user-2": 25, "user-3": 75},
		models.CreditTransaction{ID: "ct1", UserID: "user-1", Amount: 10, Reason: "Daily login", Kind: models.KindAward, CreatedAt: now.Add(-day)},
		models.CreditTransaction{ID: "ct2", UserID: "user-1", Amount: 5, Reason: "Shared post", Kind: models.KindAward, CreatedAt: now.Add(-2 * time.Hour)},
		models.CreditTransaction{ID: "ct3", UserID: "user-1", Amount: 15, Reason: "Completed profile", Kind: models.KindAward, CreatedAt: now.Add(-3 * day)},
	)

	return NewMemoryRepositoryManager(u, l, feed.NewMemoryRepository()), nil
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Users() users.Repository             { return m.repos.Users }
func (m *MemoryRepositoryManager) Ledger() ledger.Repository           { return m.repos.Ledger }
func (m *MemoryRepositoryManager) Feed() feed.Repository               { return m.repos.Feed }
func (m *MemoryRepositoryManager) Close() error                        { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.repos)
}
