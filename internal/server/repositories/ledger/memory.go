package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps the ledger in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	balances map[string]int64
	txs      []models.CreditTransaction
	claims   map[string]struct{}
}

func NewMemoryRepository(balances map[string]int64, txs ...models.CreditTransaction) *MemoryRepository {
	r := &MemoryRepository{
		balances: make(map[string]int64, len(balances)),
		txs:      append([]models.CreditTransaction(nil), txs...),
		claims:   make(map[string]struct{}),
	}
	for id, b := range balances {
		r.balances[id] = b
	}
	return r
}

func (r *MemoryRepository) Balance(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.balances[userID], nil
}

func (r *MemoryRepository) AddToBalance(_ context.Context, userID string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[userID] += delta
	return r.balances[userID], nil
}

func (r *MemoryRepository) SetBalance(_ context.Context, userID string, value int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous := r.balances[userID]
	r.balances[userID] = value
	return previous, nil
}

func (r *MemoryRepository) InsertTransaction(_ context.Context, t *models.CreditTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	r.txs = append(r.txs, *t)
	return nil
}

func (r *MemoryRepository) ListTransactions(_ context.Context, userID string) ([]models.CreditTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.CreditTransaction
	for _, t := range r.txs {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) SumSince(_ context.Context, userID string, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, t := range r.txs {
		if t.UserID == userID && !t.CreatedAt.Before(since) {
			total += t.Amount
		}
	}
	return total, nil
}

func (r *MemoryRepository) TotalIssued(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, t := range r.txs {
		if t.Kind == models.KindAward && t.Amount > 0 {
			total += t.Amount
		}
	}
	return total, nil
}

func (r *MemoryRepository) ClaimDaily(_ context.Context, userID string, day time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userID + "|" + day.UTC().Format(time.DateOnly)
	if _, ok := r.claims[key]; ok {
		return false, nil
	}
	r.claims[key] = struct{}{}
	return true, nil
}

func (r *MemoryRepository) Balances(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(r.balances))
	for id, b := range r.balances {
		out[id] = b
	}
	return out, nil
}
