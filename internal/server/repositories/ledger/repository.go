// Package ledger stores credit balances, the append-only transaction log
// and daily bonus claims.
package ledger

import (
	"context"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/models"
)

// Repository is the storage behind the Ledger Store. Compound operations
// (balance change plus log entry) are made atomic by the caller running
// them inside one repomanager transaction.
type Repository interface {
	// Balance returns 0 for a user without a balance row.
	Balance(ctx context.Context, userID string) (int64, error)
	// AddToBalance increments the balance by delta and returns the result.
	AddToBalance(ctx context.Context, userID string, delta int64) (int64, error)
	// SetBalance overwrites the balance and returns the previous value.
	SetBalance(ctx context.Context, userID string, value int64) (int64, error)
	InsertTransaction(ctx context.Context, t *models.CreditTransaction) error
	// ListTransactions returns the user's transactions newest first.
	ListTransactions(ctx context.Context, userID string) ([]models.CreditTransaction, error)
	SumSince(ctx context.Context, userID string, since time.Time) (int64, error)
	// TotalIssued sums every positive award across all users.
	TotalIssued(ctx context.Context) (int64, error)
	// ClaimDaily records a claim for the given day and reports whether it
	// was the first one.
	ClaimDaily(ctx context.Context, userID string, day time.Time) (bool, error)
	Balances(ctx context.Context) (map[string]int64, error)
}
