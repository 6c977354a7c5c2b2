package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/dbx"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Balance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM credit_balances WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return balance, nil
}

func (r *PostgresRepository) AddToBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	query :=
		`INSERT INTO credit_balances (user_id, balance) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET balance = credit_balances.balance + EXCLUDED.balance
		 RETURNING balance`

	var balance int64
	if err := r.db.QueryRowContext(ctx, query, userID, delta).Scan(&balance); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return balance, nil
}

func (r *PostgresRepository) SetBalance(ctx context.Context, userID string, value int64) (int64, error) {
	var previous int64
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM credit_balances WHERE user_id = $1 FOR UPDATE`, userID).Scan(&previous)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("db error: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO credit_balances (user_id, balance) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET balance = EXCLUDED.balance`, userID, value)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return previous, nil
}

func (r *PostgresRepository) InsertTransaction(ctx context.Context, t *models.CreditTransaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credit_transactions (id, user_id, amount, reason, kind, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.Amount, t.Reason, string(t.Kind), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID string) ([]models.CreditTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount, reason, kind, created_at
		 FROM credit_transactions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.CreditTransaction
	for rows.Next() {
		var (
			t    models.CreditTransaction
			kind string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Reason, &kind, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		t.Kind = models.TransactionKind(kind)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) sum(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) SumSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	return r.sum(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM credit_transactions WHERE user_id = $1 AND created_at >= $2`,
		userID, since)
}

func (r *PostgresRepository) TotalIssued(ctx context.Context) (int64, error) {
	return r.sum(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM credit_transactions WHERE kind = 'award' AND amount > 0`)
}

func (r *PostgresRepository) ClaimDaily(ctx context.Context, userID string, day time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_claims (user_id, day) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, day)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) Balances(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, balance FROM credit_balances`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var (
			id      string
			balance int64
		)
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out[id] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
