package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ToggleSave(ctx context.Context, userID, postID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_posts WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saved_posts (user_id, post_id, created_at) VALUES ($1, $2, $3)`, userID, postID, at)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *PostgresRepository) IsSaved(ctx context.Context, userID, postID string) (bool, error) {
	var saved bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_posts WHERE user_id = $1 AND post_id = $2)`,
		userID, postID).Scan(&saved)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return saved, nil
}

func (r *PostgresRepository) ids(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) SavedPostIDs(ctx context.Context, userID string) ([]string, error) {
	return r.ids(ctx, `SELECT post_id FROM saved_posts WHERE user_id = $1 ORDER BY created_at`, userID)
}

func (r *PostgresRepository) CountSaved(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_posts WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Report(ctx context.Context, userID, postID, reason string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO post_reports (user_id, post_id, reason, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, post_id) DO UPDATE SET reason = EXCLUDED.reason, created_at = EXCLUDED.created_at`,
		userID, postID, reason, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ReportedPostIDs(ctx context.Context, userID string) ([]string, error) {
	return r.ids(ctx, `SELECT post_id FROM post_reports WHERE user_id = $1`, userID)
}

func (r *PostgresRepository) Reports(ctx context.Context) ([]Report, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, post_id, reason, created_at FROM post_reports ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		var rep Report
		if err := rows.Scan(&rep.UserID, &rep.PostID, &rep.Reason, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
