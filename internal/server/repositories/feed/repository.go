// Package feed stores per-user saved and reported posts and holds the
// read-only content catalog they refer to.
package feed

import (
	"context"
	"time"
)

// Report is one user's report of one post.
type Report struct {
	UserID    string
	PostID    string
	Reason    string
	CreatedAt time.Time
}

type Repository interface {
	// ToggleSave flips the saved flag and returns the new value.
	ToggleSave(ctx context.Context, userID, postID string, at time.Time) (bool, error)
	IsSaved(ctx context.Context, userID, postID string) (bool, error)
	// SavedPostIDs returns post ids in the order they were saved.
	SavedPostIDs(ctx context.Context, userID string) ([]string, error)
	CountSaved(ctx context.Context, userID string) (int, error)
	// Report records or replaces the user's report for the post.
	Report(ctx context.Context, userID, postID, reason string, at time.Time) error
	ReportedPostIDs(ctx context.Context, userID string) ([]string, error)
	// Reports returns every report, oldest first.
	Reports(ctx context.Context) ([]Report, error)
}
