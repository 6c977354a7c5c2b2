package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_ToggleSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	now := time.Now()

	saved, err := r.ToggleSave(ctx, "u1", "t1", now)
	require.NoError(t, err)
	assert.True(t, saved)

	_, err = r.ToggleSave(ctx, "u1", "r2", now.Add(-time.Minute))
	require.NoError(t, err)

	ids, err := r.SavedPostIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "t1"}, ids)

	saved, err = r.ToggleSave(ctx, "u1", "t1", now)
	require.NoError(t, err)
	assert.False(t, saved)

	isSaved, err := r.IsSaved(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.False(t, isSaved)

	n, err := r.CountSaved(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.CountSaved(ctx, "u2")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryRepository_ReportReplaces(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	now := time.Now()

	require.NoError(t, r.Report(ctx, "u1", "r3", "spam", now))
	require.NoError(t, r.Report(ctx, "u1", "r3", "abuse", now.Add(time.Second)))
	require.NoError(t, r.Report(ctx, "u2", "t4", "off-topic", now.Add(-time.Hour)))

	ids, err := r.ReportedPostIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, ids)

	reps, err := r.Reports(ctx)
	require.NoError(t, err)
	require.Len(t, reps, 2)
	assert.Equal(t, "t4", reps[0].PostID)
	assert.Equal(t, "abuse", reps[1].Reason)
}
