package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestToggleSave_Saves(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM saved_posts WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs("u1", "t1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO saved_posts \(user_id, post_id, created_at\)`).
		WithArgs("u1", "t1", at).WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.ToggleSave(context.Background(), "u1", "t1", at)
	require.NoError(t, err)
	assert.True(t, saved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleSave_Unsaves(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM saved_posts`).
		WithArgs("u1", "t1").WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.ToggleSave(context.Background(), "u1", "t1", time.Now())
	require.NoError(t, err)
	assert.False(t, saved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleSave_DeleteError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM saved_posts`).WillReturnError(errors.New("boom"))

	_, err := repo.ToggleSave(context.Background(), "u1", "t1", time.Now())
	assert.ErrorContains(t, err, "db error: boom")
}

func TestIsSavedAndCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM saved_posts`).
		WithArgs("u1", "t1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM saved_posts WHERE user_id = \$1`).
		WithArgs("u1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	saved, err := repo.IsSaved(context.Background(), "u1", "t1")
	require.NoError(t, err)
	assert.True(t, saved)

	n, err := repo.CountSaved(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSavedPostIDs(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT post_id FROM saved_posts WHERE user_id = \$1 ORDER BY created_at`).
		WithArgs("u1").WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow("r2").AddRow("t1"))

	ids, err := repo.SavedPostIDs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "t1"}, ids)
}

func TestReport_Upserts(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`(?s)INSERT INTO post_reports.*ON CONFLICT \(user_id, post_id\) DO UPDATE`).
		WithArgs("u1", "r3", "spam", at).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Report(context.Background(), "u1", "r3", "spam", at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReports(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT post_id FROM post_reports WHERE user_id = \$1`).
		WithArgs("u1").WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow("r3"))
	mock.ExpectQuery(`SELECT user_id, post_id, reason, created_at FROM post_reports ORDER BY created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "post_id", "reason", "created_at"}).
			AddRow("u1", "r3", "spam", at))

	ids, err := repo.ReportedPostIDs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, ids)

	reps, err := repo.Reports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Report{{UserID: "u1", PostID: "r3", Reason: "spam", CreatedAt: at}}, reps)
}
