package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return db
}

func repositories(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"sqlite": NewSQLiteRepository(setupDB(t)),
		"memory": NewMemoryRepository(),
	}
}

func TestRepository_Contract(t *testing.T) {
	for name, r := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := r.Get(ctx, "auth")
			assert.ErrorIs(t, err, common.ErrorNotFound)

			require.NoError(t, r.Set(ctx, "auth", []byte(`{"token":"a"}`)))
			require.NoError(t, r.Set(ctx, "auth", []byte(`{"token":"b"}`)))
			require.NoError(t, r.Set(ctx, "other", []byte{0x01}))

			v, err := r.Get(ctx, "auth")
			require.NoError(t, err)
			assert.Equal(t, `{"token":"b"}`, string(v))

			v, err = r.Get(ctx, "other")
			require.NoError(t, err)
			assert.Equal(t, []byte{0x01}, v)

			require.NoError(t, r.Delete(ctx, "auth"))
			require.NoError(t, r.Delete(ctx, "auth"))
			_, err = r.Get(ctx, "auth")
			assert.ErrorIs(t, err, common.ErrorNotFound)
		})
	}
}

func TestMemoryRepository_CopiesValues(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, r.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
}

func TestSQLiteRepository_ErrorsWrapKey(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	assert.ErrorContains(t, err, `get "k"`)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorContains(t, r.Set(ctx, "k", []byte("v")), `set "k"`)
	assert.ErrorContains(t, r.Delete(ctx, "k"), `delete "k"`)
}
