// Package metadata is the client's local key/value store. The session
// snapshot lives here under a single key.
package metadata

import "context"

// Repository stores opaque values by key. Get on an absent key returns
// common.ErrorNotFound.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var (
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)
