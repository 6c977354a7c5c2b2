// Package repomanager hands out the users, ledger and feed repositories for
// one storage backend and runs multi-repository work in a transaction.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/feed"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/ledger"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/users"
)

// Repositories is a set of repositories bound to the same connection or
// transaction.
type Repositories struct {
	Users  users.Repository
	Ledger ledger.Repository
	Feed   feed.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Ledger() ledger.Repository
	Feed() feed.Repository
	// WithTx runs fn with repositories that commit or roll back together.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}
