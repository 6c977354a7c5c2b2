// Package users stores credential-service accounts.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/server/models"
)

// Repository persists accounts. Lookups of missing accounts return
// common.ErrorNotFound; a duplicate email or username on Create returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// MarkProfileCompleted reports whether the flag changed.
	MarkProfileCompleted(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*models.Account, error)
}
