package users

import (
	"context"

	"github.com/dmitrijs2005/beautystore/internal/server/models"
)

// Repository persists usuarios rows. Lookups return common.ErrorNotFound
// when no row matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Update changes nome and senha when the corresponding argument is non-nil.
	Update(ctx context.Context, id string, name, passwordHash *string) (*models.User, error)
	// LockEmail serializes registrations of the same address until the
	// surrounding transaction ends.
	LockEmail(ctx context.Context, email string) error
}
