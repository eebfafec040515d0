package grpc

import (
	"context"

	"github.com/dmitrijs2005/beautystore/internal/server/models"
)

// UserService is the account logic the handlers call into.
type UserService interface {
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, name, email, password string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, name, password *string) (*models.User, error)
}

type CatalogService interface {
	List(ctx context.Context, category string) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
}

type FavoriteService interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]*models.Favorite, error)
}
