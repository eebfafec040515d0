package client

import (
	"context"

	"github.com/dmitrijs2005/beautystore/internal/client/models"
)

// Client is the storefront's view of the hosted backend: authentication plus
// row-level CRUD over usuarios, products and favorites.
type Client interface {
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, bool, error)
	InsertUser(ctx context.Context, name, email, password string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, name, password *string) (*models.User, error)

	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)

	InsertFavorite(ctx context.Context, userID, productID string) error
	DeleteFavorite(ctx context.Context, userID, productID string) error
	ListFavorites(ctx context.Context, userID string) ([]models.FavoriteRow, error)

	Ping(ctx context.Context) error
	SetAccessToken(token string)
	Close() error
}
