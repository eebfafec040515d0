package products

import (
	"context"

	"github.com/dmitrijs2005/beautystore/internal/server/models"
)

// Repository reads the product catalog.
type Repository interface {
	// List returns products ordered by name. An empty category matches all.
	List(ctx context.Context, category string) ([]*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}
