package favorites

import (
	"context"

	"github.com/dmitrijs2005/beautystore/internal/server/models"
)

// Repository persists favorites rows.
type Repository interface {
	Insert(ctx context.Context, userID, productID string) error
	// Delete reports how many rows were removed.
	Delete(ctx context.Context, userID, productID string) (int64, error)
	// ListByUser joins each row with its product. Rows whose product is gone
	// are returned with a nil Product.
	ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error)
}
