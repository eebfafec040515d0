package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/dbx"
	"github.com/dmitrijs2005/beautystore/internal/logging"
	"github.com/dmitrijs2005/beautystore/internal/server/models"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ImageSigner attaches presigned image URLs to products.
type ImageSigner interface {
	AttachImageURLs(ctx context.Context, products ...*models.Product)
}

type FavoriteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageSigner
	logger      logging.Logger
}

// NewFavoriteService builds the service. images may be nil, in which case
// listed products carry no ImageURL.
func NewFavoriteService(db *sql.DB, repomanager repomanager.RepositoryManager, images ImageSigner, logger logging.Logger) *FavoriteService {
	return &FavoriteService{
		db:          db,
		repomanager: repomanager,
		images:      images,
		logger:      logger.With("module", "favorite_service"),
	}
}

// Add inserts the pair. A pair that already exists is success, which makes
// Add idempotent.
func (s *FavoriteService) Add(ctx context.Context, userID, productID string) error {
	if err := validateIDs(userID, productID); err != nil {
		return err
	}

	err := s.repomanager.Favorites(s.db).Insert(ctx, userID, productID)
	switch {
	case err == nil:
		return nil
	case dbx.IsUniqueViolation(err):
		s.logger.Debug(ctx, "favorite already present", "user_id", userID, "product_id", productID)
		return nil
	case dbx.IsForeignKeyViolation(err):
		return common.ErrorNotFound
	default:
		return err
	}
}

// Remove deletes the pair. Deleting a pair that does not exist is logged and
// reported as success.
func (s *FavoriteService) Remove(ctx context.Context, userID, productID string) error {
	if err := validateIDs(userID, productID); err != nil {
		return err
	}

	n, err := s.repomanager.Favorites(s.db).Delete(ctx, userID, productID)
	if err != nil {
		return err
	}
	if n == 0 {
		s.logger.Warn(ctx, "favorite to remove was not found", "user_id", userID, "product_id", productID)
	}
	return nil
}

// List returns the user's favorites joined with their products. Rows whose
// product no longer exists are kept with a nil Product.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]*models.Favorite, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrInvalidID
	}

	rows, err := s.repomanager.Favorites(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.images != nil {
		products := make([]*models.Product, 0, len(rows))
		for _, r := range rows {
			if r.Product != nil {
				products = append(products, r.Product)
			}
		}
		s.images.AttachImageURLs(ctx, products...)
	}

	return rows, nil
}

func validateIDs(ids ...string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return common.ErrInvalidID
		}
	}
	return nil
}
