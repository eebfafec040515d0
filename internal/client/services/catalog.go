package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/beautystore/internal/client/client"
	"github.com/dmitrijs2005/beautystore/internal/client/models"
	"github.com/dmitrijs2005/beautystore/internal/netx"
)

// CatalogService reads products. The catalog is read-only for the client.
type CatalogService interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	// DownloadImage saves the product's image to path and returns its size.
	DownloadImage(ctx context.Context, id, path string) (int64, error)
}

type catalogService struct {
	client client.Client
}

func NewCatalogService(c client.Client) CatalogService {
	return &catalogService{client: c}
}

func (s *catalogService) List(ctx context.Context, category string) ([]models.Product, error) {
	products, err := s.client.ListProducts(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

var ErrNoImage = errors.New("product has no image")

func (s *catalogService) DownloadImage(ctx context.Context, id, path string) (int64, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if p.ImageURL == "" {
		return 0, ErrNoImage
	}

	// download next to the target and rename, so a failed transfer leaves
	// nothing behind and never clobbers an existing file
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return 0, err
	}
	tmp := f.Name()

	n, err := netx.DownloadFromPresignedURL(ctx, p.ImageURL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("download image: %w", err)
	}
	return n, nil
}
