package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/logging"
	sc "github.com/dmitrijs2005/beautystore/internal/server/config"
	"github.com/dmitrijs2005/beautystore/internal/server/models"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
}

func NewCatalogService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config, logger logging.Logger) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		logger:      logger.With("module", "catalog_service"),
	}
}

func (s *CatalogService) List(ctx context.Context, category string) ([]*models.Product, error) {
	products, err := s.repomanager.Products(s.db).List(ctx, category)
	if err != nil {
		return nil, err
	}
	s.AttachImageURLs(ctx, products...)
	return products, nil
}

// Get returns common.ErrorNotFound for unknown or malformed ids.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	p, err := s.repomanager.Products(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.AttachImageURLs(ctx, p)
	return p, nil
}

// AttachImageURLs fills ImageURL with a presigned GET URL for every product
// that has an ImagePath. It does nothing while object storage is disabled.
// Presign failures are logged and leave ImageURL empty.
func (s *CatalogService) AttachImageURLs(ctx context.Context, products ...*models.Product) {
	if !s.config.S3Enabled {
		return
	}

	var pc *s3.PresignClient

	for _, p := range products {
		if p == nil || p.ImagePath == "" {
			continue
		}

		if pc == nil {
			var err error
			if pc, err = s.getPresignClient(ctx); err != nil {
				s.logger.Warn(ctx, "object storage unavailable", "error", err)
				return
			}
		}

		url, err := s.presignedGetURL(ctx, pc, p.ImagePath)
		if err != nil {
			s.logger.Warn(ctx, "presign failed", "product_id", p.ID, "key", p.ImagePath, "error", err)
			continue
		}
		p.ImageURL = url
	}
}

func (s *CatalogService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (s *CatalogService) presignedGetURL(ctx context.Context, pc *s3.PresignClient, key string) (string, error) {
	bucket := s.config.S3Bucket

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.ImageURLExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
