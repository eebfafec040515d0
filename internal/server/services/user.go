// Package services holds the server's application logic on top of the
// repositories: accounts and tokens, the product catalog and favorites.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/cryptox"
	"github.com/dmitrijs2005/beautystore/internal/dbx"
	"github.com/dmitrijs2005/beautystore/internal/logging"
	"github.com/dmitrijs2005/beautystore/internal/server/auth"
	"github.com/dmitrijs2005/beautystore/internal/server/config"
	"github.com/dmitrijs2005/beautystore/internal/server/models"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Seams for tests.
var (
	hashPassword   = cryptox.HashPassword
	verifyPassword = cryptox.VerifyPassword
)

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	// decoyHash is verified against when the email is unknown so that a
	// failed sign-in costs the same either way.
	decoyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	var decoy string
	if secret, err := common.MakeRandHexString(16); err == nil {
		decoy, _ = hashPassword(secret)
	}
	return &UserService{
		db:                          db,
		repomanager:                 m,
		logger:                      logger.With("module", "user_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		decoyHash:                   decoy,
	}
}

// SignIn checks the credentials and issues an access token. Unknown emails
// and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if s.decoyHash != "" {
				_, _ = verifyPassword(password, s.decoyHash)
			}
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := verifyPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unreadable", "user_id", user.ID, "error", err)
		return nil, "", common.ErrorUnauthorized
	}
	if !ok {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return user, token, nil
}

// FindByEmail returns common.ErrorNotFound when no user has the address.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = common.NormalizeEmail(email)
	if email == "" {
		return nil, common.ErrEmailRequired
	}
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

// Insert registers a user. The email lookup and the insert run in one
// transaction holding an advisory lock on the address, so two concurrent
// registrations of the same email cannot both succeed.
func (s *UserService) Insert(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = common.NormalizeEmail(email)

	if name == "" {
		return nil, common.ErrNameRequired
	}
	if email == "" {
		return nil, common.ErrEmailRequired
	}
	if err := common.ValidatePassword(password, password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	var created *models.User

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := repo.LockEmail(ctx, email); err != nil {
			return err
		}

		_, err := repo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrorAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		created, err = repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID)
	return created, nil
}

// Get returns common.ErrorNotFound for unknown or malformed ids.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// Update changes the fields that are non-nil. A nil name and nil password
// return the current row unchanged.
func (s *UserService) Update(ctx context.Context, id string, name, password *string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, common.ErrNameRequired
		}
		name = &trimmed
	}

	var hash *string
	if password != nil {
		if err := common.ValidatePassword(*password, *password); err != nil {
			return nil, err
		}
		h, err := hashPassword(*password)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		hash = &h
	}

	repo := s.repomanager.Users(s.db)
	if name == nil && hash == nil {
		return repo.GetByID(ctx, id)
	}

	user, err := repo.Update(ctx, id, name, hash)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "profile updated", "user_id", id, "name_changed", name != nil, "password_changed", hash != nil)
	return user, nil
}
