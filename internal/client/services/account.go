// Package services contains the storefront client's application services.
// This file defines account handling: registration with local validation and
// a pre-insert email lookup, profile reads and profile updates.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/beautystore/internal/client/client"
	"github.com/dmitrijs2005/beautystore/internal/client/models"
	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/logging"
)

// AccountService defines the account operations available to the CLI.
//
// Contract:
//   - Register: validate locally, reject an email that is already registered,
//     then create the user. Validation failures never reach the backend.
//   - Profile: read the signed-in user's row.
//   - UpdateProfile: change name and/or password; empty fields stay as they are.
//   - Ping: check server liveness.
type AccountService interface {
	Register(ctx context.Context, name, email, password, confirm string) (*models.User, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, name, password string) (*models.User, error)
	Ping(ctx context.Context) error
}

type accountService struct {
	client client.Client
	logger logging.Logger
}

func NewAccountService(c client.Client, logger logging.Logger) AccountService {
	return &accountService{client: c, logger: logger.With("module", "account_service")}
}

func (s *accountService) Register(ctx context.Context, name, email, password, confirm string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = common.NormalizeEmail(email)

	if name == "" {
		return nil, common.ErrNameRequired
	}
	if email == "" {
		return nil, common.ErrEmailRequired
	}
	if err := common.ValidatePassword(password, confirm); err != nil {
		return nil, err
	}

	_, exists, err := s.client.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("email lookup: %w", err)
	}
	if exists {
		s.logger.Info(ctx, "registration rejected, email taken", "email", email)
		return nil, common.ErrEmailTaken
	}

	u, err := s.client.InsertUser(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

func (s *accountService) Profile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.client.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return u, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID, name, password string) (*models.User, error) {
	var namePtr, passwordPtr *string

	if name = strings.TrimSpace(name); name != "" {
		namePtr = &name
	}
	if password != "" {
		if err := common.ValidatePassword(password, password); err != nil {
			return nil, err
		}
		passwordPtr = &password
	}

	if namePtr == nil && passwordPtr == nil {
		return s.Profile(ctx, userID)
	}

	u, err := s.client.UpdateUser(ctx, userID, namePtr, passwordPtr)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func (s *accountService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
