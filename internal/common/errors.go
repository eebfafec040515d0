// Package common defines shared constants and sentinel errors used across
// client and server layers of beautystore. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ErrValidation is the root of all input validation failures. Validation
// errors are reported to the user and never sent to the backend.
var ErrValidation = errors.New("validation error")

var (
	ErrNameRequired     = fmt.Errorf("%w: name is required", ErrValidation)
	ErrEmailRequired    = fmt.Errorf("%w: email is required", ErrValidation)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrEmailTaken       = fmt.Errorf("%w: email already registered", ErrValidation)
)

// ErrInvalidID is returned for identifiers that are not well-formed UUIDs.
var ErrInvalidID = fmt.Errorf("%w: invalid id", ErrValidation)
