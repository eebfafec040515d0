package client

import (
	"errors"
	"fmt"
)

var (
	// ErrRemoteCall marks any failed call to the backend that is not an
	// authentication problem. Optimistic state is rolled back on it.
	ErrRemoteCall = errors.New("remote call failed")

	// ErrUnavailable is a transport-level failure (server down, deadline
	// exceeded). It wraps ErrRemoteCall and is the only error reads retry on.
	ErrUnavailable = fmt.Errorf("%w: server unavailable", ErrRemoteCall)

	// ErrForbidden means the backend accepted the session but refused the
	// operation. It wraps ErrRemoteCall and leaves the session intact.
	ErrForbidden = fmt.Errorf("%w: forbidden", ErrRemoteCall)

	// ErrUnauthorized means the backend rejected the credentials or the
	// session token.
	ErrUnauthorized = errors.New("unauthorized")
)
