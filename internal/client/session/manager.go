// Package session owns the device's sign-in state: it verifies credentials
// against the backend, persists the resulting session in the secure store,
// restores it on start-up and tells subscribers when the user signs in or out.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/beautystore/internal/client/client"
	"github.com/dmitrijs2005/beautystore/internal/client/models"
	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/logging"
	"github.com/google/uuid"
)

// Secure store keys.
const (
	KeyUserID = "session.user_id"
	KeyEmail  = "session.email"
	KeyToken  = "session.token"
)

var sessionKeys = []string{KeyUserID, KeyEmail, KeyToken}

const subscriberBuffer = 8

type Store interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Authenticator is the slice of client.Client the manager needs.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	SetAccessToken(token string)
}

type Manager struct {
	store  Store
	auth   Authenticator
	logger logging.Logger

	// serializes Login/Logout/Expire so store writes never interleave
	opMu sync.Mutex

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewManager(store Store, auth Authenticator, logger logging.Logger) *Manager {
	return &Manager{
		store:  store,
		auth:   auth,
		logger: logger.With("module", "session"),
		subs:   make(map[int]chan Event),
	}
}

// Login verifies the credentials remotely and, on success, persists the
// session. Nothing is persisted when sign-in fails.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if email == "" {
		return nil, common.ErrEmailRequired
	}
	if password == "" {
		return nil, common.ErrPasswordRequired
	}

	user, token, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		m.logger.Info(ctx, "sign-in failed", "email", email, "error", err)
		return nil, err
	}

	s := &models.Session{UserID: user.ID, Email: user.Email, AccessToken: token}
	if s.Email == "" {
		s.Email = email
	}

	m.opMu.Lock()
	err = m.persist(ctx, s)
	m.opMu.Unlock()
	if err != nil {
		return nil, err
	}

	m.auth.SetAccessToken(token)
	m.logger.Info(ctx, "signed in", "user_id", s.UserID)
	m.publish(Event{Kind: EventLoggedIn, Session: s})
	return s, nil
}

func (m *Manager) persist(ctx context.Context, s *models.Session) error {
	values := map[string]string{
		KeyUserID: s.UserID,
		KeyEmail:  s.Email,
		KeyToken:  s.AccessToken,
	}
	for _, k := range sessionKeys {
		if err := m.store.SetItem(ctx, k, values[k]); err != nil {
			_ = m.wipe(ctx)
			return fmt.Errorf("persist session: %w", err)
		}
	}
	return nil
}

// Logout deletes every persisted session key. It is safe to call when no
// session exists; subscribers hear about it only if one did.
func (m *Manager) Logout(ctx context.Context) error {
	m.opMu.Lock()
	had := m.hasStoredSession(ctx)
	err := m.wipe(ctx)
	m.opMu.Unlock()

	m.auth.SetAccessToken("")
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if had {
		m.logger.Info(ctx, "signed out")
		m.publish(Event{Kind: EventLoggedOut})
	}
	return nil
}

// ResetDevice wipes everything the secure store holds, the session included.
// Subscribers hear EventLoggedOut if a session existed.
func (m *Manager) ResetDevice(ctx context.Context) error {
	m.opMu.Lock()
	had := m.hasStoredSession(ctx)
	err := m.store.Clear(ctx)
	m.opMu.Unlock()

	m.auth.SetAccessToken("")
	if err != nil {
		return fmt.Errorf("reset device: %w", err)
	}
	m.logger.Info(ctx, "local data cleared")
	if had {
		m.publish(Event{Kind: EventLoggedOut})
	}
	return nil
}

// Expire ends the session when err is an authentication failure from the
// backend. It returns whether the session was ended.
func (m *Manager) Expire(ctx context.Context, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}

	m.opMu.Lock()
	if wipeErr := m.wipe(ctx); wipeErr != nil {
		m.logger.Error(ctx, "failed to wipe expired session", "error", wipeErr)
	}
	m.opMu.Unlock()

	m.auth.SetAccessToken("")
	m.logger.Warn(ctx, "session expired", "error", err)
	m.publish(Event{Kind: EventExpired})
	return true
}

// CurrentSession returns the stored session. Missing, unreadable and
// malformed entries all read as no session. A valid session has its token
// installed on the backend client.
func (m *Manager) CurrentSession(ctx context.Context) (*models.Session, bool) {
	values := make(map[string]string, len(sessionKeys))
	for _, k := range sessionKeys {
		v, ok, err := m.store.GetItem(ctx, k)
		if err != nil {
			m.logger.Warn(ctx, "stored session unreadable", "key", k, "error", err)
			return nil, false
		}
		if ok {
			values[k] = v
		}
	}

	s := &models.Session{
		UserID:      values[KeyUserID],
		Email:       values[KeyEmail],
		AccessToken: values[KeyToken],
	}
	if s.UserID == "" && s.Email == "" {
		return nil, false
	}
	if !valid(s) {
		m.logger.Warn(ctx, "stored session malformed, ignoring")
		return nil, false
	}

	if s.AccessToken != "" {
		m.auth.SetAccessToken(s.AccessToken)
	}
	return s, true
}

func valid(s *models.Session) bool {
	if s.Email == "" || s.UserID == "" {
		return false
	}
	_, err := uuid.Parse(s.UserID)
	return err == nil
}

func (m *Manager) hasStoredSession(ctx context.Context) bool {
	for _, k := range sessionKeys {
		_, ok, err := m.store.GetItem(ctx, k)
		if ok || err != nil {
			return true
		}
	}
	return false
}

func (m *Manager) wipe(ctx context.Context) error {
	var errs []error
	for _, k := range sessionKeys {
		if err := m.store.RemoveItem(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe returns a channel of session events and a function that stops
// delivery and closes the channel. A subscriber that falls behind loses events
// rather than blocking the manager.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan Event, subscriberBuffer)
	m.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.subMu.Lock()
			defer m.subMu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (m *Manager) publish(e Event) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- e:
		default:
			m.logger.Warn(context.Background(), "dropping session event for slow subscriber", "event", e.Kind.String())
		}
	}
}
