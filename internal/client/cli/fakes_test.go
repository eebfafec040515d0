package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/beautystore/internal/client/favorites"
	"github.com/dmitrijs2005/beautystore/internal/client/models"
	"github.com/dmitrijs2005/beautystore/internal/client/session"
	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/logging"
)

const testUserID = "0b7e2c43-6a0f-4d8e-9a51-2f3c4d5e6f70"

// ---- secure store ----

type memStore struct {
	mu    sync.Mutex
	items map[string]string
}

func (s *memStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *memStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = map[string]string{}
	return nil
}

// ---- authenticator ----

type fakeSignIn struct {
	err   error
	token string
}

func (f *fakeSignIn) SignIn(_ context.Context, email, _ string) (*models.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return &models.User{ID: testUserID, Name: "Ana", Email: email}, f.token, nil
}

func (f *fakeSignIn) SetAccessToken(token string) { f.token = token }

// ---- accounts ----

type fakeAccounts struct {
	registerErr error
	profile     *models.User
	profileErr  error
	updateErr   error
	pingErr     error

	lastRegisterEmail string
	lastUpdateName    string
	lastUpdatePass    string
	updateCalls       int
}

func (f *fakeAccounts) Register(_ context.Context, name, email, password, confirm string) (*models.User, error) {
	f.lastRegisterEmail = email
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: testUserID, Name: name, Email: email}, nil
}

func (f *fakeAccounts) Profile(context.Context, string) (*models.User, error) {
	return f.profile, f.profileErr
}

func (f *fakeAccounts) UpdateProfile(_ context.Context, _ string, name, password string) (*models.User, error) {
	f.updateCalls++
	f.lastUpdateName, f.lastUpdatePass = name, password
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.User{ID: testUserID, Name: name}, nil
}

func (f *fakeAccounts) Ping(context.Context) error { return f.pingErr }

// ---- catalog ----

type fakeCatalog struct {
	products []models.Product
	listErr  error
}

func (f *fakeCatalog) List(_ context.Context, category string) ([]models.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Product
	for _, p := range f.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Get(_ context.Context, id string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCatalog) DownloadImage(context.Context, string, string) (int64, error) {
	return 0, nil
}

// ---- favorites backend ----

type fakeFavBackend struct {
	mu        sync.Mutex
	rows      map[string]bool
	products  map[string]models.Product
	insertErr error
	deleteErr error
	listErr   error
}

func (f *fakeFavBackend) InsertFavorite(_ context.Context, _, pid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows[pid] = true
	return nil
}

func (f *fakeFavBackend) DeleteFavorite(_ context.Context, _, pid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, pid)
	return nil
}

func (f *fakeFavBackend) ListFavorites(_ context.Context, uid string) ([]models.FavoriteRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.FavoriteRow
	for pid := range f.rows {
		p := f.products[pid]
		out = append(out, models.FavoriteRow{UserID: uid, ProductID: pid, Product: &p})
	}
	return out, nil
}

// ---- harness ----

var (
	lipstick = models.Product{ID: "p1", Name: "Lipstick", PriceCents: 1299, Category: "lips"}
	mascara  = models.Product{ID: "p2", Name: "Mascara", PriceCents: 899, Category: "eyes"}
)

type harness struct {
	app      *App
	out      *bytes.Buffer
	store    *memStore
	auth     *fakeSignIn
	accounts *fakeAccounts
	catalog  *fakeCatalog
	backend  *fakeFavBackend
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		out:      &bytes.Buffer{},
		store:    &memStore{items: map[string]string{}},
		auth:     &fakeSignIn{token: "tok"},
		accounts: &fakeAccounts{},
		catalog:  &fakeCatalog{products: []models.Product{lipstick, mascara}},
		backend: &fakeFavBackend{
			rows:     map[string]bool{},
			products: map[string]models.Product{"p1": lipstick, "p2": mascara},
		},
	}
	logger := logging.NewNopLogger()
	h.app = newApp(nil, logger,
		session.NewManager(h.store, h.auth, logger),
		h.accounts,
		h.catalog,
		favorites.NewSynchronizer(h.backend, logger),
	)
	h.app.out = h.out
	t.Cleanup(func() { _ = h.app.Close() })
	return h
}

// stubInputs feeds getSimpleText and getPassword from fixed queues.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// capturePrintln records REPL output lines.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	stubInputs(t, []string{"ana@example.com"}, []string{"secret1"})
	if err := h.app.Login(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
	h.app.applySessionEvents(context.Background())
}
