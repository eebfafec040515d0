package services

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/dbx"
	"github.com/dmitrijs2005/beautystore/internal/logging"
	"github.com/dmitrijs2005/beautystore/internal/server/models"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/products"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/users"
)

const (
	uid1 = "6f1c1f8e-7c1a-4a53-9f7e-0d6c1d2b9a01"
	uid2 = "6f1c1f8e-7c1a-4a53-9f7e-0d6c1d2b9a02"
	pid1 = "1b0e2a7c-3f7d-4c1e-8a5b-9d0f1e2c3b01"
	pid2 = "1b0e2a7c-3f7d-4c1e-8a5b-9d0f1e2c3b02"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// plainHashing swaps argon2 for a readable stand-in so tests stay fast.
func plainHashing(t *testing.T) {
	t.Helper()
	origHash, origVerify := hashPassword, verifyPassword
	t.Cleanup(func() { hashPassword, verifyPassword = origHash, origVerify })

	hashPassword = func(pw string) (string, error) { return "plain:" + pw, nil }
	verifyPassword = func(pw, encoded string) (bool, error) {
		if !strings.HasPrefix(encoded, "plain:") {
			return false, common.ErrValidation
		}
		return encoded == "plain:"+pw, nil
	}
}

type fakeUsersRepo struct {
	mu sync.Mutex

	byEmail map[string]*models.User
	byID    map[string]*models.User

	getErr    error
	createErr error
	lockErr   error
	updateErr error

	created []*models.User
	locked  []string
	updates []struct{ name, hash *string }
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
	for _, u := range users {
		f.byEmail[u.Email] = u
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *u
	cp.ID = uid2
	f.created = append(f.created, &cp)
	f.byEmail[cp.Email] = &cp
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Update(_ context.Context, id string, name, hash *string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, struct{ name, hash *string }{name, hash})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if hash != nil {
		u.PasswordHash = *hash
	}
	return u, nil
}

func (f *fakeUsersRepo) LockEmail(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locked = append(f.locked, email)
	return f.lockErr
}

type fakeProductsRepo struct {
	list    []*models.Product
	listErr error
	byID    map[string]*models.Product

	lastCategory string
}

func (f *fakeProductsRepo) List(_ context.Context, category string) ([]*models.Product, error) {
	f.lastCategory = category
	return f.list, f.listErr
}

func (f *fakeProductsRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}

type fakeFavoritesRepo struct {
	insertErr error
	deleteN   int64
	deleteErr error
	rows      []*models.Favorite
	listErr   error

	inserted [][2]string
	deleted  [][2]string
}

func (f *fakeFavoritesRepo) Insert(_ context.Context, userID, productID string) error {
	f.inserted = append(f.inserted, [2]string{userID, productID})
	return f.insertErr
}

func (f *fakeFavoritesRepo) Delete(_ context.Context, userID, productID string) (int64, error) {
	f.deleted = append(f.deleted, [2]string{userID, productID})
	return f.deleteN, f.deleteErr
}

func (f *fakeFavoritesRepo) ListByUser(context.Context, string) ([]*models.Favorite, error) {
	return f.rows, f.listErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakeProductsRepo
	f *fakeFavoritesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Products(dbx.DBTX) products.Repository        { return m.p }
func (m *fakeRepoManager) Favorites(dbx.DBTX) favorites.Repository      { return m.f }

func nopLogger() logging.Logger { return logging.NewNopLogger() }
