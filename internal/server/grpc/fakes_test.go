package grpc

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/logging"
	"github.com/dmitrijs2005/beautystore/internal/server/models"
)

const (
	testSecret = "secret"
	uid1       = "6f1c1f8e-7c1a-4a53-9f7e-0d6c1d2b9a01"
	uid2       = "6f1c1f8e-7c1a-4a53-9f7e-0d6c1d2b9a02"
	pid1       = "1b0e2a7c-3f7d-4c1e-8a5b-9d0f1e2c3b01"
	pid2       = "1b0e2a7c-3f7d-4c1e-8a5b-9d0f1e2c3b02"
)

type fakeUsers struct {
	user     *models.User
	token    string
	signErr  error
	findErr  error
	insErr   error
	getErr   error
	updErr   error
	inserted []string
	gotID    string

	gotName, gotPassword *string
}

func (f *fakeUsers) SignIn(_ context.Context, email, password string) (*models.User, string, error) {
	if f.signErr != nil {
		return nil, "", f.signErr
	}
	return f.user, f.token, nil
}

func (f *fakeUsers) FindByEmail(context.Context, string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.user, nil
}

func (f *fakeUsers) Insert(_ context.Context, name, email, password string) (*models.User, error) {
	f.inserted = append(f.inserted, email)
	if f.insErr != nil {
		return nil, f.insErr
	}
	return &models.User{ID: uid2, Name: name, Email: email}, nil
}

func (f *fakeUsers) Get(_ context.Context, id string) (*models.User, error) {
	f.gotID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeUsers) Update(_ context.Context, id string, name, password *string) (*models.User, error) {
	f.gotID, f.gotName, f.gotPassword = id, name, password
	if f.updErr != nil {
		return nil, f.updErr
	}
	u := *f.user
	if name != nil {
		u.Name = *name
	}
	return &u, nil
}

type fakeCatalog struct {
	products []*models.Product
	err      error
}

func (f *fakeCatalog) List(context.Context, string) ([]*models.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) Get(_ context.Context, id string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

// fakeFavorites keeps favorites in memory and, like the real table, lets
// rows outlive their products.
type fakeFavorites struct {
	mu       sync.Mutex
	rows     map[string][]string
	products map[string]*models.Product
	err      error
}

func newFakeFavorites(products ...*models.Product) *fakeFavorites {
	f := &fakeFavorites{rows: map[string][]string{}, products: map[string]*models.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeFavorites) Add(_ context.Context, userID, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, id := range f.rows[userID] {
		if id == productID {
			return nil
		}
	}
	f.rows[userID] = append(f.rows[userID], productID)
	return nil
}

func (f *fakeFavorites) Remove(_ context.Context, userID, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	ids := f.rows[userID][:0]
	for _, id := range f.rows[userID] {
		if id != productID {
			ids = append(ids, id)
		}
	}
	f.rows[userID] = ids
	return nil
}

func (f *fakeFavorites) List(_ context.Context, userID string) ([]*models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Favorite
	for _, id := range f.rows[userID] {
		out = append(out, &models.Favorite{UserID: userID, ProductID: id, Product: f.products[id]})
	}
	return out, nil
}

func newTestServer(us *fakeUsers, cs *fakeCatalog, fs *fakeFavorites, opts ...Option) *GRPCServer {
	if us == nil {
		us = &fakeUsers{}
	}
	if cs == nil {
		cs = &fakeCatalog{}
	}
	if fs == nil {
		fs = newFakeFavorites()
	}
	return NewGRPCServer("127.0.0.1:0", logging.NewNopLogger(), us, cs, fs, testSecret, opts...)
}
