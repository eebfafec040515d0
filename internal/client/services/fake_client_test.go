package services

import (
	"context"

	"github.com/dmitrijs2005/beautystore/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	// behaviour / results
	FindUserRet   *models.User
	FindUserFound bool
	FindUserErr   error

	InsertUserErr error
	GetUserRet    *models.User
	GetUserErr    error
	UpdateUserErr error

	ProductsRet []models.Product
	ProductsErr error
	ProductRet  *models.Product
	ProductErr  error

	PingErr error

	// recorded calls
	FindUserCalls   int
	InsertUserCalls int
	UpdateUserCalls int

	LastFindEmail    string
	LastInsertName   string
	LastInsertEmail  string
	LastUpdateName   *string
	LastUpdatePass   *string
	LastCategory     string
	LastGetProductID string
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	return &models.User{Email: email}, "tok", nil
}

func (f *fakeClient) FindUserByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	f.FindUserCalls++
	f.LastFindEmail = email
	return f.FindUserRet, f.FindUserFound, f.FindUserErr
}

func (f *fakeClient) InsertUser(ctx context.Context, name, email, password string) (*models.User, error) {
	f.InsertUserCalls++
	f.LastInsertName = name
	f.LastInsertEmail = email
	if f.InsertUserErr != nil {
		return nil, f.InsertUserErr
	}
	return &models.User{ID: "u-new", Name: name, Email: email}, nil
}

func (f *fakeClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	return f.GetUserRet, f.GetUserErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, id string, name, password *string) (*models.User, error) {
	f.UpdateUserCalls++
	f.LastUpdateName = name
	f.LastUpdatePass = password
	if f.UpdateUserErr != nil {
		return nil, f.UpdateUserErr
	}
	u := &models.User{ID: id}
	if name != nil {
		u.Name = *name
	}
	return u, nil
}

func (f *fakeClient) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	f.LastCategory = category
	return f.ProductsRet, f.ProductsErr
}

func (f *fakeClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	f.LastGetProductID = id
	return f.ProductRet, f.ProductErr
}

func (f *fakeClient) InsertFavorite(ctx context.Context, userID, productID string) error { return nil }
func (f *fakeClient) DeleteFavorite(ctx context.Context, userID, productID string) error { return nil }
func (f *fakeClient) ListFavorites(ctx context.Context, userID string) ([]models.FavoriteRow, error) {
	return nil, nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }
func (f *fakeClient) SetAccessToken(token string)    {}
func (f *fakeClient) Close() error                   { return nil }
