package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/rpc"
	"github.com/dmitrijs2005/beautystore/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) SignIn(ctx context.Context, req *rpc.SignInRequest) (*rpc.SignInResponse, error) {

	user, token, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Signed in", "user_id", user.ID)
	return &rpc.SignInResponse{User: userToRPC(user), AccessToken: token}, nil
}

func (s *GRPCServer) FindUserByEmail(ctx context.Context, req *rpc.FindUserByEmailRequest) (*rpc.FindUserByEmailResponse, error) {

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &rpc.FindUserByEmailResponse{Found: false}, nil
		}
		return nil, s.toStatus(ctx, err)
	}

	u := userToRPC(user)
	return &rpc.FindUserByEmailResponse{Found: true, User: &u}, nil
}

func (s *GRPCServer) InsertUser(ctx context.Context, req *rpc.InsertUserRequest) (*rpc.InsertUserResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Insert(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.InsertUserResponse{User: userToRPC(user)}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *rpc.GetUserRequest) (*rpc.GetUserResponse, error) {

	user, err := s.users.Get(ctx, ownerOrCaller(ctx, req.ID))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.GetUserResponse{User: userToRPC(user)}, nil
}

func (s *GRPCServer) UpdateUser(ctx context.Context, req *rpc.UpdateUserRequest) (*rpc.UpdateUserResponse, error) {

	user, err := s.users.Update(ctx, ownerOrCaller(ctx, req.ID), req.Name, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.UpdateUserResponse{User: userToRPC(user)}, nil
}

func (s *GRPCServer) ListProducts(ctx context.Context, req *rpc.ListProductsRequest) (*rpc.ListProductsResponse, error) {

	products, err := s.catalog.List(ctx, req.Category)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &rpc.ListProductsResponse{Products: make([]rpc.Product, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, productToRPC(p))
	}
	return resp, nil
}

func (s *GRPCServer) GetProduct(ctx context.Context, req *rpc.GetProductRequest) (*rpc.GetProductResponse, error) {

	p, err := s.catalog.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.GetProductResponse{Product: productToRPC(p)}, nil
}

func (s *GRPCServer) InsertFavorite(ctx context.Context, req *rpc.FavoriteRequest) (*rpc.FavoriteResponse, error) {

	if err := s.favorites.Add(ctx, ownerOrCaller(ctx, req.UserID), req.ProductID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.FavoriteResponse{}, nil
}

func (s *GRPCServer) DeleteFavorite(ctx context.Context, req *rpc.FavoriteRequest) (*rpc.FavoriteResponse, error) {

	if err := s.favorites.Remove(ctx, ownerOrCaller(ctx, req.UserID), req.ProductID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.FavoriteResponse{}, nil
}

func (s *GRPCServer) ListFavorites(ctx context.Context, req *rpc.ListFavoritesRequest) (*rpc.ListFavoritesResponse, error) {

	rows, err := s.favorites.List(ctx, ownerOrCaller(ctx, req.UserID))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &rpc.ListFavoritesResponse{Favorites: make([]rpc.FavoriteRow, 0, len(rows))}
	for _, r := range rows {
		row := rpc.FavoriteRow{UserID: r.UserID, ProductID: r.ProductID}
		if r.Product != nil {
			p := productToRPC(r.Product)
			row.Product = &p
		}
		resp.Favorites = append(resp.Favorites, row)
	}
	return resp, nil
}

// ownerOrCaller returns id, or the authenticated caller's id when the
// request leaves it empty.
func ownerOrCaller(ctx context.Context, id string) string {
	if id != "" {
		return id
	}
	caller, _ := UserIDFromContext(ctx)
	return caller
}

// toStatus maps service errors to gRPC status codes. Unexpected errors are
// logged and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func userToRPC(u *models.User) rpc.User {
	return rpc.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func productToRPC(p *models.Product) rpc.Product {
	return rpc.Product{
		ID:          p.ID,
		Name:        p.Name,
		PriceCents:  p.PriceCents,
		Category:    p.Category,
		Description: p.Description,
		ImagePath:   p.ImagePath,
		ImageURL:    p.ImageURL,
	}
}
