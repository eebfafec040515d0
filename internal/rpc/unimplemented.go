package rpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnimplementedStorefrontServer can be embedded to get forward compatible
// implementations; every method answers codes.Unimplemented.
type UnimplementedStorefrontServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedStorefrontServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, unimplemented(MethodSignIn)
}

func (UnimplementedStorefrontServer) FindUserByEmail(context.Context, *FindUserByEmailRequest) (*FindUserByEmailResponse, error) {
	return nil, unimplemented(MethodFindUserByEmail)
}

func (UnimplementedStorefrontServer) InsertUser(context.Context, *InsertUserRequest) (*InsertUserResponse, error) {
	return nil, unimplemented(MethodInsertUser)
}

func (UnimplementedStorefrontServer) GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error) {
	return nil, unimplemented(MethodGetUser)
}

func (UnimplementedStorefrontServer) UpdateUser(context.Context, *UpdateUserRequest) (*UpdateUserResponse, error) {
	return nil, unimplemented(MethodUpdateUser)
}

func (UnimplementedStorefrontServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, unimplemented(MethodListProducts)
}

func (UnimplementedStorefrontServer) GetProduct(context.Context, *GetProductRequest) (*GetProductResponse, error) {
	return nil, unimplemented(MethodGetProduct)
}

func (UnimplementedStorefrontServer) InsertFavorite(context.Context, *FavoriteRequest) (*FavoriteResponse, error) {
	return nil, unimplemented(MethodInsertFavorite)
}

func (UnimplementedStorefrontServer) DeleteFavorite(context.Context, *FavoriteRequest) (*FavoriteResponse, error) {
	return nil, unimplemented(MethodDeleteFavorite)
}

func (UnimplementedStorefrontServer) ListFavorites(context.Context, *ListFavoritesRequest) (*ListFavoritesResponse, error) {
	return nil, unimplemented(MethodListFavorites)
}
