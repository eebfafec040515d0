package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "beautystore.v1.Storefront"

// Method names, also used by the server interceptors.
const (
	MethodSignIn          = "SignIn"
	MethodFindUserByEmail = "FindUserByEmail"
	MethodInsertUser      = "InsertUser"
	MethodGetUser         = "GetUser"
	MethodUpdateUser      = "UpdateUser"
	MethodListProducts    = "ListProducts"
	MethodGetProduct      = "GetProduct"
	MethodInsertFavorite  = "InsertFavorite"
	MethodDeleteFavorite  = "DeleteFavorite"
	MethodListFavorites   = "ListFavorites"
)

// FullMethod returns the "/service/method" path grpc uses for routing.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// StorefrontServer is implemented by the backend.
type StorefrontServer interface {
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	FindUserByEmail(context.Context, *FindUserByEmailRequest) (*FindUserByEmailResponse, error)
	InsertUser(context.Context, *InsertUserRequest) (*InsertUserResponse, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*UpdateUserResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*GetProductResponse, error)
	InsertFavorite(context.Context, *FavoriteRequest) (*FavoriteResponse, error)
	DeleteFavorite(context.Context, *FavoriteRequest) (*FavoriteResponse, error)
	ListFavorites(context.Context, *ListFavoritesRequest) (*ListFavoritesResponse, error)
}

// StorefrontServiceDesc is registered on a *grpc.Server via RegisterStorefrontServer.
var StorefrontServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodSignIn, Handler: unaryHandler(MethodSignIn, StorefrontServer.SignIn)},
		{MethodName: MethodFindUserByEmail, Handler: unaryHandler(MethodFindUserByEmail, StorefrontServer.FindUserByEmail)},
		{MethodName: MethodInsertUser, Handler: unaryHandler(MethodInsertUser, StorefrontServer.InsertUser)},
		{MethodName: MethodGetUser, Handler: unaryHandler(MethodGetUser, StorefrontServer.GetUser)},
		{MethodName: MethodUpdateUser, Handler: unaryHandler(MethodUpdateUser, StorefrontServer.UpdateUser)},
		{MethodName: MethodListProducts, Handler: unaryHandler(MethodListProducts, StorefrontServer.ListProducts)},
		{MethodName: MethodGetProduct, Handler: unaryHandler(MethodGetProduct, StorefrontServer.GetProduct)},
		{MethodName: MethodInsertFavorite, Handler: unaryHandler(MethodInsertFavorite, StorefrontServer.InsertFavorite)},
		{MethodName: MethodDeleteFavorite, Handler: unaryHandler(MethodDeleteFavorite, StorefrontServer.DeleteFavorite)},
		{MethodName: MethodListFavorites, Handler: unaryHandler(MethodListFavorites, StorefrontServer.ListFavorites)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "beautystore/v1/storefront",
}

func RegisterStorefrontServer(s grpc.ServiceRegistrar, srv StorefrontServer) {
	s.RegisterService(&StorefrontServiceDesc, srv)
}

func unaryHandler[Req, Resp any](method string, call func(StorefrontServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StorefrontServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StorefrontServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// StorefrontClient is the client stub for the Storefront service.
type StorefrontClient struct {
	cc grpc.ClientConnInterface
}

func NewStorefrontClient(cc grpc.ClientConnInterface) *StorefrontClient {
	return &StorefrontClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, CallOptions(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StorefrontClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInRequest, SignInResponse](ctx, c.cc, MethodSignIn, in, opts)
}

func (c *StorefrontClient) FindUserByEmail(ctx context.Context, in *FindUserByEmailRequest, opts ...grpc.CallOption) (*FindUserByEmailResponse, error) {
	return invoke[FindUserByEmailRequest, FindUserByEmailResponse](ctx, c.cc, MethodFindUserByEmail, in, opts)
}

func (c *StorefrontClient) InsertUser(ctx context.Context, in *InsertUserRequest, opts ...grpc.CallOption) (*InsertUserResponse, error) {
	return invoke[InsertUserRequest, InsertUserResponse](ctx, c.cc, MethodInsertUser, in, opts)
}

func (c *StorefrontClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error) {
	return invoke[GetUserRequest, GetUserResponse](ctx, c.cc, MethodGetUser, in, opts)
}

func (c *StorefrontClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UpdateUserResponse, error) {
	return invoke[UpdateUserRequest, UpdateUserResponse](ctx, c.cc, MethodUpdateUser, in, opts)
}

func (c *StorefrontClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsRequest, ListProductsResponse](ctx, c.cc, MethodListProducts, in, opts)
}

func (c *StorefrontClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*GetProductResponse, error) {
	return invoke[GetProductRequest, GetProductResponse](ctx, c.cc, MethodGetProduct, in, opts)
}

func (c *StorefrontClient) InsertFavorite(ctx context.Context, in *FavoriteRequest, opts ...grpc.CallOption) (*FavoriteResponse, error) {
	return invoke[FavoriteRequest, FavoriteResponse](ctx, c.cc, MethodInsertFavorite, in, opts)
}

func (c *StorefrontClient) DeleteFavorite(ctx context.Context, in *FavoriteRequest, opts ...grpc.CallOption) (*FavoriteResponse, error) {
	return invoke[FavoriteRequest, FavoriteResponse](ctx, c.cc, MethodDeleteFavorite, in, opts)
}

func (c *StorefrontClient) ListFavorites(ctx context.Context, in *ListFavoritesRequest, opts ...grpc.CallOption) (*ListFavoritesResponse, error) {
	return invoke[ListFavoritesRequest, ListFavoritesResponse](ctx, c.cc, MethodListFavorites, in, opts)
}
