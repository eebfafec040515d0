package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/rpc"
	"github.com/dmitrijs2005/beautystore/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// protectedMethods need a valid access token.
var protectedMethods = map[string]bool{
	rpc.FullMethod(rpc.MethodGetUser):        true,
	rpc.FullMethod(rpc.MethodUpdateUser):     true,
	rpc.FullMethod(rpc.MethodInsertFavorite): true,
	rpc.FullMethod(rpc.MethodDeleteFavorite): true,
	rpc.FullMethod(rpc.MethodListFavorites):  true,
}

// UserIDFromContext returns the user id stored by the access token
// interceptor.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// accessTokenInterceptor authenticates protected methods and rejects
// requests that address another user's rows.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	if owner := requestOwner(req); owner != "" && owner != userID {
		return nil, status.Error(codes.PermissionDenied, "forbidden")
	}

	ctx = context.WithValue(ctx, userIDKey, userID)

	return handler(ctx, req)
}

// requestOwner returns the user id a request addresses, or "" when it does
// not address one.
func requestOwner(req interface{}) string {
	switch r := req.(type) {
	case *rpc.GetUserRequest:
		return r.ID
	case *rpc.UpdateUserRequest:
		return r.ID
	case *rpc.FavoriteRequest:
		return r.UserID
	case *rpc.ListFavoritesRequest:
		return r.UserID
	}
	return ""
}

// signInThrottleInterceptor limits SignIn attempts per email address.
func (s *GRPCServer) signInThrottleInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if s.signIns == nil || info.FullMethod != rpc.FullMethod(rpc.MethodSignIn) {
		return handler(ctx, req)
	}

	if r, ok := req.(*rpc.SignInRequest); ok {
		email := common.NormalizeEmail(r.Email)
		if !s.signIns.Allow(email) {
			s.logger.Warn(ctx, "sign-in throttled", "email", email)
			return nil, status.Error(codes.ResourceExhausted, "too many sign-in attempts")
		}
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
	return resp, err
}
