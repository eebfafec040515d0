package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/beautystore/internal/client/models"
	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/logging"
	"github.com/dmitrijs2005/beautystore/internal/rpc"
	"github.com/sethvargo/go-retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultReadRetries    = 3
	defaultBackoffBase    = 100 * time.Millisecond
	defaultBackoffCeiling = time.Second
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	api         *rpc.StorefrontClient
	health      healthpb.HealthClient
	logger      logging.Logger

	timeout        time.Duration
	readRetries    uint64
	backoffBase    time.Duration
	backoffCeiling time.Duration
	dialOptions    []grpc.DialOption

	mu          sync.RWMutex
	accessToken string
}

type Option func(*GRPCClient)

// WithTimeout bounds every single attempt of every call.
func WithTimeout(d time.Duration) Option {
	return func(c *GRPCClient) { c.timeout = d }
}

// WithReadRetry configures the backoff used for idempotent reads.
func WithReadRetry(maxRetries uint64, base, ceiling time.Duration) Option {
	return func(c *GRPCClient) {
		c.readRetries = maxRetries
		c.backoffBase = base
		c.backoffCeiling = ceiling
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *GRPCClient) { c.logger = l }
}

// WithDialOptions appends raw grpc dial options (tests use it for bufconn).
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *GRPCClient) { c.dialOptions = append(c.dialOptions, opts...) }
}

func NewGRPCClient(endpointURL string, opts ...Option) (*GRPCClient, error) {
	c := &GRPCClient{
		endpointURL:    endpointURL,
		timeout:        defaultTimeout,
		readRetries:    defaultReadRetries,
		backoffBase:    defaultBackoffBase,
		backoffCeiling: defaultBackoffCeiling,
		logger:         logging.NewNopLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("module", "grpc_client")

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, c.dialOptions...)

	conn, err := grpc.NewClient(c.endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.api = rpc.NewStorefrontClient(conn)
	c.health = healthpb.NewHealthClient(conn)
	return c, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := c.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken installs (or, with "", removes) the token sent with every call.
func (c *GRPCClient) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// mutate runs fn once under the per-call timeout.
func (c *GRPCClient) mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.mapError(fn(ctx))
}

// read runs fn like mutate but retries while the server is unavailable.
func (c *GRPCClient) read(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	b := retry.NewExponential(c.backoffBase)
	b = retry.WithCappedDuration(c.backoffCeiling, b)
	b = retry.WithMaxRetries(c.readRetries, b)

	attempt := 0
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := c.mutate(ctx, fn)
		if errors.Is(err, ErrUnavailable) {
			c.logger.Warn(ctx, "read failed, will retry", "op", op, "attempt", attempt)
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrValidation, st.Message())
	default:
		return fmt.Errorf("%w: rpc error: %w", ErrRemoteCall, err)
	}
}

func (c *GRPCClient) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	var resp *rpc.SignInResponse
	err := c.mutate(ctx, func(ctx context.Context) (err error) {
		resp, err = c.api.SignIn(ctx, &rpc.SignInRequest{Email: email, Password: password})
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return userFromRPC(resp.User), resp.AccessToken, nil
}

func (c *GRPCClient) FindUserByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	var resp *rpc.FindUserByEmailResponse
	err := c.read(ctx, rpc.MethodFindUserByEmail, func(ctx context.Context) (err error) {
		resp, err = c.api.FindUserByEmail(ctx, &rpc.FindUserByEmailRequest{Email: email})
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if !resp.Found || resp.User == nil {
		return nil, false, nil
	}
	return userFromRPC(*resp.User), true, nil
}

func (c *GRPCClient) InsertUser(ctx context.Context, name, email, password string) (*models.User, error) {
	var resp *rpc.InsertUserResponse
	err := c.mutate(ctx, func(ctx context.Context) (err error) {
		resp, err = c.api.InsertUser(ctx, &rpc.InsertUserRequest{Name: name, Email: email, Password: password})
		return err
	})
	if err != nil {
		return nil, err
	}
	return userFromRPC(resp.User), nil
}

func (c *GRPCClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	var resp *rpc.GetUserResponse
	err := c.read(ctx, rpc.MethodGetUser, func(ctx context.Context) (err error) {
		resp, err = c.api.GetUser(ctx, &rpc.GetUserRequest{ID: id})
		return err
	})
	if err != nil {
		return nil, err
	}
	return userFromRPC(resp.User), nil
}

func (c *GRPCClient) UpdateUser(ctx context.Context, id string, name, password *string) (*models.User, error) {
	var resp *rpc.UpdateUserResponse
	err := c.mutate(ctx, func(ctx context.Context) (err error) {
		resp, err = c.api.UpdateUser(ctx, &rpc.UpdateUserRequest{ID: id, Name: name, Password: password})
		return err
	})
	if err != nil {
		return nil, err
	}
	return userFromRPC(resp.User), nil
}

func (c *GRPCClient) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	var resp *rpc.ListProductsResponse
	err := c.read(ctx, rpc.MethodListProducts, func(ctx context.Context) (err error) {
		resp, err = c.api.ListProducts(ctx, &rpc.ListProductsRequest{Category: category})
		return err
	})
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, productFromRPC(p))
	}
	return products, nil
}

func (c *GRPCClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var resp *rpc.GetProductResponse
	err := c.read(ctx, rpc.MethodGetProduct, func(ctx context.Context) (err error) {
		resp, err = c.api.GetProduct(ctx, &rpc.GetProductRequest{ID: id})
		return err
	})
	if err != nil {
		return nil, err
	}
	p := productFromRPC(resp.Product)
	return &p, nil
}

func (c *GRPCClient) InsertFavorite(ctx context.Context, userID, productID string) error {
	return c.mutate(ctx, func(ctx context.Context) error {
		_, err := c.api.InsertFavorite(ctx, &rpc.FavoriteRequest{UserID: userID, ProductID: productID})
		return err
	})
}

func (c *GRPCClient) DeleteFavorite(ctx context.Context, userID, productID string) error {
	return c.mutate(ctx, func(ctx context.Context) error {
		_, err := c.api.DeleteFavorite(ctx, &rpc.FavoriteRequest{UserID: userID, ProductID: productID})
		return err
	})
}

func (c *GRPCClient) ListFavorites(ctx context.Context, userID string) ([]models.FavoriteRow, error) {
	var resp *rpc.ListFavoritesResponse
	err := c.read(ctx, rpc.MethodListFavorites, func(ctx context.Context) (err error) {
		resp, err = c.api.ListFavorites(ctx, &rpc.ListFavoritesRequest{UserID: userID})
		return err
	})
	if err != nil {
		return nil, err
	}
	rows := make([]models.FavoriteRow, 0, len(resp.Favorites))
	for _, f := range resp.Favorites {
		row := models.FavoriteRow{UserID: f.UserID, ProductID: f.ProductID}
		if f.Product != nil {
			p := productFromRPC(*f.Product)
			row.Product = &p
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Ping asks the standard grpc health service whether the storefront is serving.
func (c *GRPCClient) Ping(ctx context.Context) error {
	var resp *healthpb.HealthCheckResponse
	err := c.mutate(ctx, func(ctx context.Context) (err error) {
		resp, err = c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: rpc.ServiceName})
		return err
	})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func userFromRPC(u rpc.User) *models.User {
	return &models.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func productFromRPC(p rpc.Product) models.Product {
	return models.Product{
		ID:          p.ID,
		Name:        p.Name,
		PriceCents:  p.PriceCents,
		Category:    p.Category,
		Description: p.Description,
		ImagePath:   p.ImagePath,
		ImageURL:    p.ImageURL,
	}
}
