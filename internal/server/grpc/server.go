package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/beautystore/internal/logging"
	"github.com/dmitrijs2005/beautystore/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	rpc.UnimplementedStorefrontServer
	address   string
	users     UserService
	catalog   CatalogService
	favorites FavoriteService
	logger    logging.Logger
	jwtSecret []byte
	signIns   *signInLimiter
}

// Option customizes a GRPCServer.
type Option func(*GRPCServer)

// WithSignInLimit throttles SignIn per email address. perMinute <= 0 turns
// throttling off.
func WithSignInLimit(perMinute, burst int) Option {
	return func(s *GRPCServer) {
		s.signIns = newSignInLimiter(perMinute, burst)
	}
}

func NewGRPCServer(a string, l logging.Logger, us UserService, cs CatalogService, fs FavoriteService, secretKey string, opts ...Option) *GRPCServer {
	s := &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		catalog:   cs,
		favorites: fs,
		jwtSecret: []byte(secretKey),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.signInThrottleInterceptor,
		s.accessTokenInterceptor,
	))

	rpc.RegisterStorefrontServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
