// Package server wires the storefront backend: it opens the database,
// applies migrations, builds the services and runs the gRPC server until
// a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/beautystore/internal/logging"
	"github.com/dmitrijs2005/beautystore/internal/server/config"
	"github.com/dmitrijs2005/beautystore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/beautystore/internal/server/services"

	gs "github.com/dmitrijs2005/beautystore/internal/server/grpc"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	db               *sql.DB
	userService      *services.UserService
	catalogService   *services.CatalogService
	favoritesService *services.FavoriteService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	us := services.NewUserService(db, rm, c, logger)
	cs := services.NewCatalogService(db, rm, c, logger)
	fs := services.NewFavoriteService(db, rm, cs, logger)

	return &App{
		config:           c,
		logger:           logger,
		db:               db,
		userService:      us,
		catalogService:   cs,
		favoritesService: fs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(
		app.config.EndpointAddrGRPC,
		app.logger,
		app.userService,
		app.catalogService,
		app.favoritesService,
		app.config.SecretKey,
		gs.WithSignInLimit(app.config.SignInRatePerMinute, app.config.SignInBurst),
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
