package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/beautystore/internal/client/client"
	"github.com/dmitrijs2005/beautystore/internal/client/config"
	"github.com/dmitrijs2005/beautystore/internal/client/favorites"
	"github.com/dmitrijs2005/beautystore/internal/client/models"
	"github.com/dmitrijs2005/beautystore/internal/client/repositories/items"
	"github.com/dmitrijs2005/beautystore/internal/client/securestore"
	"github.com/dmitrijs2005/beautystore/internal/client/services"
	"github.com/dmitrijs2005/beautystore/internal/client/session"
	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type sessionManager interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	ResetDevice(ctx context.Context) error
	CurrentSession(ctx context.Context) (*models.Session, bool)
	Subscribe() (<-chan session.Event, func())
	Expire(ctx context.Context, err error) bool
}

type favoritesSync interface {
	Track(p models.Product, initial bool)
	Toggle(ctx context.Context, userID, productID string) (bool, error)
	Refresh(ctx context.Context, userID string) error
	Detach()
	Reset()
	Status(productID string) favorites.Status
	Favorites() []models.Product
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	sessions  sessionManager
	accounts  services.AccountService
	catalog   services.CatalogService
	favorites favoritesSync

	events      <-chan session.Event
	unsubscribe func()
	closers     []func() error

	mu      sync.RWMutex
	current *models.Session
	Mode    Mode

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires local storage, the backend client and the services on top of
// them. The returned App owns every resource it opened; release them with
// Close.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	key, err := securestore.LoadDeviceKey(c.KeyFile)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("device key: %w", err)
	}
	store, err := securestore.New(items.NewSQLiteRepository(db), key)
	common.WipeByteArray(key)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api, err := client.NewGRPCClient(c.ServerEndpointAddr,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		store.Close()
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, logger,
		session.NewManager(store, api, logger),
		services.NewAccountService(api, logger),
		services.NewCatalogService(api),
		favorites.NewSynchronizer(api, logger),
	)
	a.closers = []func() error{
		api.Close,
		func() error { store.Close(); return nil },
		db.Close,
	}
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, sm sessionManager, as services.AccountService, cs services.CatalogService, fs favoritesSync) *App {
	a := &App{
		config:    c,
		logger:    logger.With("module", "cli"),
		sessions:  sm,
		accounts:  as,
		catalog:   cs,
		favorites: fs,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
	a.events, a.unsubscribe = sm.Subscribe()
	return a
}

// Close releases everything NewApp opened, in reverse dependency order.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run restores a stored session, starts the connectivity watcher and blocks
// in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the beauty store (type 'help' for commands)")

	if s, ok := a.sessions.CurrentSession(ctx); ok {
		a.setCurrent(s)
		fmt.Fprintf(a.out, "Signed in as %s\n", s.Email)
		a.refreshFavorites(ctx)
	}

	interval := 3 * time.Second
	if a.config != nil && a.config.OnlineCheckInterval > 0 {
		interval = a.config.OnlineCheckInterval
	}
	go a.StartOnlineStatusWatcher(ctx, interval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Mode
}

func (a *App) setCurrent(s *models.Session) {
	a.mu.Lock()
	a.current = s
	a.mu.Unlock()
}

func (a *App) currentSession() *models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

func (a *App) isLoggedIn() bool {
	return a.currentSession() != nil
}

func (a *App) userID() string {
	if s := a.currentSession(); s != nil {
		return s.UserID
	}
	return ""
}

func (a *App) getStatus() string {
	s := ""
	if cur := a.currentSession(); cur != nil {
		s = cur.Email + " "
	}
	s += string(a.mode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// applySessionEvents drains pending session events and switches the command
// graph accordingly. It runs on the REPL goroutine before every prompt.
func (a *App) applySessionEvents(ctx context.Context) {
	for {
		select {
		case ev, ok := <-a.events:
			if !ok {
				return
			}
			a.onSessionEvent(ctx, ev)
		default:
			return
		}
	}
}

func (a *App) onSessionEvent(ctx context.Context, ev session.Event) {
	switch ev.Kind {
	case session.EventLoggedIn:
		a.setCurrent(ev.Session)
		fmt.Fprintf(a.out, "Signed in as %s\n", ev.Session.Email)
		a.refreshFavorites(ctx)
	case session.EventLoggedOut:
		a.setCurrent(nil)
		a.favorites.Reset()
		fmt.Fprintln(a.out, "Signed out")
	case session.EventExpired:
		a.setCurrent(nil)
		a.favorites.Reset()
		fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := a.accounts.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
