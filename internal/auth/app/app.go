package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	httpapi "github.com/aussiebroadwan/shopauth/internal/auth/http"
	"github.com/aussiebroadwan/shopauth/internal/auth/service"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/shopauth/pkg/cryptox"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
	"github.com/aussiebroadwan/shopauth/pkg/kv"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	redis redis.UniversalClient // nil without AUTH_REDIS_URL

	services     *service.Services
	housekeeping *service.HousekeepingService // nil when disabled

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "shop-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			ShopID:  cfg.ShopID,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)
	if cfg.MasterKeyPath != "" {
		cryptox.SetMasterKeyPath(cfg.MasterKeyPath)
		app.logger.Info("master key path configured", "path", cfg.MasterKeyPath)
	} else if os.Getenv("AUTH_MASTER_KEY") == "" {
		app.logger.Warn("no master key configured, the stored signature key will not survive a restart")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.close()
		return nil, err
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.initKeys(ctx); err != nil {
		_ = app.close()
		return nil, err
	}
	if err := app.bootstrap(ctx); err != nil {
		_ = app.close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.housekeeping != nil {
		app.housekeeping.Start()
	}

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGrace)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeeping != nil {
		app.housekeeping.Stop()
	}

	if err := app.close(); err != nil {
		app.logger.Error("error closing resources", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

func (app *Application) close() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	return app.db.Close()
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices wires the token services over the store
func (app *Application) initServices() error {
	tokenLifetime, refreshLifetime, err := app.cfg.Lifetimes()
	if err != nil {
		return err
	}

	opts := service.Options{
		Store:             app.db,
		Shop:              service.Shop{ID: app.cfg.ShopID, URL: app.cfg.ShopURL},
		TokenLifetime:     tokenLifetime,
		RefreshLifetime:   refreshLifetime,
		Quota:             app.cfg.TokenQuota,
		FingerprintCookie: service.FingerprintCookie,
	}

	if app.cfg.RedisURL != "" {
		client, err := kv.NewUniversalClient(app.cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to initialize redis client: %w", err)
		}
		app.redis = client
		opts.Lockout = kv.NewLockout(client, app.cfg.LoginMaxFailures, app.cfg.LoginLockout)
		app.logger.Info("login lockout enabled",
			"max_failures", app.cfg.LoginMaxFailures,
			"lockout", app.cfg.LoginLockout,
		)
	}

	app.services = service.New(opts)

	if app.cfg.HousekeepingEvery > 0 {
		app.housekeeping = service.NewHousekeepingService(app.db, app.logger, app.cfg.HousekeepingEvery)
	}

	app.logger.Info("token services configured",
		"shop_id", app.cfg.ShopID,
		"token_lifetime", tokenLifetime,
		"refresh_token_lifetime", refreshLifetime,
		"quota", app.cfg.TokenQuota,
	)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.services,
		app.db,
		httpx.CookieMode(app.cfg.FingerprintCookie),
		BuildVersion,
		app.logger,
	)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
