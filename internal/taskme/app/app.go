package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/events"
	httpapi "github.com/aussiebroadwan/taskme/internal/taskme/http"
	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/internal/taskme/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskme/pkg/cryptox"
	"github.com/aussiebroadwan/taskme/pkg/jwtx"
	"github.com/aussiebroadwan/taskme/pkg/llm"
	"github.com/aussiebroadwan/taskme/pkg/mailx"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application owns every long-lived dependency of the API process.
type Application struct {
	cfg    *Config
	logger *slog.Logger

	db     *sqlite.Store
	hub    *events.Hub
	router *httpapi.Router
	server *http.Server

	stopHub context.CancelFunc
	hubDone sync.WaitGroup
}

// New builds the application: database and migrations, data bootstrap,
// external clients, services and the HTTP router.
func New(cfg *Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "taskme-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == DefaultJWTSecret {
		app.logger.Warn("using the default JWT secret, set JWT_SECRET_KEY")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// initDatabase opens the store and brings the schema up to date.
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseDSN, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	version, _, err := db.MigrationVersion()
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	app.logger.Info("database migrations applied", "version", version)
	return nil
}

func (app *Application) initServices() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	pepper, err := cryptox.LoadPepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	hasher := cryptox.NewPasswordHasher(pepper)

	// 1. Bring legacy rows under an owner and seed core columns
	boot := &service.BootstrapService{Store: app.db, Hasher: hasher}
	rep, err := boot.Run(ctx)
	if err != nil {
		return fmt.Errorf("data bootstrap failed: %w", err)
	}
	app.logger.Info("data bootstrap complete",
		"admin_created", rep.AdminCreated,
		"tasks", rep.Tasks,
		"columns", rep.Columns,
		"shared_lists", rep.SharedLists,
		"seeded_users", rep.SeededUsers,
	)

	// 2. Token signing
	hmac, err := jwtx.NewHMAC(app.cfg.JWTAlgorithm, []byte(app.cfg.JWTSecret), "taskme")
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}

	// 3. Outbound clients
	registry, err := llm.FromConfig(app.cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM providers: %w", err)
	}
	mailer, err := mailx.New(app.cfg.Mail)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	if _, ok := mailer.(mailx.Disabled); ok {
		app.logger.Warn("no email transport configured, verification and notification emails will fail")
	}

	// 4. Live updates
	app.hub = events.NewHub(app.logger, app.cfg.Origins())

	// 5. HTTP
	router := httpapi.NewRouter(hmac, BuildVersion, app.db, app.logger, app.cfg.Origins())
	router.Limits = app.cfg.RateLimits
	router.FrontendURL = app.cfg.FrontendURL
	router.EnableDocs = app.cfg.EnableDocs
	router.Hub = app.hub

	router.AuthService = &service.AuthService{
		Store:           app.db,
		Hasher:          hasher,
		Signer:          hmac,
		Mailer:          mailer,
		AccessTTL:       app.cfg.AccessTokenTTL,
		VerificationTTL: app.cfg.VerificationTTL,
		PublicURL:       app.cfg.PublicURL,
	}
	router.TaskService = &service.TaskService{Store: app.db, Events: app.hub}
	router.ColumnService = &service.ColumnService{Store: app.db}
	router.ParseService = &service.ParseService{Store: app.db, LLM: registry}
	router.ExportService = &service.ExportService{Store: app.db}
	router.ShareService = &service.ShareService{Store: app.db, FrontendURL: app.cfg.FrontendURL}
	router.NotifyService = &service.NotifyService{Store: app.db, Mailer: mailer}
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}

// Handler exposes the root handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the event hub and the HTTP server and blocks until a shutdown
// signal or a server error.
func (app *Application) Run() error {
	hubCtx, cancel := context.WithCancel(context.Background())
	app.stopHub = cancel
	app.hubDone.Add(1)
	go func() {
		defer app.hubDone.Done()
		app.hub.Run(hubCtx)
	}()

	app.logger.Info("taskme api starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"docs", app.cfg.EnableDocs,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
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

// Shutdown drains HTTP requests, closes websocket connections and the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down taskme api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.stopHub != nil {
		app.stopHub()
		app.hubDone.Wait()
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("taskme api stopped")
	return nil
}
