package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/treasury/internal/treasury/http"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/internal/treasury/store/drivers/sqlstore"
	"github.com/aussiebroadwan/treasury/pkg/cryptox"
	"github.com/aussiebroadwan/treasury/pkg/jwtx"
	"github.com/aussiebroadwan/treasury/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the treasury store, services and HTTP server together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	keys    *jwtx.KeySet
	signer  jwtx.Signer
	metrics *metrics.Metrics

	Services Services

	server *http.Server
	router *httpapi.Router
}

// Services is every business service, also used directly by the CLI.
type Services struct {
	Users      *service.UserService
	Roles      *service.RolesService
	Bootstrap  *service.BootstrapService
	Semesters  *service.SemesterService
	Dues       *service.DuesService
	Committees *service.CommitteeService
	Ledger     *service.LedgerService
	Events     *service.EventService
	Members    *service.MemberService
	Audit      *service.AuditService
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "treasury",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// OpenStore connects to the configured database and applies migrations.
func OpenStore(cfg Config) (*sqlstore.Store, error) {
	db, err := sqlstore.Open(sqlstore.Dialect(cfg.DBDriver), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// New creates an Application with every dependency initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:     cfg,
		logger:  NewLogger(cfg),
		metrics: metrics.New(),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	db, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully", slog.String("driver", cfg.DBDriver))

	if err := app.initKeys(); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.Services = NewServices(app.db, app.metrics, cfg.BootstrapToken)
	app.initHTTP()

	return app, nil
}

// NewServices builds the service layer over st. m may be nil.
func NewServices(st store.Store, m *metrics.Metrics, bootstrapToken string) Services {
	return Services{
		Users:      &service.UserService{Store: st, Metrics: m},
		Roles:      &service.RolesService{Store: st, Metrics: m},
		Bootstrap:  &service.BootstrapService{Store: st, Metrics: m, Token: bootstrapToken},
		Semesters:  &service.SemesterService{Store: st, Metrics: m},
		Dues:       &service.DuesService{Store: st, Metrics: m},
		Committees: &service.CommitteeService{Store: st, Metrics: m},
		Ledger:     &service.LedgerService{Store: st, Metrics: m},
		Events:     &service.EventService{Store: st, Metrics: m},
		Members:    &service.MemberService{Store: st, Metrics: m},
		Audit:      &service.AuditService{Store: st, Metrics: m},
	}
}

// Run starts the server and blocks until a shutdown signal or server error.
func (app *Application) Run() error {
	app.logger.Info("treasury service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
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

// Handler exposes the routed handler, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down treasury service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("treasury service stopped")
	return nil
}

// initKeys loads the signing key, generating it on first start.
func (app *Application) initKeys() error {
	signer, err := jwtx.LoadOrGenerateSigner(app.cfg.SigningKeyFile)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return fmt.Errorf("failed to publish signing key: %w", err)
	}
	app.signer = signer
	app.keys = keys
	app.logger.Info("signing key loaded", slog.String("kid", signer.KID()), slog.String("alg", signer.Alg()))
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		jwtx.NewCommonEdDSA(app.keys, app.cfg.Issuer, nil),
		app.signer,
		app.cfg.Issuer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AccessTTL = app.cfg.AccessTTL
	router.Metrics = app.metrics
	router.UserService = app.Services.Users
	router.RolesService = app.Services.Roles
	router.BootstrapService = app.Services.Bootstrap
	router.SemesterService = app.Services.Semesters
	router.DuesService = app.Services.Dues
	router.CommitteeService = app.Services.Committees
	router.LedgerService = app.Services.Ledger
	router.EventService = app.Services.Events
	router.MemberService = app.Services.Members
	router.AuditService = app.Services.Audit
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
