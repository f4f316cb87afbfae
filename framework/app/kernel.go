package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/km-arc/go-decoupler/framework/config"
	"github.com/km-arc/go-decoupler/framework/locator"
	"github.com/km-arc/go-decoupler/framework/providers"
	"github.com/km-arc/go-decoupler/framework/routing"
)

const shutdownTimeout = 10 * time.Second

// Application is the top-level application scope. It embeds the locator and
// its ProviderRegistry so user code can call app.Register(key, ...) and
// app.RegisterProvider(p) directly.
type Application struct {
	*locator.Locator[string]
	Providers *locator.ProviderRegistry[string]

	config *config.Config
	log    *slog.Logger
}

// New loads configuration, builds the application locator and registers the
// framework providers ("config", "logger", "router").
func New(envFiles ...string) (*Application, error) {
	return NewWithConfig(config.Load(envFiles...), os.Stderr)
}

// NewWithConfig is New with explicit configuration and log destination.
func NewWithConfig(cfg *config.Config, logOut io.Writer) (*Application, error) {
	logger := NewLogger(cfg.Log, logOut).With("app", cfg.App.Name)
	l := locator.New[string](locator.WithLogger(logger))
	registry := locator.NewProviderRegistry(l)

	app := &Application{
		Locator:   l,
		Providers: registry,
		config:    cfg,
		log:       logger.With("scope", l.ID()),
	}

	var accessLog *slog.Logger
	if cfg.App.Debug {
		accessLog = logger
	}
	for _, p := range []locator.ServiceProvider[string]{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggerServiceProvider{Logger: logger},
		&providers.RoutingServiceProvider{AccessLog: accessLog, Inspect: cfg.App.Debug},
	} {
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
	}
	return app, nil
}

// NewLogger builds the slog logger described by cfg.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// RegisterProvider adds a ServiceProvider to the application.
func (a *Application) RegisterProvider(p locator.ServiceProvider[string]) error {
	return a.Providers.Register(p)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config returns the application configuration.
func (a *Application) Config() *config.Config { return a.config }

// Log returns the application logger.
func (a *Application) Log() *slog.Logger { return a.log }

// Router resolves *routing.Router from the locator.
func (a *Application) Router() *routing.Router {
	return locator.MustGet[*routing.Router](a.Locator, "router")
}

// Run boots the application (if needed) and serves HTTP until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              ":" + a.config.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Server started", "addr", srv.Addr, "env", a.config.App.Env, "services", a.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.log.Info("Server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
