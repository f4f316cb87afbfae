package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-decoupler/framework/app"
	"github.com/km-arc/go-decoupler/framework/config"
	gohttp "github.com/km-arc/go-decoupler/framework/http"
	"github.com/km-arc/go-decoupler/framework/inject"
	"github.com/km-arc/go-decoupler/framework/locator"
	"github.com/km-arc/go-decoupler/internal/vehicles"
)

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		panic(err)
	}
	log := application.Log()

	// ── Fleet services ────────────────────────────────────────────────────────

	if err := application.RegisterProvider(&vehicles.ServiceProvider{
		BaseURL: config.Get("VEHICLES_API_URL", "http://localhost:9000"),
	}); err != nil {
		log.Error("Failed to register fleet services", "error", err)
		os.Exit(1)
	}
	if err := application.Boot(); err != nil {
		log.Error("Failed to boot", "error", err)
		os.Exit(1)
	}

	// ── Routes ────────────────────────────────────────────────────────────────

	r := application.Router()

	r.Handle(http.MethodGet, "/", inject.WithServices[string](inject.ServicesFunc(
		map[string]string{"config": "config"},
		func(w http.ResponseWriter, _ *http.Request, s locator.Resolved) {
			cfg, _ := s.Get("config")
			gohttp.NewResponse(w).Success(map[string]any{
				"message": "Welcome to " + cfg.(*config.Config).App.Name,
			})
		},
	)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
