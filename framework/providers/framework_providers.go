package providers

import (
	"cmp"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/km-arc/go-decoupler/framework/config"
	gohttp "github.com/km-arc/go-decoupler/framework/http"
	"github.com/km-arc/go-decoupler/framework/inject"
	"github.com/km-arc/go-decoupler/framework/locator"
	"github.com/km-arc/go-decoupler/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider registers the loaded configuration, and every literal
// service of the manifest named by Config.ServicesFile.
//
// Registered keys:
//   - "config" → *config.Config
//   - one key per manifest entry
type ConfigServiceProvider struct {
	locator.BaseProvider[string]
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(l *locator.Locator[string]) error {
	if err := l.Register("config", p.Config); err != nil {
		return err
	}
	if p.Config.ServicesFile == "" {
		return nil
	}
	services, err := config.LoadServices(p.Config.ServicesFile)
	if err != nil {
		return err
	}
	return l.RegisterAll(services)
}

func (p *ConfigServiceProvider) Provides() []string { return []string{"config"} }

// ── LoggerServiceProvider ─────────────────────────────────────────────────────

// LoggerServiceProvider registers the application logger.
//
// Registered keys:
//   - "logger" → *slog.Logger
type LoggerServiceProvider struct {
	locator.BaseProvider[string]
	Logger *slog.Logger
}

func (p *LoggerServiceProvider) Register(l *locator.Locator[string]) error {
	return l.Register("logger", p.Logger)
}

func (p *LoggerServiceProvider) Provides() []string { return []string{"logger"} }

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. Every request through it
// is scoped to the application locator, so handlers can use the inject
// accessors.
//
// Registered keys:
//   - "router" → *routing.Router
//
// With AccessLog set, every request is logged through it. With Inspect set,
// GET /_locator/services lists the registered keys.
type RoutingServiceProvider struct {
	locator.BaseProvider[string]
	AccessLog *slog.Logger
	Inspect   bool
}

func (p *RoutingServiceProvider) Register(l *locator.Locator[string]) error {
	scope, err := inject.Provider(inject.ProviderOptions[string]{Locator: l})
	if err != nil {
		return err
	}
	router := routing.New()
	if p.AccessLog != nil {
		router.Middleware(routing.AccessLog(p.AccessLog))
	}
	router.Middleware(scope)
	return l.Register("router", router)
}

func (p *RoutingServiceProvider) Boot(l *locator.Locator[string]) error {
	if !p.Inspect {
		return nil
	}
	router, err := locator.Get[*routing.Router](l, "router")
	if err != nil {
		return err
	}
	router.Get("/_locator/services", inspectServices)
	return nil
}

func (p *RoutingServiceProvider) Provides() []string { return []string{"router"} }

// ServiceInfo describes one registration in the inspection listing.
type ServiceInfo struct {
	Key        string `json:"key"`
	Type       string `json:"type"`
	AsInstance bool   `json:"as_instance"`
	Params     int    `json:"params"`
	Bound      bool   `json:"bound"`
}

func inspectServices(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	l, err := inject.Locator[string](r.Context())
	if err != nil {
		res.ServerError(err.Error())
		return
	}

	deps := l.Dependencies()
	out := make([]ServiceInfo, 0, len(deps))
	for key, def := range deps {
		out = append(out, ServiceInfo{
			Key:        key,
			Type:       typeName(def.Service),
			AsInstance: def.Options.AsInstance,
			Params:     len(def.Options.WithParams),
			Bound:      def.Options.WithParams != nil,
		})
	}
	slices.SortFunc(out, func(a, b ServiceInfo) int { return cmp.Compare(a.Key, b.Key) })

	res.Success(map[string]any{"scope": l.ID(), "services": out})
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
