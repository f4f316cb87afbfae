package inject

import (
	"fmt"
	"net/http"

	gohttp "github.com/km-arc/go-decoupler/framework/http"
	"github.com/km-arc/go-decoupler/framework/locator"
)

// ── Provider ──────────────────────────────────────────────────────────────────

// ProviderOptions selects the locator a Provider scopes requests to. Locator
// wins when both are set; otherwise a new locator is built from Services.
type ProviderOptions[K comparable] struct {
	Services map[K]any
	Locator  *locator.Locator[K]
}

// Provider returns middleware that scopes every request passing through it to
// one locator.
//
//	mw, err := inject.Provider(inject.ProviderOptions[string]{
//	    Services: map[string]any{"clock": time.Now},
//	})
func Provider[K comparable](opts ProviderOptions[K]) (func(http.Handler) http.Handler, error) {
	l := opts.Locator
	if l == nil {
		if opts.Services == nil {
			return nil, ErrNoServices
		}
		var err error
		if l, err = locator.FromServices(opts.Services); err != nil {
			return nil, err
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), l)))
		})
	}, nil
}

// ── WithServices ──────────────────────────────────────────────────────────────

// Component is an HTTP handler that declares the services it needs.
//
// Dependencies returns a []K for positional services or a map[K]string for
// services named by alias; it is read on every request.
type Component interface {
	Dependencies() any
	ServeWithServices(w http.ResponseWriter, r *http.Request, services locator.Resolved)
}

type componentFunc struct {
	deps any
	fn   func(http.ResponseWriter, *http.Request, locator.Resolved)
}

func (c componentFunc) Dependencies() any { return c.deps }

func (c componentFunc) ServeWithServices(w http.ResponseWriter, r *http.Request, s locator.Resolved) {
	c.fn(w, r, s)
}

// ServicesFunc builds a Component from a dependency list and a function.
//
//	h := inject.WithServices[string](inject.ServicesFunc(
//	    []string{"APIClient"},
//	    func(w http.ResponseWriter, r *http.Request, s locator.Resolved) { ... },
//	))
func ServicesFunc(deps any, fn func(http.ResponseWriter, *http.Request, locator.Resolved)) Component {
	return componentFunc{deps: deps, fn: fn}
}

// WithServices adapts c to an http.Handler that resolves c's dependencies
// from the request scope before calling it. A component without dependencies
// receives an empty positional result. Resolution failures, including a
// missing scope, are answered with 500 and never reach c.
func WithServices[K comparable](c Component) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps := c.Dependencies()
		if deps == nil {
			deps = []K{}
		}

		l, err := Locator[K](r.Context())
		if err != nil {
			gohttp.NewResponse(w).ServerError(err.Error())
			return
		}
		services, err := l.Resolve(deps)
		if err != nil {
			l.Logger().Error("Service resolution failed",
				"scope", l.ID(), "component", fmt.Sprintf("%T", c), "error", err)
			gohttp.NewResponse(w).ServerError(err.Error())
			return
		}
		c.ServeWithServices(w, r, services)
	})
}
