// Package inject makes a locator available to everything below a scope and
// exposes the ways to pull services out of it.
//
// A scope is a context.Context carrying one locator. HTTP handlers get one
// from the Provider middleware; other code calls NewContext directly. Every
// accessor fails with ErrNoProvider outside a scope.
//
//	mw, _ := inject.Provider(inject.ProviderOptions[string]{Locator: l})
//	router.Middleware(mw)
//
//	// inside a handler
//	r, err := inject.Services[string](req.Context(), []string{"APIClient"})
package inject

import (
	"context"
	"errors"
	"fmt"

	"github.com/km-arc/go-decoupler/framework/locator"
)

var (
	// ErrNoProvider is returned by every accessor used outside a scope.
	ErrNoProvider = errors.New("must be used inside an inject.Provider scope")

	// ErrNoServices is returned when a Provider is given neither services nor
	// a locator.
	ErrNoServices = errors.New("must provide services or a locator to inject.Provider")
)

type scopeKey struct{}

// NewContext returns a copy of ctx scoped to l.
func NewContext[K comparable](ctx context.Context, l *locator.Locator[K]) context.Context {
	return context.WithValue(ctx, scopeKey{}, l)
}

// Locator returns the locator of the scope ctx belongs to.
func Locator[K comparable](ctx context.Context) (*locator.Locator[K], error) {
	v := ctx.Value(scopeKey{})
	if v == nil {
		return nil, ErrNoProvider
	}
	l, ok := v.(*locator.Locator[K])
	if !ok || l == nil {
		return nil, fmt.Errorf("%w: scope holds %T", ErrNoProvider, v)
	}
	return l, nil
}

// Services resolves deps, a []K or map[K]string, from the scope's locator.
func Services[K comparable](ctx context.Context, deps any) (locator.Resolved, error) {
	l, err := Locator[K](ctx)
	if err != nil {
		return locator.Resolved{}, err
	}
	return l.Resolve(deps)
}

// Inject resolves deps and hands the result to fn, returning fn's error.
//
//	err := inject.Inject[string](ctx, []string{"TripManager"}, func(r locator.Resolved) error {
//	    return render(w, r.At(0).(*TripManager))
//	})
func Inject[K comparable](ctx context.Context, deps any, fn func(locator.Resolved) error) error {
	r, err := Services[K](ctx, deps)
	if err != nil {
		return err
	}
	return fn(r)
}
