package locator

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations.
//
// Register is called as soon as the provider is added to a ProviderRegistry.
// Boot is called after every provider has been registered, so it is the place
// to resolve services registered by other providers.
//
//	type VehicleProvider struct{ locator.BaseProvider[string] }
//
//	func (p *VehicleProvider) Register(l *locator.Locator[string]) error {
//	    return l.Register("TripManager", NewTripManager, locator.AsInstance())
//	}
//
//	func (p *VehicleProvider) Provides() []string { return []string{"TripManager"} }
type ServiceProvider[K comparable] interface {
	// Register adds definitions to the locator.
	Register(l *Locator[K]) error

	// Boot runs once all providers are registered.
	Boot(l *Locator[K]) error

	// Provides lists the keys Register is expected to define. The registry
	// verifies them right after Register returns.
	Provides() []K
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider supplies no-op Boot and Provides. Embed it and implement
// Register.
type BaseProvider[K comparable] struct{}

func (BaseProvider[K]) Boot(*Locator[K]) error { return nil }
func (BaseProvider[K]) Provides() []K          { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders against one locator.
type ProviderRegistry[K comparable] struct {
	locator   *Locator[K]
	providers []ServiceProvider[K]
	booted    bool
}

// NewProviderRegistry creates a registry bound to l.
func NewProviderRegistry[K comparable](l *Locator[K]) *ProviderRegistry[K] {
	return &ProviderRegistry[K]{locator: l}
}

// Register adds a provider and calls its Register method. Adding the same
// provider twice is a no-op; providers are matched with ==, so pass pointers
// for identity. A value provider that cannot be compared (a struct with a
// slice or map field) is registered on every call. A provider added after
// Boot is booted at once.
func (r *ProviderRegistry[K]) Register(p ServiceProvider[K]) error {
	if r.has(p) {
		return nil
	}
	if err := p.Register(r.locator); err != nil {
		return fmt.Errorf("register provider %T: %w", p, err)
	}
	for _, key := range p.Provides() {
		if !r.locator.Has(key) {
			return fmt.Errorf("%w: provider %T did not register %s", ErrUnknownKey, p, formatKey(key))
		}
	}
	r.providers = append(r.providers, p)
	r.locator.logger.Debug("Provider registered", "scope", r.locator.id, "provider", fmt.Sprintf("%T", p))

	if r.booted {
		if err := p.Boot(r.locator); err != nil {
			return fmt.Errorf("boot provider %T: %w", p, err)
		}
	}
	return nil
}

func (r *ProviderRegistry[K]) has(p ServiceProvider[K]) bool {
	for _, q := range r.providers {
		if sameValue(p, q) {
			return true
		}
	}
	return false
}

// Boot calls Boot on every registered provider, in registration order. Only
// the first call has an effect.
func (r *ProviderRegistry[K]) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, p := range r.providers {
		if err := p.Boot(r.locator); err != nil {
			return fmt.Errorf("boot provider %T: %w", p, err)
		}
	}
	return nil
}

// Booted reports whether Boot has been called.
func (r *ProviderRegistry[K]) Booted() bool { return r.booted }

// Providers returns the registered providers in registration order.
func (r *ProviderRegistry[K]) Providers() []ServiceProvider[K] { return r.providers }
