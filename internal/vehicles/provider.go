package vehicles

import (
	"net/http"
	"time"

	"github.com/km-arc/go-decoupler/framework/locator"
	"github.com/km-arc/go-decoupler/framework/routing"
)

// Service keys registered by ServiceProvider.
const (
	KeyHTTPClient      = "http.client"
	KeyBaseURL         = "api.baseURL"
	KeyAPIClient       = "APIClient"
	KeyCalculateRange  = "vehicle.calculateRange"
	KeyCurrentLocation = "currentLocation"
	KeyTripManager     = "TripManager"
	KeyClock           = "clock"
)

// DefaultPageLength is bound into every APIClient.
const DefaultPageLength = 100

// ServiceProvider registers the fleet services and mounts the /vehicles routes
// on the application router.
//
// "http.client" and "api.baseURL" are only registered when nobody registered
// them before, so a services manifest or a test can supply its own.
type ServiceProvider struct {
	Client  *http.Client
	BaseURL string
}

func (p *ServiceProvider) Register(l *locator.Locator[string]) error {
	if !l.Has(KeyHTTPClient) {
		client := p.Client
		if client == nil {
			client = &http.Client{Timeout: 10 * time.Second}
		}
		if err := l.Register(KeyHTTPClient, client); err != nil {
			return err
		}
	}
	if !l.Has(KeyBaseURL) {
		if err := l.Register(KeyBaseURL, p.BaseURL); err != nil {
			return err
		}
	}
	if !l.Has(KeyClock) {
		if err := l.Register(KeyClock, time.Now); err != nil {
			return err
		}
	}

	// Resolving "APIClient" yields a *locator.Bound; Invoke builds a client.
	if err := l.Register(KeyAPIClient, NewAPIClient, locator.WithParams(
		locator.Lookup(KeyHTTPClient),
		locator.Lookup(KeyBaseURL),
		DefaultPageLength,
	)); err != nil {
		return err
	}
	if err := l.Register(KeyCalculateRange, CalculateRange); err != nil {
		return err
	}
	if err := l.Register(KeyCurrentLocation, CurrentLocation); err != nil {
		return err
	}
	return l.Register(KeyTripManager, NewTripManager, locator.AsInstance())
}

func (p *ServiceProvider) Boot(l *locator.Locator[string]) error {
	router, err := locator.Get[*routing.Router](l, "router")
	if err != nil {
		return err
	}
	Routes(router)
	return nil
}

func (p *ServiceProvider) Provides() []string {
	return []string{
		KeyHTTPClient, KeyBaseURL, KeyClock,
		KeyAPIClient, KeyCalculateRange, KeyCurrentLocation, KeyTripManager,
	}
}
