package locator

import "slices"

// ── Service options ───────────────────────────────────────────────────────────

// Options is the construction metadata stored alongside a service.
type Options struct {
	// AsInstance invokes the service as a constructor on every resolution
	// instead of returning the service itself.
	AsInstance bool

	// WithParams holds positional arguments for the service. Entries made
	// with Lookup are resolved from the locator; everything else is passed
	// through as a literal. A nil slice means "no params"; an empty non-nil
	// slice still binds the service (with no arguments).
	WithParams []any

	// AllowOverwrite permits replacing a definition already registered under
	// the same key.
	AllowOverwrite bool
}

// Option configures a single registration.
type Option func(*Options)

// AsInstance makes every resolution construct a new instance.
//
//	l.Register("TripManager", NewTripManager, locator.AsInstance())
func AsInstance() Option {
	return func(o *Options) { o.AsInstance = true }
}

// WithParams binds positional arguments to the service.
//
//	l.Register("APIClient", NewAPIClient, locator.WithParams(locator.Lookup("http.client"), 100))
func WithParams(params ...any) Option {
	return func(o *Options) {
		o.WithParams = append(make([]any, 0, len(params)), params...)
	}
}

// AllowOverwrite lets the registration replace an existing definition.
// Bound callables cached for the old definition survive until
// ClearDependencyCache is called.
func AllowOverwrite() Option {
	return func(o *Options) { o.AllowOverwrite = true }
}

func (o Options) hasParams() bool { return o.WithParams != nil }

func (o Options) clone() Options {
	o.WithParams = slices.Clone(o.WithParams)
	return o
}

// ── Locator options ───────────────────────────────────────────────────────────

type settings struct {
	logger Logger
	id     string
}

// LocatorOption configures a Locator at construction.
type LocatorOption func(*settings)

// WithLogger reports registry events to logger.
func WithLogger(logger Logger) LocatorOption {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithID overrides the generated scope identifier.
func WithID(id string) LocatorOption {
	return func(s *settings) {
		if id != "" {
			s.id = id
		}
	}
}
