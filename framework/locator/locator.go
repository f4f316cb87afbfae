package locator

import (
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// Locator is a keyed registry of services and the engine that resolves them.
//
// It stores one definition per key and a cache of bound callables built the
// first time a definition with WithParams is resolved. All methods are safe
// for concurrent use; service functions always run without the lock held, so
// they may call back into the locator.
type Locator[K comparable] struct {
	mu sync.RWMutex

	// key → registration
	deps map[K]definition

	// key → partially applied service, filled lazily by resolution
	bound map[K]*Bound

	id     string
	logger Logger
}

// New creates an empty locator.
func New[K comparable](opts ...LocatorOption) *Locator[K] {
	s := settings{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&s)
	}
	if s.id == "" {
		s.id = newScopeID()
	}
	return &Locator[K]{
		deps:   make(map[K]definition),
		bound:  make(map[K]*Bound),
		id:     s.id,
		logger: s.logger,
	}
}

// FromServices creates a locator holding every entry of services as a plain
// value, with default options.
//
//	l, err := locator.FromServices(map[string]any{"config": cfg, "clock": time.Now})
func FromServices[K comparable](services map[K]any, opts ...LocatorOption) (*Locator[K], error) {
	l := New[K](opts...)
	if err := l.RegisterAll(services); err != nil {
		return nil, err
	}
	return l, nil
}

func newScopeID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ID identifies this locator in logs; one locator usually backs one scope.
func (l *Locator[K]) ID() string { return l.id }

// Logger returns the logger the locator reports to.
func (l *Locator[K]) Logger() Logger { return l.logger }

// ── Registration ──────────────────────────────────────────────────────────────

// Register stores service under key.
//
//	l.Register("vehicle.calculateRange", CalculateRange)
//	l.Register("TripManager", NewTripManager, locator.AsInstance())
//	l.Register("APIClient", NewAPIClient, locator.WithParams(locator.Lookup("http.client"), 100))
//
// Registering an existing key fails with ErrDuplicateKey unless AllowOverwrite
// is given. Definitions may reference keys that are not registered yet; they
// only have to exist when the definition is first resolved.
func (l *Locator[K]) Register(key K, service any, opts ...Option) error {
	if err := checkKey(key); err != nil {
		return err
	}
	def, err := newDefinition(key, service, opts)
	if err != nil {
		return err
	}

	l.mu.Lock()
	_, exists := l.deps[key]
	if exists && !def.options.AllowOverwrite {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateKey, formatKey(key))
	}
	l.deps[key] = def
	l.mu.Unlock()

	if exists {
		l.logger.Info("Service overwritten", "scope", l.id, "key", formatKey(key), "kind", def.kind.String())
	} else {
		l.logger.Debug("Service registered", "scope", l.id, "key", formatKey(key), "kind", def.kind.String())
	}
	return nil
}

// RegisterAll registers every entry of services as a plain value. Keys are
// checked before anything is stored, so a collision leaves the locator
// unchanged.
func (l *Locator[K]) RegisterAll(services map[K]any) error {
	defs := make(map[K]definition, len(services))
	for key, service := range services {
		if err := checkKey(key); err != nil {
			return err
		}
		defs[key] = definition{service: service}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for key := range defs {
		if _, exists := l.deps[key]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, formatKey(key))
		}
	}
	maps.Copy(l.deps, defs)
	l.logger.Debug("Services registered", "scope", l.id, "count", len(defs))
	return nil
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Dependencies returns a copy of every registration. Mutating the result does
// not affect the locator.
func (l *Locator[K]) Dependencies() map[K]Definition {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[K]Definition, len(l.deps))
	for k, d := range l.deps {
		out[k] = d.view()
	}
	return out
}

// Has reports whether key is registered.
func (l *Locator[K]) Has(key K) bool {
	if checkKey(key) != nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.deps[key]
	return ok
}

// Len returns the number of registered keys.
func (l *Locator[K]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.deps)
}

// ── Bound cache ───────────────────────────────────────────────────────────────

// ClearDependencyCache drops every cached bound callable. Definitions stay
// registered; the next resolution of a WithParams key binds it again against
// the current registrations. Overwriting a key never clears the cache on its
// own.
func (l *Locator[K]) ClearDependencyCache() {
	l.mu.Lock()
	n := len(l.bound)
	l.bound = make(map[K]*Bound)
	l.mu.Unlock()
	l.logger.Debug("Dependency cache cleared", "scope", l.id, "entries", n)
}
