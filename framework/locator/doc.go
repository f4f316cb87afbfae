// Package locator provides a small service locator: a keyed registry of
// services and the engine that resolves them.
//
// # Overview
//
// A Locator stores one definition per key. A definition is the service itself
// (any value, usually a function) plus construction options. Consumers ask for
// services by key and never import the concrete implementations, which makes
// it cheap to swap them in tests or per scope.
//
// Keys are any comparable type. Locator[string] is the common case;
// Locator[any] accepts strings, numbers and opaque pointer tokens side by side.
//
// # Registering
//
//	l := locator.New[string]()
//
//	// Plain value, returned as is
//	l.Register("http.client", &http.Client{Timeout: 5 * time.Second})
//
//	// Function, returned as is
//	l.Register("vehicle.calculateRange", CalculateRange)
//
//	// Constructor, invoked on every resolution
//	l.Register("TripManager", NewTripManager, locator.AsInstance())
//
//	// Function with bound arguments; Lookup entries are resolved from l
//	l.Register("APIClient", NewAPIClient,
//	    locator.WithParams(locator.Lookup("http.client"), 100),
//	    locator.AsInstance())
//
// Registration order does not matter: a Lookup only has to be registered by
// the time the definition holding it is first resolved.
//
// # Resolving
//
//	// Positional
//	r, err := l.Resolve([]string{"APIClient", "TripManager"})
//	api := r.At(0).(*APIClient)
//
//	// Named
//	r, err := l.Resolve(map[string]string{"APIClient": "api"})
//	api, _ := r.Get("api")
//
//	// Typed
//	trips, err := locator.Get[*TripManager](l, "TripManager")
//
// # Bound callables
//
// A definition with WithParams and without AsInstance resolves to a *Bound:
// the service with its arguments applied. The Bound is built once and cached,
// so every resolution returns the same pointer. Overwriting a definition with
// AllowOverwrite does not touch that cache; call ClearDependencyCache to have
// the next resolution bind again.
//
//	b, _ := locator.Get[*locator.Bound](l, "vehicle.rangeFor")
//	rangeFor := b.Func().(func(Vehicle) float64)
//
// # Providers
//
//	registry := locator.NewProviderRegistry(l)
//	registry.Register(&VehicleProvider{})
//	registry.Boot()
package locator
