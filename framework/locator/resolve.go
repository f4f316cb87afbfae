package locator

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Resolved is the result of a dependency request: positional values for a
// key list, named values for a key → alias map.
type Resolved struct {
	list  []any
	named map[string]any
}

// List returns the positional values. It is nil for a named result.
func (r Resolved) List() []any { return r.list }

// Named returns the values keyed by alias. It is nil for a positional result.
func (r Resolved) Named() map[string]any { return r.named }

// IsNamed reports whether the request was a key → alias map.
func (r Resolved) IsNamed() bool { return r.named != nil }

// Len returns the number of resolved values.
func (r Resolved) Len() int {
	if r.named != nil {
		return len(r.named)
	}
	return len(r.list)
}

// At returns the positional value at i, or nil when out of range.
func (r Resolved) At(i int) any {
	if i < 0 || i >= len(r.list) {
		return nil
	}
	return r.list[i]
}

// Get returns the value resolved under alias.
func (r Resolved) Get(alias string) (any, bool) {
	v, ok := r.named[alias]
	return v, ok
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve resolves a dependency list. deps must be a []K, giving positional
// results in input order, or a map[K]string from key to alias, giving named
// results. Any other shape fails with ErrUnsupportedRequest.
//
//	r, err := l.Resolve([]string{"APIClient", "TripManager"})
//	r, err := l.Resolve(map[string]string{"APIClient": "api"})
//
// The request fails as a whole if any key fails.
func (l *Locator[K]) Resolve(deps any) (Resolved, error) {
	switch d := deps.(type) {
	case []K:
		list, err := l.ResolveList(d...)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{list: list}, nil
	case map[K]string:
		named, err := l.ResolveMap(d)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{named: named}, nil
	}
	return Resolved{}, fmt.Errorf("%w: only []%s and map[%[2]s]string are supported; got %T (%v)",
		ErrUnsupportedRequest, reflect.TypeFor[K](), deps, deps)
}

// ResolveList resolves keys in order.
func (l *Locator[K]) ResolveList(keys ...K) ([]any, error) {
	out := make([]any, 0, len(keys))
	for _, key := range keys {
		v, err := l.lookup(key, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ResolveMap resolves every key and stores the value under its alias.
func (l *Locator[K]) ResolveMap(aliases map[K]string) (map[string]any, error) {
	out := make(map[string]any, len(aliases))
	for key, alias := range aliases {
		v, err := l.lookup(key, nil)
		if err != nil {
			return nil, err
		}
		out[alias] = v
	}
	return out, nil
}

// lookup resolves a single key. path holds the keys whose bound callables
// are being built further up the stack.
func (l *Locator[K]) lookup(key K, path []K) (any, error) {
	if err := checkKey(key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownKey, err)
	}
	if slices.Contains(path, key) {
		return nil, fmt.Errorf("%w: %s", ErrCyclicDependency, cycleString(append(path, key)))
	}

	l.mu.RLock()
	def, ok := l.deps[key]
	b := l.bound[key]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, formatKey(key))
	}

	if def.options.hasParams() {
		if b == nil {
			var err error
			if b, err = l.bind(key, def, append(slices.Clip(path), key)); err != nil {
				return nil, err
			}
		}
		if def.options.AsInstance {
			return b.Invoke()
		}
		return b, nil
	}

	if def.options.AsInstance {
		return invoke(formatKey(key), def.fn, nil)
	}
	return def.service, nil
}

// bind resolves the definition's params and caches the partial application.
// If another caller stored a Bound for key meanwhile, that one is kept.
func (l *Locator[K]) bind(key K, def definition, path []K) (*Bound, error) {
	name := formatKey(key)
	t := def.fn.Type()
	args := make([]reflect.Value, 0, len(def.options.WithParams))
	for i, p := range def.options.WithParams {
		if ref, ok := p.(Ref); ok {
			refK, err := refKey[K](ref)
			if err != nil {
				return nil, err
			}
			resolved, err := l.lookup(refK, path)
			if err != nil {
				return nil, err
			}
			p = resolved
		}
		v, err := argValue(p, paramType(t, i))
		if err != nil {
			return nil, fmt.Errorf("%s param %d: %w", name, i, err)
		}
		args = append(args, v)
	}

	b := newBound(name, def.fn, args)

	l.mu.Lock()
	if existing, ok := l.bound[key]; ok {
		b = existing
	} else {
		l.bound[key] = b
	}
	l.mu.Unlock()

	l.logger.Debug("Service bound", "scope", l.id, "key", name, "params", len(args))
	return b, nil
}

func cycleString[K comparable](path []K) string {
	parts := make([]string, len(path))
	for i, k := range path {
		parts[i] = formatKey(k)
	}
	return strings.Join(parts, " -> ")
}

// ── Typed access ──────────────────────────────────────────────────────────────

// Get resolves key and asserts the result to T.
//
//	client, err := locator.Get[*APIClient](l, "APIClient")
func Get[T any, K comparable](l *Locator[K], key K) (T, error) {
	var zero T
	v, err := l.lookup(key, nil)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s resolved to %T, want %s",
			ErrServiceWrongType, formatKey(key), v, reflect.TypeFor[T]())
	}
	return typed, nil
}

// MustGet is like Get but panics on error. Intended for bootstrap code where a
// missing service is a programming error.
func MustGet[T any, K comparable](l *Locator[K], key K) T {
	v, err := Get[T](l, key)
	if err != nil {
		panic(fmt.Sprintf("locator: %v", err))
	}
	return v
}
