package locator

import (
	"fmt"
	"reflect"
)

// Ref marks a WithParams entry that must be resolved from the locator by key
// instead of being passed through as a literal.
//
//	l.Register("axios", client)
//	l.Register("APIClient", NewAPIClient, locator.WithParams(locator.Lookup("axios"), 100))
type Ref struct {
	key any
}

// Lookup returns a reference to the service registered under key. The key is
// validated when the definition holding the reference is registered: a nil
// key, or a key of a different type than the locator's, is rejected with
// ErrInvalidLookupReference.
func Lookup(key any) Ref {
	return Ref{key: key}
}

// Key returns the referenced key.
func (r Ref) Key() any { return r.key }

func (r Ref) String() string { return fmt.Sprintf("Lookup(%s)", formatKey(r.key)) }

// refKey converts the reference into a key of the locator's type.
func refKey[K comparable](r Ref) (K, error) {
	var zero K
	if isNil(r.key) {
		return zero, fmt.Errorf("%w: Lookup() does not support nil keys", ErrInvalidLookupReference)
	}
	key, ok := r.key.(K)
	if !ok {
		return zero, fmt.Errorf("%w: key %s is %T, locator keys are %s",
			ErrInvalidLookupReference, formatKey(r.key), r.key, reflect.TypeFor[K]())
	}
	if err := checkKey(key); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalidLookupReference, err)
	}
	return key, nil
}

// checkKey rejects keys that cannot live in a map: nil interfaces and
// interface keys whose dynamic value is not hashable, including structs and
// arrays holding an uncomparable value in an interface field.
func checkKey[K comparable](key K) error {
	v := any(key)
	if v == nil {
		return fmt.Errorf("%w: nil key", ErrInvalidDefinition)
	}
	if !reflect.TypeOf(v).Comparable() || !hashable(v) {
		return fmt.Errorf("%w: key of type %T is not comparable", ErrInvalidDefinition, v)
	}
	return nil
}

// hashable reports whether v can be compared without a runtime panic.
func hashable(v any) (ok bool) {
	defer func() { ok = recover() == nil }()
	_ = v == v
	return
}

// sameValue is == that reports false instead of panicking on uncomparable
// dynamic values.
func sameValue(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
