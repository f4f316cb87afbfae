package locator

import (
	"errors"
	"fmt"
	"reflect"
)

// Locator errors. Every error returned by this package wraps one of these
// sentinels, so callers match with errors.Is.
var (
	// Registration errors
	ErrDuplicateKey           = errors.New("service key already used")
	ErrInvalidDefinition      = errors.New("invalid service definition")
	ErrInvalidLookupReference = errors.New("invalid lookup reference")

	// Resolution errors
	ErrUnknownKey         = errors.New("no service matching key")
	ErrUnsupportedRequest = errors.New("unsupported dependency list")
	ErrCyclicDependency   = errors.New("cyclic dependency detected")
	ErrConstruction       = errors.New("service construction failed")
	ErrArgumentType       = errors.New("argument type mismatch")
	ErrServiceWrongType   = errors.New("service doesn't satisfy required type")
)

// formatKey renders a key for error messages and log fields.
func formatKey(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case fmt.Stringer:
		if rv := reflect.ValueOf(k); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return fmt.Sprintf("%v(nil)", rv.Type())
		}
		return k.String()
	}
	return fmt.Sprintf("%v", key)
}
