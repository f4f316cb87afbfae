package locator

import (
	"fmt"
	"reflect"
)

// kind is the closed set of service shapes a definition can take.
type kind int

const (
	// literal services are returned unchanged: values, funcs, anything.
	literal kind = iota
	// factory services have WithParams and resolve to their *Bound.
	factory
	// constructible services are invoked on every resolution.
	constructible
)

func (k kind) String() string {
	switch k {
	case factory:
		return "factory"
	case constructible:
		return "constructible"
	}
	return "literal"
}

// definition is the stored form of a registration.
type definition struct {
	service any
	fn      reflect.Value // valid only for invokable services
	kind    kind
	options Options
}

// Definition is the read-only view of a registration returned by
// Locator.Dependencies.
type Definition struct {
	Service any
	Options Options
}

// newDefinition validates a registration and classifies it.
func newDefinition[K comparable](key K, service any, opts []Option) (definition, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	def := definition{service: service, options: o}

	name := formatKey(key)
	invokable := false
	if service != nil {
		if rv := reflect.ValueOf(service); rv.Kind() == reflect.Func && !rv.IsNil() {
			def.fn = rv
			invokable = true
		}
	}

	if o.hasParams() && !invokable {
		return def, fmt.Errorf(`%w: cannot use WithParams with %s of type %T; must be a function`,
			ErrInvalidDefinition, name, service)
	}
	if o.AsInstance && !invokable {
		return def, fmt.Errorf(`%w: cannot use AsInstance with %s of type %T; must be a constructor function`,
			ErrInvalidDefinition, name, service)
	}

	switch {
	case o.AsInstance:
		def.kind = constructible
	case o.hasParams():
		def.kind = factory
	default:
		return def, nil
	}

	t := def.fn.Type()
	for i, p := range o.WithParams {
		pt := paramType(t, i)
		if pt == nil {
			return def, fmt.Errorf("%w: %s takes %d arguments, WithParams has %d",
				ErrInvalidDefinition, name, t.NumIn(), len(o.WithParams))
		}
		if ref, ok := p.(Ref); ok {
			if _, err := refKey[K](ref); err != nil {
				return def, fmt.Errorf("%s param %d: %w", name, i, err)
			}
			continue
		}
		if _, err := argValue(p, pt); err != nil {
			return def, fmt.Errorf("%w: %s param %d: %w", ErrInvalidDefinition, name, i, err)
		}
	}

	if def.kind == constructible {
		// Constructors are invoked with the bound params and nothing else.
		if err := checkArity(t, len(o.WithParams)); err != nil {
			return def, fmt.Errorf("%w: constructor %s: %w", ErrInvalidDefinition, name, err)
		}
		switch {
		case t.NumOut() == 1 && t.Out(0) != errorType:
		case t.NumOut() == 2 && t.Out(1) == errorType:
		default:
			return def, fmt.Errorf("%w: constructor %s must return T or (T, error), got %s",
				ErrInvalidDefinition, name, t)
		}
	}
	return def, nil
}

func (d definition) view() Definition {
	return Definition{Service: d.service, Options: d.options.clone()}
}
