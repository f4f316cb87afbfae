package locator

import (
	"fmt"
	"reflect"
	"slices"
)

var errorType = reflect.TypeFor[error]()

// Bound is a service function with its WithParams arguments already applied.
// The locator caches one Bound per key, so repeated resolutions return the
// same pointer until ClearDependencyCache is called.
type Bound struct {
	key   string
	fn    reflect.Value
	args  []reflect.Value
	typed reflect.Value
}

func newBound(key string, fn reflect.Value, args []reflect.Value) *Bound {
	b := &Bound{key: key, fn: fn, args: args}
	b.typed = reflect.MakeFunc(b.remainingType(), func(in []reflect.Value) []reflect.Value {
		if b.typed.Type().IsVariadic() && len(in) > 0 {
			last := in[len(in)-1]
			flat := slices.Clone(in[:len(in)-1])
			for i := range last.Len() {
				flat = append(flat, last.Index(i))
			}
			in = flat
		}
		return b.fn.Call(b.full(in))
	})
	return b
}

// remainingType is the service signature with the bound leading parameters
// removed. Arguments bound into a variadic tail leave the tail open.
func (b *Bound) remainingType() reflect.Type {
	t := b.fn.Type()
	n := len(b.args)
	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
	}

	var in []reflect.Type
	for i := min(n, fixed); i < t.NumIn(); i++ {
		in = append(in, t.In(i))
	}
	out := make([]reflect.Type, t.NumOut())
	for i := range out {
		out[i] = t.Out(i)
	}
	return reflect.FuncOf(in, out, t.IsVariadic())
}

func (b *Bound) full(extra []reflect.Value) []reflect.Value {
	return append(slices.Clone(b.args), extra...)
}

// Func returns the partially applied function as a typed Go value. For a
// service func(*http.Client, int) *APIClient bound with both arguments it is
// a func() *APIClient.
func (b *Bound) Func() any {
	return b.typed.Interface()
}

// Args returns a copy of the bound arguments in positional order.
func (b *Bound) Args() []any {
	out := make([]any, len(b.args))
	for i, a := range b.args {
		out[i] = a.Interface()
	}
	return out
}

// Call invokes the bound function with any remaining arguments and returns
// every result.
func (b *Bound) Call(args ...any) ([]any, error) {
	in, err := b.prepare(args)
	if err != nil {
		return nil, err
	}
	results := b.fn.Call(in)
	out := make([]any, len(results))
	for i, r := range results {
		out[i] = r.Interface()
	}
	return out, nil
}

// Invoke calls the bound function and returns its first result. A trailing
// non-nil error result is returned as ErrConstruction.
func (b *Bound) Invoke(args ...any) (any, error) {
	in, err := b.prepare(args)
	if err != nil {
		return nil, err
	}
	return invoke(b.key, b.fn, in)
}

func (b *Bound) prepare(args []any) ([]reflect.Value, error) {
	t := b.fn.Type()
	in := slices.Clone(b.args)
	for _, a := range args {
		v, err := argValue(a, paramType(t, len(in)))
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", b.key, len(in), err)
		}
		in = append(in, v)
	}
	if err := checkArity(t, len(in)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArgumentType, b.key, err)
	}
	return in, nil
}

// ── reflect helpers ───────────────────────────────────────────────────────────

// invoke calls fn and maps its results: T, (T, error) or nothing.
func invoke(key string, fn reflect.Value, in []reflect.Value) (any, error) {
	results := fn.Call(in)
	t := fn.Type()
	if n := t.NumOut(); n > 0 && t.Out(n-1) == errorType {
		if errV := results[n-1]; !errV.IsNil() {
			return nil, fmt.Errorf("%w: %s: %w", ErrConstruction, key, errV.Interface().(error))
		}
		results = results[:n-1]
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0].Interface(), nil
}

// paramType is the type of positional parameter i, unrolling a variadic tail.
// It returns nil past the end of a non-variadic signature.
func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	if i >= t.NumIn() {
		return nil
	}
	return t.In(i)
}

func checkArity(t reflect.Type, n int) error {
	required := t.NumIn()
	if t.IsVariadic() {
		required--
		if n < required {
			return fmt.Errorf("want at least %d arguments, got %d", required, n)
		}
		return nil
	}
	if n != required {
		return fmt.Errorf("want %d arguments, got %d", required, n)
	}
	return nil
}

// argValue converts v into a value assignable to a parameter of type t.
func argValue(v any, t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, fmt.Errorf("%w: too many arguments", ErrArgumentType)
	}
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil is not a valid %s", ErrArgumentType, t)
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: %T is not assignable to %s", ErrArgumentType, v, t)
	}
	if rv.Type() != t {
		// Keep interface-typed parameters wrapped so Call sees the exact type.
		conv := reflect.New(t).Elem()
		conv.Set(rv)
		return conv, nil
	}
	return rv, nil
}
