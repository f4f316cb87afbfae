package locator_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/km-arc/go-decoupler/framework/locator"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type classA struct{ name string }

type classB struct{ id int }

// recorder keeps whatever its constructor received.
type recorder struct {
	constructorArgs []any
}

func newRecorder(args ...any) *recorder { return &recorder{constructorArgs: args} }

func identity(a *classA) *classA { return a }

var errBoom = errors.New("boom")

func newLocator(t *testing.T) *locator.Locator[string] {
	t.Helper()
	return locator.New[string]()
}

// ── Registration ──────────────────────────────────────────────────────────────

func TestRegister_RoundTrip(t *testing.T) {
	values := map[string]any{
		"int":    42,
		"string": "hello",
		"struct": &classA{name: "a"},
		"func":   identity,
		"nil":    nil,
	}
	for key, value := range values {
		t.Run(key, func(t *testing.T) {
			l := newLocator(t)
			require.NoError(t, l.Register(key, value))

			got, err := l.ResolveList(key)
			require.NoError(t, err)
			require.Len(t, got, 1)
			if key == "func" {
				// funcs are not comparable; check it is the same function
				assert.Equal(t, fmt.Sprintf("%p", value), fmt.Sprintf("%p", got[0]))
				return
			}
			assert.Equal(t, value, got[0])
		})
	}
}

func TestRegister_DuplicateKeyRejected(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("val", 123))

	err := l.Register("val", 456)
	require.Error(t, err)
	assert.ErrorIs(t, err, locator.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "val")

	got, err := l.ResolveList("val")
	require.NoError(t, err)
	assert.Equal(t, []any{123}, got)
}

func TestRegister_AllowOverwrite(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("val", 123))
	require.NoError(t, l.Register("val", 456, locator.AllowOverwrite()))

	got, err := l.ResolveList("val")
	require.NoError(t, err)
	assert.Equal(t, []any{456}, got)
}

func TestRegister_WithParamsRequiresFunction(t *testing.T) {
	l := newLocator(t)

	err := l.Register("k", 1234, locator.WithParams("x"))
	assert.ErrorIs(t, err, locator.ErrInvalidDefinition)
	assert.False(t, l.Has("k"))

	err = l.Register("k", func(s string) string { return s }, locator.WithParams("x"))
	assert.NoError(t, err)
}

func TestRegister_EmptyWithParamsOnValueRejected(t *testing.T) {
	l := newLocator(t)
	err := l.Register("k", "value", locator.WithParams())
	assert.ErrorIs(t, err, locator.ErrInvalidDefinition)
}

func TestRegister_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		service any
		opts    []locator.Option
	}{
		{"AsInstance on a value", 1234, []locator.Option{locator.AsInstance()}},
		{"AsInstance on a nil func", (func() int)(nil), []locator.Option{locator.AsInstance()}},
		{"too many params", func(int) int { return 0 }, []locator.Option{locator.WithParams(1, 2)}},
		{"literal of the wrong type", func(int) int { return 0 }, []locator.Option{locator.WithParams("x")}},
		{"nil literal for a value param", func(int) int { return 0 }, []locator.Option{locator.WithParams(nil)}},
		{"constructor missing args", func(int) int { return 0 }, []locator.Option{locator.AsInstance()}},
		{"constructor without result", func() {}, []locator.Option{locator.AsInstance()}},
		{"constructor returning only error", func() error { return nil }, []locator.Option{locator.AsInstance()}},
		{"constructor with two values", func() (int, int) { return 0, 0 }, []locator.Option{locator.AsInstance()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLocator(t)
			err := l.Register("svc", tt.service, tt.opts...)
			assert.ErrorIs(t, err, locator.ErrInvalidDefinition)
		})
	}
}

func TestRegister_InvalidLookupReference(t *testing.T) {
	l := newLocator(t)

	err := l.Register("f", identity, locator.WithParams(locator.Lookup(nil)))
	assert.ErrorIs(t, err, locator.ErrInvalidLookupReference)

	err = l.Register("f", identity, locator.WithParams(locator.Lookup((*classA)(nil))))
	assert.ErrorIs(t, err, locator.ErrInvalidLookupReference)

	// key type does not match Locator[string]
	err = l.Register("f", identity, locator.WithParams(locator.Lookup(42)))
	assert.ErrorIs(t, err, locator.ErrInvalidLookupReference)
	assert.False(t, l.Has("f"))
}

func TestRegister_NilInterfaceKeyRejected(t *testing.T) {
	l := locator.New[any]()
	err := l.Register(nil, 1)
	assert.ErrorIs(t, err, locator.ErrInvalidDefinition)

	err = l.Register([]int{1}, 1)
	assert.ErrorIs(t, err, locator.ErrInvalidDefinition)
}

type wrapKey struct{ X any }

func TestRegister_UnhashableKeyRejected(t *testing.T) {
	l := locator.New[any]()
	key := wrapKey{X: []int{1}}

	require.NotPanics(t, func() {
		assert.ErrorIs(t, l.Register(key, 1), locator.ErrInvalidDefinition)
		assert.False(t, l.Has(key))

		_, err := l.ResolveList(key)
		assert.ErrorIs(t, err, locator.ErrUnknownKey)

		err = l.Register("f", func(v int) int { return v }, locator.WithParams(locator.Lookup(key)))
		assert.ErrorIs(t, err, locator.ErrInvalidLookupReference)
	})

	require.NoError(t, l.Register(wrapKey{X: 1}, "hashable"))
	got, err := l.ResolveList(wrapKey{X: 1})
	require.NoError(t, err)
	assert.Equal(t, []any{"hashable"}, got)
}

type nilStringer struct{ name string }

func (s *nilStringer) String() string { return "stringer " + s.name }

func TestRegister_NilPointerStringerKey(t *testing.T) {
	l := locator.New[any]()
	var key *nilStringer

	require.NotPanics(t, func() {
		_, err := l.ResolveList(key)
		assert.ErrorIs(t, err, locator.ErrUnknownKey)
		assert.ErrorContains(t, err, "nilStringer(nil)")

		require.NoError(t, l.Register(key, "nil token"))
	})

	got, err := l.ResolveList(key)
	require.NoError(t, err)
	assert.Equal(t, []any{"nil token"}, got)

	err = l.Register(&nilStringer{name: "x"}, 1)
	require.NoError(t, err)
	_, err = l.ResolveList(&nilStringer{name: "y"})
	assert.ErrorContains(t, err, "stringer y")
}

func TestRegister_HeterogeneousKeys(t *testing.T) {
	type token struct{ name string }
	fooKey := "FOO_KEY_STR"
	barKey := &token{name: "Bar symbol key"}
	bazKey := 1234

	foo, bar, baz := &classA{name: "foo"}, &classA{name: "bar"}, &classA{name: "baz"}

	l := locator.New[any]()
	require.NoError(t, l.Register(fooKey, foo))
	require.NoError(t, l.Register(barKey, bar))
	require.NoError(t, l.Register(bazKey, baz))

	got, err := l.ResolveList(fooKey, barKey, bazKey)
	require.NoError(t, err)
	assert.Equal(t, []any{foo, bar, baz}, got)

	// a different token with the same contents is a different key
	_, err = l.ResolveList(&token{name: "Bar symbol key"})
	assert.ErrorIs(t, err, locator.ErrUnknownKey)
}

func TestFromServices(t *testing.T) {
	a, b := &classA{name: "a"}, &classB{id: 1}
	l, err := locator.FromServices(map[string]any{"A": a, "B": b})
	require.NoError(t, err)

	r, err := l.Resolve([]string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []any{a, b}, r.List())
	assert.Equal(t, 2, l.Len())
}

func TestRegisterAll_CollisionLeavesLocatorUnchanged(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("A", 1))

	err := l.RegisterAll(map[string]any{"A": 2, "B": 3, "C": 4})
	assert.ErrorIs(t, err, locator.ErrDuplicateKey)
	assert.Equal(t, 1, l.Len())
	assert.False(t, l.Has("B"))
}

func TestDependencies_ReturnsCopy(t *testing.T) {
	l := newLocator(t)
	a := &classA{name: "a"}
	require.NoError(t, l.Register("A", a))
	require.NoError(t, l.Register("f", identity, locator.WithParams(locator.Lookup("A"))))

	deps := l.Dependencies()
	require.Len(t, deps, 2)
	assert.Same(t, a, deps["A"].Service)
	assert.Equal(t, []any{locator.Lookup("A")}, deps["f"].Options.WithParams)

	delete(deps, "A")
	deps["f"].Options.WithParams[0] = "tampered"
	deps["new"] = locator.Definition{Service: 1}

	again := l.Dependencies()
	assert.Len(t, again, 2)
	assert.Equal(t, []any{locator.Lookup("A")}, again["f"].Options.WithParams)

	b, err := locator.Get[*locator.Bound](l, "f")
	require.NoError(t, err)
	assert.Equal(t, []any{a}, b.Args())
}

// ── Resolution ────────────────────────────────────────────────────────────────

func TestResolve_List(t *testing.T) {
	l := newLocator(t)
	a, b := &classA{name: "a"}, &classB{id: 2}
	require.NoError(t, l.Register("A.super-complex-key", a))
	require.NoError(t, l.Register("B", b))

	r, err := l.Resolve([]string{"A.super-complex-key", "B"})
	require.NoError(t, err)
	assert.False(t, r.IsNamed())
	assert.Equal(t, 2, r.Len())
	assert.Same(t, a, r.At(0))
	assert.Same(t, b, r.At(1))
	assert.Nil(t, r.At(2))
}

func TestResolve_AliasMap(t *testing.T) {
	l := newLocator(t)
	a, b := &classA{name: "a"}, &classB{id: 2}
	require.NoError(t, l.Register("A", a))
	require.NoError(t, l.Register("B", b))

	r, err := l.Resolve(map[string]string{"A": "X", "B": "Y"})
	require.NoError(t, err)
	assert.True(t, r.IsNamed())
	assert.Equal(t, map[string]any{"X": a, "Y": b}, r.Named())

	x, ok := r.Get("X")
	assert.True(t, ok)
	assert.Same(t, a, x)
}

func TestResolve_UnknownKey(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("val", 123))

	_, err := l.Resolve([]string{"never-registered"})
	require.Error(t, err)
	assert.ErrorIs(t, err, locator.ErrUnknownKey)
	assert.Contains(t, err.Error(), "never-registered")
}

func TestResolve_UnsupportedShapes(t *testing.T) {
	l := newLocator(t)
	for _, deps := range []any{42, "unsupported string", nil, true, []int{1}, map[string]int{"a": 1}} {
		t.Run(fmt.Sprintf("%T", deps), func(t *testing.T) {
			_, err := l.Resolve(deps)
			assert.ErrorIs(t, err, locator.ErrUnsupportedRequest)
		})
	}
}

func TestResolve_EmptyRequests(t *testing.T) {
	l := newLocator(t)

	r, err := l.Resolve([]string{})
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())

	r, err = l.Resolve(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())

	r, err = l.Resolve([]string(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestResolve_FailFast(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("A", 1))

	got, err := l.ResolveList("A", "missing")
	assert.ErrorIs(t, err, locator.ErrUnknownKey)
	assert.Nil(t, got)

	named, err := l.ResolveMap(map[string]string{"A": "a", "missing": "m"})
	assert.ErrorIs(t, err, locator.ErrUnknownKey)
	assert.Nil(t, named)
}

func TestResolve_AsInstance(t *testing.T) {
	l := newLocator(t)
	a := &classA{name: "a"}
	newB := func() *classB { return &classB{id: 7} }
	require.NoError(t, l.Register("A", a))
	require.NoError(t, l.Register("B", newB, locator.AsInstance()))

	list, err := l.ResolveList("A", "B")
	require.NoError(t, err)
	assert.Same(t, a, list[0])
	require.IsType(t, &classB{}, list[1])

	named, err := l.ResolveMap(map[string]string{"A": "A", "B": "b"})
	require.NoError(t, err)
	assert.Same(t, a, named["A"])
	require.IsType(t, &classB{}, named["b"])

	assert.NotSame(t, list[1], named["b"], "each resolution constructs a new instance")
}

func TestResolve_AsInstanceConstructorError(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("broken", func() (*classB, error) { return nil, errBoom }, locator.AsInstance()))
	require.NoError(t, l.Register("fine", func() (*classB, error) { return &classB{id: 1}, nil }, locator.AsInstance()))

	_, err := l.ResolveList("broken")
	assert.ErrorIs(t, err, locator.ErrConstruction)
	assert.ErrorIs(t, err, errBoom)

	got, err := locator.Get[*classB](l, "fine")
	require.NoError(t, err)
	assert.Equal(t, 1, got.id)
}

func TestResolve_BoundConstructorArguments(t *testing.T) {
	l := newLocator(t)
	a := &classA{name: "a"}
	require.NoError(t, l.Register("A", a))
	require.NoError(t, l.Register("B", newRecorder, locator.AsInstance(), locator.WithParams(locator.Lookup("A"))))

	b, err := locator.Get[*recorder](l, "B")
	require.NoError(t, err)
	assert.Equal(t, []any{a}, b.constructorArgs)
}

func TestResolve_NestedBoundInstances(t *testing.T) {
	l := newLocator(t)
	a := &classA{name: "a"}
	require.NoError(t, l.Register("A", a))
	require.NoError(t, l.Register("B", newRecorder,
		locator.AsInstance(),
		locator.WithParams(locator.Lookup("A"), locator.Lookup("C"))))
	// C is registered after B refers to it
	require.NoError(t, l.Register("C", newRecorder, locator.AsInstance(), locator.WithParams(locator.Lookup("A"))))

	b, err := locator.Get[*recorder](l, "B")
	require.NoError(t, err)
	require.Len(t, b.constructorArgs, 2)
	assert.Same(t, a, b.constructorArgs[0])

	c, ok := b.constructorArgs[1].(*recorder)
	require.True(t, ok)
	assert.Equal(t, []any{a}, c.constructorArgs)
}

func TestResolve_BoundInstanceIsFreshEachTime(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("A", &classA{name: "a"}))
	require.NoError(t, l.Register("B", newRecorder, locator.AsInstance(), locator.WithParams(locator.Lookup("A"))))

	first, err := locator.Get[*recorder](l, "B")
	require.NoError(t, err)
	second, err := locator.Get[*recorder](l, "B")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestResolve_BoundCallableIsStable(t *testing.T) {
	l := newLocator(t)
	a := &classA{name: "a"}
	require.NoError(t, l.Register("A", a))
	require.NoError(t, l.Register("f", identity, locator.WithParams(locator.Lookup("A"))))
	require.NoError(t, l.Register("CStaticBound", newRecorder, locator.WithParams(locator.Lookup("A"))))

	first, err := l.ResolveList("f", "CStaticBound")
	require.NoError(t, err)
	second, err := l.ResolveList("f", "CStaticBound")
	require.NoError(t, err)

	assert.Same(t, first[0], second[0])
	assert.Same(t, first[1], second[1])

	f := first[0].(*locator.Bound)
	got, err := f.Invoke()
	require.NoError(t, err)
	assert.Same(t, a, got)

	typed, ok := f.Func().(func() *classA)
	require.True(t, ok, "bound func has the remaining signature, got %T", f.Func())
	assert.Same(t, a, typed())

	c := first[1].(*locator.Bound)
	rec, ok := c.Func().(func(...any) *recorder)
	require.True(t, ok, "got %T", c.Func())
	assert.Equal(t, []any{a, "extra"}, rec("extra").constructorArgs)
}

func TestResolve_CacheSurvivesOverwriteUntilCleared(t *testing.T) {
	l := newLocator(t)
	a, otherA := &classA{name: "a"}, &classA{name: "other"}
	require.NoError(t, l.Register("A", a))
	require.NoError(t, l.Register("f", identity, locator.WithParams(locator.Lookup("A"))))

	before, err := locator.Get[*locator.Bound](l, "f")
	require.NoError(t, err)

	require.NoError(t, l.Register("A", otherA, locator.AllowOverwrite()))

	stale, err := locator.Get[*locator.Bound](l, "f")
	require.NoError(t, err)
	assert.Same(t, before, stale, "overwrite alone does not invalidate bound callables")
	got, err := stale.Invoke()
	require.NoError(t, err)
	assert.Same(t, a, got)

	l.ClearDependencyCache()

	after, err := locator.Get[*locator.Bound](l, "f")
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	got, err = after.Invoke()
	require.NoError(t, err)
	assert.Same(t, otherA, got)

	// overwrite is still visible to plain lookups
	resolvedA, err := locator.Get[*classA](l, "A")
	require.NoError(t, err)
	assert.Same(t, otherA, resolvedA)
}

func TestResolve_ClearThenOverwrite(t *testing.T) {
	l := newLocator(t)
	a, otherA := &classA{name: "a"}, &classA{name: "other"}
	require.NoError(t, l.Register("A", a))
	require.NoError(t, l.Register("f", identity, locator.WithParams(locator.Lookup("A"))))

	before, err := locator.Get[*locator.Bound](l, "f")
	require.NoError(t, err)

	l.ClearDependencyCache()
	require.NoError(t, l.Register("A", otherA, locator.AllowOverwrite()))

	after, err := locator.Get[*locator.Bound](l, "f")
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	got, err := after.Invoke()
	require.NoError(t, err)
	assert.Same(t, otherA, got)
}

func TestResolve_LiteralParams(t *testing.T) {
	l := newLocator(t)
	label := func(prefix string, n int) string { return fmt.Sprintf("%s-%d", prefix, n) }
	require.NoError(t, l.Register("label", label, locator.WithParams("trip")))

	b, err := locator.Get[*locator.Bound](l, "label")
	require.NoError(t, err)

	fn, ok := b.Func().(func(int) string)
	require.True(t, ok, "got %T", b.Func())
	assert.Equal(t, "trip-3", fn(3))

	out, err := b.Call(4)
	require.NoError(t, err)
	assert.Equal(t, []any{"trip-4"}, out)

	_, err = b.Invoke("not an int")
	assert.ErrorIs(t, err, locator.ErrArgumentType)

	_, err = b.Invoke()
	assert.ErrorIs(t, err, locator.ErrArgumentType)
}

func TestResolve_EmptyParamsStillBind(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("now", func() int { return 7 }, locator.WithParams()))

	b, err := locator.Get[*locator.Bound](l, "now")
	require.NoError(t, err)
	got, err := b.Invoke()
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestResolve_LookupTypeMismatch(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("A", "not a *classA"))
	require.NoError(t, l.Register("f", identity, locator.WithParams(locator.Lookup("A"))))

	_, err := l.ResolveList("f")
	assert.ErrorIs(t, err, locator.ErrArgumentType)
}

func TestResolve_MissingNestedKey(t *testing.T) {
	l := newLocator(t)
	// registration is lazy about references
	require.NoError(t, l.Register("f", identity, locator.WithParams(locator.Lookup("A"))))

	_, err := l.ResolveList("f")
	assert.ErrorIs(t, err, locator.ErrUnknownKey)
	assert.Contains(t, err.Error(), "A")

	require.NoError(t, l.Register("A", &classA{name: "late"}))
	_, err = l.ResolveList("f")
	assert.NoError(t, err)
}

func TestResolve_CyclicDependency(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("a", newRecorder, locator.WithParams(locator.Lookup("b"))))
	require.NoError(t, l.Register("b", newRecorder, locator.WithParams(locator.Lookup("c"))))
	require.NoError(t, l.Register("c", newRecorder, locator.AsInstance(), locator.WithParams(locator.Lookup("a"))))

	_, err := l.ResolveList("a")
	require.Error(t, err)
	assert.ErrorIs(t, err, locator.ErrCyclicDependency)
	assert.Contains(t, err.Error(), "a -> b -> c -> a")
}

func TestResolve_SelfReference(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("self", newRecorder, locator.WithParams(locator.Lookup("self"))))

	_, err := l.ResolveList("self")
	assert.ErrorIs(t, err, locator.ErrCyclicDependency)
	assert.Contains(t, err.Error(), "self -> self")
}

func TestResolve_DiamondBindsSharedKeyOnce(t *testing.T) {
	l := newLocator(t)
	calls := 0
	shared := func(a *classA) *classA {
		calls++
		return a
	}
	require.NoError(t, l.Register("A", &classA{name: "a"}))
	require.NoError(t, l.Register("shared", shared, locator.WithParams(locator.Lookup("A"))))
	require.NoError(t, l.Register("left", newRecorder, locator.AsInstance(), locator.WithParams(locator.Lookup("shared"))))
	require.NoError(t, l.Register("right", newRecorder, locator.AsInstance(), locator.WithParams(locator.Lookup("shared"))))
	require.NoError(t, l.Register("top", newRecorder, locator.AsInstance(),
		locator.WithParams(locator.Lookup("left"), locator.Lookup("right"))))

	top, err := locator.Get[*recorder](l, "top")
	require.NoError(t, err)

	left := top.constructorArgs[0].(*recorder)
	right := top.constructorArgs[1].(*recorder)
	assert.Same(t, left.constructorArgs[0], right.constructorArgs[0])
	assert.Equal(t, 0, calls, "binding never invokes the shared function")
}

// ── Typed access ──────────────────────────────────────────────────────────────

func TestGet_WrongType(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("A", &classA{name: "a"}))

	_, err := locator.Get[*classB](l, "A")
	assert.ErrorIs(t, err, locator.ErrServiceWrongType)

	_, err = locator.Get[*classA](l, "missing")
	assert.ErrorIs(t, err, locator.ErrUnknownKey)
}

func TestMustGet(t *testing.T) {
	l := newLocator(t)
	a := &classA{name: "a"}
	require.NoError(t, l.Register("A", a))

	assert.Same(t, a, locator.MustGet[*classA](l, "A"))
	assert.Panics(t, func() { locator.MustGet[*classA](l, "missing") })
}

// ── Concurrency ───────────────────────────────────────────────────────────────

func TestResolve_ConcurrentBindingSharesOneBound(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newLocator(t)
	require.NoError(t, l.Register("A", &classA{name: "a"}))
	require.NoError(t, l.Register("f", identity, locator.WithParams(locator.Lookup("A"))))

	const workers = 16
	results := make([]any, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := l.ResolveList("f")
			if assert.NoError(t, err) {
				results[i] = got[0]
			}
		}()
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}

func TestResolve_ServiceMayCallBackIntoLocator(t *testing.T) {
	l := newLocator(t)
	require.NoError(t, l.Register("A", &classA{name: "a"}))
	require.NoError(t, l.Register("reentrant", func() (*classA, error) {
		return locator.Get[*classA](l, "A")
	}, locator.AsInstance()))

	got, err := locator.Get[*classA](l, "reentrant")
	require.NoError(t, err)
	assert.Equal(t, "a", got.name)
}

// ── Logging ───────────────────────────────────────────────────────────────────

type entry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recordingLogger) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{level, msg})
}

func (r *recordingLogger) Debug(msg string, _ ...any) { r.add("debug", msg) }
func (r *recordingLogger) Info(msg string, _ ...any)  { r.add("info", msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)  { r.add("warn", msg) }
func (r *recordingLogger) Error(msg string, _ ...any) { r.add("error", msg) }

func TestLocator_LogsRegistryEvents(t *testing.T) {
	log := &recordingLogger{}
	l := locator.New[string](locator.WithLogger(log), locator.WithID("scope-1"))
	assert.Equal(t, "scope-1", l.ID())

	require.NoError(t, l.Register("A", 1))
	require.NoError(t, l.Register("A", 2, locator.AllowOverwrite()))
	l.ClearDependencyCache()

	assert.Equal(t, []entry{
		{"debug", "Service registered"},
		{"info", "Service overwritten"},
		{"debug", "Dependency cache cleared"},
	}, log.entries)
}

func TestLocator_GeneratesScopeIDs(t *testing.T) {
	a, b := locator.New[string](), locator.New[string]()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
