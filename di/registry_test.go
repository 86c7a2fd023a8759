package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	regGreeter = CreateDecorator[greeter]("reg.greeter")
	regCount   = CreateDecorator[int]("reg.count")
	regGlobal  = CreateDecorator[greeter]("reg.global")
)

func regGreeterCtor(msg string) *Constructor[greeter] {
	return Ctor0("Greeter", func() (greeter, error) { return &staticGreeter{msg: msg}, nil })
}

//
// -----------------------------------------------------------------------------
// NewRegistry / Register
// -----------------------------------------------------------------------------

// TestNewRegistry_Empty verifies NewRegistry starts without registrations.
func TestNewRegistry_Empty(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Entries())
}

// TestRegister_ChainsAndStores verifies Register records descriptors in order and returns the registry for chaining.
func TestRegister_ChainsAndStores(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ret := Register(Register(r, regGreeter, regGreeterCtor("a"), true), regCount,
		Ctor0("Count", func() (int, error) { return 1, nil }), false)
	require.Same(t, r, ret)

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, regGreeter, entries[0].ID)
	assert.Equal(t, regCount, entries[1].ID)

	d, ok := r.Get(regGreeter)
	require.True(t, ok)
	assert.True(t, d.SupportsDelayedInstantiation())
	assert.Equal(t, "Greeter", d.ConstructorName())
}

//
// -----------------------------------------------------------------------------
// Get / MustGet
// -----------------------------------------------------------------------------

// TestRegistryGet_Missing verifies Get returns (nil,false) for unregistered identifiers.
func TestRegistryGet_Missing(t *testing.T) {
	t.Parallel()

	d, ok := NewRegistry().Get(regGreeter)
	assert.False(t, ok)
	assert.Nil(t, d)
}

// TestRegistryGet_LastWins verifies the latest registration of an identifier is returned.
func TestRegistryGet_LastWins(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	Register(r, regGreeter, regGreeterCtor("first"), false)
	Register(r, regGreeter, regGreeterCtor("second"), true)

	d, ok := r.Get(regGreeter)
	require.True(t, ok)
	assert.True(t, d.SupportsDelayedInstantiation())
	assert.Equal(t, 2, r.Len())
}

// TestRegistryMustGet_Missing verifies MustGet panics with a helpful message when nothing is registered.
func TestRegistryMustGet_Missing(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.PanicsWithError(t, `di: unknown service "reg.greeter" requested by "registry"`, func() {
		_ = r.MustGet(regGreeter)
	})

	Register(r, regGreeter, regGreeterCtor("x"), false)
	assert.NotNil(t, r.MustGet(regGreeter))
}

//
// -----------------------------------------------------------------------------
// Collection
// -----------------------------------------------------------------------------

// TestRegistryCollection_BuildsIndependentCollections verifies each collection is a fresh copy that resolves normally.
func TestRegistryCollection_BuildsIndependentCollections(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	Register(r, regGreeter, regGreeterCtor("from registry"), false)

	override := &staticGreeter{msg: "override"}
	c1 := r.Collection()
	c2 := r.Collection(Pair(regGreeter, override))

	s := NewInstantiationService(c1)
	g, err := Invoke(s, func(a ServicesAccessor) (greeter, error) { return Get(a, regGreeter) })
	require.NoError(t, err)
	assert.Equal(t, "from registry", g.Greet())

	raw, _ := c2.Get(regGreeter)
	assert.Same(t, override, raw)

	_, ok := r.Get(regGreeter)
	assert.True(t, ok, "promotion in a collection must not touch the registry")
}

// TestRegisterSingleton_ProcessWide verifies the package-level registry feeds NewServiceCollectionFromRegistry.
func TestRegisterSingleton_ProcessWide(t *testing.T) {
	t.Parallel()

	RegisterSingleton(regGlobal, regGreeterCtor("global"), false)

	found := false
	for _, e := range SingletonDescriptors() {
		if e.ID == ServiceIdentifier(regGlobal) {
			found = true
		}
	}
	assert.True(t, found)

	c := NewServiceCollectionFromRegistry(Pair(regCount, 5))
	assert.True(t, c.Has(regGlobal))
	assert.True(t, c.Has(regCount))
}
