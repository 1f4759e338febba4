package llvm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tidal/internal/layout"
	"tidal/internal/typeid"
	"tidal/internal/types"
)

func fooStruct(in *types.Interner, module, name string, fields ...types.StructField) types.TypeID {
	id := in.RegisterStruct(module, name, types.MemoryGC)
	in.SetStructFields(id, fields)
	return id
}

func TestTypeIDPrimitives(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	c := newCache(in)

	require.Same(t, typeid.Bool(), c.TypeID(b.Bool))
	i32, _ := typeid.Int(types.Width32, true)
	require.Same(t, i32, c.TypeID(b.I32))
	u8, _ := typeid.Int(types.Width8, false)
	require.Same(t, u8, c.TypeID(b.U8))
	f64, _ := typeid.Float(types.Width64)
	require.Same(t, f64, c.TypeID(b.F64))
	require.Equal(t, "17797a7419d63217d235954317885bfa", c.TypeID(b.I32).Guid().Hex())
}

func TestTypeIDSizeClassesFollowTarget(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	u64, _ := typeid.Int(types.Width64, false)
	require.Same(t, u64, newCache(in).TypeID(b.Usize))

	i32, _ := typeid.Int(types.Width32, true)
	require.Same(t, i32, New(layout.I686LinuxGNU(), in).TypeID(b.Isize))
}

func TestStructTypeIDHashesDescriptor(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	foo := fooStruct(in, "", "Foo",
		types.StructField{Name: "a", Type: b.I32},
		types.StructField{Name: "b", Type: b.F64},
	)
	c := newCache(in)

	id := c.TypeID(foo)
	require.Equal(t, "Foo", id.Name)
	require.Equal(t, typeid.DataConcrete, id.Data.Kind)
	require.Equal(t, "bc207dbd7299b2c3f1c7b3bc9eeb7457", id.Guid().Hex())
	require.Same(t, id, c.TypeID(foo))

	// a fresh session computes the same identity
	require.True(t, id.Equal(newCache(in).TypeID(foo)))
}

func TestStructTypeIDIsSensitiveToShape(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	a := types.StructField{Name: "a", Type: b.I32}
	bf := types.StructField{Name: "b", Type: b.F64}

	cases := map[string]types.TypeID{
		"bc207dbd7299b2c3f1c7b3bc9eeb7457": fooStruct(in, "", "Foo", a, bf),
		"2755e4eb6d9ae16ab4374bac3fdd692f": fooStruct(in, "", "Foo", bf, a),
		"791a39c2f63e8f6731e0ad007ce37196": fooStruct(in, "", "Bar", a, bf),
		"db4303f85aa5c41163af687025e9e980": fooStruct(in, "", "Foo", types.StructField{Name: "a", Type: b.I64}, bf),
		"726806e3ac33dbf7cdff33ccfa5275ba": fooStruct(in, "", "Foo", types.StructField{Name: "x", Type: b.I32}, bf),
		"b1ec13fe04970a1c056cb4e8ebe90907": fooStruct(in, "", "Empty"),
	}
	c := newCache(in)
	for want, id := range cases {
		require.Equal(t, want, c.TypeID(id).Guid().Hex(), in.Label(id))
	}
}

func TestRecursiveStructTypeID(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	node := in.RegisterStruct("game", "Node", types.MemoryGC)
	in.SetStructFields(node, []types.StructField{
		{Name: "value", Type: b.I32},
		{Name: "next", Type: node},
	})
	c := newCache(in)

	id := c.TypeID(node)
	require.Equal(t, "game::Node", id.Name)
	require.Equal(t, "eb23de0225a2c1abe04e373f508a3c13", id.Guid().Hex())
}

func TestArrayTypeIDComposesElement(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	foo := fooStruct(in, "", "Foo", types.StructField{Name: "a", Type: b.I32}, types.StructField{Name: "b", Type: b.F64})
	arr := in.Intern(types.MakeArray(foo))
	nested := in.Intern(types.MakeArray(arr))
	c := newCache(in)

	id := c.TypeID(arr)
	require.Equal(t, "[Foo]", id.Name)
	require.Equal(t, typeid.DataArray, id.Data.Kind)
	require.Same(t, c.TypeID(foo), id.Data.Elem)
	require.Same(t, id, c.TypeID(arr))

	outer := c.TypeID(nested)
	require.Equal(t, "[[Foo]]", outer.Name)
	require.Same(t, id, outer.Data.Elem)
}

func TestTypeIDRejectsUnsupportedKinds(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	fn := in.RegisterFn(types.FnInfo{Name: "tick"})
	tup := in.RegisterTuple([]types.TypeID{b.I32, b.I64})
	c := newCache(in)

	requireInternal(t, ErrUnhandledKind, func() { c.TypeID(fn) })
	requireInternal(t, ErrUnhandledKind, func() { c.TypeID(tup) })
	requireInternal(t, ErrUnhandledKind, func() { c.TypeID(types.TypeID(4242)) })
}

// selfArraySource reports an array type whose element is the array itself.
// The interner cannot build such a type; a buggy front end could.
type selfArraySource struct {
	*types.Interner
	arr types.TypeID
}

func (s selfArraySource) Lookup(id types.TypeID) (types.Type, bool) {
	if id == s.arr {
		return types.MakeArray(s.arr), true
	}
	return s.Interner.Lookup(id)
}

func (s selfArraySource) Label(id types.TypeID) string {
	if id == s.arr {
		return "[...]"
	}
	return s.Interner.Label(id)
}

func TestCyclicArrayTypeIDIsFatal(t *testing.T) {
	in := types.NewInterner()
	arr := in.Intern(types.MakeArray(in.Builtins().I32))
	c := New(layout.X86_64LinuxGNU(), selfArraySource{Interner: in, arr: arr})

	requireInternal(t, ErrCyclicArray, func() { c.TypeID(arr) })
}
