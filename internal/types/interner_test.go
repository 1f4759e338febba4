package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Unit == NoTypeID || b.Bool == NoTypeID || b.I32 == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	if !in.IsUnit(b.Unit) {
		t.Fatalf("expected unit to be the empty tuple")
	}
	i32, _ := in.Lookup(b.I32)
	if i32.Kind != KindInt || i32.Width != Width32 {
		t.Fatalf("expected i32 descriptor, got %+v", i32)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().F64
	arr1 := in.Intern(MakeArray(elem))
	arr2 := in.Intern(MakeArray(elem))
	if arr1 != arr2 {
		t.Fatalf("array types should be deduplicated")
	}
	tup1 := in.RegisterTuple([]TypeID{elem, arr1})
	tup2 := in.RegisterTuple([]TypeID{elem, arr2})
	if tup1 != tup2 {
		t.Fatalf("tuple types should be deduplicated")
	}
	if in.RegisterTuple(nil) != in.Builtins().Unit {
		t.Fatalf("empty tuple should be the unit builtin")
	}
}

func TestStructsAreNominal(t *testing.T) {
	in := NewInterner()
	a := in.RegisterStruct("game", "Foo", MemoryGC)
	b := in.RegisterStruct("game", "Foo", MemoryGC)
	if a == b {
		t.Fatalf("struct registrations must not be deduplicated")
	}
	if got, ok := in.FindStruct("game::Foo"); !ok || got != a {
		t.Fatalf("FindStruct returned %d, %v", got, ok)
	}
}

func TestSetStructFieldsCopiesInput(t *testing.T) {
	in := NewInterner()
	s := in.RegisterStruct("", "Node", MemoryGC)
	fields := []StructField{{Name: "next", Type: s}}
	in.SetStructFields(s, fields)
	fields[0].Name = "mutated"
	if got := in.StructFields(s)[0].Name; got != "next" {
		t.Fatalf("expected stored field to be isolated from caller, got %q", got)
	}
}

func TestRegisterFnDefaultsToUnit(t *testing.T) {
	in := NewInterner()
	fn := in.RegisterFn(FnInfo{Name: "tick", Module: "game"})
	info, ok := in.FnInfo(fn)
	if !ok {
		t.Fatalf("fn info missing")
	}
	if !in.IsUnit(info.Result) {
		t.Fatalf("expected unit result, got %s", in.Label(info.Result))
	}
}

func TestResolveSizeClasses(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	arr := in.Intern(MakeArray(b.Usize))
	tup := in.RegisterTuple([]TypeID{b.Isize, arr})

	if got := in.Resolve(b.Usize, Width64); got != b.U64 {
		t.Fatalf("usize should resolve to u64, got %s", in.Label(got))
	}
	if got := in.Resolve(arr, Width32); got != in.Intern(MakeArray(b.U32)) {
		t.Fatalf("[usize] should resolve to [u32], got %s", in.Label(got))
	}
	if got := in.Label(in.Resolve(tup, Width64)); got != "(i64, [u64])" {
		t.Fatalf("unexpected resolved tuple %q", got)
	}
	if got := in.Resolve(b.F32, Width64); got != b.F32 {
		t.Fatalf("resolve must not touch fixed-width types")
	}
}
