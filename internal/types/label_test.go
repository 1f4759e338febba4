package types

import "testing"

func TestLabelCanonicalForms(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	foo := in.RegisterStruct("game", "Foo", MemoryValue)
	root := in.RegisterStruct("", "Root", MemoryGC)
	arr := in.Intern(MakeArray(foo))
	nested := in.Intern(MakeArray(in.Intern(MakeArray(b.I32))))
	pair := in.RegisterTuple([]TypeID{b.F32, b.Bool})
	fn := in.RegisterFn(FnInfo{Module: "game", Name: "add", Params: []TypeID{b.I32, b.I32}, Result: b.I32})
	tick := in.RegisterFn(FnInfo{Name: "tick"})

	cases := []struct {
		id   TypeID
		want string
	}{
		{b.Bool, "bool"},
		{b.I8, "i8"},
		{b.I128, "i128"},
		{b.U16, "u16"},
		{b.Isize, "isize"},
		{b.Usize, "usize"},
		{b.F32, "f32"},
		{b.F64, "f64"},
		{b.Unit, "()"},
		{b.Error, "{unknown}"},
		{foo, "game::Foo"},
		{root, "Root"},
		{arr, "[game::Foo]"},
		{nested, "[[i32]]"},
		{pair, "(f32, bool)"},
		{fn, "fn game::add(i32, i32) -> i32"},
		{tick, "fn tick()"},
		{NoTypeID, "?"},
	}
	for _, tc := range cases {
		if got := Label(in, tc.id); got != tc.want {
			t.Errorf("Label(type#%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}
