package intrinsics

import (
	"testing"

	"tidal/internal/layout"
	"tidal/internal/typeid"
)

func TestPrototypesX86_64(t *testing.T) {
	r := For(layout.X86_64LinuxGNU())

	cases := map[string]string{
		New:      "new(*const TypeId, *mut void) -> *const *mut void",
		NewArray: "new_array(*const TypeId, u64, *mut void) -> *const *mut void",
	}
	for name, want := range cases {
		p, ok := r.Lookup(name)
		if !ok {
			t.Fatalf("missing intrinsic %q", name)
		}
		if got := p.String(); got != want {
			t.Fatalf("%s: got %q, want %q", name, got, want)
		}
		if p.Return != typeid.ObjectHandle() {
			t.Fatalf("%s: expected the shared object handle identifier", name)
		}
	}
	if _, ok := r.Lookup("drop"); ok {
		t.Fatalf("unexpected intrinsic drop")
	}
}

func TestNewArrayWordFollowsTarget(t *testing.T) {
	p, _ := For(layout.I686LinuxGNU()).Lookup(NewArray)
	if p.Params[1].Name != "u32" {
		t.Fatalf("expected u32 length on i686, got %s", p.Params[1].Name)
	}
}

func TestAllSorted(t *testing.T) {
	all := For(layout.AArch64LinuxGNU()).All()
	if len(all) != 2 || all[0].Name != New || all[1].Name != NewArray {
		t.Fatalf("unexpected intrinsic list %v", all)
	}
}
