package layout

import (
	"fmt"

	"tidal/internal/types"
)

// View selects which ABI contract a translation targets.
type View uint8

const (
	// ViewInternal is the representation used for calls inside one compiled
	// artifact.
	ViewInternal View = iota
	// ViewPublic is the representation exposed to the host process. It must
	// stay valid across reloads, so it never exposes a struct's field layout
	// by value.
	ViewPublic
)

func (v View) String() string {
	switch v {
	case ViewInternal:
		return "internal"
	case ViewPublic:
		return "public"
	default:
		return fmt.Sprintf("View(%d)", v)
	}
}

// Views lists every view in a stable order.
var Views = [...]View{ViewInternal, ViewPublic}

// Indirection returns how many pointer levels separate a reference to a
// struct of the given memory kind from its field storage.
//
// gc structs are a handle to a relocatable heap slot holding a pointer to the
// fields (two levels) in every view. value structs are embedded (zero levels)
// internally but are boxed like gc structs on the public surface.
func Indirection(kind types.MemoryKind, view View) int {
	if view == ViewPublic {
		return 2
	}
	switch kind {
	case types.MemoryValue:
		return 0
	default:
		return 2
	}
}
