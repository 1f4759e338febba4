package typeid

import (
	"sort"

	"tidal/internal/types"
)

// Names of the primitive and runtime builtin types known to the runtime.
const (
	NameBool   = "bool"
	NameVoid   = "void"
	NameTypeID = "TypeId"
)

func primitive(name string) *ID {
	return Concrete(name, GuidFromString("core::"+name))
}

var (
	boolID   = primitive(NameBool)
	voidID   = primitive(NameVoid)
	typeIDID = primitive(NameTypeID)

	signed   = map[types.Width]*ID{}
	unsigned = map[types.Width]*ID{}
	floats   = map[types.Width]*ID{}

	byName = map[string]*ID{}

	constVoidPtr     = PointerTo(voidID, false)
	mutVoidPtr       = PointerTo(voidID, true)
	constMutVoidPtr  = PointerTo(mutVoidPtr, false)
	constTypeInfoPtr = PointerTo(typeIDID, false)
)

func init() {
	for _, w := range []types.Width{types.Width8, types.Width16, types.Width32, types.Width64, types.Width128} {
		i := primitive(intName("i", w))
		u := primitive(intName("u", w))
		signed[w] = i
		unsigned[w] = u
	}
	floats[types.Width32] = primitive("f32")
	floats[types.Width64] = primitive("f64")

	all := []*ID{boolID, voidID, typeIDID}
	for _, m := range []map[types.Width]*ID{signed, unsigned, floats} {
		for _, id := range m {
			all = append(all, id)
		}
	}
	for _, id := range all {
		byName[id.Name] = id
	}
}

func intName(prefix string, w types.Width) string {
	switch w {
	case types.Width8:
		return prefix + "8"
	case types.Width16:
		return prefix + "16"
	case types.Width32:
		return prefix + "32"
	case types.Width64:
		return prefix + "64"
	default:
		return prefix + "128"
	}
}

// Bool returns the identifier of bool.
func Bool() *ID { return boolID }

// Void returns the identifier of the empty return type of runtime routines.
func Void() *ID { return voidID }

// TypeInfo returns the identifier of the runtime's type descriptor struct.
func TypeInfo() *ID { return typeIDID }

// Int returns the identifier of a fixed-width integer. Unresolved size
// classes have no identifier.
func Int(width types.Width, isSigned bool) (*ID, bool) {
	m := unsigned
	if isSigned {
		m = signed
	}
	id, ok := m[width]
	return id, ok
}

// Float returns the identifier of a float of the given width.
func Float(width types.Width) (*ID, bool) {
	id, ok := floats[width]
	return id, ok
}

// ConstVoidPtr returns the identifier of *const void.
func ConstVoidPtr() *ID { return constVoidPtr }

// MutVoidPtr returns the identifier of *mut void.
func MutVoidPtr() *ID { return mutVoidPtr }

// ObjectHandle returns the identifier of *const *mut void, the handle the
// runtime hands out for heap objects.
func ObjectHandle() *ID { return constMutVoidPtr }

// TypeInfoPtr returns the identifier of *const TypeId.
func TypeInfoPtr() *ID { return constTypeInfoPtr }

// Lookup finds a concrete static identifier by name.
func Lookup(name string) (*ID, bool) {
	id, ok := byName[name]
	return id, ok
}

// Static returns every concrete static identifier sorted by name.
func Static() []*ID {
	out := make([]*ID, 0, len(byName))
	for _, id := range byName {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
