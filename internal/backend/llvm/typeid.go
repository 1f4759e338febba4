package llvm

import (
	"tidal/internal/typeid"
	"tidal/internal/types"
)

// TypeID returns the structural identifier of a HIR type.
//
// Primitives map onto the static registry. Struct identifiers hash the
// struct's descriptor, so renaming it or changing a field name, a field type
// or the field order produces a different GUID. Array identifiers reuse the
// identifier of their element. Architecture dependent size classes are
// resolved against the cache's target.
//
// Results are memoized per session; asking twice returns the same instance.
func (c *TypeCache) TypeID(id types.TypeID) *typeid.ID {
	tt, ok := c.src.Lookup(id)
	if !ok {
		fatal(ErrUnhandledKind, c.src.Label(id), "unknown type id %d", id)
	}
	switch tt.Kind {
	case types.KindBool:
		return typeid.Bool()
	case types.KindInt, types.KindUint:
		width := tt.Width
		if width == types.WidthSize {
			width = c.target.PointerBits()
		}
		if out, ok := typeid.Int(width, tt.Kind == types.KindInt); ok {
			return out
		}
	case types.KindFloat:
		if out, ok := typeid.Float(tt.Width); ok {
			return out
		}
	case types.KindStruct:
		return c.structTypeID(id)
	case types.KindArray:
		return c.arrayTypeID(tt.Elem)
	}
	fatal(ErrUnhandledKind, c.src.Label(id), "no type identifier for %s", tt.Kind)
	return nil
}

func (c *TypeCache) structTypeID(id types.TypeID) *typeid.ID {
	if out, ok := c.structIDs[id]; ok {
		return out
	}
	info, ok := c.src.StructInfo(id)
	if !ok {
		fatal(ErrUnhandledKind, c.src.Label(id), "not a struct")
	}
	fields := make([]typeid.Field, 0, len(info.Fields))
	for _, f := range info.Fields {
		fields = append(fields, typeid.Field{Name: f.Name, Type: c.src.Label(f.Type)})
	}
	out := typeid.Struct(info.FullName(), fields)
	c.structIDs[id] = out
	c.point("struct id", out.Name)
	return out
}

func (c *TypeCache) arrayTypeID(elem types.TypeID) *typeid.ID {
	if out, ok := c.arrayIDs[elem]; ok {
		return out
	}
	if _, busy := c.arrayInFlight[elem]; busy {
		fatal(ErrCyclicArray, c.src.Label(elem), "array element type refers back to itself")
	}
	c.arrayInFlight[elem] = struct{}{}
	elemID := c.TypeID(elem)
	delete(c.arrayInFlight, elem)

	if _, ok := c.arrayIDs[elem]; ok {
		fatal(ErrCyclicArray, c.src.Label(elem), "array identifier was produced while computing its element")
	}
	out := typeid.ArrayOf(elemID)
	c.arrayIDs[elem] = out
	return out
}
