package llvm

import (
	"strconv"

	lltypes "github.com/llir/llvm/ir/types"

	"tidal/internal/layout"
	"tidal/internal/types"
)

// Translate returns the backend type used wherever a value of the source type
// is stored or passed, under the given view. The second result is false when
// the type has no data representation (function definitions used as values,
// error types, unknown ids); callers must not treat that as usable data.
func (c *TypeCache) Translate(id types.TypeID, view layout.View) (lltypes.Type, bool) {
	key := useKey{id: id, view: view}
	if t, ok := c.uses[key]; ok {
		return t, true
	}
	tt, ok := c.src.Lookup(id)
	if !ok {
		return nil, false
	}

	var out lltypes.Type
	switch tt.Kind {
	case types.KindBool, types.KindInt, types.KindUint, types.KindFloat:
		out = c.scalarType(id, tt)
	case types.KindStruct:
		out = c.structReferenceType(id, view)
	case types.KindArray:
		out = c.arrayReferenceType(tt.Elem)
	case types.KindTuple:
		out = c.tupleType(id, view)
	default:
		// function definitions and error types have no storage form
		return nil, false
	}
	// a recursive struct may have cached its own reference type meanwhile
	if prev, ok := c.uses[key]; ok {
		return prev, true
	}
	c.uses[key] = out
	return out, true
}

// MustTranslate is Translate for types that the front end guarantees to be
// data types. A representability gap is an internal error.
func (c *TypeCache) MustTranslate(id types.TypeID, view layout.View, context string) lltypes.Type {
	t, ok := c.Translate(id, view)
	if !ok {
		fatal(ErrUntranslatable, c.src.Label(id), "%s", context)
	}
	return t
}

func (c *TypeCache) scalarType(id types.TypeID, tt types.Type) lltypes.Type {
	switch tt.Kind {
	case types.KindBool:
		return lltypes.I1
	case types.KindInt, types.KindUint:
		if tt.Width == types.WidthSize {
			fatal(ErrUnresolvedSize, c.src.Label(id), "size classes must be resolved for %s before translation", c.target.Triple)
		}
		return intType(tt.Width)
	case types.KindFloat:
		switch tt.Width {
		case types.Width32:
			return lltypes.Float
		case types.Width64:
			return lltypes.Double
		}
	}
	fatal(ErrUnhandledKind, c.src.Label(id), "no scalar representation")
	return nil
}

func intType(width types.Width) *lltypes.IntType {
	switch width {
	case types.Width8:
		return lltypes.I8
	case types.Width16:
		return lltypes.I16
	case types.Width32:
		return lltypes.I32
	case types.Width64:
		return lltypes.I64
	case types.Width128:
		return lltypes.I128
	default:
		return lltypes.NewInt(uint64(width))
	}
}

// usizeType returns the machine word of the target.
func (c *TypeCache) usizeType() *lltypes.IntType {
	return intType(c.target.PointerBits())
}

// StructType returns the named aggregate holding the fields of a struct.
//
// Construction is two-phase so that struct graphs may be recursive: the
// aggregate is declared opaque and cached before any field is translated, and
// a field that refers back to the struct (directly or through other structs)
// finds the placeholder instead of recursing. The body is attached once all
// fields are translated.
func (c *TypeCache) StructType(id types.TypeID) *lltypes.StructType {
	if st, ok := c.structs[id]; ok {
		return st
	}
	info, ok := c.src.StructInfo(id)
	if !ok {
		fatal(ErrUnhandledKind, c.src.Label(id), "not a struct")
	}
	st := c.declareStruct(id, info)
	c.defineStruct(st, info)
	return st
}

func (c *TypeCache) declareStruct(id types.TypeID, info *types.StructInfo) *lltypes.StructType {
	st := &lltypes.StructType{TypeName: info.FullName(), Opaque: true}
	c.structs[id] = st
	c.defs = append(c.defs, st)
	c.point("declare struct", st.TypeName)
	return st
}

func (c *TypeCache) defineStruct(st *lltypes.StructType, info *types.StructInfo) {
	fields := make([]lltypes.Type, 0, len(info.Fields))
	for _, f := range info.Fields {
		ctx := "field " + f.Name + " of struct " + info.FullName()
		fields = append(fields, c.MustTranslate(f.Type, layout.ViewInternal, ctx))
	}
	st.Fields = fields
	st.Opaque = false
	c.point("define struct", st.TypeName)
}

// structReferenceType wraps the aggregate in as many pointers as the memory
// layout policy asks for.
func (c *TypeCache) structReferenceType(id types.TypeID, view layout.View) lltypes.Type {
	info, _ := c.src.StructInfo(id)
	st := c.StructType(id)
	if info == nil {
		return st
	}
	var out lltypes.Type = st
	for range layout.Indirection(info.Memory, view) {
		out = lltypes.NewPointer(out)
	}
	return out
}

// ArrayType returns the aggregate backing arrays of elem:
//
//	struct [T] {
//	    usize length;
//	    usize capacity;
//	    T     elements; // followed by capacity-1 more
//	}
//
// Arrays of the same element type share one aggregate.
func (c *TypeCache) ArrayType(elem types.TypeID) *lltypes.StructType {
	if st, ok := c.arrays[elem]; ok {
		return st
	}
	st := &lltypes.StructType{TypeName: "[" + c.src.Label(elem) + "]", Opaque: true}
	c.arrays[elem] = st
	c.defs = append(c.defs, st)

	elemType := c.MustTranslate(elem, layout.ViewInternal, "element of array "+st.TypeName)
	st.Fields = []lltypes.Type{c.usizeType(), c.usizeType(), elemType}
	st.Opaque = false
	c.point("define array", st.TypeName)
	return st
}

// arrayReferenceType is the use-site type of an array. Arrays always live on
// the heap, so in every view this is a pointer to a pointer to the aggregate.
func (c *TypeCache) arrayReferenceType(elem types.TypeID) lltypes.Type {
	return lltypes.NewPointer(lltypes.NewPointer(c.ArrayType(elem)))
}

func (c *TypeCache) tupleType(id types.TypeID, view layout.View) lltypes.Type {
	info, _ := c.src.TupleInfo(id)
	if info == nil || len(info.Elems) == 0 {
		return lltypes.NewStruct()
	}
	fields := make([]lltypes.Type, 0, len(info.Elems))
	for i, e := range info.Elems {
		fields = append(fields, c.MustTranslate(e, view, "tuple element "+strconv.Itoa(i)+" of "+c.src.Label(id)))
	}
	return lltypes.NewStruct(fields...)
}
