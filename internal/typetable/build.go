package typetable

import (
	"fmt"
	"sort"

	"tidal/internal/backend/llvm"
	"tidal/internal/layout"
	"tidal/internal/typeid"
	"tidal/internal/types"
)

// Build lays out every struct of structs, and every array type their fields
// mention, and collects them into a table. Layouts are computed with le on
// the aggregates produced by c; both must belong to the same session.
func Build(module string, c *llvm.TypeCache, le *layout.LayoutEngine, structs []types.TypeID) (tbl *Table, err error) {
	defer llvm.Recover(&err)

	b := &builder{
		c:      c,
		le:     le,
		src:    c.Source(),
		arrays: make(map[types.TypeID]struct{}),
	}
	for _, id := range structs {
		if err := b.addStruct(id); err != nil {
			return nil, err
		}
	}

	sort.Slice(b.entries, func(i, j int) bool { return b.entries[i].Name < b.entries[j].Name })
	return &Table{
		Schema:   Schema,
		IDFormat: typeid.FormatVersion,
		Module:   module,
		Target:   c.Target().Triple,
		Entries:  b.entries,
	}, nil
}

type builder struct {
	c       *llvm.TypeCache
	le      *layout.LayoutEngine
	src     llvm.TypeSource
	arrays  map[types.TypeID]struct{}
	entries []Entry
}

func (b *builder) addStruct(id types.TypeID) error {
	info, ok := b.src.StructInfo(id)
	if !ok {
		return fmt.Errorf("typetable: %s is not a struct", b.src.Label(id))
	}
	st := b.c.StructType(id)
	tl, err := b.le.LayoutOf(st)
	if err != nil {
		return fmt.Errorf("typetable: %s: %w", info.FullName(), err)
	}

	e := Entry{
		Name:   info.FullName(),
		Guid:   b.c.TypeID(id).Guid(),
		Kind:   KindStruct,
		Memory: info.Memory.String(),
		Size:   tl.Size,
		Align:  tl.Align,
		Fields: make([]Field, 0, len(info.Fields)),
	}
	for i, f := range info.Fields {
		e.Fields = append(e.Fields, Field{
			Name:    f.Name,
			Type:    b.src.Label(f.Type),
			Guid:    b.fieldGuid(f.Type),
			Offset:  tl.FieldOffsets[i],
			Nominal: b.isStruct(f.Type),
		})
	}
	b.entries = append(b.entries, e)

	for _, f := range info.Fields {
		if err := b.addArrays(f.Type); err != nil {
			return err
		}
	}
	return nil
}

// addArrays records the array types reachable from a field type without
// passing through a struct.
func (b *builder) addArrays(id types.TypeID) error {
	tt, ok := b.src.Lookup(id)
	if !ok {
		return nil
	}
	switch tt.Kind {
	case types.KindArray:
		if _, seen := b.arrays[tt.Elem]; seen {
			return nil
		}
		b.arrays[tt.Elem] = struct{}{}
		if err := b.addArray(id, tt.Elem); err != nil {
			return err
		}
		return b.addArrays(tt.Elem)
	case types.KindTuple:
		info, _ := b.src.TupleInfo(id)
		for _, e := range info.Elems {
			if err := b.addArrays(e); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) addArray(id, elem types.TypeID) error {
	st := b.c.ArrayType(elem)
	tl, err := b.le.LayoutOf(st)
	if err != nil {
		return fmt.Errorf("typetable: %s: %w", st.Name(), err)
	}
	b.entries = append(b.entries, Entry{
		Name:  st.Name(),
		Guid:  b.c.TypeID(id).Guid(),
		Kind:  KindArray,
		Size:  tl.Size,
		Align: tl.Align,
		Fields: []Field{{
			Name:   "elements",
			Type:   b.src.Label(elem),
			Guid:   b.fieldGuid(elem),
			Offset: tl.FieldOffsets[2],
		}},
	})
	return nil
}

func (b *builder) fieldGuid(id types.TypeID) typeid.Guid {
	tt, ok := b.src.Lookup(id)
	if !ok {
		return typeid.Guid{}
	}
	switch tt.Kind {
	case types.KindBool, types.KindInt, types.KindUint, types.KindFloat, types.KindStruct, types.KindArray:
		return b.c.TypeID(id).Guid()
	default:
		return typeid.Guid{}
	}
}

func (b *builder) isStruct(id types.TypeID) bool {
	tt, ok := b.src.Lookup(id)
	return ok && tt.Kind == types.KindStruct
}
