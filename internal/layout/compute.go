package layout

import (
	"fortio.org/safecast"
	lltypes "github.com/llir/llvm/ir/types"
)

func (e *LayoutEngine) computeLayout(t lltypes.Type, state *layoutState) (TypeLayout, *LayoutError) {
	switch tt := t.(type) {
	case *lltypes.IntType:
		return e.scalarLayoutBits(tt.BitSize, t)
	case *lltypes.FloatType:
		switch tt.Kind {
		case lltypes.FloatKindHalf:
			return e.scalarLayoutBits(16, t)
		case lltypes.FloatKindFloat:
			return e.scalarLayoutBits(32, t)
		case lltypes.FloatKindDouble:
			return e.scalarLayoutBits(64, t)
		default:
			return e.scalarLayoutBits(128, t)
		}
	case *lltypes.PointerType:
		return e.ptrLayout(), nil
	case *lltypes.StructType:
		if tt.Opaque {
			return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrOpaque, Type: typeName(t)}
		}
		return e.structLayout(tt, state)
	case *lltypes.ArrayType:
		return e.arrayLayout(tt, state)
	default:
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrUnsized, Type: typeName(t)}
	}
}

func (e *LayoutEngine) ptrLayout() TypeLayout {
	ptrSize := e.Target.PtrSize
	ptrAlign := e.Target.PtrAlign
	if ptrSize <= 0 {
		ptrSize = 8
	}
	if ptrAlign <= 0 {
		ptrAlign = ptrSize
	}
	return TypeLayout{Size: ptrSize, Align: ptrAlign}
}

// scalarLayoutBits rounds the bit width up to a whole power-of-two number of
// bytes; i1 occupies one byte in memory.
func (e *LayoutEngine) scalarLayoutBits(bits uint64, t lltypes.Type) (TypeLayout, *LayoutError) {
	bytes, err := safecast.Conv[int]((bits + 7) / 8)
	if err != nil {
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrSizeOverflow, Type: typeName(t), Err: err}
	}
	size := 1
	for size < bytes {
		size *= 2
	}
	align := size
	if limit := e.Target.MaxScalarAlign; limit > 0 && align > limit {
		align = limit
	}
	return TypeLayout{Size: size, Align: align}, nil
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

func (e *LayoutEngine) structLayout(st *lltypes.StructType, state *layoutState) (TypeLayout, *LayoutError) {
	if len(st.Fields) == 0 {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	offsets := make([]int, len(st.Fields))
	aligns := make([]int, len(st.Fields))

	if st.Packed {
		size := 0
		for i, f := range st.Fields {
			fl, err := e.layoutOf(f, state)
			if err != nil {
				return TypeLayout{Size: 0, Align: 1}, err
			}
			offsets[i] = size
			aligns[i] = 1
			size += fl.Size
		}
		return TypeLayout{Size: size, Align: 1, FieldOffsets: offsets, FieldAligns: aligns}, nil
	}

	size := 0
	align := 1
	for i, f := range st.Fields {
		fl, err := e.layoutOf(f, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		fAlign := max(fl.Align, 1)
		size = roundUp(size, fAlign)
		offsets[i] = size
		aligns[i] = fAlign
		size += fl.Size
		align = max(align, fAlign)
	}
	size = roundUp(size, align)
	return TypeLayout{
		Size:         size,
		Align:        align,
		FieldOffsets: offsets,
		FieldAligns:  aligns,
	}, nil
}

func (e *LayoutEngine) arrayLayout(at *lltypes.ArrayType, state *layoutState) (TypeLayout, *LayoutError) {
	el, err := e.layoutOf(at.ElemType, state)
	if err != nil {
		return TypeLayout{Size: 0, Align: 1}, err
	}
	stride := roundUp(el.Size, max(el.Align, 1))
	n, convErr := safecast.Conv[int](at.Len)
	if convErr != nil {
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrSizeOverflow, Type: typeName(at), Err: convErr}
	}
	return TypeLayout{Size: stride * n, Align: max(el.Align, 1)}, nil
}
