package types

import "fmt"

// Resolve replaces architecture dependent size classes inside id with
// fixed-width integers of pointerBits bits. Arrays and tuples are rebuilt
// when one of their components changes; nominal types are returned as-is
// because their members are resolved when they are declared.
func (in *Interner) Resolve(id TypeID, pointerBits Width) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch tt.Kind {
	case KindInt, KindUint:
		if tt.Width != WidthSize {
			return id
		}
		if pointerBits == WidthSize {
			panic(fmt.Errorf("types: cannot resolve %s against an unsized pointer width", in.Label(id)))
		}
		return in.Intern(Type{Kind: tt.Kind, Width: pointerBits})
	case KindArray:
		elem := in.Resolve(tt.Elem, pointerBits)
		if elem == tt.Elem {
			return id
		}
		return in.Intern(MakeArray(elem))
	case KindTuple:
		info, _ := in.TupleInfo(id)
		elems := make([]TypeID, len(info.Elems))
		changed := false
		for i, e := range info.Elems {
			elems[i] = in.Resolve(e, pointerBits)
			changed = changed || elems[i] != e
		}
		if !changed {
			return id
		}
		return in.RegisterTuple(elems)
	default:
		return id
	}
}
