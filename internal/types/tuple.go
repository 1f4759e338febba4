package types

import (
	"slices"
	"strconv"
	"strings"
)

// TupleInfo stores the element types for a tuple type.
type TupleInfo struct {
	Elems []TypeID
}

// RegisterTuple creates or finds an existing tuple type with the given
// elements. The empty tuple is the unit type.
func (in *Interner) RegisterTuple(elems []TypeID) TypeID {
	key := tupleKey(elems)
	if id, ok := in.tupleIdx[key]; ok {
		return id
	}
	var slot uint32
	in.tuples, slot = appendSlot(in.tuples, TupleInfo{Elems: cloneTypeArgs(elems)}, "tuple")
	id := in.internRaw(Type{Kind: KindTuple, Payload: slot})
	in.tupleIdx[key] = id
	return id
}

// TupleInfo returns the element types for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}

// IsUnit reports whether id is the zero-element tuple.
func (in *Interner) IsUnit(id TypeID) bool {
	info, ok := in.TupleInfo(id)
	return ok && len(info.Elems) == 0
}

func tupleKey(elems []TypeID) string {
	var sb strings.Builder
	for i, e := range elems {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(e), 10))
	}
	return sb.String()
}

func cloneTypeArgs(args []TypeID) []TypeID {
	if len(args) == 0 {
		return nil
	}
	return slices.Clone(args)
}
