package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Error TypeID
	Unit  TypeID
	Bool  TypeID

	I8, I16, I32, I64, I128 TypeID
	U8, U16, U32, U64, U128 TypeID
	Isize, Usize            TypeID

	F32, F64 TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
//
// An Interner is built by the front end and then only read by the backend; it
// is safe to share between sessions once fully populated.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	structs  []StructInfo
	tuples   []TupleInfo
	tupleIdx map[string]TypeID
	fns      []FnInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:    make(map[typeKey]TypeID, 64),
		tupleIdx: make(map[string]TypeID, 16),
	}
	in.types = append(in.types, Type{}) // reserve 0 as NoTypeID
	in.structs = append(in.structs, StructInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.fns = append(in.fns, FnInfo{})

	in.builtins.Error = in.Intern(Type{Kind: KindError})
	in.builtins.Unit = in.RegisterTuple(nil)
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.I8 = in.Intern(MakeInt(Width8))
	in.builtins.I16 = in.Intern(MakeInt(Width16))
	in.builtins.I32 = in.Intern(MakeInt(Width32))
	in.builtins.I64 = in.Intern(MakeInt(Width64))
	in.builtins.I128 = in.Intern(MakeInt(Width128))
	in.builtins.U8 = in.Intern(MakeUint(Width8))
	in.builtins.U16 = in.Intern(MakeUint(Width16))
	in.builtins.U32 = in.Intern(MakeUint(Width32))
	in.builtins.U64 = in.Intern(MakeUint(Width64))
	in.builtins.U128 = in.Intern(MakeUint(Width128))
	in.builtins.Isize = in.Intern(MakeInt(WidthSize))
	in.builtins.Usize = in.Intern(MakeUint(WidthSize))
	in.builtins.F32 = in.Intern(MakeFloat(Width32))
	in.builtins.F64 = in.Intern(MakeFloat(Width64))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID. Nominal and
// side-table kinds (structs, tuples, functions) must go through their
// Register* helpers instead.
func (in *Interner) Intern(t Type) TypeID {
	switch t.Kind {
	case KindInvalid, KindStruct, KindTuple, KindFn:
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	id := in.internRaw(t)
	in.index[key] = id
	return id
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len returns the number of interned types, including the reserved zero slot.
func (in *Interner) Len() int {
	return len(in.types)
}

// Structs returns the TypeIDs of every registered struct in declaration order.
func (in *Interner) Structs() []TypeID {
	out := make([]TypeID, 0, len(in.structs))
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind == KindStruct {
			out = append(out, id)
		}
	}
	return out
}

type typeKey Type

func appendSlot[T any](slots []T, info T, what string) ([]T, uint32) {
	slots = append(slots, info)
	slot, err := safecast.Conv[uint32](len(slots) - 1)
	if err != nil {
		panic(fmt.Errorf("%s info overflow: %w", what, err))
	}
	return slots, slot
}
