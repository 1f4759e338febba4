package types //nolint:revive

// FnInfo stores metadata for a function definition.
type FnInfo struct {
	Name     string
	Module   string
	Params   []TypeID // Parameter types (in order)
	Result   TypeID   // Return type, the unit tuple when nothing is returned
	TypeArgs []TypeID // Substitutions for generic definitions
}

// FullName returns the module-qualified name of the function.
func (f *FnInfo) FullName() string {
	if f == nil {
		return "?"
	}
	if f.Module == "" {
		return f.Name
	}
	return f.Module + "::" + f.Name
}

// RegisterFn allocates a function definition and returns the TypeID of its
// FnDef type. Each definition is nominal: two functions with the same
// signature get distinct TypeIDs.
func (in *Interner) RegisterFn(info FnInfo) TypeID {
	if info.Result == NoTypeID {
		info.Result = in.builtins.Unit
	}
	var slot uint32
	in.fns, slot = appendSlot(in.fns, FnInfo{
		Name:     info.Name,
		Module:   info.Module,
		Params:   cloneTypeArgs(info.Params),
		Result:   info.Result,
		TypeArgs: cloneTypeArgs(info.TypeArgs),
	}, "fn")
	return in.internRaw(Type{Kind: KindFn, Payload: slot})
}

// FnInfo retrieves function metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

// Fns returns the TypeIDs of every registered function in declaration order.
func (in *Interner) Fns() []TypeID {
	out := make([]TypeID, 0, len(in.fns))
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind == KindFn {
			out = append(out, id)
		}
	}
	return out
}
