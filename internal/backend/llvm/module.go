package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"tidal/internal/intrinsics"
	"tidal/internal/layout"
	"tidal/internal/typeid"
	"tidal/internal/types"
)

// EmitModule declares every function of fns under the given view, together
// with the runtime intrinsics, in a fresh backend module. Named aggregates
// created by the cache are attached as type definitions.
func (c *TypeCache) EmitModule(fns []types.TypeID, view layout.View, reg *intrinsics.Registry) *ir.Module {
	m := ir.NewModule()
	m.TargetTriple = c.target.Triple
	for _, fn := range fns {
		info, _ := c.src.FnInfo(fn)
		sig := c.Signature(fn, view)
		m.NewFunc(info.FullName(), sig.RetType, params(sig)...)
	}
	if reg != nil {
		for _, p := range reg.All() {
			sig := c.IntrinsicSignature(p)
			m.NewFunc(p.Name, sig.RetType, params(sig)...)
		}
	}
	for _, def := range c.TypeDefs() {
		m.TypeDefs = append(m.TypeDefs, def)
	}
	if c.typeInfo != nil {
		m.TypeDefs = append(m.TypeDefs, c.typeInfo)
	}
	return m
}

func params(sig *lltypes.FuncType) []*ir.Param {
	out := make([]*ir.Param, 0, len(sig.Params))
	for i, p := range sig.Params {
		out = append(out, ir.NewParam(fmt.Sprintf("p%d", i), p))
	}
	return out
}

// IntrinsicSignature lowers an intrinsic prototype to a backend function
// type. Pointers to void become byte pointers.
func (c *TypeCache) IntrinsicSignature(p intrinsics.Prototype) *lltypes.FuncType {
	ps := make([]lltypes.Type, 0, len(p.Params))
	for _, param := range p.Params {
		ps = append(ps, c.identifierType(param, false))
	}
	return lltypes.NewFunc(c.identifierType(p.Return, false), ps...)
}

func (c *TypeCache) identifierType(id *typeid.ID, pointee bool) lltypes.Type {
	switch id.Data.Kind {
	case typeid.DataPointer:
		return lltypes.NewPointer(c.identifierType(id.Data.Elem, true))
	case typeid.DataConcrete:
		switch id.Name {
		case typeid.NameVoid:
			if pointee {
				return lltypes.I8
			}
			return lltypes.Void
		case typeid.NameTypeID:
			return c.typeInfoType()
		case typeid.NameBool:
			return lltypes.I1
		case "f32":
			return lltypes.Float
		case "f64":
			return lltypes.Double
		}
		for _, w := range []types.Width{types.Width8, types.Width16, types.Width32, types.Width64, types.Width128} {
			for _, signed := range []bool{true, false} {
				if known, _ := typeid.Int(w, signed); known == id {
					return intType(w)
				}
			}
		}
	}
	fatal(ErrUnhandledKind, id.Name, "no backend type for intrinsic operand")
	return nil
}

// typeInfoType is the runtime's type descriptor. Generated code only ever
// passes pointers to it, so it stays opaque.
func (c *TypeCache) typeInfoType() *lltypes.StructType {
	if c.typeInfo == nil {
		c.typeInfo = &lltypes.StructType{TypeName: typeid.NameTypeID, Opaque: true}
	}
	return c.typeInfo
}
