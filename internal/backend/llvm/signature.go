package llvm

import (
	"fmt"

	lltypes "github.com/llir/llvm/ir/types"

	"tidal/internal/layout"
	"tidal/internal/types"
)

// Signature returns the backend function type of a function definition under
// the given view. The public view is the C ABI compatible signature through
// which a host process calls into reloadable code.
//
// A unit result becomes void. Every parameter and the result must translate
// to data types; anything else is an internal error, as are definitions with
// type arguments.
func (c *TypeCache) Signature(fn types.TypeID, view layout.View) *lltypes.FuncType {
	key := useKey{id: fn, view: view}
	if sig, ok := c.sigs[key]; ok {
		return sig
	}
	info, ok := c.src.FnInfo(fn)
	if !ok {
		fatal(ErrUnhandledKind, c.src.Label(fn), "not a function definition")
	}
	if len(info.TypeArgs) > 0 {
		fatal(ErrGenericFunction, c.src.Label(fn), "cannot yet deal with type parameters in functions")
	}

	params := make([]lltypes.Type, 0, len(info.Params))
	for i, p := range info.Params {
		ctx := fmt.Sprintf("parameter %d of %s (%s view)", i, info.FullName(), view)
		params = append(params, c.MustTranslate(p, view, ctx))
	}

	var ret lltypes.Type = lltypes.Void
	if !c.src.IsUnit(info.Result) {
		ret = c.MustTranslate(info.Result, view, fmt.Sprintf("return value of %s (%s view)", info.FullName(), view))
	}

	sig := lltypes.NewFunc(ret, params...)
	c.sigs[key] = sig
	return sig
}

// ReturnsValue reports whether a signature produces a value.
func ReturnsValue(sig *lltypes.FuncType) bool {
	if sig == nil {
		return false
	}
	_, void := sig.RetType.(*lltypes.VoidType)
	return !void
}
