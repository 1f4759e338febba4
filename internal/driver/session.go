package driver

import (
	"fmt"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"tidal/internal/backend/llvm"
	"tidal/internal/intrinsics"
	"tidal/internal/layout"
	"tidal/internal/typeid"
	"tidal/internal/types"
	"tidal/internal/typetable"
)

// Signature holds both views of one function.
type Signature struct {
	Fn       types.TypeID
	Name     string
	Internal *lltypes.FuncType
	Public   *lltypes.FuncType
}

// Identity pairs a HIR type with its structural identifier.
type Identity struct {
	Type  types.TypeID
	Label string
	ID    *typeid.ID
}

// Session is the translated form of one module. Its cache and layout engine
// are private to it.
type Session struct {
	Module     string
	Fns        []types.TypeID
	Cache      *llvm.TypeCache
	Layout     *layout.LayoutEngine
	Signatures []Signature
	IDs        []Identity
	Table      *typetable.Table
}

// SessionError is an internal error raised while translating one module.
type SessionError struct {
	Module string
	Err    error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("module %s: %v", e.Module, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// EmitModule builds the backend module of the session for a view, with the
// declarations of its functions and of the runtime intrinsics.
func (s *Session) EmitModule(view layout.View) (m *ir.Module, err error) {
	defer llvm.Recover(&err)
	return s.Cache.EmitModule(s.Fns, view, intrinsics.For(s.Cache.Target())), nil
}

// TypeDefs returns the named aggregates of the session.
func (s *Session) TypeDefs() []lltypes.Type {
	return s.Cache.TypeDefs()
}
