package llvm

import (
	lltypes "github.com/llir/llvm/ir/types"

	"tidal/internal/layout"
	"tidal/internal/trace"
	"tidal/internal/typeid"
	"tidal/internal/types"
)

// TypeSource is the read-only view of the front end's HIR types that the
// TypeCache consumes. *types.Interner implements it.
type TypeSource interface {
	Lookup(id types.TypeID) (types.Type, bool)
	StructInfo(id types.TypeID) (*types.StructInfo, bool)
	TupleInfo(id types.TypeID) (*types.TupleInfo, bool)
	FnInfo(id types.TypeID) (*types.FnInfo, bool)
	IsUnit(id types.TypeID) bool
	Label(id types.TypeID) string
}

type useKey struct {
	id   types.TypeID
	view layout.View
}

// TypeCache converts HIR types into backend types and structural type
// identifiers, memoizing everything it computes.
//
// A TypeCache belongs to exactly one compilation session. Entries are never
// evicted or replaced, and the cache is not safe for concurrent use: sessions
// that run in parallel each need their own.
type TypeCache struct {
	target layout.Target
	src    TypeSource
	tracer trace.Tracer

	// named aggregates, keyed by struct and by array element
	structs map[types.TypeID]*lltypes.StructType
	arrays  map[types.TypeID]*lltypes.StructType
	defs    []lltypes.Type

	// runtime type descriptor, created on first use by an intrinsic
	typeInfo *lltypes.StructType

	uses map[useKey]lltypes.Type
	sigs map[useKey]*lltypes.FuncType

	structIDs     map[types.TypeID]*typeid.ID
	arrayIDs      map[types.TypeID]*typeid.ID
	arrayInFlight map[types.TypeID]struct{}
}

// Option configures a TypeCache.
type Option func(*TypeCache)

// WithTracer makes the cache emit ScopeType events for the aggregates it
// declares and defines.
func WithTracer(t trace.Tracer) Option {
	return func(c *TypeCache) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New constructs an empty TypeCache for one session.
func New(target layout.Target, src TypeSource, opts ...Option) *TypeCache {
	c := &TypeCache{
		target:        target,
		src:           src,
		tracer:        trace.Nop,
		structs:       make(map[types.TypeID]*lltypes.StructType, 32),
		arrays:        make(map[types.TypeID]*lltypes.StructType, 8),
		uses:          make(map[useKey]lltypes.Type, 64),
		sigs:          make(map[useKey]*lltypes.FuncType, 16),
		structIDs:     make(map[types.TypeID]*typeid.ID, 32),
		arrayIDs:      make(map[types.TypeID]*typeid.ID, 8),
		arrayInFlight: make(map[types.TypeID]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Target returns the target the cache translates for.
func (c *TypeCache) Target() layout.Target {
	return c.target
}

// Source returns the HIR the cache reads from.
func (c *TypeCache) Source() TypeSource {
	return c.src
}

// TypeDefs returns every named aggregate created so far, in creation order,
// for the emitter to place into a module.
func (c *TypeCache) TypeDefs() []lltypes.Type {
	out := make([]lltypes.Type, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c *TypeCache) point(name, detail string) {
	trace.Point(c.tracer, trace.ScopeType, name, detail)
}
