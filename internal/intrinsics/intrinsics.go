// Package intrinsics describes the runtime routines generated code calls
// into. Prototypes are expressed with structural type identifiers so that
// the host runtime can check them against its own tables.
package intrinsics

import (
	"fmt"
	"sort"
	"strings"

	"tidal/internal/layout"
	"tidal/internal/typeid"
)

const (
	// New allocates a gc object described by a type info pointer and returns
	// its handle.
	New = "new"
	// NewArray allocates a gc array with room for a number of elements.
	NewArray = "new_array"
)

// Prototype is the signature of one intrinsic.
type Prototype struct {
	Name   string
	Params []*typeid.ID
	Return *typeid.ID
}

// String renders the prototype as "name(a, b) -> r".
func (p Prototype) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteByte('(')
	for i, param := range p.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(param.Name)
	}
	sb.WriteString(") -> ")
	sb.WriteString(p.Return.Name)
	return sb.String()
}

type decl struct {
	name   string
	params func(usize *typeid.ID) []*typeid.ID
}

// decls lists the runtime intrinsics. Every allocating routine takes the
// runtime allocator handle as its last argument and returns an object handle.
var decls = []decl{
	{name: New, params: func(*typeid.ID) []*typeid.ID {
		return []*typeid.ID{typeid.TypeInfoPtr(), typeid.MutVoidPtr()}
	}},
	{name: NewArray, params: func(usize *typeid.ID) []*typeid.ID {
		return []*typeid.ID{typeid.TypeInfoPtr(), usize, typeid.MutVoidPtr()}
	}},
}

// Registry holds the intrinsic prototypes for one target.
type Registry struct {
	target layout.Target
	protos map[string]Prototype
}

// For builds the registry of a target. usize is the unsigned integer of the
// target's pointer width.
func For(target layout.Target) *Registry {
	usize, ok := typeid.Int(target.PointerBits(), false)
	if !ok {
		panic(fmt.Errorf("intrinsics: no integer of %d bits for %s", target.PointerBits(), target.Triple))
	}
	r := &Registry{target: target, protos: make(map[string]Prototype, len(decls))}
	for _, d := range decls {
		r.protos[d.name] = Prototype{
			Name:   d.name,
			Params: d.params(usize),
			Return: typeid.ObjectHandle(),
		}
	}
	return r
}

// Target returns the target the registry was built for.
func (r *Registry) Target() layout.Target {
	return r.target
}

// Lookup returns the prototype of an intrinsic.
func (r *Registry) Lookup(name string) (Prototype, bool) {
	p, ok := r.protos[name]
	return p, ok
}

// All returns every prototype sorted by name.
func (r *Registry) All() []Prototype {
	out := make([]Prototype, 0, len(r.protos))
	for _, p := range r.protos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
