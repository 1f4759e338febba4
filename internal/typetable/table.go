// Package typetable builds the runtime type table of a module and compares
// tables across reloads.
//
// The table is what the host runtime consults when new code is loaded: a type
// whose GUID is unchanged keeps its live objects, any other type needs its
// objects mapped over field by field.
package typetable

import "tidal/internal/typeid"

// Schema is bumped whenever the Table encoding changes.
const Schema uint16 = 1

// Kind classifies an entry.
type Kind string

const (
	KindStruct Kind = "struct"
	KindArray  Kind = "array"
)

// Table is the type table of one module.
type Table struct {
	Schema uint16
	// FormatVersion of the identifiers in the table.
	IDFormat uint16
	Module   string
	Target   string
	Entries  []Entry // sorted by Name
}

// Entry describes one named aggregate.
type Entry struct {
	Name   string
	Guid   typeid.Guid
	Kind   Kind
	Memory string // gc | value, empty for arrays
	Size   int
	Align  int
	Fields []Field
}

// Field is one member of a struct entry, or the element of an array entry.
type Field struct {
	Name   string
	Type   string      // canonical label
	Guid   typeid.Guid // zero for types without an identifier (tuples)
	Offset int
	// Nominal is set for struct-typed fields. Their shape is tracked by the
	// struct's own entry, so they are compared by name only.
	Nominal bool
}

// Lookup finds an entry by name.
func (t *Table) Lookup(name string) (*Entry, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Entries {
		if t.Entries[i].Name == name {
			return &t.Entries[i], true
		}
	}
	return nil, false
}
