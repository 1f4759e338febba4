package types

import (
	"fmt"
	"slices"
	"strings"
)

// MemoryKind is the storage discipline declared for a struct.
type MemoryKind uint8

const (
	// MemoryGC structs live on the managed heap and are referenced through a
	// relocatable handle.
	MemoryGC MemoryKind = iota
	// MemoryValue structs are embedded wherever they are used.
	MemoryValue
)

func (m MemoryKind) String() string {
	switch m {
	case MemoryGC:
		return "gc"
	case MemoryValue:
		return "value"
	default:
		return fmt.Sprintf("MemoryKind(%d)", m)
	}
}

// ParseMemoryKind converts the textual specifier of a struct declaration.
// An empty specifier defaults to gc.
func ParseMemoryKind(s string) (MemoryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gc":
		return MemoryGC, nil
	case "value":
		return MemoryValue, nil
	default:
		return MemoryGC, fmt.Errorf("invalid memory kind: %q (expected: gc|value)", s)
	}
}

// StructField describes a single field inside a nominal struct type.
type StructField struct {
	Name string
	Type TypeID
}

// StructInfo stores metadata for a struct type.
type StructInfo struct {
	Name   string
	Module string
	Memory MemoryKind
	Fields []StructField
}

// FullName returns the module-qualified name of the struct.
func (s *StructInfo) FullName() string {
	if s == nil {
		return "?"
	}
	if s.Module == "" {
		return s.Name
	}
	return s.Module + "::" + s.Name
}

// RegisterStruct allocates a nominal struct type slot and returns its TypeID.
// Fields are attached separately with SetStructFields so that declarations
// may refer to themselves.
func (in *Interner) RegisterStruct(module, name string, memory MemoryKind) TypeID {
	var slot uint32
	in.structs, slot = appendSlot(in.structs, StructInfo{Name: name, Module: module, Memory: memory}, "struct")
	return in.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// SetStructFields stores the resolved field descriptors for the struct type.
func (in *Interner) SetStructFields(typeID TypeID, fields []StructField) {
	info := in.structInfo(typeID)
	if info == nil {
		return
	}
	info.Fields = cloneStructFields(fields)
}

// StructInfo returns metadata for the provided struct TypeID.
func (in *Interner) StructInfo(typeID TypeID) (*StructInfo, bool) {
	info := in.structInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

// StructFields returns a copy of struct fields for the TypeID.
func (in *Interner) StructFields(typeID TypeID) []StructField {
	info := in.structInfo(typeID)
	if info == nil || len(info.Fields) == 0 {
		return nil
	}
	return cloneStructFields(info.Fields)
}

// FindStruct looks a struct up by its full name.
func (in *Interner) FindStruct(fullName string) (TypeID, bool) {
	for _, id := range in.Structs() {
		if info := in.structInfo(id); info != nil && info.FullName() == fullName {
			return id, true
		}
	}
	return NoTypeID, false
}

func (in *Interner) structInfo(typeID TypeID) *StructInfo {
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindStruct {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.structs) {
		return nil
	}
	return &in.structs[tt.Payload]
}

func cloneStructFields(fields []StructField) []StructField {
	if len(fields) == 0 {
		return nil
	}
	return slices.Clone(fields)
}
