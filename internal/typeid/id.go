package typeid

import "fmt"

// DataKind discriminates the payload of an ID.
type DataKind uint8

const (
	// DataConcrete identifiers carry their own GUID.
	DataConcrete DataKind = iota + 1
	// DataArray identifiers refer to their element's identifier.
	DataArray
	// DataPointer identifiers refer to their pointee's identifier.
	DataPointer
)

func (k DataKind) String() string {
	switch k {
	case DataConcrete:
		return "concrete"
	case DataArray:
		return "array"
	case DataPointer:
		return "pointer"
	default:
		return fmt.Sprintf("DataKind(%d)", k)
	}
}

// Data is the identity payload of an ID.
type Data struct {
	Kind DataKind
	Guid Guid // DataConcrete
	Elem *ID  // DataArray: element, DataPointer: pointee
	Mut  bool // DataPointer
}

// ID is a structural type identifier.
//
// IDs are shared by reference: an array ID points at the very element ID the
// engine produced for its element type, it never copies or rehashes it.
type ID struct {
	Name string
	Data Data
}

// Concrete builds an identifier carrying its own GUID.
func Concrete(name string, guid Guid) *ID {
	return &ID{Name: name, Data: Data{Kind: DataConcrete, Guid: guid}}
}

// ArrayOf builds the identifier of an array of elem.
func ArrayOf(elem *ID) *ID {
	return &ID{
		Name: "[" + elem.Name + "]",
		Data: Data{Kind: DataArray, Elem: elem},
	}
}

// PointerTo builds the identifier of a pointer to pointee.
func PointerTo(pointee *ID, mutable bool) *ID {
	prefix := "*const "
	if mutable {
		prefix = "*mut "
	}
	return &ID{
		Name: prefix + pointee.Name,
		Data: Data{Kind: DataPointer, Elem: pointee, Mut: mutable},
	}
}

// Equal compares identifiers structurally: concrete IDs by name and GUID,
// composed IDs by their components.
func (id *ID) Equal(other *ID) bool {
	if id == other {
		return true
	}
	if id == nil || other == nil {
		return false
	}
	if id.Name != other.Name || id.Data.Kind != other.Data.Kind {
		return false
	}
	switch id.Data.Kind {
	case DataConcrete:
		return id.Data.Guid == other.Data.Guid
	case DataArray:
		return id.Data.Elem.Equal(other.Data.Elem)
	case DataPointer:
		return id.Data.Mut == other.Data.Mut && id.Data.Elem.Equal(other.Data.Elem)
	default:
		return false
	}
}

// Guid returns the GUID that identifies id on the wire. Composed
// identifiers hash the GUID of their component, so an array or pointer
// changes identity whenever its element does:
//
//	[T]        md5("[" + hex(T) + "]")
//	*const T   md5("*const " + hex(T))
//	*mut T     md5("*mut " + hex(T))
func (id *ID) Guid() Guid {
	if id == nil {
		return Guid{}
	}
	switch id.Data.Kind {
	case DataConcrete:
		return id.Data.Guid
	case DataArray:
		return GuidFromString("[" + id.Data.Elem.Guid().Hex() + "]")
	case DataPointer:
		prefix := "*const "
		if id.Data.Mut {
			prefix = "*mut "
		}
		return GuidFromString(prefix + id.Data.Elem.Guid().Hex())
	default:
		return GuidFromString(id.Name)
	}
}

func (id *ID) String() string {
	if id == nil {
		return "<nil>"
	}
	switch id.Data.Kind {
	case DataConcrete:
		return fmt.Sprintf("%s (%s)", id.Name, id.Data.Guid)
	default:
		return fmt.Sprintf("%s (%s of %s)", id.Name, id.Data.Kind, id.Data.Elem.Name)
	}
}
