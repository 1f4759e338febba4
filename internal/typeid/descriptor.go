package typeid

import "strings"

// Field is one entry of a struct descriptor.
type Field struct {
	Name string
	Type string // canonical label of the field type
}

// StructDescriptor renders the canonical descriptor of a struct. It is the
// only place the descriptor layout is defined.
func StructDescriptor(fullName string, fields []Field) string {
	var sb strings.Builder
	sb.WriteString("struct ")
	sb.WriteString(fullName)
	sb.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Type)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Struct builds the identifier of a struct from its descriptor.
func Struct(fullName string, fields []Field) *ID {
	return Concrete(fullName, GuidFromString(StructDescriptor(fullName, fields)))
}
