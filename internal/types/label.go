package types

import (
	"fmt"
	"strings"
)

// Label returns the canonical textual form of a type.
//
// The output feeds structural type identifiers, so it is a wire format: any
// change here changes the GUID of every struct whose fields mention the
// affected types.
func Label(typesIn *Interner, id TypeID) string {
	var sb strings.Builder
	writeLabel(&sb, typesIn, id)
	return sb.String()
}

// Label is a method form of the package-level Label.
func (in *Interner) Label(id TypeID) string {
	return Label(in, id)
}

func writeLabel(sb *strings.Builder, typesIn *Interner, id TypeID) {
	tt, ok := typesIn.Lookup(id)
	if !ok {
		sb.WriteString("?")
		return
	}
	switch tt.Kind {
	case KindError:
		sb.WriteString("{unknown}")
	case KindBool:
		sb.WriteString("bool")
	case KindInt:
		sb.WriteString(formatIntType(tt.Width, true))
	case KindUint:
		sb.WriteString(formatIntType(tt.Width, false))
	case KindFloat:
		sb.WriteString(formatFloatType(tt.Width))
	case KindStruct:
		info, _ := typesIn.StructInfo(id)
		sb.WriteString(info.FullName())
	case KindArray:
		sb.WriteByte('[')
		writeLabel(sb, typesIn, tt.Elem)
		sb.WriteByte(']')
	case KindTuple:
		info, ok := typesIn.TupleInfo(id)
		if !ok {
			sb.WriteString("(?)")
			return
		}
		sb.WriteByte('(')
		writeList(sb, typesIn, info.Elems)
		sb.WriteByte(')')
	case KindFn:
		info, ok := typesIn.FnInfo(id)
		if !ok {
			sb.WriteString("fn(?)")
			return
		}
		sb.WriteString("fn ")
		sb.WriteString(info.FullName())
		if len(info.TypeArgs) > 0 {
			sb.WriteByte('<')
			writeList(sb, typesIn, info.TypeArgs)
			sb.WriteByte('>')
		}
		sb.WriteByte('(')
		writeList(sb, typesIn, info.Params)
		sb.WriteByte(')')
		if !typesIn.IsUnit(info.Result) {
			sb.WriteString(" -> ")
			writeLabel(sb, typesIn, info.Result)
		}
	default:
		sb.WriteString("?")
	}
}

func writeList(sb *strings.Builder, typesIn *Interner, ids []TypeID) {
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeLabel(sb, typesIn, id)
	}
}

func formatIntType(width Width, signed bool) string {
	prefix := "i"
	if !signed {
		prefix = "u"
	}
	if width == WidthSize {
		return prefix + "size"
	}
	return fmt.Sprintf("%s%d", prefix, width)
}

func formatFloatType(width Width) string {
	return fmt.Sprintf("f%d", width)
}
