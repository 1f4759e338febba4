package llvm

import "fmt"

// InternalErrorKind enumerates invariant violations of the translation layer.
type InternalErrorKind uint8

const (
	// ErrUnhandledKind indicates a source type kind this layer cannot handle.
	ErrUnhandledKind InternalErrorKind = iota + 1
	// ErrUnresolvedSize indicates an isize/usize that was never resolved
	// against the target.
	ErrUnresolvedSize
	// ErrCyclicArray indicates an array whose element type is itself.
	ErrCyclicArray
	// ErrUntranslatable indicates a struct field, parameter or return type
	// with no data representation.
	ErrUntranslatable
	// ErrGenericFunction indicates a function definition with type arguments.
	ErrGenericFunction
)

func (k InternalErrorKind) String() string {
	switch k {
	case ErrUnhandledKind:
		return "unhandled type kind"
	case ErrUnresolvedSize:
		return "unresolved size class"
	case ErrCyclicArray:
		return "cyclic array reference"
	case ErrUntranslatable:
		return "untranslatable type"
	case ErrGenericFunction:
		return "generic function"
	default:
		return fmt.Sprintf("InternalErrorKind(%d)", k)
	}
}

// InternalError is a compiler bug: either the front end let an invalid type
// through, or this layer lacks support for it. It is never a user diagnostic.
//
// The TypeCache raises it with panic; drivers turn it back into an error with
// Recover at a session boundary.
type InternalError struct {
	Kind   InternalErrorKind
	Type   string // label of the offending type
	Detail string
}

func (e *InternalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Detail == "" {
		return fmt.Sprintf("internal compiler error: %s: %s", e.Kind, e.Type)
	}
	return fmt.Sprintf("internal compiler error: %s: %s (%s)", e.Kind, e.Type, e.Detail)
}

func fatal(kind InternalErrorKind, typ, format string, args ...any) {
	detail := ""
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}
	panic(&InternalError{Kind: kind, Type: typ, Detail: detail})
}

// Recover stores an InternalError raised by the TypeCache into *errp. It must
// be deferred directly. Panics of any other type are re-raised.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if ie, ok := r.(*InternalError); ok {
		if errp != nil {
			*errp = ie
		}
		return
	}
	panic(r)
}
