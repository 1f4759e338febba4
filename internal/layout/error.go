package layout

import (
	"fmt"
	"strings"
)

// LayoutErrorKind enumerates types of layout calculation errors.
type LayoutErrorKind uint8

const (
	// LayoutErrRecursiveUnsized indicates a recursive type with no fixed size.
	LayoutErrRecursiveUnsized LayoutErrorKind = iota + 1
	// LayoutErrOpaque indicates a named aggregate whose body was never defined.
	LayoutErrOpaque
	// LayoutErrUnsized indicates a type with no storage form (void, functions).
	LayoutErrUnsized
	LayoutErrSizeOverflow
)

// LayoutError represents an error during memory layout calculation.
type LayoutError struct {
	Kind  LayoutErrorKind
	Type  string
	Cycle []string // for LayoutErrRecursiveUnsized
	Err   error    // for LayoutErrSizeOverflow
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrRecursiveUnsized:
		if len(e.Cycle) == 0 {
			return fmt.Sprintf("recursive value type has infinite size (%s)", e.Type)
		}
		return fmt.Sprintf("recursive value type has infinite size (cycle: %s)", strings.Join(e.Cycle, " -> "))
	case LayoutErrOpaque:
		return fmt.Sprintf("type %s has no body", e.Type)
	case LayoutErrUnsized:
		return fmt.Sprintf("type %s has no storage size", e.Type)
	case LayoutErrSizeOverflow:
		if e.Err != nil {
			return fmt.Sprintf("size of %s overflows: %v", e.Type, e.Err)
		}
		return fmt.Sprintf("size of %s overflows", e.Type)
	default:
		return fmt.Sprintf("layout error kind=%d type %s", e.Kind, e.Type)
	}
}
