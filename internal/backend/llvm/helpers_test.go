package llvm

import (
	"errors"
	"testing"

	lltypes "github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/require"

	"tidal/internal/layout"
	"tidal/internal/types"
)

func newCache(in *types.Interner) *TypeCache {
	return New(layout.X86_64LinuxGNU(), in)
}

// catch runs fn and returns the InternalError it raised, if any.
func catch(fn func()) (ie *InternalError) {
	var err error
	func() {
		defer Recover(&err)
		fn()
	}()
	if err == nil {
		return nil
	}
	errors.As(err, &ie)
	return ie
}

func requireInternal(t *testing.T, kind InternalErrorKind, fn func()) *InternalError {
	t.Helper()
	ie := catch(fn)
	require.NotNil(t, ie, "expected an internal error of kind %s", kind)
	require.Equal(t, kind, ie.Kind)
	return ie
}

// pointerDepth unwraps pointers and returns the innermost type.
func pointerDepth(t lltypes.Type) (int, lltypes.Type) {
	n := 0
	for {
		p, ok := t.(*lltypes.PointerType)
		if !ok {
			return n, t
		}
		n++
		t = p.ElemType
	}
}
