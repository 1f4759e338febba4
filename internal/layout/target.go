package layout

import (
	"fmt"

	"tidal/internal/types"
)

// Target describes the ABI target triple and its pointer properties.
type Target struct {
	Triple   string // e.g. "x86_64-linux-gnu"
	PtrSize  int    // bytes
	PtrAlign int    // bytes

	// MaxScalarAlign caps the natural alignment of integers and floats.
	MaxScalarAlign int
}

func X86_64LinuxGNU() Target {
	return Target{
		Triple:         "x86_64-linux-gnu",
		PtrSize:        8,
		PtrAlign:       8,
		MaxScalarAlign: 16,
	}
}

func AArch64LinuxGNU() Target {
	return Target{
		Triple:         "aarch64-linux-gnu",
		PtrSize:        8,
		PtrAlign:       8,
		MaxScalarAlign: 16,
	}
}

func I686LinuxGNU() Target {
	return Target{
		Triple:         "i686-linux-gnu",
		PtrSize:        4,
		PtrAlign:       4,
		MaxScalarAlign: 4,
	}
}

// TargetByTriple returns one of the known targets. An empty triple selects
// x86_64-linux-gnu.
func TargetByTriple(triple string) (Target, error) {
	switch triple {
	case "", "x86_64-linux-gnu":
		return X86_64LinuxGNU(), nil
	case "aarch64-linux-gnu":
		return AArch64LinuxGNU(), nil
	case "i686-linux-gnu":
		return I686LinuxGNU(), nil
	default:
		return Target{}, fmt.Errorf("unknown target %q (expected: x86_64-linux-gnu|aarch64-linux-gnu|i686-linux-gnu)", triple)
	}
}

// PointerBits returns the machine word width used to resolve isize/usize.
func (t Target) PointerBits() types.Width {
	switch t.PtrSize {
	case 4:
		return types.Width32
	case 16:
		return types.Width128
	default:
		return types.Width64
	}
}
