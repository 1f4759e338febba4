package typeid

import (
	"crypto/md5" //nolint:gosec // identity digest, not a security boundary
	"encoding/hex"

	"github.com/google/uuid"
)

// FormatVersion is bumped whenever descriptor canonicalization or the GUID
// hash changes. Artifacts built with different versions never match.
const FormatVersion uint16 = 1

// Guid is a 128-bit structural hash.
type Guid [16]byte

// GuidFromString hashes a descriptor string.
func GuidFromString(descriptor string) Guid {
	return Guid(md5.Sum([]byte(descriptor))) //nolint:gosec
}

// String renders the GUID in canonical UUID form.
func (g Guid) String() string {
	return uuid.UUID(g).String()
}

// Hex renders the GUID as 32 lowercase hex digits.
func (g Guid) Hex() string {
	return hex.EncodeToString(g[:])
}

// IsZero reports whether the GUID is unset.
func (g Guid) IsZero() bool {
	return g == Guid{}
}
