// Package object defines the immutable blob/tree/commit graph and the
// canonical hashing scheme that identifies every value in it.
package object

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidID is returned when a string cannot be parsed as an ID.
var ErrInvalidID = errors.New("invalid id")

// idLen is the fixed width of an ID: 32 raw digest bytes, hex-encoded.
const idLen = 64

// ID is a 64-character lowercase hex digest identifying a value by its
// content. IDs are value-typed and compared by digest equality.
type ID string

// Zero is the empty ID, used to represent "no value" (e.g. a branch with
// no tip, or a commit with no parent).
const Zero ID = ""

// NewID validates s as a 64-character lowercase hex string and returns it
// as an ID. It fails with ErrInvalidID otherwise.
func NewID(s string) (ID, error) {
	if len(s) != idLen {
		return Zero, fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidID, s, len(s), idLen)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return Zero, fmt.Errorf("%w: %q is not hex: %v", ErrInvalidID, s, err)
	}
	for _, c := range s {
		if c >= 'A' && c <= 'F' {
			return Zero, fmt.Errorf("%w: %q must be lowercase", ErrInvalidID, s)
		}
	}
	return ID(s), nil
}

// HashBytes computes the ID of a raw byte sequence, with no type envelope.
func HashBytes(data []byte) ID {
	sum := sha256.Sum256(data)
	return ID(hex.EncodeToString(sum[:]))
}

// HashTyped computes the ID of canonical bytes under a named object kind,
// using the envelope "<kind> <len>\0<bytes>" before hashing. Wrapping the
// kind into the hash domain keeps a blob and a tree that happen to encode
// to the same bytes from colliding.
func HashTyped(kind string, data []byte) ID {
	header := fmt.Sprintf("%s %d\x00", kind, len(data))
	h := sha256.New()
	h.Write([]byte(header))
	h.Write(data)
	return ID(hex.EncodeToString(h.Sum(nil)))
}

// Short returns the first 7 hex characters of the ID, used for detached
// HEAD display.
func (id ID) Short() string {
	if len(id) < 7 {
		return string(id)
	}
	return string(id[:7])
}

// IsZero reports whether id is the empty ID.
func (id ID) IsZero() bool {
	return id == Zero
}
