// Package primitives provides the fixed-width value types shared by every
// other package in this module: 256-bit words, ICAN addresses, and SHA3-256
// digests.
package primitives

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// HashLength is the width, in bytes, of a Hash.
const HashLength = 32

// Hash is a 32-byte digest produced by SHA-3-256 (the NIST standard, not
// Keccak-256).
type Hash [HashLength]byte

// Sum256 hashes the concatenation of the given byte slices with SHA-3-256.
func Sum256(data ...[]byte) Hash {
	h := sha3.New256()
	for _, d := range data {
		h.Write(d)
	}
	var out Hash
	h.Sum(out[:0])
	return out
}

// EmptyHash is the SHA-3-256 digest of the empty string.
var EmptyHash = Sum256(nil)

// BytesToHash left-pads or truncates b to 32 bytes and returns the result.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte { return h[:] }

// IsZero reports whether every byte of the hash is zero.
func (h Hash) IsZero() bool { return h == Hash{} }

// Word interprets the hash as a big-endian unsigned integer and returns it as
// a Word.
func (h Hash) Word() Word {
	var w Word
	w.SetBytes(h[:])
	return w
}

// Hex returns the "0x"-prefixed lowercase hex encoding of the hash.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// GoString implements fmt.GoStringer for friendlier test failure output.
func (h Hash) GoString() string { return fmt.Sprintf("primitives.Hash(%s)", h.Hex()) }
