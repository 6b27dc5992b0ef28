package primitives

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Word is an unsigned 256-bit integer: every stack slot, storage value, and
// memory-load result in the interpreter is a Word. It is a type alias for
// uint256.Int so the full zero-allocation arithmetic API (Add, Sub, Mul,
// AddMod, Exp, ...) is available directly on values of this type, the same
// representation go-ethereum and erigon use for EVM words.
type Word = uint256.Int

// ZeroWord returns a Word set to zero.
func ZeroWord() Word { return Word{} }

// NewWordFromUint64 returns a Word holding the given uint64 value.
func NewWordFromUint64(v uint64) Word {
	var w Word
	w.SetUint64(v)
	return w
}

// WordFromBig is a convenience constructor for callers holding *big.Int
// values; a nil or zero value yields the zero Word.
func WordFromBig(v *big.Int) Word {
	var w Word
	if v == nil || v.Sign() == 0 {
		return w
	}
	w.SetBytes(v.Bytes())
	return w
}
