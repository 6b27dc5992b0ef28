package vm

import (
	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
)

// BytecodeState tracks how much preprocessing a Bytecode value has had.
// NewRawBytecode yields Raw values; Check and Analyse promote them. Contract
// creation stores plain code bytes and every state read wraps them as Raw
// again: CfgEnv.PerfAnalyseCreatedBytecodes is not consulted, so stored code
// is never kept Checked or Analysed, and IsValidJumpdest scans Raw code on
// each call.
type BytecodeState uint8

const (
	// StateRaw code has not been touched: no padding, no jumpdest bitmap.
	StateRaw BytecodeState = iota
	// StateChecked code has a zero-padded copy whose length is a multiple
	// of 33 bytes, with at least 33 zero bytes after the code, but has no
	// jumpdest bitmap yet.
	StateChecked
	// StateAnalysed code carries a complete, immutable jumpdest bitmap.
	StateAnalysed
)

// Bytecode is an immutable, shareable view of contract code plus whatever
// analysis has been performed on it. Once Analysed, a Bytecode value is safe
// to cache by code hash and reused across every Contract frame that runs the
// same code.
type Bytecode struct {
	original primitives.Bytes
	padded   primitives.Bytes
	state    BytecodeState
	jumpdest bitvec
	hash     primitives.Hash
}

// NewRawBytecode wraps code with no preprocessing performed.
func NewRawBytecode(code []byte) *Bytecode {
	return &Bytecode{
		original: primitives.NewBytes(code),
		padded:   primitives.NewBytes(code),
		state:    StateRaw,
		hash:     primitives.Sum256(code),
	}
}

// Hash returns the SHA-3-256 digest of the original, unpadded code. Callers
// use this to key an analysed-bytecode cache.
func (b *Bytecode) Hash() primitives.Hash { return b.hash }

// Len returns the length of the original, unpadded code.
func (b *Bytecode) Len() int { return b.original.Len() }

// Original returns the unpadded code.
func (b *Bytecode) Original() []byte { return b.original.Raw() }

// State reports how far this value has been processed.
func (b *Bytecode) State() BytecodeState { return b.state }

// padWidth returns the smallest multiple of codePadMultiple that leaves at
// least codePadMultiple zero bytes after len(code), so a trailing multi-byte
// PUSH can always be read as if followed by enough zero bytes, regardless of
// where in the last chunk it starts.
const codePadMultiple = 33

func padWidth(n int) int {
	n += codePadMultiple
	rem := n % codePadMultiple
	if rem == 0 {
		return n
	}
	return n + (codePadMultiple - rem)
}

// Check pads the code with trailing zeros to the width padWidth gives (a
// no-op if already Checked or Analysed) and returns the result. The
// original, unpadded slice is left untouched. ByteAt and Slice read the
// original code and return zero past Len() whether or not Check has been
// called; the padded copy is stored on the value but no method returns it.
func (b *Bytecode) Check() *Bytecode {
	if b.state != StateRaw {
		return b
	}
	out := make([]byte, padWidth(b.original.Len()))
	copy(out, b.original.Raw())
	return &Bytecode{
		original: b.original,
		padded:   primitives.NewBytes(out),
		state:    StateChecked,
		hash:     b.hash,
	}
}

// Analyse builds the immutable jumpdest bitmap and returns an Analysed
// Bytecode. It is idempotent: calling it on an already-Analysed value
// returns the receiver unchanged.
func (b *Bytecode) Analyse() *Bytecode {
	if b.state == StateAnalysed {
		return b
	}
	checked := b.Check()
	return &Bytecode{
		original: checked.original,
		padded:   checked.padded,
		state:    StateAnalysed,
		jumpdest: codeBitmap(checked.original.Raw()),
		hash:     checked.hash,
	}
}

// ByteAt returns the byte at pc, or 0 if pc is past the end of the original
// code (the implicit padding every read sees, independent of bytecode
// state).
func (b *Bytecode) ByteAt(pc uint64) byte {
	if pc >= uint64(b.original.Len()) {
		return 0
	}
	return b.original.Raw()[pc]
}

// Slice returns a view of the original code in [start, end), treating bytes
// past Len() as zero.
func (b *Bytecode) Slice(start, end uint64) []byte {
	n := uint64(b.original.Len())
	out := make([]byte, end-start)
	if start >= n {
		return out
	}
	copyEnd := end
	if copyEnd > n {
		copyEnd = n
	}
	copy(out, b.original.Raw()[start:copyEnd])
	return out
}

// IsValidJumpdest reports whether dest is a JUMPDEST opcode that is not
// embedded inside PUSH immediate data. On a value that is not Analysed the
// jumpdest bitmap is rebuilt from the code on every call.
func (b *Bytecode) IsValidJumpdest(dest uint64) bool {
	if dest >= uint64(b.original.Len()) {
		return false
	}
	if OpCode(b.original.Raw()[dest]) != JUMPDEST {
		return false
	}
	if b.state != StateAnalysed {
		return codeBitmap(b.original.Raw()).codeSegment(dest)
	}
	return b.jumpdest.codeSegment(dest)
}

// bitvec is a packed bitmap, one bit per code byte, set when that byte is
// the start of an instruction (not PUSH data).
type bitvec []byte

func (v bitvec) codeSegment(pos uint64) bool {
	idx := pos / 8
	if idx >= uint64(len(v)) {
		return true
	}
	return v[idx]&(1<<(pos%8)) != 0
}

func (v bitvec) setCodeSegment(pos uint64) {
	v[pos/8] |= 1 << (pos % 8)
}

// codeBitmap scans code once and marks every byte that begins an
// instruction, skipping over PUSH immediate data.
func codeBitmap(code []byte) bitvec {
	v := make(bitvec, len(code)/8+1)
	for pc := uint64(0); pc < uint64(len(code)); {
		v.setCodeSegment(pc)
		op := OpCode(code[pc])
		if op.IsPush() {
			pc += uint64(op.PushSize()) + 1
			continue
		}
		pc++
	}
	return v
}

// CheckSize enforces the EIP-170 deployed-code size cap (24576 bytes by
// default, overridable via CfgEnv.LimitContractCodeSize) against raw,
// not-yet-stored contract-creation output. Nothing in this module calls it:
// evmcore.EVM.Create applies the same limit inline, under every fork.
func CheckSize(code []byte, cfg params.CfgEnv) error {
	limit := cfg.LimitContractCodeSize
	if limit == 0 {
		limit = MaxCodeSize
	}
	if uint64(len(code)) > limit {
		return ErrMaxCodeSizeExceeded
	}
	return nil
}
