package vm

import "github.com/core-coin/cvm-go/primitives"

// Memory is the interpreter's byte-addressable scratch space. It grows only
// in whole 32-byte words and never shrinks within a call frame; the energy
// cost of each growth is charged by the interpreter via EnergyMeter.RecordMemory
// before the resize happens, using the quadratic expansion formula.
type Memory struct {
	store []byte
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory { return &Memory{} }

// Len returns the current size of memory in bytes (always a multiple of 32).
func (m *Memory) Len() int { return len(m.store) }

// Words returns the current size of memory in 32-byte words.
func (m *Memory) Words() uint64 { return uint64(len(m.store)) / 32 }

// Resize grows memory so it is at least size bytes, rounded up to the next
// whole word. Shrinking is never performed.
func (m *Memory) Resize(size uint64) {
	words := wordCount(size)
	need := words * 32
	if uint64(len(m.store)) >= need {
		return
	}
	m.store = append(m.store, make([]byte, need-uint64(len(m.store)))...)
}

// wordCount rounds size up to the nearest multiple of 32, expressed in
// words.
func wordCount(size uint64) uint64 {
	return (size + 31) / 32
}

// Set copies value into memory at [offset, offset+len(value)). The caller
// must have already resized memory to cover the range.
func (m *Memory) Set(offset uint64, value []byte) {
	if len(value) == 0 {
		return
	}
	copy(m.store[offset:], value)
}

// Set32 writes a big-endian, zero-padded 256-bit word at offset.
func (m *Memory) Set32(offset uint64, val primitives.Word) {
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// Get returns a copy of the memory contents at [offset, offset+size).
// Reading past the end of allocated memory (which should not happen, since
// the interpreter always resizes first) returns zero bytes rather than
// panicking.
func (m *Memory) Get(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	if offset >= uint64(len(m.store)) {
		return out
	}
	end := offset + size
	if end > uint64(len(m.store)) {
		end = uint64(len(m.store))
	}
	copy(out, m.store[offset:end])
	return out
}

// GetPtr returns a direct slice into memory at [offset, offset+size), valid
// only until the next Resize. Used by MLOAD and SHA3, which read memory
// without keeping the slice; RETURN, LOG* and CALL input use Get.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Data returns the full backing slice.
func (m *Memory) Data() []byte { return m.store }
