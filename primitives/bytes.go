package primitives

// Bytes is an immutable, shareable view over a byte slice. Bytecode uses it
// to hand out read-only access to padded/analysed code without copying.
type Bytes struct {
	data []byte
}

// NewBytes wraps b. Callers must not mutate b after constructing a Bytes
// from it.
func NewBytes(b []byte) Bytes { return Bytes{data: b} }

// Len returns the number of bytes in the view.
func (b Bytes) Len() int { return len(b.data) }

// Slice returns a sub-view [start:end). No bounds copy is made; callers must
// not mutate the result.
func (b Bytes) Slice(start, end int) []byte {
	if start >= len(b.data) {
		return nil
	}
	if end > len(b.data) {
		end = len(b.data)
	}
	return b.data[start:end]
}

// Raw returns the full underlying slice. Callers must not mutate it.
func (b Bytes) Raw() []byte { return b.data }

// NetworkOf returns the NetworkID implied by an address's ICAN prefix. It is
// the inverse of prefixFor, used by components (e.g. the ED448 precompile)
// that must derive "the caller's network" from an Address value alone.
func NetworkOf(a Address) NetworkID {
	p := a.Prefix()
	switch {
	case p == [2]byte{'c', 'b'}:
		return NetworkMainnet
	case p == [2]byte{'a', 'b'}:
		return NetworkDevin
	default:
		return 0
	}
}
