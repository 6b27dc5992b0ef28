package state

import "github.com/core-coin/cvm-go/primitives"

// MemoryBackend is a reference Database implementation: every account lives
// in a Go map. It exists for tests and standalone tooling, not as a
// production store — a trie- or file-backed Database would implement the
// same interface.
type MemoryBackend struct {
	accounts  map[primitives.Address]memBackendAccount
	code      map[primitives.Hash][]byte
	blockHash map[uint64]primitives.Hash
}

type memBackendAccount struct {
	balance  primitives.Word
	nonce    uint64
	codeHash primitives.Hash
	storage  map[primitives.Hash]primitives.Hash
}

// NewMemoryBackend returns an empty backend: every account reads as
// nonexistent until seeded via SetAccount/SetStorage/SetCode.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		accounts:  make(map[primitives.Address]memBackendAccount),
		code:      make(map[primitives.Hash][]byte),
		blockHash: make(map[uint64]primitives.Hash),
	}
}

// SetAccount seeds or overwrites an account's balance and nonce.
func (b *MemoryBackend) SetAccount(addr primitives.Address, balance primitives.Word, nonce uint64) {
	acc, ok := b.accounts[addr]
	if !ok {
		acc.storage = make(map[primitives.Hash]primitives.Hash)
	}
	acc.balance, acc.nonce = balance, nonce
	b.accounts[addr] = acc
}

// SetCode seeds an account's code, keyed internally by its SHA-3-256 hash.
func (b *MemoryBackend) SetCode(addr primitives.Address, code []byte) {
	h := primitives.Sum256(code)
	b.code[h] = code
	acc, ok := b.accounts[addr]
	if !ok {
		acc.storage = make(map[primitives.Hash]primitives.Hash)
	}
	acc.codeHash = h
	b.accounts[addr] = acc
}

// SetStorage seeds a single committed storage slot.
func (b *MemoryBackend) SetStorage(addr primitives.Address, key, value primitives.Hash) {
	acc, ok := b.accounts[addr]
	if !ok {
		acc.storage = make(map[primitives.Hash]primitives.Hash)
		b.accounts[addr] = acc
	}
	b.accounts[addr].storage[key] = value
}

// SetBlockHash seeds the hash returned for a given block number.
func (b *MemoryBackend) SetBlockHash(number uint64, hash primitives.Hash) {
	b.blockHash[number] = hash
}

func (b *MemoryBackend) BasicAccount(addr primitives.Address) (primitives.Word, uint64, primitives.Hash, bool) {
	acc, ok := b.accounts[addr]
	if !ok {
		return primitives.ZeroWord(), 0, primitives.Hash{}, false
	}
	return acc.balance, acc.nonce, acc.codeHash, true
}

func (b *MemoryBackend) CodeByHash(hash primitives.Hash) []byte {
	return b.code[hash]
}

func (b *MemoryBackend) Storage(addr primitives.Address, key primitives.Hash) primitives.Hash {
	acc, ok := b.accounts[addr]
	if !ok {
		return primitives.Hash{}
	}
	return acc.storage[key]
}

func (b *MemoryBackend) BlockHash(number uint64) primitives.Hash {
	return b.blockHash[number]
}
