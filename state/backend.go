package state

import "github.com/core-coin/cvm-go/primitives"

// Database is the read-only view of committed chain state a JournaledState
// falls back to on a cache miss: the last block's balances, nonces, code,
// and storage, plus block-hash lookups for the BLOCKHASH opcode. It is never
// written to directly; all writes accumulate in the JournaledState's cache
// until the caller decides to persist them elsewhere.
type Database interface {
	BasicAccount(addr primitives.Address) (balance primitives.Word, nonce uint64, codeHash primitives.Hash, exists bool)
	CodeByHash(hash primitives.Hash) []byte
	Storage(addr primitives.Address, key primitives.Hash) primitives.Hash
	BlockHash(number uint64) primitives.Hash
}
