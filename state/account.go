// Package state provides the journaled account/storage cache that
// implements vm.Host: it sits between the interpreter and a pluggable
// Database backend, tracking every change so a CALL/CREATE frame that
// reverts can undo exactly what it did and nothing more.
package state

import "github.com/core-coin/cvm-go/primitives"

// account is the in-memory representation of one account's balance, nonce,
// and code pointer. Storage is tracked separately, per (address, key), so
// reverting a single slot write doesn't need to copy the whole account.
type account struct {
	balance primitives.Word
	nonce   uint64
	code    *stateCode
}

// stateCode pairs a contract's code with its hash, cached once per account
// since hashing is only needed when code first loads or changes.
type stateCode struct {
	hash primitives.Hash
	data []byte
}

func emptyAccount() *account {
	return &account{}
}

func (a *account) clone() *account {
	cp := *a
	return &cp
}

// isEmpty reports whether the account is "empty" in the EIP-161 sense: zero
// nonce, zero balance, no code. Empty accounts are pruned rather than kept
// around once nothing references them.
func (a *account) isEmpty() bool {
	return a.nonce == 0 && a.balance.IsZero() && (a.code == nil || len(a.code.data) == 0)
}
