package vm

import "github.com/core-coin/cvm-go/primitives"

// Contract is the execution frame for one call/create invocation: the code
// being run, the calldata it sees, and the energy budget it owns. A fresh
// Contract is pushed for every CALL/CALLCODE/DELEGATECALL/STATICCALL/
// CREATE/CREATE2.
type Contract struct {
	Caller primitives.Address
	// Address is the account whose storage opcodes (SLOAD/SSTORE,
	// SELFBALANCE) operate against: the callee for CALL/STATICCALL, the
	// caller itself for DELEGATECALL/CALLCODE.
	Address primitives.Address
	// CodeAddress is the account the running code was fetched from. Equal
	// to Address except for DELEGATECALL/CALLCODE.
	CodeAddress primitives.Address

	Code     *Bytecode
	Input    []byte
	Value    primitives.Word
	IsStatic bool

	Energy *EnergyMeter
}

// NewContract builds a call frame. code may be nil for calls into accounts
// with no code (a plain value transfer).
func NewContract(caller, address primitives.Address, value primitives.Word, energyLimit uint64, code *Bytecode) *Contract {
	if code == nil {
		code = NewRawBytecode(nil)
	}
	return &Contract{
		Caller:      caller,
		Address:     address,
		CodeAddress: address,
		Code:        code,
		Value:       value,
		Energy:      NewEnergyMeter(energyLimit),
	}
}

// AsDelegateOrCallCode rewires the frame so storage ops (Address) keep
// pointing at the caller's own account while execution reads code from a
// different address (codeAddr) — the behavior DELEGATECALL and CALLCODE
// both need, differing only in whether Caller/Value are also preserved
// from the parent frame (handled by the caller of this constructor, in the
// interpreter's CALL dispatch).
func (c *Contract) AsDelegateOrCallCode(codeAddr primitives.Address, code *Bytecode) {
	c.CodeAddress = codeAddr
	c.Code = code
}

// OpAt returns the opcode at pc, or STOP past the end of code (the
// interpreter's run loop treats a fallthrough as an implicit STOP).
func (c *Contract) OpAt(pc uint64) OpCode {
	return OpCode(c.Code.ByteAt(pc))
}

// ValidJumpdest reports whether pc is a non-PUSH-data JUMPDEST in this
// frame's code.
func (c *Contract) ValidJumpdest(pc uint64) bool {
	return c.Code.IsValidJumpdest(pc)
}
