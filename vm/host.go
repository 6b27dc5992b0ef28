package vm

import (
	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
)

// Log is an event emitted by LOG0..LOG4, ready to be appended to the
// enclosing transaction's receipt by the Host.
type Log struct {
	Address primitives.Address
	Topics  []primitives.Hash
	Data    []byte
}

// CallKind distinguishes the five ways one contract frame can invoke
// another.
type CallKind uint8

const (
	CallKindCall CallKind = iota
	CallKindCallCode
	CallKindDelegateCall
	CallKindStaticCall
	CallKindCreate
	CallKindCreate2
)

// CallInput bundles the parameters of a CALL/CALLCODE/DELEGATECALL/
// STATICCALL as built by the interpreter from stack operands, ready to pass
// to Host.Call.
type CallInput struct {
	Kind    CallKind
	Caller  primitives.Address
	Address primitives.Address // account the code is fetched from
	// ContextAddress is the account whose balance/storage this frame reads
	// and writes: equal to Address for CALL/STATICCALL, equal to the
	// calling frame's own address for DELEGATECALL/CALLCODE (both run
	// someone else's code against their own state).
	ContextAddress primitives.Address
	Value          primitives.Word
	Input          []byte
	EnergyLimit    uint64
	IsStatic       bool
}

// CreateInput bundles the parameters of a CREATE/CREATE2.
type CreateInput struct {
	Kind        CallKind // CallKindCreate or CallKindCreate2
	Caller      primitives.Address
	Value       primitives.Word
	InitCode    []byte
	Salt        primitives.Word // only meaningful for CallKindCreate2
	EnergyLimit uint64
}

// CallResult is what a sub-call or sub-create hands back to the calling
// frame's interpreter loop.
type CallResult struct {
	Success      bool
	ReturnData   []byte
	EnergyLeft   uint64
	EnergyRefund uint64
	CreatedAddr  primitives.Address // set only for CallKindCreate/CallKindCreate2
}

// Host is the interpreter's only window onto the outside world: account
// state, block context, and the ability to recurse into a sub-call or
// sub-create. vm never imports the state package directly — state.JournaledState
// implements Host, keeping the opcode/world seam a plain interface so the
// interpreter can run against a DummyHost in isolated opcode tests.
type Host interface {
	// Account state
	AccountExists(addr primitives.Address) bool
	Balance(addr primitives.Address) primitives.Word
	CodeOf(addr primitives.Address) *Bytecode
	CodeSize(addr primitives.Address) int
	CodeHash(addr primitives.Address) primitives.Hash

	// Storage
	SLoad(addr primitives.Address, key primitives.Hash) primitives.Hash
	SStore(addr primitives.Address, key, value primitives.Hash)
	SLoadOriginal(addr primitives.Address, key primitives.Hash) primitives.Hash

	// TouchAddress and TouchSlot implement EIP-2929 access-list accounting:
	// they report whether the address/slot was already warm, then mark it
	// warm for the rest of the transaction. Implementations track warmth
	// under every fork; the gas-cost call sites only consult them under
	// ISTANBUL, so no cold surcharge applies before it. Gas-cost call sites call these themselves rather than relying on the
	// opcode's own accessor to warm as a side effect, since the cost must
	// be known before the accessor runs.
	TouchAddress(addr primitives.Address) (wasWarm bool)
	TouchSlot(addr primitives.Address, key primitives.Hash) (wasWarm bool)

	// Block/tx environment
	BlockEnv() params.BlockEnv
	TxOrigin() primitives.Address
	TxEnergyPrice() primitives.Word
	NetworkID() primitives.NetworkID
	Spec() params.SpecId
	BlockHash(number uint64) primitives.Hash

	// Control
	Log(l Log)
	SelfDestruct(addr, beneficiary primitives.Address) bool
	AddRefund(delta uint64)
	SubRefund(delta uint64)

	// Recursion back into the interpreter for CALL-family and CREATE-family
	// opcodes.
	Call(input CallInput) CallResult
	Create(input CreateInput) CallResult
}
