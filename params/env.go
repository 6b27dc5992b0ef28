package params

import (
	"github.com/core-coin/cvm-go/primitives"
)

// BytecodeAnalysis names how deeply created bytecode is processed before
// being stored. CfgEnv.PerfAnalyseCreatedBytecodes carries it, but no code
// in this module reads that field: created code is always stored as plain
// bytes.
type BytecodeAnalysis uint8

const (
	AnalysisRaw BytecodeAnalysis = iota
	AnalysisCheck
	AnalysisAnalyse
)

// CfgEnv carries the configuration knobs that do not change within a block.
type CfgEnv struct {
	NetworkID                     primitives.NetworkID
	SpecId                        SpecId
	PerfAllPrecompilesHaveBalance bool
	PerfAnalyseCreatedBytecodes   BytecodeAnalysis
	// LimitContractCodeSize overrides the EIP-170 24576-byte deployed-code
	// size cap when non-zero.
	LimitContractCodeSize uint64
	// DisableBlockGasLimit and DisableBalanceCheck turn off the
	// corresponding pre-flight checks in evmcore.Transact, for harnesses
	// that intentionally exercise out-of-protocol scenarios.
	DisableBlockGasLimit bool
	DisableBalanceCheck  bool
}

// DefaultCfgEnv returns a CfgEnv with the contract-size limit defaulted to
// the EIP-170 value and PerfAnalyseCreatedBytecodes set to AnalysisAnalyse
// (a setting the rest of the module does not read).
func DefaultCfgEnv() CfgEnv {
	return CfgEnv{
		SpecId:                      LATEST,
		PerfAnalyseCreatedBytecodes: AnalysisAnalyse,
		LimitContractCodeSize:       24576,
	}
}

// BlockEnv carries the block-level context visible to executing contracts.
type BlockEnv struct {
	Number     uint64
	Coinbase   primitives.Address
	Timestamp  uint64
	Difficulty primitives.Word
	EnergyLimit uint64
}

// CreateScheme distinguishes CREATE from CREATE2.
type CreateScheme uint8

const (
	SchemeCreate CreateScheme = iota
	SchemeCreate2
)

// TransactToKind distinguishes a message call from a contract creation.
type TransactToKind uint8

const (
	TransactCall TransactToKind = iota
	TransactCreate
)

// TransactTo is the destination of a transaction: either a call to an
// existing address, or a contract creation (CREATE or CREATE2).
type TransactTo struct {
	Kind         TransactToKind
	CallTo       primitives.Address
	CreateScheme CreateScheme
	Salt         primitives.Word // only meaningful when CreateScheme == SchemeCreate2
}

// Call builds a TransactTo targeting an existing account.
func Call(to primitives.Address) TransactTo {
	return TransactTo{Kind: TransactCall, CallTo: to}
}

// Create builds a TransactTo for a plain CREATE.
func Create() TransactTo {
	return TransactTo{Kind: TransactCreate, CreateScheme: SchemeCreate}
}

// Create2 builds a TransactTo for a CREATE2 with the given salt.
func Create2(salt primitives.Word) TransactTo {
	return TransactTo{Kind: TransactCreate, CreateScheme: SchemeCreate2, Salt: salt}
}

// TxEnv carries the transaction-level context.
type TxEnv struct {
	Caller      primitives.Address
	EnergyLimit uint64
	EnergyPrice primitives.Word
	TransactTo  TransactTo
	Value       primitives.Word
	Data        []byte

	// NetworkID, if non-nil, must match CfgEnv.NetworkID or the
	// transaction is rejected with ErrInvalidNetworkId.
	NetworkID *primitives.NetworkID
	// Nonce, if non-nil, must match the caller's current account nonce.
	Nonce *uint64
}

// Env bundles the full execution environment passed into evmcore.Transact.
type Env struct {
	Cfg   CfgEnv
	Block BlockEnv
	Tx    TxEnv
}
