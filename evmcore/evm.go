// Package evmcore is the transaction facade: it wires state.JournaledState
// and vm.Host together into an EVM that can run a whole transaction
// (Transact) or service a single CALL/CREATE recursion requested by a
// running interpreter (Call/Create, completing vm.Host).
package evmcore

import (
	"github.com/core-coin/cvm-go/corelog"
	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/precompiles"
	"github.com/core-coin/cvm-go/primitives"
	"github.com/core-coin/cvm-go/state"
	"github.com/core-coin/cvm-go/vm"
)

var log = corelog.Default().Module("evmcore")

// EVM embeds the journaled world state and adds the two Host methods that
// need to recurse back into the interpreter: Call and Create. Every other
// vm.Host method is satisfied directly by the embedded *state.JournaledState.
type EVM struct {
	*state.JournaledState
	cfg   params.CfgEnv
	block params.BlockEnv
	depth int
}

// New builds an EVM over db for one block's worth of transactions. Call
// Reset (via Transact) before each transaction to re-seed the per-tx warm
// set and storage-origin cache.
func New(db state.Database, env params.Env) *EVM {
	return &EVM{
		JournaledState: state.NewJournaledState(db, env),
		cfg:            env.Cfg,
		block:          env.Block,
	}
}

func hasValueTransfer(kind vm.CallKind) bool {
	return kind == vm.CallKindCall || kind == vm.CallKindCallCode
}

// Call implements vm.Host.Call: it is invoked by a running interpreter for
// CALL/CALLCODE/DELEGATECALL/STATICCALL, and directly by Transact for a
// top-level message call.
func (e *EVM) Call(input vm.CallInput) vm.CallResult {
	snap := e.Snapshot()

	if hasValueTransfer(input.Kind) && !input.Value.IsZero() {
		callerBalance := e.Balance(input.Caller)
		if callerBalance.Cmp(&input.Value) < 0 {
			e.RevertToSnapshot(snap)
			return vm.CallResult{Success: false, EnergyLeft: input.EnergyLimit}
		}
		e.SubBalance(input.Caller, input.Value)
		e.AddBalance(input.ContextAddress, input.Value)
	} else {
		// A zero-value, no-transfer call still touches the destination so
		// an empty account that receives it is correctly seen as touched
		// for EIP-161 pruning purposes.
		e.AddBalance(input.ContextAddress, primitives.ZeroWord())
	}

	if c, ok := precompiles.Lookup(input.Address, e.Spec()); ok {
		return e.runPrecompile(c, input, snap)
	}

	code := e.CodeOf(input.Address)
	if code == nil || code.Len() == 0 {
		return vm.CallResult{Success: true, EnergyLeft: input.EnergyLimit}
	}

	contract := vm.NewContract(input.Caller, input.ContextAddress, input.Value, input.EnergyLimit, code)
	contract.CodeAddress = input.Address
	contract.IsStatic = input.IsStatic

	e.depth++
	interp := vm.NewInterpreter(e, contract, e.Spec(), e.depth)
	output, err := interp.Run()
	e.depth--

	if err != nil {
		e.RevertToSnapshot(snap)
		energyLeft := uint64(0)
		if err == vm.ErrExecutionReverted {
			energyLeft = contract.Energy.Remaining()
		}
		log.Debug("call failed", "address", input.Address.Hex(), "depth", e.depth, "err", err)
		return vm.CallResult{Success: false, ReturnData: output, EnergyLeft: energyLeft}
	}
	return vm.CallResult{Success: true, ReturnData: output, EnergyLeft: contract.Energy.Remaining()}
}

// runPrecompile dispatches to a native contract instead of the interpreter.
// A precompile that errors or runs out of energy reverts the frame exactly
// like a failed interpreted call.
func (e *EVM) runPrecompile(c precompiles.Contract, input vm.CallInput, snap int) vm.CallResult {
	cost := c.RequiredEnergy(input.Input)
	if cost > input.EnergyLimit {
		e.RevertToSnapshot(snap)
		return vm.CallResult{Success: false, EnergyLeft: 0}
	}

	var out []byte
	var err error
	if aware, ok := c.(precompiles.CallerAware); ok {
		out, err = aware.RunWithCaller(input.Input, input.Caller)
	} else {
		out, err = c.Run(input.Input)
	}
	if err != nil {
		e.RevertToSnapshot(snap)
		return vm.CallResult{Success: false, EnergyLeft: 0}
	}
	return vm.CallResult{Success: true, ReturnData: out, EnergyLeft: input.EnergyLimit - cost}
}

// Create implements vm.Host.Create: it is invoked by a running interpreter
// for CREATE/CREATE2, and directly by Transact for a top-level contract
// creation.
func (e *EVM) Create(input vm.CreateInput) vm.CallResult {
	if e.Nonce(input.Caller) == ^uint64(0) {
		log.Warn("create failed: nonce overflow", "caller", input.Caller.Hex())
		return vm.CallResult{EnergyLeft: 0}
	}

	var newAddr primitives.Address
	switch input.Kind {
	case vm.CallKindCreate2:
		codeHash := primitives.Sum256(input.InitCode)
		newAddr = primitives.CreateAddress2(input.Caller, input.Salt, codeHash, e.NetworkID())
	default:
		newAddr = primitives.CreateAddress(input.Caller, e.Nonce(input.Caller), e.NetworkID())
	}

	// The nonce bump happens before the snapshot, not after: go-ethereum
	// increments the creating account's nonce outside the revertible
	// region so a failed creation still consumes it, the same as a failed
	// message call consumes a used nonce. A revert here must roll back
	// everything the failed creation touched without undoing that.
	e.IncrementNonce(input.Caller)

	snap := e.Snapshot()

	if e.CodeSize(newAddr) > 0 || e.Nonce(newAddr) != 0 {
		log.Warn("create failed: address collision", "address", newAddr.Hex())
		e.RevertToSnapshot(snap)
		return vm.CallResult{EnergyLeft: 0}
	}
	if _, isPrecompile := precompiles.Lookup(newAddr, e.Spec()); isPrecompile {
		e.RevertToSnapshot(snap)
		return vm.CallResult{EnergyLeft: 0}
	}

	if !input.Value.IsZero() {
		createCallerBalance := e.Balance(input.Caller)
		if createCallerBalance.Cmp(&input.Value) < 0 {
			e.RevertToSnapshot(snap)
			return vm.CallResult{EnergyLeft: input.EnergyLimit}
		}
	}

	e.CreateAccount(newAddr)
	e.SetNonce(newAddr, 1)
	if !input.Value.IsZero() {
		e.SubBalance(input.Caller, input.Value)
		e.AddBalance(newAddr, input.Value)
	}

	contract := vm.NewContract(input.Caller, newAddr, input.Value, input.EnergyLimit, vm.NewRawBytecode(input.InitCode))

	e.depth++
	interp := vm.NewInterpreter(e, contract, e.Spec(), e.depth)
	output, err := interp.Run()
	e.depth--

	if err != nil {
		e.RevertToSnapshot(snap)
		energyLeft := uint64(0)
		if err == vm.ErrExecutionReverted {
			energyLeft = contract.Energy.Remaining()
		}
		return vm.CallResult{Success: false, ReturnData: output, EnergyLeft: energyLeft}
	}

	if len(output) > 0 && output[0] == 0xef {
		e.RevertToSnapshot(snap)
		return vm.CallResult{Success: false, EnergyLeft: 0}
	}

	limit := e.cfg.LimitContractCodeSize
	if limit == 0 {
		limit = vm.MaxCodeSize
	}
	if uint64(len(output)) > limit {
		e.RevertToSnapshot(snap)
		return vm.CallResult{Success: false, EnergyLeft: 0}
	}

	depositCost := uint64(len(output)) * vm.CodeDepositGas
	if depositCost > contract.Energy.Remaining() {
		if params.Enabled(e.Spec(), params.HOMESTEAD) {
			e.RevertToSnapshot(snap)
			return vm.CallResult{Success: false, EnergyLeft: 0}
		}
		// Pre-Homestead: a deposit that can't be paid for silently installs
		// no code rather than failing the creation.
		return vm.CallResult{Success: true, EnergyLeft: contract.Energy.Remaining(), CreatedAddr: newAddr}
	}
	contract.Energy.Record(depositCost)
	e.SetCode(newAddr, output)

	log.Info("contract created", "address", newAddr.Hex(), "codeSize", len(output))
	return vm.CallResult{Success: true, EnergyLeft: contract.Energy.Remaining(), CreatedAddr: newAddr}
}
