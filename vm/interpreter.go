package vm

import "github.com/core-coin/cvm-go/params"

// jumpTable is built once; every Interpreter shares it since it is pure
// opcode metadata with no per-call-frame state.
var jumpTable = NewIstanbulJumpTable()

// Interpreter runs one call frame's bytecode to completion: STOP, RETURN,
// REVERT, an exceptional halt (out of energy, stack fault, invalid jump,
// invalid opcode), or a successful fallthrough past the end of code
// (treated as an implicit STOP).
type Interpreter struct {
	host     Host
	contract *Contract
	stack    *Stack
	memory   *Memory
	pc       uint64
	spec     params.SpecId
	depth    int

	// returnData is the last sub-call/sub-create's output, visible to
	// RETURNDATASIZE/RETURNDATACOPY until the next sub-call overwrites it.
	returnData []byte
}

// NewInterpreter builds an interpreter for one call frame. depth is the
// frame's nesting level: evmcore passes 1 for a transaction's outermost
// frame and one more for each nested CALL/CREATE. CALL and CREATE fail
// without entering a sub-frame once depth reaches MaxCallDepth.
func NewInterpreter(host Host, contract *Contract, spec params.SpecId, depth int) *Interpreter {
	return &Interpreter{
		host:     host,
		contract: contract,
		stack:    NewStack(),
		memory:   NewMemory(),
		spec:     spec,
		depth:    depth,
	}
}

// Run executes the frame's bytecode and returns its output. A non-nil error
// other than ErrExecutionReverted means the frame halted exceptionally:
// per the EVM's model, all energy it still held is consumed and the caller
// must not credit any of it back.
//
// Energy charging order per opcode: constant cost, then the
// memory-expansion cost, then dynamic cost (including access-list
// surcharges), then the memory resize those charges paid for, then the
// opcode's own execution.
func (in *Interpreter) Run() ([]byte, error) {
	if in.contract.Code.Len() == 0 {
		return nil, nil
	}
	for {
		op := in.contract.OpAt(in.pc)
		opInfo := jumpTable[op]
		if opInfo == nil || opInfo.execute == nil {
			return nil, ErrInvalidOpcode
		}
		// Opcodes introduced inside the fork window are invalid before their fork.
		switch op {
		case REVERT, STATICCALL, RETURNDATASIZE, RETURNDATACOPY:
			if !params.Enabled(in.spec, params.BYZANTIUM) {
				return nil, ErrInvalidOpcode
			}
		case SHL, SHR, SAR, EXTCODEHASH, CREATE2:
			if !params.Enabled(in.spec, params.PETERSBURG) {
				return nil, ErrInvalidOpcode
			}
		case CHAINID, SELFBALANCE:
			if !params.Enabled(in.spec, params.ISTANBUL) {
				return nil, ErrInvalidOpcode
			}
		}

		if err := in.stack.Require(opInfo.minStack); err != nil {
			return nil, err
		}
		if in.stack.Len() > opInfo.maxStack {
			return nil, ErrStackOverflow
		}
		if opInfo.writes && in.contract.IsStatic {
			return nil, ErrWriteProtection
		}

		if opInfo.constantEnergy > 0 {
			if err := in.contract.Energy.Record(opInfo.constantEnergy); err != nil {
				return nil, err
			}
		}

		var memSize uint64
		if opInfo.memorySize != nil {
			memSize = roundUpWord(opInfo.memorySize(in.stack))
			words := wordCount(memSize)
			if err := in.contract.Energy.RecordMemory(words); err != nil {
				return nil, err
			}
		}

		if opInfo.dynamicEnergy != nil {
			cost, err := opInfo.dynamicEnergy(in)
			if err != nil {
				return nil, err
			}
			if err := in.contract.Energy.Record(cost); err != nil {
				return nil, err
			}
		}

		if memSize > 0 {
			in.memory.Resize(memSize)
		}

		output, err := opInfo.execute(in)
		if err != nil {
			return output, err
		}
		if opInfo.halts {
			return output, nil
		}
		if !opInfo.jumps {
			in.pc++
		}
		if in.pc >= uint64(in.contract.Code.Len()) {
			return nil, nil
		}
	}
}

// roundUpWord rounds size up to the next multiple of 32, saturating instead
// of wrapping on overflow.
func roundUpWord(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	const maxBeforeOverflow = ^uint64(0) - 31
	if size > maxBeforeOverflow {
		return ^uint64(0)
	}
	return (size + 31) / 32 * 32
}
