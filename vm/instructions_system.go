package vm

import "github.com/core-coin/cvm-go/primitives"

// Logging, call/create, and halting opcodes.

func makeLog(topicCount int) executionFunc {
	return func(in *Interpreter) ([]byte, error) {
		if in.contract.IsStatic {
			return nil, ErrWriteProtection
		}
		memOff, size := in.stack.Pop(), in.stack.Pop()
		topics := make([]primitives.Hash, topicCount)
		for i := 0; i < topicCount; i++ {
			t := in.stack.Pop()
			topics[i] = primitives.BytesToHash(t.Bytes32()[:])
		}
		data := in.memory.Get(memOff.Uint64(), size.Uint64())
		in.host.Log(Log{Address: in.contract.Address, Topics: topics, Data: data})
		return nil, nil
	}
}

func opCreate(in *Interpreter) ([]byte, error) {
	return in.execCreate(CallKindCreate)
}

func opCreate2(in *Interpreter) ([]byte, error) {
	return in.execCreate(CallKindCreate2)
}

// execCreate implements the CREATE/CREATE2 stack protocol shared by both
// opcodes: pop (value, offset, size[, salt]), run the sub-create, push the
// new address (or zero on failure), and surface any returned revert data as
// in.returnData for a following RETURNDATASIZE/RETURNDATACOPY.
func (in *Interpreter) execCreate(kind CallKind) ([]byte, error) {
	if in.contract.IsStatic {
		return nil, ErrWriteProtection
	}
	value, offset, size := in.stack.Pop(), in.stack.Pop(), in.stack.Pop()
	initCode := in.memory.Get(offset.Uint64(), size.Uint64())

	var salt primitives.Word
	if kind == CallKindCreate2 {
		salt = in.stack.Pop()
	}

	if in.depth >= MaxCallDepth {
		in.returnData = nil
		return nil, in.stack.Push(primitives.ZeroWord())
	}

	energy := callGasForSubcall(in.contract.Energy.Remaining())
	in.contract.Energy.Record(energy)

	result := in.host.Create(CreateInput{
		Kind:        kind,
		Caller:      in.contract.Address,
		Value:       value,
		InitCode:    initCode,
		Salt:        salt,
		EnergyLimit: energy,
	})

	in.contract.Energy.Return(result.EnergyLeft)
	in.contract.Energy.AddRefund(result.EnergyRefund)

	if !result.Success {
		in.returnData = result.ReturnData
		return nil, in.stack.Push(primitives.ZeroWord())
	}
	in.returnData = nil
	var w primitives.Word
	w.SetBytes(result.CreatedAddr.Bytes())
	return nil, in.stack.Push(w)
}

func opCall(in *Interpreter) ([]byte, error) {
	return in.execCall(CallKindCall)
}

func opCallCode(in *Interpreter) ([]byte, error) {
	return in.execCall(CallKindCallCode)
}

func opDelegateCall(in *Interpreter) ([]byte, error) {
	return in.execCall(CallKindDelegateCall)
}

func opStaticCall(in *Interpreter) ([]byte, error) {
	return in.execCall(CallKindStaticCall)
}

// execCall implements the CALL/CALLCODE/DELEGATECALL/STATICCALL stack
// protocol. DELEGATECALL and STATICCALL have one fewer stack argument
// (no value) than CALL/CALLCODE.
func (in *Interpreter) execCall(kind CallKind) ([]byte, error) {
	energyArg := in.stack.Pop()
	addrW := in.stack.Pop()

	var value primitives.Word
	hasValue := kind == CallKindCall || kind == CallKindCallCode
	if hasValue {
		value = in.stack.Pop()
	}
	if kind == CallKindCall && in.contract.IsStatic && !value.IsZero() {
		return nil, ErrWriteProtection
	}

	argsOff, argsSize := in.stack.Pop(), in.stack.Pop()
	retOff, retSize := in.stack.Pop(), in.stack.Pop()

	addr := in.addressFromWord(addrW)
	input := in.memory.Get(argsOff.Uint64(), argsSize.Uint64())

	callerForFrame := in.contract.Address
	ctxAddr := addr
	if kind == CallKindDelegateCall {
		callerForFrame = in.contract.Caller
		ctxAddr = in.contract.Address
		value = in.contract.Value
	} else if kind == CallKindCallCode {
		ctxAddr = in.contract.Address
	}

	available := in.contract.Energy.Remaining()
	requested := energyArg.Uint64()
	forwarded := callGasForSubcall(available)
	if requested < forwarded {
		forwarded = requested
	}
	stipend := uint64(0)
	if hasValue && !value.IsZero() {
		stipend = CallStipend
	}

	if in.depth >= MaxCallDepth {
		in.returnData = nil
		return nil, in.stack.Push(primitives.ZeroWord())
	}

	charge := forwarded
	if charge > available {
		charge = available
	}
	in.contract.Energy.Record(charge)

	result := in.host.Call(CallInput{
		Kind:           kind,
		Caller:         callerForFrame,
		Address:        addr,
		ContextAddress: ctxAddr,
		Value:          value,
		Input:          input,
		EnergyLimit:    forwarded + stipend,
		IsStatic:       in.contract.IsStatic || kind == CallKindStaticCall,
	})

	refund := result.EnergyLeft
	if refund > charge {
		refund = charge
	}
	in.contract.Energy.Return(refund)
	in.contract.Energy.AddRefund(result.EnergyRefund)

	in.returnData = result.ReturnData
	copyN := retSize.Uint64()
	if copyN > uint64(len(result.ReturnData)) {
		copyN = uint64(len(result.ReturnData))
	}
	in.memory.Set(retOff.Uint64(), result.ReturnData[:copyN])

	var success primitives.Word
	if result.Success {
		success.SetOne()
	}
	return nil, in.stack.Push(success)
}

func opReturn(in *Interpreter) ([]byte, error) {
	offset, size := in.stack.Pop(), in.stack.Pop()
	return in.memory.Get(offset.Uint64(), size.Uint64()), nil
}

func opRevert(in *Interpreter) ([]byte, error) {
	offset, size := in.stack.Pop(), in.stack.Pop()
	return in.memory.Get(offset.Uint64(), size.Uint64()), ErrExecutionReverted
}

func opInvalid(in *Interpreter) ([]byte, error) {
	return nil, ErrInvalidOpcode
}

func opStop(in *Interpreter) ([]byte, error) {
	return nil, nil
}

func opSelfdestruct(in *Interpreter) ([]byte, error) {
	if in.contract.IsStatic {
		return nil, ErrWriteProtection
	}
	beneficiaryW := in.stack.Pop()
	beneficiary := in.addressFromWord(beneficiaryW)
	in.host.SelfDestruct(in.contract.Address, beneficiary)
	return nil, nil
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
