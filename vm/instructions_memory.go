package vm

import "github.com/core-coin/cvm-go/primitives"

// Stack, memory, storage, and control-flow opcodes.

func opPop(in *Interpreter) ([]byte, error) {
	in.stack.Pop()
	return nil, nil
}

func opMload(in *Interpreter) ([]byte, error) {
	offset := in.stack.Peek()
	off := offset.Uint64()
	offset.SetBytes(in.memory.GetPtr(off, 32))
	return nil, nil
}

func opMstore(in *Interpreter) ([]byte, error) {
	offset, val := in.stack.Pop(), in.stack.Pop()
	in.memory.Set32(offset.Uint64(), val)
	return nil, nil
}

func opMstore8(in *Interpreter) ([]byte, error) {
	offset, val := in.stack.Pop(), in.stack.Pop()
	in.memory.Set(offset.Uint64(), []byte{byte(val.Uint64())})
	return nil, nil
}

func opSload(in *Interpreter) ([]byte, error) {
	loc := in.stack.Peek()
	key := primitives.BytesToHash(loc.Bytes32()[:])
	val := in.host.SLoad(in.contract.Address, key)
	loc.SetBytes(val[:])
	return nil, nil
}

func opSstore(in *Interpreter) ([]byte, error) {
	if in.contract.IsStatic {
		return nil, ErrWriteProtection
	}
	key, val := in.stack.Pop(), in.stack.Pop()
	keyHash := primitives.BytesToHash(key.Bytes32()[:])
	valHash := primitives.BytesToHash(val.Bytes32()[:])
	in.host.SStore(in.contract.Address, keyHash, valHash)
	return nil, nil
}

func opJump(in *Interpreter) ([]byte, error) {
	dest := in.stack.Pop()
	target := dest.Uint64()
	if !dest.IsUint64() || !in.contract.ValidJumpdest(target) {
		return nil, ErrInvalidJump
	}
	in.pc = target
	return nil, nil
}

func opJumpi(in *Interpreter) ([]byte, error) {
	dest, cond := in.stack.Pop(), in.stack.Pop()
	if cond.IsZero() {
		in.pc++
		return nil, nil
	}
	target := dest.Uint64()
	if !dest.IsUint64() || !in.contract.ValidJumpdest(target) {
		return nil, ErrInvalidJump
	}
	in.pc = target
	return nil, nil
}

func opPc(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(in.pc)
	in.stack.Push(w)
	return nil, nil
}

func opMsize(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(uint64(in.memory.Len()))
	in.stack.Push(w)
	return nil, nil
}

func opGas(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(in.contract.Energy.Remaining())
	in.stack.Push(w)
	return nil, nil
}

func opJumpdest(in *Interpreter) ([]byte, error) {
	return nil, nil
}

// makePush returns the execution function for the PUSHn opcode family: read
// n bytes starting at pc+1 (zero-padded past the end of code, which
// Bytecode.Slice already does) and push them as a big-endian word.
func makePush(n int) executionFunc {
	return func(in *Interpreter) ([]byte, error) {
		start := in.pc + 1
		b := in.contract.Code.Slice(start, start+uint64(n))
		var w primitives.Word
		w.SetBytes(b)
		if err := in.stack.Push(w); err != nil {
			return nil, err
		}
		in.pc += uint64(n) + 1
		return nil, nil
	}
}

func makeDup(n int) executionFunc {
	return func(in *Interpreter) ([]byte, error) {
		return nil, in.stack.Dup(n)
	}
}

func makeSwap(n int) executionFunc {
	return func(in *Interpreter) ([]byte, error) {
		in.stack.Swap(n)
		return nil, nil
	}
}
