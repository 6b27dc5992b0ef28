package vm

import "github.com/core-coin/cvm-go/primitives"

// Environment and block-information opcodes.

func pushAddress(in *Interpreter, addr primitives.Address) error {
	var w primitives.Word
	w.SetBytes(addr.Bytes())
	return in.stack.Push(w)
}

func opAddress(in *Interpreter) ([]byte, error) {
	return nil, pushAddress(in, in.contract.Address)
}

func opBalance(in *Interpreter) ([]byte, error) {
	loc := in.stack.Peek()
	addr := in.addressFromWord(*loc)
	bal := in.host.Balance(addr)
	loc.Set(&bal)
	return nil, nil
}

func opOrigin(in *Interpreter) ([]byte, error) {
	return nil, pushAddress(in, in.host.TxOrigin())
}

func opCaller(in *Interpreter) ([]byte, error) {
	return nil, pushAddress(in, in.contract.Caller)
}

func opCallValue(in *Interpreter) ([]byte, error) {
	return nil, in.stack.Push(in.contract.Value)
}

func opCallDataLoad(in *Interpreter) ([]byte, error) {
	loc := in.stack.Peek()
	off := loc.Uint64()
	loc.SetBytes(paddedSlice(in.contract.Input, off, 32))
	return nil, nil
}

func opCallDataSize(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(uint64(len(in.contract.Input)))
	return nil, in.stack.Push(w)
}

func opCallDataCopy(in *Interpreter) ([]byte, error) {
	memOff, dataOff, size := in.stack.Pop(), in.stack.Pop(), in.stack.Pop()
	data := paddedSlice(in.contract.Input, dataOff.Uint64(), size.Uint64())
	in.memory.Set(memOff.Uint64(), data)
	return nil, nil
}

func opCodeSize(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(uint64(in.contract.Code.Len()))
	return nil, in.stack.Push(w)
}

func opCodeCopy(in *Interpreter) ([]byte, error) {
	memOff, codeOff, size := in.stack.Pop(), in.stack.Pop(), in.stack.Pop()
	data := in.contract.Code.Slice(codeOff.Uint64(), codeOff.Uint64()+size.Uint64())
	in.memory.Set(memOff.Uint64(), data)
	return nil, nil
}

func opGasPrice(in *Interpreter) ([]byte, error) {
	return nil, in.stack.Push(in.host.TxEnergyPrice())
}

func opExtCodeSize(in *Interpreter) ([]byte, error) {
	loc := in.stack.Peek()
	addr := in.addressFromWord(*loc)
	loc.SetUint64(uint64(in.host.CodeSize(addr)))
	return nil, nil
}

func opExtCodeCopy(in *Interpreter) ([]byte, error) {
	addrW, memOff, codeOff, size := in.stack.Pop(), in.stack.Pop(), in.stack.Pop(), in.stack.Pop()
	addr := in.addressFromWord(addrW)
	code := in.host.CodeOf(addr)
	data := code.Slice(codeOff.Uint64(), codeOff.Uint64()+size.Uint64())
	in.memory.Set(memOff.Uint64(), data)
	return nil, nil
}

func opReturnDataSize(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(uint64(len(in.returnData)))
	return nil, in.stack.Push(w)
}

func opReturnDataCopy(in *Interpreter) ([]byte, error) {
	memOff, dataOff, size := in.stack.Pop(), in.stack.Pop(), in.stack.Pop()
	off, sz := dataOff.Uint64(), size.Uint64()
	if off+sz > uint64(len(in.returnData)) || off+sz < off {
		return nil, ErrReturnDataOutOfBounds
	}
	in.memory.Set(memOff.Uint64(), in.returnData[off:off+sz])
	return nil, nil
}

func opExtCodeHash(in *Interpreter) ([]byte, error) {
	loc := in.stack.Peek()
	addr := in.addressFromWord(*loc)
	if !in.host.AccountExists(addr) {
		loc.Clear()
		return nil, nil
	}
	h := in.host.CodeHash(addr)
	loc.SetBytes(h[:])
	return nil, nil
}

func opBlockhash(in *Interpreter) ([]byte, error) {
	num := in.stack.Peek()
	h := in.host.BlockHash(num.Uint64())
	num.SetBytes(h[:])
	return nil, nil
}

func opCoinbase(in *Interpreter) ([]byte, error) {
	return nil, pushAddress(in, in.host.BlockEnv().Coinbase)
}

func opTimestamp(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(in.host.BlockEnv().Timestamp)
	return nil, in.stack.Push(w)
}

func opNumber(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(in.host.BlockEnv().Number)
	return nil, in.stack.Push(w)
}

func opDifficulty(in *Interpreter) ([]byte, error) {
	return nil, in.stack.Push(in.host.BlockEnv().Difficulty)
}

func opGasLimit(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(in.host.BlockEnv().EnergyLimit)
	return nil, in.stack.Push(w)
}

func opChainID(in *Interpreter) ([]byte, error) {
	var w primitives.Word
	w.SetUint64(uint64(in.host.NetworkID()))
	return nil, in.stack.Push(w)
}

func opSelfBalance(in *Interpreter) ([]byte, error) {
	bal := in.host.Balance(in.contract.Address)
	return nil, in.stack.Push(bal)
}

// addressFromWord extracts the low 20 bytes of a stack word as an account
// body and wraps it as an ICAN address on in's network: every opcode that
// takes an address operand (BALANCE, EXTCODE*, CALL family) reads it this
// way. A full 22-byte address word (as pushAddress produces) loses its
// prefix and checksum here and is re-encoded for in's network.
func (in *Interpreter) addressFromWord(w primitives.Word) primitives.Address {
	b := w.Bytes20()
	return primitives.ToICAN(b, in.host.NetworkID())
}

// paddedSlice returns data[off:off+size], zero-padded on the right for any
// portion past len(data) or before an overflowed offset.
func paddedSlice(data []byte, off, size uint64) []byte {
	out := make([]byte, size)
	if off >= uint64(len(data)) {
		return out
	}
	end := off + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[off:end])
	return out
}
