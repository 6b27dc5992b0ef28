package vm

import "github.com/core-coin/cvm-go/primitives"

// Arithmetic, comparison, and bitwise opcodes. uint256.Int's in-place
// operations (x.Add(x, y)) let every one of these run allocation-free: pop
// the operands, write the result into the slot the first operand occupied,
// and leave it on the stack instead of pushing a fresh value.

func opAdd(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.Add(&x, y)
	return nil, nil
}

func opMul(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.Mul(&x, y)
	return nil, nil
}

func opSub(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.Sub(&x, y)
	return nil, nil
}

func opDiv(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.Mod(&x, y)
	return nil, nil
}

func opSmod(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.SMod(&x, y)
	return nil, nil
}

func opAddmod(in *Interpreter) ([]byte, error) {
	x, y, z := in.stack.Pop(), in.stack.Pop(), in.stack.Peek()
	z.AddMod(&x, &y, z)
	return nil, nil
}

func opMulmod(in *Interpreter) ([]byte, error) {
	x, y, z := in.stack.Pop(), in.stack.Pop(), in.stack.Peek()
	z.MulMod(&x, &y, z)
	return nil, nil
}

func opExp(in *Interpreter) ([]byte, error) {
	base, exponent := in.stack.Pop(), in.stack.Peek()
	exponent.Exp(&base, exponent)
	return nil, nil
}

func opSignExtend(in *Interpreter) ([]byte, error) {
	back, num := in.stack.Pop(), in.stack.Peek()
	num.ExtendSign(num, &back)
	return nil, nil
}

func opLt(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(in *Interpreter) ([]byte, error) {
	x := in.stack.Peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.And(&x, y)
	return nil, nil
}

func opOr(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.Or(&x, y)
	return nil, nil
}

func opXor(in *Interpreter) ([]byte, error) {
	x, y := in.stack.Pop(), in.stack.Peek()
	y.Xor(&x, y)
	return nil, nil
}

func opNot(in *Interpreter) ([]byte, error) {
	x := in.stack.Peek()
	x.Not(x)
	return nil, nil
}

func opByte(in *Interpreter) ([]byte, error) {
	th, val := in.stack.Pop(), in.stack.Peek()
	val.Byte(&th)
	return nil, nil
}

func opShl(in *Interpreter) ([]byte, error) {
	shift, value := in.stack.Pop(), in.stack.Peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opShr(in *Interpreter) ([]byte, error) {
	shift, value := in.stack.Pop(), in.stack.Peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSar(in *Interpreter) ([]byte, error) {
	shift, value := in.stack.Pop(), in.stack.Peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil, nil
}

func opSha3(in *Interpreter) ([]byte, error) {
	offset, size := in.stack.Pop(), in.stack.Peek()
	data := in.memory.GetPtr(offset.Uint64(), size.Uint64())
	h := primitives.Sum256(data)
	size.SetBytes(h[:])
	return nil, nil
}
