package vm

import (
	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
)

// callGasForSubcall applies the 63/64 rule (EIP-150): a call may forward at
// most available - available/64 energy to a sub-frame, regardless of how
// much the caller's stack operand requests.
func callGasForSubcall(available uint64) uint64 {
	return available - available/64
}

// MaxCallDepth is the deepest a chain of CALL/CREATE sub-frames may nest.
const MaxCallDepth = 1024

func memoryMload(stack *Stack) uint64   { return stack.Back(0).Uint64() + 32 }
func memoryMstore(stack *Stack) uint64  { return stack.Back(0).Uint64() + 32 }
func memoryMstore8(stack *Stack) uint64 { return stack.Back(0).Uint64() + 1 }
func memoryReturn(stack *Stack) uint64  { return addSize(stack.Back(0).Uint64(), stack.Back(1).Uint64()) }
func memorySha3(stack *Stack) uint64    { return addSize(stack.Back(0).Uint64(), stack.Back(1).Uint64()) }
func memoryCallDataCopy(stack *Stack) uint64 {
	return addSize(stack.Back(0).Uint64(), stack.Back(2).Uint64())
}
func memoryCodeCopy(stack *Stack) uint64 {
	return addSize(stack.Back(0).Uint64(), stack.Back(2).Uint64())
}
func memoryReturnDataCopy(stack *Stack) uint64 {
	return addSize(stack.Back(0).Uint64(), stack.Back(2).Uint64())
}
func memoryExtCodeCopy(stack *Stack) uint64 {
	return addSize(stack.Back(1).Uint64(), stack.Back(3).Uint64())
}
func memoryLog(stack *Stack) uint64 {
	return addSize(stack.Back(0).Uint64(), stack.Back(1).Uint64())
}
func memoryCreate(stack *Stack) uint64 {
	return addSize(stack.Back(1).Uint64(), stack.Back(2).Uint64())
}

// memoryCall and memoryDelegateStaticCall cover both the 7-operand
// (CALL/CALLCODE) and 6-operand (DELEGATECALL/STATICCALL) stack shapes; the
// operand offsets differ by one slot once the value argument is absent.
func memoryCall(stack *Stack) uint64 {
	argsEnd := addSize(stack.Back(3).Uint64(), stack.Back(4).Uint64())
	retEnd := addSize(stack.Back(5).Uint64(), stack.Back(6).Uint64())
	if argsEnd > retEnd {
		return argsEnd
	}
	return retEnd
}

func memoryDelegateStaticCall(stack *Stack) uint64 {
	argsEnd := addSize(stack.Back(2).Uint64(), stack.Back(3).Uint64())
	retEnd := addSize(stack.Back(4).Uint64(), stack.Back(5).Uint64())
	if argsEnd > retEnd {
		return argsEnd
	}
	return retEnd
}

// addSize saturates at max uint64 on overflow rather than wrapping, so a
// crafted offset+size that would wrap to a tiny value can never slip past
// the energy meter's memory-expansion check.
func addSize(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

func wordsFor(size uint64) uint64 { return (size + 31) / 32 }

func gasExp(in *Interpreter) (uint64, error) {
	exponent := in.stack.Back(1)
	byteLen := uint64(len(exponent.Bytes()))
	perByte := EnergyExpByte
	if !params.Enabled(in.spec, params.SPURIOUS_DRAGON) {
		perByte = 10
	}
	return byteLen * perByte, nil
}

func gasSha3(in *Interpreter) (uint64, error) {
	size := in.stack.Back(1).Uint64()
	return wordsFor(size) * EnergySha3Word, nil
}

func gasCallDataCopy(in *Interpreter) (uint64, error) {
	return wordsFor(in.stack.Back(2).Uint64()) * EnergyCopy, nil
}

func gasCodeCopy(in *Interpreter) (uint64, error) {
	return wordsFor(in.stack.Back(2).Uint64()) * EnergyCopy, nil
}

func gasReturnDataCopy(in *Interpreter) (uint64, error) {
	return wordsFor(in.stack.Back(2).Uint64()) * EnergyCopy, nil
}

func gasExtCodeSize(in *Interpreter) (uint64, error) {
	addr := in.addressFromWord(*in.stack.Back(0))
	if !params.Enabled(in.spec, params.ISTANBUL) {
		return 0, nil
	}
	if in.host.TouchAddress(addr) {
		return WarmStorageReadCost, nil
	}
	return ColdAccountAccessCost, nil
}

func gasExtCodeHash(in *Interpreter) (uint64, error) { return gasExtCodeSize(in) }

func gasBalance(in *Interpreter) (uint64, error) { return gasExtCodeSize(in) }

func gasExtCodeCopy(in *Interpreter) (uint64, error) {
	addr := in.addressFromWord(*in.stack.Back(0))
	copyCost := wordsFor(in.stack.Back(3).Uint64()) * EnergyCopy
	if !params.Enabled(in.spec, params.ISTANBUL) {
		return copyCost, nil
	}
	if in.host.TouchAddress(addr) {
		return WarmStorageReadCost + copyCost, nil
	}
	return ColdAccountAccessCost + copyCost, nil
}

func gasSload(in *Interpreter) (uint64, error) {
	if !params.Enabled(in.spec, params.ISTANBUL) {
		return SloadGasFrontier, nil
	}
	key := in.stack.Back(0)
	kb := key.Bytes32()
	if in.host.TouchSlot(in.contract.Address, primitives.Hash(kb)) {
		return WarmStorageReadCost, nil
	}
	return ColdSloadCost, nil
}

func gasSstore(in *Interpreter) (uint64, error) {
	if in.contract.IsStatic {
		return 0, ErrWriteProtection
	}
	keyW, newW := in.stack.Back(0), in.stack.Back(1)
	key := primitives.Hash(keyW.Bytes32())
	newVal := primitives.Hash(newW.Bytes32())
	current := in.host.SLoad(in.contract.Address, key)
	original := in.host.SLoadOriginal(in.contract.Address, key)

	if !params.Enabled(in.spec, params.ISTANBUL) {
		return legacySstoreCost(current, newVal), nil
	}

	// EIP-2200 stipend sentry: SSTORE refuses to even begin if the frame is
	// left with 2300 energy or less, regardless of what the actual charge
	// would compute to, so a CALL-stipend-only frame can never reenter and
	// still write storage.
	if in.contract.Energy.Remaining() <= SstoreSentryGas {
		return 0, ErrOutOfEnergy
	}

	coldCost := uint64(0)
	if !in.host.TouchSlot(in.contract.Address, key) {
		coldCost = ColdSloadCost
	}
	if current == newVal {
		return WarmStorageReadCost + coldCost, nil
	}
	if original == current {
		if original.IsZero() {
			return SstoreSetGas + coldCost, nil
		}
		gas := SstoreResetGas + coldCost
		if newVal.IsZero() {
			in.host.AddRefund(SstoreClearsScheduleRefund)
		}
		return gas, nil
	}
	// Dirty slot.
	if !original.IsZero() {
		if current.IsZero() && !newVal.IsZero() {
			in.host.SubRefund(SstoreClearsScheduleRefund)
		} else if !current.IsZero() && newVal.IsZero() {
			in.host.AddRefund(SstoreClearsScheduleRefund)
		}
	}
	if original == newVal {
		if original.IsZero() {
			if SstoreSetGas > WarmStorageReadCost {
				in.host.AddRefund(SstoreSetGas - WarmStorageReadCost)
			}
		} else {
			if SstoreResetGas > WarmStorageReadCost {
				in.host.AddRefund(SstoreResetGas - WarmStorageReadCost)
			}
		}
	}
	return WarmStorageReadCost + coldCost, nil
}

func legacySstoreCost(current, newVal primitives.Hash) uint64 {
	if current.IsZero() && !newVal.IsZero() {
		return SstoreSetGasLegacy
	}
	if !current.IsZero() && newVal.IsZero() {
		return SstoreResetGasLegacy
	}
	return SstoreResetGasLegacy
}

func gasLog(topicCount int) dynamicEnergyFunc {
	return func(in *Interpreter) (uint64, error) {
		size := in.stack.Back(1).Uint64()
		return EnergyLogTopic*uint64(topicCount) + EnergyLogData*size, nil
	}
}

func gasCreate(in *Interpreter) (uint64, error) {
	size := in.stack.Back(2).Uint64()
	return wordsFor(size) * EnergyCopy, nil
}

func gasCreate2(in *Interpreter) (uint64, error) {
	size := in.stack.Back(2).Uint64()
	return wordsFor(size)*EnergyCopy + wordsFor(size)*EnergySha3Word, nil
}

func gasCall(in *Interpreter) (uint64, error) {
	return callFamilyGas(in, true)
}

func gasCallCode(in *Interpreter) (uint64, error) {
	return callFamilyGas(in, true)
}

func gasDelegateCall(in *Interpreter) (uint64, error) {
	return callFamilyGasNoValue(in)
}

func gasStaticCall(in *Interpreter) (uint64, error) {
	return callFamilyGasNoValue(in)
}

func callFamilyGas(in *Interpreter, hasValue bool) (uint64, error) {
	addr := in.addressFromWord(*in.stack.Back(1))
	value := in.stack.Back(2)

	cost := uint64(0)
	if params.Enabled(in.spec, params.ISTANBUL) {
		if in.host.TouchAddress(addr) {
			cost += WarmStorageReadCost
		} else {
			cost += ColdAccountAccessCost
		}
	}
	if hasValue && !value.IsZero() {
		cost += CallValueTransferGas
		if !in.host.AccountExists(addr) {
			cost += CallNewAccountGas
		}
	}
	return cost, nil
}

func callFamilyGasNoValue(in *Interpreter) (uint64, error) {
	addr := in.addressFromWord(*in.stack.Back(1))
	cost := uint64(0)
	if params.Enabled(in.spec, params.ISTANBUL) {
		if in.host.TouchAddress(addr) {
			cost += WarmStorageReadCost
		} else {
			cost += ColdAccountAccessCost
		}
	}
	return cost, nil
}

func gasSelfdestruct(in *Interpreter) (uint64, error) {
	if in.contract.IsStatic {
		return 0, ErrWriteProtection
	}
	beneficiary := in.addressFromWord(*in.stack.Back(0))
	cost := uint64(0)
	if params.Enabled(in.spec, params.ISTANBUL) && !in.host.TouchAddress(beneficiary) {
		cost += ColdAccountAccessCost
	}
	if !in.host.AccountExists(beneficiary) && in.host.Balance(in.contract.Address).Sign() != 0 {
		cost += CallNewAccountGas
	}
	return cost, nil
}
