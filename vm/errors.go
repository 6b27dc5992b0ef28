package vm

import "errors"

// Execution errors, alongside ErrOutOfEnergy (energy.go) and the stack
// errors (stack.go). Interpreter.Run returns ErrExecutionReverted,
// ErrInvalidOpcode, ErrInvalidJump, ErrWriteProtection and
// ErrReturnDataOutOfBounds, and CheckSize returns ErrMaxCodeSizeExceeded.
// Host.Call and Host.Create report failure through CallResult rather than
// these values; the remaining sentinels are not returned by this module.
var (
	ErrExecutionReverted      = errors.New("vm: execution reverted")
	ErrInvalidOpcode          = errors.New("vm: invalid opcode")
	ErrInvalidJump            = errors.New("vm: invalid jump destination")
	ErrWriteProtection        = errors.New("vm: write protection in static call")
	ErrDepthLimit             = errors.New("vm: max call depth exceeded")
	ErrInsufficientBalance    = errors.New("vm: insufficient balance for transfer")
	ErrMaxCodeSizeExceeded    = errors.New("vm: deployed code exceeds size limit")
	ErrContractAddressCollision = errors.New("vm: contract address collision")
	ErrInvalidCode            = errors.New("vm: invalid deployed code (EF prefix)")
	ErrReturnDataOutOfBounds  = errors.New("vm: return data copy out of bounds")
	ErrGasUintOverflow        = errors.New("vm: gas calculation overflow")
	ErrNonceOverflow          = errors.New("vm: nonce overflow")
)
