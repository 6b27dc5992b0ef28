package vm

// Energy cost constants, Yellow Paper tier names kept as comments for
// cross-reference even though this core calls the unit "energy".
const (
	EnergyZero    uint64 = 0
	EnergyBase    uint64 = 2  // Gbase
	EnergyVerylow uint64 = 3  // Gverylow
	EnergyLow     uint64 = 5  // Glow
	EnergyMid     uint64 = 8  // Gmid
	EnergyHigh    uint64 = 10 // Ghigh
	EnergyExt     uint64 = 20 // Gext

	EnergyJumpdest uint64 = 1

	EnergySha3     uint64 = 30
	EnergySha3Word uint64 = 6

	EnergyMemory uint64 = 3 // per word, quadratic term added separately
	EnergyCopy   uint64 = 3 // per word, rounded up

	EnergyLog      uint64 = 375
	EnergyLogTopic uint64 = 375
	EnergyLogData  uint64 = 8

	EnergyCreate       uint64 = 32000
	EnergySelfdestruct uint64 = 5000

	// EnergyExpByte is the per-byte cost of EXP's exponent from Spurious
	// Dragon on. Spurious Dragon raised it from 10 to 50; gasExp charges
	// the older 10 per byte under earlier forks.
	EnergyExpByte uint64 = 50

	// EIP-2929 cold/warm access costs, labeled per spec.md as taking effect
	// under ISTANBUL (see params.Enabled(ISTANBUL, ...) call sites).
	ColdSloadCost        uint64 = 2100
	ColdAccountAccessCost uint64 = 2600
	WarmStorageReadCost  uint64 = 100

	SstoreSetGas   uint64 = 20000
	SstoreResetGas uint64 = 2900
	// SstoreClearsScheduleRefund is the EIP-3529 reduced clear refund
	// (down from the pre-London 15000).
	SstoreClearsScheduleRefund uint64 = 4800

	// Pre-EIP-2929 SLOAD/SSTORE costs, used when spec < ISTANBUL.
	SloadGasFrontier   uint64 = 50
	SstoreSetGasLegacy uint64 = 20000
	SstoreResetGasLegacy uint64 = 5000
	SstoreRefundLegacy uint64 = 15000

	CallValueTransferGas uint64 = 9000
	CallNewAccountGas    uint64 = 25000
	CallStipend          uint64 = 2300

	// SstoreSentryGas is EIP-2200's minimum energy SSTORE requires to be
	// left in the frame before it will even attempt to charge or write,
	// so a frame running on nothing but the 2300 CALL stipend can never
	// use it to reenter and mutate storage.
	SstoreSentryGas uint64 = 2300

	SelfdestructRefundGas uint64 = 24000 // pre-London only

	MaxCodeSize uint64 = 24576

	// CodeDepositGas is charged per byte of code a successful CREATE/CREATE2
	// deposits, against the creating frame's remaining energy.
	CodeDepositGas uint64 = 200
)
