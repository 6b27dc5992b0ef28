package vm

import "errors"

// ErrOutOfEnergy is returned by EnergyMeter.Record and RecordMemory when the
// requested charge would exceed the remaining limit.
var ErrOutOfEnergy = errors.New("vm: out of energy")

// EnergyMeter tracks energy (gas) consumption for a single call frame: the
// limit handed to the frame, the amount spent so far, and a refund counter
// (SSTORE refunds are kept on the Host, not here). Memory expansion cost is tracked
// separately so RecordMemory can recompute the quadratic term from the
// highest word offset touched rather than re-deriving it from Used.
type EnergyMeter struct {
	limit  uint64
	used   uint64
	refund uint64

	memoryWords uint64 // highest word count memory has been resized to
	memoryCost  uint64 // energy already charged for that expansion
}

// NewEnergyMeter returns a meter with the given limit and nothing spent.
func NewEnergyMeter(limit uint64) *EnergyMeter {
	return &EnergyMeter{limit: limit}
}

// Limit returns the total energy available to the frame.
func (m *EnergyMeter) Limit() uint64 { return m.limit }

// Used returns the energy spent so far.
func (m *EnergyMeter) Used() uint64 { return m.used }

// Remaining returns the energy not yet spent.
func (m *EnergyMeter) Remaining() uint64 { return m.limit - m.used }

// Refund returns the accumulated refund counter.
func (m *EnergyMeter) Refund() uint64 { return m.refund }

// AddRefund increases the refund counter. CALL and CREATE add a sub-frame's
// CallResult.EnergyRefund here; SSTORE records its refunds through
// Host.AddRefund/SubRefund instead.
func (m *EnergyMeter) AddRefund(delta uint64) { m.refund += delta }

// SubRefund decreases the refund counter, saturating at zero since refund
// is unsigned here.
func (m *EnergyMeter) SubRefund(delta uint64) {
	if delta >= m.refund {
		m.refund = 0
		return
	}
	m.refund -= delta
}

// CapRefund applies the EIP-3529 cap: the refund actually granted at the end
// of a transaction is min(refund, used/quotient). Frontier..Berlin used
// quotient 2; EIP-3529 (London) changed it to 5, but spec.md's fork window tops out at
// Istanbul, so quotient is always 2 here.
func (m *EnergyMeter) CapRefund() uint64 {
	max := m.used / 2
	if m.refund > max {
		return max
	}
	return m.refund
}

// Record charges cost against the meter. It reports ErrOutOfEnergy and
// leaves the meter unchanged if cost exceeds the remaining balance.
func (m *EnergyMeter) Record(cost uint64) error {
	if cost > m.limit-m.used {
		return ErrOutOfEnergy
	}
	m.used += cost
	return nil
}

// RecordMemory charges the incremental cost of growing memory to newWords
// 32-byte words, using the quadratic expansion formula
// cost(words) = 3*words + words^2/512. Shrinking (newWords <= the
// already-charged high-water mark) is a no-op: memory expansion cost is
// monotonic and never refunded.
func (m *EnergyMeter) RecordMemory(newWords uint64) error {
	if newWords <= m.memoryWords {
		return nil
	}
	cost := memoryExpansionCost(newWords)
	delta := cost - m.memoryCost
	if err := m.Record(delta); err != nil {
		return err
	}
	m.memoryWords = newWords
	m.memoryCost = cost
	return nil
}

func memoryExpansionCost(words uint64) uint64 {
	return EnergyMemory*words + (words*words)/512
}

// Return credits back energy a sub-call or sub-create frame did not spend,
// capped so the meter's Used never goes negative (a no-op past that point:
// callers are expected to pass at most what they previously Recorded for
// that frame).
func (m *EnergyMeter) Return(amount uint64) {
	if amount > m.used {
		amount = m.used
	}
	m.used -= amount
}

// EraseCost reverses a previously recorded charge without affecting the
// memory high-water mark, used when an operation is retried after a
// sub-call with a different static cost (the interpreter never does this in
// practice, but the primitive is kept symmetric with Record for testing).
func (m *EnergyMeter) EraseCost(cost uint64) {
	if cost > m.used {
		cost = m.used
	}
	m.used -= cost
}
