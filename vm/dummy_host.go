package vm

import (
	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
)

// DummyHost is a minimal Host for running a single interpreter in isolation,
// without a real journaled world state behind it: every account reads back
// empty, storage is a flat map with no origin/warm distinction, and
// Call/Create panic since there is no sub-frame machinery to recurse into.
// Opcode-level tests that never touch CALL/CREATE/SELFDESTRUCT use this
// instead of standing up a full state.JournaledState.
type DummyHost struct {
	Env     params.Env
	Storage map[primitives.Hash]primitives.Hash
	Logs    []Log

	warmAddresses map[primitives.Address]bool
	warmSlots     map[primitives.Hash]bool
	refund        uint64
}

// NewDummyHost builds a DummyHost over env with empty storage and no warm
// entries, so the first access to anything reports cold.
func NewDummyHost(env params.Env) *DummyHost {
	return &DummyHost{
		Env:           env,
		Storage:       make(map[primitives.Hash]primitives.Hash),
		warmAddresses: make(map[primitives.Address]bool),
		warmSlots:     make(map[primitives.Hash]bool),
	}
}

// Clear resets storage and the log buffer, keeping the environment and warm
// sets, so the same DummyHost can be reused across a table of opcode cases.
func (h *DummyHost) Clear() {
	h.Storage = make(map[primitives.Hash]primitives.Hash)
	h.Logs = nil
}

func (h *DummyHost) AccountExists(addr primitives.Address) bool { return true }

func (h *DummyHost) Balance(addr primitives.Address) primitives.Word { return primitives.ZeroWord() }

func (h *DummyHost) CodeOf(addr primitives.Address) *Bytecode { return nil }

func (h *DummyHost) CodeSize(addr primitives.Address) int { return 0 }

func (h *DummyHost) CodeHash(addr primitives.Address) primitives.Hash { return primitives.Hash{} }

func (h *DummyHost) SLoad(addr primitives.Address, key primitives.Hash) primitives.Hash {
	return h.Storage[key]
}

func (h *DummyHost) SStore(addr primitives.Address, key, value primitives.Hash) {
	h.Storage[key] = value
}

func (h *DummyHost) SLoadOriginal(addr primitives.Address, key primitives.Hash) primitives.Hash {
	return h.Storage[key]
}

func (h *DummyHost) TouchAddress(addr primitives.Address) bool {
	wasWarm := h.warmAddresses[addr]
	h.warmAddresses[addr] = true
	return wasWarm
}

func (h *DummyHost) TouchSlot(addr primitives.Address, key primitives.Hash) bool {
	wasWarm := h.warmSlots[key]
	h.warmSlots[key] = true
	return wasWarm
}

func (h *DummyHost) BlockEnv() params.BlockEnv { return h.Env.Block }

func (h *DummyHost) TxOrigin() primitives.Address { return h.Env.Tx.Caller }

func (h *DummyHost) TxEnergyPrice() primitives.Word { return h.Env.Tx.EnergyPrice }

func (h *DummyHost) NetworkID() primitives.NetworkID { return h.Env.Cfg.NetworkID }

func (h *DummyHost) Spec() params.SpecId { return h.Env.Cfg.SpecId }

func (h *DummyHost) BlockHash(number uint64) primitives.Hash { return primitives.Hash{} }

func (h *DummyHost) Log(l Log) { h.Logs = append(h.Logs, l) }

func (h *DummyHost) SelfDestruct(addr, beneficiary primitives.Address) bool {
	panic("vm: DummyHost does not support SELFDESTRUCT")
}

func (h *DummyHost) AddRefund(delta uint64) { h.refund += delta }

func (h *DummyHost) SubRefund(delta uint64) {
	if delta > h.refund {
		h.refund = 0
		return
	}
	h.refund -= delta
}

func (h *DummyHost) Call(input CallInput) CallResult {
	panic("vm: DummyHost does not support Call")
}

func (h *DummyHost) Create(input CreateInput) CallResult {
	panic("vm: DummyHost does not support Create")
}
