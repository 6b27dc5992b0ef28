package state

import "github.com/core-coin/cvm-go/primitives"

// journalEntry is a single reversible state mutation. revert undoes exactly
// what the entry's matching mutation did, so replaying a journal's entries
// in reverse order from a checkpoint restores the state to exactly what it
// was when the checkpoint was taken.
type journalEntry interface {
	revert(s *JournaledState)
}

// journal is the LIFO change log a JournaledState replays on RevertToSnapshot.
type journal struct {
	entries   []journalEntry
	snapshots []int // snapshot id -> entry index, indexed by id
}

func newJournal() *journal {
	return &journal{}
}

func (j *journal) append(e journalEntry) {
	j.entries = append(j.entries, e)
}

func (j *journal) snapshot() int {
	id := len(j.snapshots)
	j.snapshots = append(j.snapshots, len(j.entries))
	return id
}

func (j *journal) revertToSnapshot(id int, s *JournaledState) {
	idx := j.snapshots[id]
	for i := len(j.entries) - 1; i >= idx; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:idx]
	j.snapshots = j.snapshots[:id]
}

type createAccountChange struct {
	addr primitives.Address
	prev *account // nil if the account did not exist before
}

func (c createAccountChange) revert(s *JournaledState) {
	if c.prev == nil {
		delete(s.accounts, c.addr)
	} else {
		s.accounts[c.addr] = c.prev
	}
}

type balanceChange struct {
	addr primitives.Address
	prev primitives.Word
}

func (c balanceChange) revert(s *JournaledState) {
	s.accounts[c.addr].balance = c.prev
}

type nonceChange struct {
	addr primitives.Address
	prev uint64
}

func (c nonceChange) revert(s *JournaledState) {
	s.accounts[c.addr].nonce = c.prev
}

type codeChange struct {
	addr primitives.Address
	prev *stateCode
}

func (c codeChange) revert(s *JournaledState) {
	s.accounts[c.addr].code = c.prev
}

type storageChange struct {
	addr       primitives.Address
	key        primitives.Hash
	prev       primitives.Hash
	prevExists bool
}

func (c storageChange) revert(s *JournaledState) {
	slot := storageKey{c.addr, c.key}
	if c.prevExists {
		s.storage[slot] = c.prev
	} else {
		delete(s.storage, slot)
	}
}

type selfDestructChange struct {
	addr           primitives.Address
	prevDestructed bool
}

func (c selfDestructChange) revert(s *JournaledState) {
	if c.prevDestructed {
		s.destructed[c.addr] = true
	} else {
		delete(s.destructed, c.addr)
	}
}

type touchChange struct {
	addr primitives.Address
}

func (c touchChange) revert(s *JournaledState) {
	delete(s.touched, c.addr)
}

type refundChange struct {
	prev uint64
}

func (c refundChange) revert(s *JournaledState) {
	s.refund = c.prev
}

type addressAccessChange struct {
	addr primitives.Address
}

func (c addressAccessChange) revert(s *JournaledState) {
	delete(s.warmAddresses, c.addr)
}

type slotAccessChange struct {
	addr primitives.Address
	key  primitives.Hash
}

func (c slotAccessChange) revert(s *JournaledState) {
	delete(s.warmSlots, storageKey{c.addr, c.key})
}

type logChange struct{}

func (c logChange) revert(s *JournaledState) {
	s.logs = s.logs[:len(s.logs)-1]
}
