package state

import (
	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
	"github.com/core-coin/cvm-go/vm"
)

// storageKey is the composite key under which a single slot's current value
// and warmth are tracked, independent of which account owns it.
type storageKey struct {
	addr primitives.Address
	key  primitives.Hash
}

// JournaledState is the live, per-transaction account/storage cache that
// backs vm.Host. It satisfies every Host method except Call and Create,
// which require recursing back into an interpreter — evmcore.EVM embeds a
// *JournaledState and supplies those two, completing the interface.
type JournaledState struct {
	db  Database
	env params.Env

	accounts   map[primitives.Address]*account
	storage    map[storageKey]primitives.Hash
	destructed map[primitives.Address]bool
	touched    map[primitives.Address]bool

	// storageOriginal caches, per slot, the value committed in db as of the
	// start of the current transaction — the "original value" EIP-2200/3529
	// gas accounting compares against. Populated lazily on first touch per
	// transaction and never mutated by SStore, only by a fresh Reset.
	storageOriginal map[storageKey]primitives.Hash

	warmAddresses map[primitives.Address]bool
	warmSlots     map[storageKey]bool

	logs   []vm.Log
	refund uint64

	journal *journal
}

// NewJournaledState builds an empty cache over db for the given environment.
// Reset must be called once per transaction to re-seed the precompile set
// and the sender/coinbase/destination warm set per EIP-2929's pre-warming
// rule.
func NewJournaledState(db Database, env params.Env) *JournaledState {
	return &JournaledState{
		db:              db,
		env:             env,
		accounts:        make(map[primitives.Address]*account),
		storage:         make(map[storageKey]primitives.Hash),
		destructed:      make(map[primitives.Address]bool),
		touched:         make(map[primitives.Address]bool),
		storageOriginal: make(map[storageKey]primitives.Hash),
		warmAddresses:   make(map[primitives.Address]bool),
		warmSlots:       make(map[storageKey]bool),
		journal:         newJournal(),
	}
}

// Reset clears per-transaction state (warm sets, logs, refund, storage
// origin cache) while keeping the underlying account/storage cache, so a
// block of transactions can share one JournaledState without re-reading the
// Database between them.
func (s *JournaledState) Reset(precompiles []primitives.Address, sender, coinbase primitives.Address, dest *primitives.Address) {
	s.warmAddresses = make(map[primitives.Address]bool)
	s.warmSlots = make(map[storageKey]bool)
	s.storageOriginal = make(map[storageKey]primitives.Hash)
	s.logs = nil
	s.refund = 0
	s.journal = newJournal()
	s.touched = make(map[primitives.Address]bool)

	// EIP-2929 pre-warms the sender, the coinbase, the destination (if a
	// call), and every precompile before the first opcode executes.
	s.warmAddresses[sender] = true
	s.warmAddresses[coinbase] = true
	if dest != nil {
		s.warmAddresses[*dest] = true
	}
	for _, p := range precompiles {
		s.warmAddresses[p] = true
	}
}

func (s *JournaledState) getOrLoad(addr primitives.Address) *account {
	if a, ok := s.accounts[addr]; ok {
		return a
	}
	balance, nonce, codeHash, exists := s.db.BasicAccount(addr)
	a := emptyAccount()
	if exists {
		a.balance = balance
		a.nonce = nonce
		if !codeHash.IsZero() {
			a.code = &stateCode{hash: codeHash, data: s.db.CodeByHash(codeHash)}
		}
	}
	s.accounts[addr] = a
	return a
}

// exists reports whether an account has ever been materialized, distinct
// from AccountExists which also treats a destructed account as gone.
func (s *JournaledState) exists(addr primitives.Address) bool {
	balance, nonce, codeHash, dbExists := s.db.BasicAccount(addr)
	if dbExists {
		return true
	}
	a, cached := s.accounts[addr]
	if !cached {
		return false
	}
	return !a.isEmpty() || balance.Sign() != 0 || nonce != 0 || !codeHash.IsZero()
}

func (s *JournaledState) markTouched(addr primitives.Address) {
	if s.touched[addr] {
		return
	}
	s.touched[addr] = true
	s.journal.append(touchChange{addr})
}

// --- vm.Host: account state ---

func (s *JournaledState) AccountExists(addr primitives.Address) bool {
	if s.destructed[addr] {
		return false
	}
	return s.exists(addr)
}

func (s *JournaledState) Balance(addr primitives.Address) primitives.Word {
	return s.getOrLoad(addr).balance
}

func (s *JournaledState) CodeOf(addr primitives.Address) *vm.Bytecode {
	a := s.getOrLoad(addr)
	if a.code == nil || len(a.code.data) == 0 {
		return nil
	}
	return vm.NewRawBytecode(a.code.data)
}

func (s *JournaledState) CodeSize(addr primitives.Address) int {
	a := s.getOrLoad(addr)
	if a.code == nil {
		return 0
	}
	return len(a.code.data)
}

func (s *JournaledState) CodeHash(addr primitives.Address) primitives.Hash {
	a := s.getOrLoad(addr)
	if a.code == nil {
		return primitives.Hash{}
	}
	return a.code.hash
}

// --- mutation methods used by evmcore around Call/Create, not part of
// vm.Host but needed to actually move value and install code ---

func (s *JournaledState) CreateAccount(addr primitives.Address) {
	prev, existed := s.accounts[addr]
	var prevCopy *account
	if existed {
		prevCopy = prev.clone()
	}
	s.journal.append(createAccountChange{addr: addr, prev: prevCopy})
	s.accounts[addr] = emptyAccount()
	s.markTouched(addr)
}

func (s *JournaledState) AddBalance(addr primitives.Address, amount primitives.Word) {
	if amount.IsZero() {
		s.markTouched(addr)
		return
	}
	a := s.getOrLoad(addr)
	s.journal.append(balanceChange{addr: addr, prev: a.balance})
	var next primitives.Word
	next.Add(&a.balance, &amount)
	a.balance = next
	s.markTouched(addr)
}

func (s *JournaledState) SubBalance(addr primitives.Address, amount primitives.Word) {
	if amount.IsZero() {
		s.markTouched(addr)
		return
	}
	a := s.getOrLoad(addr)
	s.journal.append(balanceChange{addr: addr, prev: a.balance})
	var next primitives.Word
	next.Sub(&a.balance, &amount)
	a.balance = next
	s.markTouched(addr)
}

func (s *JournaledState) SetBalance(addr primitives.Address, amount primitives.Word) {
	a := s.getOrLoad(addr)
	s.journal.append(balanceChange{addr: addr, prev: a.balance})
	a.balance = amount
}

func (s *JournaledState) Nonce(addr primitives.Address) uint64 {
	return s.getOrLoad(addr).nonce
}

func (s *JournaledState) SetNonce(addr primitives.Address, nonce uint64) {
	a := s.getOrLoad(addr)
	s.journal.append(nonceChange{addr: addr, prev: a.nonce})
	a.nonce = nonce
}

func (s *JournaledState) IncrementNonce(addr primitives.Address) {
	a := s.getOrLoad(addr)
	s.journal.append(nonceChange{addr: addr, prev: a.nonce})
	a.nonce++
}

func (s *JournaledState) SetCode(addr primitives.Address, code []byte) {
	a := s.getOrLoad(addr)
	s.journal.append(codeChange{addr: addr, prev: a.code})
	if len(code) == 0 {
		a.code = nil
		return
	}
	a.code = &stateCode{hash: primitives.Sum256(code), data: code}
}

// --- vm.Host: storage ---

func (s *JournaledState) originalValue(addr primitives.Address, key primitives.Hash) primitives.Hash {
	sk := storageKey{addr, key}
	if v, ok := s.storageOriginal[sk]; ok {
		return v
	}
	v := s.db.Storage(addr, key)
	s.storageOriginal[sk] = v
	return v
}

func (s *JournaledState) SLoad(addr primitives.Address, key primitives.Hash) primitives.Hash {
	sk := storageKey{addr, key}
	if v, ok := s.storage[sk]; ok {
		return v
	}
	v := s.originalValue(addr, key)
	s.storage[sk] = v
	return v
}

func (s *JournaledState) SLoadOriginal(addr primitives.Address, key primitives.Hash) primitives.Hash {
	return s.originalValue(addr, key)
}

func (s *JournaledState) SStore(addr primitives.Address, key, value primitives.Hash) {
	sk := storageKey{addr, key}
	prev, existed := s.storage[sk]
	s.journal.append(storageChange{addr: addr, key: key, prev: prev, prevExists: existed})
	s.storage[sk] = value
	s.markTouched(addr)
}

// --- vm.Host: EIP-2929 access list ---

func (s *JournaledState) TouchAddress(addr primitives.Address) bool {
	if s.warmAddresses[addr] {
		return true
	}
	s.journal.append(addressAccessChange{addr: addr})
	s.warmAddresses[addr] = true
	return false
}

func (s *JournaledState) TouchSlot(addr primitives.Address, key primitives.Hash) bool {
	sk := storageKey{addr, key}
	if s.warmSlots[sk] {
		return true
	}
	s.journal.append(slotAccessChange{addr: addr, key: key})
	s.warmSlots[sk] = true
	return false
}

// --- vm.Host: block/tx environment ---

func (s *JournaledState) BlockEnv() params.BlockEnv { return s.env.Block }

// TxEnv returns the transaction-level context evmcore.Transact was built
// from. Not part of vm.Host — opcodes reach individual fields (TxOrigin,
// TxEnergyPrice) through their own Host methods instead.
func (s *JournaledState) TxEnv() params.TxEnv          { return s.env.Tx }
func (s *JournaledState) TxOrigin() primitives.Address { return s.env.Tx.Caller }
func (s *JournaledState) TxEnergyPrice() primitives.Word {
	return s.env.Tx.EnergyPrice
}
func (s *JournaledState) NetworkID() primitives.NetworkID { return s.env.Cfg.NetworkID }
func (s *JournaledState) Spec() params.SpecId             { return s.env.Cfg.SpecId }

func (s *JournaledState) BlockHash(number uint64) primitives.Hash {
	return s.db.BlockHash(number)
}

// --- vm.Host: control ---

func (s *JournaledState) Log(l vm.Log) {
	s.logs = append(s.logs, l)
	s.journal.append(logChange{})
}

// Logs returns every log emitted so far in the current transaction, in
// emission order.
func (s *JournaledState) Logs() []vm.Log { return s.logs }

func (s *JournaledState) SelfDestruct(addr, beneficiary primitives.Address) bool {
	a := s.getOrLoad(addr)
	alreadyDestructed := s.destructed[addr]

	if !alreadyDestructed {
		// Beneficiary other than self receives the full balance; when the
		// beneficiary is the account itself nothing is credited, so zeroing
		// the balance below burns it.
		if beneficiary != addr {
			s.AddBalance(beneficiary, a.balance)
		}
		s.journal.append(balanceChange{addr: addr, prev: a.balance})
		a.balance = primitives.ZeroWord()
	}

	s.journal.append(selfDestructChange{addr: addr, prevDestructed: alreadyDestructed})
	s.destructed[addr] = true
	s.markTouched(addr)
	return !alreadyDestructed
}

// HasSelfDestructed reports whether addr has executed SELFDESTRUCT in the
// current transaction. JournaledState only records the mark; nothing in
// this module deletes such accounts from the cache or the Database.
func (s *JournaledState) HasSelfDestructed(addr primitives.Address) bool {
	return s.destructed[addr]
}

func (s *JournaledState) AddRefund(delta uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund += delta
}

func (s *JournaledState) SubRefund(delta uint64) {
	s.journal.append(refundChange{prev: s.refund})
	if delta > s.refund {
		s.refund = 0
		return
	}
	s.refund -= delta
}

// Refund returns the accumulated refund counter for the current transaction.
func (s *JournaledState) Refund() uint64 { return s.refund }

// --- snapshot/revert ---

func (s *JournaledState) Snapshot() int { return s.journal.snapshot() }

func (s *JournaledState) RevertToSnapshot(id int) { s.journal.revertToSnapshot(id, s) }
