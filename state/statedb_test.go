package state

import (
	"testing"

	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
)

func addr(b byte) primitives.Address {
	return primitives.ToICAN(primitives.BytesToBody([]byte{b}), primitives.NetworkMainnet)
}

func newTestState() *JournaledState {
	db := NewMemoryBackend()
	env := params.Env{Cfg: params.CfgEnv{SpecId: params.ISTANBUL, NetworkID: primitives.NetworkMainnet}}
	return NewJournaledState(db, env)
}

func TestBalanceTransferAndSnapshotRevert(t *testing.T) {
	s := newTestState()
	a, b := addr(1), addr(2)
	s.SetBalance(a, primitives.NewWordFromUint64(100))

	snap := s.Snapshot()
	s.SubBalance(a, primitives.NewWordFromUint64(40))
	s.AddBalance(b, primitives.NewWordFromUint64(40))

	ba, bb := s.Balance(a), s.Balance(b)
	if ba.Uint64() != 60 || bb.Uint64() != 40 {
		t.Fatalf("after transfer: a=%d b=%d, want 60/40", ba.Uint64(), bb.Uint64())
	}

	s.RevertToSnapshot(snap)
	ba, bb = s.Balance(a), s.Balance(b)
	if ba.Uint64() != 100 || bb.Uint64() != 0 {
		t.Fatalf("after revert: a=%d b=%d, want 100/0", ba.Uint64(), bb.Uint64())
	}
}

func TestStorageOriginalValueCachedPerTx(t *testing.T) {
	db := NewMemoryBackend()
	a := addr(1)
	key := primitives.BytesToHash([]byte{0x01})
	db.SetStorage(a, key, primitives.BytesToHash([]byte{0x05}))
	env := params.Env{Cfg: params.CfgEnv{SpecId: params.ISTANBUL}}
	s := NewJournaledState(db, env)
	s.Reset(nil, addr(9), addr(8), nil)

	if got := s.SLoadOriginal(a, key); got != primitives.BytesToHash([]byte{0x05}) {
		t.Fatalf("SLoadOriginal = %v, want 5", got)
	}
	s.SStore(a, key, primitives.BytesToHash([]byte{0x09}))
	if got := s.SLoad(a, key); got != primitives.BytesToHash([]byte{0x09}) {
		t.Fatalf("SLoad after write = %v, want 9", got)
	}
	// The original value must stay pinned to what the backend held at the
	// start of the transaction, unaffected by the in-tx write.
	if got := s.SLoadOriginal(a, key); got != primitives.BytesToHash([]byte{0x05}) {
		t.Fatalf("SLoadOriginal after write = %v, want still 5", got)
	}
}

func TestResetPrewarmsSenderCoinbaseDestAndPrecompiles(t *testing.T) {
	s := newTestState()
	sender, coinbase, dest, precompile := addr(1), addr(2), addr(3), addr(9)
	d := dest
	s.Reset([]primitives.Address{precompile}, sender, coinbase, &d)

	for _, a := range []primitives.Address{sender, coinbase, dest, precompile} {
		if !s.TouchAddress(a) {
			t.Errorf("address %v should already be warm after Reset", a.Hex())
		}
	}
	other := addr(4)
	if s.TouchAddress(other) {
		t.Errorf("untouched address should report cold on first access")
	}
	if !s.TouchAddress(other) {
		t.Errorf("same address should report warm on second access")
	}
}

func TestSelfDestructZeroesBalanceAndPaysBeneficiary(t *testing.T) {
	s := newTestState()
	victim, beneficiary := addr(1), addr(2)
	s.SetBalance(victim, primitives.NewWordFromUint64(50))

	first := s.SelfDestruct(victim, beneficiary)
	if !first {
		t.Fatalf("first SelfDestruct should report true")
	}
	if bal := s.Balance(victim); !bal.IsZero() {
		t.Fatalf("victim balance = %d, want 0", bal.Uint64())
	}
	if bal := s.Balance(beneficiary); bal.Uint64() != 50 {
		t.Fatalf("beneficiary balance = %d, want 50", bal.Uint64())
	}
	if !s.HasSelfDestructed(victim) {
		t.Fatalf("HasSelfDestructed should be true")
	}
	if again := s.SelfDestruct(victim, beneficiary); again {
		t.Fatalf("second SelfDestruct on the same account should report false")
	}
}

func TestRefundCounterAddSub(t *testing.T) {
	s := newTestState()
	s.AddRefund(100)
	s.SubRefund(30)
	if got := s.Refund(); got != 70 {
		t.Fatalf("Refund() = %d, want 70", got)
	}
	s.SubRefund(1000)
	if got := s.Refund(); got != 0 {
		t.Fatalf("Refund() after over-subtract = %d, want 0 (saturates)", got)
	}
}
