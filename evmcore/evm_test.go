package evmcore

import (
	"testing"

	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
	"github.com/core-coin/cvm-go/state"
	"github.com/core-coin/cvm-go/vm"
)

func addr(b byte) primitives.Address {
	return primitives.ToICAN(primitives.BytesToBody([]byte{b}), primitives.NetworkMainnet)
}

func baseEnv(tx params.TxEnv) params.Env {
	return params.Env{
		Cfg: params.CfgEnv{
			SpecId:                params.ISTANBUL,
			NetworkID:             primitives.NetworkMainnet,
			LimitContractCodeSize: 24576,
		},
		Block: params.BlockEnv{
			Number:      1,
			Coinbase:    addr(0xc0),
			EnergyLimit: 30_000_000,
		},
		Tx: tx,
	}
}

func TestTransactSimpleValueTransfer(t *testing.T) {
	db := state.NewMemoryBackend()
	sender, receiver := addr(1), addr(0x20) // addr(2) would be the SHA256 precompile
	db.SetAccount(sender, primitives.NewWordFromUint64(1_000_000), 0)

	tx := params.TxEnv{
		Caller:      sender,
		EnergyLimit: 100_000,
		EnergyPrice: primitives.NewWordFromUint64(1),
		TransactTo:  params.Call(receiver),
		Value:       primitives.NewWordFromUint64(1000),
	}
	e := New(db, baseEnv(tx))
	res, err := e.Transact()
	if err != nil {
		t.Fatalf("Transact error: %v", err)
	}
	if !res.Success {
		t.Fatalf("Transact not successful: %v", res.Err)
	}
	if got := e.Balance(receiver).Uint64(); got != 1000 {
		t.Fatalf("receiver balance = %d, want 1000", got)
	}
	if res.EnergyUsed != 21000 {
		t.Fatalf("EnergyUsed = %d, want 21000 (plain transfer intrinsic cost)", res.EnergyUsed)
	}
	if got := e.Nonce(sender); got != 1 {
		t.Fatalf("sender nonce = %d, want 1", got)
	}
}

func TestTransactRejectsInsufficientBalance(t *testing.T) {
	db := state.NewMemoryBackend()
	sender := addr(1)
	db.SetAccount(sender, primitives.NewWordFromUint64(10), 0)

	tx := params.TxEnv{
		Caller:      sender,
		EnergyLimit: 100_000,
		EnergyPrice: primitives.NewWordFromUint64(1),
		TransactTo:  params.Call(addr(2)),
		Value:       primitives.NewWordFromUint64(1000),
	}
	e := New(db, baseEnv(tx))
	_, err := e.Transact()
	if err != ErrLackOfFundForEnergyLimit {
		t.Fatalf("err = %v, want ErrLackOfFundForEnergyLimit", err)
	}
}

func TestTransactCreateDeploysCodeThenCallable(t *testing.T) {
	db := state.NewMemoryBackend()
	sender := addr(1)
	db.SetAccount(sender, primitives.NewWordFromUint64(10_000_000), 0)

	// Init code returns a 10-byte runtime that does PUSH1 0x2a, PUSH1 0,
	// MSTORE8, PUSH1 1, PUSH1 0, RETURN — i.e. running it returns [0x2a].
	runtime := []byte{
		byte(vm.PUSH1), 0x2a,
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE8),
		byte(vm.PUSH1), 1,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}
	initCode := append([]byte{
		byte(vm.PUSH1), byte(len(runtime)),
		byte(vm.DUP1),
		byte(vm.PUSH1), 11, // offset of runtime within initCode
		byte(vm.PUSH1), 0,
		byte(vm.CODECOPY),
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}, runtime...)

	tx := params.TxEnv{
		Caller:      sender,
		EnergyLimit: 1_000_000,
		EnergyPrice: primitives.NewWordFromUint64(1),
		TransactTo:  params.Create(),
		Data:        initCode,
	}
	e := New(db, baseEnv(tx))
	res, err := e.Transact()
	if err != nil {
		t.Fatalf("Transact error: %v", err)
	}
	if !res.Success {
		t.Fatalf("create failed: %v", res.Err)
	}
	if res.CreatedAddr.IsZero() {
		t.Fatalf("CreatedAddr is zero")
	}
	if size := e.CodeSize(res.CreatedAddr); size != len(runtime) {
		t.Fatalf("deployed code size = %d, want %d", size, len(runtime))
	}

	// JournaledState never writes back to its Database, so persist the
	// deployed code for the second EVM to see.
	db.SetCode(res.CreatedAddr, e.CodeOf(res.CreatedAddr).Original())

	callTx := params.TxEnv{
		Caller:      sender,
		EnergyLimit: 100_000,
		EnergyPrice: primitives.NewWordFromUint64(1),
		TransactTo:  params.Call(res.CreatedAddr),
	}
	e2 := New(db, baseEnv(callTx))
	callRes, err := e2.Transact()
	if err != nil {
		t.Fatalf("call Transact error: %v", err)
	}
	if !callRes.Success {
		t.Fatalf("call failed: %v", callRes.Err)
	}
	if len(callRes.ReturnData) != 1 || callRes.ReturnData[0] != 0x2a {
		t.Fatalf("ReturnData = %x, want [2a]", callRes.ReturnData)
	}
}

func TestTransactRejectsNonceMismatch(t *testing.T) {
	db := state.NewMemoryBackend()
	sender := addr(1)
	db.SetAccount(sender, primitives.NewWordFromUint64(1_000_000), 5)

	wantNonce := uint64(3)
	tx := params.TxEnv{
		Caller:      sender,
		EnergyLimit: 100_000,
		EnergyPrice: primitives.NewWordFromUint64(1),
		TransactTo:  params.Call(addr(2)),
		Nonce:       &wantNonce,
	}
	e := New(db, baseEnv(tx))
	_, err := e.Transact()
	if err != ErrNonceTooLow {
		t.Fatalf("err = %v, want ErrNonceTooLow", err)
	}
}
