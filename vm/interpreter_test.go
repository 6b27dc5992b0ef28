package vm

import (
	"testing"

	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
)

func testEnv() params.Env {
	return params.Env{
		Cfg: params.CfgEnv{SpecId: params.ISTANBUL, NetworkID: primitives.NetworkMainnet},
		Block: params.BlockEnv{
			Number:      1,
			Coinbase:    primitives.ToICAN(primitives.BytesToBody([]byte{0xc0}), primitives.NetworkMainnet),
			EnergyLimit: 30_000_000,
		},
	}
}

func run(t *testing.T, host Host, code []byte, energyLimit uint64) ([]byte, error) {
	t.Helper()
	addr := primitives.ToICAN(primitives.BytesToBody([]byte{0x01}), primitives.NetworkMainnet)
	caller := primitives.ToICAN(primitives.BytesToBody([]byte{0x02}), primitives.NetworkMainnet)
	contract := NewContract(caller, addr, primitives.ZeroWord(), energyLimit, NewRawBytecode(code))
	interp := NewInterpreter(host, contract, params.ISTANBUL, 0)
	return interp.Run()
}

func TestAddAndReturn(t *testing.T) {
	host := NewDummyHost(testEnv())
	// PUSH1 2, PUSH1 3, ADD, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, RETURN
	code := []byte{
		byte(PUSH1), 2,
		byte(PUSH1), 3,
		byte(ADD),
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	out, err := run(t, host, code, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := primitives.NewWordFromUint64(5)
	got := primitives.BytesToHash(out).Word()
	if got.Cmp(&want) != 0 {
		t.Fatalf("ADD result = %v, want 5", got)
	}
}

func TestRevertPreservesReasonData(t *testing.T) {
	host := NewDummyHost(testEnv())
	// PUSH1 0x2a, PUSH1 0, MSTORE8, PUSH1 1, PUSH1 0, REVERT
	code := []byte{
		byte(PUSH1), 0x2a,
		byte(PUSH1), 0,
		byte(MSTORE8),
		byte(PUSH1), 1,
		byte(PUSH1), 0,
		byte(REVERT),
	}
	out, err := run(t, host, code, 100000)
	if err != ErrExecutionReverted {
		t.Fatalf("err = %v, want ErrExecutionReverted", err)
	}
	if len(out) != 1 || out[0] != 0x2a {
		t.Fatalf("revert reason = %x, want [2a]", out)
	}
}

func TestOutOfEnergyOnInsufficientLimit(t *testing.T) {
	host := NewDummyHost(testEnv())
	code := []byte{byte(PUSH1), 1, byte(PUSH1), 2, byte(ADD)}
	_, err := run(t, host, code, 1)
	if err != ErrOutOfEnergy {
		t.Fatalf("err = %v, want ErrOutOfEnergy", err)
	}
}

func TestInvalidJumpDestination(t *testing.T) {
	host := NewDummyHost(testEnv())
	code := []byte{byte(PUSH1), 0x05, byte(JUMP), byte(STOP), byte(STOP), byte(ADD)}
	_, err := run(t, host, code, 100000)
	if err != ErrInvalidJump {
		t.Fatalf("err = %v, want ErrInvalidJump", err)
	}
}

func TestSstoreWarmsSlotAndTracksRefund(t *testing.T) {
	host := NewDummyHost(testEnv())
	key := primitives.BytesToHash([]byte{0x01})
	// Seed a nonzero slot so a subsequent SSTORE-to-zero triggers a clear
	// refund under EIP-2200's net-metering rule.
	host.Storage[key] = primitives.BytesToHash([]byte{1})

	// PUSH1 0 (value), PUSH1 1 (key), SSTORE
	code := []byte{byte(PUSH1), 0, byte(PUSH1), 1, byte(SSTORE), byte(STOP)}
	_, err := run(t, host, code, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host.refund == 0 {
		t.Fatalf("expected a clear refund to be recorded")
	}
	if !host.warmSlots[key] {
		t.Fatalf("expected SSTORE to leave the slot warm")
	}
}

func TestStaticCallRejectsWrite(t *testing.T) {
	host := NewDummyHost(testEnv())
	addr := primitives.ToICAN(primitives.BytesToBody([]byte{0x01}), primitives.NetworkMainnet)
	caller := primitives.ToICAN(primitives.BytesToBody([]byte{0x02}), primitives.NetworkMainnet)
	code := []byte{byte(PUSH1), 1, byte(PUSH1), 1, byte(SSTORE)}
	contract := NewContract(caller, addr, primitives.ZeroWord(), 100000, NewRawBytecode(code))
	contract.IsStatic = true
	interp := NewInterpreter(host, contract, params.ISTANBUL, 0)
	_, err := interp.Run()
	if err != ErrWriteProtection {
		t.Fatalf("err = %v, want ErrWriteProtection", err)
	}
}
