package precompiles

import (
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/cloudflare/circl/sign/ed448"

	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
)

func TestLookupActivationGating(t *testing.T) {
	blake2 := addressFor(9)
	if _, ok := Lookup(blake2, params.BYZANTIUM); ok {
		t.Fatalf("BLAKE2F should not be active before Istanbul")
	}
	if _, ok := Lookup(blake2, params.ISTANBUL); !ok {
		t.Fatalf("BLAKE2F should be active under Istanbul")
	}

	bn256add := addressFor(6)
	if _, ok := Lookup(bn256add, params.FRONTIER); ok {
		t.Fatalf("bn256Add should not be active under Frontier")
	}
	if _, ok := Lookup(bn256add, params.BYZANTIUM); !ok {
		t.Fatalf("bn256Add should be active under Byzantium")
	}
}

func TestLookupRejectsNonPrecompileAddress(t *testing.T) {
	notAPrecompile := primitives.ToICAN(primitives.BytesToBody([]byte{1, 2, 3}), primitives.NetworkMainnet)
	if _, ok := Lookup(notAPrecompile, params.ISTANBUL); ok {
		t.Fatalf("an address with more than the low byte set should not resolve")
	}
}

func TestIdentityEchoesInput(t *testing.T) {
	in := []byte("hello precompile")
	out, err := identity{}.Run(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != string(in) {
		t.Fatalf("identity output = %q, want %q", out, in)
	}
}

func TestSha256hashMatchesStdlib(t *testing.T) {
	in := []byte("some input")
	out, err := sha256hash{}.Run(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sha256.Sum256(in)
	if string(out) != string(want[:]) {
		t.Fatalf("sha256hash mismatch")
	}
}

func TestEcrecoverRoundTrip(t *testing.T) {
	pub, priv, err := ed448.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	digest := primitives.Sum256([]byte("message to sign"))
	sig := ed448.Sign(priv, digest.Bytes(), "")

	caller := primitives.ToICAN(primitives.BytesToBody([]byte{0x42}), primitives.NetworkMainnet)
	input := append(append([]byte{}, digest.Bytes()...), append(sig, pub...)...)

	out, err := ecrecover{}.RunWithCaller(input, caller)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := primitives.Sum256(pub)
	wantBody := primitives.BytesToBody(h[12:])
	want := primitives.ToICAN(wantBody, primitives.NetworkOf(caller))
	got := primitives.BytesToHash(out).Bytes()[32-primitives.AddressLength:]
	if string(got) != string(want.Bytes()) {
		t.Fatalf("recovered address mismatch")
	}
}

func TestEcrecoverRejectsBadSignature(t *testing.T) {
	pub, _, err := ed448.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	digest := primitives.Sum256([]byte("message"))
	badSig := make([]byte, ed448.SignatureSize)
	caller := primitives.ToICAN(primitives.BytesToBody([]byte{0x42}), primitives.NetworkMainnet)
	input := append(append([]byte{}, digest.Bytes()...), append(badSig, pub...)...)

	out, err := ecrecover{}.RunWithCaller(input, caller)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, b := range out {
		if b != 0 {
			t.Fatalf("expected all-zero output for a bad signature, got %x", out)
		}
	}
}

func TestModexpMinimumCost(t *testing.T) {
	input := make([]byte, 96) // baseLen=0, expLen=0, modLen=0, no payload
	cost := modexp{}.RequiredEnergy(input)
	if cost != 200 {
		t.Fatalf("modexp minimum cost = %d, want 200", cost)
	}
}
