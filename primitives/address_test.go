package primitives

import "testing"

func TestToICANDeterministic(t *testing.T) {
	body := BytesToBody([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	a1 := ToICAN(body, NetworkMainnet)
	a2 := ToICAN(body, NetworkMainnet)
	if a1 != a2 {
		t.Fatalf("ToICAN not deterministic: %v != %v", a1, a2)
	}
	if string(a1.Prefix()[:]) != "cb" {
		t.Errorf("Prefix() = %q, want cb", a1.Prefix())
	}
}

func TestToICANPrefixByNetwork(t *testing.T) {
	body := BytesToBody([]byte{0xaa})
	tests := []struct {
		network NetworkID
		prefix  string
	}{
		{NetworkMainnet, "cb"},
		{NetworkDevin, "ab"},
		{99, "ce"},
	}
	for _, tt := range tests {
		a := ToICAN(body, tt.network)
		if got := string(a.Prefix()[:]); got != tt.prefix {
			t.Errorf("network %d: prefix = %q, want %q", tt.network, got, tt.prefix)
		}
	}
}

func TestCreateAddressDeterministic(t *testing.T) {
	caller := ToICAN(BytesToBody([]byte{1}), NetworkMainnet)
	a1 := CreateAddress(caller, 5, NetworkMainnet)
	a2 := CreateAddress(caller, 5, NetworkMainnet)
	if a1 != a2 {
		t.Fatalf("CreateAddress not deterministic")
	}
	a3 := CreateAddress(caller, 6, NetworkMainnet)
	if a1 == a3 {
		t.Fatalf("CreateAddress did not change with nonce")
	}
}

func TestCreateAddress2Deterministic(t *testing.T) {
	caller := ToICAN(BytesToBody([]byte{2}), NetworkMainnet)
	codeHash := Sum256([]byte("init code"))
	salt := NewWordFromUint64(1)
	a1 := CreateAddress2(caller, salt, codeHash, NetworkMainnet)
	a2 := CreateAddress2(caller, salt, codeHash, NetworkMainnet)
	if a1 != a2 {
		t.Fatalf("CreateAddress2 not deterministic")
	}

	otherSalt := NewWordFromUint64(2)
	a3 := CreateAddress2(caller, otherSalt, codeHash, NetworkMainnet)
	if a1 == a3 {
		t.Fatalf("changing the salt by one did not change the address")
	}
}

func TestNetworkOfRoundTrip(t *testing.T) {
	body := BytesToBody([]byte{7})
	for _, n := range []NetworkID{NetworkMainnet, NetworkDevin} {
		a := ToICAN(body, n)
		if got := NetworkOf(a); got != n {
			t.Errorf("NetworkOf(ToICAN(_, %d)) = %d, want %d", n, got, n)
		}
	}
}

func TestHashSum256Empty(t *testing.T) {
	if Sum256(nil) != EmptyHash {
		t.Errorf("Sum256(nil) != EmptyHash")
	}
}
