package primitives

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// AddressBodyLength is the width, in bytes, of the network-agnostic account
// body that ICAN addresses wrap.
const AddressBodyLength = 20

// AddressLength is the full width of an ICAN address: a 2-byte network
// prefix, a 2-byte (two ASCII-digit) checksum, and the 20-byte body.
const AddressLength = 22

// NetworkID identifies which Core-blockchain network an address belongs to.
type NetworkID uint64

// Known networks. Any id other than Mainnet or Devin maps to the Private
// prefix, per spec.
const (
	NetworkMainnet NetworkID = 1
	NetworkDevin   NetworkID = 3
)

// prefixFor returns the two-letter ICAN prefix for a network id.
func prefixFor(id NetworkID) [2]byte {
	switch id {
	case NetworkMainnet:
		return [2]byte{'c', 'b'}
	case NetworkDevin:
		return [2]byte{'a', 'b'}
	default:
		return [2]byte{'c', 'e'}
	}
}

// Address is a 22-byte Core-blockchain account identifier: 2-byte network
// prefix, 2-byte decimal checksum, 20-byte body.
type Address [AddressLength]byte

// Body returns the 20-byte account body (network-agnostic part) of the
// address.
func (a Address) Body() [AddressBodyLength]byte {
	var b [AddressBodyLength]byte
	copy(b[:], a[4:])
	return b
}

// Prefix returns the 2-byte network prefix ("cb", "ab", or "ce").
func (a Address) Prefix() [2]byte {
	var p [2]byte
	copy(p[:], a[:2])
	return p
}

// Bytes returns the full 22-byte address.
func (a Address) Bytes() []byte { return a[:] }

// IsZero reports whether the address body (ignoring prefix/checksum) is all
// zero. Used for the "self-destruct burns rather than credits" and
// "empty account" checks.
func (a Address) IsZero() bool {
	b := a.Body()
	return b == [AddressBodyLength]byte{}
}

// Hex returns the ICAN prefix and checksum verbatim as their ASCII bytes,
// followed by "0x" and the lowercase hex encoding of the 20-byte body.
func (a Address) Hex() string {
	return fmt.Sprintf("%s%s0x%s", a[0:2], a[2:4], hex.EncodeToString(a[4:]))
}

func (a Address) String() string { return a.Hex() }

// digitStream converts s (ASCII hex digits and/or lowercase letters) into
// the decimal digit stream used by the ICAN checksum: digits pass through
// unchanged, letters a-z map to two-digit codes 10-35 (a=10, ..., z=35).
func digitStream(s string) string {
	out := make([]byte, 0, len(s)*2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			out = append(out, c)
		case c >= 'a' && c <= 'z':
			v := int(c-'a') + 10
			out = append(out, byte('0'+v/10), byte('0'+v%10))
		default:
			// Not expected for a well-formed hex/prefix string; ignore.
		}
	}
	return string(out)
}

// icanChecksum computes the 2-digit ICAN checksum for the given body and
// network prefix: 98 minus (decimal_digit_stream(hex(body) ++ prefix ++
// "00") mod 97), zero-padded to width 2.
func icanChecksum(body [AddressBodyLength]byte, prefix [2]byte) string {
	stream := digitStream(hex.EncodeToString(body[:])) +
		digitStream(string(prefix[:])) + "00"
	n := new(big.Int)
	n.SetString(stream, 10)
	mod := new(big.Int).Mod(n, big.NewInt(97))
	chk := 98 - mod.Int64()
	return fmt.Sprintf("%02d", chk)
}

// ToICAN wraps a 20-byte account body into a checksummed ICAN address for
// the given network.
func ToICAN(body [AddressBodyLength]byte, network NetworkID) Address {
	prefix := prefixFor(network)
	checksum := icanChecksum(body, prefix)

	var a Address
	copy(a[0:2], prefix[:])
	copy(a[2:4], checksum)
	copy(a[4:], body[:])
	return a
}

// BytesToBody left-pads or truncates b to a 20-byte account body.
func BytesToBody(b []byte) [AddressBodyLength]byte {
	var out [AddressBodyLength]byte
	if len(b) > AddressBodyLength {
		b = b[len(b)-AddressBodyLength:]
	}
	copy(out[AddressBodyLength-len(b):], b)
	return out
}

// rlpAddressNonce encodes (body, nonce) the way the Core-blockchain CREATE
// address recipe requires: RLP(list(body, nonce)). This is not a general RLP
// encoder — only the two-element, fixed-shape list CREATE needs — RLP
// encoding for any other purpose is explicitly out of scope.
func rlpAddressNonce(body [AddressBodyLength]byte, nonce uint64) []byte {
	nonceBytes := big.NewInt(0).SetUint64(nonce).Bytes()
	// Strip redundant leading zero handling isn't needed: big.Int.Bytes
	// already returns the minimal big-endian representation (empty for 0).
	encBody := rlpEncodeBytes(body[:])
	encNonce := rlpEncodeBytes(nonceBytes)
	payload := append(append([]byte{}, encBody...), encNonce...)
	return append(rlpListHeader(len(payload)), payload...)
}

func rlpEncodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	if len(b) < 56 {
		return append([]byte{byte(0x80 + len(b))}, b...)
	}
	lenBytes := big.NewInt(0).SetUint64(uint64(len(b))).Bytes()
	header := append([]byte{byte(0xb7 + len(lenBytes))}, lenBytes...)
	return append(header, b...)
}

func rlpListHeader(payloadLen int) []byte {
	if payloadLen < 56 {
		return []byte{byte(0xc0 + payloadLen)}
	}
	lenBytes := big.NewInt(0).SetUint64(uint64(payloadLen)).Bytes()
	return append([]byte{byte(0xf7 + len(lenBytes))}, lenBytes...)
}

// CreateAddress derives the address of a contract created via CREATE:
// to_ican(sha3_256(rlp(caller_body, nonce))[12:], network).
func CreateAddress(caller Address, nonce uint64, network NetworkID) Address {
	encoded := rlpAddressNonce(caller.Body(), nonce)
	h := Sum256(encoded)
	return ToICAN(BytesToBody(h[12:]), network)
}

// CreateAddress2 derives the address of a contract created via CREATE2:
// to_ican(sha3_256(0xff ++ caller_body ++ salt ++ code_hash)[12:], network).
func CreateAddress2(caller Address, salt Word, codeHash Hash, network NetworkID) Address {
	saltBytes := salt.Bytes32()
	body := caller.Body()
	preimage := make([]byte, 0, 1+len(body)+32+HashLength)
	preimage = append(preimage, 0xff)
	preimage = append(preimage, body[:]...)
	preimage = append(preimage, saltBytes[:]...)
	preimage = append(preimage, codeHash[:]...)
	h := Sum256(preimage)
	return ToICAN(BytesToBody(h[12:]), network)
}
