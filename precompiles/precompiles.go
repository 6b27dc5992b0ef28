// Package precompiles implements the built-in contracts addressable at
// 0x01..0x09: native code selected by address rather than by bytecode,
// reachable from evmcore's CALL dispatch exactly like any other account.
package precompiles

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"

	"github.com/cloudflare/circl/sign/ed448"
	"golang.org/x/crypto/bn256"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // still the only pure-Go RIPEMD160 in the ecosystem
	"golang.org/x/crypto/sha3"

	"github.com/core-coin/cvm-go/params"
	"github.com/core-coin/cvm-go/primitives"
)

// Contract is a native precompiled contract: cost computed from the raw
// input (before execution, so the interpreter can fail fast on
// OutOfEnergy), then Run produces the output.
type Contract interface {
	RequiredEnergy(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// CallerAware is implemented by precompiles whose behavior depends on the
// calling contract's address, not just the raw input — ECRECOVER needs the
// caller's network prefix to mint a same-network recovered address.
type CallerAware interface {
	RunWithCaller(input []byte, caller primitives.Address) ([]byte, error)
}

// addressFor builds the 22-byte address a precompile lives at: an ICAN
// address whose body is the single low byte n, prefixed for NetworkMainnet
// (precompiles are addressed identically on every network; only the body
// matters for the lookup table).
func addressFor(n byte) primitives.Address {
	var body [primitives.AddressBodyLength]byte
	body[primitives.AddressBodyLength-1] = n
	return primitives.ToICAN(body, primitives.NetworkMainnet)
}

// bodyKey reduces an Address to its body for table lookups, so a precompile
// resolves the same way regardless of which network's prefix dialed it.
func bodyKey(a primitives.Address) [primitives.AddressBodyLength]byte {
	return a.Body()
}

var table = map[[primitives.AddressBodyLength]byte]Contract{
	bodyKey(addressFor(1)): ecrecover{},
	bodyKey(addressFor(2)): sha256hash{},
	bodyKey(addressFor(3)): ripemd160hash{},
	bodyKey(addressFor(4)): identity{},
	bodyKey(addressFor(5)): modexp{},
	bodyKey(addressFor(6)): bn256Add{},
	bodyKey(addressFor(7)): bn256ScalarMul{},
	bodyKey(addressFor(8)): bn256Pairing{},
	bodyKey(addressFor(9)): blake2F{},
}

// activeIn reports which SpecId first introduced each address, so Lookup can
// hide a precompile that does not exist yet under an older fork.
var activeIn = map[byte]params.SpecId{
	1: params.FRONTIER,
	2: params.FRONTIER,
	3: params.FRONTIER,
	4: params.FRONTIER,
	5: params.BYZANTIUM,
	6: params.BYZANTIUM,
	7: params.BYZANTIUM,
	8: params.BYZANTIUM,
	9: params.ISTANBUL,
}

// addresses, for Reset's EIP-2929 pre-warm pass, built fresh each call so
// callers can't mutate the table through it.
func Addresses(spec params.SpecId) []primitives.Address {
	out := make([]primitives.Address, 0, len(table))
	for n, introduced := range activeIn {
		if spec >= introduced {
			out = append(out, addressFor(n))
		}
	}
	return out
}

// Lookup resolves addr to its Contract under the given fork, or (nil, false)
// if addr isn't a precompile address, or is one not yet active under spec.
func Lookup(addr primitives.Address, spec params.SpecId) (Contract, bool) {
	body := bodyKey(addr)
	idx := body[primitives.AddressBodyLength-1]
	// Any nonzero byte other than the low byte means this isn't a
	// single-byte precompile address at all.
	for i := 0; i < primitives.AddressBodyLength-1; i++ {
		if body[i] != 0 {
			return nil, false
		}
	}
	c, ok := table[body]
	if !ok {
		return nil, false
	}
	if introduced, known := activeIn[idx]; !known || spec < introduced {
		return nil, false
	}
	return c, true
}

// ErrOutOfEnergy names the case where the frame's remaining energy is below
// RequiredEnergy. Precompiles never check their own budget; evmcore reports
// that case as an unsuccessful CallResult and does not return this value.
var ErrOutOfEnergy = errors.New("precompiles: out of energy")

func wordCount(size int) uint64 {
	if size == 0 {
		return 0
	}
	return uint64((size + 31) / 32)
}

func padRight(data []byte, minLen int) []byte {
	if len(data) >= minLen {
		return data
	}
	out := make([]byte, minLen)
	copy(out, data)
	return out
}

func slice(data []byte, offset, length uint64) []byte {
	out := make([]byte, length)
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + length
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}

// --- 1: ECRECOVER (ED448 variant) ---

type ecrecover struct{}

func (ecrecover) RequiredEnergy([]byte) uint64 { return 3000 }

// Run satisfies Contract but ECRECOVER always dispatches through
// RunWithCaller; called directly it has no network to mint into and fails
// closed rather than guessing mainnet.
func (c ecrecover) Run(input []byte) ([]byte, error) {
	return nil, errors.New("ecrecover: requires caller context, use RunWithCaller")
}

// RunWithCaller verifies a 171-byte (signature‖public_key) ED448 payload
// over the 32-byte digest input and, on success, mints an ICAN address from
// the 20 low bytes of SHA3-256(public_key), carrying the caller's own
// network prefix forward (ECRECOVER never crosses networks).
func (ecrecover) RunWithCaller(input []byte, caller primitives.Address) ([]byte, error) {
	input = padRight(input, 32+ed448.SignatureSize+ed448.PublicKeySize)
	digest := input[:32]
	sig := input[32 : 32+ed448.SignatureSize]
	pub := ed448.PublicKey(input[32+ed448.SignatureSize : 32+ed448.SignatureSize+ed448.PublicKeySize])

	if !ed448.Verify(pub, digest, sig, "") {
		return nil, nil
	}

	h := sha3.Sum256(pub)
	body := primitives.BytesToBody(h[12:])
	addr := primitives.ToICAN(body, primitives.NetworkOf(caller))

	out := make([]byte, 32)
	copy(out[32-primitives.AddressLength:], addr.Bytes())
	return out, nil
}

// --- 2: SHA256 ---

type sha256hash struct{}

func (sha256hash) RequiredEnergy(input []byte) uint64 { return 60 + 12*wordCount(len(input)) }

func (sha256hash) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// --- 3: RIPEMD160 ---

type ripemd160hash struct{}

func (ripemd160hash) RequiredEnergy(input []byte) uint64 { return 600 + 120*wordCount(len(input)) }

func (ripemd160hash) Run(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	digest := h.Sum(nil)
	out := make([]byte, 32)
	copy(out[12:], digest)
	return out, nil
}

// --- 4: IDENTITY ---

type identity struct{}

func (identity) RequiredEnergy(input []byte) uint64 { return 15 + 3*wordCount(len(input)) }

func (identity) Run(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

// --- 5: MODEXP (Byzantium+) ---

type modexp struct{}

func (modexp) RequiredEnergy(input []byte) uint64 {
	input = padRight(input, 96)
	baseLen := new(big.Int).SetBytes(input[0:32]).Uint64()
	expLen := new(big.Int).SetBytes(input[32:64]).Uint64()
	modLen := new(big.Int).SetBytes(input[64:96]).Uint64()

	adjExpLen := adjustedExpLen(expLen, baseLen, input[96:])
	maxLen := baseLen
	if modLen > maxLen {
		maxLen = modLen
	}
	words := (maxLen + 7) / 8
	complexity := words * words
	gas := complexity * max64(adjExpLen, 1) / 3
	if gas < 200 {
		gas = 200
	}
	return gas
}

func adjustedExpLen(expLen, baseLen uint64, data []byte) uint64 {
	if expLen <= 32 {
		exp := new(big.Int).SetBytes(slice(data, baseLen, expLen))
		if exp.Sign() == 0 {
			return 0
		}
		return uint64(exp.BitLen() - 1)
	}
	first := new(big.Int).SetBytes(slice(data, baseLen, 32))
	adj := uint64(0)
	if first.Sign() > 0 {
		adj = uint64(first.BitLen() - 1)
	}
	return adj + 8*(expLen-32)
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func (modexp) Run(input []byte) ([]byte, error) {
	input = padRight(input, 96)
	baseLen := new(big.Int).SetBytes(input[0:32])
	expLen := new(big.Int).SetBytes(input[32:64])
	modLen := new(big.Int).SetBytes(input[64:96])
	if baseLen.BitLen() > 32 || expLen.BitLen() > 32 || modLen.BitLen() > 32 {
		return nil, errors.New("modexp: length overflow")
	}
	bLen, eLen, mLen := baseLen.Uint64(), expLen.Uint64(), modLen.Uint64()

	data := input[96:]
	base := slice(data, 0, bLen)
	exp := slice(data, bLen, eLen)
	mod := slice(data, bLen+eLen, mLen)

	modVal := new(big.Int).SetBytes(mod)
	if modVal.Sign() == 0 {
		return make([]byte, mLen), nil
	}
	result := new(big.Int).Exp(new(big.Int).SetBytes(base), new(big.Int).SetBytes(exp), modVal)
	out := result.Bytes()
	if uint64(len(out)) < mLen {
		padded := make([]byte, mLen)
		copy(padded[mLen-uint64(len(out)):], out)
		return padded, nil
	}
	return out[:mLen], nil
}

// --- 6/7/8: BN256 (alt_bn128), EIP-196/197, Istanbul prices at every fork ---

type bn256Add struct{}

func (bn256Add) RequiredEnergy([]byte) uint64 { return 150 }

func (bn256Add) Run(input []byte) ([]byte, error) {
	input = padRight(input, 128)
	p1, err := decodeBN256Point(input[0:64])
	if err != nil {
		return nil, err
	}
	p2, err := decodeBN256Point(input[64:128])
	if err != nil {
		return nil, err
	}
	sum := new(bn256.G1).Add(p1, p2)
	return sum.Marshal(), nil
}

type bn256ScalarMul struct{}

func (bn256ScalarMul) RequiredEnergy([]byte) uint64 { return 6000 }

func (bn256ScalarMul) Run(input []byte) ([]byte, error) {
	input = padRight(input, 96)
	p, err := decodeBN256Point(input[0:64])
	if err != nil {
		return nil, err
	}
	scalar := new(big.Int).SetBytes(input[64:96])
	product := new(bn256.G1).ScalarMult(p, scalar)
	return product.Marshal(), nil
}

type bn256Pairing struct{}

func (bn256Pairing) RequiredEnergy(input []byte) uint64 {
	k := uint64(len(input)) / 192
	return 45000 + 34000*k
}

func (bn256Pairing) Run(input []byte) ([]byte, error) {
	if len(input)%192 != 0 {
		return nil, errors.New("bn256 pairing: invalid input length")
	}
	k := len(input) / 192
	g1s := make([]*bn256.G1, 0, k)
	g2s := make([]*bn256.G2, 0, k)
	for i := 0; i < k; i++ {
		chunk := input[i*192 : (i+1)*192]
		p1, err := decodeBN256Point(chunk[0:64])
		if err != nil {
			return nil, err
		}
		p2 := new(bn256.G2)
		if _, err := p2.Unmarshal(chunk[64:192]); err != nil {
			return nil, errors.New("bn256 pairing: invalid G2 point")
		}
		g1s = append(g1s, p1)
		g2s = append(g2s, p2)
	}
	out := make([]byte, 32)
	if len(g1s) > 0 && bn256.PairingCheck(g1s, g2s) {
		out[31] = 1
	}
	return out, nil
}

func decodeBN256Point(b []byte) (*bn256.G1, error) {
	p := new(bn256.G1)
	if _, err := p.Unmarshal(b); err != nil {
		return nil, errors.New("bn256: invalid curve point")
	}
	return p, nil
}

// --- 9: BLAKE2F compression (Istanbul, EIP-152) ---

type blake2F struct{}

func (blake2F) RequiredEnergy(input []byte) uint64 {
	if len(input) < 4 {
		return 0
	}
	return uint64(binary.BigEndian.Uint32(input[:4]))
}

func (blake2F) Run(input []byte) ([]byte, error) {
	if len(input) != 213 {
		return nil, errors.New("blake2f: invalid input length (expected 213 bytes)")
	}
	rounds := binary.BigEndian.Uint32(input[:4])
	final := input[212]
	if final != 0 && final != 1 {
		return nil, errors.New("blake2f: invalid final block indicator")
	}

	var h [8]uint64
	for i := 0; i < 8; i++ {
		h[i] = binary.LittleEndian.Uint64(input[4+i*8 : 4+(i+1)*8])
	}
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = binary.LittleEndian.Uint64(input[68+i*8 : 68+(i+1)*8])
	}
	t0 := binary.LittleEndian.Uint64(input[196:204])
	t1 := binary.LittleEndian.Uint64(input[204:212])

	blake2bCompress(&h, m, [2]uint64{t0, t1}, final == 1, rounds)

	out := make([]byte, 64)
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint64(out[i*8:(i+1)*8], h[i])
	}
	return out, nil
}

var blake2bIV = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var blake2bSigma = [10][16]byte{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// blake2bCompress implements the EIP-152 F function: rounds of the BLAKE2b
// G mixing function over the 16-word work vector v, seeded from h/m/t/final.
func blake2bCompress(h *[8]uint64, m [16]uint64, t [2]uint64, final bool, rounds uint32) {
	var v [16]uint64
	copy(v[:8], h[:])
	copy(v[8:], blake2bIV[:])
	v[12] ^= t[0]
	v[13] ^= t[1]
	if final {
		v[14] = ^v[14]
	}

	g := func(a, b, c, d int, x, y uint64) {
		v[a] = v[a] + v[b] + x
		v[d] = bits.RotateLeft64(v[d]^v[a], -32)
		v[c] = v[c] + v[d]
		v[b] = bits.RotateLeft64(v[b]^v[c], -24)
		v[a] = v[a] + v[b] + y
		v[d] = bits.RotateLeft64(v[d]^v[a], -16)
		v[c] = v[c] + v[d]
		v[b] = bits.RotateLeft64(v[b]^v[c], -63)
	}

	for i := uint32(0); i < rounds; i++ {
		s := blake2bSigma[i%10]
		g(0, 4, 8, 12, m[s[0]], m[s[1]])
		g(1, 5, 9, 13, m[s[2]], m[s[3]])
		g(2, 6, 10, 14, m[s[4]], m[s[5]])
		g(3, 7, 11, 15, m[s[6]], m[s[7]])
		g(0, 5, 10, 15, m[s[8]], m[s[9]])
		g(1, 6, 11, 12, m[s[10]], m[s[11]])
		g(2, 7, 8, 13, m[s[12]], m[s[13]])
		g(3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := 0; i < 8; i++ {
		h[i] ^= v[i] ^ v[i+8]
	}
}
