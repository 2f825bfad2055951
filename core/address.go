package core

import "github.com/ethereum/go-ethereum/crypto"

// Address is a 20-byte account/contract identifier, the payload of the
// Address(payable?) primitive type. Rewritten from the teacher's
// Address [20]byte value type (see DESIGN.md) with the Hex helper kept in
// the same style.
type Address [20]byte

// Hex renders the address with a "0x" prefix, lower-case.
func (a Address) Hex() string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 2+len(a)*2)
	copy(out, "0x")
	for i, v := range a {
		out[2+i*2] = hexdigits[v>>4]
		out[3+i*2] = hexdigits[v&0x0f]
	}
	return string(out)
}

// Bytes returns a copy of the address's raw bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, len(a))
	copy(b, a[:])
	return b
}

func (a Address) String() string { return a.Hex() }

// ChecksumHex renders a as an EIP-55 mixed-case checksum address: each hex
// digit of the lower-case address is upper-cased wherever the matching
// nibble of the Keccak-256 hash of that lower-case hex string is >= 8.
// Diagnostics quoting an address literal in source (e.g. a mismatched
// checksum warning) use this form rather than the plain lower-case Hex.
func (a Address) ChecksumHex() string {
	lower := a.Hex()[2:]
	hash := crypto.Keccak256([]byte(lower))

	out := make([]byte, 2+len(lower))
	copy(out, "0x")
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c >= 'a' && c <= 'f' {
			nibble := hash[i/2]
			if i%2 == 0 {
				nibble >>= 4
			} else {
				nibble &= 0x0f
			}
			if nibble >= 8 {
				c -= 'a' - 'A'
			}
		}
		out[2+i] = c
	}
	return string(out)
}
