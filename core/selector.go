package core

import (
	"strings"

	"golang.org/x/crypto/sha3"
)

// selector.go computes the 4-byte function selector spec.md §4.3
// requires: the first four bytes of the Keccak-256 hash of the
// function's canonical signature "name(type1,type2,...)". Grounded on
// the teacher's own selector-style helpers in access_control.go and
// mirroring go-ethereum's crypto.Keccak256 entry point (see DESIGN.md).

// Selector computes the function selector for name applied to params.
// Scenario (d), spec.md §8: Selector("transfer", [address, uint256])
// == [0xa9, 0x05, 0x9c, 0xbb].
func Selector(name string, params []Type) [4]byte {
	sig := CanonicalSignature(name, params)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	sum := h.Sum(nil)
	var out [4]byte
	copy(out[:], sum[:4])
	return out
}

// CanonicalSignature renders the "name(type1,type2)" form selector
// computation and ABI encoding both key off.
func CanonicalSignature(name string, params []Type) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.CanonicalName())
	}
	b.WriteByte(')')
	return b.String()
}

// AssignSelector computes and stores fn's selector, skipping
// constructors and internal/private functions which have none
// (spec.md §4.3).
func AssignSelector(fn *Function) {
	if fn.IsConstructor || fn.Visibility == VisInternal || fn.Visibility == VisPrivate {
		return
	}
	params := make([]Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Ty
	}
	fn.Selector = Selector(fn.Name, params)
	fn.HasSelector = true
}
