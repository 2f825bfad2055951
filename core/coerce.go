package core

import "math/big"

// CoercionKind classifies how a value of one type may flow into another,
// matching the matrix in spec.md §4.2.
type CoercionKind uint8

const (
	// CoercionNone means the conversion is never allowed.
	CoercionNone CoercionKind = iota
	// CoercionIdentity means the two types are already the same.
	CoercionIdentity
	// CoercionImplicit means the conversion may happen without a cast.
	CoercionImplicit
	// CoercionExplicit means the conversion requires an explicit cast.
	CoercionExplicit
)

// CoercionContext carries the information Coerce needs beyond the two
// types themselves: for contract types, the active Namespace so
// derived/base relationships can be consulted. SourceIsLiteral records
// whether the source is a literal; Coerce does not read it.
type CoercionContext struct {
	Namespace     *Namespace
	SourceIsLiteral bool
}

// Coerce reports whether, and how, a value of type `from` may convert to
// type `to`, following the non-literal rows of the table in spec.md
// §4.2; signed and unsigned mixing always requires an explicit cast.
// Literals are not handled here: a Rational (untyped literal) source
// converts to nothing but itself, and whether a literal value fits a
// sized destination is decided by FitsLiteral.
func Coerce(from, to Type, ctx CoercionContext) CoercionKind {
	if from.Equal(to) {
		return CoercionIdentity
	}

	switch from.Kind {
	case KindInt:
		switch to.Kind {
		case KindInt:
			if to.Bits >= from.Bits {
				return CoercionImplicit
			}
			return CoercionExplicit
		case KindUint:
			// Int -> Uint always requires an explicit cast: signed/unsigned
			// mixing is never implicit (spec.md §4.2).
			return CoercionExplicit
		}
		return CoercionNone

	case KindUint:
		switch to.Kind {
		case KindUint:
			if to.Bits >= from.Bits {
				return CoercionImplicit
			}
			return CoercionExplicit
		case KindInt:
			// Uint -> Int always requires an explicit cast: signed/unsigned
			// mixing is never implicit (spec.md §4.2).
			return CoercionExplicit
		}
		return CoercionNone

	case KindBytesN:
		if to.Kind == KindBytesN {
			if to.BytesN == from.BytesN {
				return CoercionImplicit
			}
			return CoercionExplicit
		}
		return CoercionNone

	case KindAddress:
		if to.Kind == KindAddress {
			if from.AddressPayable == to.AddressPayable {
				return CoercionIdentity
			}
			if from.AddressPayable && !to.AddressPayable {
				return CoercionImplicit // payable -> non-payable
			}
			return CoercionExplicit // non-payable -> payable
		}
		if to.Kind == KindContract {
			return CoercionExplicit
		}
		return CoercionNone

	case KindContract:
		if to.Kind == KindAddress {
			return CoercionExplicit
		}
		if to.Kind == KindContract {
			if from.ContractIdx == to.ContractIdx {
				return CoercionIdentity
			}
			if ctx.Namespace != nil && ctx.Namespace.IsDerivedFrom(from.ContractIdx, to.ContractIdx) {
				return CoercionImplicit
			}
			return CoercionExplicit
		}
		return CoercionNone
	}

	return CoercionNone
}

// FitsLiteral reports whether the arbitrary-precision literal lit can be
// assigned to target without overflow, per the "Literal int" row of the
// coercion matrix. Negative literals assigned to an unsigned destination
// are rejected outright (spec.md §9, open question #2): downstream casts
// like uint8(-1) remain legal and wrap via TruncateLiteral instead.
func FitsLiteral(lit *big.Int, target Type) bool {
	switch target.Kind {
	case KindInt:
		min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(target.Bits-1)))
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(target.Bits-1)), big.NewInt(1))
		return lit.Cmp(min) >= 0 && lit.Cmp(max) <= 0
	case KindUint:
		if lit.Sign() < 0 {
			return false
		}
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(target.Bits)), big.NewInt(1))
		return lit.Cmp(max) <= 0
	case KindAddress:
		if lit.Sign() < 0 {
			return false
		}
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 160), big.NewInt(1))
		return lit.Cmp(max) <= 0
	case KindBytesN:
		if lit.Sign() < 0 {
			return false
		}
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(8*target.BytesN)), big.NewInt(1))
		return lit.Cmp(max) <= 0
	default:
		return false
	}
}

// TruncateLiteral narrows lit into the two's-complement representation a
// sized destination would hold, used for explicit casts such as
// uint8(-1) == 0xff.
func TruncateLiteral(lit *big.Int, bits int) *big.Int {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits)), big.NewInt(1))
	return new(big.Int).And(lit, mask)
}

// HexDigitsRequired returns the number of hex digits a Bytes(n) literal
// must carry (2n, per spec.md §4.2).
func HexDigitsRequired(n int) int { return 2 * n }
