package core

import "math/big"

// ExprKind tags the variant carried by an Expression. Arithmetic variants
// split by signedness (spec.md §3.5) so later passes never need to
// re-derive the operand type from context.
type ExprKind uint8

const (
	ExprBoolLiteral ExprKind = iota
	ExprNumberLiteral // arbitrary-precision integer/rational literal
	ExprBytesLiteral
	ExprStringLiteral
	ExprAddressLiteral
	ExprVariable
	ExprStorageVariable
	ExprStorageLoad
	ExprStorageBytesSubscript

	ExprAdd
	ExprSubtract
	ExprMultiply
	ExprSDivide
	ExprUDivide
	ExprSModulo
	ExprUModulo
	ExprPower
	ExprBitwiseAnd
	ExprBitwiseOr
	ExprBitwiseXor
	ExprShiftLeft
	ExprShiftRight // arithmetic or logical depending on operand signedness
	ExprComplement
	ExprUnaryMinus
	ExprNot

	ExprSLess
	ExprULess
	ExprSMore
	ExprUMore
	ExprSLessEqual
	ExprULessEqual
	ExprSMoreEqual
	ExprUMoreEqual
	ExprEqual
	ExprNotEqual
	ExprAnd // logical &&
	ExprOr  // logical ||

	ExprZeroExt
	ExprSignExt
	ExprTrunc
	ExprCast

	ExprArraySubscript
	ExprStructMember
	ExprFunctionCall
	ExprExternalFunctionCall
	ExprNamedArgList
	ExprTernary

	// ExprReturnDataSelector extracts the first 4 bytes (the ABI-encoded
	// revert selector) from Operand, a bytes-typed expression holding raw
	// external-call return data. Used only by the try/catch lowering in
	// cfgbuilder.go to dispatch on Error(string) vs Panic(uint256).
	ExprReturnDataSelector
)

// Expression is a node of the typed expression tree. Every leaf and
// interior node carries a Loc and a resolved Type (spec.md §3.5); the
// Kind selects which of the payload fields below are meaningful.
type Expression struct {
	Kind ExprKind
	Loc  Loc
	Ty   Type

	// Literal payload.
	NumberValue *big.Int
	RationalValue *big.Rat
	BoolValue   bool
	BytesValue  []byte
	StringValue string
	AddressValue Address

	// Variable / storage payload.
	VarIndex   int
	SlotExpr   *Expression // subexpression of integer type for storage accesses
	ByteOffset *Expression

	// Operator payload.
	Left  *Expression
	Right *Expression
	Cond  *Expression // ternary condition, also reused for And/Or short-circuit

	// Conversion payload.
	Operand *Expression

	// Aggregate-access payload.
	Array *Expression
	Index *Expression
	Base  *Expression
	Member string
	FieldIdx int

	// Call payload.
	FuncIdx   int
	Args      []Expression
	NamedArgNames []string
}

// NewNumberLiteral builds an untyped integer-literal expression; its Type
// is filled in once a destination context is known (spec.md §3.2:
// literals have no fixed width of their own until narrowed).
func NewNumberLiteral(loc Loc, v *big.Int) Expression {
	return Expression{Kind: ExprNumberLiteral, Loc: loc, Ty: RationalType(), NumberValue: v}
}

// IsLiteral reports whether e is one of the literal expression kinds —
// used by Coerce's CoercionContext.SourceIsLiteral and by the
// constant-folding pass to recognize already-folded operands.
func (e *Expression) IsLiteral() bool {
	switch e.Kind {
	case ExprBoolLiteral, ExprNumberLiteral, ExprBytesLiteral, ExprStringLiteral, ExprAddressLiteral:
		return true
	default:
		return false
	}
}

// signedVariant picks the signed or unsigned expression kind for a binary
// arithmetic/comparison operator based on the shared operand type,
// implementing the split spec.md §3.5 requires.
func signedVariant(signed bool, signedKind, unsignedKind ExprKind) ExprKind {
	if signed {
		return signedKind
	}
	return unsignedKind
}

// NewDivide builds a Divide expression, selecting SDivide/UDivide from
// the operand type's signedness.
func NewDivide(loc Loc, ty Type, l, r Expression) Expression {
	k := signedVariant(ty.IsSigned(), ExprSDivide, ExprUDivide)
	return Expression{Kind: k, Loc: loc, Ty: ty, Left: &l, Right: &r}
}

// NewModulo builds a Modulo expression, selecting SModulo/UModulo.
func NewModulo(loc Loc, ty Type, l, r Expression) Expression {
	k := signedVariant(ty.IsSigned(), ExprSModulo, ExprUModulo)
	return Expression{Kind: k, Loc: loc, Ty: ty, Left: &l, Right: &r}
}

// NewLess builds a Less-than comparison, selecting SLess/ULess from the
// *operand* type ty (the result type of the expression itself is always
// Bool).
func NewLess(loc Loc, ty Type, l, r Expression) Expression {
	k := signedVariant(ty.IsSigned(), ExprSLess, ExprULess)
	return Expression{Kind: k, Loc: loc, Ty: BoolType(), Left: &l, Right: &r}
}
