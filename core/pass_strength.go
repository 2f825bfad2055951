package core

import "math/big"

// pass_strength.go implements spec.md §4.7's strength-reduction pass: a
// small set of algebraic identities rewritten into cheaper operations.
// Each rewrite is purely local (one expression node at a time) and
// reduceWalk rewrites operands before their parent, so e.g. "x * 1 + 0"
// reduces to x in a single walk (two rewrites) without this file needing
// to special-case the composition.

// ReduceStrength rewrites every Eval/Set/Return expression in cfg in
// place and reports how many rewrites were applied.
func ReduceStrength(cfg *ControlFlowGraph) int {
	count := 0
	visit := func(e *Expression) {
		n := reduceWalk(e)
		count += n
	}
	for bi := range cfg.Blocks {
		bb := &cfg.Blocks[bi]
		for ii := range bb.Instr {
			ins := &bb.Instr[ii]
			if ins.Expr != nil {
				visit(ins.Expr)
			}
			for vi := range ins.Values {
				visit(&ins.Values[vi])
			}
		}
	}
	return count
}

func reduceWalk(e *Expression) int {
	if e == nil {
		return 0
	}
	count := 0
	count += reduceWalk(e.Left)
	count += reduceWalk(e.Right)
	count += reduceWalk(e.Operand)

	if reduceNode(e) {
		count++
	}
	return count
}

// reduceNode applies the first matching identity to e and returns
// whether a rewrite happened. Rewrites replace e's Kind/operands in
// place rather than allocating a new node so callers holding a pointer
// to e keep seeing the reduced form.
func reduceNode(e *Expression) bool {
	switch e.Kind {
	case ExprMultiply:
		// k > 0: a factor of 1 (2^0) is elided below rather than
		// turned into a shift by zero.
		if k, ok := powerOfTwo(e.Right); ok && k > 0 {
			*e = Expression{Kind: ExprShiftLeft, Loc: e.Loc, Ty: e.Ty, Left: e.Left, Right: shiftAmount(e.Loc, k)}
			return true
		}
		if k, ok := powerOfTwo(e.Left); ok && k > 0 {
			*e = Expression{Kind: ExprShiftLeft, Loc: e.Loc, Ty: e.Ty, Left: e.Right, Right: shiftAmount(e.Loc, k)}
			return true
		}
		if isLiteralOne(e.Right) {
			*e = *e.Left
			return true
		}
		if isLiteralOne(e.Left) {
			*e = *e.Right
			return true
		}
		if isLiteralZero(e.Right) || isLiteralZero(e.Left) {
			lit := NewNumberLiteral(e.Loc, big.NewInt(0))
			lit.Ty = e.Ty
			*e = lit
			return true
		}

	case ExprUDivide, ExprSDivide:
		if k, ok := powerOfTwo(e.Right); ok && k > 0 && e.Kind == ExprUDivide {
			*e = Expression{Kind: ExprShiftRight, Loc: e.Loc, Ty: e.Ty, Left: e.Left, Right: shiftAmount(e.Loc, k)}
			return true
		}
		if isLiteralOne(e.Right) {
			*e = *e.Left
			return true
		}

	case ExprUModulo, ExprSModulo:
		if k, ok := powerOfTwo(e.Right); ok && e.Kind == ExprUModulo {
			mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(k)), big.NewInt(1))
			maskLit := NewNumberLiteral(e.Loc, mask)
			maskLit.Ty = e.Ty
			*e = Expression{Kind: ExprBitwiseAnd, Loc: e.Loc, Ty: e.Ty, Left: e.Left, Right: &maskLit}
			return true
		}

	case ExprAdd:
		if isLiteralZero(e.Right) {
			*e = *e.Left
			return true
		}
		if isLiteralZero(e.Left) {
			*e = *e.Right
			return true
		}

	case ExprSubtract:
		if isLiteralZero(e.Right) {
			*e = *e.Left
			return true
		}

	case ExprUnaryMinus:
		if e.Operand != nil && e.Operand.Kind == ExprUnaryMinus {
			*e = *e.Operand.Operand
			return true
		}

	case ExprNot:
		if e.Operand != nil && e.Operand.Kind == ExprNot {
			*e = *e.Operand.Operand
			return true
		}

	case ExprAnd:
		// Dead boolean short-circuit: `false && x` never evaluates x.
		if e.Left != nil && e.Left.Kind == ExprBoolLiteral && !e.Left.BoolValue {
			lit := Expression{Kind: ExprBoolLiteral, Loc: e.Loc, Ty: e.Ty, BoolValue: false}
			*e = lit
			return true
		}

	case ExprOr:
		if e.Left != nil && e.Left.Kind == ExprBoolLiteral && e.Left.BoolValue {
			lit := Expression{Kind: ExprBoolLiteral, Loc: e.Loc, Ty: e.Ty, BoolValue: true}
			*e = lit
			return true
		}
	}
	return false
}

// powerOfTwo reports whether e is a positive literal power of two and,
// if so, its exponent.
func powerOfTwo(e *Expression) (int, bool) {
	if e == nil || e.Kind != ExprNumberLiteral || e.NumberValue.Sign() <= 0 {
		return 0, false
	}
	v := e.NumberValue
	if v.BitLen() == 0 {
		return 0, false
	}
	// A positive power of two has exactly one set bit.
	bit := -1
	for i := 0; i < v.BitLen(); i++ {
		if v.Bit(i) == 1 {
			if bit != -1 {
				return 0, false
			}
			bit = i
		}
	}
	if bit < 0 {
		return 0, false
	}
	return bit, true
}

func shiftAmount(loc Loc, k int) *Expression {
	e := NewNumberLiteral(loc, big.NewInt(int64(k)))
	e.Ty = UintType(8)
	return &e
}

func isLiteralOne(e *Expression) bool {
	return e != nil && e.Kind == ExprNumberLiteral && e.NumberValue.Cmp(big.NewInt(1)) == 0
}

func isLiteralZero(e *Expression) bool {
	return e != nil && e.Kind == ExprNumberLiteral && e.NumberValue.Sign() == 0
}
