package core

import (
	"math/big"

	"github.com/holiman/uint256"
)

// pass_constfold.go implements spec.md §4.7's constant-folding pass:
// arbitrary-precision evaluation of operations over two literal
// operands, narrowed to the result type's width afterward. Division and
// modulo by a literal zero are never folded to a trap value silently —
// they are rewritten into an unconditional AssertFailure instruction so
// the runtime behavior (revert) is preserved exactly.

// FoldConstants rewrites every Eval/Set instruction's expression tree in
// cfg, replacing binary operations over two literal operands with a
// single folded NumberLiteral, and reports how many instructions were
// rewritten. It is safe to run to a fixpoint: folding never introduces
// a new foldable pair where one didn't already exist one level up,
// since RunPasses re-visits after every other pass's rewrite.
func FoldConstants(ns *Namespace, cfg *ControlFlowGraph) int {
	count := 0
	for bi := range cfg.Blocks {
		bb := &cfg.Blocks[bi]
		for ii := range bb.Instr {
			ins := &bb.Instr[ii]
			if ins.Expr != nil {
				if folded, trapped := foldExpr(ins.Expr); folded != nil {
					*ins.Expr = *folded
					count++
				} else if trapped {
					// The trap is a terminator: everything after it in
					// the block is dropped so the block stays well formed.
					*ins = Instr{Kind: InstrAssertFailure, Loc: ins.Loc}
					bb.Instr = bb.Instr[:ii+1]
					break
				}
			}
			for vi := range ins.Values {
				if folded, _ := foldExpr(&ins.Values[vi]); folded != nil {
					ins.Values[vi] = *folded
					count++
				}
			}
		}
	}
	return count
}

// foldExpr attempts to fold e in place, recursing into subexpressions
// first (bottom-up, so "2 + 3 * 4" folds its multiply before its add).
// It returns the folded replacement, or trapped=true if the expression
// is a division/modulo by a literal zero that must become a runtime
// trap instead of a value.
func foldExpr(e *Expression) (folded *Expression, trapped bool) {
	if e == nil {
		return nil, false
	}
	for _, sub := range []**Expression{&e.Left, &e.Right, &e.Operand} {
		if *sub == nil {
			continue
		}
		if f, t := foldExpr(*sub); f != nil {
			**sub = *f
		} else if t {
			return nil, true
		}
	}
	if e.IsLiteral() {
		return nil, false
	}
	if e.Left == nil || e.Right == nil || e.Left.Kind != ExprNumberLiteral || e.Right.Kind != ExprNumberLiteral {
		return nil, false
	}

	l, r := e.Left.NumberValue, e.Right.NumberValue

	switch e.Kind {
	case ExprSLess, ExprULess, ExprSMore, ExprUMore,
		ExprSLessEqual, ExprULessEqual, ExprSMoreEqual, ExprUMoreEqual,
		ExprEqual, ExprNotEqual:
		return foldComparison(e, l, r), false
	}

	var result *big.Int

	switch e.Kind {
	case ExprAdd:
		result = new(big.Int).Add(l, r)
	case ExprSubtract:
		result = new(big.Int).Sub(l, r)
	case ExprMultiply:
		result = new(big.Int).Mul(l, r)
	case ExprSDivide, ExprUDivide:
		if r.Sign() == 0 {
			return nil, true
		}
		result = new(big.Int).Quo(l, r)
	case ExprSModulo, ExprUModulo:
		if r.Sign() == 0 {
			return nil, true
		}
		result = new(big.Int).Rem(l, r)
	case ExprPower:
		if !r.IsUint64() {
			return nil, false
		}
		result = new(big.Int).Exp(l, r, nil)
	case ExprBitwiseAnd:
		result = new(big.Int).And(l, r)
	case ExprBitwiseOr:
		result = new(big.Int).Or(l, r)
	case ExprBitwiseXor:
		result = new(big.Int).Xor(l, r)
	case ExprShiftLeft:
		if !r.IsUint64() {
			return nil, false
		}
		result = new(big.Int).Lsh(l, uint(r.Uint64()))
	case ExprShiftRight:
		if !r.IsUint64() {
			return nil, false
		}
		result = new(big.Int).Rsh(l, uint(r.Uint64()))
	default:
		return nil, false
	}

	if e.Ty.Kind == KindUint || e.Ty.Kind == KindInt {
		result = narrowToWidth(result, e.Ty)
	}

	out := NewNumberLiteral(e.Loc, result)
	out.Ty = e.Ty
	return &out, false
}

// foldComparison evaluates one of the eight ordering operators or
// (Not)Equal over two literal operands, folding to a Bool literal. The
// signed/unsigned split baked into e.Kind by NewLess and friends is
// irrelevant here: l and r are already the literals' true arbitrary-
// precision values, so a plain big.Int comparison is correct regardless
// of which variant was selected at typing time.
func foldComparison(e *Expression, l, r *big.Int) *Expression {
	cmp := l.Cmp(r)
	var v bool
	switch e.Kind {
	case ExprSLess, ExprULess:
		v = cmp < 0
	case ExprSMore, ExprUMore:
		v = cmp > 0
	case ExprSLessEqual, ExprULessEqual:
		v = cmp <= 0
	case ExprSMoreEqual, ExprUMoreEqual:
		v = cmp >= 0
	case ExprEqual:
		v = cmp == 0
	case ExprNotEqual:
		v = cmp != 0
	}
	return &Expression{Kind: ExprBoolLiteral, Loc: e.Loc, Ty: BoolType(), BoolValue: v}
}

// narrowToWidth reduces result into the two's-complement range ty
// describes, via uint256.Int so the reduction matches the same 256-bit
// machine arithmetic the target backends use instead of drifting from
// it under arbitrary precision.
func narrowToWidth(result *big.Int, ty Type) *big.Int {
	u, overflow := uint256.FromBig(new(big.Int).And(result, maxUint256Mask()))
	if overflow {
		u = new(uint256.Int)
	}
	masked := TruncateLiteral(u.ToBig(), ty.Bits)
	if ty.Kind == KindInt {
		half := new(big.Int).Lsh(big.NewInt(1), uint(ty.Bits-1))
		if masked.Cmp(half) >= 0 {
			full := new(big.Int).Lsh(big.NewInt(1), uint(ty.Bits))
			masked = new(big.Int).Sub(masked, full)
		}
	}
	return masked
}

func maxUint256Mask() *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
}
