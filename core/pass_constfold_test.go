package core

import (
	"math/big"
	"testing"
)

func litU256(v int64) Expression {
	e := NewNumberLiteral(Implicit(), big.NewInt(v))
	e.Ty = UintType(256)
	return e
}

func TestFoldConstantsAddition(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	l, r := litU256(2), litU256(3)
	add := Expression{Kind: ExprAdd, Ty: UintType(256), Left: &l, Right: &r}
	cfg := &ControlFlowGraph{Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{
		{Kind: InstrEval, Expr: &add},
		{Kind: InstrReturn},
	}}}}

	n := FoldConstants(ns, cfg)
	if n != 1 {
		t.Fatalf("expected 1 fold, got %d", n)
	}
	got := cfg.Blocks[0].Instr[0].Expr
	if got.Kind != ExprNumberLiteral || got.NumberValue.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("expected folded literal 5, got %+v", got)
	}
}

func TestFoldConstantsDivisionByZeroTraps(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	l, r := litU256(10), litU256(0)
	div := NewDivide(Implicit(), UintType(256), l, r)
	cfg := &ControlFlowGraph{Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{
		{Kind: InstrEval, Expr: &div},
		{Kind: InstrReturn},
	}}}}

	FoldConstants(ns, cfg)
	if cfg.Blocks[0].Instr[0].Kind != InstrAssertFailure {
		t.Fatalf("expected division by a literal zero to become an AssertFailure trap")
	}
}

// spec.md §4.7: folding covers comparison operators over two literals,
// not just arithmetic/bitwise ones.
func TestFoldConstantsComparison(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	l, r := litU256(2), litU256(3)
	less := NewLess(Implicit(), UintType(256), l, r)
	cfg := &ControlFlowGraph{Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{
		{Kind: InstrEval, Expr: &less},
		{Kind: InstrReturn},
	}}}}

	n := FoldConstants(ns, cfg)
	if n != 1 {
		t.Fatalf("expected 1 fold, got %d", n)
	}
	got := cfg.Blocks[0].Instr[0].Expr
	if got.Kind != ExprBoolLiteral || got.BoolValue != true {
		t.Fatalf("expected folded literal true, got %+v", got)
	}
}

func TestFoldConstantsEqualityFalse(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	l, r := litU256(2), litU256(3)
	eq := Expression{Kind: ExprEqual, Ty: BoolType(), Left: &l, Right: &r}
	cfg := &ControlFlowGraph{Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{
		{Kind: InstrEval, Expr: &eq},
		{Kind: InstrReturn},
	}}}}

	FoldConstants(ns, cfg)
	got := cfg.Blocks[0].Instr[0].Expr
	if got.Kind != ExprBoolLiteral || got.BoolValue != false {
		t.Fatalf("expected folded literal false, got %+v", got)
	}
}

// Scenario (a), spec.md §8: a literal that does not fit its destination
// width is rejected by FitsLiteral rather than silently wrapping.
func TestFitsLiteralRejectsOverflow(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 8) // 256, does not fit uint8
	if FitsLiteral(tooBig, UintType(8)) {
		t.Fatalf("256 should not fit into uint8")
	}
	if !FitsLiteral(big.NewInt(255), UintType(8)) {
		t.Fatalf("255 should fit into uint8")
	}
	if FitsLiteral(big.NewInt(-1), UintType(8)) {
		t.Fatalf("a negative literal must never fit an unsigned destination")
	}
}

func TestTruncateLiteralWraps(t *testing.T) {
	got := TruncateLiteral(big.NewInt(-1), 8)
	if got.Cmp(big.NewInt(0xff)) != 0 {
		t.Fatalf("TruncateLiteral(-1, 8) = %v, want 255", got)
	}
}
