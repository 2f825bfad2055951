package core

import (
	"math/big"
	"testing"
)

func TestRunPassesReachesFixpoint(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	l, r := litU256(2), litU256(3)
	add := Expression{Kind: ExprAdd, Ty: UintType(256), Left: &l, Right: &r}
	cfg := &ControlFlowGraph{Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{
		{Kind: InstrEval, Expr: &add},
		{Kind: InstrReturn},
	}}}}
	ns.Functions = []Function{{Name: "f", Cfg: cfg}}

	RunPasses(ns, PassOptions{})

	got := cfg.Blocks[0].Instr[0].Expr
	if got.Kind != ExprNumberLiteral || got.NumberValue.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("expected the addition to be folded to a literal 5, got %+v", got)
	}
}

func TestRunPassesSkipsFunctionsWithoutCfg(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	ns.Functions = []Function{{Name: "unbuilt", Cfg: nil}}

	RunPasses(ns, PassOptions{}) // must not panic dereferencing a nil Cfg
}

func TestRunPassesInstrumentsOverflowBeforeFolding(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	x := Expression{Kind: ExprVariable, Ty: UintType(256), VarIndex: 0}
	one := litU256(1)
	add := Expression{Kind: ExprAdd, Ty: UintType(256), Left: &x, Right: &one}
	cfg := &ControlFlowGraph{Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{
		{Kind: InstrSet, ResultVar: 0, HasResult: true, Expr: &add},
		{Kind: InstrReturn},
	}}}}
	ns.Functions = []Function{{Name: "g", Cfg: cfg}}

	RunPasses(ns, PassOptions{OverflowChecks: true})

	if len(cfg.Blocks) < 3 {
		t.Fatalf("expected overflow instrumentation to split the block, got %d blocks", len(cfg.Blocks))
	}
	cfg.CheckWellFormed() // panics (Bug) if the split left the CFG malformed
}
