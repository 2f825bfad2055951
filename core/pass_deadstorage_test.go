package core

import "testing"

func TestEliminateDeadStorageRedundantWrite(t *testing.T) {
	slot0 := litU256(0)
	val1 := litU256(1)
	val2 := litU256(2)
	cfg := &ControlFlowGraph{Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{
		{Kind: InstrSetStorage, Slot: &slot0, ValueExpr: &val1},
		{Kind: InstrSetStorage, Slot: &slot0, ValueExpr: &val2},
		{Kind: InstrReturn},
	}}}}

	n := EliminateDeadStorage(cfg)
	if n != 1 {
		t.Fatalf("expected 1 elimination, got %d", n)
	}
	if len(cfg.Blocks[0].Instr) != 2 {
		t.Fatalf("expected the first redundant write to be removed, got %d instrs", len(cfg.Blocks[0].Instr))
	}
}

func TestEliminateDeadStorageKeepsReadWrite(t *testing.T) {
	slot0 := litU256(0)
	val1 := litU256(1)
	readExpr := Expression{Kind: ExprStorageLoad, Ty: UintType(256), SlotExpr: &slot0}
	cfg := &ControlFlowGraph{Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{
		{Kind: InstrSetStorage, Slot: &slot0, ValueExpr: &val1},
		{Kind: InstrEval, Expr: &readExpr},
		{Kind: InstrReturn},
	}}}}

	n := EliminateDeadStorage(cfg)
	if n != 0 {
		t.Fatalf("expected no elimination when the slot is read first, got %d", n)
	}
	if len(cfg.Blocks[0].Instr) != 3 {
		t.Fatalf("expected all instructions kept, got %d", len(cfg.Blocks[0].Instr))
	}
}

// An external call between two writes to the same literal slot may
// itself read that slot via the callee; the first write must survive.
func TestEliminateDeadStorageKeepsWriteBeforeExternalCall(t *testing.T) {
	slot0 := litU256(0)
	val1 := litU256(1)
	val2 := litU256(2)
	cfg := &ControlFlowGraph{Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{
		{Kind: InstrSetStorage, Slot: &slot0, ValueExpr: &val1},
		{Kind: InstrExternalCall, SuccessVar: 0, HasSuccess: true, AddressExpr: &val1, CallKind: CallRegular},
		{Kind: InstrSetStorage, Slot: &slot0, ValueExpr: &val2},
		{Kind: InstrReturn},
	}}}}

	n := EliminateDeadStorage(cfg)
	if n != 0 {
		t.Fatalf("expected no elimination across an intervening external call, got %d", n)
	}
	if len(cfg.Blocks[0].Instr) != 4 {
		t.Fatalf("expected all instructions kept, got %d", len(cfg.Blocks[0].Instr))
	}
}
