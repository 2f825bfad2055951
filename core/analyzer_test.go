package core

import (
	"math/big"
	"testing"
)

// Scenario (b), spec.md §8: a function declared pure that writes
// storage is an error, not merely a warning, since reclassifying its
// body as pure would be unsound.
func TestInferMutabilityRejectsPureWithStorageWrite(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	fn := &Function{
		Name: "setX", ContractIdx: 0, Mutability: MutPure,
		Body: []Statement{
			{Kind: StmtExpression, Expr: &Expression{Kind: ExprNumberLiteral, NumberValue: big.NewInt(0)}},
		},
	}
	fn.Cfg = &ControlFlowGraph{
		Blocks: []BasicBlock{{
			Name: "entry",
			Instr: []Instr{
				{Kind: InstrSetStorage, StorageTy: UintType(256)},
				{Kind: InstrReturn},
			},
		}},
	}

	ns.InferMutability(fn)
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for a pure function writing storage")
	}
}

func TestInferMutabilitySuggestsRestriction(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	fn := &Function{Name: "noop", Mutability: MutPayable}
	fn.Cfg = &ControlFlowGraph{
		Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{{Kind: InstrReturn}}}},
	}
	ns.InferMutability(fn)

	found := false
	for _, d := range ns.Diagnostics.All() {
		if d.Level == Warning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a 'can be restricted' warning for an over-permissive declaration")
	}
	if ns.Diagnostics.HasErrors() {
		t.Fatalf("a looser-than-required declaration must not be an error")
	}
}

func TestCheckReachabilityMarksCodeAfterReturn(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	stmts := []Statement{
		{Kind: StmtReturn},
		{Kind: StmtExpression},
	}
	ns.CheckReachability(stmts)
	if stmts[1].Unreachable != true {
		t.Fatalf("statement after return should be marked unreachable")
	}
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("unreachable code must be reported as an error, not a warning")
	}
	if len(ns.Diagnostics.All()) != 1 {
		t.Fatalf("expected exactly one unreachable-code diagnostic, got %d", len(ns.Diagnostics.All()))
	}
}

// A function that only reads callvalue via inline assembly requires the
// Payable tier even though its CFG never touches storage — the sole way
// this IR observes msg.value (spec.md §4.6).
func TestInferMutabilityRaisesPayableFromYulCallvalue(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	fn := &Function{Name: "deposit", Mutability: MutNonpayable, YulReadsCallValue: true}
	fn.Cfg = &ControlFlowGraph{
		Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{{Kind: InstrReturn}}}},
	}

	ns.InferMutability(fn)
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected an error: declared nonpayable but the body reads callvalue via assembly")
	}
}

// A function declared pure that only writes state through inline
// assembly (no core.Instr storage write) must still be rejected.
func TestInferMutabilityRejectsPureWithYulStorageWrite(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	fn := &Function{Name: "poke", Mutability: MutPure, YulWritesState: true}
	fn.Cfg = &ControlFlowGraph{
		Blocks: []BasicBlock{{Name: "entry", Instr: []Instr{{Kind: InstrReturn}}}},
	}

	ns.InferMutability(fn)
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for a pure function whose assembly block writes state")
	}
}

func TestResolveCallPicksUniqueOverload(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	ns.Functions = []Function{
		{Name: "f", Params: []Param{{Ty: UintType(8)}}},
		{Name: "f", Params: []Param{{Ty: UintType(256)}}},
	}
	candidates := []OverloadEntry{{Idx: 0}, {Idx: 1}}
	args := []Expression{{Kind: ExprNumberLiteral, Ty: RationalType(), NumberValue: big.NewInt(0)}}

	// A Uint(256)-typed argument only implicitly widens from the
	// Uint(8) overload's direction, not the other way: Coerce requires
	// an explicit cast to narrow 256 bits down to 8, so only the
	// Uint(256) candidate (index 1) qualifies.
	args[0].Ty = UintType(256)
	idx, ok := ns.ResolveCall(Implicit(), candidates, args)
	if !ok || idx != 1 {
		t.Fatalf("ResolveCall = (%d, %v), want (1, true)", idx, ok)
	}
}
