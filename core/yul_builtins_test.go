package core

import "testing"

func TestResolveYulBlockRejectsWrongArity(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	block := []YulStatement{
		{Kind: YulExpressionStmt, ExprStmt: &YulExpr{Kind: YulCall, Name: "add", Args: []YulExpr{{Kind: YulLiteral, LiteralValue: 1}}}},
	}
	ResolveYulBlock(&ns.Diagnostics, ns.Target, nil, block)
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected an arity error for add() called with one argument")
	}
}

func TestResolveYulBlockRejectsUnavailableBuiltin(t *testing.T) {
	ns := NewNamespace(TargetSolanaBPF)
	block := []YulStatement{
		{Kind: YulExpressionStmt, ExprStmt: &YulExpr{Kind: YulCall, Name: "sstore", Args: []YulExpr{
			{Kind: YulLiteral, LiteralValue: 0}, {Kind: YulLiteral, LiteralValue: 1},
		}}},
	}
	ResolveYulBlock(&ns.Diagnostics, ns.Target, nil, block)
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected sstore to be rejected on Solana-BPF")
	}
}

func TestResolveYulBlockAcceptsUserFunction(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	block := []YulStatement{
		{Kind: YulExpressionStmt, ExprStmt: &YulExpr{Kind: YulCall, Name: "myHelper"}},
	}
	ResolveYulBlock(&ns.Diagnostics, ns.Target, map[string]int{"myHelper": 0}, block)
	if ns.Diagnostics.HasErrors() {
		t.Fatalf("user-defined function should not be checked against the builtin catalogue")
	}
}

func TestLookupYulBuiltinSstoreWritesState(t *testing.T) {
	b, ok := LookupYulBuiltin("sstore")
	if !ok {
		t.Fatalf("sstore should be in the catalogue")
	}
	if !b.WritesState {
		t.Fatalf("sstore must be marked as writing state")
	}
	if b.AvailableOn(TargetSolanaBPF) {
		t.Fatalf("sstore should not be available on Solana-BPF")
	}
}
