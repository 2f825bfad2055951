package core

import "testing"

func TestAddSymbolRejectsDuplicateVariable(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	scope := NewScope(nil)
	loc1 := NewFileLoc(0, 1, 2)
	loc2 := NewFileLoc(0, 10, 12)

	if ok := ns.AddSymbol(scope, Identifier{Name: "x", Loc: loc1}, Symbol{Kind: SymVariable, Loc: loc1, Idx: 0}); !ok {
		t.Fatalf("first declaration of x should succeed")
	}
	if ok := ns.AddSymbol(scope, Identifier{Name: "x", Loc: loc2}, Symbol{Kind: SymVariable, Loc: loc2, Idx: 1}); ok {
		t.Fatalf("redeclaration of x should fail")
	}
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected a duplicate-declaration diagnostic")
	}
}

func TestAddSymbolAggregatesFunctionOverloads(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	scope := NewScope(nil)
	loc1 := NewFileLoc(0, 1, 2)
	loc2 := NewFileLoc(0, 10, 12)

	ns.AddSymbol(scope, Identifier{Name: "f", Loc: loc1}, Symbol{Kind: SymFunction, Loc: loc1, Overloads: []OverloadEntry{{Loc: loc1, Idx: 0}}})
	ok := ns.AddSymbol(scope, Identifier{Name: "f", Loc: loc2}, Symbol{Kind: SymFunction, Loc: loc2, Overloads: []OverloadEntry{{Loc: loc2, Idx: 1}}})
	if !ok {
		t.Fatalf("second overload of f should merge, not conflict")
	}
	if ns.Diagnostics.HasErrors() {
		t.Fatalf("overload aggregation should not raise a diagnostic")
	}
	overloads := ns.ResolveFunc(scope, Identifier{Name: "f"})
	if len(overloads) != 2 {
		t.Fatalf("expected 2 overloads, got %d", len(overloads))
	}
}

func TestAddSymbolFunctionVsVariableConflicts(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	scope := NewScope(nil)
	loc1 := NewFileLoc(0, 1, 2)
	loc2 := NewFileLoc(0, 10, 12)

	ns.AddSymbol(scope, Identifier{Name: "g", Loc: loc1}, Symbol{Kind: SymFunction, Loc: loc1, Overloads: []OverloadEntry{{Loc: loc1, Idx: 0}}})
	ok := ns.AddSymbol(scope, Identifier{Name: "g", Loc: loc2}, Symbol{Kind: SymVariable, Loc: loc2, Idx: 0})
	if ok {
		t.Fatalf("a variable named g should conflict with the function g")
	}
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected a duplicate-declaration diagnostic")
	}
}

func TestResolveVarRejectsNonVariableSymbol(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	scope := NewScope(nil)
	loc := NewFileLoc(0, 1, 2)
	ns.AddSymbol(scope, Identifier{Name: "MyEnum", Loc: loc}, Symbol{Kind: SymEnum, Loc: loc, Idx: 0})

	if _, ok := ns.ResolveVar(scope, Identifier{Name: "MyEnum", Loc: loc}); ok {
		t.Fatalf("an enum name should not resolve as a variable")
	}
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected a diagnostic for the misuse")
	}
}

func TestResolveVarReportsUndeclared(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	scope := NewScope(nil)
	if _, ok := ns.ResolveVar(scope, Identifier{Name: "nope", Loc: Loc{}}); ok {
		t.Fatalf("undeclared name should not resolve")
	}
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected a not-declared diagnostic")
	}
}

func TestCheckShadowingWarnsOnOuterBinding(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	outer := NewScope(nil)
	loc := NewFileLoc(0, 1, 2)
	ns.AddSymbol(outer, Identifier{Name: "x", Loc: loc}, Symbol{Kind: SymVariable, Loc: loc, Idx: 0})

	inner := NewScope(outer)
	ns.CheckShadowing(inner, Identifier{Name: "x", Loc: loc})

	all := ns.Diagnostics.All()
	if len(all) != 1 || all[0].Level != Warning {
		t.Fatalf("expected exactly one warning diagnostic, got %+v", all)
	}
}

func TestCheckShadowingSilentAtFileScope(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	fileScope := NewScope(nil)
	ns.CheckShadowing(fileScope, Identifier{Name: "x", Loc: Loc{}})
	if ns.Diagnostics.HasErrors() || len(ns.Diagnostics.All()) != 0 {
		t.Fatalf("the outermost scope has no parent to shadow")
	}
}
