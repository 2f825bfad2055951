package core

import (
	"reflect"
	"testing"
)

// Scenario (e), spec.md §8: a diamond inheritance graph D(B, C), B(A),
// C(A) linearizes to [D, B, C, A].
func TestLinearizeDiamond(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	ns.Contracts = []Contract{
		{Name: "A"},
		{Name: "B", Bases: nil},
		{Name: "C", Bases: nil},
		{Name: "D", Bases: nil},
	}
	aIdx, bIdx, cIdx, dIdx := 0, 1, 2, 3
	ns.Contracts[bIdx].Bases = []int{aIdx}
	ns.Contracts[cIdx].Bases = []int{aIdx}
	ns.Contracts[dIdx].Bases = []int{bIdx, cIdx}

	if !Linearize(ns, dIdx) {
		t.Fatalf("Linearize(D) failed: %v", ns.Diagnostics.All())
	}

	want := []int{dIdx, bIdx, cIdx, aIdx}
	got := ns.Contracts[dIdx].Linearization
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("linearization = %v, want %v", got, want)
	}
}

func TestLinearizeSingleBase(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	ns.Contracts = []Contract{{Name: "Base"}, {Name: "Derived"}}
	ns.Contracts[1].Bases = []int{0}

	if !Linearize(ns, 1) {
		t.Fatalf("Linearize failed: %v", ns.Diagnostics.All())
	}
	want := []int{1, 0}
	if got := ns.Contracts[1].Linearization; !reflect.DeepEqual(got, want) {
		t.Fatalf("linearization = %v, want %v", got, want)
	}
}
