package core

import "testing"

func TestAssignAllSlotsContinuesFromBase(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	ns.Contracts = []Contract{
		{Name: "Base", Variables: []StateVariable{{Name: "a", Ty: UintType(256)}, {Name: "b", Ty: UintType(256)}}},
		{Name: "Derived", Variables: []StateVariable{{Name: "c", Ty: UintType(256)}}},
	}
	ns.Contracts[1].Bases = []int{0}
	Linearize(ns, 1)

	AssignAllSlots(ns, 0)
	AssignAllSlots(ns, 1)

	if ns.Contracts[0].Variables[0].Slot.Value != 0 || ns.Contracts[0].Variables[1].Slot.Value != 1 {
		t.Fatalf("Base slots not assigned 0,1: %+v", ns.Contracts[0].Variables)
	}
	if ns.Contracts[1].Variables[0].Slot.Value != 2 {
		t.Fatalf("Derived's own variable should start at slot 2, got %d", ns.Contracts[1].Variables[0].Slot.Value)
	}
}

func TestAssignSlotsSkipsConstantsAndImmutables(t *testing.T) {
	c := &Contract{Variables: []StateVariable{
		{Name: "k", Ty: UintType(256), Constant: true},
		{Name: "x", Ty: UintType(256)},
		{Name: "im", Ty: UintType(256), Immutable: true},
		{Name: "y", Ty: UintType(256)},
	}}
	AssignSlots(c)
	if c.Variables[0].Slot != nil || c.Variables[2].Slot != nil {
		t.Fatalf("constants/immutables must not receive a slot")
	}
	if c.Variables[1].Slot.Value != 0 || c.Variables[3].Slot.Value != 1 {
		t.Fatalf("storage variables should be densely numbered, got %+v / %+v", c.Variables[1].Slot, c.Variables[3].Slot)
	}
}

func TestCheckConstructorMutabilityRejectsMixedPayability(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	ns.Functions = []Function{
		{Name: "Base", ContractIdx: 0, IsConstructor: true, Mutability: MutNonpayable},
		{Name: "Derived", ContractIdx: 1, IsConstructor: true, Mutability: MutPayable},
	}
	ns.Contracts = []Contract{
		{Name: "Base", Functions: []int{0}},
		{Name: "Derived", Functions: []int{1}, Bases: []int{0}},
	}
	Linearize(ns, 1)

	CheckConstructorMutability(ns, 1)
	if !ns.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for mixed payable/non-payable constructors")
	}
}
