package core

import "testing"

// Scenario (d), spec.md §8: Selector("transfer", [address, uint256]) ==
// 0xa9059cbb, the well-known ERC20 transfer selector.
func TestSelectorTransfer(t *testing.T) {
	got := Selector("transfer", []Type{AddressType(false), UintType(256)})
	want := [4]byte{0xa9, 0x05, 0x9c, 0xbb}
	if got != want {
		t.Fatalf("Selector(transfer) = %x, want %x", got, want)
	}
}

func TestCanonicalSignature(t *testing.T) {
	sig := CanonicalSignature("approve", []Type{AddressType(false), UintType(256)})
	if sig != "approve(address,uint256)" {
		t.Fatalf("CanonicalSignature = %q", sig)
	}
}

func TestAssignSelectorSkipsConstructorAndInternal(t *testing.T) {
	ctor := Function{Name: "Token", IsConstructor: true, Visibility: VisPublic}
	AssignSelector(&ctor)
	if ctor.HasSelector {
		t.Fatalf("constructor should not receive a selector")
	}

	internalFn := Function{Name: "helper", Visibility: VisInternal}
	AssignSelector(&internalFn)
	if internalFn.HasSelector {
		t.Fatalf("internal function should not receive a selector")
	}

	externalFn := Function{Name: "transfer", Visibility: VisExternal,
		Params: []Param{{Ty: AddressType(false)}, {Ty: UintType(256)}}}
	AssignSelector(&externalFn)
	if !externalFn.HasSelector {
		t.Fatalf("external function should receive a selector")
	}
}
