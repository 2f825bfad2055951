package core

import "testing"

func TestCoerceIntWidening(t *testing.T) {
	ctx := CoercionContext{}
	if k := Coerce(IntType(8), IntType(256), ctx); k != CoercionImplicit {
		t.Fatalf("int8 -> int256 = %v, want implicit", k)
	}
	if k := Coerce(IntType(256), IntType(8), ctx); k != CoercionExplicit {
		t.Fatalf("int256 -> int8 = %v, want explicit", k)
	}
}

func TestCoerceUintToIntAlwaysExplicit(t *testing.T) {
	ctx := CoercionContext{}
	if k := Coerce(UintType(256), IntType(256), ctx); k != CoercionExplicit {
		t.Fatalf("uint256 -> int256 = %v, want explicit (signed/unsigned mixing)", k)
	}
}

func TestCoerceIntToUintAlwaysExplicit(t *testing.T) {
	ctx := CoercionContext{}
	if k := Coerce(IntType(256), UintType(256), ctx); k != CoercionExplicit {
		t.Fatalf("int256 -> uint256 = %v, want explicit (signed/unsigned mixing)", k)
	}
	if k := Coerce(IntType(8), UintType(256), ctx); k != CoercionExplicit {
		t.Fatalf("int8 -> uint256 = %v, want explicit even when widening", k)
	}
}

func TestCoerceBytesNNeverEqualsUint(t *testing.T) {
	b32 := BytesNType(32)
	u256 := UintType(256)
	if b32.Equal(u256) {
		t.Fatalf("Bytes(32) must never equal Uint(256) despite matching bit width")
	}
}

func TestCoerceAddressPayability(t *testing.T) {
	ctx := CoercionContext{}
	if k := Coerce(AddressType(true), AddressType(false), ctx); k != CoercionImplicit {
		t.Fatalf("payable -> non-payable = %v, want implicit", k)
	}
	if k := Coerce(AddressType(false), AddressType(true), ctx); k != CoercionExplicit {
		t.Fatalf("non-payable -> payable = %v, want explicit", k)
	}
}

func TestCoerceContractDerivation(t *testing.T) {
	ns := NewNamespace(TargetEVMEwasm)
	ns.Contracts = []Contract{{Name: "Base"}, {Name: "Derived", Linearization: []int{1, 0}}}
	ctx := CoercionContext{Namespace: ns}
	if k := Coerce(ContractType(1), ContractType(0), ctx); k != CoercionImplicit {
		t.Fatalf("Derived -> Base = %v, want implicit", k)
	}
	if k := Coerce(ContractType(0), ContractType(1), ctx); k != CoercionExplicit {
		t.Fatalf("Base -> Derived = %v, want explicit", k)
	}
}
