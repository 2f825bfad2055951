package core

// contract.go assembles a fully linearized contract: storage slot
// assignment, override/virtual matching across the linearization, and
// the mixed-constructor-mutability check spec.md §9 resolves as an
// error (see DESIGN.md's open-question decisions).

// AssignSlots walks c's own declared (non-constant, non-immutable)
// state variables in declaration order and assigns each the next free
// slot starting from c.NextSlot, which callers must have already seeded
// from the sum of every base's slot usage (spec.md §3.4: storage layout
// is base-to-derived, most-base-first). Constants and immutables never
// occupy a storage slot.
func AssignSlots(c *Contract) {
	slot := c.NextSlot
	for i := range c.Variables {
		v := &c.Variables[i]
		if v.Constant || v.Immutable {
			continue
		}
		v.Slot = &BigIntOrNil{Value: slot, Valid: true}
		slot++
	}
	c.NextSlot = slot
}

// AssignAllSlots assigns storage slots to every contract in
// linearization order (base-first), threading NextSlot through so a
// derived contract's variables begin after every base's.
func AssignAllSlots(ns *Namespace, contractIdx int) {
	c := &ns.Contracts[contractIdx]
	// c.Linearization[0] is c itself, the rest are its bases; each base's
	// NextSlot already accounts for everything above it in its own chain,
	// since bases are assembled before the contracts that derive from
	// them, so c starts after the largest of them.
	if len(c.Linearization) > 1 {
		c.NextSlot = 0
		for _, baseIdx := range c.Linearization[1:] {
			if next := ns.Contracts[baseIdx].NextSlot; next > c.NextSlot {
				c.NextSlot = next
			}
		}
	}
	AssignSlots(c)
}

// MatchOverrides validates that every function marked Override actually
// overrides a Virtual function of the same selector-relevant signature
// somewhere in the contract's bases, and that a base function meant to
// be replaced was itself declared Virtual. Violations are reported as
// diagnostics rather than Bugs since they originate from user-written
// override/virtual annotations.
func MatchOverrides(ns *Namespace, contractIdx int) {
	c := &ns.Contracts[contractIdx]
	for _, fIdx := range c.Functions {
		fn := &ns.Functions[fIdx]
		if !fn.Override {
			continue
		}
		found := false
		for _, baseIdx := range c.Linearization[1:] {
			base := &ns.Contracts[baseIdx]
			for _, bfIdx := range base.Functions {
				bf := &ns.Functions[bfIdx]
				if bf.Name == fn.Name && sameParamTypes(bf.Params, fn.Params) {
					if !bf.Virtual {
						ns.Diagnostics.Errorf(fn.Loc,
							"function %q overrides a function that is not virtual", fn.Name)
					}
					found = true
				}
			}
		}
		if !found {
			ns.Diagnostics.Errorf(fn.Loc,
				"function %q is marked override but overrides nothing", fn.Name)
		}
	}
}

func sameParamTypes(a, b []Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Ty.Equal(b[i].Ty) {
			return false
		}
	}
	return true
}

// CheckConstructorMutability implements the open-question decision of
// spec.md §9: a contract whose base constructors disagree on whether
// they accept value (one payable, another not) is rejected outright
// rather than silently picking a side.
func CheckConstructorMutability(ns *Namespace, contractIdx int) {
	c := &ns.Contracts[contractIdx]
	sawPayable := false
	sawNonpayable := false
	var firstLoc Loc
	for _, baseIdx := range c.Linearization {
		base := &ns.Contracts[baseIdx]
		ctor := findConstructor(ns, base)
		if ctor < 0 {
			continue
		}
		fn := &ns.Functions[ctor]
		if fn.Mutability == MutPayable {
			sawPayable = true
		} else {
			sawNonpayable = true
		}
		if !firstLoc.IsFile() {
			firstLoc = fn.Loc
		}
	}
	if sawPayable && sawNonpayable {
		ns.Diagnostics.Errorf(c.Loc,
			"contract %q mixes payable and non-payable constructors across its base chain", c.Name)
	}
}
