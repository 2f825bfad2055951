package core

// linearize.go implements C3 linearization (spec.md §4.3), the same
// algorithm Python uses to order a class's MRO, applied here to resolve
// Solidity's "most derived first" base-contract ordering.

// Linearize computes the C3 merge of contractIdx's bases and stores it
// on ns.Contracts[contractIdx].Linearization, with contractIdx itself
// first. It reports a diagnostic and returns false on a linearization
// conflict (e.g. bases declared in an order no linear merge can satisfy)
// or a dependency cycle.
func Linearize(ns *Namespace, contractIdx int) bool {
	c := &ns.Contracts[contractIdx]
	// A non-nil, empty Linearization marks a contract whose linearization
	// is still in progress further up the recursion; reaching it again
	// through a base list means the inheritance graph has a cycle.
	c.Linearization = []int{}

	seqs := make([][]int, 0, len(c.Bases)+1)
	for _, baseIdx := range c.Bases {
		base := &ns.Contracts[baseIdx]
		if base.Linearization != nil && len(base.Linearization) == 0 {
			ns.Diagnostics.Errorf(c.Loc,
				"contracts %q and %q form an inheritance cycle", c.Name, base.Name)
			c.Linearization = nil
			return false
		}
		if base.Linearization == nil {
			if !Linearize(ns, baseIdx) {
				c.Linearization = nil
				return false
			}
		}
		seqs = append(seqs, append([]int(nil), ns.Contracts[baseIdx].Linearization...))
	}
	seqs = append(seqs, append([]int(nil), c.Bases...))

	merged, ok := c3Merge(seqs)
	if !ok {
		ns.Diagnostics.Errorf(c.Loc,
			"linearization of inheritance graph for contract %q impossible", c.Name)
		c.Linearization = nil
		return false
	}

	c.Linearization = append([]int{contractIdx}, merged...)
	return true
}

// c3Merge merges a set of already-linearized sequences (one per direct
// base, plus the base list itself) the way C3 does: repeatedly take the
// head of the first sequence that does not appear in the tail of any
// other sequence, remove it everywhere, and repeat until every sequence
// is empty.
func c3Merge(seqs [][]int) ([]int, bool) {
	var result []int
	seqs = filterEmpty(seqs)

	for len(seqs) > 0 {
		var head int
		found := false
		for _, s := range seqs {
			if len(s) == 0 {
				continue
			}
			candidate := s[0]
			if !appearsInAnyTail(seqs, candidate) {
				head = candidate
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
		result = append(result, head)
		for i := range seqs {
			seqs[i] = removeFirst(seqs[i], head)
		}
		seqs = filterEmpty(seqs)
	}
	return result, true
}

func appearsInAnyTail(seqs [][]int, v int) bool {
	for _, s := range seqs {
		if len(s) <= 1 {
			continue
		}
		for _, x := range s[1:] {
			if x == v {
				return true
			}
		}
	}
	return false
}

func removeFirst(s []int, v int) []int {
	out := s[:0:0]
	for _, x := range s {
		if x == v {
			continue
		}
		out = append(out, x)
	}
	return out
}

func filterEmpty(seqs [][]int) [][]int {
	out := seqs[:0:0]
	for _, s := range seqs {
		if len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}
