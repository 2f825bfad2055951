package core

// pass_deadstorage.go implements spec.md §4.7's dead-storage-elimination
// pass: a SetStorage to a statically known slot is dead, and may be
// deleted, if the same basic block writes that slot again before any
// instruction reads it. This is an intentionally block-local
// approximation of the general reaching-definitions problem (see
// DESIGN.md): reasoning across branches would require a full fixpoint
// dataflow pass, which is unnecessary for the common redundant-write
// patterns (e.g. `x = 1; x = 2;`) this pass targets. instrReadsSlot
// treats Call/ExternalCall/Constructor as reading every slot, since a
// callee can read contract storage the caller's CFG has no visibility
// into; without that, a write preceding an external call would be
// wrongly eliminated even though the call can observe it.
func EliminateDeadStorage(cfg *ControlFlowGraph) int {
	count := 0
	for bi := range cfg.Blocks {
		bb := &cfg.Blocks[bi]
		keep := make([]bool, len(bb.Instr))
		for i := range keep {
			keep[i] = true
		}
		removedHere := false

		for i := range bb.Instr {
			ins := &bb.Instr[i]
			if ins.Kind != InstrSetStorage {
				continue
			}
			slot, ok := slotKey(ins)
			if !ok {
				continue
			}
			for j := i + 1; j < len(bb.Instr); j++ {
				next := &bb.Instr[j]
				if instrReadsSlot(next, slot) {
					break
				}
				if next.Kind == InstrSetStorage {
					if s2, ok2 := slotKey(next); ok2 && s2 == slot {
						keep[i] = false
						count++
						removedHere = true
					}
					break
				}
				if next.IsTerminator() {
					break
				}
			}
		}

		if !removedHere {
			continue
		}
		filtered := bb.Instr[:0]
		for i, ins := range bb.Instr {
			if keep[i] {
				filtered = append(filtered, ins)
			}
		}
		bb.Instr = filtered
	}
	return count
}
