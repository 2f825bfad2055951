package core

// dataflow.go implements the small read-of-slot queries the
// dead-storage-elimination pass needs: for a given storage slot, does an
// instruction read it (via StorageLoad/StorageVariable on the same slot)?
// The pass asks this of each instruction that follows a SetStorage in the
// same basic block, up to the next write to that slot. The analysis is
// deliberately coarse — block-local, per-slot, ignoring aliasing through
// dynamic index expressions — which is sound for elimination purposes as
// analyzed in DESIGN.md: any slot whose address is not a compile-time
// constant is conservatively assumed live, never eliminated.

// slotKey extracts the storage slot SetStorage/ClearStorage addresses as
// a map key when it is a plain literal offset, or reports ok=false for a
// dynamic (mapping/array-indexed) address that cannot be reasoned about
// statically.
func slotKey(ins *Instr) (uint64, bool) {
	if ins.Slot == nil || ins.Slot.Kind != ExprNumberLiteral {
		return 0, false
	}
	if !ins.Slot.NumberValue.IsUint64() {
		return 0, false
	}
	return ins.Slot.NumberValue.Uint64(), true
}

// instrReadsSlot reports whether ins's expression reads from the given
// literal storage slot. A Call/ExternalCall/Constructor is conservatively
// treated as reading every slot: the callee may itself read contract
// storage the caller cannot see into from the CFG alone, so a write
// preceding such a call can never be proven dead.
func instrReadsSlot(ins *Instr, slot uint64) bool {
	switch ins.Kind {
	case InstrCall, InstrExternalCall, InstrConstructor:
		return true
	}
	if ins.Expr != nil && exprReadsSlot(ins.Expr, slot) {
		return true
	}
	for i := range ins.Values {
		if exprReadsSlot(&ins.Values[i], slot) {
			return true
		}
	}
	for i := range ins.Args {
		if exprReadsSlot(&ins.Args[i], slot) {
			return true
		}
	}
	return false
}

func exprReadsSlot(e *Expression, slot uint64) bool {
	if e == nil {
		return false
	}
	if e.Kind == ExprStorageLoad || e.Kind == ExprStorageVariable {
		if e.SlotExpr != nil && e.SlotExpr.Kind == ExprNumberLiteral && e.SlotExpr.NumberValue.IsUint64() {
			if e.SlotExpr.NumberValue.Uint64() == slot {
				return true
			}
		} else {
			// Dynamic slot expression: conservatively assume it could
			// read any slot.
			return true
		}
	}
	return exprReadsSlot(e.Left, slot) || exprReadsSlot(e.Right, slot) ||
		exprReadsSlot(e.Operand, slot) || exprReadsSlot(e.Array, slot) ||
		exprReadsSlot(e.Index, slot) || exprReadsSlot(e.Base, slot)
}
