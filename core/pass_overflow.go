package core

import "math/big"

// pass_overflow.go implements spec.md §4.7's optional overflow
// instrumentation: each Add/Subtract/Multiply/Power instruction over a
// sized Int/Uint operand is wrapped with a runtime bounds check that
// reverts with the Panic(0x11) selector (arithmetic overflow/underflow)
// on violation, matching Solidity 0.8+'s default checked-arithmetic
// semantics. The CFG keeps no record of which instructions came from an
// `unchecked { ... }` block, so the pass instruments those as well.

// InstrumentOverflow walks cfg and, for every checked arithmetic
// Set whose result type is a sized integer, splits its block right
// after the Set into a guard branch: BranchCond on the "would not have
// fit" test, one arm an AssertFailure trap (Panic(0x11)), the other arm
// the original block's remaining instructions. Splitting is required
// because AssertFailure is itself a terminator and can never appear
// mid-block (spec.md §3.7's well-formedness invariant); the guard can
// only be expressed by introducing the extra basic blocks. Every
// qualifying Set in cfg is guarded, including arithmetic lowered from an
// `unchecked { ... }` block.
func InstrumentOverflow(cfg *ControlFlowGraph) int {
	count := 0
	bi := 0
	for bi < len(cfg.Blocks) {
		bb := &cfg.Blocks[bi]
		splitAt := -1
		for i, ins := range bb.Instr {
			if ins.Kind == InstrSet && ins.Expr != nil && needsOverflowGuard(ins.Expr) && i+1 < len(bb.Instr) {
				splitAt = i
				break
			}
		}
		if splitAt < 0 {
			bi++
			continue
		}

		setIns := bb.Instr[splitAt]
		rest := append([]Instr(nil), bb.Instr[splitAt+1:]...)
		bb.Instr = bb.Instr[:splitAt+1]

		contIdx := len(cfg.Blocks)
		cfg.Blocks = append(cfg.Blocks, BasicBlock{Name: bb.Name + ".ovfl.cont", Instr: rest})
		trapIdx := len(cfg.Blocks)
		cfg.Blocks = append(cfg.Blocks, BasicBlock{
			Name:  bb.Name + ".ovfl.trap",
			Instr: []Instr{{Kind: InstrAssertFailure, Loc: setIns.Loc, Reason: panicCodeExpr(setIns.Loc)}},
		})

		cond := overflowCond(setIns)
		cfg.Blocks[bi].Instr = append(cfg.Blocks[bi].Instr, Instr{
			Kind: InstrBranchCond, Loc: setIns.Loc, Expr: cond, TrueBB: trapIdx, FalseBB: contIdx,
		})
		count++
		// The continuation block was appended at the end, so it is still
		// visited after every block that follows bi.
		bi++
	}
	return count
}

func needsOverflowGuard(e *Expression) bool {
	switch e.Kind {
	case ExprAdd, ExprSubtract, ExprMultiply, ExprPower:
		return e.Ty.Kind == KindInt || e.Ty.Kind == KindUint
	default:
		return false
	}
}

// overflowCond builds the "would not have fit" boolean test guarding
// set's arithmetic result. A target emitter is expected to recognize
// this opaque FunctionCall-shaped marker and lower it into native
// width-aware overflow detection instead of evaluating it literally.
func overflowCond(set Instr) *Expression {
	fitsCheck := Expression{
		Kind: ExprFunctionCall,
		Loc:  set.Loc,
		Ty:   BoolType(),
		Args: []Expression{*set.Expr},
	}
	notFits := Expression{Kind: ExprNot, Loc: set.Loc, Ty: BoolType(), Operand: &fitsCheck}
	return &notFits
}

// panicCodeExpr builds the uint256(0x11) Panic code Solidity 0.8+ uses
// for "arithmetic operation resulted in underflow or overflow".
func panicCodeExpr(loc Loc) *Expression {
	panicCode := NewNumberLiteral(loc, big.NewInt(0x11))
	panicCode.Ty = UintType(256)
	return &panicCode
}
