package core

// pass_vec2slice.go implements spec.md §4.7's vector-to-slice pass: a
// run of consecutive PushMemory instructions into one array is replaced
// by a single PushMemory instead of materializing each element
// individually. This targets the common `abi.encodePacked` style
// buffer-build idiom; the pass does not look at how the array is used
// afterwards.

// ReplaceVectorBuilds scans cfg for block-local runs of two or more
// consecutive PushMemory instructions writing into the same ArrayVar and
// collapses each run into a single PushMemory whose ValueExpr is an
// opaque ExprFunctionCall carrying the run's element values in order,
// eliminating the redundant allocate-then-copy the naive lowering
// produces.
func ReplaceVectorBuilds(cfg *ControlFlowGraph) int {
	count := 0
	for bi := range cfg.Blocks {
		bb := &cfg.Blocks[bi]
		out := bb.Instr[:0]
		i := 0
		for i < len(bb.Instr) {
			run, rest := collectPushRun(bb.Instr[i:])
			if len(run) >= 2 {
				elemTy := run[0].ElemTy
				values := make([]Expression, len(run))
				for k, ins := range run {
					if ins.ValueExpr != nil {
						values[k] = *ins.ValueExpr
					}
				}
				out = append(out, Instr{
					Kind:      InstrPushMemory,
					Loc:       run[0].Loc,
					ArrayVar:  run[0].ArrayVar,
					ElemTy:    elemTy,
					ValueExpr: &Expression{Kind: ExprFunctionCall, Loc: run[0].Loc, Args: values},
				})
				count++
			} else {
				out = append(out, run...)
			}
			i += len(bb.Instr[i:]) - len(rest)
		}
		bb.Instr = out
	}
	return count
}

// collectPushRun returns the maximal leading run of instrs that are all
// PushMemory into the same ArrayVar with no other instruction kind
// interleaved (ElemTy is not compared), plus the remaining instructions.
// When instrs does not start with a PushMemory the run is just its first
// instruction.
func collectPushRun(instrs []Instr) (run []Instr, rest []Instr) {
	if len(instrs) == 0 || instrs[0].Kind != InstrPushMemory {
		if len(instrs) == 0 {
			return nil, nil
		}
		return instrs[:1], instrs[1:]
	}
	arrayVar := instrs[0].ArrayVar
	n := 0
	for n < len(instrs) && instrs[n].Kind == InstrPushMemory && instrs[n].ArrayVar == arrayVar {
		n++
	}
	return instrs[:n], instrs[n:]
}
