package core

// loopTargets records the continue/break destinations active while
// lowering a loop body (spec.md §4.5: continue targets the post block
// for `for`, the header otherwise; break always targets the after
// block).
type loopTargets struct {
	continueBB int
	breakBB    int
}

// Builder lowers one Function's typed statement tree into a
// ControlFlowGraph. It owns its Vartable (the Vars vector under
// construction) and LoopScopes stack for the duration of one function's
// build and is discarded once Build returns (spec.md §5).
type Builder struct {
	ns      *Namespace
	fn      *Function
	cfg     *ControlFlowGraph
	current int
	dirty   dirtyStack
	loops   []loopTargets
}

// BuildCfg lowers fn.Body into a ControlFlowGraph, implementing spec.md
// §4.5 in full: block discipline, phi insertion at if/else joins and
// loop headers, loop break/continue targets, try/catch dispatch, and
// base-constructor calls emitted in reverse-linearization order at the
// top of a constructor's entry block.
func BuildCfg(ns *Namespace, fn *Function) *ControlFlowGraph {
	b := &Builder{ns: ns, fn: fn, cfg: &ControlFlowGraph{}}

	for _, p := range fn.Params {
		b.newNamedVar(p.Name, p.Ty)
	}
	for _, r := range fn.Returns {
		b.newNamedVar(r.Name, r.Ty)
	}

	entry := b.newBlock("entry")
	b.current = entry

	if fn.IsConstructor && fn.ContractIdx >= 0 {
		b.emitBaseConstructorCalls()
	}

	for i := range fn.Body {
		b.lowerStmt(&fn.Body[i])
	}

	if !b.currentTerminated() {
		b.emit(Instr{Kind: InstrReturn, Loc: fn.Loc})
	}

	fn.Cfg = b.cfg
	b.cfg.CheckWellFormed()
	return b.cfg
}

func (b *Builder) newBlock(name string) int {
	b.cfg.Blocks = append(b.cfg.Blocks, BasicBlock{Name: name})
	return len(b.cfg.Blocks) - 1
}

func (b *Builder) newNamedVar(name string, ty Type) int {
	b.cfg.Vars = append(b.cfg.Vars, Variable{Name: name, Ty: ty, Storage: VarStorage{Kind: StorageLocal}})
	return len(b.cfg.Vars) - 1
}

func (b *Builder) newTemp(ty Type) int { return b.newNamedVar("", ty) }

func (b *Builder) currentTerminated() bool {
	bb := b.cfg.Blocks[b.current]
	return len(bb.Instr) > 0 && bb.Instr[len(bb.Instr)-1].IsTerminator()
}

// emit appends ins to the current block. It is a Bug to emit into a
// block that has already been terminated — the caller must switch
// b.current to a fresh block first.
func (b *Builder) emit(ins Instr) {
	if b.currentTerminated() {
		Bug("cfgbuilder: attempted to emit into already-terminated block %q", b.cfg.Blocks[b.current].Name)
	}
	b.cfg.Blocks[b.current].Instr = append(b.cfg.Blocks[b.current].Instr, ins)
}

func (b *Builder) branchTo(target int) { b.emit(Instr{Kind: InstrBranch, TargetBB: target}) }

// assign records a store to varIdx and notes it in every active dirty
// tracker (spec.md §3.7's record-assignment rule).
func (b *Builder) assign(loc Loc, varIdx int, expr Expression) {
	b.emit(Instr{Kind: InstrSet, Loc: loc, ResultVar: varIdx, HasResult: true, Expr: &expr})
	b.dirty.recordAssignment(varIdx)
}

// setPhis installs a phi-set on block bb, eliding an empty set per
// spec.md §4.5 ("An empty phi-set is elided").
func (b *Builder) setPhis(bb int, vars []int) {
	if len(vars) == 0 {
		return
	}
	if b.cfg.Blocks[bb].Phis != nil {
		Bug("cfgbuilder: block %q already has a phi-set", b.cfg.Blocks[bb].Name)
	}
	b.cfg.Blocks[bb].Phis = vars
}

func unionInts(a, c []int) []int {
	seen := make(map[int]bool, len(a)+len(c))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range c {
		seen[v] = true
	}
	return sortedKeys(seen)
}

// emitBaseConstructorCalls emits, at the top of a derived constructor's
// entry block, one no-result Call per base in reverse-linearization
// order (spec.md §4.5).
func (b *Builder) emitBaseConstructorCalls() {
	c := &b.ns.Contracts[b.fn.ContractIdx]
	for i := len(c.Linearization) - 1; i >= 0; i-- {
		baseIdx := c.Linearization[i]
		if baseIdx == b.fn.ContractIdx {
			continue
		}
		base := &b.ns.Contracts[baseIdx]
		ctor := findConstructor(b.ns, base)
		if ctor < 0 {
			continue // base has no explicit constructor; nothing to call
		}
		b.emit(Instr{Kind: InstrCall, Loc: b.fn.Loc, CallFunc: ctor})
	}
}

func findConstructor(ns *Namespace, c *Contract) int {
	for _, fIdx := range c.Functions {
		if ns.Functions[fIdx].IsConstructor {
			return fIdx
		}
	}
	return -1
}

func (b *Builder) lowerStmt(s *Statement) {
	if s.Unreachable {
		return
	}
	switch s.Kind {
	case StmtBlock:
		limit := len(b.cfg.Vars)
		b.dirty.push(limit)
		for i := range s.Stmts {
			b.lowerStmt(&s.Stmts[i])
		}
		b.dirty.pop()

	case StmtExpression:
		b.emit(Instr{Kind: InstrEval, Loc: s.Loc, Expr: s.Expr})

	case StmtVariableDefinition:
		idx := b.newNamedVar(s.Decl.Name, s.Decl.Ty)
		if s.Initializer != nil {
			b.assign(s.Loc, idx, *s.Initializer)
		}

	case StmtReturn:
		b.emit(Instr{Kind: InstrReturn, Loc: s.Loc, Values: s.Values})

	case StmtRevert:
		b.emit(Instr{Kind: InstrAssertFailure, Loc: s.Loc, Reason: s.Expr})

	case StmtEmit:
		b.emit(Instr{Kind: InstrEval, Loc: s.Loc, Expr: s.Expr})

	case StmtBreak:
		if len(b.loops) == 0 {
			Bug("cfgbuilder: break outside a loop")
		}
		b.branchTo(b.loops[len(b.loops)-1].breakBB)

	case StmtContinue:
		if len(b.loops) == 0 {
			Bug("cfgbuilder: continue outside a loop")
		}
		b.branchTo(b.loops[len(b.loops)-1].continueBB)

	case StmtIf:
		b.lowerIf(s)

	case StmtWhile:
		b.lowerWhile(s)

	case StmtDoWhile:
		b.lowerDoWhile(s)

	case StmtFor:
		b.lowerFor(s)

	case StmtTry:
		b.lowerTry(s)

	case StmtAssembly:
		readsState, writesState, readsCallValue := ResolveYulBlock(&b.ns.Diagnostics, b.ns.Target, nil, s.YulBlock)
		b.fn.YulReadsState = b.fn.YulReadsState || readsState
		b.fn.YulWritesState = b.fn.YulWritesState || writesState
		b.fn.YulReadsCallValue = b.fn.YulReadsCallValue || readsCallValue
		b.lowerYulBlock(s.YulBlock)

	default:
		Bug("cfgbuilder: unsupported statement kind %d", s.Kind)
	}
}

func (b *Builder) lowerIf(s *Statement) {
	thenBB := b.newBlock("if.then")
	joinBB := -1 // allocated lazily so a diverging then/else doesn't waste a block id
	var elseBB int
	hasElse := s.ElseStmt != nil
	if hasElse {
		elseBB = b.newBlock("if.else")
	}

	condLoc := s.Loc
	if s.Cond != nil {
		condLoc = s.Cond.Loc
	}
	falseTarget := elseBB
	if !hasElse {
		joinBB = b.newBlock("if.end")
		falseTarget = joinBB
	}
	b.emit(Instr{Kind: InstrBranchCond, Loc: condLoc, Expr: s.Cond, TrueBB: thenBB, FalseBB: falseTarget})

	limit := len(b.cfg.Vars)

	b.current = thenBB
	b.dirty.push(limit)
	b.lowerStmt(s.ThenStmt)
	thenSet := b.dirty.pop().set()
	thenFallsThrough := !b.currentTerminated()

	var elseSet []int
	// Without an else arm the false edge already targets the join.
	elseFallsThrough := !hasElse
	if hasElse {
		b.current = elseBB
		b.dirty.push(limit)
		b.lowerStmt(s.ElseStmt)
		elseSet = b.dirty.pop().set()
		elseFallsThrough = !b.currentTerminated()
	}

	if thenFallsThrough || elseFallsThrough {
		if joinBB < 0 {
			joinBB = b.newBlock("if.end")
		}
		if thenFallsThrough {
			b.current = thenBB
			b.branchTo(joinBB)
		}
		if hasElse && elseFallsThrough {
			b.current = elseBB
			b.branchTo(joinBB)
		}
		b.current = joinBB
		b.setPhis(joinBB, unionInts(thenSet, elseSet))
	} else {
		// Both arms terminate unconditionally (e.g. return/revert on
		// both sides): there is no fall-through join, so no current
		// block is live past this point until the caller's own
		// terminator check notices and the function ends, or a Bug
		// fires if more statements follow live code.
		if joinBB >= 0 {
			b.current = joinBB
			b.emit(Instr{Kind: InstrUnreachable, Loc: s.Loc})
		} else {
			// synthesize an unreachable join so later sibling
			// statements (which CheckReachability should have marked
			// unreachable already) still have somewhere to land.
			joinBB = b.newBlock("if.end")
			b.current = joinBB
			b.emit(Instr{Kind: InstrUnreachable, Loc: s.Loc})
		}
	}
}

// set snapshots a DirtyTracker's contents as a sorted slice.
func (t *DirtyTracker) set() []int { return sortedKeys(t.Set) }

func (b *Builder) lowerWhile(s *Statement) {
	header := b.newBlock("while.header")
	body := b.newBlock("while.body")
	after := b.newBlock("while.end")

	b.branchTo(header)
	b.current = header
	b.emit(Instr{Kind: InstrBranchCond, Loc: s.Loc, Expr: s.Cond, TrueBB: body, FalseBB: after})

	limit := len(b.cfg.Vars)
	b.dirty.push(limit)
	b.loops = append(b.loops, loopTargets{continueBB: header, breakBB: after})
	b.current = body
	b.lowerStmt(s.Body)
	b.loops = b.loops[:len(b.loops)-1]
	bodySet := b.dirty.pop().set()

	if !b.currentTerminated() {
		b.branchTo(header)
	}
	b.setPhis(header, bodySet)
	b.current = after
}

func (b *Builder) lowerDoWhile(s *Statement) {
	body := b.newBlock("dowhile.body")
	header := b.newBlock("dowhile.header")
	after := b.newBlock("dowhile.end")

	b.branchTo(body)

	limit := len(b.cfg.Vars)
	b.dirty.push(limit)
	b.loops = append(b.loops, loopTargets{continueBB: header, breakBB: after})
	b.current = body
	b.lowerStmt(s.Body)
	b.loops = b.loops[:len(b.loops)-1]
	bodySet := b.dirty.pop().set()

	if !b.currentTerminated() {
		b.branchTo(header)
	}
	b.current = header
	b.emit(Instr{Kind: InstrBranchCond, Loc: s.Loc, Expr: s.Cond, TrueBB: body, FalseBB: after})
	b.setPhis(header, bodySet)
	b.current = after
}

func (b *Builder) lowerFor(s *Statement) {
	if s.Init != nil {
		b.lowerStmt(s.Init)
	}
	header := b.newBlock("for.header")
	body := b.newBlock("for.body")
	post := b.newBlock("for.post")
	after := b.newBlock("for.end")

	b.branchTo(header)
	b.current = header
	if s.Cond != nil {
		b.emit(Instr{Kind: InstrBranchCond, Loc: s.Loc, Expr: s.Cond, TrueBB: body, FalseBB: after})
	} else {
		b.branchTo(body)
	}

	limit := len(b.cfg.Vars)
	b.dirty.push(limit)
	// continue targets the post block for `for` (spec.md §4.5).
	b.loops = append(b.loops, loopTargets{continueBB: post, breakBB: after})
	b.current = body
	b.lowerStmt(s.Body)
	b.loops = b.loops[:len(b.loops)-1]

	if !b.currentTerminated() {
		b.branchTo(post)
	}
	b.current = post
	if s.Post != nil {
		b.lowerStmt(s.Post)
	}
	bodySet := b.dirty.pop().set()
	if !b.currentTerminated() {
		b.branchTo(header)
	}
	b.setPhis(header, bodySet)
	b.current = after
}

// Reserved error-selector prefixes, spec.md §4.5: Error(string) and
// Panic(uint256) dispatch catch clauses by the first four bytes of the
// returned revert data.
var (
	ErrorSelector = [4]byte{0x08, 0xc3, 0x79, 0xa0}
	PanicSelector = [4]byte{0x4e, 0x48, 0x7b, 0x71}
)

// lowerTry implements spec.md §4.5's try/catch dispatch (scenario f,
// spec.md §8): the protected call is emitted with success captured into
// a local; on success control flows into the returns clause; on failure
// the builder dispatches on the four-byte selector prefix of the runtime
// error bytes, falling through to the unnamed catch, and re-raising if
// no clause matches at all (never swallowed).
func (b *Builder) lowerTry(s *Statement) {
	successVar := b.newTemp(BoolType())
	dataVar := b.newTemp(DynamicBytesType())
	b.emit(Instr{
		Kind: InstrExternalCall, Loc: s.Loc,
		SuccessVar: successVar, HasSuccess: true,
		AddressExpr: s.TryCall, CallKind: CallRegular,
		DataVar: dataVar, HasDataVar: true,
	})

	okBB := b.newBlock("try.ok")
	failBB := b.newBlock("try.fail")
	joinBB := b.newBlock("try.end")

	cond := Expression{Kind: ExprVariable, Loc: s.Loc, Ty: BoolType(), VarIndex: successVar}
	b.emit(Instr{Kind: InstrBranchCond, Loc: s.Loc, Expr: &cond, TrueBB: okBB, FalseBB: failBB})

	limit := len(b.cfg.Vars)

	b.current = okBB
	b.dirty.push(limit)
	for i := range s.OkBody {
		b.lowerStmt(&s.OkBody[i])
	}
	okSet := b.dirty.pop().set()
	if !b.currentTerminated() {
		b.branchTo(joinBB)
	}

	b.current = failBB
	b.dirty.push(limit)
	b.lowerCatchDispatch(s, dataVar, joinBB)
	failSet := b.dirty.pop().set()
	_ = failSet

	b.current = joinBB
	b.setPhis(joinBB, okSet)
}

// selectorCond builds the boolean expression "the first four bytes of the
// bytes-typed variable dataVar equal want" — the branch condition the
// catch-clause dispatch switches on (spec.md §4.5, scenario f).
func selectorCond(loc Loc, dataVar int, want [4]byte) *Expression {
	data := Expression{Kind: ExprVariable, Loc: loc, Ty: DynamicBytesType(), VarIndex: dataVar}
	selector := Expression{Kind: ExprReturnDataSelector, Loc: loc, Ty: BytesNType(4), Operand: &data}
	lit := Expression{Kind: ExprBytesLiteral, Loc: loc, Ty: BytesNType(4), BytesValue: want[:]}
	return &Expression{Kind: ExprEqual, Loc: loc, Ty: BoolType(), Left: &selector, Right: &lit}
}

// lowerCatchDispatch emits the selector switch described in spec.md
// §4.5 inside the current (fail) block.
func (b *Builder) lowerCatchDispatch(s *Statement, dataVar, joinBB int) {
	var errClause, panicClause, simpleClause *CatchClause
	for i := range s.Catches {
		switch s.Catches[i].Kind {
		case CatchNamedError:
			errClause = &s.Catches[i]
		case CatchNamedPanic:
			panicClause = &s.Catches[i]
		case CatchSimple:
			simpleClause = &s.Catches[i]
		}
	}

	next := b.current
	if errClause != nil {
		errBB := b.newBlock("catch.error")
		cont := b.newBlock("catch.cont1")
		b.current = next
		cond := selectorCond(s.Loc, dataVar, ErrorSelector)
		b.emit(Instr{Kind: InstrBranchCond, Loc: s.Loc, Expr: cond, TrueBB: errBB, FalseBB: cont})
		b.current = errBB
		for i := range errClause.Body {
			b.lowerStmt(&errClause.Body[i])
		}
		if !b.currentTerminated() {
			b.branchTo(joinBB)
		}
		next = cont
	}
	if panicClause != nil {
		panicBB := b.newBlock("catch.panic")
		cont := b.newBlock("catch.cont2")
		b.current = next
		cond := selectorCond(s.Loc, dataVar, PanicSelector)
		b.emit(Instr{Kind: InstrBranchCond, Loc: s.Loc, Expr: cond, TrueBB: panicBB, FalseBB: cont})
		b.current = panicBB
		for i := range panicClause.Body {
			b.lowerStmt(&panicClause.Body[i])
		}
		if !b.currentTerminated() {
			b.branchTo(joinBB)
		}
		next = cont
	}

	b.current = next
	if simpleClause != nil {
		for i := range simpleClause.Body {
			b.lowerStmt(&simpleClause.Body[i])
		}
		if !b.currentTerminated() {
			b.branchTo(joinBB)
		}
		return
	}

	// No matching clause: the error propagates to the caller, it is
	// never swallowed (spec.md §4.5).
	b.emit(Instr{Kind: InstrAssertFailure, Loc: s.Loc})
}

// lowerYulBlock lowers Yul statements into the same Instr set where
// possible (spec.md §4.6): builtins with a direct Instr equivalent are
// rewritten to it, everything else becomes an Eval of an opaque call
// expression the target emitter is expected to special-case.
func (b *Builder) lowerYulBlock(stmts []YulStatement) {
	for i := range stmts {
		s := &stmts[i]
		switch s.Kind {
		case YulBlock:
			b.lowerYulBlock(s.Stmts)
		case YulExpressionStmt:
			b.lowerYulExprStmt(s.ExprStmt)
		case YulIf:
			thenBB := b.newBlock("yul.if.then")
			afterBB := b.newBlock("yul.if.end")
			b.emit(Instr{Kind: InstrBranchCond, Loc: s.Loc, TrueBB: thenBB, FalseBB: afterBB})
			b.current = thenBB
			b.lowerYulBlock(s.Body)
			if !b.currentTerminated() {
				b.branchTo(afterBB)
			}
			b.current = afterBB
		default:
			// Declarations, assignments, switches, and nested function
			// defs are lowered as opaque evaluations; their builtin
			// calls were already validated by ResolveYulBlock.
			b.emit(Instr{Kind: InstrEval, Loc: s.Loc})
		}
	}
}

func (b *Builder) lowerYulExprStmt(e *YulExpr) {
	if e == nil || e.Kind != YulCall {
		b.emit(Instr{Kind: InstrEval})
		return
	}
	bi, ok := LookupYulBuiltin(e.Name)
	if !ok {
		b.emit(Instr{Kind: InstrEval})
		return
	}
	switch e.Name {
	case "stop":
		b.emit(Instr{Kind: InstrReturn, Loc: e.Loc})
	case "revert":
		b.emit(Instr{Kind: InstrAssertFailure, Loc: e.Loc})
	case "invalid":
		b.emit(Instr{Kind: InstrUnreachable, Loc: e.Loc})
	case "selfdestruct":
		b.emit(Instr{Kind: InstrSelfDestruct, Loc: e.Loc})
	default:
		if bi.StopsExecution {
			b.emit(Instr{Kind: InstrUnreachable, Loc: e.Loc})
		} else {
			b.emit(Instr{Kind: InstrEval, Loc: e.Loc})
		}
	}
}
