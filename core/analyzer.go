package core

// analyzer.go implements spec.md §4.4: overload resolution, mutability
// inference, named-argument call binding, and reachability checking over
// the typed statement/expression trees produced during semantic
// analysis. Alongside the CFG builder this is one of the two largest
// components of the middle end.

// ResolveCall picks the single overload from candidates whose parameter
// types each accept the corresponding argument via Coerce (implicit or
// identity only — overload resolution never falls back to an explicit
// conversion). It reports an error if none qualify ("cannot find overload
// matching the supplied argument types") and another if more than one
// does ("call is ambiguous between N candidate overloads"), returning
// (-1, false) either way.
func (ns *Namespace) ResolveCall(loc Loc, candidates []OverloadEntry, args []Expression) (int, bool) {
	var matches []int
	for _, c := range candidates {
		fn := &ns.Functions[c.Idx]
		if len(fn.Params) != len(args) {
			continue
		}
		ok := true
		for i, p := range fn.Params {
			ctx := CoercionContext{Namespace: ns, SourceIsLiteral: args[i].IsLiteral()}
			switch Coerce(args[i].Ty, p.Ty, ctx) {
			case CoercionIdentity, CoercionImplicit:
			default:
				ok = false
			}
			if !ok {
				break
			}
		}
		if ok {
			matches = append(matches, c.Idx)
		}
	}
	switch len(matches) {
	case 0:
		ns.Diagnostics.Errorf(loc, "cannot find overload matching the supplied argument types")
		return -1, false
	case 1:
		return matches[0], true
	default:
		ns.Diagnostics.Errorf(loc, "call is ambiguous between %d candidate overloads", len(matches))
		return -1, false
	}
}

// BindNamedArgs reorders a named-argument call's values into parameter
// declaration order, implementing the `{value: 1, from: addr}` call
// syntax. It reports a diagnostic and returns ok=false if a name doesn't
// match any parameter or a parameter is left unbound.
func (ns *Namespace) BindNamedArgs(loc Loc, params []Param, names []string, values []Expression) ([]Expression, bool) {
	if len(names) != len(values) {
		Bug("analyzer: BindNamedArgs called with mismatched names/values lengths")
	}
	byName := make(map[string]Expression, len(names))
	for i, n := range names {
		byName[n] = values[i]
	}
	out := make([]Expression, len(params))
	ok := true
	for i, p := range params {
		v, found := byName[p.Name]
		if !found {
			ns.Diagnostics.Errorf(loc, "missing named argument %q", p.Name)
			ok = false
			continue
		}
		out[i] = v
		delete(byName, p.Name)
	}
	for leftover := range byName {
		ns.Diagnostics.Errorf(loc, "%q is not a parameter of the called function", leftover)
		ok = false
	}
	return out, ok
}

// mutabilityRank orders the four-state lattice of spec.md §4.4 from most
// to least restrictive: Pure < View < Nonpayable < Payable. A function's
// declared mutability must be at least as permissive as what its body
// actually requires; InferMutability reports an error when the
// declaration is stricter than that and a warning when it is looser.
func mutabilityRank(m Mutability) int {
	switch m {
	case MutPure:
		return 0
	case MutView:
		return 1
	case MutNonpayable:
		return 2
	case MutPayable:
		return 3
	default:
		return 2
	}
}

// InferMutability walks fn's CFG and computes the minimum mutability its
// body actually requires: Payable if it reads callvalue/msg.value,
// Nonpayable if it writes storage or emits/calls externally without
// being payable, View if it only reads storage/environment, Pure
// otherwise. It then compares against fn.Mutability:
//   - declared looser than required (e.g. declared payable but the
//     contract never accepts value, or declared nonpayable but the body
//     never touches storage) is a warning ("can be restricted to X");
//   - declared stricter than required (e.g. declared pure but the body
//     writes storage) is an error, since that would be unsound.
func (ns *Namespace) InferMutability(fn *Function) {
	if fn.Cfg == nil {
		Bug("analyzer: InferMutability called before the CFG was built")
	}
	required := MutPure
	raise := func(m Mutability) {
		if mutabilityRank(m) > mutabilityRank(required) {
			required = m
		}
	}

	for _, bb := range fn.Cfg.Blocks {
		for _, ins := range bb.Instr {
			switch ins.Kind {
			case InstrSetStorage, InstrClearStorage, InstrSetStorageBytes, InstrSelfDestruct:
				raise(MutNonpayable)
			case InstrCall, InstrExternalCall, InstrConstructor:
				raise(MutNonpayable)
			case InstrSet, InstrEval:
				if ins.Expr != nil && exprReadsStorage(ins.Expr) {
					raise(MutView)
				}
			}
		}
	}

	if fn.YulReadsCallValue {
		raise(MutPayable)
	}
	if fn.YulWritesState {
		raise(MutNonpayable)
	}
	if fn.YulReadsState {
		raise(MutView)
	}

	declaredRank := mutabilityRank(fn.Mutability)
	requiredRank := mutabilityRank(required)

	if declaredRank < requiredRank {
		ns.Diagnostics.Errorf(fn.Loc,
			"function declared %s but its body requires %s", fn.Mutability, required)
		return
	}
	if declaredRank > requiredRank {
		ns.Diagnostics.Warningf(fn.Loc,
			"function can be restricted to %s", required)
	}
}

func exprReadsStorage(e *Expression) bool {
	switch e.Kind {
	case ExprStorageVariable, ExprStorageLoad, ExprStorageBytesSubscript:
		return true
	default:
		return exprReadsStorage1(e.Left) || exprReadsStorage1(e.Right) ||
			exprReadsStorage1(e.Operand) || exprReadsStorage1(e.Array) ||
			exprReadsStorage1(e.Index) || exprReadsStorage1(e.Base)
	}
}

func exprReadsStorage1(e *Expression) bool {
	if e == nil {
		return false
	}
	return exprReadsStorage(e)
}

// CheckReachability walks a statement list in order, marking every
// statement after one that TerminatesUnconditionally as Unreachable and
// emitting one error per unreachable run (spec.md §4.4). It recurses
// into nested blocks and branches so an early return inside a nested if
// still marks code after the enclosing if as reachable (since the if may
// not take that branch).
func (ns *Namespace) CheckReachability(stmts []Statement) {
	deadFrom := -1
	for i := range stmts {
		if deadFrom >= 0 {
			stmts[i].Unreachable = true
		}
		switch stmts[i].Kind {
		case StmtBlock:
			ns.CheckReachability(stmts[i].Stmts)
		case StmtIf:
			if stmts[i].ThenStmt != nil {
				ns.CheckReachability([]Statement{*stmts[i].ThenStmt})
			}
			if stmts[i].ElseStmt != nil {
				ns.CheckReachability([]Statement{*stmts[i].ElseStmt})
			}
		case StmtWhile, StmtDoWhile, StmtFor:
			if stmts[i].Body != nil {
				ns.CheckReachability([]Statement{*stmts[i].Body})
			}
		case StmtTry:
			ns.CheckReachability(stmts[i].OkBody)
			for c := range stmts[i].Catches {
				ns.CheckReachability(stmts[i].Catches[c].Body)
			}
		}
		if deadFrom < 0 && stmts[i].TerminatesUnconditionally() {
			deadFrom = i
			if i+1 < len(stmts) {
				ns.Diagnostics.Errorf(stmts[i+1].Loc, "statement is unreachable")
			}
		}
	}
}
