package core

// YulStmtKind tags a Yul (inline-assembly) statement.
type YulStmtKind uint8

const (
	YulBlock YulStmtKind = iota
	YulAssignment
	YulVariableDecl
	YulExpressionStmt
	YulIf
	YulFor
	YulSwitch
	YulFunctionDef
	YulBreak
	YulContinue
	YulLeave
)

// YulStatement is one statement of a parsed Yul block. The resolver
// (§4.6) walks this tree validating every YulCall against the builtin
// catalogue; lowering into core.Instr is done by the CFG builder's
// lowerYulBlock.
type YulStatement struct {
	Kind YulStmtKind
	Loc  Loc

	Stmts []YulStatement // Block

	Names []string   // Assignment/VariableDecl targets
	Value *YulExpr    // Assignment/VariableDecl initializer

	Cond *YulExpr // If/For condition
	Body []YulStatement // If/For/Switch/FunctionDef body

	ForInit []YulStatement
	ForPost []YulStatement

	Cases       []YulCase // Switch
	HasDefault  bool
	DefaultBody []YulStatement

	FuncName   string
	FuncParams []string
	FuncReturns []string

	ExprStmt *YulExpr // ExpressionStmt (a bare call for effect)
}

// YulCase is one `case <literal> { ... }` arm of a switch.
type YulCase struct {
	Value *YulExpr
	Body  []YulStatement
}

// YulExprKind tags a Yul expression.
type YulExprKind uint8

const (
	YulLiteral YulExprKind = iota
	YulIdentifier
	YulCall
)

// YulExpr is a Yul expression: a literal, an identifier reference, or a
// call to either a builtin or a user-defined Yul function.
type YulExpr struct {
	Kind YulExprKind
	Loc  Loc

	LiteralValue uint64
	Name         string
	Args         []YulExpr
}

// ResolveYulBlock validates every call in block against the builtin
// catalogue for target, reporting arity/availability errors into diags,
// and records whether the containing function reads or writes state, or
// reads the call's wei value via the callvalue builtin — the only
// representation of Solidity's msg.value at this level of the IR, and
// so the sole source InferMutability has for raising a function to the
// Payable tier (spec.md §4.6).
func ResolveYulBlock(diags *Collector, target Target, userFuncs map[string]int, block []YulStatement) (readsState, writesState, readsCallValue bool) {
	var walk func(stmts []YulStatement)
	var walkExpr func(e *YulExpr)

	walkExpr = func(e *YulExpr) {
		if e == nil || e.Kind != YulCall {
			return
		}
		for i := range e.Args {
			walkExpr(&e.Args[i])
		}
		if _, isUser := userFuncs[e.Name]; isUser {
			return
		}
		b, ok := LookupYulBuiltin(e.Name)
		if !ok {
			diags.Errorf(e.Loc, "function %q not found", e.Name)
			return
		}
		if len(e.Args) != b.ArgCount {
			diags.Errorf(e.Loc, "function %q expects %d arguments, got %d", e.Name, b.ArgCount, len(e.Args))
		}
		if !b.AvailableOn(target) {
			diags.Errorf(e.Loc, "builtin %q is not available on target %s", e.Name, target)
		}
		if b.ReadsState {
			readsState = true
		}
		if b.WritesState {
			writesState = true
		}
		if e.Name == "callvalue" {
			readsCallValue = true
		}
	}

	walk = func(stmts []YulStatement) {
		for i := range stmts {
			s := &stmts[i]
			switch s.Kind {
			case YulBlock:
				walk(s.Stmts)
			case YulAssignment, YulVariableDecl:
				walkExpr(s.Value)
			case YulExpressionStmt:
				walkExpr(s.ExprStmt)
			case YulIf:
				walkExpr(s.Cond)
				walk(s.Body)
			case YulFor:
				walk(s.ForInit)
				walkExpr(s.Cond)
				walk(s.ForPost)
				walk(s.Body)
			case YulSwitch:
				walkExpr(s.Cond)
				for _, c := range s.Cases {
					walk(c.Body)
				}
				walk(s.DefaultBody)
			case YulFunctionDef:
				walk(s.Body)
			}
		}
	}

	walk(block)
	return readsState, writesState, readsCallValue
}
