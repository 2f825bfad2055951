// Package fixture builds typed core.Namespace trees directly in memory,
// standing in for the external Solidity/Yul parser and name-resolution
// front end that would normally hand the middle end its input (spec.md
// §1: parsing and the front end are explicitly out of scope). The
// cmd/solangc demo contract is built with it, constructing just enough
// of a contract to drive the pipeline without round-tripping through
// source text. Package core's own tests cannot import it, since it
// imports core.
package fixture

import "github.com/hyperledger-solang/solang-sub008/core"

// Builder accumulates declarations into a Namespace the way a semantic
// front end would, assigning symbols as it goes so fixtures behave like
// the real pipeline's output rather than a hand-wired shortcut.
type Builder struct {
	NS *core.Namespace
}

// New returns a Builder over a fresh Namespace for the given target.
func New(target core.Target) *Builder {
	return &Builder{NS: core.NewNamespace(target)}
}

// Contract registers a new contract with the given bases (already-built
// contract indices, most-derived-last is not required — declaration
// order) and returns its index. The contract's own scope is created
// nested under the file scope.
func (b *Builder) Contract(name string, kind core.ContractKind, bases ...int) int {
	idx := len(b.NS.Contracts)
	b.NS.Contracts = append(b.NS.Contracts, core.Contract{
		Name:  name,
		Loc:   core.Implicit(),
		Kind:  kind,
		Bases: bases,
		Scope: core.NewScope(b.NS.FileScope),
	})
	b.NS.AddSymbol(b.NS.FileScope, core.Identifier{Name: name, Loc: core.Implicit()},
		core.Symbol{Kind: core.SymContract, Idx: idx})
	return idx
}

// StateVar adds a state variable to contractIdx and returns its index
// within that contract's Variables slice.
func (b *Builder) StateVar(contractIdx int, name string, ty core.Type, constant, immutable bool) int {
	c := &b.NS.Contracts[contractIdx]
	idx := len(c.Variables)
	c.Variables = append(c.Variables, core.StateVariable{
		Name: name, Loc: core.Implicit(), Ty: ty, Constant: constant, Immutable: immutable,
	})
	return idx
}

// Function registers a function (contractIdx == -1 for a free function)
// with the given signature and body, assigns it a selector unless it is
// a constructor or non-external/public, and returns its Namespace-level
// index.
func (b *Builder) Function(contractIdx int, name string, params, returns []core.Param,
	mut core.Mutability, vis core.Visibility, isCtor bool, body []core.Statement) int {

	fn := core.Function{
		Name: name, Loc: core.Implicit(), ContractIdx: contractIdx,
		Params: params, Returns: returns, Mutability: mut, Visibility: vis,
		IsConstructor: isCtor, Body: body,
	}
	idx := len(b.NS.Functions)
	b.NS.Functions = append(b.NS.Functions, fn)

	if contractIdx >= 0 {
		c := &b.NS.Contracts[contractIdx]
		c.Functions = append(c.Functions, idx)
		b.NS.AddSymbol(c.Scope, core.Identifier{Name: name, Loc: core.Implicit()},
			core.Symbol{Kind: core.SymFunction, Overloads: []core.OverloadEntry{{Idx: idx, Loc: core.Implicit()}}})
	} else {
		b.NS.AddSymbol(b.NS.FileScope, core.Identifier{Name: name, Loc: core.Implicit()},
			core.Symbol{Kind: core.SymFunction, Overloads: []core.OverloadEntry{{Idx: idx, Loc: core.Implicit()}}})
	}

	core.AssignSelector(&b.NS.Functions[idx])
	return idx
}

// Param is a small convenience constructor for core.Param literals.
func Param(name string, ty core.Type) core.Param {
	return core.Param{Name: name, Loc: core.Implicit(), Ty: ty}
}

// Statement helpers — thin wrappers that fill in Loc so test fixtures
// stay terse.

func Block(stmts ...core.Statement) core.Statement {
	return core.Statement{Kind: core.StmtBlock, Loc: core.Implicit(), Stmts: stmts}
}

func ExprStmt(e core.Expression) core.Statement {
	return core.Statement{Kind: core.StmtExpression, Loc: core.Implicit(), Expr: &e}
}

func Return(values ...core.Expression) core.Statement {
	return core.Statement{Kind: core.StmtReturn, Loc: core.Implicit(), Values: values}
}

func If(cond core.Expression, then core.Statement, els *core.Statement) core.Statement {
	return core.Statement{Kind: core.StmtIf, Loc: core.Implicit(), Cond: &cond, ThenStmt: &then, ElseStmt: els}
}

func VarDef(decl core.Param, init *core.Expression) core.Statement {
	return core.Statement{Kind: core.StmtVariableDefinition, Loc: core.Implicit(), Decl: &decl, Initializer: init}
}

func While(cond core.Expression, body core.Statement) core.Statement {
	return core.Statement{Kind: core.StmtWhile, Loc: core.Implicit(), Cond: &cond, Body: &body}
}

func Break() core.Statement    { return core.Statement{Kind: core.StmtBreak, Loc: core.Implicit()} }
func Continue() core.Statement { return core.Statement{Kind: core.StmtContinue, Loc: core.Implicit()} }

// Expression helpers.

func Var(idx int, ty core.Type) core.Expression {
	return core.Expression{Kind: core.ExprVariable, Loc: core.Implicit(), Ty: ty, VarIndex: idx}
}

func Bool(v bool) core.Expression {
	return core.Expression{Kind: core.ExprBoolLiteral, Loc: core.Implicit(), Ty: core.BoolType(), BoolValue: v}
}
