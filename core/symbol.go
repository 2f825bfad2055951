package core

// Identifier bundles a name with the location it was spelled at.
type Identifier struct {
	Name string
	Loc  Loc
}

// SymbolKind tags the variant carried by a Symbol.
type SymbolKind uint8

const (
	SymEnum SymbolKind = iota
	SymStruct
	SymEvent
	SymError
	SymFunction
	SymVariable
	SymContract
)

// OverloadEntry is one candidate in an overloadable (event/function)
// symbol's list; each carries its own Loc since overloads are declared at
// different source locations.
type OverloadEntry struct {
	Loc Loc
	Idx int
}

// Symbol is a name binding in a Scope. Event and Function bindings
// support overloading and therefore carry a list of candidates instead of
// a single index (spec.md §3.3).
type Symbol struct {
	Kind      SymbolKind
	Loc       Loc // declaration location for non-overloadable kinds
	Idx       int // vector index for Enum/Struct/Variable/Contract
	Overloads []OverloadEntry // populated for Event/Function
}

func (s Symbol) isOverloadable() bool { return s.Kind == SymEvent || s.Kind == SymFunction }

// Scope is a single lexical binding level: a contract body, a function
// body block, or the free-standing (file-level) namespace scope.
type Scope struct {
	parent *Scope
	names  map[string]Symbol
}

// NewScope creates a scope nested inside parent (nil for the outermost
// file-level scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, names: make(map[string]Symbol)}
}

// AddSymbol implements spec.md §4.1's add_symbol operation: it fails with
// a duplicate-declaration diagnostic citing the previous location and
// returns false if ident.Name already binds in scope, except that
// functions and events aggregate into an overload list instead of
// conflicting.
func (ns *Namespace) AddSymbol(scope *Scope, ident Identifier, sym Symbol) bool {
	existing, ok := scope.names[ident.Name]
	if !ok {
		scope.names[ident.Name] = sym
		return true
	}

	if existing.isOverloadable() && sym.isOverloadable() && existing.Kind == sym.Kind {
		existing.Overloads = append(existing.Overloads, sym.Overloads...)
		scope.names[ident.Name] = existing
		return true
	}

	prevLoc := existing.Loc
	if len(existing.Overloads) > 0 {
		prevLoc = existing.Overloads[0].Loc
	}
	ns.Diagnostics.Emit(Error, ident.Loc, "\""+ident.Name+"\" is already declared",
		Note{Loc: prevLoc, Message: "previous declaration is here"})
	return false
}

// lookup walks scope and its ancestors for name, returning the nearest
// binding and the scope it was found in (for shadowing checks).
func lookup(scope *Scope, name string) (Symbol, *Scope, bool) {
	for s := scope; s != nil; s = s.parent {
		if sym, ok := s.names[name]; ok {
			return sym, s, true
		}
	}
	return Symbol{}, nil, false
}

// ResolveFunc implements spec.md §4.1's resolve_func: it returns the
// candidate overload set bound to ident, or nil if unbound or bound to a
// non-function symbol.
func (ns *Namespace) ResolveFunc(scope *Scope, ident Identifier) []OverloadEntry {
	sym, _, ok := lookup(scope, ident.Name)
	if !ok || sym.Kind != SymFunction {
		return nil
	}
	return sym.Overloads
}

// ResolveVar implements spec.md §4.1's resolve_var: it rejects
// enums/functions used where a variable was expected.
func (ns *Namespace) ResolveVar(scope *Scope, ident Identifier) (int, bool) {
	sym, _, ok := lookup(scope, ident.Name)
	if !ok {
		ns.Diagnostics.Errorf(ident.Loc, "%q is not declared", ident.Name)
		return 0, false
	}
	if sym.Kind != SymVariable {
		ns.Diagnostics.Errorf(ident.Loc, "%q is not a variable", ident.Name)
		return 0, false
	}
	return sym.Idx, true
}

// CheckShadowing implements spec.md §4.1's check_shadowing: it emits a
// warning (never an error) if ident is already bound in an outer scope.
func (ns *Namespace) CheckShadowing(scope *Scope, ident Identifier) {
	if scope.parent == nil {
		return
	}
	if _, foundScope, ok := lookup(scope.parent, ident.Name); ok {
		_ = foundScope
		ns.Diagnostics.Warningf(ident.Loc, "declaration of %q shadows an outer symbol", ident.Name)
	}
}
