package core

// EnumDecl is a resolved enum definition.
type EnumDecl struct {
	Name   string
	Loc    Loc
	Values []string
}

// StructField is one resolved field of a struct.
type StructField struct {
	Name string
	Loc  Loc
	Ty   Type
}

// StructDecl is a resolved struct definition.
type StructDecl struct {
	Name   string
	Loc    Loc
	Fields []StructField
}

// EventField is one field of an event, optionally indexed.
type EventField struct {
	Name    string
	Ty      Type
	Indexed bool
}

// EventDecl is a resolved event definition.
type EventDecl struct {
	Name       string
	Loc        Loc
	Fields     []EventField
	ContractIdx int // -1 for a free (non-contract) event
}

// ErrorField is one field of a custom error.
type ErrorField struct {
	Name string
	Ty   Type
}

// ErrorDecl is a resolved custom error definition.
type ErrorDecl struct {
	Name        string
	Loc         Loc
	Fields      []ErrorField
	ContractIdx int
}

// Visibility is a function's external visibility.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisInternal
	VisPublic
	VisExternal
)

// Param is a function parameter or return value.
type Param struct {
	Name string
	Loc  Loc
	Ty   Type
}

// Function is a resolved, analyzed function (free or contract-owned).
// Body starts as typed Statements and is later lowered into Cfg.
type Function struct {
	Name        string
	Loc         Loc
	ContractIdx int // -1 for a free function
	Params      []Param
	Returns     []Param
	Mutability  Mutability
	Visibility  Visibility
	Virtual     bool
	Override    bool
	IsConstructor bool

	Body []Statement
	Cfg  *ControlFlowGraph // nil until the CFG builder has run

	Selector    [4]byte
	HasSelector bool

	// Accumulated across every StmtAssembly block lowered into this
	// function's body; feeds InferMutability (spec.md §4.6): a builtin
	// flagged read_state/modify_state lifts the function's inferred tier
	// just as a storage read/write in ordinary Solidity would, and
	// callvalue is the only way inline assembly observes msg.value.
	YulReadsState     bool
	YulWritesState    bool
	YulReadsCallValue bool
}

// ContractKind distinguishes abstract contracts, concrete contracts,
// interfaces, and libraries.
type ContractKind uint8

const (
	KindContractConcrete ContractKind = iota
	KindContractAbstract
	KindContractInterface
	KindContractLibrary
)

// StateVariable is one contract-level variable declaration.
type StateVariable struct {
	Name     string
	Loc      Loc
	Ty       Type
	Constant bool
	Immutable bool
	Slot     *BigIntOrNil // nil for constants/immutables
}

// BigIntOrNil wraps a storage slot so the zero value (no slot assigned)
// is distinguishable from slot 0.
type BigIntOrNil struct {
	Value uint64 // slots are assigned monotonically; uint64 is ample headroom
	Valid bool
}

// Contract is a resolved contract/interface/library declaration.
type Contract struct {
	Name  string
	Loc   Loc
	Doc   string
	Kind  ContractKind
	Bases []int // declared base contract indices, declaration order

	Linearization []int // computed by Linearize; nil until the assembler runs

	Variables []StateVariable
	Functions []int // indices into Namespace.Functions owned by this contract
	Events    []int
	Errors    []int
	Structs   []int
	Enums     []int

	NextSlot uint64
	Scope    *Scope
}

// IsConcrete reports whether the contract may be deployed directly.
func (c *Contract) IsConcrete() bool { return c.Kind == KindContractConcrete }

// Namespace owns every declaration produced by a single compile, in
// dense index-addressable vectors; cross-references are always indices,
// never pointers (spec.md §3.4, §9).
type Namespace struct {
	Contracts []Contract
	Enums     []EnumDecl
	Structs   []StructDecl
	Events    []EventDecl
	Errors    []ErrorDecl
	Functions []Function

	FileScope *Scope
	Target    Target

	Diagnostics Collector
}

// NewNamespace returns an empty Namespace ready for declarations to be
// registered into its file-level scope.
func NewNamespace(target Target) *Namespace {
	return &Namespace{
		FileScope: NewScope(nil),
		Target:    target,
	}
}

// IsDerivedFrom reports whether the contract at derivedIdx has baseIdx
// anywhere in its linearization (used by Coerce for implicit
// Contract(C) -> Contract(Base) conversions).
func (ns *Namespace) IsDerivedFrom(derivedIdx, baseIdx int) bool {
	if derivedIdx == baseIdx {
		return true
	}
	if derivedIdx < 0 || derivedIdx >= len(ns.Contracts) {
		return false
	}
	for _, idx := range ns.Contracts[derivedIdx].Linearization {
		if idx == baseIdx {
			return true
		}
	}
	return false
}

// ResolveNamedType implements spec.md §4.1's resolve_type for
// Unresolved(name) lookups: it walks scope then enclosing scopes for
// enum, struct, or contract names. Primitive, array and mapping types are
// constructed directly by the caller and never pass through here.
func (ns *Namespace) ResolveNamedType(scope *Scope, ident Identifier) (Type, bool) {
	sym, _, ok := lookup(scope, ident.Name)
	if !ok {
		ns.Diagnostics.Errorf(ident.Loc, "type %q not found", ident.Name)
		return Type{}, false
	}
	switch sym.Kind {
	case SymEnum:
		return EnumType(sym.Idx), true
	case SymStruct:
		return StructType(sym.Idx), true
	case SymContract:
		return ContractType(sym.Idx), true
	default:
		ns.Diagnostics.Errorf(ident.Loc, "%q is not a type", ident.Name)
		return Type{}, false
	}
}
