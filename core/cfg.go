package core

import "math/big"

// VarStorageKind tags where a Variable's value actually lives.
type VarStorageKind uint8

const (
	StorageLocal VarStorageKind = iota
	StorageContract
	StorageConstant
)

// VarStorage locates a Variable: a CFG-local temporary/parameter, a
// contract storage slot, or a compile-time constant.
type VarStorage struct {
	Kind     VarStorageKind
	Slot     *big.Int // StorageContract
	ConstIdx int       // StorageConstant
}

// Variable is one entry of a ControlFlowGraph's variable vector. Locals
// and parameters are addressed purely by index into this vector —
// spec.md §3.7's "Storage::Local" etc.
type Variable struct {
	Name    string
	Ty      Type
	Storage VarStorage
}

// BasicBlock is a maximal straight-line run of Instr ending in exactly
// one terminator. Phis, when non-nil, names the set of variable indices
// whose value at this block's entry depends on which predecessor was
// taken (spec.md §3.7, "Phi set").
type BasicBlock struct {
	Name  string
	Phis  []int // nil when no phi-set is needed at this join
	Instr []Instr
}

// ControlFlowGraph is the per-function lowered form the middle end hands
// to target emitters: a vector of BasicBlocks plus the Variable vector
// they index into.
type ControlFlowGraph struct {
	Blocks []BasicBlock
	Vars   []Variable
}

// InstrKind tags the variant carried by an Instr (spec.md §3.7).
type InstrKind uint8

const (
	InstrSet InstrKind = iota
	InstrEval
	InstrBranch
	InstrBranchCond
	InstrReturn
	InstrStore
	InstrSetStorage
	InstrClearStorage
	InstrSetStorageBytes
	InstrPushMemory
	InstrPopMemory
	InstrCall
	InstrExternalCall
	InstrConstructor
	InstrAbiDecode
	InstrAbiEncodeVector
	InstrHash
	InstrPrint
	InstrAssertFailure
	InstrSelfDestruct
	InstrUnreachable
)

// HashKind is the hash algorithm requested by an Instr.Hash instruction.
type HashKind uint8

const (
	HashKeccak256 HashKind = iota
	HashSha256
	HashRipemd160
)

// ExternalCallKind distinguishes call/delegatecall/staticcall semantics
// for Instr.ExternalCall.
type ExternalCallKind uint8

const (
	CallRegular ExternalCallKind = iota
	CallDelegate
	CallStatic
)

// Instr is one instruction inside a BasicBlock. Every CFG-level
// side-effect — storage writes, calls, aborts — is represented as one of
// these variants so the four generic codegen passes (§4.7) can pattern
// match exhaustively instead of re-deriving effects from Expression
// shape.
type Instr struct {
	Kind InstrKind
	Loc  Loc

	// Set / Eval
	ResultVar int
	HasResult bool
	Expr      *Expression

	// Branch / BranchCond (condition carried in Expr, shared with Set/Eval)
	TargetBB int
	TrueBB   int
	FalseBB  int

	// Return
	Values []Expression

	// Store
	DestVar int
	SrcVar  int

	// SetStorage / ClearStorage / SetStorageBytes
	StorageTy  Type
	Slot       *Expression
	LocalVar   int
	ByteOffset *Expression

	// PushMemory / PopMemory
	ArrayVar int
	ElemTy   Type
	ValueExpr *Expression

	// Call
	ResultVars []int
	BaseVar    int
	HasBase    bool
	CallFunc   int
	Args       []Expression

	// ExternalCall / Constructor
	SuccessVar   int
	HasSuccess   bool
	AddressExpr  *Expression
	ContractIdx  int
	HasContract  bool
	Value        *Expression
	Gas          *Expression
	CallKind     ExternalCallKind
	TailCall     bool
	Salt         *Expression
	HasSalt      bool
	DataVar      int
	HasDataVar   bool

	// AbiDecode
	DecodeTys    []Type
	Data         *Expression
	SelectorExpr *Expression
	HasSelector  bool
	ExceptionBB  int
	HasExceptionBB bool

	// AbiEncodeVector
	EncodeTys []Type
	Packed    bool

	// Hash
	HashAlgo HashKind

	// Print / AssertFailure / SelfDestruct
	Reason    *Expression
	Recipient *Expression
}

// IsTerminator reports whether ins ends its containing BasicBlock, per
// the well-formedness invariant of spec.md §3.7.
func (ins Instr) IsTerminator() bool {
	switch ins.Kind {
	case InstrBranch, InstrBranchCond, InstrReturn, InstrUnreachable, InstrAssertFailure, InstrSelfDestruct:
		return true
	case InstrExternalCall:
		return ins.TailCall
	default:
		return false
	}
}

// Successors returns the block indices ins may transfer control to, or
// nil if ins is not a terminator. Used by the reaching-definitions
// dataflow pass and by CFG-well-formedness checks.
func (ins Instr) Successors() []int {
	switch ins.Kind {
	case InstrBranch:
		return []int{ins.TargetBB}
	case InstrBranchCond:
		return []int{ins.TrueBB, ins.FalseBB}
	default:
		return nil
	}
}

// CheckWellFormed validates the invariants of spec.md §3.7: every block
// ends in exactly one terminator, and BranchCond successors are
// distinct. It calls Bug on violation since a malformed CFG can only
// result from a builder defect, never from user input (spec.md §7).
func (cfg *ControlFlowGraph) CheckWellFormed() {
	for i, bb := range cfg.Blocks {
		if len(bb.Instr) == 0 {
			Bug("cfg: block %q (#%d) is empty", bb.Name, i)
		}
		last := bb.Instr[len(bb.Instr)-1]
		if !last.IsTerminator() {
			Bug("cfg: block %q (#%d) does not end in a terminator", bb.Name, i)
		}
		for _, mid := range bb.Instr[:len(bb.Instr)-1] {
			if mid.IsTerminator() {
				Bug("cfg: block %q (#%d) has a terminator before its last instruction", bb.Name, i)
			}
		}
		if last.Kind == InstrBranchCond && last.TrueBB == last.FalseBB {
			Bug("cfg: block %q (#%d) has identical BranchCond successors", bb.Name, i)
		}
		if bb.Phis != nil && len(bb.Phis) == 0 {
			Bug("cfg: block %q (#%d) has an empty (non-nil) phi-set; empty sets must be elided", bb.Name, i)
		}
	}
}
