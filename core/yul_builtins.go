package core

// yul_builtins.go — the static Yul builtin catalogue, modeled directly on
// the teacher's gas_table.go + opcode_dispatcher.go pair: a flat
// `[]yulBuiltin` table is registered once into a `map[string]*yulBuiltin`
// at init time, panicking on a duplicate name exactly the way the
// teacher's Register panics on an opcode collision (see DESIGN.md).

// yulBuiltin is one entry of the static builtin table (spec.md §4.6):
// name, fixed arity, return count, whether the call stops execution, its
// per-target availability, and whether it reads or writes contract state.
type yulBuiltin struct {
	Name           string
	ArgCount       int
	ReturnCount    int
	StopsExecution bool
	Availability   uint8 // bitmask, see Target.targetBit
	ReadsState     bool
	WritesState    bool
}

// AvailableOn reports whether b may be used when compiling for target.
func (b *yulBuiltin) AvailableOn(target Target) bool {
	return b.Availability&target.targetBit() != 0
}

// allTargets is the availability mask for a builtin valid on every
// supported target.
const allTargets = uint8(1)<<uint8(TargetEVMEwasm) |
	uint8(1)<<uint8(TargetPolkadotWASM) |
	uint8(1)<<uint8(TargetSolanaBPF) |
	uint8(1)<<uint8(TargetSoroban)

// evmLike is the availability mask for builtins meaningful only on
// account/storage-model targets (ewasm, Polkadot WASM); Solana-BPF and
// Soroban model storage and calls differently and reject these at
// resolve time.
const evmLike = uint8(1)<<uint8(TargetEVMEwasm) | uint8(1)<<uint8(TargetPolkadotWASM)

var yulCatalogue = []yulBuiltin{
	// Arithmetic
	{Name: "add", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "sub", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "mul", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "div", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "sdiv", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "mod", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "smod", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "exp", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "addmod", ArgCount: 3, ReturnCount: 1, Availability: allTargets},
	{Name: "mulmod", ArgCount: 3, ReturnCount: 1, Availability: allTargets},
	{Name: "signextend", ArgCount: 2, ReturnCount: 1, Availability: allTargets},

	// Comparisons
	{Name: "lt", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "gt", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "slt", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "sgt", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "eq", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "iszero", ArgCount: 1, ReturnCount: 1, Availability: allTargets},

	// Bitwise
	{Name: "and", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "or", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "xor", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "not", ArgCount: 1, ReturnCount: 1, Availability: allTargets},
	{Name: "byte", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "shl", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "shr", ArgCount: 2, ReturnCount: 1, Availability: allTargets},
	{Name: "sar", ArgCount: 2, ReturnCount: 1, Availability: allTargets},

	// Memory
	{Name: "mload", ArgCount: 1, ReturnCount: 1, Availability: allTargets},
	{Name: "mstore", ArgCount: 2, ReturnCount: 0, Availability: allTargets},
	{Name: "mstore8", ArgCount: 2, ReturnCount: 0, Availability: allTargets},
	{Name: "msize", ArgCount: 0, ReturnCount: 1, Availability: allTargets},

	// Storage
	{Name: "sload", ArgCount: 1, ReturnCount: 1, Availability: evmLike, ReadsState: true},
	{Name: "sstore", ArgCount: 2, ReturnCount: 0, Availability: evmLike, WritesState: true},

	// Control
	{Name: "stop", ArgCount: 0, ReturnCount: 0, StopsExecution: true, Availability: allTargets},
	{Name: "return", ArgCount: 2, ReturnCount: 0, StopsExecution: true, Availability: allTargets},
	{Name: "revert", ArgCount: 2, ReturnCount: 0, StopsExecution: true, Availability: allTargets},
	{Name: "invalid", ArgCount: 0, ReturnCount: 0, StopsExecution: true, Availability: allTargets},
	{Name: "selfdestruct", ArgCount: 1, ReturnCount: 0, StopsExecution: true, Availability: evmLike, WritesState: true},

	// Cryptography
	{Name: "keccak256", ArgCount: 2, ReturnCount: 1, Availability: allTargets},

	// Environment
	{Name: "address", ArgCount: 0, ReturnCount: 1, Availability: allTargets, ReadsState: true},
	{Name: "caller", ArgCount: 0, ReturnCount: 1, Availability: allTargets, ReadsState: true},
	{Name: "callvalue", ArgCount: 0, ReturnCount: 1, Availability: allTargets, ReadsState: true},
	{Name: "calldataload", ArgCount: 1, ReturnCount: 1, Availability: allTargets},
	{Name: "calldatasize", ArgCount: 0, ReturnCount: 1, Availability: allTargets},
	{Name: "calldatacopy", ArgCount: 3, ReturnCount: 0, Availability: allTargets},
	{Name: "codesize", ArgCount: 0, ReturnCount: 1, Availability: allTargets},
	{Name: "codecopy", ArgCount: 3, ReturnCount: 0, Availability: allTargets},
	{Name: "gasprice", ArgCount: 0, ReturnCount: 1, Availability: evmLike, ReadsState: true},
	{Name: "extcodesize", ArgCount: 1, ReturnCount: 1, Availability: evmLike, ReadsState: true},
	{Name: "extcodecopy", ArgCount: 4, ReturnCount: 0, Availability: evmLike, ReadsState: true},
	{Name: "returndatasize", ArgCount: 0, ReturnCount: 1, Availability: allTargets},
	{Name: "returndatacopy", ArgCount: 3, ReturnCount: 0, Availability: allTargets},
	{Name: "extcodehash", ArgCount: 1, ReturnCount: 1, Availability: evmLike, ReadsState: true},
	{Name: "chainid", ArgCount: 0, ReturnCount: 1, Availability: allTargets, ReadsState: true},
	{Name: "balance", ArgCount: 1, ReturnCount: 1, Availability: evmLike, ReadsState: true},
	{Name: "selfbalance", ArgCount: 0, ReturnCount: 1, Availability: evmLike, ReadsState: true},
	{Name: "gas", ArgCount: 0, ReturnCount: 1, Availability: allTargets, ReadsState: true},

	// Block introspection
	{Name: "number", ArgCount: 0, ReturnCount: 1, Availability: allTargets, ReadsState: true},
	{Name: "timestamp", ArgCount: 0, ReturnCount: 1, Availability: allTargets, ReadsState: true},
	{Name: "gaslimit", ArgCount: 0, ReturnCount: 1, Availability: evmLike, ReadsState: true},
	{Name: "difficulty", ArgCount: 0, ReturnCount: 1, Availability: uint8(1) << uint8(TargetEVMEwasm), ReadsState: true},
	{Name: "prevrandao", ArgCount: 0, ReturnCount: 1, Availability: evmLike, ReadsState: true},
	{Name: "blockhash", ArgCount: 1, ReturnCount: 1, Availability: evmLike, ReadsState: true},
	{Name: "basefee", ArgCount: 0, ReturnCount: 1, Availability: uint8(1) << uint8(TargetEVMEwasm), ReadsState: true},

	// External calls
	{Name: "call", ArgCount: 7, ReturnCount: 1, Availability: evmLike, ReadsState: true, WritesState: true},
	{Name: "callcode", ArgCount: 7, ReturnCount: 1, Availability: evmLike, ReadsState: true, WritesState: true},
	{Name: "delegatecall", ArgCount: 6, ReturnCount: 1, Availability: evmLike, ReadsState: true, WritesState: true},
	{Name: "staticcall", ArgCount: 6, ReturnCount: 1, Availability: allTargets, ReadsState: true},
	{Name: "create", ArgCount: 3, ReturnCount: 1, Availability: evmLike, WritesState: true},
	{Name: "create2", ArgCount: 4, ReturnCount: 1, Availability: evmLike, WritesState: true},

	// Logs
	{Name: "log0", ArgCount: 2, ReturnCount: 0, Availability: evmLike, WritesState: true},
	{Name: "log1", ArgCount: 3, ReturnCount: 0, Availability: evmLike, WritesState: true},
	{Name: "log2", ArgCount: 4, ReturnCount: 0, Availability: evmLike, WritesState: true},
	{Name: "log3", ArgCount: 5, ReturnCount: 0, Availability: evmLike, WritesState: true},
	{Name: "log4", ArgCount: 6, ReturnCount: 0, Availability: evmLike, WritesState: true},

	// Pops
	{Name: "pop", ArgCount: 1, ReturnCount: 0, Availability: allTargets},
}

var yulBuiltinTable = make(map[string]*yulBuiltin, len(yulCatalogue))

func init() {
	for i := range yulCatalogue {
		b := &yulCatalogue[i]
		if _, exists := yulBuiltinTable[b.Name]; exists {
			Bug("yul_builtins: duplicate builtin name %q", b.Name)
		}
		yulBuiltinTable[b.Name] = b
	}
}

// LookupYulBuiltin returns the catalogue entry for name, if any.
func LookupYulBuiltin(name string) (*yulBuiltin, bool) {
	b, ok := yulBuiltinTable[name]
	return b, ok
}
