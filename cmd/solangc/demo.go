package main

import (
	"github.com/hyperledger-solang/solang-sub008/core"
	"github.com/hyperledger-solang/solang-sub008/internal/fixture"
)

// buildDemoContract assembles a minimal fixture contract in place of a
// real parse: a single ERC20-shaped `balanceOf(address) view returns
// (uint256)` function over one mapping state variable, enough to drive
// every pipeline stage without needing the external front end spec.md
// §1 puts out of scope.
func buildDemoContract(target core.Target) *core.Namespace {
	b := fixture.New(target)

	c := b.Contract("Token", core.KindContractConcrete)
	b.StateVar(c, "balances", core.MappingType(core.AddressType(false), core.UintType(256)), false, false)

	addrParam := fixture.Param("owner", core.AddressType(false))
	retParam := fixture.Param("", core.UintType(256))

	balanceExpr := core.Expression{
		Kind: core.ExprStorageLoad,
		Loc:  core.Implicit(),
		Ty:   core.UintType(256),
	}

	body := []core.Statement{
		fixture.Return(balanceExpr),
	}

	b.Function(c, "balanceOf", []core.Param{addrParam}, []core.Param{retParam},
		core.MutView, core.VisExternal, false, body)

	return b.NS
}
