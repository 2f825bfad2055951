// Command solangc drives the middle end over an in-memory fixture
// contract, exercising the same pipeline stages a full front end would
// feed: linearization, storage-slot assignment, CFG construction, and
// the generic codegen passes, finishing with diagnostics output in
// either human or JSON form (spec.md §6.1, §6.2).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperledger-solang/solang-sub008/core"
	"github.com/hyperledger-solang/solang-sub008/pkg/config"
)

func main() {
	rootCmd := &cobra.Command{Use: "solangc"}
	rootCmd.AddCommand(compileCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func compileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "run the middle end over a built-in fixture contract",
	}

	var targetFlag string
	var emitFlag string
	var jsonDiags bool
	var vectorToSlice bool
	var overflowChecks bool
	var useConfig bool
	var env string

	cmd.Flags().StringVar(&targetFlag, "target", "EVM-ewasm", "EVM-ewasm|Polkadot-WASM|Solana-BPF|Soroban")
	cmd.Flags().StringVar(&emitFlag, "emit", "cfg", "cfg prints each function's CFG blocks; any other value prints diagnostics only")
	cmd.Flags().BoolVar(&jsonDiags, "diagnostics-json", false, "emit diagnostics as JSON instead of human-readable text")
	cmd.Flags().BoolVar(&vectorToSlice, "pass-vec2slice", false, "enable the vector-to-slice codegen pass")
	cmd.Flags().BoolVar(&overflowChecks, "overflow-checks", true, "instrument checked arithmetic with overflow guards")
	cmd.Flags().BoolVar(&useConfig, "config", false, "load cmd/solangc/config/default.yaml (merged with <env>.yaml when --env is set); its target, pass and diagnostics-format settings replace the flags")
	cmd.Flags().StringVar(&env, "env", "", "environment config overlay merged over default.yaml when --config is set")

	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if be, ok := r.(*core.BugError); ok {
					err = fmt.Errorf("internal compiler error: %s", be.Error())
					return
				}
				panic(r)
			}
		}()

		if useConfig {
			cfg, err := config.Load(env)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			targetFlag = cfg.Compile.Target
			vectorToSlice = cfg.Passes.VectorToSlice
			overflowChecks = cfg.Passes.OverflowChecks
			jsonDiags = cfg.Diagnostics.Format == "json"
		}

		target, ok := core.ParseTarget(targetFlag)
		if !ok {
			return fmt.Errorf("unknown target %q", targetFlag)
		}

		ns := buildDemoContract(target)
		runPipeline(ns, core.PassOptions{VectorToSlice: vectorToSlice, OverflowChecks: overflowChecks})

		if jsonDiags {
			out, err := ns.Diagnostics.JSON()
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		} else {
			ns.Diagnostics.SortStable()
			if err := ns.Diagnostics.Human(os.Stdout); err != nil {
				return err
			}
		}

		if ns.Diagnostics.HasErrors() {
			return fmt.Errorf("compilation failed")
		}

		if emitFlag == "cfg" {
			printCfgs(ns)
		}
		return nil
	}

	return cmd
}

// runPipeline threads a fully-declared Namespace through contract
// assembly and the generic codegen passes (spec.md §4.3–§4.7).
func runPipeline(ns *core.Namespace, opts core.PassOptions) {
	for i := range ns.Contracts {
		if ns.Contracts[i].Linearization == nil {
			core.Linearize(ns, i)
		}
	}
	for i := range ns.Contracts {
		core.AssignAllSlots(ns, i)
		core.MatchOverrides(ns, i)
		core.CheckConstructorMutability(ns, i)
	}
	for i := range ns.Functions {
		fn := &ns.Functions[i]
		core.BuildCfg(ns, fn)
		ns.InferMutability(fn)
	}
	core.RunPasses(ns, opts)
}

func printCfgs(ns *core.Namespace) {
	for _, fn := range ns.Functions {
		if fn.Cfg == nil {
			continue
		}
		fmt.Printf("function %s:\n", fn.Name)
		for _, bb := range fn.Cfg.Blocks {
			fmt.Printf("  %s (%d instrs)\n", bb.Name, len(bb.Instr))
		}
	}
}
