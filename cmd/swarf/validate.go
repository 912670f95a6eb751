package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/swarf/pkg/config"
	"github.com/chazu/swarf/pkg/engine"
	"github.com/chazu/swarf/pkg/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate <design.lisp>",
	Short: "Check a design file without exporting anything",
	Long: `Evaluates the design file and runs graph validation, reporting
structural problems (cycles, dangling references, duplicate names) and
parameter problems (non-positive radii, too few segments).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	eng := engine.NewEngine()
	eng.SetDefaults(cfg.GraphDefaults())

	g, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
		return fmt.Errorf("%d evaluation error(s)", len(evalErrs))
	}

	result := graph.ValidateAll(g)
	for _, w := range result.Warnings {
		fmt.Printf("warning: node %s: %s\n", w.NodeID.Short(), w.Message)
	}
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if !result.OK() {
		return fmt.Errorf("%d validation error(s)", len(result.Errors))
	}

	fmt.Printf("%s: %d nodes, %d parts, ok\n", path, g.NodeCount(), len(g.Parts()))
	return nil
}
