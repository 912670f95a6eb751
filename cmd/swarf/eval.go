package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/swarf/pkg/config"
	"github.com/chazu/swarf/pkg/engine"
	"github.com/chazu/swarf/pkg/export"
	"github.com/chazu/swarf/pkg/graph"
	"github.com/chazu/swarf/pkg/tessellate"
)

var (
	evalFormat string
	evalOut    string
)

var evalCmd = &cobra.Command{
	Use:   "eval <design.lisp>",
	Short: "Evaluate a design file and export its parts",
	Long: `Evaluates the Lisp design file into a design graph, validates it,
tessellates every part, and writes the result in the chosen format.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEval(args[0])
	},
}

func init() {
	evalCmd.Flags().StringVar(&evalFormat, "format", "", "output format: stl, stl-ascii, obj, json (default from config)")
	evalCmd.Flags().StringVarP(&evalOut, "out", "o", "", "output file (default derived from the input name)")
	rootCmd.AddCommand(evalCmd)
}

func runEval(path string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	parts, err := evaluateFile(cfg, path)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("%s produced no parts", path)
	}

	format := evalFormat
	if format == "" {
		format = cfg.Export.Format
	}

	outPath := evalOut
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outPath = filepath.Join(cfg.Export.OutDir, base+extensionFor(format))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))
	switch format {
	case "stl":
		err = export.WriteSTLBinary(f, name, parts)
	case "stl-ascii":
		err = export.WriteSTLASCII(f, name, parts)
	case "obj":
		err = export.WriteOBJ(f, parts)
	case "json":
		err = export.WriteSceneJSON(f, parts)
	default:
		return fmt.Errorf("unknown format %q (want stl, stl-ascii, obj, or json)", format)
	}
	if err != nil {
		return err
	}

	log.Printf("wrote %d parts to %s", len(parts), outPath)
	return nil
}

// evaluateFile runs the full pipeline up to tessellation: read, evaluate,
// validate (warnings logged, errors abort), tessellate.
func evaluateFile(cfg config.Config, path string) ([]tessellate.Part, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	eng := engine.NewEngine()
	eng.SetDefaults(cfg.GraphDefaults())

	g, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
		return nil, fmt.Errorf("%d evaluation error(s) in %s", len(evalErrs), path)
	}

	result := graph.ValidateAll(g)
	for _, w := range result.Warnings {
		log.Printf("warning: node %s: %s", w.NodeID.Short(), w.Message)
	}
	if !result.OK() {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
		return nil, fmt.Errorf("%d validation error(s) in %s", len(result.Errors), path)
	}

	return tessellate.Tessellate(g)
}

func extensionFor(format string) string {
	switch format {
	case "obj":
		return ".obj"
	case "json":
		return ".json"
	default:
		return ".stl"
	}
}
