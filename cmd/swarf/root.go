package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "swarf",
	Short: "swarf is a procedural mesh generator driven by a Lisp DSL",
	Long: `swarf evaluates Lisp design files into a graph of parametric parts
(tori, helices, sweeps, lofts, drafted solids), validates the graph, and
exports the tessellated parts as STL, OBJ, or a JSON scene.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "swarf.yaml", "path to the config file")
}
