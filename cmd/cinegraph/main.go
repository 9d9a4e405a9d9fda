package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph/cmd/cinegraph/commands"
	"github.com/cinegraph/cinegraph/logger"
)

var rootCmd = &cobra.Command{
	Use:   "cinegraph",
	Short: "CineGraph - interactive movie graph visualization",
	Long: `CineGraph - force-directed graph visualization for movie datasets.

CineGraph loads a movie metadata dataset, derives similarity, co-actor,
timeline, and entity-relationship graphs from it, runs a force-directed
layout to convergence, and exports the result as a self-contained
interactive HTML file.

Available commands:
  export  - Compute layouts and write an interactive HTML file
  stats   - Show dataset and graph statistics
  modes   - List the available layout modes
  watch   - Re-export whenever a dataset file changes
  version - Show version information

Examples:
  cinegraph export movies.json                 # Export with the saved mode
  cinegraph export movies.json --mode timeline # Open on the timeline view
  cinegraph stats movies.json                  # Node and link counts
  cinegraph watch movies.json --out graph.html # Live re-export on edits`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(false, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.ExportCmd)
	rootCmd.AddCommand(commands.StatsCmd)
	rootCmd.AddCommand(commands.ModesCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
