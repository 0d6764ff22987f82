package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "peprep",
	Short: "PE exam practice simulator",
	Long:  "peprep — terminal practice simulator for the PE Fire Protection exam: question bank, timed sessions, weak-area drills, and progress tracking.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// logger is the shared CLI logger. The TUI never writes to it.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("bank", "", "Path to a question workbook (.xlsx)")
	rootCmd.PersistentFlags().String("ledger", "", "Path to the progress ledger (overrides PEPREP_LEDGER)")
	rootCmd.PersistentFlags().String("db", "", "Path to the history database (overrides PEPREP_DB)")
	rootCmd.PersistentFlags().String("topics", "", "Path to a topics YAML file for targeted drills")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(missedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
