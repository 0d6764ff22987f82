package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"peprep/internal/export"
	"peprep/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a CSV of procedural exam questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		output, _ := cmd.Flags().GetString("output")
		seed, _ := cmd.Flags().GetInt64("seed")

		if count < 1 {
			return fmt.Errorf("count must be at least 1, got %d", count)
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		g := generate.NewWithRand(rand.New(rand.NewSource(seed)))
		set, err := g.Set(count)
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer f.Close()

		if err := export.WriteCSV(f, set); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}

		logger.Info("questions generated", "count", count, "output", output)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("count", "n", 100, "Number of questions to generate")
	generateCmd.Flags().StringP("output", "o", "fpe_pe_questions.csv", "Output CSV file")
	generateCmd.Flags().Int64("seed", 0, "Random seed (0 means clock-seeded)")
}
