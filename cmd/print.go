package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"peprep/internal/export"
	"peprep/internal/question"
	"peprep/internal/sampler"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Render a printable paper set with an answer key",
	Long:  "Render a numbered question sheet plus answer key. Printing does not mark questions as seen; the ledger is untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		output, _ := cmd.Flags().GetString("output")

		if count < 1 {
			return fmt.Errorf("count must be at least 1, got %d", count)
		}

		ctx, cleanup, err := buildContext(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		// Shuffle a copy of the bank; used marks are deliberately not
		// consulted or written.
		all := append([]*question.Question(nil), ctx.Bank.All()...)
		rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
		if count > len(all) {
			count = len(all)
		}
		set := all[:count]

		// Four-digit sheet id so printed sets can be told apart.
		setID := 1000 + rng.Intn(9000)

		w := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		if err := export.WritePrintable(w, set, setID); err != nil {
			return fmt.Errorf("write printable set: %w", err)
		}
		if output != "" {
			logger.Info("printable set written", "id", setID, "questions", len(set), "output", output)
		}
		return nil
	},
}

func init() {
	printCmd.Flags().IntP("count", "n", sampler.DefaultSessionSize, "Number of questions on the sheet")
	printCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}
