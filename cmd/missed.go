package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"peprep/internal/appctx"
	"peprep/internal/export"
)

var missedCmd = &cobra.Command{
	Use:   "missed",
	Short: "Show every question ever answered wrong",
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, _ := cmd.Flags().GetBool("detail")

		ctx, cleanup, err := buildContext(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if !detail {
			return export.WriteWrongIDs(os.Stdout, ctx.Ledger.WrongIDs())
		}

		rows, err := missedDetail(ctx)
		if err != nil {
			return err
		}
		return export.WriteWrongAnswerReport(os.Stdout, rows)
	},
}

// missedDetail resolves wrong answers for the detailed report. History
// attempts carry each miss's question text, so they resolve even when the
// current bank no longer holds the id (generated banks mint fresh ids every
// run). Misses history has never recorded fall back to the loaded bank.
func missedDetail(ctx *appctx.Context) ([]export.MissedQuestion, error) {
	var rows []export.MissedQuestion
	seen := make(map[string]bool)

	if ctx.History != nil {
		attempts, err := ctx.History.MissedEver()
		if err != nil {
			return nil, fmt.Errorf("read missed history: %w", err)
		}
		for _, a := range attempts {
			rows = append(rows, export.MissedQuestion{
				ID:      a.QuestionID,
				Text:    a.QuestionText,
				Correct: a.CorrectLetters,
			})
			seen[a.QuestionID] = true
		}
	}

	for _, q := range ctx.MissedQuestions() {
		if seen[q.ID] {
			continue
		}
		rows = append(rows, export.MissedQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Correct: q.CorrectLetters(),
		})
	}
	return rows, nil
}

func init() {
	missedCmd.Flags().Bool("detail", false, "Print full question text and correct answers")
}
