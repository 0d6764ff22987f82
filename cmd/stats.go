package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show all-time practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cleanup, err := buildContext(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		led := ctx.Ledger
		fmt.Printf("Bank size:       %d\n", ctx.Bank.Len())
		fmt.Printf("Questions seen:  %d\n", led.UsedCount())
		fmt.Printf("Unseen pool:     %d\n", ctx.Remaining())
		fmt.Printf("Ever missed:     %d\n", len(led.WrongIDs()))
		fmt.Printf("Answered:        %d\n", led.Answered)
		fmt.Printf("Correct:         %d\n", led.Correct)
		fmt.Printf("Accuracy:        %.1f%%\n", led.Accuracy()*100)

		sessions, correct, answered, err := ctx.History.Totals()
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		fmt.Printf("\nSessions taken:  %d\n", sessions)
		if answered > 0 {
			fmt.Printf("Session average: %.1f%%\n", float64(correct)/float64(answered)*100)
		}
		return nil
	},
}
