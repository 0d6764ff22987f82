package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"peprep/internal/ledger"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the progress ledger",
	Long:  "Wipe seen/missed marks and counters so the whole bank is fresh again. Session history is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to reset without --yes")
		}

		ledgerPath, err := resolveLedgerPath(cmd)
		if err != nil {
			return err
		}

		led := ledger.New()
		if err := led.Load(ledgerPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		led.Reset()
		if err := led.Save(ledgerPath); err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}

		logger.Info("ledger reset", "path", ledgerPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
