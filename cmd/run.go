package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"peprep/internal/app"
	"peprep/internal/appctx"
	"peprep/internal/bankxlsx"
	"peprep/internal/generate"
	"peprep/internal/history"
	"peprep/internal/ledger"
	"peprep/internal/question"
	"peprep/internal/topics"
)

// runApp builds the application context and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx, cleanup, err := buildContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return app.Run(ctx)
}

// buildContext loads the bank, ledger, topics, and history store from the
// command's flags. The returned cleanup closes the history store.
func buildContext(cmd *cobra.Command) (*appctx.Context, func(), error) {
	bank, err := loadBank(cmd)
	if err != nil {
		return nil, nil, err
	}

	ledgerPath, err := resolveLedgerPath(cmd)
	if err != nil {
		return nil, nil, err
	}
	led := ledger.New()
	if err := led.Load(ledgerPath); err != nil {
		// A missing ledger is a fresh start; anything else is fatal.
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
	}

	ctx := appctx.New(bank, led, ledgerPath)

	if topicsPath, _ := cmd.Flags().GetString("topics"); topicsPath != "" {
		set, err := topics.Load(topicsPath)
		if err != nil {
			return nil, nil, err
		}
		ctx.Topics = set
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, err
	}
	hs, err := history.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	ctx.History = hs

	return ctx, func() { hs.Close() }, nil
}

// loadBank reads the workbook named by --bank, or falls back to a
// procedurally generated set so the app is usable out of the box.
func loadBank(cmd *cobra.Command) (*question.Bank, error) {
	bank := question.NewBank()

	path, _ := cmd.Flags().GetString("bank")
	if path == "" {
		logger.Info("no bank file given, generating questions", "count", generatedBankSize)
		g := generate.NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
		set, err := g.Set(generatedBankSize)
		if err != nil {
			return nil, fmt.Errorf("generate bank: %w", err)
		}
		for _, gq := range set {
			if err := bank.Add(gq.Question()); err != nil {
				return nil, err
			}
		}
		return bank, nil
	}

	qs, err := bankxlsx.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", path, err)
	}
	for _, q := range qs {
		if err := bank.Add(q); err != nil {
			return nil, err
		}
	}
	logger.Info("bank loaded", "path", path, "questions", bank.Len())
	return bank, nil
}

// generatedBankSize is the fallback pool size when no workbook is given.
const generatedBankSize = 100

// resolveLedgerPath returns the ledger path using --ledger (highest
// priority), then PEPREP_LEDGER, then the default XDG path.
func resolveLedgerPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("ledger"); p != "" {
		return p, nil
	}
	return ledger.DefaultPath()
}

// resolveDBPath returns the history database path using --db (highest
// priority), then PEPREP_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return history.DefaultPath()
}
