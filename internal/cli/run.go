// Package cli provides the interactive shell launch path.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gish-shell/gish/internal/config"
	"github.com/gish-shell/gish/internal/history"
	"github.com/gish-shell/gish/internal/logging"
	"github.com/gish-shell/gish/internal/shell"
)

// runShell starts the interactive session. Bare `gish` lands here.
func runShell(cmd *cobra.Command) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "the interactive shell requires a terminal",
			Hint:     "run without --non-interactive and with a TTY",
			NextStep: "gish --help",
		}
	}

	ctx := cmd.Context()
	logger := logging.Component("cli")

	sh, err := shell.New(shell.Options{
		PromptTemplate: cfg.Prompt.Template,
	})
	if err != nil {
		return err
	}

	opts := shell.REPLOptions{
		HistoryLimit: cfg.History.Limit,
		RCFile:       config.RCFilePath(),
	}

	// History is a convenience, never a precondition: a broken database
	// must not cost the user their shell.
	db, err := history.Open(config.HistoryDBPath())
	if err != nil {
		logger.Warn().Err(err).Msg("history unavailable")
		fmt.Fprintf(os.Stderr, "gish: history unavailable: %v\n", err)
	} else {
		defer db.Close()
		if err := db.MigrateUp(ctx); err != nil {
			logger.Warn().Err(err).Msg("history migration failed")
			fmt.Fprintf(os.Stderr, "gish: history unavailable: %v\n", err)
		} else {
			opts.History = history.NewRepository(db)
		}
	}

	code, err := sh.RunInteractive(ctx, opts)
	if err != nil {
		return err
	}

	exitCode = code
	return nil
}
