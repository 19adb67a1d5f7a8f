// Package cli provides history management commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gish-shell/gish/internal/config"
	"github.com/gish-shell/gish/internal/history"
)

var (
	historyLimit   int
	historySession string
)

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 0, "max entries to show (default from config)")
	historyListCmd.Flags().StringVar(&historySession, "session", "", "only entries from one session id")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage command history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored command history, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := history.Open(config.HistoryDBPath())
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		if err := db.MigrateUp(ctx); err != nil {
			return err
		}
		repo := history.NewRepository(db)

		limit := historyLimit
		if limit <= 0 {
			limit = cfg.History.Limit
		}

		var entries []*history.Entry
		if historySession != "" {
			entries, err = repo.BySession(ctx, historySession, limit)
		} else {
			entries, err = repo.Recent(ctx, limit)
		}
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no history yet")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				formatTimestamp(entry.CreatedAt),
				entry.Cwd,
				entry.Command,
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"WHEN", "CWD", "COMMAND"}, rows)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored command history",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := history.Open(config.HistoryDBPath())
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		if err := db.MigrateUp(ctx); err != nil {
			return err
		}

		removed, err := history.NewRepository(db).Clear(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)
		return nil
	},
}
