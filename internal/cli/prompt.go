// Package cli provides prompt inspection commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gish-shell/gish/internal/env"
	"github.com/gish-shell/gish/internal/prompt"
	"github.com/gish-shell/gish/internal/tui"
)

var renderEscape bool

func init() {
	promptRenderCmd.Flags().BoolVar(&renderEscape, "escape", false, "print ANSI escape bytes as \\x1b text")

	promptCmd.AddCommand(promptRenderCmd)
	promptCmd.AddCommand(promptEditCmd)
	rootCmd.AddCommand(promptCmd)
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Inspect and try out prompt templates",
}

var promptRenderCmd = &cobra.Command{
	Use:   "render [template]",
	Short: "Render a prompt template against the live environment",
	Long: `Render a prompt template once and print the result. The template
comes from the argument, then the PS1 environment variable, then
prompt.template in the config file, then the built-in default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		template := resolveTemplate(args)
		rendered := prompt.Render(template, env.Capture())

		if renderEscape {
			rendered = strings.ReplaceAll(rendered, "\x1b", `\x1b`)
		}

		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

var promptEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Try prompt templates interactively with a live preview",
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsNonInteractive() {
			return &PreflightError{
				Message:  "the prompt playground requires an interactive terminal",
				Hint:     "run with a TTY, or use `gish prompt render` instead",
				NextStep: "gish prompt render --escape",
			}
		}

		final, err := tui.RunPlayground(resolveTemplate(nil), env.Capture())
		if err != nil {
			return err
		}
		if final != "" {
			fmt.Fprintln(cmd.OutOrStdout(), final)
		}
		return nil
	},
}

func resolveTemplate(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if ps1 := os.Getenv("PS1"); ps1 != "" {
		return ps1
	}
	if cfg != nil && cfg.Prompt.Template != "" {
		return cfg.Prompt.Template
	}
	return prompt.DefaultTemplate
}
