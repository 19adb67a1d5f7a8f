// Package cli implements the gish command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gish-shell/gish/internal/config"
	"github.com/gish-shell/gish/internal/logging"
)

var (
	cfgFile        string
	logLevelFlag   string
	nonInteractive bool

	cfg *config.Config

	// exitCode carries the interactive session's exit status to main.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "gish",
	Short: "A small interactive shell with a directive-based prompt",
	Long: `gish is a small interactive shell. Its prompt is a template with
%-directives: %n (username), %m (hostname), %h (working directory with the
home prefix collapsed to ~), %F{#rrggbb} (24-bit foreground color), and %f
(reset foreground). Set it via the PS1 variable or prompt.template in
config.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Log.Level
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		if err := logging.Setup(level, config.LogFilePath()); err != nil {
			// Logging is ambient; a read-only disk must not cost the prompt.
			fmt.Fprintf(os.Stderr, "gish: logging disabled: %v\n", err)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/gish/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; fail where a terminal would be required")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode returns the exit status of the interactive session, zero when
// no session ran.
func ExitCode() int {
	return exitCode
}

// GetConfig returns the loaded configuration, nil before PersistentPreRunE.
func GetConfig() *config.Config {
	return cfg
}

// PreflightError describes a precondition failure with a recovery hint.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	if e.NextStep != "" {
		msg += "\n  next: " + e.NextStep
	}
	return msg
}
