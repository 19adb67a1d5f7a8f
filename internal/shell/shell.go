// Package shell implements the gish interactive shell session: variables,
// builtins, command dispatch, and prompt rendering.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gish-shell/gish/internal/env"
	"github.com/gish-shell/gish/internal/logging"
	"github.com/gish-shell/gish/internal/prompt"
)

// Options configure a Shell.
type Options struct {
	// PromptTemplate is the configured template, used when the PS1 shell
	// variable is unset. Empty means the built-in default.
	PromptTemplate string
	// Stdin, Stdout, Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Logger defaults to the logging package's shell component.
	Logger *zerolog.Logger
}

// Shell is one interactive session. It is not safe for concurrent use;
// everything runs on the interactive loop.
type Shell struct {
	vars     map[string]string
	builtins map[string]*Builtin
	cwd      string

	promptTemplate string

	// oneshotEnv holds a NAME=VALUE pair that applies only to the next
	// external command, as in `FOO=1 make`.
	oneshotEnv []string

	aliasDepth int

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger

	exitCode  int
	exitAsked bool
}

// New creates a session rooted in the current working directory.
func New(opts Options) (*Shell, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	logger := logging.Component("shell")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	s := &Shell{
		vars:           make(map[string]string),
		builtins:       nativeBuiltins(),
		cwd:            cwd,
		promptTemplate: opts.PromptTemplate,
		stdin:          opts.Stdin,
		stdout:         opts.Stdout,
		stderr:         opts.Stderr,
		logger:         logger,
	}
	s.SetVar("CWD", cwd)

	return s, nil
}

// Cwd returns the session working directory.
func (s *Shell) Cwd() string {
	return s.cwd
}

// ChangeDirectory moves the session (and the process) to path.
func (s *Shell) ChangeDirectory(path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.cwd, path)
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	if err := os.Chdir(resolved); err != nil {
		return err
	}

	s.cwd = resolved
	s.SetVar("CWD", resolved)
	return nil
}

// Exit asks the session to end with the given code.
func (s *Shell) Exit(code int) {
	s.exitCode = code
	s.exitAsked = true
}

// Exited reports whether exit was requested, and with what code.
func (s *Shell) Exited() (int, bool) {
	return s.exitCode, s.exitAsked
}

// PromptTemplate resolves the template for the next prompt: the PS1 shell
// variable wins, then the configured template, then the default. Re-read
// before every render so `PS1=...` takes effect immediately.
func (s *Shell) PromptTemplate() string {
	if ps1, ok := s.VarOrEnv("PS1"); ok && ps1 != "" {
		return ps1
	}
	if s.promptTemplate != "" {
		return s.promptTemplate
	}
	return prompt.DefaultTemplate
}

// Prompt renders the prompt for display against a fresh environment
// snapshot, pinned to the session's working directory.
func (s *Shell) Prompt() string {
	snap := env.Capture()
	snap.WorkingDir = s.cwd
	return prompt.Render(s.PromptTemplate(), snap)
}

// ExecuteLine expands, parses, and runs one input line. Variable expansion
// happens on the raw line before word splitting, so quoting does not
// suppress it: '$HOME' expands the same as $HOME.
func (s *Shell) ExecuteLine(line string) error {
	expanded := s.ExpandVars(line)

	cmd, err := ParseCommand(expanded)
	if err != nil {
		return err
	}
	if cmd.Empty() {
		return nil
	}

	cmd, ok := s.takeAssignment(cmd)
	if !ok {
		return nil
	}

	s.logger.Debug().Str("command", cmd.Name).Int("args", len(cmd.Args)).Msg("executing")
	return s.Execute(cmd)
}

// Execute dispatches a command to a builtin or an external program.
func (s *Shell) Execute(cmd Command) error {
	if b, ok := s.builtins[cmd.Name]; ok {
		return b.action.invoke(s, cmd)
	}
	return s.executeProgram(cmd)
}

// takeAssignment handles NAME=VALUE forms. A bare assignment sets a shell
// variable and consumes the command (ok=false). An assignment followed by a
// command becomes a one-shot environment variable for that command.
func (s *Shell) takeAssignment(cmd Command) (Command, bool) {
	name, value, found := strings.Cut(cmd.Name, "=")
	if !found || !validVarName(name) {
		return cmd, true
	}

	if len(cmd.Args) == 0 {
		s.SetVar(name, value)
		return Command{}, false
	}

	s.oneshotEnv = append(s.oneshotEnv, name+"="+value)
	return Command{Name: cmd.Args[0], Args: cmd.Args[1:]}, true
}

// executeProgram runs an external command with inherited stdio, so
// interactive children own the terminal directly.
func (s *Shell) executeProgram(cmd Command) error {
	proc := exec.Command(cmd.Name, cmd.Args...)
	proc.Dir = s.cwd
	proc.Stdin = s.stdin
	proc.Stdout = s.stdout
	proc.Stderr = s.stderr

	if len(s.oneshotEnv) > 0 {
		proc.Env = append(os.Environ(), s.oneshotEnv...)
		s.oneshotEnv = nil
	}

	// In cooked mode Ctrl-C delivers SIGINT to the whole foreground
	// process group. Catch it while the child runs so only the child
	// dies; Notify (not Ignore) keeps the child's disposition at the
	// default across exec.
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	if err := proc.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Nonzero exit is the child's business, not a shell error.
			s.logger.Debug().Str("command", cmd.Name).Int("code", exitErr.ExitCode()).Msg("command exited nonzero")
			return nil
		}
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}

	return nil
}

// SourceFile executes a file line by line. Used for the rc file and the
// source builtin.
func (s *Shell) SourceFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.ExecuteLine(line); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if _, exited := s.Exited(); exited {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}

	return nil
}

// setEnv applies an environment change, surfacing the rare failure.
func (s *Shell) setEnv(name, value string) error {
	if err := os.Setenv(name, value); err != nil {
		return fmt.Errorf("export %q: %w", name, err)
	}
	return nil
}

// home returns the home directory used by `cd` with no argument.
func (s *Shell) home() string {
	if home, ok := s.VarOrEnv("HOME"); ok && home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return s.cwd
}
