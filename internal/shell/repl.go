package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/gish-shell/gish/internal/history"
)

// REPLOptions configure an interactive run.
type REPLOptions struct {
	// History persists executed lines; nil disables persistence.
	History *history.Repository
	// HistoryLimit caps entries seeded into the line editor.
	HistoryLimit int
	// RCFile is sourced before the first prompt when it exists.
	RCFile string
}

// RunInteractive reads and executes lines until exit or EOF, returning the
// session exit code.
func (s *Shell) RunInteractive(ctx context.Context, opts REPLOptions) (int, error) {
	sessionID := uuid.New().String()
	s.logger.Info().Str("session_id", sessionID).Msg("interactive session starting")

	if opts.RCFile != "" {
		if _, err := os.Stat(opts.RCFile); err == nil {
			if err := s.SourceFile(opts.RCFile); err != nil {
				fmt.Fprintf(s.stderr, "gish: %v\n", err)
			}
		}
		if code, exited := s.Exited(); exited {
			return code, nil
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryLimit:    opts.HistoryLimit,
		AutoComplete:    s.completer(),

		// History is written through the repository; the editor buffer is
		// fed manually so both stay in step.
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return 0, fmt.Errorf("initialize line editor: %w", err)
	}
	defer rl.Close()

	s.seedHistory(ctx, rl, opts)

	for {
		rl.SetPrompt(s.Prompt())

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := rl.SaveHistory(line); err != nil {
			s.logger.Warn().Err(err).Msg("failed to save line to editor history")
		}
		s.recordHistory(ctx, opts.History, sessionID, line)

		if err := s.ExecuteLine(line); err != nil {
			fmt.Fprintf(s.stderr, "gish: %v\n", err)
		}

		if code, exited := s.Exited(); exited {
			s.logger.Info().Str("session_id", sessionID).Int("code", code).Msg("interactive session ending")
			return code, nil
		}
	}

	s.logger.Info().Str("session_id", sessionID).Msg("interactive session ended on EOF")
	return 0, nil
}

// seedHistory loads stored history into the line editor, oldest first.
func (s *Shell) seedHistory(ctx context.Context, rl *readline.Instance, opts REPLOptions) {
	if opts.History == nil {
		return
	}

	entries, err := opts.History.Recent(ctx, opts.HistoryLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load history")
		return
	}
	for _, entry := range entries {
		if err := rl.SaveHistory(entry.Command); err != nil {
			s.logger.Warn().Err(err).Msg("failed to seed history entry")
			return
		}
	}
}

// recordHistory persists one executed line. History failures never block
// the session.
func (s *Shell) recordHistory(ctx context.Context, repo *history.Repository, sessionID, line string) {
	if repo == nil {
		return
	}
	err := repo.Append(ctx, &history.Entry{
		SessionID: sessionID,
		Command:   line,
		Cwd:       s.cwd,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to record history entry")
	}
}

// completer offers builtin and alias names for the first word and
// filesystem paths everywhere.
func (s *Shell) completer() readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.builtins)+1)
	for _, name := range s.BuiltinNames() {
		items = append(items, readline.PcItem(name, readline.PcItemDynamic(s.completePaths)))
	}
	items = append(items, readline.PcItemDynamic(s.completePaths))
	return readline.NewPrefixCompleter(items...)
}

// completePaths lists directory entries matching the word being typed.
// Directories get a trailing separator so completion can continue into
// them.
func (s *Shell) completePaths(line string) []string {
	word := line
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		word = line[i+1:]
	}

	dir, _ := filepath.Split(word)
	searchDir := dir
	if searchDir == "" {
		searchDir = s.cwd
	} else if !filepath.IsAbs(searchDir) {
		searchDir = filepath.Join(s.cwd, searchDir)
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := dir + entry.Name()
		if entry.IsDir() {
			name += string(filepath.Separator)
		}
		candidates = append(candidates, name)
	}
	return candidates
}
