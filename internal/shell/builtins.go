package shell

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// maxAliasDepth caps alias-to-alias chains before dispatch gives up.
const maxAliasDepth = 16

// ErrAliasDepthExceeded indicates an alias chain recursed too deep,
// usually an alias cycle.
var ErrAliasDepthExceeded = errors.New("alias chain too deep")

// Action is what a builtin does when dispatched: either a native function
// or an alias expanding to another command.
type Action interface {
	invoke(s *Shell, cmd Command) error
	String() string
}

type funcAction struct {
	fn func(*Shell, Command) error
}

func (funcAction) String() string { return "<builtin>" }

func (a funcAction) invoke(s *Shell, cmd Command) error {
	return a.fn(s, cmd)
}

type aliasAction struct {
	target    string
	extraArgs []string
}

func (a aliasAction) String() string {
	out := a.target
	for _, arg := range a.extraArgs {
		out += " " + arg
	}
	return out
}

func (a aliasAction) invoke(s *Shell, cmd Command) error {
	if s.aliasDepth >= maxAliasDepth {
		s.aliasDepth = 0
		return ErrAliasDepthExceeded
	}

	args := make([]string, 0, len(a.extraArgs)+len(cmd.Args))
	args = append(args, a.extraArgs...)
	args = append(args, cmd.Args...)

	s.aliasDepth++
	err := s.Execute(Command{Name: a.target, Args: args})
	s.aliasDepth = 0
	return err
}

// Builtin is a named command handled by the shell itself.
type Builtin struct {
	Name   string
	action Action
}

// IsAlias reports whether the builtin is a user-defined alias.
func (b *Builtin) IsAlias() bool {
	_, ok := b.action.(aliasAction)
	return ok
}

func (b *Builtin) String() string {
	return b.Name + "=" + b.action.String()
}

func newFuncBuiltin(name string, fn func(*Shell, Command) error) *Builtin {
	return &Builtin{Name: name, action: funcAction{fn: fn}}
}

func newAliasBuiltin(name, target string, extraArgs []string) *Builtin {
	return &Builtin{Name: name, action: aliasAction{target: target, extraArgs: extraArgs}}
}

// RegisterBuiltin adds (or replaces) a builtin.
func (s *Shell) RegisterBuiltin(b *Builtin) {
	s.builtins[b.Name] = b
}

// BuiltinNames returns all builtin and alias names, sorted.
func (s *Shell) BuiltinNames() []string {
	names := make([]string, 0, len(s.builtins))
	for name := range s.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func nativeBuiltins() map[string]*Builtin {
	builtins := make(map[string]*Builtin)
	for name, fn := range map[string]func(*Shell, Command) error{
		"cd":      builtinCd,
		"exit":    builtinExit,
		"alias":   builtinAlias,
		"export":  builtinExport,
		"source":  builtinSource,
		"command": builtinCommand,
		"exec":    builtinExec,
	} {
		builtins[name] = newFuncBuiltin(name, fn)
	}
	return builtins
}

// builtinCd changes the working directory, defaulting to home.
func builtinCd(s *Shell, cmd Command) error {
	path := s.home()
	if len(cmd.Args) > 0 {
		path = cmd.Args[0]
	}
	if err := s.ChangeDirectory(path); err != nil {
		return fmt.Errorf("cd: %q: %w", path, err)
	}
	return nil
}

// builtinExit ends the session with an optional exit code.
func builtinExit(s *Shell, cmd Command) error {
	code := 0
	if len(cmd.Args) > 0 {
		if parsed, err := strconv.Atoi(cmd.Args[0]); err == nil {
			code = parsed
		}
	}
	s.Exit(code)
	return nil
}

// builtinAlias lists, prints, defines, or deletes aliases.
//
//	alias             list everything
//	alias name        print one
//	alias name=cmd    define
//	alias name=       delete
func builtinAlias(s *Shell, cmd Command) error {
	if len(cmd.Args) == 0 {
		for _, name := range s.BuiltinNames() {
			fmt.Fprintln(s.stdout, s.builtins[name])
		}
		return nil
	}

	for _, arg := range cmd.Args {
		name, target, found := strings.Cut(arg, "=")
		switch {
		case !found:
			if b, ok := s.builtins[arg]; ok {
				fmt.Fprintln(s.stdout, b)
			} else {
				fmt.Fprintf(s.stdout, "%q is not an alias\n", arg)
			}
		case target == "":
			if b, ok := s.builtins[name]; ok && b.IsAlias() {
				delete(s.builtins, name)
			} else {
				fmt.Fprintf(s.stdout, "alias %q not found\n", name)
			}
		default:
			words, err := SplitWords(target)
			if err != nil {
				return fmt.Errorf("alias %q: %w", name, err)
			}
			if len(words) == 0 {
				return fmt.Errorf("alias %q: empty command", name)
			}
			s.RegisterBuiltin(newAliasBuiltin(name, words[0], words[1:]))
		}
	}
	return nil
}

// builtinExport copies shell variables into the process environment.
//
//	export NAME=VALUE   set
//	export NAME         promote an existing shell variable
func builtinExport(s *Shell, cmd Command) error {
	for _, arg := range cmd.Args {
		name, value, found := strings.Cut(arg, "=")
		if found {
			if err := s.setEnv(name, value); err != nil {
				return err
			}
			continue
		}
		if v, ok := s.Var(arg); ok {
			if err := s.setEnv(arg, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// builtinSource executes a file line by line.
func builtinSource(s *Shell, cmd Command) error {
	if len(cmd.Args) == 0 {
		return errors.New("source: missing file argument")
	}
	return s.SourceFile(cmd.Args[0])
}

// builtinCommand runs a program, bypassing builtins and aliases.
func builtinCommand(s *Shell, cmd Command) error {
	shifted := cmd.Shift()
	if shifted.Empty() {
		return errors.New("command: missing command argument")
	}
	return s.executeProgram(shifted)
}

// builtinExec runs a program and then ends the session.
func builtinExec(s *Shell, cmd Command) error {
	shifted := cmd.Shift()
	if shifted.Empty() {
		return errors.New("exec: missing command argument")
	}
	if err := s.executeProgram(shifted); err != nil {
		return err
	}
	s.Exit(0)
	return nil
}
