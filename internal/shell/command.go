package shell

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote indicates a line ended inside a quoted word.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Command is a parsed command line: a name and its arguments.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a line into a command. Returns a zero Command when
// the line holds no words.
func ParseCommand(line string) (Command, error) {
	words, err := SplitWords(line)
	if err != nil {
		return Command{}, err
	}
	if len(words) == 0 {
		return Command{}, nil
	}
	return Command{Name: words[0], Args: words[1:]}, nil
}

// Empty reports whether the command has no name.
func (c Command) Empty() bool {
	return c.Name == ""
}

// Shift drops the name and promotes the first argument, used by builtins
// like `command` and `exec` that wrap another command.
func (c Command) Shift() Command {
	if len(c.Args) == 0 {
		return Command{}
	}
	return Command{Name: c.Args[0], Args: c.Args[1:]}
}

// SplitWords splits a line into words. Single quotes preserve everything
// literally, double quotes allow \" and \\ escapes, and a backslash outside
// quotes escapes the next character. No globbing, no redirection.
func SplitWords(line string) ([]string, error) {
	var (
		words   []string
		word    strings.Builder
		inWord  bool
		quote   byte // 0, '\'' or '"'
		escaped bool
	)

	flush := func() {
		if inWord {
			words = append(words, word.String())
			word.Reset()
			inWord = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		if escaped {
			word.WriteByte(c)
			escaped = false
			continue
		}

		switch {
		case quote == '\'':
			if c == '\'' {
				quote = 0
			} else {
				word.WriteByte(c)
			}
		case quote == '"':
			switch c {
			case '"':
				quote = 0
			case '\\':
				if i+1 < len(line) && (line[i+1] == '"' || line[i+1] == '\\') {
					escaped = true
				} else {
					word.WriteByte(c)
				}
			default:
				word.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inWord = true
		case c == '\\':
			escaped = true
			inWord = true
		case unicode.IsSpace(rune(c)):
			flush()
		default:
			word.WriteByte(c)
			inWord = true
		}
	}

	if escaped || quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	flush()

	return words, nil
}
