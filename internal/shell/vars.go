package shell

import (
	"os"
	"strings"
)

// SetVar sets a shell variable.
func (s *Shell) SetVar(name, value string) {
	s.vars[name] = value
}

// Var returns a shell variable.
func (s *Shell) Var(name string) (string, bool) {
	value, ok := s.vars[name]
	return value, ok
}

// VarOrEnv returns a shell variable, falling back to the process
// environment.
func (s *Shell) VarOrEnv(name string) (string, bool) {
	if value, ok := s.vars[name]; ok {
		return value, true
	}
	return os.LookupEnv(name)
}

// ExpandVars replaces $NAME and ${NAME} references with shell variables or
// environment values. Unset names expand to the empty string. A $ not
// followed by a valid name stays literal.
func (s *Shell) ExpandVars(line string) string {
	var out strings.Builder
	out.Grow(len(line))

	for i := 0; i < len(line); {
		c := line[i]
		if c != '$' {
			out.WriteByte(c)
			i++
			continue
		}

		if i+1 < len(line) && line[i+1] == '{' {
			end := strings.IndexByte(line[i+2:], '}')
			if end < 0 {
				out.WriteByte('$')
				i++
				continue
			}
			name := line[i+2 : i+2+end]
			if !validVarName(name) {
				out.WriteString(line[i : i+2+end+1])
			} else if value, ok := s.VarOrEnv(name); ok {
				out.WriteString(value)
			}
			i += 2 + end + 1
			continue
		}

		nameLen := varNameLen(line[i+1:])
		if nameLen == 0 {
			out.WriteByte('$')
			i++
			continue
		}

		name := line[i+1 : i+1+nameLen]
		if value, ok := s.VarOrEnv(name); ok {
			out.WriteString(value)
		}
		i += 1 + nameLen
	}

	return out.String()
}

func varNameLen(rest string) int {
	n := 0
	for n < len(rest) && isVarNameByte(rest[n], n == 0) {
		n++
	}
	return n
}

func validVarName(name string) bool {
	if name == "" {
		return false
	}
	return varNameLen(name) == len(name)
}

func isVarNameByte(c byte, first bool) bool {
	if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return true
	}
	return !first && c >= '0' && c <= '9'
}
