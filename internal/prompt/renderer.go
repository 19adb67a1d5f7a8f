// Package prompt expands prompt templates into display strings.
//
// A template is literal text interleaved with %-prefixed directives:
//
//	%n            username
//	%m            hostname
//	%h            working directory, home prefix collapsed to ~
//	%F{#rrggbb}   set foreground to a 24-bit RGB color
//	%f            reset foreground
//
// Malformed or unknown directives pass through literally so a bad template
// degrades to visible text instead of losing the prompt.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gish-shell/gish/internal/env"
)

// DefaultTemplate is used when neither PS1 nor configuration provides one.
const DefaultTemplate = "%F{#ff8080}%n@%m %h%f $ "

// ANSI foreground control sequences.
const (
	setForegroundFormat = "\x1b[38;2;%d;%d;%dm" // 24-bit color
	resetForeground     = "\x1b[39m"
)

type directiveKind int

const (
	kindLiteral directiveKind = iota
	kindUsername
	kindHostname
	kindWorkingDir
	kindSetForeground
	kindResetForeground
)

// directive is one parsed unit of a template. Exactly one of the payload
// fields is meaningful for a given kind.
type directive struct {
	kind    directiveKind
	text    string // kindLiteral
	r, g, b uint8  // kindSetForeground
}

// Render expands template against snap. It always returns a string and
// never fails: unresolvable input is copied through verbatim. Output
// preserves template order exactly.
func Render(template string, snap env.Snapshot) string {
	var out strings.Builder
	out.Grow(len(template))

	for _, d := range scan(template) {
		switch d.kind {
		case kindLiteral:
			out.WriteString(d.text)
		case kindUsername:
			out.WriteString(snap.Username)
		case kindHostname:
			out.WriteString(snap.Hostname)
		case kindWorkingDir:
			out.WriteString(collapseHome(snap.WorkingDir, snap.HomeDir))
		case kindSetForeground:
			fmt.Fprintf(&out, setForegroundFormat, d.r, d.g, d.b)
		case kindResetForeground:
			out.WriteString(resetForeground)
		}
	}

	return out.String()
}

// scan performs a single left-to-right pass over the template, producing
// directives in order. Literal runs are coalesced.
func scan(template string) []directive {
	var (
		directives []directive
		literal    strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			directives = append(directives, directive{kind: kindLiteral, text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(template); {
		c := template[i]
		if c != '%' {
			literal.WriteByte(c)
			i++
			continue
		}

		if i+1 >= len(template) {
			// Trailing % with nothing to dispatch on.
			literal.WriteByte('%')
			i++
			continue
		}

		switch template[i+1] {
		case 'n':
			flush()
			directives = append(directives, directive{kind: kindUsername})
			i += 2
		case 'm':
			flush()
			directives = append(directives, directive{kind: kindHostname})
			i += 2
		case 'h':
			flush()
			directives = append(directives, directive{kind: kindWorkingDir})
			i += 2
		case 'f':
			flush()
			directives = append(directives, directive{kind: kindResetForeground})
			i += 2
		case 'F':
			r, g, b, ok := scanColor(template[i+2:])
			if !ok {
				// Fallback: %F passes through, the rest rescans as literal.
				literal.WriteString("%F")
				i += 2
				continue
			}
			flush()
			directives = append(directives, directive{kind: kindSetForeground, r: r, g: g, b: b})
			i += 2 + len("{#rrggbb}")
		default:
			// Unknown directive: % and the following byte pass through.
			literal.WriteByte('%')
			literal.WriteByte(template[i+1])
			i += 2
		}
	}
	flush()

	return directives
}

// scanColor matches {# + exactly 6 hex digits + } at the start of rest.
func scanColor(rest string) (r, g, b uint8, ok bool) {
	const want = len("{#rrggbb}")
	if len(rest) < want || rest[0] != '{' || rest[1] != '#' || rest[want-1] != '}' {
		return 0, 0, 0, false
	}

	hex := rest[2 : want-1]
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return uint8(value >> 16), uint8(value >> 8), uint8(value), true
}

// collapseHome replaces a leading home-directory match in wd with ~. The
// match must be exact or end at a path separator so /home/alicex never
// collapses under /home/alice. Trailing separators on home (HOME=/home/alice/
// is common) are ignored. An empty home disables substitution.
func collapseHome(wd, home string) string {
	home = strings.TrimRight(home, "/")
	if home == "" || wd == "" {
		return wd
	}
	if wd == home {
		return "~"
	}
	if strings.HasPrefix(wd, home) && wd[len(home)] == '/' {
		return "~" + wd[len(home):]
	}
	return wd
}
