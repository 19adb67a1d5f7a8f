package prompt

import (
	"strings"
	"testing"

	"github.com/gish-shell/gish/internal/env"
)

func testSnapshot() env.Snapshot {
	return env.Snapshot{
		Username:   "alice",
		Hostname:   "box",
		WorkingDir: "/home/alice/proj",
		HomeDir:    "/home/alice",
	}
}

func TestRenderPlainText(t *testing.T) {
	snap := testSnapshot()

	for _, template := range []string{"", "$ ", "hello world", "no directives here > "} {
		if got := Render(template, snap); got != template {
			t.Fatalf("Render(%q) = %q, want unchanged", template, got)
		}
	}
}

func TestRenderUsername(t *testing.T) {
	if got := Render("%n", testSnapshot()); got != "alice" {
		t.Fatalf("Render(%%n) = %q, want %q", got, "alice")
	}
}

func TestRenderHostname(t *testing.T) {
	if got := Render("%m", testSnapshot()); got != "box" {
		t.Fatalf("Render(%%m) = %q, want %q", got, "box")
	}
}

func TestRenderWorkingDir(t *testing.T) {
	tests := []struct {
		name string
		cwd  string
		home string
		want string
	}{
		{"under home", "/home/alice/proj", "/home/alice", "~/proj"},
		{"exactly home", "/home/alice", "/home/alice", "~"},
		{"outside home", "/etc", "/home/alice", "/etc"},
		{"sibling of home", "/home/alicex/proj", "/home/alice", "/home/alicex/proj"},
		{"home unset", "/home/alice/proj", "", "/home/alice/proj"},
		{"home with trailing slash", "/home/alice/proj", "/home/alice/", "~/proj"},
		{"exactly home with trailing slash", "/home/alice", "/home/alice/", "~"},
		{"home is root", "/etc", "/", "/etc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := env.Snapshot{WorkingDir: tt.cwd, HomeDir: tt.home}
			if got := Render("%h", snap); got != tt.want {
				t.Fatalf("Render(%%h) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSetForeground(t *testing.T) {
	if got := Render("%F{#ff8080}", testSnapshot()); got != "\x1b[38;2;255;128;128m" {
		t.Fatalf("Render(%%F) = %q, want %q", got, "\x1b[38;2;255;128;128m")
	}
	if got := Render("%F{#000000}", testSnapshot()); got != "\x1b[38;2;0;0;0m" {
		t.Fatalf("Render(%%F black) = %q", got)
	}
	if got := Render("%F{#FF0000}red", testSnapshot()); got != "\x1b[38;2;255;0;0mred" {
		t.Fatalf("uppercase hex: got %q", got)
	}
}

func TestRenderResetForeground(t *testing.T) {
	if got := Render("%f", testSnapshot()); got != "\x1b[39m" {
		t.Fatalf("Render(%%f) = %q, want ESC[39m", got)
	}
}

func TestRenderMalformedColorPassesThrough(t *testing.T) {
	snap := testSnapshot()

	for _, template := range []string{
		"%F{#zz0000}",
		"%F{#not valid :D} test %f",
		"%F{#}test",
		"%F{#deadbeef}test", // 8 digits, closing brace in the wrong place
		"%F{ff8080}",        // missing #
		"%F#ff8080}",        // missing opening brace
		"%F{#ff808",         // truncated
		"%F",
	} {
		got := Render(template, snap)
		want := strings.ReplaceAll(template, "%f", "\x1b[39m")
		if got != want {
			t.Fatalf("Render(%q) = %q, want %q", template, got, want)
		}
	}
}

func TestRenderUnknownDirectivePassesThrough(t *testing.T) {
	snap := testSnapshot()

	if got := Render("%q", snap); got != "%q" {
		t.Fatalf("Render(%%q) = %q, want literal", got)
	}
	if got := Render("100%", snap); got != "100%" {
		t.Fatalf("trailing %%: got %q", got)
	}
	if got := Render("%%", snap); got != "%%" {
		t.Fatalf("Render(%%%%) = %q, want literal", got)
	}
}

func TestRenderPreservesOrder(t *testing.T) {
	got := Render("[%n@%m] %h", testSnapshot())
	want := "[alice@box] ~/proj"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderEndToEnd(t *testing.T) {
	snap := env.Snapshot{
		Username:   "bob",
		Hostname:   "host",
		WorkingDir: "/home/bob",
		HomeDir:    "/home/bob",
	}

	got := Render("%F{#ff8080}%h%f $ ", snap)
	want := "\x1b[38;2;255;128;128m~\x1b[39m $ "
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderDefaultTemplate(t *testing.T) {
	got := Render(DefaultTemplate, testSnapshot())
	want := "\x1b[38;2;255;128;128malice@box ~/proj\x1b[39m $ "
	if got != want {
		t.Fatalf("Render(default) = %q, want %q", got, want)
	}
}

func TestRenderIdempotentOnResolvedOutput(t *testing.T) {
	snap := testSnapshot()

	first := Render("%F{#00ff00}%n@%m %h%f $ ", snap)
	second := Render(first, snap)
	if first != second {
		t.Fatalf("second render changed output: %q -> %q", first, second)
	}
}

func TestRenderValuesContainingPercentNotReexpanded(t *testing.T) {
	snap := env.Snapshot{Username: "a%nb", Hostname: "h", WorkingDir: "/", HomeDir: ""}

	if got := Render("%n", snap); got != "a%nb" {
		t.Fatalf("substituted value was re-expanded: %q", got)
	}
}

func TestScanColor(t *testing.T) {
	r, g, b, ok := scanColor("{#ff8080}")
	if !ok || r != 255 || g != 128 || b != 128 {
		t.Fatalf("scanColor = %d,%d,%d,%v", r, g, b, ok)
	}

	for _, bad := range []string{"", "{#ff808}", "{#zzzzzz}", "[#ff8080]", "{ff8080}", "{#ff8080"} {
		if _, _, _, ok := scanColor(bad); ok {
			t.Fatalf("scanColor(%q) accepted malformed input", bad)
		}
	}
}
