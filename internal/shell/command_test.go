package shell

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"spaces only", "   \t ", nil},
		{"simple", "echo hello world", []string{"echo", "hello", "world"}},
		{"extra spaces", "  ls   -la  ", []string{"ls", "-la"}},
		{"single quotes", "echo 'hello world'", []string{"echo", "hello world"}},
		{"double quotes", `echo "hello world"`, []string{"echo", "hello world"}},
		{"escaped quote in double", `echo "say \"hi\""`, []string{"echo", `say "hi"`}},
		{"escaped backslash in double", `echo "a\\b"`, []string{"echo", `a\b`}},
		{"backslash in double stays", `echo "a\nb"`, []string{"echo", `a\nb`}},
		{"backslash outside quotes", `echo hello\ world`, []string{"echo", "hello world"}},
		{"empty quoted word", "echo ''", []string{"echo", ""}},
		{"adjacent quoted parts", `echo 'a'"b"c`, []string{"echo", "abc"}},
		// SplitWords never expands; ExecuteLine expands the raw line first,
		// so quoted dollars only survive to here if expansion left them.
		{"dollar in single quotes", "echo '$HOME'", []string{"echo", "$HOME"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitWords(tt.line)
			if err != nil {
				t.Fatalf("SplitWords(%q): %v", tt.line, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitWords(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitWordsUnterminated(t *testing.T) {
	for _, line := range []string{"echo 'oops", `echo "oops`, `echo oops\`} {
		if _, err := SplitWords(line); !errors.Is(err, ErrUnterminatedQuote) {
			t.Fatalf("SplitWords(%q) err = %v, want ErrUnterminatedQuote", line, err)
		}
	}
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand("ls -l /tmp")
	if err != nil {
		t.Fatalf("ParseCommand: %v", err)
	}
	if cmd.Name != "ls" || !reflect.DeepEqual(cmd.Args, []string{"-l", "/tmp"}) {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	empty, err := ParseCommand("   ")
	if err != nil {
		t.Fatalf("ParseCommand blank: %v", err)
	}
	if !empty.Empty() {
		t.Fatalf("expected empty command, got %+v", empty)
	}
}

func TestCommandShift(t *testing.T) {
	cmd := Command{Name: "exec", Args: []string{"ls", "-l"}}
	shifted := cmd.Shift()
	if shifted.Name != "ls" || !reflect.DeepEqual(shifted.Args, []string{"-l"}) {
		t.Fatalf("Shift = %+v", shifted)
	}

	if got := (Command{Name: "exec"}).Shift(); !got.Empty() {
		t.Fatalf("Shift of bare command = %+v, want empty", got)
	}
}
