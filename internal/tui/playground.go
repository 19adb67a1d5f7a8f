// Package tui implements the prompt template playground.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gish-shell/gish/internal/env"
	"github.com/gish-shell/gish/internal/prompt"
)

// cheatSheet lists the supported directives for the footer.
var cheatSheet = [][2]string{
	{"%n", "username"},
	{"%m", "hostname"},
	{"%h", "working directory, home as ~"},
	{"%F{#rrggbb}", "set foreground color"},
	{"%f", "reset foreground color"},
}

// Model is the playground state: an editable template line and a live
// preview rendered against a fixed environment snapshot.
type Model struct {
	template []rune
	cursor   int
	snap     env.Snapshot
	styles   Styles
	accepted bool
}

// NewModel creates a playground editing the given template.
func NewModel(template string, snap env.Snapshot) Model {
	runes := []rune(template)
	return Model{
		template: runes,
		cursor:   len(runes),
		snap:     snap,
		styles:   DefaultStyles(),
	}
}

// Template returns the current template text.
func (m Model) Template() string {
	return string(m.template)
}

// Accepted reports whether the user confirmed the template with enter.
func (m Model) Accepted() bool {
	return m.accepted
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		m.accepted = true
		return m, tea.Quit

	case tea.KeyBackspace:
		if m.cursor > 0 {
			m.template = append(m.template[:m.cursor-1], m.template[m.cursor:]...)
			m.cursor--
		}

	case tea.KeyDelete:
		if m.cursor < len(m.template) {
			m.template = append(m.template[:m.cursor], m.template[m.cursor+1:]...)
		}

	case tea.KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}

	case tea.KeyRight:
		if m.cursor < len(m.template) {
			m.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		m.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		m.cursor = len(m.template)

	case tea.KeyCtrlU:
		m.template = m.template[:0]
		m.cursor = 0

	case tea.KeySpace:
		m.insert(' ')

	case tea.KeyRunes:
		for _, r := range key.Runes {
			m.insert(r)
		}
	}

	return m, nil
}

func (m *Model) insert(r rune) {
	m.template = append(m.template[:m.cursor], append([]rune{r}, m.template[m.cursor:]...)...)
	m.cursor++
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("prompt playground"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("template "))
	b.WriteString(m.renderInput())
	b.WriteString("\n")

	b.WriteString(m.styles.Label.Render("preview  "))
	// Raw render output: the terminal interprets the color escapes, which
	// is the whole point of the preview. Reset afterwards so playground
	// chrome stays uncolored.
	b.WriteString(prompt.Render(string(m.template), m.snap))
	b.WriteString("\x1b[0m\n\n")

	for _, row := range cheatSheet {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %-12s %s", row[0], row[1])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter accept · esc discard · ctrl+u clear"))
	b.WriteString("\n")

	return b.String()
}

// renderInput draws the template with a visible cursor cell.
func (m Model) renderInput() string {
	if m.cursor >= len(m.template) {
		return m.styles.Input.Render(string(m.template)) + m.styles.Cursor.Render(" ")
	}

	before := string(m.template[:m.cursor])
	at := string(m.template[m.cursor])
	after := string(m.template[m.cursor+1:])
	return m.styles.Input.Render(before) + m.styles.Cursor.Render(at) + m.styles.Input.Render(after)
}

// RunPlayground opens the playground editing template. It returns the
// accepted template, or "" when the user discarded their edits.
func RunPlayground(template string, snap env.Snapshot) (string, error) {
	program := tea.NewProgram(NewModel(template, snap))

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("run prompt playground: %w", err)
	}

	model, ok := final.(Model)
	if !ok || !model.Accepted() {
		return "", nil
	}
	return model.Template(), nil
}
