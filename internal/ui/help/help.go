// Package help renders the keyboard shortcut overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// Section is a titled group of key bindings
type Section struct {
	Title    string
	Bindings []key.Binding
}

// NewSection flattens binding groups into one section
func NewSection(title string, groups ...[]key.Binding) Section {
	s := Section{Title: title}
	for _, g := range groups {
		s.Bindings = append(s.Bindings, g...)
	}
	return s
}

// Render creates the help view
func Render(width, height int, th theme.Theme, sections ...Section) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("pgdesk - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, s := range sections {
		b.WriteString(sectionStyle.Render(s.Title))
		b.WriteString("\n")
		for _, kb := range s.Bindings {
			if !kb.Enabled() {
				continue
			}
			h := kb.Help()
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(descStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(max(width-4, 10)).
		Height(max(height-4, 3))

	return boxStyle.Render(b.String())
}
