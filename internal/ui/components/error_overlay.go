package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// ErrorOverlay is a modal box describing a failure
type ErrorOverlay struct {
	Title   string
	Message string
	Width   int
	Theme   theme.Theme
}

// NewErrorOverlay creates an empty overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{Width: 60, Theme: th}
}

// SetError replaces the displayed error
func (e *ErrorOverlay) SetError(title, message string) {
	e.Title = title
	e.Message = message
}

// View renders the overlay
func (e *ErrorOverlay) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(e.Theme.Error).
		Render("✗ " + e.Title)
	message := lipgloss.NewStyle().
		Foreground(e.Theme.Foreground).
		Render(e.Message)
	hint := lipgloss.NewStyle().
		Foreground(e.Theme.Comment).
		Italic(true).
		Render("Esc/Enter: dismiss")

	return lipgloss.NewStyle().
		Width(e.Width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(e.Theme.Error).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", message, "", hint))
}
