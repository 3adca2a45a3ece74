package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// SearchInputMsg is sent whenever the query text changes
type SearchInputMsg struct {
	Query string
}

// CloseSearchMsg is sent when search should be closed.
// Clear is true when the query was abandoned with esc.
type CloseSearchMsg struct {
	Clear bool
}

// SearchInput is the single-line filter input of the table tree
type SearchInput struct {
	Input textinput.Model
	Theme theme.Theme
	Width int
}

// NewSearchInput creates a focused search input
func NewSearchInput(th theme.Theme, placeholder string) *SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 20
	ti.PromptStyle = lipgloss.NewStyle().Foreground(th.Info)

	return &SearchInput{
		Input: ti,
		Theme: th,
	}
}

// Value returns the current query
func (s *SearchInput) Value() string {
	return s.Input.Value()
}

// Reset clears the search input
func (s *SearchInput) Reset() {
	s.Input.SetValue("")
}

// Update handles messages
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return s, func() tea.Msg { return CloseSearchMsg{} }
		case "esc":
			s.Reset()
			return s, func() tea.Msg { return CloseSearchMsg{Clear: true} }
		}
	}

	before := s.Input.Value()
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)

	if after := s.Input.Value(); after != before {
		return s, tea.Batch(cmd, func() tea.Msg { return SearchInputMsg{Query: after} })
	}
	return s, cmd
}

// View renders the search input
func (s *SearchInput) View() string {
	inputWidth := s.Width - 4
	if inputWidth < 8 {
		inputWidth = 8
	}
	s.Input.Width = inputWidth

	return lipgloss.NewStyle().
		Foreground(s.Theme.Foreground).
		Render(s.Input.View())
}
