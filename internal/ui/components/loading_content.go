package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// DataState decides what a LoadingContent shows
type DataState int

const (
	// DataLoading means no data has arrived yet
	DataLoading DataState = iota
	// DataEmpty means the data arrived and holds nothing
	DataEmpty
	// DataReady means there is something to render
	DataReady
)

// StateOf derives the state of a list: nil is still loading, empty is empty
func StateOf[T any](data []T) DataState {
	switch {
	case data == nil:
		return DataLoading
	case len(data) == 0:
		return DataEmpty
	default:
		return DataReady
	}
}

// LoadingContent wraps arbitrary content with loading and empty displays
type LoadingContent struct {
	Width       int
	Height      int
	LoadingText string
	EmptyText   string
	Theme       theme.Theme

	spinner spinner.Model
	active  bool
}

// NewLoadingContent creates a wrapper with the given texts
func NewLoadingContent(th theme.Theme, loadingText, emptyText string) LoadingContent {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(th.Info)

	return LoadingContent{
		LoadingText: loadingText,
		EmptyText:   emptyText,
		Theme:       th,
		spinner:     s,
	}
}

// Start begins animating the spinner
func (l *LoadingContent) Start() tea.Cmd {
	if l.active {
		return nil
	}
	l.active = true
	return l.spinner.Tick
}

// Stop ends the animation after the next tick
func (l *LoadingContent) Stop() {
	l.active = false
}

// Update advances the spinner. Ticks of other spinners and ticks after Stop are ignored.
func (l *LoadingContent) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !l.active || tick.ID != l.spinner.ID() {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders content when state is DataReady, and the loading or empty
// display otherwise. content is only called when it is rendered.
func (l LoadingContent) View(state DataState, content func() string) string {
	switch state {
	case DataLoading:
		return l.placeholder(l.spinner.View() + " " + l.LoadingText)
	case DataEmpty:
		return l.placeholder(l.EmptyText)
	default:
		return content()
	}
}

func (l LoadingContent) placeholder(text string) string {
	width := l.Width
	if width < 1 {
		width = 1
	}
	style := lipgloss.NewStyle().
		Foreground(l.Theme.Comment).
		Italic(true).
		Width(width).
		Align(lipgloss.Center)
	if l.Height > 0 {
		style = style.Height(l.Height).AlignVertical(lipgloss.Center)
	}
	return style.Render(text)
}
