// Package sidebar is the left column of the workspace: a database/schema
// selector, the saved consoles and the table tree. The three panels follow
// the shared store independently; the sidebar only routes messages.
package sidebar

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/rebeliceyang/pgdesk/internal/i18n"
	"github.com/rebeliceyang/pgdesk/internal/store"
	"github.com/rebeliceyang/pgdesk/internal/ui/components"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// DefaultPageSize is the number of saved consoles and tables requested
const DefaultPageSize = 999

// Focus identifies the panel receiving keys
type Focus int

const (
	FocusSelector Focus = iota
	FocusSaved
	FocusTables
	focusCount
)

// Options configure a Sidebar
type Options struct {
	Store      *store.Store
	Tree       TreeProvider
	Theme      theme.Theme
	Translator *i18n.Translator
	Logger     *log.Logger
	PageSize   int
	Timeout    time.Duration
}

// Sidebar composes the selector, the saved box and the table box
type Sidebar struct {
	store  *store.Store
	keys   KeyMap
	theme  theme.Theme
	header *SelectDatabase
	saved  *SaveBox
	tables *TableBox

	focus  Focus
	width  int
	height int
}

// New creates the sidebar
func New(opts Options) *Sidebar {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Translator == nil {
		opts.Translator = i18n.New("en")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	logger := opts.Logger.WithPrefix("sidebar")

	s := &Sidebar{
		store:  opts.Store,
		keys:   DefaultKeyMap(),
		theme:  opts.Theme,
		header: NewSelectDatabase(opts.Store, opts.Theme, opts.Translator, logger),
		saved:  NewSaveBox(opts.Store, opts.Theme, opts.Translator, logger, opts.PageSize, opts.Timeout),
		tables: NewTableBox(opts.Tree, opts.Theme, opts.Translator, logger, opts.PageSize, opts.Timeout),
		focus:  FocusTables,
	}
	s.setFocus(FocusTables)
	return s
}

// Init syncs the panels with the current state and requests their data
func (s *Sidebar) Init() tea.Cmd {
	s.header.Sync(s.store.GetState())

	// Sync may have dispatched a default selection
	state := s.store.GetState()
	s.saved.setItems(state.Workspace.ConsoleList)

	params := state.CurrentParams()
	return tea.Batch(
		s.saved.Fetch(params),
		s.tables.Fetch(params),
		s.saved.spin(),
	)
}

// Focus returns the focused panel
func (s *Sidebar) Focus() Focus {
	return s.focus
}

func (s *Sidebar) setFocus(f Focus) {
	s.focus = f
	s.saved.SetFocused(f == FocusSaved)
	s.tables.SetFocused(f == FocusTables)
}

// Capturing reports whether the focused panel consumes every key, such as
// an open selector popup or the table filter input
func (s *Sidebar) Capturing() bool {
	return s.header.IsOpen() || s.tables.Filtering()
}

// SetSize splits the height between the panels
func (s *Sidebar) SetSize(w, h int) {
	s.width, s.height = w, h
	s.header.SetWidth(w)

	// header and divider take a row each
	rest := max(h-2, 2)
	savedHeight := max(rest/3, 1)
	s.saved.SetSize(w, savedHeight)
	s.tables.SetSize(w, max(rest-savedHeight, 1))
}

// Update routes messages to the panels
func (s *Sidebar) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case StateChangedMsg:
		// The selector reconciles against the live state, which may be ahead of the change.
		s.header.Sync(s.store.GetState())
		return tea.Batch(s.saved.Sync(msg.Change), s.tables.Sync(msg.Change))

	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.MouseMsg:
		return s.handleMouse(msg)

	case tablesLoadedMsg, columnsLoadedMsg,
		components.TreeNodeExpandedMsg, components.TreeNodeSelectedMsg,
		components.SearchInputMsg, components.CloseSearchMsg:
		return s.tables.Update(msg)

	case components.CascaderChangeMsg:
		return s.header.Update(msg)

	default:
		// spinner ticks and other messages the panels filter themselves
		return tea.Batch(s.saved.Update(msg), s.tables.Update(msg))
	}
}

func (s *Sidebar) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !s.Capturing() {
		switch {
		case key.Matches(msg, s.keys.NextPane):
			s.setFocus((s.focus + 1) % focusCount)
			return nil
		case key.Matches(msg, s.keys.PrevPane):
			s.setFocus((s.focus + focusCount - 1) % focusCount)
			return nil
		}
	}

	switch s.focus {
	case FocusSelector:
		return s.header.Update(msg)
	case FocusSaved:
		return s.saved.Update(msg)
	default:
		return s.tables.Update(msg)
	}
}

func (s *Sidebar) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if hit, cmd := s.header.Click(msg); hit {
		s.setFocus(FocusSelector)
		return cmd
	}
	if hit, cmd := s.saved.Click(msg); hit {
		s.setFocus(FocusSaved)
		return cmd
	}
	if hit, cmd := s.tables.Click(msg); hit {
		s.setFocus(FocusTables)
		return cmd
	}
	return nil
}

// View renders header, saved box, divider and table box
func (s *Sidebar) View() string {
	divider := lipgloss.NewStyle().
		Foreground(s.theme.Border).
		Render(strings.Repeat("─", max(s.width, 1)))

	header := s.header.View()
	if s.focus == FocusSelector {
		header = lipgloss.NewStyle().Bold(true).Render(header)
	}

	return lipgloss.NewStyle().
		Width(s.width).
		MaxHeight(max(s.height, 1)).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			s.saved.View(),
			divider,
			s.tables.View(),
		))
}
