package sidebar

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/rebeliceyang/pgdesk/internal/i18n"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/store"
	"github.com/rebeliceyang/pgdesk/internal/ui/components"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// SaveBox lists the released consoles of the current workspace
type SaveBox struct {
	store    *store.Store
	logger   *log.Logger
	theme    theme.Theme
	title    string
	pageSize int
	timeout  time.Duration

	list    *components.SavedList
	content components.LoadingContent
	items   []models.Console
	focused bool
	width   int
	height  int
}

// NewSaveBox creates the saved consoles panel
func NewSaveBox(st *store.Store, th theme.Theme, tr *i18n.Translator, logger *log.Logger, pageSize int, timeout time.Duration) *SaveBox {
	return &SaveBox{
		store:    st,
		logger:   logger,
		theme:    th,
		title:    tr.T(i18n.SavedTitle),
		pageSize: pageSize,
		timeout:  timeout,
		list:     components.NewSavedList(th),
		content:  components.NewLoadingContent(th, tr.T(i18n.Loading), tr.T(i18n.Empty)),
	}
}

// Fetch requests the first page of released consoles of params
func (b *SaveBox) Fetch(params models.WorkspaceParams) tea.Cmd {
	q := models.ConsoleQuery{
		PageNo:          1,
		PageSize:        b.pageSize,
		Status:          models.ConsoleStatusRelease,
		WorkspaceParams: params,
	}
	st, timeout := b.store, b.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// Outcomes reach the panel as StateChangedMsg; failures are logged by the store.
		_, _ = st.Run(ctx, store.FetchGetSavedConsole(q))
		return nil
	}
}

// Sync reacts to a store change. The list is read from the live state
// since changes from concurrent dispatches may arrive out of order.
func (b *SaveBox) Sync(ch store.Change) tea.Cmd {
	var cmds []tea.Cmd

	if ch.ConsoleListChanged() {
		b.setItems(b.store.GetState().Workspace.ConsoleList)
	}
	if ch.ParamsChanged() {
		cmds = append(cmds, b.Fetch(ch.Next.CurrentParams()))
	}
	cmds = append(cmds, b.spin())
	return tea.Batch(cmds...)
}

func (b *SaveBox) setItems(items []models.Console) {
	b.items = items
	b.list.SetItems(items)
}

func (b *SaveBox) spin() tea.Cmd {
	if components.StateOf(b.items) == components.DataLoading {
		return b.content.Start()
	}
	b.content.Stop()
	return nil
}

// State returns what the panel displays
func (b *SaveBox) State() components.DataState {
	return components.StateOf(b.items)
}

// Items returns the listed consoles
func (b *SaveBox) Items() []models.Console {
	return b.items
}

// Update handles input and spinner ticks
func (b *SaveBox) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		_, cmd := b.list.Update(msg)
		return cmd
	default:
		return b.content.Update(msg)
	}
}

// Click forwards a mouse click to the list
func (b *SaveBox) Click(msg tea.MouseMsg) (bool, tea.Cmd) {
	return b.list.Click(msg)
}

// SetFocused marks the panel as focused
func (b *SaveBox) SetFocused(focused bool) {
	b.focused = focused
}

// SetSize sets the outer size, title row included
func (b *SaveBox) SetSize(w, h int) {
	b.width, b.height = w, h
	b.list.Width = w
	b.list.Height = max(h-1, 1)
	b.content.Width = w
	b.content.Height = max(h-1, 1)
}

// View renders the title and the list
func (b *SaveBox) View() string {
	body := b.content.View(b.State(), b.list.View)
	return lipgloss.NewStyle().
		Width(b.width).
		Height(b.height).
		MaxHeight(b.height).
		Render(renderTitle(b.theme, b.title, b.focused) + "\n" + body)
}

func renderTitle(th theme.Theme, title string, focused bool) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(th.Comment)
	if focused {
		style = style.Foreground(th.BorderFocused)
	}
	return style.Render(title)
}
