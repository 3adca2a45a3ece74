// Package app hosts the workspace: the sidebar on the left, a preview pane
// on the right, and the connection dialog, help and error overlays.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/pgdesk/internal/config"
	"github.com/rebeliceyang/pgdesk/internal/db/metadata"
	"github.com/rebeliceyang/pgdesk/internal/i18n"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/store"
	"github.com/rebeliceyang/pgdesk/internal/ui/components"
	helpview "github.com/rebeliceyang/pgdesk/internal/ui/help"
	"github.com/rebeliceyang/pgdesk/internal/ui/sidebar"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// Connector opens data sources and hands out queriers for their databases
type Connector interface {
	metadata.Resolver
	Connect(ctx context.Context, conn *models.Connection) error
	Disconnect(dataSourceID string) error
}

// Options are the collaborators of the App
type Options struct {
	Config     *config.Config
	Store      *store.Store
	Connector  Connector
	Tree       sidebar.TreeProvider
	Translator *i18n.Translator
	Logger     *log.Logger
}

// App is the main application model
type App struct {
	state     models.AppState
	config    *config.Config
	theme     theme.Theme
	keys      KeyMap
	tr        *i18n.Translator
	logger    *log.Logger
	store     *store.Store
	bridge    *sidebar.Bridge
	connector Connector
	timeout   time.Duration

	sidebar    *sidebar.Sidebar
	preview    *components.PreviewPane
	leftPanel  components.Panel
	rightPanel components.Panel
	help       help.Model
	status     string

	// connStates tracks each data source by id
	connStates map[string]models.ConnectionState

	// Connection dialog
	showConnectionDialog bool
	connectionDialog     *components.ConnectionDialog

	// Error overlay
	showError    bool
	errorOverlay *components.ErrorOverlay
}

// ErrorMsg is sent when an error should be shown to the user
type ErrorMsg struct {
	Title   string
	Message string
}

// ConnectedMsg reports the outcome of opening a data source
type ConnectedMsg struct {
	Conn *models.Connection
	Err  error
}

// tableDescribedMsg carries the structure of a selected table
type tableDescribedMsg struct {
	title  string
	detail *metadata.TableDetail
	err    error
}

// New creates a new App instance
func New(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Translator == nil {
		opts.Translator = i18n.New(cfg.General.Language)
	}

	state := models.NewAppState()
	if cfg.UI.PanelWidthRatio > 0 && cfg.UI.PanelWidthRatio < 100 {
		state.LeftPanelWidth = cfg.UI.PanelWidthRatio
	}

	th := theme.GetTheme(cfg.UI.Theme)
	timeout := cfg.Performance.QueryTimeoutDuration()

	a := &App{
		state:     state,
		config:    cfg,
		theme:     th,
		keys:      DefaultKeyMap(),
		tr:        opts.Translator,
		logger:    opts.Logger.WithPrefix("app"),
		store:     opts.Store,
		bridge:    sidebar.NewBridge(opts.Store),
		connector: opts.Connector,
		timeout:   timeout,
		sidebar: sidebar.New(sidebar.Options{
			Store:      opts.Store,
			Tree:       opts.Tree,
			Theme:      th,
			Translator: opts.Translator,
			Logger:     opts.Logger,
			PageSize:   cfg.Workspace.PageSize,
			Timeout:    timeout,
		}),
		preview:          components.NewPreviewPane(th),
		help:             help.New(),
		connectionDialog: components.NewConnectionDialog(th, cfg.Connections),
		errorOverlay:     components.NewErrorOverlay(th),
		leftPanel:        components.Panel{Theme: th, Focused: true},
		rightPanel:       components.Panel{Theme: th},
		status:           opts.Translator.T(i18n.NoConnection),
		connStates:       make(map[string]models.ConnectionState),
	}
	a.connectionDialog.States = a.connStates

	conns := make([]*models.Connection, 0, len(cfg.Connections))
	for _, c := range cfg.Connections {
		conns = append(conns, models.NewConnection(c))
	}
	a.store.Dispatch(store.SetConnectionList(conns))

	a.updatePanelDimensions()
	return a
}

// Close stops listening to the store
func (a *App) Close() {
	a.bridge.Close()
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.bridge.Wait(), a.sidebar.Init()}

	if name := a.config.General.DefaultConnection; name != "" {
		cfg, ok := a.config.FindConnection(name)
		if !ok {
			return tea.Batch(append(cmds, showError("Connection Error", fmt.Sprintf("Unknown connection %q", name)))...)
		}
		cmds = append(cmds, a.connect(cfg))
	}
	return tea.Batch(cmds...)
}

func showError(title, message string) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Title: title, Message: message} }
}

// connect opens a data source, reusing the configured connection object when
// one exists so its id matches the connection list
func (a *App) connect(cfg models.ConnectionConfig) tea.Cmd {
	conn := a.connectionFor(cfg)
	a.setConnState(conn, models.Connecting)

	connector, timeout := a.connector, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ConnectedMsg{Conn: conn, Err: connector.Connect(ctx, conn)}
	}
}

func (a *App) connectionFor(cfg models.ConnectionConfig) *models.Connection {
	cfg = cfg.Normalize()
	for _, c := range a.store.GetState().Connection.ConnectionList {
		if c.ID == cfg.ID {
			return c
		}
	}
	return models.NewConnection(cfg)
}

// setConnState records the state of a data source and updates the status bar
func (a *App) setConnState(conn *models.Connection, state models.ConnectionState) {
	a.connStates[conn.ID] = state
	a.logger.Debug("connection state", "alias", conn.Alias, "state", state.String())

	switch state {
	case models.Connecting:
		a.status = a.tr.T(i18n.Connecting, conn.Alias)
	case models.Connected:
		a.status = conn.Alias
	case models.Failed:
		a.status = a.tr.T(i18n.ConnectionFailed, conn.Alias)
	case models.Disconnected:
		delete(a.connStates, conn.ID)
	}
}

// disconnect closes the pools of a data source that is no longer current
func (a *App) disconnect(conn *models.Connection) tea.Cmd {
	a.setConnState(conn, models.Disconnected)

	connector, logger := a.connector, a.logger
	return func() tea.Msg {
		if err := connector.Disconnect(conn.ID); err != nil {
			logger.Warn("failed to disconnect", "alias", conn.Alias, "err", err)
		}
		return nil
	}
}

// loadCatalog fetches the databases and schemas of the active connection
func (a *App) loadCatalog() tea.Cmd {
	st, timeout := a.store, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_, err := st.Run(ctx, store.FetchDatabaseAndSchema())
		if err != nil && !errors.Is(err, store.ErrStale) {
			return ErrorMsg{Title: "Database Error", Message: fmt.Sprintf("Failed to load databases:\n\n%v", err)}
		}
		return nil
	}
}

// describeTable loads the structure of a table for the preview pane
func (a *App) describeTable(msg sidebar.TableSelectedMsg) tea.Cmd {
	connector, timeout := a.connector, a.timeout
	title := msg.Table.Schema + "." + msg.Table.Name

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		q, err := connector.Querier(ctx, msg.Params.DataSourceID, msg.Params.DatabaseName)
		if err != nil {
			return tableDescribedMsg{title: title, err: err}
		}
		detail, err := metadata.DescribeTable(ctx, q, msg.Table.Schema, msg.Table.Name)
		return tableDescribedMsg{title: title, detail: detail, err: err}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case sidebar.StateChangedMsg:
		a.updateTopBar(msg.Change.Next)
		return a, tea.Batch(a.sidebar.Update(msg), a.bridge.Wait())

	case ConnectedMsg:
		if msg.Err != nil {
			a.setConnState(msg.Conn, models.Failed)
			a.ShowError("Connection Error", fmt.Sprintf("Failed to connect to %s:\n\n%v", msg.Conn.Alias, msg.Err))
			return a, nil
		}
		a.logger.Info("connected", "alias", msg.Conn.Alias)
		if list := a.store.GetState().Connection.ConnectionList; !slices.Contains(list, msg.Conn) {
			a.store.Dispatch(store.SetConnectionList(append(slices.Clone(list), msg.Conn)))
		}

		var cmds []tea.Cmd
		if prev := a.store.GetState().Connection.CurConnection; prev != nil && prev.ID != msg.Conn.ID {
			cmds = append(cmds, a.disconnect(prev))
		}
		a.setConnState(msg.Conn, models.Connected)
		a.store.Dispatch(store.SetCurConnection(msg.Conn))
		return a, tea.Batch(append(cmds, a.loadCatalog())...)

	case components.ConsoleSelectedMsg:
		a.preview.ShowConsole(msg.Console)
		return a, nil

	case components.ConsoleCopiedMsg:
		if msg.Err != nil {
			a.ShowError("Clipboard Error", msg.Err.Error())
			return a, nil
		}
		a.status = a.tr.T(i18n.Copied, msg.Console.Name)
		return a, nil

	case sidebar.TableSelectedMsg:
		return a, a.describeTable(msg)

	case tableDescribedMsg:
		if msg.err != nil {
			a.logger.Warn("failed to describe table", "table", msg.title, "err", msg.err)
			a.ShowError("Database Error", fmt.Sprintf("Failed to load %s:\n\n%v", msg.title, msg.err))
			return a, nil
		}
		a.preview.ShowTable(msg.title, msg.detail.Columns, tableExtras(msg.detail))
		return a, nil

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
		return a, nil

	case tea.MouseMsg:
		if !a.config.UI.MouseEnabled || a.showError || a.showConnectionDialog {
			return a, nil
		}
		cmd := a.sidebar.Update(msg)
		a.setFocus(models.LeftPanel)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, a.sidebar.Update(msg)
}

// tableExtras lists constraints followed by indexes
func tableExtras(d *metadata.TableDetail) []models.Constraint {
	extras := make([]models.Constraint, 0, len(d.Constraints)+len(d.Indexes))
	extras = append(extras, d.Constraints...)
	for _, idx := range d.Indexes {
		extras = append(extras, models.Constraint{Name: idx.Name, Type: "index", Definition: idx.Definition})
	}
	return extras
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showError {
		if key.Matches(msg, a.keys.Dismiss) {
			a.DismissError()
			return a, nil
		}
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, nil
	}

	if a.showConnectionDialog {
		return a.handleConnectionDialog(msg)
	}

	if a.state.ViewMode == models.HelpMode {
		if key.Matches(msg, a.keys.Help, a.keys.Quit) || msg.String() == "esc" {
			a.state.ViewMode = models.NormalMode
		}
		return a, nil
	}

	// An open selector or filter input takes every key but ctrl+c
	if a.state.FocusedPanel == models.LeftPanel && a.sidebar.Capturing() {
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.sidebar.Update(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.state.ViewMode = models.HelpMode
		return a, nil
	case key.Matches(msg, a.keys.Connect):
		a.connectionDialog.ManualMode = false
		a.showConnectionDialog = true
		return a, nil
	case key.Matches(msg, a.keys.Preview):
		if a.state.FocusedPanel == models.LeftPanel {
			a.setFocus(models.RightPanel)
		} else {
			a.setFocus(models.LeftPanel)
		}
		return a, nil
	}

	if a.state.FocusedPanel == models.RightPanel {
		switch {
		case msg.String() == "up" || msg.String() == "k":
			a.preview.ScrollUp()
		case msg.String() == "down" || msg.String() == "j":
			a.preview.ScrollDown()
		case key.Matches(msg, a.keys.Copy):
			if err := a.preview.CopyContent(); err != nil {
				a.ShowError("Clipboard Error", err.Error())
			} else {
				a.status = a.tr.T(i18n.Copied, a.preview.Title)
			}
		case msg.String() == "esc":
			a.setFocus(models.LeftPanel)
		}
		return a, nil
	}

	return a, a.sidebar.Update(msg)
}

// handleConnectionDialog handles key events when connection dialog is visible
func (a *App) handleConnectionDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := a.connectionDialog

	switch msg.String() {
	case "esc":
		if d.ManualMode {
			d.ManualMode = false
			return a, nil
		}
		a.showConnectionDialog = false
		return a, nil
	case "ctrl+c":
		return a, tea.Quit
	case "up":
		d.MoveSelection(-1)
		return a, nil
	case "down", "tab":
		d.MoveSelection(1)
		return a, nil
	case "backspace":
		d.HandleBackspace()
		return a, nil
	case "enter":
		var (
			cfg models.ConnectionConfig
			err error
		)
		if d.ManualMode {
			cfg, err = d.GetManualConfig()
		} else if selected, ok := d.GetSelected(); ok {
			cfg = selected
		} else {
			return a, nil
		}
		if err != nil {
			a.ShowError("Invalid Connection", err.Error())
			return a, nil
		}
		a.showConnectionDialog = false
		return a, a.connect(cfg)
	}

	if !d.ManualMode {
		switch msg.String() {
		case "k":
			d.MoveSelection(-1)
		case "j":
			d.MoveSelection(1)
		case "m":
			d.ManualMode = true
		}
		return a, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		d.HandleInput(string(msg.Runes))
	}
	return a, nil
}

func (a *App) setFocus(p models.PanelType) {
	a.state.FocusedPanel = p
	a.leftPanel.Focused = p == models.LeftPanel
	a.rightPanel.Focused = p == models.RightPanel
	a.preview.Focused = a.rightPanel.Focused
}

func (a *App) updateTopBar(s store.State) {
	conn := s.Connection.CurConnection
	if conn == nil || a.connStates[conn.ID] != models.Connected {
		return
	}
	a.status = s.CurrentParams().DisplayPath()
	if a.status == "" {
		a.status = conn.Alias
	}
}

// View implements tea.Model
func (a *App) View() string {
	if a.showError {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	if a.showConnectionDialog {
		a.connectionDialog.Width = min(70, max(a.state.Width-4, 20))
		a.connectionDialog.Height = min(16, max(a.state.Height-4, 8))
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.connectionDialog.View(),
		)
	}

	if a.state.ViewMode == models.HelpMode {
		sidebarKeys := sidebar.DefaultKeyMap()
		return helpview.Render(a.state.Width, a.state.Height, a.theme,
			helpview.NewSection("Global", a.keys.FullHelp()...),
			helpview.NewSection("Sidebar", sidebarKeys.FullHelp()...),
		)
	}

	return zone.Scan(a.renderNormalView())
}

// renderNormalView renders the normal application view
func (a *App) renderNormalView() string {
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(a.theme.Background).
		Padding(0, 2).
		Render(a.formatStatusBar("pgdesk", a.status))

	a.help.Width = a.state.Width - 4
	bottomBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.help.ShortHelpView(append(a.keys.ShortHelp(), sidebar.DefaultKeyMap().ShortHelp()...)))

	a.leftPanel.Content = a.sidebar.View()

	// The preview draws its own border
	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.leftPanel.View(),
		a.preview.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		panels,
		bottomBar,
	)
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// Top and bottom bars take a line each
	contentHeight := max(a.state.Height-2, 5)

	leftWidth := max((a.state.Width*a.state.LeftPanelWidth)/100, 24)
	rightWidth := a.state.Width - leftWidth
	if rightWidth < 20 {
		rightWidth = 20
		leftWidth = max(a.state.Width-rightWidth, 10)
	}

	a.leftPanel.Width = leftWidth
	a.leftPanel.Height = contentHeight
	// Panel borders take two columns and two rows
	a.sidebar.SetSize(leftWidth-2, contentHeight-2)

	a.preview.Width = rightWidth
	a.preview.Height = contentHeight
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Padding takes two columns on each side
	availableWidth := max(a.state.Width-4, 0)

	leftWidth := runewidth.StringWidth(left)
	rightWidth := runewidth.StringWidth(right)

	if leftWidth+rightWidth+1 > availableWidth {
		right = runewidth.Truncate(right, max(availableWidth-leftWidth-1, 0), "…")
		rightWidth = runewidth.StringWidth(right)
	}

	spacing := max(availableWidth-leftWidth-rightWidth, 1)
	return left + lipgloss.NewStyle().Width(spacing).Render("") + right
}

// ShowError displays an error overlay with the given title and message
func (a *App) ShowError(title, message string) {
	a.errorOverlay.SetError(title, message)
	a.showError = true
}

// DismissError hides the error overlay
func (a *App) DismissError() {
	a.showError = false
}
