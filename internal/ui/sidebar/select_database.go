package sidebar

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/rebeliceyang/pgdesk/internal/i18n"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/store"
	"github.com/rebeliceyang/pgdesk/internal/ui/components"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// SelectDatabase is the database → schema selector heading the sidebar
type SelectDatabase struct {
	store    *store.Store
	keys     KeyMap
	logger   *log.Logger
	cascader *components.Cascader

	// options are derived once per DatabaseAndSchema value
	das     *models.DatabaseAndSchema
	options []models.CascaderOption
	derived bool
}

// NewSelectDatabase creates the selector
func NewSelectDatabase(st *store.Store, th theme.Theme, tr *i18n.Translator, logger *log.Logger) *SelectDatabase {
	return &SelectDatabase{
		store:    st,
		keys:     DefaultKeyMap(),
		logger:   logger,
		cascader: components.NewCascader(th, tr.T(i18n.CascaderPlaceholder)),
	}
}

// Options returns the current selector options
func (s *SelectDatabase) Options() []models.CascaderOption {
	return s.options
}

// IsOpen reports whether the popup is shown
func (s *SelectDatabase) IsOpen() bool {
	return s.cascader.IsOpen()
}

// SetWidth sets the rendered width
func (s *SelectDatabase) SetWidth(w int) {
	s.cascader.Width = w
}

// Sync derives the options from state and then reconciles the selection
// with the active connection
func (s *SelectDatabase) Sync(state store.State) {
	das := state.Workspace.DatabaseAndSchema
	if !s.derived || das != s.das {
		s.das = das
		s.options = models.BuildCascaderOptions(das)
		s.cascader.SetOptions(s.options)
		s.derived = true
	}
	s.cascader.Value = state.CurrentParams().DisplayPath()

	s.reconcile(state)
}

// reconcile selects the first database and schema when the stored
// selection belongs to another data source. It waits for the catalog of
// the active connection; SetCurConnection clears the previous one.
func (s *SelectDatabase) reconcile(state store.State) {
	conn := state.Connection.CurConnection
	das := state.Workspace.DatabaseAndSchema
	if das == nil || !models.NeedsDefaultSelection(state.Workspace.CurWorkspaceParams, conn) {
		return
	}

	params := models.DefaultWorkspaceParams(conn, s.options, das.Flat())
	s.logger.Debug("default selection", "path", params.DisplayPath())
	s.store.Dispatch(store.SetCurWorkspaceParams(params))
}

// path returns the current selection as option values
func (s *SelectDatabase) path(state store.State) []string {
	p := state.CurrentParams()
	if state.Workspace.DatabaseAndSchema.Flat() {
		return []string{p.SchemaName}
	}
	return []string{p.DatabaseName, p.SchemaName}
}

// Update handles input. Keys only arrive while the selector has focus.
func (s *SelectDatabase) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.cascader.IsOpen() {
			_, cmd := s.cascader.Update(msg)
			return cmd
		}
		if key.Matches(msg, s.keys.Open) {
			s.cascader.Open(s.path(s.store.GetState()))
		}

	case components.CascaderChangeMsg:
		s.choose(msg.Labels)
	}
	return nil
}

// Click forwards a mouse click and reports whether it hit the selector
func (s *SelectDatabase) Click(msg tea.MouseMsg) (bool, tea.Cmd) {
	return s.cascader.Click(msg, s.path(s.store.GetState()))
}

// choose dispatches the params of a picked path
func (s *SelectDatabase) choose(labels []string) {
	state := s.store.GetState()
	params := models.WorkspaceParamsFromSelection(
		state.Connection.CurConnection,
		labels,
		state.Workspace.DatabaseAndSchema.Flat(),
	)
	s.store.Dispatch(store.SetCurWorkspaceParams(params))
}

// View renders the selector
func (s *SelectDatabase) View() string {
	return s.cascader.View()
}
