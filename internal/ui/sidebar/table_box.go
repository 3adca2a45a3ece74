package sidebar

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/rebeliceyang/pgdesk/internal/i18n"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/store"
	"github.com/rebeliceyang/pgdesk/internal/tree"
	"github.com/rebeliceyang/pgdesk/internal/ui/components"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// TreeProvider loads the children of a tree node type
type TreeProvider interface {
	GetChildren(ctx context.Context, nodeType models.TreeNodeType, p tree.Params) ([]*models.TreeNode, error)
}

// TableBox shows the tables of the current schema as a tree
type TableBox struct {
	provider TreeProvider
	keys     KeyMap
	logger   *log.Logger
	theme    theme.Theme
	tr       *i18n.Translator
	title    string
	pageSize int
	timeout  time.Duration

	view      *components.TreeView
	content   components.LoadingContent
	search    *components.SearchInput
	searching bool

	// nodes is nil while the first page is loading
	nodes  []*models.TreeNode
	params models.WorkspaceParams
	seq    uint64

	focused bool
	width   int
	height  int
}

// NewTableBox creates the table tree panel
func NewTableBox(provider TreeProvider, th theme.Theme, tr *i18n.Translator, logger *log.Logger, pageSize int, timeout time.Duration) *TableBox {
	view := components.NewTreeView(models.NewRoot(nil), th)
	view.EmptyText = tr.T(i18n.Empty)

	return &TableBox{
		provider: provider,
		keys:     DefaultKeyMap(),
		logger:   logger,
		theme:    th,
		tr:       tr,
		title:    tr.T(i18n.TableTitle),
		pageSize: pageSize,
		timeout:  timeout,
		view:     view,
		content:  components.NewLoadingContent(th, tr.T(i18n.Loading), tr.T(i18n.Empty)),
		nodes:    []*models.TreeNode{},
	}
}

// Fetch requests the first page of tables of params. Responses to older
// requests are dropped when they arrive.
func (b *TableBox) Fetch(params models.WorkspaceParams) tea.Cmd {
	if params.DataSourceID == "" {
		return nil
	}

	b.seq++
	b.params = params
	if len(b.nodes) == 0 {
		b.nodes = nil
	}

	seq, provider, timeout := b.seq, b.provider, b.timeout
	p := tree.Params{
		WorkspaceParams: params,
		PageNo:          1,
		PageSize:        b.pageSize,
		ExtraParams:     params,
	}

	return tea.Batch(b.content.Start(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		nodes, err := provider.GetChildren(ctx, models.TreeNodeTypeTables, p)
		return tablesLoadedMsg{seq: seq, nodes: nodes, err: err}
	})
}

// Refresh reloads the tables of the current workspace
func (b *TableBox) Refresh() tea.Cmd {
	return b.Fetch(b.params)
}

// Sync reacts to a store change
func (b *TableBox) Sync(ch store.Change) tea.Cmd {
	if !ch.ParamsChanged() {
		return nil
	}
	return b.Fetch(ch.Next.CurrentParams())
}

// State returns what the panel displays
func (b *TableBox) State() components.DataState {
	return components.StateOf(b.nodes)
}

// Nodes returns the table nodes of the current page
func (b *TableBox) Nodes() []*models.TreeNode {
	return b.nodes
}

// Filtering reports whether the filter input has focus
func (b *TableBox) Filtering() bool {
	return b.searching
}

func (b *TableBox) loadColumns(node *models.TreeNode) tea.Cmd {
	meta, ok := node.Metadata.(models.TableMeta)
	if !ok {
		return nil
	}

	provider, timeout := b.provider, b.timeout
	p := tree.Params{
		WorkspaceParams: b.params,
		PageNo:          1,
		PageSize:        b.pageSize,
		ExtraParams:     b.params,
		TableName:       meta.Name,
	}
	p.SchemaName = meta.Schema

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		nodes, err := provider.GetChildren(ctx, models.TreeNodeTypeTable, p)
		return columnsLoadedMsg{node: node, nodes: nodes, err: err}
	}
}

// Update handles input, load results and spinner ticks
func (b *TableBox) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tablesLoadedMsg:
		if msg.seq != b.seq {
			b.logger.Debug("dropped stale tables", "seq", msg.seq, "current", b.seq)
			return nil
		}
		b.content.Stop()
		if msg.err != nil {
			b.logger.Warn("failed to load tables", "path", b.params.DisplayPath(), "err", msg.err)
			if b.nodes == nil {
				b.nodes = []*models.TreeNode{}
			}
			return nil
		}
		b.nodes = msg.nodes
		if b.nodes == nil {
			b.nodes = []*models.TreeNode{}
		}
		b.view.SetRoot(models.NewRoot(b.nodes))
		return nil

	case columnsLoadedMsg:
		if b.view.Root == nil || b.view.Root.FindByID(msg.node.ID) != msg.node {
			return nil
		}
		if msg.err != nil {
			b.logger.Warn("failed to load columns", "table", msg.node.Label, "err", msg.err)
			msg.node.Expanded = false
			return nil
		}
		models.RefreshTreeChildren(msg.node, msg.nodes)
		return nil

	case components.TreeNodeExpandedMsg:
		if msg.Expanded && msg.Node.Type == models.TreeNodeTypeTable && !msg.Node.Loaded {
			return b.loadColumns(msg.Node)
		}
		return nil

	case components.TreeNodeSelectedMsg:
		meta, ok := msg.Node.Metadata.(models.TableMeta)
		if !ok {
			return nil
		}
		params := b.params
		return func() tea.Msg { return TableSelectedMsg{Params: params, Table: meta} }

	case components.SearchInputMsg:
		b.view.SetFilter(msg.Query)
		return nil

	case components.CloseSearchMsg:
		b.searching = false
		if msg.Clear {
			b.view.SetFilter("")
		}
		return nil

	case tea.KeyMsg:
		return b.handleKey(msg)

	default:
		return b.content.Update(msg)
	}
}

func (b *TableBox) handleKey(msg tea.KeyMsg) tea.Cmd {
	if b.searching {
		var cmd tea.Cmd
		b.search, cmd = b.search.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, b.keys.Filter):
		b.searching = true
		b.search = components.NewSearchInput(b.theme, b.tr.T(i18n.FilterPlaceholder))
		b.search.Width = b.width
		return nil
	case key.Matches(msg, b.keys.Refresh):
		return b.Refresh()
	}

	_, cmd := b.view.Update(msg)
	return cmd
}

// Click forwards a mouse click to the tree
func (b *TableBox) Click(msg tea.MouseMsg) (bool, tea.Cmd) {
	return b.view.Click(msg)
}

// SetFocused marks the panel as focused
func (b *TableBox) SetFocused(focused bool) {
	b.focused = focused
}

// SetSize sets the outer size, title row included
func (b *TableBox) SetSize(w, h int) {
	b.width, b.height = w, h
	b.view.Width = w
	b.content.Width = w
	b.content.Height = max(h-1, 1)
	if b.search != nil {
		b.search.Width = w
	}
}

// View renders the title, the optional filter input and the tree
func (b *TableBox) View() string {
	rows := max(b.height-1, 1)
	header := renderTitle(b.theme, b.title, b.focused)
	if b.view.Filtering() && !b.searching {
		header += lipgloss.NewStyle().Foreground(b.theme.Comment).Render(" /" + b.search.Value())
	}

	parts := []string{header}
	if b.searching {
		parts = append(parts, b.search.View())
		rows = max(rows-1, 1)
	}
	b.view.Height = rows
	parts = append(parts, b.content.View(b.State(), b.view.View))

	return lipgloss.NewStyle().
		Width(b.width).
		Height(b.height).
		MaxHeight(b.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
