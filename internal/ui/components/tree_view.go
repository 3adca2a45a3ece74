package components

// TreeView renders the table tree of the sidebar with keyboard and mouse
// navigation, lazy expansion and an optional filter.
//
// Usage:
//
//	root := models.NewRoot(models.BuildTableNodes(db, schema, tables))
//	treeView := components.NewTreeView(root, theme)
//	treeView.Width = 40
//	treeView.Height = 20
//
//	// In your Update method:
//	treeView, cmd := treeView.Update(msg)
//
//	// In your View method:
//	content := treeView.View()

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// TreeView represents a visual tree component for displaying hierarchical data
type TreeView struct {
	Root         *models.TreeNode // Root node of the tree
	CursorIndex  int              // Current cursor position in the visible list
	Width        int              // Display width
	Height       int              // Display height (rows)
	Theme        theme.Theme      // Color theme
	ScrollOffset int              // Vertical scroll offset for viewport
	EmptyText    string           // Shown when there is nothing to render
	ZonePrefix   string           // Prefix of the mouse zone ids of the rows

	filter *SearchQuery
}

// TreeNodeSelectedMsg is sent when a node is selected (Enter key)
type TreeNodeSelectedMsg struct {
	Node *models.TreeNode
}

// TreeNodeExpandedMsg is sent when a node is expanded/collapsed
type TreeNodeExpandedMsg struct {
	Node     *models.TreeNode
	Expanded bool // true if expanded, false if collapsed
}

// NewTreeView creates a new tree view component
func NewTreeView(root *models.TreeNode, theme theme.Theme) *TreeView {
	return &TreeView{
		Root:       root,
		Width:      40,
		Height:     20,
		Theme:      theme,
		EmptyText:  "No tables",
		ZonePrefix: "tree:",
	}
}

// SetRoot replaces the tree and resets cursor and scroll position
func (tv *TreeView) SetRoot(root *models.TreeNode) {
	tv.Root = root
	tv.CursorIndex = 0
	tv.ScrollOffset = 0
}

// SetFilter narrows the visible nodes to those matching query.
// An empty query shows the whole tree again.
func (tv *TreeView) SetFilter(query string) {
	if strings.TrimSpace(query) == "" {
		tv.filter = nil
	} else {
		q := ParseSearchQuery(query)
		tv.filter = &q
	}
	tv.CursorIndex = 0
	tv.ScrollOffset = 0
}

// Filtering reports whether a filter is active
func (tv *TreeView) Filtering() bool {
	return tv.filter != nil
}

// VisibleNodes returns the rows currently shown, in display order
func (tv *TreeView) VisibleNodes() []*models.TreeNode {
	if tv.Root == nil {
		return nil
	}
	if tv.filter != nil {
		return FilterTree(tv.Root, *tv.filter)
	}
	return tv.Root.Flatten()
}

// View renders the tree as a string
func (tv *TreeView) View() string {
	visibleNodes := tv.VisibleNodes()
	if len(visibleNodes) == 0 {
		return tv.emptyState()
	}

	// Ensure cursor is within bounds
	if tv.CursorIndex < 0 {
		tv.CursorIndex = 0
	}
	if tv.CursorIndex >= len(visibleNodes) {
		tv.CursorIndex = len(visibleNodes) - 1
	}

	viewHeight := tv.Height
	if viewHeight < 1 {
		viewHeight = 1
	}

	tv.adjustScrollOffset(len(visibleNodes), viewHeight)

	startIdx := tv.ScrollOffset
	endIdx := tv.ScrollOffset + viewHeight
	if endIdx > len(visibleNodes) {
		endIdx = len(visibleNodes)
	}

	lines := make([]string, 0, viewHeight)
	for i := startIdx; i < endIdx; i++ {
		node := visibleNodes[i]
		line := tv.renderNode(node, i == tv.CursorIndex)
		lines = append(lines, zone.Mark(tv.ZonePrefix+node.ID, line))
	}

	if tv.ScrollOffset > 0 || endIdx < len(visibleNodes) {
		lines = tv.addScrollIndicators(lines, startIdx, endIdx, len(visibleNodes))
	}

	return strings.Join(lines, "\n")
}

// Update handles keyboard input for tree navigation
func (tv *TreeView) Update(msg tea.KeyMsg) (*TreeView, tea.Cmd) {
	visibleNodes := tv.VisibleNodes()
	if len(visibleNodes) == 0 {
		return tv, nil
	}
	if tv.CursorIndex >= len(visibleNodes) {
		tv.CursorIndex = len(visibleNodes) - 1
	}

	var cmd tea.Cmd

	switch msg.String() {
	case "up", "k":
		if tv.CursorIndex > 0 {
			tv.CursorIndex--
		}

	case "down", "j":
		if tv.CursorIndex < len(visibleNodes)-1 {
			tv.CursorIndex++
		}

	case "g", "home":
		tv.CursorIndex = 0
		tv.ScrollOffset = 0

	case "G", "end":
		tv.CursorIndex = len(visibleNodes) - 1

	case "right", "l", " ":
		cmd = tv.toggle(visibleNodes[tv.CursorIndex])

	case "left", "h":
		currentNode := visibleNodes[tv.CursorIndex]
		if currentNode.Expanded {
			cmd = tv.toggle(currentNode)
		} else if currentNode.Parent != nil && currentNode.Parent.Type != models.TreeNodeTypeRoot {
			// Move to parent if collapsed
			if parentIndex := tv.findNodeIndex(visibleNodes, currentNode.Parent); parentIndex >= 0 {
				tv.CursorIndex = parentIndex
			}
		}

	case "enter":
		currentNode := visibleNodes[tv.CursorIndex]
		if currentNode.Selectable {
			cmd = func() tea.Msg {
				return TreeNodeSelectedMsg{Node: currentNode}
			}
		}
	}

	return tv, cmd
}

// Click moves the cursor to the row under a mouse click and selects it.
// It reports whether the click hit a row.
func (tv *TreeView) Click(msg tea.MouseMsg) (bool, tea.Cmd) {
	for i, node := range tv.VisibleNodes() {
		if zone.Get(tv.ZonePrefix + node.ID).InBounds(msg) {
			tv.CursorIndex = i
			if !node.Selectable {
				return true, nil
			}
			return true, func() tea.Msg { return TreeNodeSelectedMsg{Node: node} }
		}
	}
	return false, nil
}

// toggle expands or collapses a node and reports the change
func (tv *TreeView) toggle(node *models.TreeNode) tea.Cmd {
	wasExpanded := node.Expanded
	node.Toggle()
	if node.Expanded == wasExpanded {
		return nil
	}
	return func() tea.Msg {
		return TreeNodeExpandedMsg{Node: node, Expanded: node.Expanded}
	}
}

// renderNode renders a single tree node with appropriate styling
func (tv *TreeView) renderNode(node *models.TreeNode, selected bool) string {
	// Root is depth 0 and not rendered; a filtered list is flat
	depth := node.GetDepth() - 1
	if depth < 0 || tv.filter != nil {
		depth = 0
	}
	indent := strings.Repeat("  ", depth)

	maxWidth := tv.Width - 2
	if maxWidth < 4 {
		maxWidth = 4
	}

	prefix := indent + tv.getNodeIcon(node) + " "
	room := maxWidth - lipgloss.Width(prefix)
	label := runewidth.Truncate(node.Label, room, "…")
	content := prefix + label + tv.nodeSuffix(node, room-runewidth.StringWidth(label))

	style := lipgloss.NewStyle().
		Foreground(tv.Theme.Foreground).
		Width(maxWidth)
	if selected {
		style = style.
			Background(tv.Theme.Selection).
			Bold(true)
	}

	return style.Render(content)
}

// getNodeIcon returns the appropriate icon for a node
func (tv *TreeView) getNodeIcon(node *models.TreeNode) string {
	switch {
	case node.Type == models.TreeNodeTypeColumn:
		return lipgloss.NewStyle().Foreground(tv.Theme.ColumnIcon).Render("•")
	case node.Expanded:
		return lipgloss.NewStyle().Foreground(tv.Theme.TableIcon).Render("▾")
	default:
		return lipgloss.NewStyle().Foreground(tv.Theme.TableIcon).Render("▸")
	}
}

// nodeSuffix returns the dimmed metadata shown after a label when it fits in room
func (tv *TreeView) nodeSuffix(node *models.TreeNode, room int) string {
	var suffix string
	var color lipgloss.Color

	switch meta := node.Metadata.(type) {
	case models.TableMeta:
		if meta.EstimatedRows > 0 {
			suffix = " ~" + humanize.Comma(meta.EstimatedRows)
			color = tv.Theme.Metadata
		}
	case models.ColumnInfo:
		if meta.PrimaryKey {
			suffix = " PK"
			color = tv.Theme.PrimaryKey
		}
	}

	if suffix == "" || runewidth.StringWidth(suffix) > room {
		return ""
	}
	return lipgloss.NewStyle().Foreground(color).Render(suffix)
}

// adjustScrollOffset adjusts the scroll offset to keep the cursor visible
func (tv *TreeView) adjustScrollOffset(totalNodes, viewHeight int) {
	if tv.CursorIndex < tv.ScrollOffset {
		tv.ScrollOffset = tv.CursorIndex
	}
	if tv.CursorIndex >= tv.ScrollOffset+viewHeight {
		tv.ScrollOffset = tv.CursorIndex - viewHeight + 1
	}

	if tv.ScrollOffset < 0 {
		tv.ScrollOffset = 0
	}
	maxScroll := totalNodes - viewHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if tv.ScrollOffset > maxScroll {
		tv.ScrollOffset = maxScroll
	}
}

// addScrollIndicators marks the first and last rows when more content is
// available above or below
func (tv *TreeView) addScrollIndicators(lines []string, startIdx, endIdx, total int) []string {
	style := lipgloss.NewStyle().Foreground(tv.Theme.Info)
	if startIdx > 0 && len(lines) > 0 {
		lines[0] = style.Render("↑") + " " + lines[0]
	}
	if endIdx < total && len(lines) > 0 {
		last := len(lines) - 1
		lines[last] = style.Render("↓") + " " + lines[last]
	}
	return lines
}

// emptyState returns the empty state view
func (tv *TreeView) emptyState() string {
	width := tv.Width - 2
	if width < 1 {
		width = 1
	}
	style := lipgloss.NewStyle().
		Foreground(tv.Theme.Comment).
		Italic(true).
		Width(width).
		Align(lipgloss.Center)

	return style.Render(tv.EmptyText)
}

// findNodeIndex finds the index of a node in the flattened list
func (tv *TreeView) findNodeIndex(nodes []*models.TreeNode, target *models.TreeNode) int {
	for i, node := range nodes {
		if node == target {
			return i
		}
	}
	return -1
}

// GetCurrentNode returns the node under the cursor
func (tv *TreeView) GetCurrentNode() *models.TreeNode {
	visibleNodes := tv.VisibleNodes()
	if tv.CursorIndex < 0 || tv.CursorIndex >= len(visibleNodes) {
		return nil
	}
	return visibleNodes[tv.CursorIndex]
}

// SetCursorToNode sets the cursor to a specific node (by ID)
func (tv *TreeView) SetCursorToNode(nodeID string) bool {
	for i, node := range tv.VisibleNodes() {
		if node.ID == nodeID {
			tv.CursorIndex = i
			return true
		}
	}
	return false
}
