package models

import (
	"fmt"
	"strings"
)

// TreeNodeType represents the type of tree node
type TreeNodeType string

const (
	TreeNodeTypeRoot   TreeNodeType = "root"
	TreeNodeTypeTables TreeNodeType = "tables"
	TreeNodeTypeTable  TreeNodeType = "table"
	TreeNodeTypeColumn TreeNodeType = "column"
)

// TreeNode represents a node in the table tree
type TreeNode struct {
	ID         string       // Unique identifier (e.g., "table:postgres.public.users")
	Type       TreeNodeType // Type of node
	Label      string       // Display text
	Parent     *TreeNode    // Parent node (nil for root)
	Children   []*TreeNode  // Child nodes
	Expanded   bool         // Whether node is expanded
	Selectable bool         // Whether node can be selected
	Metadata   interface{}  // TableMeta for tables, ColumnInfo for columns
	Loaded     bool         // Whether children have been loaded (for lazy loading)
}

// NewTreeNode creates a new tree node
func NewTreeNode(id string, nodeType TreeNodeType, label string) *TreeNode {
	return &TreeNode{
		ID:         id,
		Type:       nodeType,
		Label:      label,
		Children:   make([]*TreeNode, 0),
		Selectable: nodeType != TreeNodeTypeRoot,
	}
}

// NewRoot wraps a flat list of nodes under an always-expanded root
func NewRoot(nodes []*TreeNode) *TreeNode {
	root := NewTreeNode("root", TreeNodeTypeRoot, "Tables")
	root.Expanded = true
	RefreshTreeChildren(root, nodes)
	return root
}

// AddChild adds a child node to this node
func (n *TreeNode) AddChild(child *TreeNode) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Toggle toggles the expanded state of the node.
// A node can be toggled if it has children or hasn't been loaded yet.
func (n *TreeNode) Toggle() {
	if n.Type == TreeNodeTypeColumn {
		return
	}

	if len(n.Children) > 0 || !n.Loaded {
		n.Expanded = !n.Expanded
	}
}

// Flatten returns the visible nodes in display order
func (n *TreeNode) Flatten() []*TreeNode {
	return n.flattenHelper(true)
}

func (n *TreeNode) flattenHelper(visible bool) []*TreeNode {
	result := make([]*TreeNode, 0)

	// Root is only a container
	if n.Type != TreeNodeTypeRoot && visible {
		result = append(result, n)
	}

	if n.Expanded || n.Type == TreeNodeTypeRoot {
		for _, child := range n.Children {
			childVisible := visible && (n.Type == TreeNodeTypeRoot || n.Expanded)
			result = append(result, child.flattenHelper(childVisible)...)
		}
	}

	return result
}

// FindByID finds a node by ID in the tree (depth-first search)
func (n *TreeNode) FindByID(id string) *TreeNode {
	if n.ID == id {
		return n
	}

	for _, child := range n.Children {
		if found := child.FindByID(id); found != nil {
			return found
		}
	}

	return nil
}

// GetPath returns the labels from the root down to this node
func (n *TreeNode) GetPath() []string {
	path := make([]string, 0)
	for current := n; current != nil; current = current.Parent {
		if current.Type != TreeNodeTypeRoot {
			path = append([]string{current.Label}, path...)
		}
	}
	return path
}

// GetDepth returns the depth of this node in the tree (root = 0)
func (n *TreeNode) GetDepth() int {
	depth := 0
	for current := n.Parent; current != nil; current = current.Parent {
		depth++
	}
	return depth
}

// IsAncestorOf checks if this node is an ancestor of the given node
func (n *TreeNode) IsAncestorOf(other *TreeNode) bool {
	for current := other.Parent; current != nil; current = current.Parent {
		if current == n {
			return true
		}
	}
	return false
}

// RefreshTreeChildren replaces the node's children and marks it loaded
func RefreshTreeChildren(node *TreeNode, children []*TreeNode) {
	node.Children = make([]*TreeNode, 0, len(children))
	for _, child := range children {
		node.AddChild(child)
	}
	node.Loaded = true
}

// BuildTableNodes creates table nodes for a schema
func BuildTableNodes(dbName, schemaName string, tables []TableMeta) []*TreeNode {
	nodes := make([]*TreeNode, 0, len(tables))

	for _, table := range tables {
		node := NewTreeNode(
			fmt.Sprintf("table:%s.%s.%s", dbName, schemaName, table.Name),
			TreeNodeTypeTable,
			table.Name,
		)
		node.Metadata = table
		nodes = append(nodes, node)
	}

	return nodes
}

// BuildColumnNodes creates column nodes for a table
func BuildColumnNodes(dbName, schemaName, tableName string, columns []ColumnInfo) []*TreeNode {
	nodes := make([]*TreeNode, 0, len(columns))

	for _, col := range columns {
		node := NewTreeNode(
			fmt.Sprintf("column:%s.%s.%s.%s", dbName, schemaName, tableName, col.Name),
			TreeNodeTypeColumn,
			fmt.Sprintf("%s (%s)", col.Name, col.DataType),
		)
		node.Selectable = false
		node.Loaded = true
		node.Metadata = col
		nodes = append(nodes, node)
	}

	return nodes
}

// ParseNodeID parses a node ID and returns its components.
// For example: "table:postgres.public.users" -> ("table", ["postgres", "public", "users"])
func ParseNodeID(id string) (nodeType string, components []string) {
	parts := strings.SplitN(id, ":", 2)
	if len(parts) != 2 {
		return "", nil
	}

	return parts[0], strings.Split(parts[1], ".")
}
