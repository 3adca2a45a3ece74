package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// CascaderChangeMsg is sent when a complete path has been picked.
// Labels holds the option values from the top level down.
type CascaderChangeMsg struct {
	Labels []string
}

// Cascader is a two-level single-path selector. Closed, it shows the current
// display path; open, it shows a column per level.
type Cascader struct {
	Options     []models.CascaderOption
	Value       string
	Placeholder string
	Width       int
	Theme       theme.Theme
	ZonePrefix  string

	open   bool
	column int
	cursor [2]int
}

// NewCascader creates a closed selector
func NewCascader(th theme.Theme, placeholder string) *Cascader {
	return &Cascader{
		Placeholder: placeholder,
		Width:       30,
		Theme:       th,
		ZonePrefix:  "cascader:",
	}
}

// SetOptions replaces the option tree. An open popup is closed when its
// cursor no longer points into the options.
func (c *Cascader) SetOptions(options []models.CascaderOption) {
	c.Options = options
	if c.cursor[0] >= len(options) {
		c.open = false
		c.cursor = [2]int{}
		c.column = 0
	}
}

// IsOpen reports whether the popup is shown
func (c *Cascader) IsOpen() bool {
	return c.open
}

// Open shows the popup with the cursor on path when it exists
func (c *Cascader) Open(path []string) {
	if len(c.Options) == 0 {
		return
	}
	c.open = true
	c.column = 0
	c.cursor = [2]int{}

	if len(path) > 2 {
		path = path[len(path)-2:]
	}
	if len(path) == 0 {
		return
	}
	for i, opt := range c.Options {
		if opt.Value != path[0] {
			continue
		}
		c.cursor[0] = i
		if len(path) > 1 {
			for j, child := range opt.Children {
				if child.Value == path[1] {
					c.cursor[1] = j
					c.column = 1
				}
			}
		}
		return
	}
}

// Close hides the popup
func (c *Cascader) Close() {
	c.open = false
}

func (c *Cascader) children() []models.CascaderOption {
	if c.cursor[0] >= len(c.Options) {
		return nil
	}
	return c.Options[c.cursor[0]].Children
}

// Update handles keys while the popup is open
func (c *Cascader) Update(msg tea.KeyMsg) (*Cascader, tea.Cmd) {
	if !c.open {
		return c, nil
	}

	switch msg.String() {
	case "esc":
		c.open = false
	case "up", "k":
		if c.cursor[c.column] > 0 {
			c.cursor[c.column]--
		}
		if c.column == 0 {
			c.cursor[1] = 0
		}
	case "down", "j":
		n := len(c.Options)
		if c.column == 1 {
			n = len(c.children())
		}
		if c.cursor[c.column] < n-1 {
			c.cursor[c.column]++
		}
		if c.column == 0 {
			c.cursor[1] = 0
		}
	case "left", "h":
		c.column = 0
	case "right", "l":
		if c.column == 0 && len(c.children()) > 0 {
			c.column = 1
		}
	case "enter", " ":
		if c.column == 0 && len(c.children()) > 0 {
			c.column = 1
			return c, nil
		}
		return c, c.pick()
	}
	return c, nil
}

// pick closes the popup and reports the path under the cursor
func (c *Cascader) pick() tea.Cmd {
	if c.cursor[0] >= len(c.Options) {
		return nil
	}
	labels := []string{c.Options[c.cursor[0]].Value}
	if c.column == 1 {
		children := c.children()
		if c.cursor[1] >= len(children) {
			return nil
		}
		labels = append(labels, children[c.cursor[1]].Value)
	}
	c.open = false
	return func() tea.Msg { return CascaderChangeMsg{Labels: labels} }
}

// Click handles a mouse click on the closed field or a popup entry.
// It reports whether the click hit the selector.
func (c *Cascader) Click(msg tea.MouseMsg, path []string) (bool, tea.Cmd) {
	if zone.Get(c.ZonePrefix + "field").InBounds(msg) {
		if c.open {
			c.Close()
		} else {
			c.Open(path)
		}
		return true, nil
	}
	if !c.open {
		return false, nil
	}

	for i := range c.Options {
		if zone.Get(c.optionZone(0, i)).InBounds(msg) {
			c.cursor[0] = i
			c.cursor[1] = 0
			if len(c.children()) > 0 {
				c.column = 1
				return true, nil
			}
			c.column = 0
			return true, c.pick()
		}
	}
	for j := range c.children() {
		if zone.Get(c.optionZone(1, j)).InBounds(msg) {
			c.cursor[1] = j
			c.column = 1
			return true, c.pick()
		}
	}
	return false, nil
}

func (c *Cascader) optionZone(column, index int) string {
	return fmt.Sprintf("%sopt:%d:%d", c.ZonePrefix, column, index)
}

// View renders the field and, when open, the popup below it
func (c *Cascader) View() string {
	width := c.Width - 2
	if width < 6 {
		width = 6
	}

	text := c.Value
	fg := c.Theme.Foreground
	if text == "" {
		text = c.Placeholder
		fg = c.Theme.Comment
	}
	arrow := "▾"
	if c.open {
		arrow = "▴"
	}
	text = runewidth.Truncate(text, width-2, "…")
	field := lipgloss.NewStyle().
		Foreground(fg).
		Width(width).
		Render(runewidth.FillRight(text, width-2) + " " + arrow)
	field = zone.Mark(c.ZonePrefix+"field", field)

	if !c.open {
		return field
	}
	return lipgloss.JoinVertical(lipgloss.Left, field, c.popup(width))
}

func (c *Cascader) popup(width int) string {
	colWidth := width / 2
	if colWidth < 4 {
		colWidth = 4
	}

	left := c.renderColumn(0, c.Options, colWidth)
	right := ""
	if children := c.children(); len(children) > 0 {
		right = c.renderColumn(1, children, colWidth)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.Theme.BorderFocused).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
}

func (c *Cascader) renderColumn(column int, options []models.CascaderOption, width int) string {
	rows := make([]string, 0, len(options))
	for i, opt := range options {
		label := opt.Label
		if opt.HasChildren() {
			label = runewidth.Truncate(label, width-3, "…")
			label = runewidth.FillRight(label, width-2) + "›"
		} else {
			label = runewidth.Truncate(label, width-1, "…")
		}

		style := lipgloss.NewStyle().Foreground(c.Theme.Foreground).Width(width)
		if i == c.cursor[column] {
			if column == c.column {
				style = style.Background(c.Theme.Selection).Bold(true)
			} else {
				style = style.Foreground(c.Theme.Highlight)
			}
		}
		rows = append(rows, zone.Mark(c.optionZone(column, i), style.Render(label)))
	}
	return strings.Join(rows, "\n")
}
