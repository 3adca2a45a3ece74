package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

const manualFieldCount = 5

// ConnectionDialog lets the user pick a configured data source or enter one
type ConnectionDialog struct {
	Width         int
	Height        int
	Theme         theme.Theme
	Connections   []models.ConnectionConfig
	States        map[string]models.ConnectionState
	ManualMode    bool
	SelectedIndex int

	// Manual connection fields
	Host        string
	Port        string
	Database    string
	User        string
	Password    string
	ActiveField int
}

// NewConnectionDialog creates a dialog listing the configured connections
func NewConnectionDialog(th theme.Theme, connections []models.ConnectionConfig) *ConnectionDialog {
	return &ConnectionDialog{
		Theme:       th,
		Connections: connections,
		Port:        "5432",
	}
}

// View renders the connection dialog
func (c *ConnectionDialog) View() string {
	if c.Width <= 0 || c.Height <= 0 {
		return ""
	}

	content := c.renderList()
	if c.ManualMode {
		content = c.renderManualMode()
	}

	return lipgloss.NewStyle().
		Width(c.Width).
		Height(c.Height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.Theme.BorderFocused).
		Padding(0, 1).
		Render(content)
}

func (c *ConnectionDialog) title(text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(c.Theme.Highlight).Render(text)
}

func (c *ConnectionDialog) hint(text string) string {
	return lipgloss.NewStyle().Foreground(c.Theme.Comment).Italic(true).Render(text)
}

func (c *ConnectionDialog) renderList() string {
	var b strings.Builder

	b.WriteString(c.title("Connect to PostgreSQL"))
	b.WriteString("\n\n")

	if len(c.Connections) == 0 {
		b.WriteString("No connections configured.\n\n")
		b.WriteString(c.hint("m: Manual | Esc: Cancel"))
		return b.String()
	}

	for i, cfg := range c.Connections {
		prefix := "  "
		if i == c.SelectedIndex {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-16s %s@%s:%d/%s", prefix, cfg.Alias, cfg.User, cfg.Host, cfg.Port, cfg.Database)
		if marker := c.States[cfg.ID].Marker(); marker != "" {
			line += " " + marker
		}

		style := lipgloss.NewStyle().Foreground(c.Theme.Foreground)
		if i == c.SelectedIndex {
			style = style.Background(c.Theme.Selection).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(c.hint("↑/↓: Select | Enter: Connect | m: Manual | Esc: Cancel"))
	return b.String()
}

func (c *ConnectionDialog) renderManualMode() string {
	var b strings.Builder

	b.WriteString(c.title("Manual Connection"))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
	}{
		{"Host:", c.Host},
		{"Port:", c.Port},
		{"Database:", c.Database},
		{"User:", c.User},
		{"Password:", strings.Repeat("*", len(c.Password))},
	}

	for i, field := range fields {
		prefix := "  "
		if i == c.ActiveField {
			prefix = "> "
		}
		fmt.Fprintf(&b, "%s%-10s %s\n", prefix, field.label, field.value)
	}

	b.WriteString("\n")
	b.WriteString(c.hint("↑/↓: Navigate | Type to edit | Enter: Connect | Esc: Back"))
	return b.String()
}

func (c *ConnectionDialog) activeField() *string {
	switch c.ActiveField {
	case 0:
		return &c.Host
	case 1:
		return &c.Port
	case 2:
		return &c.Database
	case 3:
		return &c.User
	case 4:
		return &c.Password
	}
	return nil
}

// HandleInput appends text to the active field in manual mode
func (c *ConnectionDialog) HandleInput(text string) {
	if !c.ManualMode {
		return
	}
	if field := c.activeField(); field != nil {
		*field += text
	}
}

// HandleBackspace removes the last character from the active field
func (c *ConnectionDialog) HandleBackspace() {
	if !c.ManualMode {
		return
	}
	field := c.activeField()
	if field == nil || *field == "" {
		return
	}
	runes := []rune(*field)
	*field = string(runes[:len(runes)-1])
}

// MoveSelection moves the selection up or down
func (c *ConnectionDialog) MoveSelection(delta int) {
	if c.ManualMode {
		c.ActiveField = (c.ActiveField + delta + manualFieldCount) % manualFieldCount
		return
	}

	if len(c.Connections) == 0 {
		c.SelectedIndex = 0
		return
	}
	c.SelectedIndex += delta
	if c.SelectedIndex < 0 {
		c.SelectedIndex = 0
	}
	if c.SelectedIndex >= len(c.Connections) {
		c.SelectedIndex = len(c.Connections) - 1
	}
}

// GetSelected returns the highlighted configured connection
func (c *ConnectionDialog) GetSelected() (models.ConnectionConfig, bool) {
	if c.ManualMode || c.SelectedIndex < 0 || c.SelectedIndex >= len(c.Connections) {
		return models.ConnectionConfig{}, false
	}
	return c.Connections[c.SelectedIndex], true
}

// GetManualConfig returns the manual connection config if valid, or error
func (c *ConnectionDialog) GetManualConfig() (models.ConnectionConfig, error) {
	if c.Host == "" {
		return models.ConnectionConfig{}, fmt.Errorf("host is required")
	}
	if c.User == "" {
		return models.ConnectionConfig{}, fmt.Errorf("user is required")
	}
	if c.Database == "" {
		return models.ConnectionConfig{}, fmt.Errorf("database is required")
	}

	port, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || port <= 0 || port > 65535 {
		return models.ConnectionConfig{}, fmt.Errorf("invalid port %q", c.Port)
	}

	return models.ConnectionConfig{
		Host:     c.Host,
		Port:     port,
		Database: c.Database,
		User:     c.User,
		Password: c.Password,
		SSLMode:  "prefer",
	}.Normalize(), nil
}
