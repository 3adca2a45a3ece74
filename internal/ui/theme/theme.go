package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Text accents
	Comment  lipgloss.Color
	Metadata lipgloss.Color

	// Sidebar colors
	TableIcon  lipgloss.Color
	ColumnIcon lipgloss.Color
	PrimaryKey lipgloss.Color
	SavedIcon  lipgloss.Color
	Highlight  lipgloss.Color

	// SyntaxStyle names the chroma style used to highlight SQL
	SyntaxStyle string
}

// Names lists the built-in themes
func Names() []string {
	return []string{"default", "catppuccin-mocha"}
}

// GetTheme returns a theme by name, falling back to the default theme
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha", "catppuccin":
		return CatppuccinMochaTheme()
	default:
		return DefaultTheme()
	}
}
