package components

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// ConsoleSelectedMsg is sent when a saved console is chosen
type ConsoleSelectedMsg struct {
	Console models.Console
}

// ConsoleCopiedMsg reports the outcome of copying a console's query
type ConsoleCopiedMsg struct {
	Console models.Console
	Err     error
}

// SavedList renders saved consoles as a plain list of names
type SavedList struct {
	Items        []models.Console
	Cursor       int
	ScrollOffset int
	Width        int
	Height       int
	Theme        theme.Theme
	ZonePrefix   string

	// writeClipboard is replaced in tests
	writeClipboard func(string) error
}

// NewSavedList creates an empty list
func NewSavedList(th theme.Theme) *SavedList {
	return &SavedList{
		Width:          30,
		Height:         5,
		Theme:          th,
		ZonePrefix:     "saved:",
		writeClipboard: clipboard.WriteAll,
	}
}

// SetItems replaces the list, keeping the cursor on the same console when possible
func (l *SavedList) SetItems(items []models.Console) {
	var currentID int64 = -1
	if c, ok := l.Current(); ok {
		currentID = c.ID
	}

	l.Items = items
	l.Cursor = 0
	l.ScrollOffset = 0
	for i, c := range items {
		if c.ID == currentID {
			l.Cursor = i
			break
		}
	}
}

// Current returns the console under the cursor
func (l *SavedList) Current() (models.Console, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return models.Console{}, false
	}
	return l.Items[l.Cursor], true
}

// Update handles keyboard input
func (l *SavedList) Update(msg tea.KeyMsg) (*SavedList, tea.Cmd) {
	if len(l.Items) == 0 {
		return l, nil
	}

	switch msg.String() {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
	case "down", "j":
		if l.Cursor < len(l.Items)-1 {
			l.Cursor++
		}
	case "g", "home":
		l.Cursor = 0
	case "G", "end":
		l.Cursor = len(l.Items) - 1
	case "enter":
		return l, l.selectCurrent()
	case "y":
		c, _ := l.Current()
		write := l.writeClipboard
		return l, func() tea.Msg {
			return ConsoleCopiedMsg{Console: c, Err: write(c.DDL)}
		}
	}
	return l, nil
}

// Click selects the row under a mouse click. It reports whether a row was hit.
func (l *SavedList) Click(msg tea.MouseMsg) (bool, tea.Cmd) {
	for i, c := range l.Items {
		if zone.Get(l.zoneID(c)).InBounds(msg) {
			l.Cursor = i
			return true, l.selectCurrent()
		}
	}
	return false, nil
}

func (l *SavedList) selectCurrent() tea.Cmd {
	c, ok := l.Current()
	if !ok {
		return nil
	}
	return func() tea.Msg { return ConsoleSelectedMsg{Console: c} }
}

func (l *SavedList) zoneID(c models.Console) string {
	return fmt.Sprintf("%s%d", l.ZonePrefix, c.ID)
}

// View renders the visible rows
func (l *SavedList) View() string {
	height := l.Height
	if height < 1 {
		height = 1
	}
	if l.Cursor < l.ScrollOffset {
		l.ScrollOffset = l.Cursor
	}
	if l.Cursor >= l.ScrollOffset+height {
		l.ScrollOffset = l.Cursor - height + 1
	}

	end := l.ScrollOffset + height
	if end > len(l.Items) {
		end = len(l.Items)
	}

	width := l.Width - 2
	if width < 4 {
		width = 4
	}
	icon := lipgloss.NewStyle().Foreground(l.Theme.SavedIcon).Render("≡")

	rows := make([]string, 0, end-l.ScrollOffset)
	for i := l.ScrollOffset; i < end; i++ {
		c := l.Items[i]
		name := runewidth.Truncate(c.Name, width-2, "…")

		style := lipgloss.NewStyle().Foreground(l.Theme.Foreground).Width(width)
		if i == l.Cursor {
			style = style.Background(l.Theme.Selection).Bold(true)
		}
		rows = append(rows, zone.Mark(l.zoneID(c), style.Render(icon+" "+name)))
	}

	return strings.Join(rows, "\n")
}
