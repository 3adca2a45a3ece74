package components

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

func testConsoles() []models.Console {
	return []models.Console{
		{ID: 1, Name: "daily revenue", DDL: "select sum(total) from orders"},
		{ID: 2, Name: "top customers", DDL: "select * from customers limit 10"},
		{ID: 3, Name: "stuck jobs", DDL: "select * from jobs where state = 'stuck'"},
	}
}

func TestSavedList_View(t *testing.T) {
	l := NewSavedList(theme.DefaultTheme())
	l.Width = 40
	l.SetItems(testConsoles())

	view := l.View()
	for _, c := range testConsoles() {
		if !strings.Contains(view, c.Name) {
			t.Errorf("Expected %q in view, got:\n%s", c.Name, view)
		}
	}
}

func TestSavedList_Scrolls(t *testing.T) {
	l := NewSavedList(theme.DefaultTheme())
	l.Width = 40
	l.Height = 2
	l.SetItems(testConsoles())

	l.Update(key("G"))
	view := l.View()

	if strings.Contains(view, "daily revenue") {
		t.Errorf("First row should be scrolled out, got:\n%s", view)
	}
	if !strings.Contains(view, "stuck jobs") {
		t.Errorf("Last row should be visible, got:\n%s", view)
	}
}

func TestSavedList_EnterSelects(t *testing.T) {
	l := NewSavedList(theme.DefaultTheme())
	l.SetItems(testConsoles())

	l.Update(key("down"))
	_, cmd := l.Update(key("enter"))
	if cmd == nil {
		t.Fatal("Expected a command")
	}

	msg, ok := cmd().(ConsoleSelectedMsg)
	if !ok {
		t.Fatalf("Expected ConsoleSelectedMsg, got %T", cmd())
	}
	if msg.Console.ID != 2 {
		t.Errorf("Expected console 2, got %d", msg.Console.ID)
	}
}

func TestSavedList_CopyQuery(t *testing.T) {
	var copied string
	l := NewSavedList(theme.DefaultTheme())
	l.writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	l.SetItems(testConsoles())

	_, cmd := l.Update(key("y"))
	msg := cmd().(ConsoleCopiedMsg)

	if msg.Err != nil {
		t.Errorf("Unexpected error: %v", msg.Err)
	}
	if copied != "select sum(total) from orders" {
		t.Errorf("Unexpected clipboard content %q", copied)
	}
}

func TestSavedList_CopyFailure(t *testing.T) {
	l := NewSavedList(theme.DefaultTheme())
	l.writeClipboard = func(string) error { return errors.New("no clipboard") }
	l.SetItems(testConsoles())

	_, cmd := l.Update(key("y"))

	if msg := cmd().(ConsoleCopiedMsg); msg.Err == nil {
		t.Error("Expected the clipboard error to be reported")
	}
}

func TestSavedList_SetItemsKeepsCursor(t *testing.T) {
	l := NewSavedList(theme.DefaultTheme())
	l.SetItems(testConsoles())
	l.Update(key("j"))
	l.Update(key("j"))

	items := testConsoles()
	l.SetItems([]models.Console{items[2], items[0]})

	if c, _ := l.Current(); c.ID != 3 {
		t.Errorf("Expected cursor to stay on console 3, got %d", c.ID)
	}

	l.SetItems([]models.Console{items[1]})
	if l.Cursor != 0 {
		t.Errorf("Expected cursor reset when the console is gone, got %d", l.Cursor)
	}
}

func TestSavedList_EmptyIgnoresKeys(t *testing.T) {
	l := NewSavedList(theme.DefaultTheme())
	l.SetItems([]models.Console{})

	if _, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("Empty list should not emit commands")
	}
}
