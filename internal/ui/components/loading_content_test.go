package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

func TestStateOf(t *testing.T) {
	tests := []struct {
		name string
		data []string
		want DataState
	}{
		{"nil is loading", nil, DataLoading},
		{"empty", []string{}, DataEmpty},
		{"ready", []string{"orders"}, DataReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateOf(tt.data); got != tt.want {
				t.Errorf("StateOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadingContent_View(t *testing.T) {
	lc := NewLoadingContent(theme.DefaultTheme(), "Loading…", "No data")
	lc.Width = 30

	called := false
	content := func() string {
		called = true
		return "the list"
	}

	if view := lc.View(DataLoading, content); !strings.Contains(view, "Loading…") {
		t.Errorf("Expected loading text, got:\n%s", view)
	}
	if view := lc.View(DataEmpty, content); !strings.Contains(view, "No data") {
		t.Errorf("Expected empty text, got:\n%s", view)
	}
	if called {
		t.Error("Content should not render while loading or empty")
	}
	if view := lc.View(DataReady, content); view != "the list" {
		t.Errorf("Expected content, got %q", view)
	}
}

func TestLoadingContent_Spinner(t *testing.T) {
	lc := NewLoadingContent(theme.DefaultTheme(), "Loading…", "No data")

	if cmd := lc.Start(); cmd == nil {
		t.Error("Start should schedule a tick")
	}
	if cmd := lc.Start(); cmd != nil {
		t.Error("A running spinner should not schedule a second tick")
	}

	tick := lc.spinner.Tick()
	if cmd := lc.Update(tick); cmd == nil {
		t.Error("An active spinner should keep ticking")
	}

	lc.Stop()
	if cmd := lc.Update(tick); cmd != nil {
		t.Error("A stopped spinner should not tick")
	}
	if cmd := lc.Update(spinner.TickMsg{ID: -1}); cmd != nil {
		t.Error("Ticks of other spinners should be ignored")
	}
}
