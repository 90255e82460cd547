package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPickListModelNavigation(t *testing.T) {
	m := newPickListModel("Select", []string{"dot", "neato", "fdp"})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(pickListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(pickListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}

	// Up at the top stays put
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(pickListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestPickListModelSelect(t *testing.T) {
	m := newPickListModel("Select", []string{"dot", "neato", "fdp"})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(pickListModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(pickListModel)

	if m.Selected != "neato" {
		t.Errorf("Selected = %q, want neato", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPickListModelView(t *testing.T) {
	m := newPickListModel("Select Layout Engine", []string{"dot", "neato"})

	view := m.View()
	if !strings.Contains(view, "Select Layout Engine") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "dot") || !strings.Contains(view, "neato") {
		t.Error("view should list all items")
	}
}
