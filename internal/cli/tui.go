package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dotforge/dotforge/pkg/backend"
)

// List styles
var (
	listSelectedStyle = StyleHighlight.Bold(true)
	listNormalStyle   = StyleValue
	listDimStyle      = StyleDim
)

// =============================================================================
// pickListModel - Interactive selection from a list of names
// =============================================================================

// pickListModel is the bubbletea model for selecting one item from a list.
type pickListModel struct {
	Title    string
	Items    []string
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

func newPickListModel(title string, items []string) pickListModel {
	return pickListModel{
		Title:  title,
		Items:  items,
		Height: 15,
	}
}

func (m pickListModel) Init() tea.Cmd {
	return nil
}

func (m pickListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Items[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m pickListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("› " + m.Items[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + m.Items[i]))
		}
		b.WriteString("\n")
	}
	if end < len(m.Items) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("\n… %d more", len(m.Items)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

// pick runs the picker and returns the selection, or "" if the user quit.
func pick(title string, items []string) (string, error) {
	prog := tea.NewProgram(newPickListModel(title, items))
	final, err := prog.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(pickListModel)
	if !ok {
		return "", nil
	}
	return m.Selected, nil
}

// pickEngine interactively selects a layout engine.
func pickEngine() (string, error) {
	return pick("Select Layout Engine", backend.KnownEngines())
}

// pickFormat interactively selects an output format. The full format list is
// long, so common formats are listed first.
func pickFormat() (string, error) {
	common := []string{"pdf", "svg", "png", "jpg", "gif", "dot", "xdot", "plain", "json"}
	seen := make(map[string]bool, len(common))
	for _, f := range common {
		seen[f] = true
	}
	items := append([]string{}, common...)
	for _, f := range backend.KnownFormats() {
		if !seen[f] {
			items = append(items, f)
		}
	}
	return pick("Select Output Format", items)
}
