package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntrack/internal/ui/theme"
)

// MenuItem is one destination on a navigation menu. Hint is a short dimmed
// description rendered next to the label.
type MenuItem struct {
	Label  string
	Hint   string
	Action func() tea.Cmd
}

// Menu is a vertical navigation menu with numbered entries. Items are
// reached with up/down (or j/k) and Enter, or directly by their number.
type Menu struct {
	Items    []MenuItem
	Selected int

	labelWidth int
}

// NewMenu creates a menu over the given items.
func NewMenu(items []MenuItem) Menu {
	width := 0
	for _, item := range items {
		if len(item.Label) > width {
			width = len(item.Label)
		}
	}
	return Menu{Items: items, labelWidth: width}
}

// Update handles navigation keys and returns the activated item's command.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		return m, m.activate(m.Selected)
	default:
		// A single digit jumps straight to that entry.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Items) {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}

	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == m.Selected {
			cursor = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%d. %-*s", cursor, i+1, m.labelWidth, item.Label)
		b.WriteString(style.Render(line))
		if item.Hint != "" {
			b.WriteString(theme.Hint.Render("   " + item.Hint))
		}
		b.WriteString("\n")
	}
	return b.String()
}
