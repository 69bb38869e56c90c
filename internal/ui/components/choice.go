package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntrack/internal/ui/theme"
)

var optionLabels = [...]string{"A", "B", "C", "D"}

// OptionList renders the four answer options of a quiz question. Cursor is
// the highlighted row; Recorded is the answer already on file for the
// question, or -1 when it is still unanswered.
type OptionList struct {
	Options  [4]string
	Cursor   int
	Recorded int
}

// NewOptionList creates an option list with the cursor on the recorded
// answer when there is one, otherwise on the first option.
func NewOptionList(options [4]string, recorded int) OptionList {
	cursor := 0
	if recorded >= 0 && recorded < len(options) {
		cursor = recorded
	}
	return OptionList{
		Options:  options,
		Cursor:   cursor,
		Recorded: recorded,
	}
}

// MoveUp moves the cursor up one option.
func (o *OptionList) MoveUp() {
	if o.Cursor > 0 {
		o.Cursor--
	}
}

// MoveDown moves the cursor down one option.
func (o *OptionList) MoveDown() {
	if o.Cursor < len(o.Options)-1 {
		o.Cursor++
	}
}

// View renders the option rows.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}
		marker := " "
		if i == o.Recorded {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, optionLabels[i], opt)

		switch {
		case i == o.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case i == o.Recorded:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

// ReviewOption renders one option row for a completed attempt: the correct
// option in green, a wrong pick in red, everything else dimmed.
func ReviewOption(index int, text string, correctIndex, chosenIndex int) string {
	marker := "  "
	switch {
	case index == correctIndex:
		marker = "✓ "
	case index == chosenIndex:
		marker = "✗ "
	}

	line := fmt.Sprintf("  %s%s)  %s", marker, optionLabels[index], text)

	switch {
	case index == correctIndex:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line)
	case index == chosenIndex:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
	}
}
