package topics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntrack/internal/engine"
	"github.com/abhisek/learntrack/internal/router"
	"github.com/abhisek/learntrack/internal/screen"
	quizscreen "github.com/abhisek/learntrack/internal/screens/quiz"
	"github.com/abhisek/learntrack/internal/topic"
	"github.com/abhisek/learntrack/internal/ui/layout"
	"github.com/abhisek/learntrack/internal/ui/theme"
)

// TopicsScreen displays the curriculum in prerequisite order with each
// topic's derived availability and progress.
type TopicsScreen struct {
	svc          *engine.Service
	topics       []topic.Topic
	cursor       int
	scrollOffset int
	notice       string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)

// New creates a new TopicsScreen.
func New(svc *engine.Service) *TopicsScreen {
	return &TopicsScreen{
		svc:    svc,
		topics: svc.Topics(),
	}
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicsScreen) Title() string {
	return "Topic Board"
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		s.notice = ""
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.topics)-1 {
				s.cursor++
			}
		case "enter":
			return s, s.startQuiz()
		case "q", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// startQuiz pushes the quiz screen for the selected topic unless it is
// still locked behind an unmastered prerequisite.
func (s *TopicsScreen) startQuiz() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.topics) {
		return nil
	}
	t := s.topics[s.cursor]

	status, err := s.svc.EffectiveStatus(t.ID)
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	if status == topic.Locked {
		s.notice = fmt.Sprintf("%q is locked — master its prerequisites first (%s)",
			t.Name, strings.Join(s.prereqNames(t), ", "))
		return nil
	}

	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quizscreen.New(s.svc, t.ID, t.Name)}
	}
}

// prereqNames resolves prerequisite ids to display names.
func (s *TopicsScreen) prereqNames(t topic.Topic) []string {
	names := make([]string, 0, len(t.Prerequisites))
	for _, id := range t.Prerequisites {
		if p, err := s.svc.Topic(id); err == nil {
			names = append(names, p.Name)
		} else {
			names = append(names, id)
		}
	}
	return names
}

func (s *TopicsScreen) View(width, height int) string {
	// Progress columns change when the learner returns from a quiz, so
	// re-read the board on every render.
	s.topics = s.svc.Topics()
	if len(s.topics) == 0 {
		return theme.Hint.Width(width).Align(lipgloss.Center).Render("\n\nNo topics configured.")
	}

	// Reserve a line for the notice bar.
	listHeight := height - 2
	if listHeight < 1 {
		listHeight = 1
	}
	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scrollOffset; i < len(s.topics) && len(lines) < listHeight; i++ {
		lines = append(lines, s.renderRow(s.topics[i], i == s.cursor, width))
	}

	out := strings.Join(lines, "\n")
	if s.notice != "" {
		out += "\n\n" + lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(width).
			Align(lipgloss.Center).
			Render(s.notice)
	}
	return out
}

// adjustScroll keeps the cursor inside the viewport.
func (s *TopicsScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// renderRow renders one topic line: icon, name, progress columns, label.
func (s *TopicsScreen) renderRow(t topic.Topic, selected bool, width int) string {
	status, err := s.svc.EffectiveStatus(t.ID)
	if err != nil {
		status = topic.Locked
	}

	nameWidth := width - 46
	if nameWidth < 12 {
		nameWidth = 12
	}
	name := t.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	progress := "  —  "
	if t.Attempts > 0 {
		progress = fmt.Sprintf("best %3d", t.BestScore)
	}
	attempts := fmt.Sprintf("%2d attempts", t.Attempts)

	var style lipgloss.Style
	switch {
	case selected:
		style = theme.Selected
	case status == topic.Mastered:
		style = theme.StatusMastered
	case status == topic.InProgress:
		style = theme.StatusInProgress
	case status == topic.Ready:
		style = theme.StatusReady
	default:
		style = theme.StatusLocked
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	row := fmt.Sprintf("  %s%s %-*s  %s  %s  %12s",
		cursor,
		status.Icon(),
		nameWidth, name,
		progress,
		attempts,
		status.Label(),
	)
	return style.Render(row)
}
