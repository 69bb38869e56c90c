package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntrack/internal/engine"
	"github.com/abhisek/learntrack/internal/ledger"
	"github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/router"
	"github.com/abhisek/learntrack/internal/screen"
	quizscreen "github.com/abhisek/learntrack/internal/screens/quiz"
	"github.com/abhisek/learntrack/internal/screens/results"
	"github.com/abhisek/learntrack/internal/ui/layout"
	"github.com/abhisek/learntrack/internal/ui/theme"
)

// HistoryScreen lists past attempts, newest first, and opens the full
// attempt review on selection.
type HistoryScreen struct {
	svc          *engine.Service
	attempts     []ledger.Attempt
	selected     int
	scrollOffset int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc *engine.Service) *HistoryScreen {
	all := svc.Ledger().All()
	// Newest first.
	attempts := make([]ledger.Attempt, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		attempts = append(attempts, all[i])
	}
	return &HistoryScreen{
		svc:      svc,
		attempts: attempts,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Review"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.attempts)-1 {
			s.selected++
		}
	case "enter":
		return s, s.openReview()
	case "q", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// openReview pushes the results screen for the selected attempt, wired
// with a retake that reuses its questions.
func (s *HistoryScreen) openReview() tea.Cmd {
	if s.selected < 0 || s.selected >= len(s.attempts) {
		return nil
	}
	attempt := s.attempts[s.selected]
	title := s.subjectName(attempt.Subject)

	svc := s.svc
	retake := func() screen.Screen {
		return quizscreen.NewRetake(svc, attempt, title)
	}
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: results.New(svc, attempt, title, false, retake),
		}
	}
}

// subjectName resolves an attempt subject to a display name.
func (s *HistoryScreen) subjectName(subject quiz.Subject) string {
	if subject.Kind == quiz.SubjectTopic {
		if t, err := s.svc.Topic(subject.ID); err == nil {
			return t.Name
		}
	}
	return subject.ID
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Pick a topic and get started!")
	}

	s.adjustScroll(height - 1)

	var b strings.Builder
	b.WriteString("\n")

	for i := s.scrollOffset; i < len(s.attempts) && i < s.scrollOffset+height-1; i++ {
		a := s.attempts[i]
		dateStr := a.CompletedAt.Format("Jan 02, 2006 15:04")
		mins := a.TimeTakenSeconds / 60
		secs := a.TimeTakenSeconds % 60

		retakeStr := ""
		if a.IsRetake {
			retakeStr = "  retake"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-24s  %d/%d correct  score %3d  %d:%02d%s",
			prefix, dateStr, s.subjectName(a.Subject),
			a.CorrectAnswers, a.TotalQuestions, a.Score, mins, secs, retakeStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case quiz.IsMastery(a.Score):
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// adjustScroll keeps the selection inside the viewport.
func (s *HistoryScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.selected < s.scrollOffset {
		s.scrollOffset = s.selected
	}
	if s.selected >= s.scrollOffset+height {
		s.scrollOffset = s.selected - height + 1
	}
}
