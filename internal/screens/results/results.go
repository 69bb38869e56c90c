package results

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
	"github.com/abhisek/learntrack/internal/ui/components"
	"github.com/abhisek/learntrack/internal/ui/layout"
	"github.com/abhisek/learntrack/internal/ui/theme"
)

// ResultsScreen shows a completed attempt: the score, the mastery verdict,
// and a scrollable per-question review with explanations.
type ResultsScreen struct {
	svc      *engine.Service
	attempt  ledger.Attempt
	title    string
	timedOut bool
	// retake builds a fresh quiz screen over the same questions; injected
	// by the quiz screen to avoid an import cycle.
	retake func() screen.Screen

	scroll int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen for an attempt.
func New(svc *engine.Service, attempt ledger.Attempt, title string, timedOut bool, retake func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{
		svc:      svc,
		attempt:  attempt,
		title:    title,
		timedOut: timedOut,
		retake:   retake,
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Review"},
	}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retake"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < len(s.attempt.Questions)-1 {
			s.scroll++
		}
	case "r", "R":
		if s.retake != nil {
			next := s.retake()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "enter", "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	var b strings.Builder
	a := s.attempt

	// Verdict banner.
	banner := "Quiz complete!"
	bannerStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	switch {
	case s.timedOut:
		banner = "Time's up!"
		bannerStyle = bannerStyle.Foreground(theme.Error)
	case quiz.IsMastery(a.Score) && a.Subject.Kind == quiz.SubjectTopic:
		banner = "Topic mastered!"
		bannerStyle = bannerStyle.Foreground(theme.Success)
	}
	b.WriteString("\n")
	b.WriteString(bannerStyle.Width(width).Align(lipgloss.Center).Render(banner))
	b.WriteString("\n\n")

	// Stats line.
	mins := a.TimeTakenSeconds / 60
	secs := a.TimeTakenSeconds % 60
	stats := fmt.Sprintf("Score: %d        Correct: %d/%d        Time: %d:%02d",
		a.Score, a.CorrectAnswers, a.TotalQuestions, mins, secs)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(stats))
	b.WriteString("\n")

	verdict := fmt.Sprintf("Below the mastery bar (%d) — keep at it", quiz.MasteryThreshold)
	verdictStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if quiz.IsMastery(a.Score) {
		verdict = fmt.Sprintf("At or above the mastery bar (%d)", quiz.MasteryThreshold)
		verdictStyle = verdictStyle.Foreground(theme.Success)
	}
	if a.IsRetake {
		verdict += "  ·  retake"
	}
	b.WriteString(verdictStyle.Width(width).Align(lipgloss.Center).Render(verdict))
	b.WriteString("\n")

	streak := s.svc.Streak().Streak
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(fmt.Sprintf("★ %d day streak", streak)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	// One reviewed question at a time, scrolled with the cursor.
	b.WriteString(s.renderReview(width))

	return b.String()
}

// renderReview renders the question under the review cursor with colored
// options and the explanation.
func (s *ResultsScreen) renderReview(width int) string {
	a := s.attempt
	if s.scroll < 0 || s.scroll >= len(a.Questions) {
		return ""
	}
	q := a.Questions[s.scroll]
	chosen := -1
	if c, ok := a.Answers[s.scroll]; ok {
		chosen = c
	}

	var b strings.Builder

	position := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", s.scroll+1, len(a.Questions)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, position))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	var opts strings.Builder
	for i, opt := range q.Options {
		opts.WriteString(components.ReviewOption(i, opt, q.CorrectIndex, chosen))
		opts.WriteString("\n")
	}
	if chosen == -1 {
		opts.WriteString(theme.Hint.Render("  (unanswered)"))
		opts.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, opts.String()))
	b.WriteString("\n")

	if q.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.TextDim).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
