package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learntrack/internal/engine"
	"github.com/abhisek/learntrack/internal/ledger"
	quizcore "github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/router"
	"github.com/abhisek/learntrack/internal/screen"
	"github.com/abhisek/learntrack/internal/screens/results"
	"github.com/abhisek/learntrack/internal/ui/components"
	"github.com/abhisek/learntrack/internal/ui/layout"
)

// QuizScreen runs one quiz session against the engine: it starts the
// session, drives the one-second countdown through engine ticks, records
// answers, and hands off to the results screen on completion.
type QuizScreen struct {
	svc     *engine.Service
	subject quizcore.Subject
	title   string
	start   func(ctx context.Context) (*quizcore.Session, error)

	spin        components.Spinner
	options     components.OptionList
	loading     bool
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for a topic.
func New(svc *engine.Service, topicID, title string) *QuizScreen {
	return &QuizScreen{
		svc:     svc,
		subject: quizcore.TopicSubject(topicID),
		title:   title,
		start: func(ctx context.Context) (*quizcore.Session, error) {
			return svc.StartTopicQuiz(ctx, topicID)
		},
		spin:    components.NewSpinner("Preparing your quiz..."),
		loading: true,
	}
}

// NewContent creates a quiz screen for uploaded content.
func NewContent(svc *engine.Service, contentID, title string) *QuizScreen {
	return &QuizScreen{
		svc:     svc,
		subject: quizcore.ContentSubject(contentID),
		title:   title,
		start: func(ctx context.Context) (*quizcore.Session, error) {
			return svc.StartContentQuiz(ctx, contentID)
		},
		spin:    components.NewSpinner("Preparing your quiz..."),
		loading: true,
	}
}

// NewRetake creates a quiz screen that retakes a prior attempt with the
// same questions.
func NewRetake(svc *engine.Service, attempt ledger.Attempt, title string) *QuizScreen {
	return &QuizScreen{
		svc:     svc,
		subject: attempt.Subject,
		title:   title,
		start: func(context.Context) (*quizcore.Session, error) {
			return svc.Retake(attempt.Subject, attempt.ID)
		},
		spin:    components.NewSpinner("Preparing your retake..."),
		loading: true,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.spin.Init(), s.startCmd())
}

func (s *QuizScreen) Title() string {
	return s.title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4/Enter", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return s.handleReady(msg)
	case timerTickMsg:
		return s.handleTimerTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.loading {
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd
	}
	return s, nil
}

// startCmd starts the session off the UI goroutine.
func (s *QuizScreen) startCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := s.start(context.Background())
		return sessionReadyMsg{Err: err}
	}
}

func (s *QuizScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.loading = false
		return s, nil
	}
	s.loading = false
	s.syncOptions()
	return s, tickCmd()
}

// handleTimerTick feeds one second into the engine countdown. When the
// tick expires the session, the engine has already recorded the attempt;
// all that is left is showing the results.
func (s *QuizScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.loading || s.errMsg != "" {
		return s, nil
	}

	if s.svc.Tick(s.subject) {
		return s, s.showResults(true)
	}
	if _, ok := s.svc.Active(s.subject); !ok {
		// Session finished through another path.
		return s, s.showResults(false)
	}
	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.loading {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.svc.Close(s.subject)
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	sess, ok := s.svc.Active(s.subject)
	if !ok {
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
	case "up", "k":
		s.options.MoveUp()
	case "down", "j":
		s.options.MoveDown()
	case "left", "h":
		if sess.CurrentIndex > 0 {
			_ = s.svc.NavigateTo(s.subject, sess.CurrentIndex-1)
			s.syncOptions()
		}
	case "right", "l":
		if sess.CurrentIndex < len(sess.Questions)-1 {
			_ = s.svc.NavigateTo(s.subject, sess.CurrentIndex+1)
			s.syncOptions()
		}
	case "1", "2", "3", "4":
		s.options.Cursor = int(key[0] - '1')
		return s, s.answerAndAdvance()
	case "enter":
		return s, s.answerAndAdvance()
	case "s", "S":
		return s.submit()
	}

	return s, nil
}

// answerAndAdvance records the highlighted option for the current question
// and moves on. Advancing past the last question completes the quiz.
func (s *QuizScreen) answerAndAdvance() tea.Cmd {
	if err := s.svc.AnswerCurrent(s.subject, s.options.Cursor); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := s.svc.Next(s.subject); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if _, ok := s.svc.Active(s.subject); !ok {
		return s.showResults(false)
	}
	s.syncOptions()
	return nil
}

// submit ends the quiz immediately, scoring unanswered questions as
// incorrect.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	if _, err := s.svc.Complete(s.subject); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, s.showResults(false)
}

// showResults swaps in the results screen for the recorded attempt so Esc
// from results does not land back on a finished quiz.
func (s *QuizScreen) showResults(timedOut bool) tea.Cmd {
	attempt, ok := s.svc.Ledger().Latest(s.subject)
	if !ok {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	svc, title := s.svc, s.title
	retake := func() screen.Screen {
		return NewRetake(svc, attempt, title)
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: results.New(svc, attempt, title, timedOut, retake),
		}
	}
}

// syncOptions rebuilds the option list for the current question, seeding
// the cursor from any answer already on file.
func (s *QuizScreen) syncOptions() {
	sess, ok := s.svc.Active(s.subject)
	if !ok {
		return
	}
	q := sess.Questions[sess.CurrentIndex]
	s.options = components.NewOptionList(q.Options, sess.AnswerAt(sess.CurrentIndex))
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
