package quiz

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// SecondsPerQuestion sizes the session time limit: one minute per question.
const SecondsPerQuestion = 60

// Clock supplies the current time to the session machine. Injected so
// timing behavior is testable; nil means the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Session is one live quiz attempt: a small state machine that moves from
// Active to Completed exactly once and never leaves Completed. All methods
// are for a single caller; the session is owned by whoever started it.
type Session struct {
	ID      string
	Subject Subject

	// Questions is fixed at start. Answers is sparse: an absent index is
	// an unanswered question, which scores as incorrect.
	Questions    []Question
	CurrentIndex int
	Answers      map[int]int

	Score       int
	Completed   bool
	StartedAt   time.Time
	CompletedAt time.Time

	TimeLimitSeconds     int
	TimeRemainingSeconds int

	IsRetake          bool
	OriginalAttemptID string

	clock Clock
}

// StartOption configures a new session.
type StartOption func(*Session)

// WithClock injects a clock for deterministic tests.
func WithClock(c Clock) StartOption {
	return func(s *Session) { s.clock = c }
}

// AsRetake marks the session as a retake of a prior attempt. originalID
// may be empty when the retake sourced questions from the latest attempt
// without naming one.
func AsRetake(originalID string) StartOption {
	return func(s *Session) {
		s.IsRetake = true
		s.OriginalAttemptID = originalID
	}
}

// Start constructs an Active session over the given questions with a time
// limit of one minute per question and no answers recorded.
func Start(subject Subject, questions []Question, opts ...StartOption) (*Session, error) {
	if !subject.Valid() {
		return nil, ErrInvalidSubject
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	limit := len(questions) * SecondsPerQuestion
	s := &Session{
		ID:                   uuid.New().String(),
		Subject:              subject,
		Questions:            questions,
		Answers:              make(map[int]int, len(questions)),
		TimeLimitSeconds:     limit,
		TimeRemainingSeconds: limit,
		clock:                systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.StartedAt = s.clock.Now()
	return s, nil
}

// Answer records (or overwrites, last write wins) the answer for the
// question at index. It does not advance CurrentIndex.
func (s *Session) Answer(index, answerIndex int) error {
	if s.Completed {
		return fmt.Errorf("answer question %d: %w", index, ErrStateError)
	}
	if index < 0 || index >= len(s.Questions) {
		return fmt.Errorf("answer question %d of %d: %w", index, len(s.Questions), ErrOutOfRange)
	}
	if answerIndex < 0 || answerIndex >= OptionCount {
		return fmt.Errorf("answer option %d: %w", answerIndex, ErrOutOfRange)
	}
	s.Answers[index] = answerIndex
	return nil
}

// AnswerCurrent records an answer for the question at CurrentIndex.
func (s *Session) AnswerCurrent(answerIndex int) error {
	return s.Answer(s.CurrentIndex, answerIndex)
}

// Next advances to the following question. At the last question it
// completes the session instead of moving past the end.
func (s *Session) Next() error {
	if s.Completed {
		return fmt.Errorf("next question: %w", ErrStateError)
	}
	if s.CurrentIndex < len(s.Questions)-1 {
		s.CurrentIndex++
		return nil
	}
	s.Complete()
	return nil
}

// Previous moves back one question. No-op at the first question.
func (s *Session) Previous() error {
	if s.Completed {
		return fmt.Errorf("previous question: %w", ErrStateError)
	}
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
	return nil
}

// NavigateTo jumps directly to the question at index. Out-of-range targets
// are rejected with ErrOutOfRange rather than clamped, so callers can
// surface the mistake.
func (s *Session) NavigateTo(index int) error {
	if s.Completed {
		return fmt.Errorf("navigate to question %d: %w", index, ErrStateError)
	}
	if index < 0 || index >= len(s.Questions) {
		return fmt.Errorf("navigate to question %d of %d: %w", index, len(s.Questions), ErrOutOfRange)
	}
	s.CurrentIndex = index
	return nil
}

// Tick decrements the countdown by one second. Reaching zero forces
// completion. Returns true when this tick completed the session; a stray
// tick against a completed session is a harmless no-op.
func (s *Session) Tick() bool {
	if s.Completed {
		return false
	}
	if s.TimeRemainingSeconds > 0 {
		s.TimeRemainingSeconds--
	}
	if s.TimeRemainingSeconds <= 0 {
		return s.Complete()
	}
	return false
}

// Complete finalizes the session: scores the recorded answers and marks it
// Completed with a completion timestamp. Idempotent; only the first call
// transitions, and it returns true exactly once so callers can run their
// completion side effects exactly once even under a timeout/user race.
func (s *Session) Complete() bool {
	if s.Completed {
		return false
	}
	s.Score = Score(s.Questions, s.Answers)
	s.Completed = true
	s.CompletedAt = s.clock.Now()
	return true
}

// CorrectAnswers returns the number of correctly answered questions.
func (s *Session) CorrectAnswers() int {
	return CorrectCount(s.Questions, s.Answers)
}

// TimeTakenSeconds returns the elapsed seconds between start and
// completion, rounded to the nearest second. Zero while Active.
func (s *Session) TimeTakenSeconds() int {
	if !s.Completed {
		return 0
	}
	return int(math.Round(s.CompletedAt.Sub(s.StartedAt).Seconds()))
}

// AnsweredCount returns how many questions have a recorded answer.
func (s *Session) AnsweredCount() int {
	return len(s.Answers)
}

// AnswerAt returns the recorded answer for a question index, or -1 when
// unanswered.
func (s *Session) AnswerAt(index int) int {
	if a, ok := s.Answers[index]; ok {
		return a
	}
	return -1
}
