package ledger

import (
	"time"

	"github.com/abhisek/learntrack/internal/quiz"
)

// Attempt is the immutable record of one completed quiz session. Created
// exactly once per completion and never mutated; corrections are modeled
// as new attempts.
type Attempt struct {
	ID      string
	Subject quiz.Subject

	Questions []quiz.Question
	Answers   map[int]int

	Score           int
	CorrectAnswers  int
	TotalQuestions  int
	StartedAt       time.Time
	CompletedAt     time.Time
	TimeTakenSeconds int

	IsRetake          bool
	OriginalAttemptID string
}

// FromSession snapshots a completed session into an attempt record. The
// answers map is copied so later session mutation (there should be none)
// can't reach the record.
func FromSession(s *quiz.Session) Attempt {
	answers := make(map[int]int, len(s.Answers))
	for i, a := range s.Answers {
		answers[i] = a
	}
	return Attempt{
		ID:                s.ID,
		Subject:           s.Subject,
		Questions:         append([]quiz.Question(nil), s.Questions...),
		Answers:           answers,
		Score:             s.Score,
		CorrectAnswers:    s.CorrectAnswers(),
		TotalQuestions:    len(s.Questions),
		StartedAt:         s.StartedAt,
		CompletedAt:       s.CompletedAt,
		TimeTakenSeconds:  s.TimeTakenSeconds(),
		IsRetake:          s.IsRetake,
		OriginalAttemptID: s.OriginalAttemptID,
	}
}
