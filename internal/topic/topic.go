package topic

import "time"

// Status is a topic's stored progress state. This is the source-of-truth
// field persisted per learner; the derived availability (Ready/Locked) is
// computed on demand by Resolve and must never be written back here.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusMastered   Status = "mastered"
)

// EffectiveStatus is a topic's derived state relative to the learner:
// the stored status combined with prerequisite mastery.
type EffectiveStatus int

const (
	Locked     EffectiveStatus = iota // One or more prerequisites not yet mastered
	Ready                            // All prerequisites mastered; topic not yet started
	InProgress                       // Attempted but below the mastery threshold
	Mastered                         // Best attempt crossed the mastery threshold
)

// Icon returns the display icon for an effective status.
func (s EffectiveStatus) Icon() string {
	switch s {
	case Locked:
		return "🔒"
	case Ready:
		return "🔓"
	case InProgress:
		return "📖"
	case Mastered:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for an effective status.
func (s EffectiveStatus) Label() string {
	switch s {
	case Locked:
		return "Locked"
	case Ready:
		return "Ready"
	case InProgress:
		return "In Progress"
	case Mastered:
		return "Mastered"
	default:
		return "Unknown"
	}
}

// Topic is a single node in the curriculum graph plus the learner's
// stored progress against it.
type Topic struct {
	ID            string
	Name          string
	Description   string
	Prerequisites []string

	// Learner progress. Status is stored state, distinct from the
	// derived EffectiveStatus (see Resolve).
	Status      Status
	Score       int
	BestScore   int
	Attempts    int
	LastAttempt *time.Time
}
