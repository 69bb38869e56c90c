package ledger

import (
	"slices"
	"sync"

	"github.com/abhisek/learntrack/internal/quiz"
)

// Ledger is the append-only attempt history, keyed by subject identity and
// ordered by completion (insertion order). There is no update or delete:
// history only grows.
type Ledger struct {
	mu       sync.RWMutex
	bySubject map[string][]Attempt
	byID      map[string]Attempt
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		bySubject: make(map[string][]Attempt),
		byID:      make(map[string]Attempt),
	}
}

// Record appends an attempt to its subject's history.
func (l *Ledger) Record(a Attempt) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := a.Subject.Key()
	l.bySubject[key] = append(l.bySubject[key], a)
	l.byID[a.ID] = a
}

// AttemptsFor returns all attempts for a subject in completion order.
func (l *Ledger) AttemptsFor(subject quiz.Subject) []Attempt {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.bySubject[subject.Key()])
}

// Latest returns the most recent attempt for a subject, or false when the
// subject has no history.
func (l *Ledger) Latest(subject quiz.Subject) (Attempt, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	attempts := l.bySubject[subject.Key()]
	if len(attempts) == 0 {
		return Attempt{}, false
	}
	return attempts[len(attempts)-1], true
}

// Get returns an attempt by id for review, or false if unknown.
func (l *Ledger) Get(attemptID string) (Attempt, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.byID[attemptID]
	return a, ok
}

// All returns every recorded attempt across all subjects, ordered by
// completion time (oldest first).
func (l *Ledger) All() []Attempt {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Attempt, 0, len(l.byID))
	for _, attempts := range l.bySubject {
		out = append(out, attempts...)
	}
	slices.SortStableFunc(out, func(a, b Attempt) int {
		return a.CompletedAt.Compare(b.CompletedAt)
	})
	return out
}

// Len returns the total number of recorded attempts.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byID)
}
