package streak

import "time"

// Date is a calendar date with no time-of-day component. Streak math is
// defined over whole-day deltas, so carrying a time.Time around invites
// timezone and DST bugs.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in ISO form ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// String formats the date in ISO form.
func (d Date) String() string {
	return d.time().Format("2006-01-02")
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of whole calendar days from d to other.
// Negative when other is before d.
func (d Date) DaysUntil(other Date) int {
	return int(other.time().Sub(d.time()) / (24 * time.Hour))
}

// State is the persistent streak record for a learner.
type State struct {
	// Streak is the count of consecutive calendar days with activity.
	// Never negative; a broken streak resets to 1 (today still counts).
	Streak int

	// LastActivityDate is the most recent day with recorded activity.
	// Zero before the first activity.
	LastActivityDate Date
}

// Advance returns the streak state after recording activity on today.
//
//   - first ever activity: streak becomes 1
//   - same day as last activity: unchanged (repeat completions don't inflate)
//   - exactly the next day: streak + 1
//   - gap of 2+ days, or today before last activity (clock skew): reset to 1
func Advance(state State, today Date) State {
	if state.LastActivityDate.IsZero() {
		return State{Streak: 1, LastActivityDate: today}
	}

	switch state.LastActivityDate.DaysUntil(today) {
	case 0:
		return state
	case 1:
		return State{Streak: state.Streak + 1, LastActivityDate: today}
	default:
		return State{Streak: 1, LastActivityDate: today}
	}
}

// Clock supplies the current time. Injected so day-boundary behavior is
// testable without touching the wall clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Tracker records daily learning activity against an injected clock.
type Tracker struct {
	clock Clock
}

// NewTracker creates a Tracker. A nil clock falls back to the system clock.
func NewTracker(clock Clock) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Tracker{clock: clock}
}

// RecordActivity advances state for activity happening now.
func (t *Tracker) RecordActivity(state State) State {
	return Advance(state, DateOf(t.clock.Now()))
}
