package streak

import (
	"testing"
	"time"
)

func date(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name  string
		state State
		today string
		want  State
	}{
		{
			name:  "first activity",
			state: State{},
			today: "2024-01-10",
			want:  State{Streak: 1, LastActivityDate: date("2024-01-10")},
		},
		{
			name:  "same day is idempotent",
			state: State{Streak: 4, LastActivityDate: date("2024-01-10")},
			today: "2024-01-10",
			want:  State{Streak: 4, LastActivityDate: date("2024-01-10")},
		},
		{
			name:  "consecutive day increments",
			state: State{Streak: 4, LastActivityDate: date("2024-01-10")},
			today: "2024-01-11",
			want:  State{Streak: 5, LastActivityDate: date("2024-01-11")},
		},
		{
			name:  "two day gap resets to one",
			state: State{Streak: 4, LastActivityDate: date("2024-01-10")},
			today: "2024-01-12",
			want:  State{Streak: 1, LastActivityDate: date("2024-01-12")},
		},
		{
			name:  "long gap resets to one",
			state: State{Streak: 30, LastActivityDate: date("2024-01-10")},
			today: "2024-03-01",
			want:  State{Streak: 1, LastActivityDate: date("2024-03-01")},
		},
		{
			name:  "clock skew into the past resets to one",
			state: State{Streak: 4, LastActivityDate: date("2024-01-10")},
			today: "2024-01-09",
			want:  State{Streak: 1, LastActivityDate: date("2024-01-09")},
		},
		{
			name:  "increment across month boundary",
			state: State{Streak: 2, LastActivityDate: date("2024-01-31")},
			today: "2024-02-01",
			want:  State{Streak: 3, LastActivityDate: date("2024-02-01")},
		},
		{
			name:  "increment across year boundary",
			state: State{Streak: 7, LastActivityDate: date("2023-12-31")},
			today: "2024-01-01",
			want:  State{Streak: 8, LastActivityDate: date("2024-01-01")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.state, date(tt.today))
			if got != tt.want {
				t.Errorf("Advance() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAdvanceNeverNegative(t *testing.T) {
	state := State{}
	days := []string{"2024-01-01", "2024-01-01", "2024-01-05", "2024-01-06", "2024-01-04"}
	for _, d := range days {
		state = Advance(state, date(d))
		if state.Streak < 1 {
			t.Fatalf("streak went below 1 after %s: %+v", d, state)
		}
	}
}

// fakeClock returns a fixed instant.
type fakeClock struct {
	now time.Time
}

func (f fakeClock) Now() time.Time { return f.now }

func TestTrackerRecordActivity(t *testing.T) {
	clock := fakeClock{now: time.Date(2024, 1, 11, 23, 30, 0, 0, time.UTC)}
	tracker := NewTracker(clock)

	state := State{Streak: 4, LastActivityDate: date("2024-01-10")}
	got := tracker.RecordActivity(state)

	want := State{Streak: 5, LastActivityDate: date("2024-01-11")}
	if got != want {
		t.Errorf("RecordActivity() = %+v, want %+v", got, want)
	}

	// Recording again on the same day must not inflate the streak.
	again := tracker.RecordActivity(got)
	if again != want {
		t.Errorf("second RecordActivity() = %+v, want %+v", again, want)
	}
}

func TestDateDaysUntil(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2024-01-10", "2024-01-10", 0},
		{"2024-01-10", "2024-01-11", 1},
		{"2024-01-10", "2024-01-12", 2},
		{"2024-01-12", "2024-01-10", -2},
		{"2024-02-28", "2024-03-01", 2}, // leap year
		{"2023-02-28", "2023-03-01", 1},
	}

	for _, tt := range tests {
		got := date(tt.from).DaysUntil(date(tt.to))
		if got != tt.want {
			t.Errorf("DaysUntil(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}
