package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learntrack/internal/screen"
)

// fakeScreen stands in for the app's screens: the router only cares about
// titles, Init, and message forwarding.
type fakeScreen struct {
	name    string
	inits   int
	lastMsg tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.lastMsg = msg
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }

func navigate(r *Router, msg tea.Msg) { r.Update(msg) }

func assertActive(t *testing.T, r *Router, want string) {
	t.Helper()
	if got := r.Active().Title(); got != want {
		t.Errorf("active screen = %q, want %q", got, want)
	}
}

func TestPushDescendsIntoBoard(t *testing.T) {
	home := &fakeScreen{name: "Home"}
	r := New(home)

	board := &fakeScreen{name: "Topic Board"}
	r.Push(board)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	assertActive(t, r, "Topic Board")
	if board.inits != 1 {
		t.Errorf("board Init ran %d times, want 1", board.inits)
	}
}

func TestPopReturnsToPreviousScreen(t *testing.T) {
	home := &fakeScreen{name: "Home"}
	r := New(home)
	r.Push(&fakeScreen{name: "Topic Board"})

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	assertActive(t, r, "Home")
}

func TestPopAtHomeIsNoop(t *testing.T) {
	r := New(&fakeScreen{name: "Home"})

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d after pop at home, want 1", r.Depth())
	}
	assertActive(t, r, "Home")
}

// A finished quiz swaps itself for the results screen in place, so backing
// out of results lands on the board and never on the dead quiz.
func TestFinishedQuizReplacedByResults(t *testing.T) {
	r := New(&fakeScreen{name: "Home"})
	navigate(r, PushScreenMsg{Screen: &fakeScreen{name: "Topic Board"}})
	navigate(r, PushScreenMsg{Screen: &fakeScreen{name: "Arrays"}})

	results := &fakeScreen{name: "Results"}
	navigate(r, ReplaceScreenMsg{Screen: results})

	if r.Depth() != 3 {
		t.Errorf("depth = %d after replace, want 3 (stack preserved)", r.Depth())
	}
	assertActive(t, r, "Results")
	if results.inits != 1 {
		t.Errorf("results Init ran %d times, want 1", results.inits)
	}

	navigate(r, PopScreenMsg{})
	assertActive(t, r, "Topic Board")
}

// Retaking from results replaces again, results → quiz, without growing
// the stack on every round trip.
func TestRetakeLoopKeepsStackFlat(t *testing.T) {
	r := New(&fakeScreen{name: "Home"})
	navigate(r, PushScreenMsg{Screen: &fakeScreen{name: "History"}})
	navigate(r, PushScreenMsg{Screen: &fakeScreen{name: "Results"}})

	for range 3 {
		navigate(r, ReplaceScreenMsg{Screen: &fakeScreen{name: "Arrays"}})
		navigate(r, ReplaceScreenMsg{Screen: &fakeScreen{name: "Results"}})
	}

	if r.Depth() != 3 {
		t.Errorf("depth = %d after retake loop, want 3", r.Depth())
	}
	assertActive(t, r, "Results")
}

func TestReplaceOnEmptyRouterPushes(t *testing.T) {
	r := &Router{}

	first := &fakeScreen{name: "Home"}
	r.Replace(first)

	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if first.inits != 1 {
		t.Errorf("Init ran %d times, want 1", first.inits)
	}
}

func TestUpdateForwardsToActiveScreenOnly(t *testing.T) {
	home := &fakeScreen{name: "Home"}
	r := New(home)
	board := &fakeScreen{name: "Topic Board"}
	r.Push(board)

	key := tea.KeyPressMsg{Code: 'j'}
	r.Update(key)

	if board.lastMsg == nil {
		t.Error("active screen never saw the message")
	}
	if home.lastMsg != nil {
		t.Error("covered screen saw a message meant for the active one")
	}
}
