package quiz

import (
	"sync"
	"time"
)

// Scheduler drives the countdown for active sessions. Implementations
// deliver tick roughly once per second until the returned cancel func is
// called. Cancellation is tied one-to-one to session completion or
// disposal by the caller; a late tick delivered during teardown must be
// safe, which Session.Tick's completed-check guarantees.
type Scheduler interface {
	// ScheduleTicks starts ticking for the given session and returns a
	// cancel func. Cancel is idempotent.
	ScheduleTicks(sessionID string, tick func()) (cancel func())
}

// TickScheduler runs one goroutine per scheduled session using a
// time.Ticker. Stop prevents further ticks and releases the ticker.
type TickScheduler struct {
	// Interval between ticks. Zero means one second.
	Interval time.Duration

	mu      sync.Mutex
	cancels map[string]chan struct{}
}

// NewTickScheduler creates a TickScheduler with a one-second interval.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{Interval: time.Second}
}

func (ts *TickScheduler) ScheduleTicks(sessionID string, tick func()) func() {
	ts.mu.Lock()
	if ts.cancels == nil {
		ts.cancels = make(map[string]chan struct{})
	}
	// Replace any stale registration for the same session id.
	if prev, ok := ts.cancels[sessionID]; ok {
		close(prev)
	}
	done := make(chan struct{})
	ts.cancels[sessionID] = done
	ts.mu.Unlock()

	interval := ts.Interval
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				tick()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ts.mu.Lock()
			if ch, ok := ts.cancels[sessionID]; ok && ch == done {
				delete(ts.cancels, sessionID)
			}
			ts.mu.Unlock()
			close(done)
		})
	}
}

// ManualScheduler delivers ticks only when the test calls Advance.
type ManualScheduler struct {
	mu    sync.Mutex
	ticks map[string]func()
}

func (ms *ManualScheduler) ScheduleTicks(sessionID string, tick func()) func() {
	ms.mu.Lock()
	if ms.ticks == nil {
		ms.ticks = make(map[string]func())
	}
	ms.ticks[sessionID] = tick
	ms.mu.Unlock()

	return func() {
		ms.mu.Lock()
		delete(ms.ticks, sessionID)
		ms.mu.Unlock()
	}
}

// Advance fires n ticks for the given session. No-op once cancelled.
func (ms *ManualScheduler) Advance(sessionID string, n int) {
	for range n {
		ms.mu.Lock()
		tick := ms.ticks[sessionID]
		ms.mu.Unlock()
		if tick == nil {
			return
		}
		tick()
	}
}

// Scheduled reports whether the session still has an active registration.
func (ms *ManualScheduler) Scheduled(sessionID string) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	_, ok := ms.ticks[sessionID]
	return ok
}
