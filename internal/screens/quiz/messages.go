package quiz

import "time"

// sessionReadyMsg is sent when the session has started (questions may have
// been generated by the LLM, so this can take a few seconds).
type sessionReadyMsg struct {
	Err error
}

// timerTickMsg is sent every second to drive the countdown.
type timerTickMsg time.Time
