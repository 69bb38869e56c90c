package quiz

import "errors"

var (
	// ErrInvalidSubject means a start request named no subject, or both a
	// topic and a content id.
	ErrInvalidSubject = errors.New("quiz: subject must be exactly one of topic or content")

	// ErrStateError means an operation is invalid for the session's
	// current state, e.g. answering a completed session.
	ErrStateError = errors.New("quiz: operation invalid for session state")

	// ErrOutOfRange means a navigation or answer index is outside the
	// question range. Rejected, never silently clamped.
	ErrOutOfRange = errors.New("quiz: index out of range")

	// ErrNoQuestions means a session was started with an empty question set.
	ErrNoQuestions = errors.New("quiz: no questions supplied")

	// ErrNoHistory means a retake was requested for a subject with no
	// recorded attempts.
	ErrNoHistory = errors.New("quiz: no prior attempt for subject")

	// ErrAlreadyActive means a session is already active for the subject.
	// Starting a second one is rejected rather than replacing the first.
	ErrAlreadyActive = errors.New("quiz: session already active for subject")

	// ErrPersistence wraps collaborator write failures. In-memory state is
	// not rolled back; callers retry or reconcile at the integration layer.
	ErrPersistence = errors.New("quiz: persistence failed")
)
