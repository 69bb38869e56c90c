package engine

import (
	"context"
	"fmt"

	"github.com/abhisek/learntrack/internal/ledger"
	"github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/topic"
)

// StartTopicQuiz starts a session over a topic's question set. The topic
// must exist and must not be locked; one active session per subject.
func (s *Service) StartTopicQuiz(ctx context.Context, topicID string) (*quiz.Session, error) {
	s.mu.Lock()
	t, ok := s.topics[topicID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topicID)
	}
	if topic.Resolve(t, s.topics) == topic.Locked {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrTopicLocked, topicID)
	}
	s.mu.Unlock()

	questions, err := s.questionsFor(ctx, quiz.TopicSubject(topicID))
	if err != nil {
		return nil, err
	}
	return s.startSession(quiz.TopicSubject(topicID), questions)
}

// StartContentQuiz starts a session over arbitrary learning content, with
// no prerequisite gate and no mastery side effects on completion.
func (s *Service) StartContentQuiz(ctx context.Context, contentID string) (*quiz.Session, error) {
	subject := quiz.ContentSubject(contentID)
	if !subject.Valid() {
		return nil, quiz.ErrInvalidSubject
	}
	questions, err := s.questionsFor(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.startSession(subject, questions)
}

// Retake starts a new session reusing the questions of a prior attempt.
// attemptID selects a specific attempt; empty means the subject's latest.
// The new session gets a fresh id, empty answers, and a full time limit.
func (s *Service) Retake(subject quiz.Subject, attemptID string) (*quiz.Session, error) {
	var (
		prior ledger.Attempt
		ok    bool
	)
	if attemptID != "" {
		prior, ok = s.ledger.Get(attemptID)
		if ok && prior.Subject != subject {
			return nil, fmt.Errorf("attempt %s belongs to %s: %w", attemptID, prior.Subject.Key(), quiz.ErrNoHistory)
		}
	} else {
		prior, ok = s.ledger.Latest(subject)
	}
	if !ok {
		return nil, fmt.Errorf("retake %s: %w", subject.Key(), quiz.ErrNoHistory)
	}
	return s.startSession(subject, prior.Questions, quiz.AsRetake(prior.ID))
}

// Active returns the live session for a subject, if any. The returned
// session must be treated as read-only; mutate it through Service methods
// so completion side effects run.
func (s *Service) Active(subject quiz.Subject) (*quiz.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, ok := s.active[subject.Key()]
	if !ok {
		return nil, false
	}
	return as.session, true
}

// Answer records an answer on the active session for a subject.
func (s *Service) Answer(subject quiz.Subject, index, answerIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, err := s.activeLocked(subject)
	if err != nil {
		return err
	}
	return as.session.Answer(index, answerIndex)
}

// AnswerCurrent records an answer for the current question.
func (s *Service) AnswerCurrent(subject quiz.Subject, answerIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, err := s.activeLocked(subject)
	if err != nil {
		return err
	}
	return as.session.AnswerCurrent(answerIndex)
}

// Next advances the active session; at the last question this completes it
// and runs the completion side effects.
func (s *Service) Next(subject quiz.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, err := s.activeLocked(subject)
	if err != nil {
		return err
	}
	if err := as.session.Next(); err != nil {
		return err
	}
	if as.session.Completed {
		s.finalizeLocked(as)
	}
	return nil
}

// Previous moves the active session back one question.
func (s *Service) Previous(subject quiz.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, err := s.activeLocked(subject)
	if err != nil {
		return err
	}
	return as.session.Previous()
}

// NavigateTo jumps the active session to a question index.
func (s *Service) NavigateTo(subject quiz.Subject, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, err := s.activeLocked(subject)
	if err != nil {
		return err
	}
	return as.session.NavigateTo(index)
}

// Tick advances the countdown by one second and reports whether this tick
// completed the session. Safe against stray ticks after completion.
func (s *Service) Tick(subject quiz.Subject) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, ok := s.active[subject.Key()]
	if !ok {
		return false
	}
	if as.session.Tick() {
		s.finalizeLocked(as)
		return true
	}
	return false
}

// Complete finalizes the active session and returns its attempt record.
// Side effects (mastery, streak, ledger, persistence) run exactly once
// even when a timeout races a user submit.
func (s *Service) Complete(subject quiz.Subject) (ledger.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, err := s.activeLocked(subject)
	if err != nil {
		return ledger.Attempt{}, err
	}
	if as.session.Complete() {
		s.finalizeLocked(as)
	}
	a, ok := s.ledger.Get(as.session.ID)
	if !ok {
		return ledger.Attempt{}, fmt.Errorf("complete %s: attempt not recorded: %w", subject.Key(), quiz.ErrStateError)
	}
	return a, nil
}

// Close discards the active session for a subject without recording an
// attempt or touching progress. No-op when nothing is active.
func (s *Service) Close(subject quiz.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, ok := s.active[subject.Key()]
	if !ok {
		return
	}
	if as.cancel != nil {
		as.cancel()
	}
	delete(s.active, subject.Key())
}

func (s *Service) questionsFor(ctx context.Context, subject quiz.Subject) ([]quiz.Question, error) {
	if s.questions == nil {
		return nil, fmt.Errorf("start %s: no question source: %w", subject.Key(), quiz.ErrNoQuestions)
	}
	var (
		questions []quiz.Question
		err       error
	)
	switch subject.Kind {
	case quiz.SubjectTopic:
		questions, err = s.questions.QuestionsForTopic(ctx, subject.ID)
	case quiz.SubjectContent:
		questions, err = s.questions.QuestionsForContent(ctx, subject.ID)
	default:
		return nil, quiz.ErrInvalidSubject
	}
	if err != nil {
		return nil, fmt.Errorf("questions for %s: %w", subject.Key(), err)
	}
	return questions, nil
}

func (s *Service) startSession(subject quiz.Subject, questions []quiz.Question, extra ...quiz.StartOption) (*quiz.Session, error) {
	opts := extra
	if s.clock != nil {
		opts = append(opts, quiz.WithClock(s.clock))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.active[subject.Key()]; exists {
		return nil, fmt.Errorf("start %s: %w", subject.Key(), quiz.ErrAlreadyActive)
	}

	session, err := quiz.Start(subject, questions, opts...)
	if err != nil {
		return nil, err
	}

	as := &activeSession{session: session}
	if s.scheduler != nil {
		as.cancel = s.scheduler.ScheduleTicks(session.ID, func() {
			s.Tick(subject)
		})
	}
	s.active[subject.Key()] = as

	// Starting a topic quiz moves a fresh topic to in-progress so the
	// learner's board reflects work underway even before the first score.
	if subject.Kind == quiz.SubjectTopic {
		if t, ok := s.topics[subject.ID]; ok && t.Status == topic.StatusNotStarted {
			t.Status = topic.StatusInProgress
			s.topics[subject.ID] = t
			s.persistTopicLocked(t)
		}
	}

	return session, nil
}

func (s *Service) activeLocked(subject quiz.Subject) (*activeSession, error) {
	as, ok := s.active[subject.Key()]
	if !ok {
		return nil, fmt.Errorf("%s has no active session: %w", subject.Key(), quiz.ErrStateError)
	}
	return as, nil
}

// finalizeLocked runs the completion side effects for a just-completed
// session: record the attempt, fold the score into topic progress, advance
// the streak, then persist. Local state is applied before persistence, and
// write failures surface through OnPersistError without rolling back.
func (s *Service) finalizeLocked(as *activeSession) {
	sess := as.session

	if as.cancel != nil {
		as.cancel()
	}
	delete(s.active, sess.Subject.Key())

	attempt := ledger.FromSession(sess)
	s.ledger.Record(attempt)

	if sess.Subject.Kind == quiz.SubjectTopic {
		if t, ok := s.topics[sess.Subject.ID]; ok {
			completedAt := sess.CompletedAt
			t.Score = attempt.Score
			t.Attempts++
			t.LastAttempt = &completedAt
			if attempt.Score > t.BestScore {
				t.BestScore = attempt.Score
			}
			if quiz.IsMastery(attempt.Score) {
				t.Status = topic.StatusMastered
			} else {
				t.Status = topic.StatusInProgress
			}
			s.topics[sess.Subject.ID] = t
			s.persistTopicLocked(t)
		}
	}

	// Every completion counts as learning activity, review quizzes and
	// failed attempts included.
	s.streak = s.tracker.RecordActivity(s.streak)
	if s.streaks != nil {
		if err := s.streaks.UpdateStreak(context.Background(), s.streak); err != nil {
			s.onPersist(fmt.Errorf("persist streak: %w: %w", quiz.ErrPersistence, err))
		}
	}

	if s.attempts != nil {
		if err := s.attempts.CreateAttempt(context.Background(), attempt); err != nil {
			s.onPersist(fmt.Errorf("persist attempt %s: %w: %w", attempt.ID, quiz.ErrPersistence, err))
		}
	}
}

func (s *Service) persistTopicLocked(t topic.Topic) {
	if s.topicRepo == nil {
		return
	}
	saved, err := s.topicRepo.UpdateTopicProgress(context.Background(), t)
	if err != nil {
		s.onPersist(fmt.Errorf("persist topic %s: %w: %w", t.ID, quiz.ErrPersistence, err))
		return
	}
	local := s.topics[t.ID]
	local.Status = saved.Status
	local.Score = saved.Score
	local.BestScore = saved.BestScore
	local.Attempts = saved.Attempts
	local.LastAttempt = saved.LastAttempt
	s.topics[t.ID] = local
}
