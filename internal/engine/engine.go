// Package engine owns the learner's progression state: the topic graph
// with stored progress, the active quiz sessions, the attempt ledger, and
// the daily streak. It is an explicit, injectable aggregate — construct
// one per learner context, no package-level state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/learntrack/internal/ledger"
	"github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/streak"
	"github.com/abhisek/learntrack/internal/topic"
)

var (
	// ErrUnknownTopic means the topic id is not in the curriculum graph.
	ErrUnknownTopic = errors.New("engine: unknown topic")

	// ErrTopicLocked means the topic's prerequisites are not yet mastered.
	ErrTopicLocked = errors.New("engine: topic is locked")
)

// TopicRepo persists per-topic learner progress.
type TopicRepo interface {
	// ListTopics returns the persisted progress overlay, keyed by topic id.
	ListTopics(ctx context.Context) (map[string]topic.Topic, error)

	// UpdateTopicProgress writes one topic's progress and returns the
	// authoritative persisted row, which is echoed back into local state.
	UpdateTopicProgress(ctx context.Context, t topic.Topic) (topic.Topic, error)
}

// AttemptRepo persists completed attempts.
type AttemptRepo interface {
	CreateAttempt(ctx context.Context, a ledger.Attempt) error

	// ListAllAttempts returns every persisted attempt, topic and content
	// subjects alike, in completion order.
	ListAllAttempts(ctx context.Context) ([]ledger.Attempt, error)
}

// StreakRepo persists the learner's streak.
type StreakRepo interface {
	UpdateStreak(ctx context.Context, state streak.State) error
}

// QuestionSource supplies question sets. Implemented upstream by the
// content-generation subsystem; this engine only consumes it.
type QuestionSource interface {
	QuestionsForTopic(ctx context.Context, topicID string) ([]quiz.Question, error)
	QuestionsForContent(ctx context.Context, contentID string) ([]quiz.Question, error)
}

// Options configures a Service. Repos may be nil for a purely in-memory
// engine (tests, demo mode); Questions is required to start quizzes that
// aren't retakes.
type Options struct {
	Graph     *topic.Graph
	Questions QuestionSource

	Topics   TopicRepo
	Attempts AttemptRepo
	Streaks  StreakRepo

	// InitialStreak seeds the streak state, typically loaded by the store.
	InitialStreak streak.State

	// Clock drives session timestamps and streak day boundaries.
	// Nil means the wall clock.
	Clock quiz.Clock

	// Scheduler, when set, drives one tick per second into each active
	// session. Leave nil when the caller drives ticks itself (the TUI
	// ticks from its own frame timer).
	Scheduler quiz.Scheduler

	// OnPersistError receives collaborator write failures. Local state is
	// already applied when it fires; the integration layer owns retry.
	OnPersistError func(error)
}

type activeSession struct {
	session *quiz.Session
	cancel  func()
}

// Service is the progression engine for one learner.
type Service struct {
	mu sync.Mutex

	graph  *topic.Graph
	topics map[string]topic.Topic // stored progress, keyed by id

	active map[string]*activeSession // keyed by Subject.Key()

	ledger  *ledger.Ledger
	tracker *streak.Tracker
	streak  streak.State

	questions QuestionSource
	topicRepo TopicRepo
	attempts  AttemptRepo
	streaks   StreakRepo

	clock     quiz.Clock
	scheduler quiz.Scheduler
	onPersist func(error)
}

// NewService builds a Service, overlaying persisted topic progress onto
// the curriculum graph.
func NewService(ctx context.Context, opts Options) (*Service, error) {
	graph := opts.Graph
	if graph == nil {
		graph = topic.NewSeedGraph()
	}

	// A nil clock is fine: quiz.Start and streak.NewTracker both fall
	// back to the wall clock on their own.
	var streakClock streak.Clock
	if opts.Clock != nil {
		streakClock = clockAdapter{opts.Clock}
	}

	onPersist := opts.OnPersistError
	if onPersist == nil {
		onPersist = func(error) {}
	}

	s := &Service{
		graph:     graph,
		topics:    make(map[string]topic.Topic, graph.Len()),
		active:    make(map[string]*activeSession),
		ledger:    ledger.New(),
		tracker:   streak.NewTracker(streakClock),
		streak:    opts.InitialStreak,
		questions: opts.Questions,
		topicRepo: opts.Topics,
		attempts:  opts.Attempts,
		streaks:   opts.Streaks,
		clock:     opts.Clock,
		scheduler: opts.Scheduler,
		onPersist: onPersist,
	}

	for _, t := range graph.All() {
		if t.Status == "" {
			t.Status = topic.StatusNotStarted
		}
		s.topics[t.ID] = t
	}

	// Overlay persisted progress. The authored graph defines the nodes
	// and prerequisites; the store only contributes learner progress.
	if s.topicRepo != nil {
		persisted, err := s.topicRepo.ListTopics(ctx)
		if err != nil {
			return nil, fmt.Errorf("load topic progress: %w", err)
		}
		for id, saved := range persisted {
			local, ok := s.topics[id]
			if !ok {
				continue // topic removed from curriculum; keep history only
			}
			local.Status = saved.Status
			local.Score = saved.Score
			local.BestScore = saved.BestScore
			local.Attempts = saved.Attempts
			local.LastAttempt = saved.LastAttempt
			s.topics[id] = local
		}
	}

	// Warm the ledger from persisted attempts so history and retakes
	// survive restarts, content quizzes included.
	if s.attempts != nil {
		history, err := s.attempts.ListAllAttempts(ctx)
		if err != nil {
			return nil, fmt.Errorf("load attempts: %w", err)
		}
		for _, a := range history {
			s.ledger.Record(a)
		}
	}

	return s, nil
}

// clockAdapter lets one injected clock serve both the quiz and streak
// packages without either importing the other.
type clockAdapter struct{ c quiz.Clock }

func (a clockAdapter) Now() time.Time { return a.c.Now() }

// Topics returns every topic with stored progress, in topological order.
func (s *Service) Topics() []topic.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]topic.Topic, 0, len(s.topics))
	for _, t := range s.graph.All() {
		result = append(result, s.topics[t.ID])
	}
	return result
}

// Topic returns one topic's stored progress.
func (s *Service) Topic(id string) (topic.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.topics[id]
	if !ok {
		return topic.Topic{}, fmt.Errorf("%w: %q", ErrUnknownTopic, id)
	}
	return t, nil
}

// EffectiveStatus resolves a topic's derived status against current state.
// Recomputed on every call; never cached.
func (s *Service) EffectiveStatus(id string) (topic.EffectiveStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.topics[id]
	if !ok {
		return topic.Locked, fmt.Errorf("%w: %q", ErrUnknownTopic, id)
	}
	return topic.Resolve(t, s.topics), nil
}

// Streak returns the current streak state.
func (s *Service) Streak() streak.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak
}

// Ledger exposes attempt history for review screens.
func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}
