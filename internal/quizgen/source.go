package quizgen

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/learntrack/internal/ledger"
	"github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/topic"
)

// Content is a learner-supplied piece of study material registered for
// custom quizzes.
type Content struct {
	ID    string
	Title string
	Text  string
}

// History exposes past attempts for a subject. *ledger.Ledger satisfies it.
type History interface {
	AttemptsFor(subject quiz.Subject) []ledger.Attempt
}

// Source resolves question sets for quiz subjects. Topic quizzes prefer
// the generator and fall back to the built-in bank; content quizzes need
// a generator since the bank only covers the curriculum. When a history
// is attached, prompts the learner has already seen feed the generator's
// dedup section so repeat quizzes ask fresh questions.
type Source struct {
	graph *topic.Graph
	gen   Generator // nil means bank-only operation
	bank  *Bank
	count int

	history History
	notify  func(error)

	mu      sync.Mutex
	content map[string]Content
}

// NewSource creates a Source over the curriculum graph. gen may be nil.
func NewSource(graph *topic.Graph, gen Generator) *Source {
	return &Source{
		graph:   graph,
		gen:     gen,
		bank:    NewBank(),
		count:   DefaultQuestionCount,
		content: make(map[string]Content),
	}
}

// UseHistory attaches attempt history for question deduplication.
func (s *Source) UseHistory(h History) {
	s.history = h
}

// NotifyFallback registers a hook that receives the generation error
// whenever a topic quiz silently falls back to the built-in bank. Without
// it a misconfigured provider just looks like a repetitive bank.
func (s *Source) NotifyFallback(fn func(error)) {
	s.notify = fn
}

// RegisterContent makes a piece of study material available for content
// quizzes under its id.
func (s *Source) RegisterContent(c Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[c.ID] = c
}

// QuestionsForTopic returns a question set for a curriculum topic.
func (s *Source) QuestionsForTopic(ctx context.Context, topicID string) ([]quiz.Question, error) {
	t, err := s.graph.Get(topicID)
	if err != nil {
		return nil, err
	}

	if s.gen != nil {
		subject := quiz.TopicSubject(topicID)
		questions, genErr := s.gen.Generate(ctx, GenerateInput{
			Subject:      subject,
			Title:        t.Name,
			Description:  t.Description,
			Count:        s.count,
			PriorPrompts: s.priorPrompts(subject),
		})
		if genErr == nil {
			return questions, nil
		}
		// The bank keeps the quiz available offline.
		if s.notify != nil {
			s.notify(fmt.Errorf("generate questions for %s: %w", topicID, genErr))
		}
	}

	return s.bank.QuestionsFor(topicID)
}

// QuestionsForContent returns a question set for learner-supplied content.
func (s *Source) QuestionsForContent(ctx context.Context, contentID string) ([]quiz.Question, error) {
	if s.gen == nil {
		return nil, fmt.Errorf("content quizzes need an LLM provider: %w", quiz.ErrNoQuestions)
	}

	s.mu.Lock()
	c, ok := s.content[contentID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown content %q: %w", contentID, quiz.ErrNoQuestions)
	}

	subject := quiz.ContentSubject(contentID)
	return s.gen.Generate(ctx, GenerateInput{
		Subject:      subject,
		Title:        c.Title,
		Description:  c.Text,
		Count:        s.count,
		PriorPrompts: s.priorPrompts(subject),
	})
}

// priorPrompts collects the distinct question prompts already asked for a
// subject, oldest first. The generator truncates to its own budget, so
// keeping the tail keeps the most recent questions.
func (s *Source) priorPrompts(subject quiz.Subject) []string {
	if s.history == nil {
		return nil
	}
	seen := make(map[string]bool)
	var prompts []string
	for _, attempt := range s.history.AttemptsFor(subject) {
		for _, q := range attempt.Questions {
			if q.Prompt == "" || seen[q.Prompt] {
				continue
			}
			seen[q.Prompt] = true
			prompts = append(prompts, q.Prompt)
		}
	}
	return prompts
}
