package quizgen

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/learntrack/internal/ledger"
	"github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/topic"
)

var errModelDown = errors.New("model down")

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, GenerateInput) ([]quiz.Question, error) {
	return nil, errModelDown
}

type recordingGenerator struct {
	inputs []GenerateInput
}

func (g *recordingGenerator) Generate(_ context.Context, input GenerateInput) ([]quiz.Question, error) {
	g.inputs = append(g.inputs, input)
	questions := make([]quiz.Question, DefaultQuestionCount)
	for i := range questions {
		questions[i] = quiz.Question{ID: "gen", Prompt: "p", Explanation: "e"}
	}
	return questions, nil
}

func TestBankCoversSeedCurriculum(t *testing.T) {
	bank := NewBank()
	graph := topic.NewSeedGraph()

	for _, tp := range graph.All() {
		questions, err := bank.QuestionsFor(tp.ID)
		if err != nil {
			t.Errorf("no bank coverage for seed topic %s: %v", tp.ID, err)
			continue
		}
		for i, q := range questions {
			if q.CorrectIndex < 0 || q.CorrectIndex >= quiz.OptionCount {
				t.Errorf("%s question %d has correct index %d", tp.ID, i, q.CorrectIndex)
			}
			for j, opt := range q.Options {
				if opt == "" {
					t.Errorf("%s question %d option %d is empty", tp.ID, i, j)
				}
			}
			if q.Explanation == "" {
				t.Errorf("%s question %d has no explanation", tp.ID, i)
			}
		}
	}
}

func TestBankUnknownTopic(t *testing.T) {
	if _, err := NewBank().QuestionsFor("quantum-computing"); !errors.Is(err, quiz.ErrNoQuestions) {
		t.Errorf("unknown topic error = %v, want ErrNoQuestions", err)
	}
}

func TestSourceFallsBackToBank(t *testing.T) {
	source := NewSource(topic.NewSeedGraph(), failingGenerator{})

	questions, err := source.QuestionsForTopic(context.Background(), "arrays")
	if err != nil {
		t.Fatalf("QuestionsForTopic() error: %v", err)
	}
	if len(questions) == 0 || questions[0].ID[:5] != "bank-" {
		t.Errorf("expected bank questions after generator failure, got %v", questions)
	}
}

func TestSourcePrefersGenerator(t *testing.T) {
	gen := &recordingGenerator{}
	source := NewSource(topic.NewSeedGraph(), gen)

	questions, err := source.QuestionsForTopic(context.Background(), "trees")
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != DefaultQuestionCount || questions[0].ID != "gen" {
		t.Errorf("expected generated questions, got %v", questions)
	}
	if len(gen.inputs) != 1 || gen.inputs[0].Title == "" {
		t.Errorf("generator input missing topic metadata: %+v", gen.inputs)
	}
}

func TestSourceContentRequiresRegistration(t *testing.T) {
	gen := &recordingGenerator{}
	source := NewSource(topic.NewSeedGraph(), gen)
	ctx := context.Background()

	if _, err := source.QuestionsForContent(ctx, "notes-1"); !errors.Is(err, quiz.ErrNoQuestions) {
		t.Errorf("unregistered content error = %v, want ErrNoQuestions", err)
	}

	source.RegisterContent(Content{ID: "notes-1", Title: "Lecture notes", Text: "Heaps are complete binary trees."})
	if _, err := source.QuestionsForContent(ctx, "notes-1"); err != nil {
		t.Fatalf("registered content error: %v", err)
	}
	if got := gen.inputs[0].Description; got != "Heaps are complete binary trees." {
		t.Errorf("generator got description %q", got)
	}
}

func TestSourceContentWithoutGenerator(t *testing.T) {
	source := NewSource(topic.NewSeedGraph(), nil)
	source.RegisterContent(Content{ID: "notes-1", Title: "Notes", Text: "text"})

	if _, err := source.QuestionsForContent(context.Background(), "notes-1"); !errors.Is(err, quiz.ErrNoQuestions) {
		t.Errorf("bank-only content quiz error = %v, want ErrNoQuestions", err)
	}
}

func attemptWithPrompts(id string, subject quiz.Subject, prompts ...string) ledger.Attempt {
	a := ledger.Attempt{ID: id, Subject: subject, TotalQuestions: len(prompts)}
	for _, p := range prompts {
		a.Questions = append(a.Questions, quiz.Question{ID: "q-" + p, Prompt: p})
	}
	return a
}

func TestSourceFeedsPriorPromptsFromHistory(t *testing.T) {
	subject := quiz.TopicSubject("arrays")
	history := ledger.New()
	history.Record(attemptWithPrompts("a1", subject, "What is an array?", "Index of the first element?"))
	history.Record(attemptWithPrompts("a2", subject, "What is an array?", "Cost of random access?"))
	history.Record(attemptWithPrompts("other", quiz.TopicSubject("trees"), "What is a leaf?"))

	gen := &recordingGenerator{}
	source := NewSource(topic.NewSeedGraph(), gen)
	source.UseHistory(history)

	if _, err := source.QuestionsForTopic(context.Background(), "arrays"); err != nil {
		t.Fatal(err)
	}

	want := []string{"What is an array?", "Index of the first element?", "Cost of random access?"}
	got := gen.inputs[0].PriorPrompts
	if len(got) != len(want) {
		t.Fatalf("PriorPrompts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PriorPrompts[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSourceContentCarriesPriorPrompts(t *testing.T) {
	subject := quiz.ContentSubject("notes-1")
	history := ledger.New()
	history.Record(attemptWithPrompts("c1", subject, "What is a heap?"))

	gen := &recordingGenerator{}
	source := NewSource(topic.NewSeedGraph(), gen)
	source.UseHistory(history)
	source.RegisterContent(Content{ID: "notes-1", Title: "Notes", Text: "Heaps."})

	if _, err := source.QuestionsForContent(context.Background(), "notes-1"); err != nil {
		t.Fatal(err)
	}
	if got := gen.inputs[0].PriorPrompts; len(got) != 1 || got[0] != "What is a heap?" {
		t.Errorf("PriorPrompts = %v, want the recorded content prompt", got)
	}
}

func TestSourceFallbackReportsGenerationError(t *testing.T) {
	source := NewSource(topic.NewSeedGraph(), failingGenerator{})

	var reported []error
	source.NotifyFallback(func(err error) { reported = append(reported, err) })

	questions, err := source.QuestionsForTopic(context.Background(), "arrays")
	if err != nil {
		t.Fatalf("QuestionsForTopic() error: %v", err)
	}
	if len(questions) == 0 {
		t.Fatal("fallback returned no bank questions")
	}
	if len(reported) != 1 {
		t.Fatalf("reported %d errors, want 1", len(reported))
	}
	if !errors.Is(reported[0], errModelDown) {
		t.Errorf("reported error = %v, want the generation error wrapped", reported[0])
	}
}
