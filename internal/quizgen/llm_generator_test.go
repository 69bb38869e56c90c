package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/learntrack/internal/llm"
	"github.com/abhisek/learntrack/internal/quiz"
)

func cannedQuiz(n int) json.RawMessage {
	type q struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
	}
	out := struct {
		Questions []q `json:"questions"`
	}{}
	for i := range n {
		out.Questions = append(out.Questions, q{
			Question:      fmt.Sprintf("Question %d about stacks?", i),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			Explanation:   "because",
		})
	}
	raw, _ := json.Marshal(out)
	return raw
}

func TestGenerateParsesAndValidates(t *testing.T) {
	provider := llm.NewScriptedProvider(llm.Step{Reply: cannedQuiz(5)})
	gen := New(provider, DefaultConfig())

	questions, err := gen.Generate(context.Background(), GenerateInput{
		Subject: quiz.TopicSubject("stacks"),
		Title:   "Stacks",
		Count:   5,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}
	for i, q := range questions {
		if q.ID == "" {
			t.Errorf("question %d has no id", i)
		}
		if q.CorrectIndex != i%4 {
			t.Errorf("question %d CorrectIndex = %d, want %d", i, q.CorrectIndex, i%4)
		}
	}
}

func TestGenerateRejectsWrongCount(t *testing.T) {
	provider := llm.NewScriptedProvider(llm.Step{Reply: cannedQuiz(3)})
	gen := New(provider, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Subject: quiz.TopicSubject("stacks"),
		Count:   5,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Generate() error = %v, want ValidationError", err)
	}
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	provider := llm.NewScriptedProvider(llm.Step{Fail: &llm.ErrProviderUnavailable{}})
	gen := New(provider, DefaultConfig())

	if _, err := gen.Generate(context.Background(), GenerateInput{Count: 5}); err == nil {
		t.Fatal("expected error from unavailable provider")
	}
}

func TestGenerateSendsSchemaAndPrompt(t *testing.T) {
	provider := llm.NewScriptedProvider(llm.Step{Reply: cannedQuiz(5)})
	gen := New(provider, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Subject:      quiz.TopicSubject("trees"),
		Title:        "Trees",
		Description:  "Binary trees and traversals",
		Count:        5,
		PriorPrompts: []string{"What is a leaf node?"},
	})
	if err != nil {
		t.Fatal(err)
	}

	requests := provider.Requests()
	if len(requests) != 1 {
		t.Fatalf("provider saw %d calls, want 1", len(requests))
	}
	req := requests[0]
	if req.Schema != QuizSchema {
		t.Error("request did not carry the quiz schema")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Trees", "Binary trees and traversals", "What is a leaf node?", "Questions to generate: 5"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildDedupTruncates(t *testing.T) {
	prior := []string{"one", "two", "three", "four"}
	got := buildDedup(prior, 2)
	if strings.Contains(got, "one") || !strings.Contains(got, "four") {
		t.Errorf("buildDedup kept the wrong tail: %q", got)
	}
	if buildDedup(nil, 5) != "None" {
		t.Error("empty prior list should render as None")
	}
}
