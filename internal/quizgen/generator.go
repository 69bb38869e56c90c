// Package quizgen produces multiple-choice question sets for quizzes,
// either through an LLM provider or from the built-in question bank.
package quizgen

import (
	"context"

	"github.com/abhisek/learntrack/internal/quiz"
)

// DefaultQuestionCount is how many questions a quiz gets when the caller
// doesn't ask for a specific count.
const DefaultQuestionCount = 5

// GenerateInput holds all context needed to generate a question set.
type GenerateInput struct {
	// Subject identifies what the quiz is about.
	Subject quiz.Subject

	// Title is the topic name or a short label for the content.
	Title string

	// Description gives the model more context: the topic description or
	// the learner-supplied content text.
	Description string

	// Count is the number of questions to generate. Zero means
	// DefaultQuestionCount.
	Count int

	// PriorPrompts contains prompts of questions already asked for this
	// subject, for deduplication in the prompt.
	PriorPrompts []string
}

// Generator produces question sets using an LLM provider.
type Generator interface {
	// Generate produces a validated question set for the given input.
	// All configured validators run before returning.
	Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error)
}
