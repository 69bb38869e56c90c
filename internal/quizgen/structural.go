package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/learntrack/internal/quiz"
)

// StructuralValidator checks that every question has a prompt, four
// distinct options, an in-range correct index, and an explanation, and
// that no prompt repeats within the set.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(questions []quiz.Question, input GenerateInput) *ValidationError {
	if len(questions) == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "no questions generated",
			Retryable: true,
		}
	}

	want := input.Count
	if want == 0 {
		want = DefaultQuestionCount
	}
	if len(questions) != want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d questions, want %d", len(questions), want),
			Retryable: true,
		}
	}

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has an empty prompt", i),
				Retryable: true,
			}
		}
		if len(q.Prompt) > 500 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d prompt exceeds 500 characters", i),
				Retryable: true,
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= quiz.OptionCount {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d correct index %d out of range", i, q.CorrectIndex),
				Retryable: true,
			}
		}
		options := make(map[string]bool, quiz.OptionCount)
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d option %d is empty", i, j),
					Retryable: true,
				}
			}
			options[opt] = true
		}
		if len(options) != quiz.OptionCount {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has duplicate options", i),
				Retryable: true,
			}
		}
		if q.Explanation == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has no explanation", i),
				Retryable: true,
			}
		}
		if seen[q.Prompt] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d repeats an earlier prompt", i),
				Retryable: true,
			}
		}
		seen[q.Prompt] = true
	}

	return nil
}
