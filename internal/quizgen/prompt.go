package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/learntrack/internal/quiz"
)

const systemPrompt = `You are a computer science instructor writing quiz questions for learners studying data structures and algorithms.

Rules:
- Generate exactly the requested number of multiple-choice questions for the given topic or content.
- Each question must have exactly 4 options with exactly one correct answer.
- Distractors should reflect plausible misconceptions, not random values.
- Questions must be self-contained: no references to "the text above" or other questions.
- Vary the angle: definitions, behavior, complexity, and small worked examples.
- The explanation should teach, not just restate the answer.
- Use plain ASCII text. Code snippets are fine in any mainstream language.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	count := input.Count
	if count == 0 {
		count = DefaultQuestionCount
	}

	var b strings.Builder

	if input.Subject.Kind == quiz.SubjectContent {
		fmt.Fprintf(&b, "Source: learner-supplied content\n")
	} else {
		fmt.Fprintf(&b, "Source: curriculum topic\n")
	}
	fmt.Fprintf(&b, "Title: %s\n", input.Title)
	if input.Description != "" {
		fmt.Fprintf(&b, "Context:\n%s\n", input.Description)
	}
	fmt.Fprintf(&b, "Questions to generate: %d\n", count)

	b.WriteString("\nAlready asked for this subject:\n")
	b.WriteString(buildDedup(input.PriorPrompts, cfg.MaxPriorPrompts))

	return b.String()
}

// buildDedup formats prior prompts for the message, respecting the max
// limit. Returns "None" if there are no prior prompts.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}

	// Keep only the most recent N.
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, p := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
