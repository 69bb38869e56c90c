package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/learntrack/internal/llm"
	"github.com/abhisek/learntrack/internal/quiz"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Generate produces a validated question set for the given input.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	questions := make([]quiz.Question, 0, len(raw.Questions))
	for _, q := range raw.Questions {
		out := quiz.Question{
			ID:           uuid.New().String(),
			Prompt:       q.Question,
			CorrectIndex: q.CorrectAnswer,
			Explanation:  q.Explanation,
		}
		// A short options array fails structural validation below; copy
		// what is there so the error message can name the gap.
		copy(out.Options[:], q.Options)
		questions = append(questions, out)
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(questions, input); verr != nil {
			return nil, verr
		}
	}

	return questions, nil
}
