package llm

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchemaCarriesBatchConstraints(t *testing.T) {
	// The shape of one question in the batch schema: four options, a
	// correct index in range.
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"correct_answer": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 3,
			},
		},
		"required": []any{"question", "options", "correct_answer"},
	}

	schema := geminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("schema type = %s, want OBJECT", schema.Type)
	}
	if len(schema.Required) != 3 {
		t.Errorf("required = %v, want 3 names", schema.Required)
	}

	options := schema.Properties["options"]
	if options == nil || options.Type != genai.TypeArray {
		t.Fatal("options property missing or not an array")
	}
	if options.MinItems == nil || *options.MinItems != 4 {
		t.Error("options MinItems constraint dropped")
	}
	if options.MaxItems == nil || *options.MaxItems != 4 {
		t.Error("options MaxItems constraint dropped")
	}
	if options.Items == nil || options.Items.Type != genai.TypeString {
		t.Error("options item type dropped")
	}

	answer := schema.Properties["correct_answer"]
	if answer == nil || answer.Type != genai.TypeInteger {
		t.Fatal("correct_answer property missing or not an integer")
	}
	if answer.Minimum == nil || *answer.Minimum != 0 {
		t.Error("correct_answer minimum dropped")
	}
	if answer.Maximum == nil || *answer.Maximum != 3 {
		t.Error("correct_answer maximum dropped")
	}
}

func TestGeminiStopReason(t *testing.T) {
	tests := []struct {
		name   string
		reason genai.FinishReason
		want   string
	}{
		{"complete batch", "STOP", "end"},
		{"truncated batch", "MAX_TOKENS", "max_tokens"},
		{"unrecognized reason", "SAFETY", "end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: tt.reason}},
			}
			if got := geminiStopReason(result); got != tt.want {
				t.Errorf("geminiStopReason(%s) = %q, want %q", tt.reason, got, tt.want)
			}
		})
	}

	if got := geminiStopReason(&genai.GenerateContentResponse{}); got != "end" {
		t.Errorf("geminiStopReason(no candidates) = %q, want end", got)
	}
}

func TestGeminiErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want retryAction
	}{
		{"rate limited", &genai.APIError{Code: 429}, retryWithBackoff},
		{"server error", &genai.APIError{Code: 503}, retryWithBackoff},
		{"opaque network error", errors.New("connection reset"), retryWithBackoff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyGeminiError(tt.err)
			if classify(got) != tt.want {
				t.Errorf("classify(classifyGeminiError(%v)) = %v, want %v", tt.err, classify(got), tt.want)
			}
		})
	}

	// A 429 must surface as a rate limit so Retry-After handling applies.
	var limited *ErrRateLimit
	if !errors.As(classifyGeminiError(&genai.APIError{Code: 429}), &limited) {
		t.Error("429 not classified as ErrRateLimit")
	}
	// A 5xx must surface as provider-unavailable, explicitly.
	var down *ErrProviderUnavailable
	if !errors.As(classifyGeminiError(&genai.APIError{Code: 500}), &down) {
		t.Error("500 not classified as ErrProviderUnavailable")
	}
}
