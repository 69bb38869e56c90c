package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// goodBatch is a minimal question batch in the shape the quiz schema asks
// for, standing in for a successful generation.
var goodBatch = json.RawMessage(`{"questions":[{"question":"What does pop return on an empty stack?",` +
	`"options":["an error","zero","the bottom element","the top element"],` +
	`"correct_answer":0,"explanation":"There is nothing to return."}]}`)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetryGenerationEpisodes(t *testing.T) {
	providerDown := &ErrProviderUnavailable{Err: errors.New("connection refused")}

	tests := []struct {
		name      string
		script    []Step
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "clean first batch",
			script:    []Step{{Reply: goodBatch}},
			wantCalls: 1,
		},
		{
			name: "provider blips then serves",
			script: []Step{
				{Fail: providerDown},
				{Reply: goodBatch},
			},
			wantCalls: 2,
		},
		{
			name: "provider down for good",
			script: []Step{
				{Fail: providerDown},
				{Fail: providerDown},
				{Fail: providerDown},
			},
			wantCalls: 3,
			wantErr:   true,
		},
		{
			name: "rate limited then served",
			script: []Step{
				{Fail: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
				{Reply: goodBatch},
			},
			wantCalls: 2,
		},
		{
			name: "malformed batch regenerated once",
			script: []Step{
				{Fail: &ErrInvalidResponse{Content: json.RawMessage(`{"questions":"oops"}`), Err: errors.New("not an array")}},
				{Reply: goodBatch},
			},
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewScriptedProvider(tt.script...)
			p := WithRetry(provider, fastRetryConfig())

			resp, err := p.Generate(context.Background(), Request{})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Generate() succeeded, want error")
				}
			} else {
				if err != nil {
					t.Fatalf("Generate() error: %v", err)
				}
				if string(resp.Content) != string(goodBatch) {
					t.Errorf("Generate() content = %s", resp.Content)
				}
			}
			if provider.CallCount() != tt.wantCalls {
				t.Errorf("provider saw %d calls, want %d", provider.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetryTruncatedBatchFailsFast(t *testing.T) {
	// A truncated batch means MaxTokens can't fit the question count;
	// regenerating with the same budget would truncate again.
	provider := NewScriptedProvider(
		Step{Fail: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"questions":[`)}},
		Step{Reply: goodBatch},
	)
	p := WithRetry(provider, fastRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("Generate() error = %v, want ErrMaxTokensExceeded", err)
	}
	if provider.CallCount() != 1 {
		t.Errorf("provider saw %d calls, want 1", provider.CallCount())
	}
}

func TestRetryMalformedBatchBudgetIsOne(t *testing.T) {
	badBatch := &ErrInvalidResponse{Content: json.RawMessage(`{}`), Err: errors.New("questions missing")}
	provider := NewScriptedProvider(
		Step{Fail: badBatch},
		Step{Fail: badBatch},
		Step{Reply: goodBatch}, // never reached
	)
	p := WithRetry(provider, fastRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("Generate() error = %v, want ErrInvalidResponse", err)
	}
	if provider.CallCount() != 2 {
		t.Errorf("provider saw %d calls, want 2 (one regeneration)", provider.CallCount())
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	provider := NewScriptedProvider(
		Step{Fail: &ErrProviderUnavailable{Err: errors.New("down")}},
		Step{Reply: goodBatch},
	)
	p := WithRetry(provider, fastRetryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("Generate() succeeded on a cancelled context")
	}
}

func TestRetryZeroAttemptsStillTriesOnce(t *testing.T) {
	provider := NewScriptedProvider(Step{Reply: goodBatch})
	p := WithRetry(provider, RetryConfig{})

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if provider.CallCount() != 1 {
		t.Errorf("provider saw %d calls, want 1", provider.CallCount())
	}
}

func TestRetryModelIDDelegates(t *testing.T) {
	p := WithRetry(NewScriptedProvider(), fastRetryConfig())
	if p.ModelID() != "scripted" {
		t.Fatalf("ModelID() = %q, want scripted", p.ModelID())
	}
}
