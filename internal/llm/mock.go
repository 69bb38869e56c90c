package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Step is one scripted Generate outcome. Fail takes precedence over Reply.
type Step struct {
	Reply json.RawMessage
	Usage Usage
	Fail  error
}

// ScriptedProvider is an in-memory Provider for tests. Each Generate call
// consumes the next step of the script, so a test can play out a whole
// generation episode — a flaky provider, a malformed question batch, then
// a good one — and afterwards assert on the requests the generator sent.
type ScriptedProvider struct {
	mu       sync.Mutex
	script   []Step
	requests []Request
}

// NewScriptedProvider creates a provider that plays back the given steps
// in order.
func NewScriptedProvider(script ...Step) *ScriptedProvider {
	return &ScriptedProvider{script: script}
}

// Append adds steps to the end of the script.
func (p *ScriptedProvider) Append(steps ...Step) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.script = append(p.script, steps...)
}

// Generate consumes the next step. Running past the end of the script
// reads as an unreachable provider.
func (p *ScriptedProvider) Generate(_ context.Context, req Request) (*Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)

	if len(p.script) == 0 {
		return nil, &ErrProviderUnavailable{Err: errors.New("script exhausted")}
	}
	step := p.script[0]
	p.script = p.script[1:]

	if step.Fail != nil {
		return nil, step.Fail
	}
	return &Response{
		Content:    step.Reply,
		Usage:      step.Usage,
		Model:      p.ModelID(),
		StopReason: "end",
	}, nil
}

func (p *ScriptedProvider) ModelID() string {
	return "scripted"
}

// Requests returns a copy of every request seen so far.
func (p *ScriptedProvider) Requests() []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Request, len(p.requests))
	copy(out, p.requests)
	return out
}

// CallCount reports how many Generate calls were made.
func (p *ScriptedProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}
