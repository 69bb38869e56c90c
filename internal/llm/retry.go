package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryAction is how the retrier reacts to a failed generation.
type retryAction int

const (
	// giveUp means no retry can help: the context is dead or the token
	// budget is too small for the requested question count.
	giveUp retryAction = iota
	// regenerateOnce covers batches that failed schema validation. One
	// regeneration usually fixes a sampling fluke; repeated failures mean
	// the model can't hold the shape and burning the budget won't help.
	regenerateOnce
	// retryWithBackoff covers transient trouble: rate limits, 5xx,
	// network errors.
	retryWithBackoff
)

// retrier decorates a Provider with bounded retries. A quiz needs its whole
// question batch in one response, so every retry is a full regeneration;
// the classification below keeps those expensive retries for errors that
// can actually go away.
type retrier struct {
	next Provider
	cfg  RetryConfig
}

// WithRetry wraps a Provider with the retry policy.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{next: p, cfg: cfg}
}

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := r.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	badBatchSeen := false

	for attempt := range attempts {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classify(err) {
		case giveUp:
			return nil, err
		case regenerateOnce:
			if badBatchSeen {
				return nil, err
			}
			badBatchSeen = true
		}

		if attempt == attempts-1 {
			break
		}
		if err := r.wait(ctx, attempt, err); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *retrier) ModelID() string {
	return r.next.ModelID()
}

func classify(err error) retryAction {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return giveUp
	}

	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return giveUp
	}

	var badBatch *ErrInvalidResponse
	if errors.As(err, &badBatch) {
		return regenerateOnce
	}

	return retryWithBackoff
}

// wait sleeps out the backoff for this attempt, bailing early when the
// context is cancelled.
func (r *retrier) wait(ctx context.Context, attempt int, cause error) error {
	timer := time.NewTimer(r.delay(attempt, cause))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// delay is exponential with jitter, except that a server-supplied
// Retry-After always wins.
func (r *retrier) delay(attempt int, cause error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(cause, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	if ceiling := float64(r.cfg.MaxWait); d > ceiling {
		d = ceiling
	}

	// ±20% jitter.
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}
