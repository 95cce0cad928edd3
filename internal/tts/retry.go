package tts

import (
	"context"
	"fmt"
	"time"
)

// Warning records a synthesis request that was degraded to its fallback
// instead of failing the job.
type Warning struct {
	Text string // the text that could not be synthesized
	Err  error  // the last attempt's error
}

func (w *Warning) String() string {
	return fmt.Sprintf("could not synthesize %q: %v", w.Text, w.Err)
}

// RetryPolicy is a bounded retry with a fixed inter-attempt delay and a
// fallback action run when all attempts fail. The fallback substitutes for
// the requested operation, so exhausted retries degrade rather than abort.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration

	// Fallback runs after the final failed attempt. Its own failure is
	// fatal and is returned as a hard error.
	Fallback func(ctx context.Context) error

	// OnRetry, if set, is called before each re-attempt.
	OnRetry func(attempt, max int, err error)
}

// DefaultRetryPolicy matches the recording pipeline's policy: three attempts
// one second apart.
func DefaultRetryPolicy(fallback func(ctx context.Context) error) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       time.Second,
		Fallback:    fallback,
	}
}

// Do runs op under the policy. It returns (nil, nil) on success and
// (warning, nil) when op kept failing but the fallback succeeded. The error
// is non-nil only when the fallback itself failed or the context was
// cancelled; both are fatal to the caller.
func (p RetryPolicy) Do(ctx context.Context, text string, op func(ctx context.Context) error) (*Warning, error) {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if lastErr = op(ctx); lastErr == nil {
			return nil, nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, p.MaxAttempts, lastErr)
		}
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if p.Fallback != nil {
		if err := p.Fallback(ctx); err != nil {
			return nil, fmt.Errorf("fallback after %d failed attempts: %w", p.MaxAttempts, err)
		}
	}
	return &Warning{Text: text, Err: lastErr}, nil
}
