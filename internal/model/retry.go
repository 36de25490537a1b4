package model

import (
	"context"
	"time"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"
)

// retryProvider re-attempts failed completions a bounded number of times
// with a fixed delay between attempts.
type retryProvider struct {
	inner    Provider
	attempts int
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

func withRetry(inner Provider, cfg spec.ModelConfig) Provider {
	if cfg.RetryAttempts <= 1 {
		return inner
	}
	return &retryProvider{
		inner:    inner,
		attempts: cfg.RetryAttempts,
		delay:    time.Duration(cfg.RetryDelayMs) * time.Millisecond,
		sleep:    sleepContext,
	}
}

func (p *retryProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	var lastErr error
	for attempt := 0; attempt < p.attempts; attempt++ {
		if attempt > 0 && p.delay > 0 {
			if err := p.sleep(ctx, p.delay); err != nil {
				return "", err
			}
		}
		reply, err := p.inner.Complete(ctx, messages)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// sleepContext waits for the delay or the context, whichever ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
