// Package pacing spaces provider requests so sequential trial loops stay
// under a configured requests-per-minute budget.
package pacing

import (
	"context"
	"time"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"
)

// Limiter gates outbound provider requests.
type Limiter interface {
	Wait(ctx context.Context) error
}

// NoopLimiter is a Limiter that never delays.
var NoopLimiter Limiter = noopLimiter{}

type noopLimiter struct{}

// Wait allows every request.
func (noopLimiter) Wait(_ context.Context) error { return nil }

// FromConfig builds a limiter from pacing configuration. A zero or missing
// requests_per_minute disables pacing.
func FromConfig(cfg spec.PacingConfig) Limiter {
	if cfg.RequestsPerMinute <= 0 {
		return NoopLimiter
	}
	return NewPerMinute(cfg.RequestsPerMinute)
}

// PerMinute enforces a fixed interval between requests. The trial loop is
// sequential, so a simple last-request timestamp is enough.
type PerMinute struct {
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPerMinute builds a limiter allowing requestsPerMinute requests.
func NewPerMinute(requestsPerMinute int) *PerMinute {
	return &PerMinute{
		interval: time.Minute / time.Duration(requestsPerMinute),
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until the next request slot opens or the context ends.
func (l *PerMinute) Wait(ctx context.Context) error {
	now := l.now()
	if !l.last.IsZero() {
		next := l.last.Add(l.interval)
		if wait := next.Sub(now); wait > 0 {
			if err := l.sleep(ctx, wait); err != nil {
				return err
			}
			now = l.now()
		}
	}
	l.last = now
	return nil
}

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
