package limiter

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter enforces the fixed-quota policy: at most limit calls per
// (identity, action) pair within a fixed window anchored at the first call.
type RateLimiter struct {
	limit  int64
	window time.Duration
	cfg    config
}

// NewRateLimiter validates the policy configuration, which is immutable for
// the lifetime of the limiter.
func NewRateLimiter(limit int64, window time.Duration, opts ...Option) (*RateLimiter, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limiter: limit must be >= 1, got %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("limiter: window must be positive, got %s", window)
	}

	cfg := newConfig(opts...)
	if cfg.message == "" {
		cfg.message = "Rate Limit Exceed"
	}

	return &RateLimiter{limit: limit, window: window, cfg: cfg}, nil
}

// Guard decides whether one more call for (identity, action) may proceed.
// The increment is unconditional: the call that tips the counter over the
// limit is itself counted, and an already-exceeded key keeps incrementing on
// every further call until the window expires. Only the allow comparison is
// capped at the limit.
func (l *RateLimiter) Guard(ctx context.Context, identity, action string) (Decision, error) {
	start := time.Now()

	key, err := buildKey(l.cfg.prefix, kindRate, action, identity)
	if err != nil {
		return Decision{}, err
	}

	tags := map[string]string{"action": action}
	l.cfg.recorder.Add(metricCall, 1, tags)
	defer func() {
		l.cfg.recorder.Observe(metricLatency, time.Since(start).Seconds(), tags)
	}()

	count, err := l.cfg.store.Incr(ctx, key, l.window)
	if err != nil {
		return Decision{}, err
	}

	if count <= l.limit {
		return Decision{
			Allowed:   true,
			Count:     count,
			Remaining: l.limit - count,
		}, nil
	}

	retryAfter, err := l.cfg.store.TTL(ctx, key)
	if err != nil {
		return Decision{}, err
	}

	l.cfg.recorder.Add(metricDenied, 1, tags)
	return Decision{
		Allowed:    false,
		Count:      count,
		Status:     l.cfg.status,
		Message:    l.cfg.message,
		RetryAfter: retryAfter,
		signal:     l.cfg.signal(l.cfg.status, l.cfg.message),
	}, nil
}
