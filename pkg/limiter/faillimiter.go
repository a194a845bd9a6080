package limiter

import (
	"context"
	"fmt"
	"time"
)

// FailureLimiter enforces the failure-triggered lockout policy: once an
// (identity, action) pair accumulates limit failures within a window, Guard
// denies until the window expires or Reset is called.
//
// Unlike RateLimiter, Guard never mutates the counter. The pass/fail outcome
// of the guarded action is known only after it runs, so the caller reports
// it explicitly: Fail after a failed attempt, Reset after a successful one.
type FailureLimiter struct {
	limit  int64
	window time.Duration
	cfg    config
}

func NewFailureLimiter(limit int64, window time.Duration, opts ...Option) (*FailureLimiter, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limiter: limit must be >= 1, got %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("limiter: window must be positive, got %s", window)
	}

	cfg := newConfig(opts...)
	if cfg.message == "" {
		cfg.message = fmt.Sprintf("Access is limited for %d seconds", int(window/time.Second))
	}

	return &FailureLimiter{limit: limit, window: window, cfg: cfg}, nil
}

// Guard reads the current failure count and denies once it has reached the
// limit. It is read-only; calling it any number of times leaves the counter
// untouched.
func (l *FailureLimiter) Guard(ctx context.Context, identity, action string) (Decision, error) {
	start := time.Now()

	key, err := buildKey(l.cfg.prefix, kindFail, action, identity)
	if err != nil {
		return Decision{}, err
	}

	tags := map[string]string{"action": action}
	l.cfg.recorder.Add(metricCall, 1, tags)
	defer func() {
		l.cfg.recorder.Observe(metricLatency, time.Since(start).Seconds(), tags)
	}()

	count, err := l.cfg.store.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}

	if count < l.limit {
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

// Fail records one failed attempt and returns the new failure count.
// Calling it for a pair that was never guarded is fine: the store simply
// starts a fresh record.
func (l *FailureLimiter) Fail(ctx context.Context, identity, action string) (int64, error) {
	key, err := buildKey(l.cfg.prefix, kindFail, action, identity)
	if err != nil {
		return 0, err
	}
	return l.cfg.store.Incr(ctx, key, l.window)
}

// Reset clears accumulated failures immediately, without waiting for the
// window to expire. Call it after a successful attempt.
func (l *FailureLimiter) Reset(ctx context.Context, identity, action string) error {
	key, err := buildKey(l.cfg.prefix, kindFail, action, identity)
	if err != nil {
		return err
	}
	return l.cfg.store.Reset(ctx, key)
}
