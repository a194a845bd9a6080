package limiter

import (
	"context"
	"time"
)

// SignalFunc builds the error value a denial is reported as. Callers that
// want denials surfaced through their own error type supply one via
// WithSignal; it receives the configured status code and message.
type SignalFunc func(status int, message string) error

// Decision is the outcome of a guard check.
type Decision struct {
	// Allowed reports whether the guarded action may proceed.
	Allowed bool

	// Count is the counter value observed by this check. For RateLimiter it
	// includes the current call; for FailureLimiter it is the failure count
	// accumulated so far.
	Count int64

	// Remaining is how many further calls (or failures) are left before the
	// limit is reached. Zero on denial.
	Remaining int64

	// Status and Message are set on denial only, from the limiter
	// configuration.
	Status  int
	Message string

	// RetryAfter is the remaining window time on denial, 0 when the window
	// expired between the check and the TTL read.
	RetryAfter time.Duration

	signal error
}

// Err returns the denial signal built by the configured SignalFunc, or nil
// when the decision is an allow.
func (d Decision) Err() error { return d.signal }

// CounterStore is the storage contract shared by RateLimiter and
// FailureLimiter. Implementations must make Incr atomic under concurrent
// callers on the same key: N concurrent calls within one window yield the
// counts {1..N} with no lost or duplicated increments.
type CounterStore interface {
	// Incr increments the counter for key and returns the post-increment
	// count. When the record is absent or its window has expired, the
	// counter restarts at 1 with a fresh window-long expiry. The window is
	// anchored at the first increment and does not slide on activity.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)

	// Get returns the current count without touching the expiry. Absent or
	// expired records read as 0.
	Get(ctx context.Context, key string) (int64, error)

	// Reset deletes the record outright; the next Incr starts a fresh
	// window at 1.
	Reset(ctx context.Context, key string) error

	// TTL returns the remaining time until the record expires, 0 when the
	// record is absent.
	TTL(ctx context.Context, key string) (time.Duration, error)
}
