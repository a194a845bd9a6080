// Package limiter provides local and distributed request limiting based on
// fixed-window counters.
//
// Two policies are built on the same counter engine:
//
//   - RateLimiter: at most N calls per identity and action within a window.
//   - FailureLimiter: at most N failed attempts per identity and action
//     within a window, after which the identity is locked out until the
//     window expires or the caller resets it.
//
// The primary entry point is Guard:
//
//	dec, err := rl.Guard(ctx, identity, action)
//
// The returned Decision reports whether the action may proceed, the counter
// value observed, and on denial a status code, a message, and a RetryAfter
// hint for callers that want to set rate-limit headers.
//
// # Overview
//
// Each (policy, action, identity) triple owns a counter with a fixed window:
// the first increment anchors the window, subsequent increments within the
// window accumulate without sliding it, and once the window elapses the next
// increment starts a fresh one at 1. Unlike token buckets, a fixed window
// makes the counter value directly meaningful ("this is the 4th call"),
// which is what the failure-lockout policy needs.
//
// # Core Types
//
// A guard call takes two opaque strings:
//
//   - identity: who is being limited (for example a client IP)
//   - action: what is being limited (for example a route path)
//
// The policy is fixed at construction: NewRateLimiter(limit, window, opts...)
// with limit >= 1 and a positive window. Configuration is immutable for the
// lifetime of the limiter.
//
// # Backends
//
// Both limiters speak to a CounterStore. Two implementations are provided:
//
//   - MemoryStore: an in-process store backed by a mutex-guarded Go map.
//     Useful for unit tests, local development, and single-instance
//     deployments. Its state is local to the process, so it does not enforce
//     a global limit across replicas.
//
//   - RedisStore: a distributed store backed by Redis. Increments run in a
//     Lua script that sets the key's TTL only on the first increment of a
//     window, so the read/compute/write cycle is atomic across many
//     application instances sharing one Redis endpoint.
//
// Recommendation: use RedisStore in production when you need a global limit,
// and MemoryStore in tests as a fast, dependency-free stand-in.
//
// # Concurrency
//
// MemoryStore performs the whole increment inside one lock acquisition, so
// concurrent guards on the same key observe a gap-free count sequence.
// RedisStore delegates the same guarantee to Redis and the go-redis client;
// each check costs one network round trip, which may block the calling
// goroutine. There is no retry loop anywhere: an increment either succeeds
// or fails outright.
//
// # Context and Error Policy
//
// Guard accepts a context.Context, which RedisStore passes through to Redis
// (with a per-operation timeout on top, see WithTimeout).
//
// Three outcomes are kept strictly apart:
//
//   - A denial is not an error. Guard returns a Decision with Allowed false,
//     and Decision.Err constructs the configured signal for callers that
//     prefer an error value.
//   - ErrInvalidKeyInput is returned for an empty identity or action, before
//     any store access.
//   - ErrStoreUnavailable wraps store faults. It is distinguishable from a
//     denial with errors.Is, so the caller can decide between failing open
//     (maximize availability) and failing closed (protect the backend); this
//     package does not impose either policy, and it never retries, logs, or
//     swallows internally.
//
// # Failure Limiter Protocol
//
// FailureLimiter.Guard only reads: the outcome of the guarded action is not
// known yet when the guard runs. The caller reports it afterwards:
//
//	dec, err := fl.Guard(ctx, ip, "/login")
//	// ... deny if !dec.Allowed ...
//	if loginFailed {
//		fl.Fail(ctx, ip, "/login")
//	} else {
//		fl.Reset(ctx, ip, "/login")
//	}
//
// Calling Fail or Reset for a pair that was never guarded is accepted; the
// store simply creates or deletes a record.
//
// # Storage Details
//
// Counters are stored under keys of the form
//
//	"{prefix}{kind}:{action}:{identity}"
//
// where kind is "rate" or "fail", so the two policies never collide on the
// same action and identity. WithKeyPrefix namespaces the keys away from
// unrelated data in a shared Redis keyspace. Redis values are plain integer
// strings with a TTL equal to the configured window; expired identities cost
// nothing. MemoryStore treats expired records as absent on access and can
// additionally reap them early via StartJanitor.
//
// # Configuration
//
// Limiters are configured using the Functional Options pattern:
//
//	rl, err := limiter.NewRateLimiter(100, time.Minute,
//		limiter.WithStore(store),
//		limiter.WithStatus(429),
//		limiter.WithMessage("slow down"),
//		limiter.WithKeyPrefix("myapp:"),
//		limiter.WithRecorder(myMetrics),
//	)
//
// Supported options:
//
//   - WithStore(CounterStore): the backend (default: a fresh MemoryStore
//     owned by this limiter).
//   - WithStatus(int): status code carried by denials (default 429).
//   - WithMessage(string): message carried by denials.
//   - WithSignal(SignalFunc): custom constructor for Decision.Err; it
//     receives exactly the configured (status, message) pair.
//   - WithKeyPrefix(string): storage key prefix (default none).
//   - WithRecorder(MetricsRecorder): custom metrics backend.
//
// RedisStore additionally accepts WithTimeout, and MemoryStore accepts
// WithSweepInterval for its janitor.
package limiter
