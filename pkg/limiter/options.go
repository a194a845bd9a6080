package limiter

import "net/http"

type config struct {
	store    CounterStore
	status   int
	message  string
	signal   SignalFunc
	prefix   string
	recorder MetricsRecorder
}

// Option configures a RateLimiter or FailureLimiter.
type Option func(*config)

// WithStore sets the counter store. The default is a fresh MemoryStore
// owned by the limiter; pass a shared store (for example a RedisStore) when
// several limiter instances or processes must share one counter space.
func WithStore(store CounterStore) Option {
	return func(c *config) { c.store = store }
}

// WithStatus sets the status code carried by denials (default 429).
func WithStatus(status int) Option {
	return func(c *config) { c.status = status }
}

// WithMessage sets the message carried by denials. The default is
// "Rate Limit Exceed" for RateLimiter and "Access is limited for N seconds"
// for FailureLimiter.
func WithMessage(message string) Option {
	return func(c *config) { c.message = message }
}

// WithSignal replaces the default *LimitExceededError constructor used for
// Decision.Err. The function receives the configured (status, message) pair
// and nothing else.
func WithSignal(fn SignalFunc) Option {
	return func(c *config) { c.signal = fn }
}

// WithKeyPrefix prepends a prefix to every storage key, to keep limiter keys
// apart from unrelated keys in a shared Redis keyspace (default none).
func WithKeyPrefix(prefix string) Option {
	return func(c *config) { c.prefix = prefix }
}

// WithRecorder injects a custom metrics backend.
func WithRecorder(r MetricsRecorder) Option {
	return func(c *config) { c.recorder = r }
}

func newConfig(opts ...Option) config {
	cfg := config{
		status:   http.StatusTooManyRequests,
		recorder: &NoOpMetricsRecorder{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.store == nil {
		cfg.store = NewMemoryStore()
	}
	if cfg.signal == nil {
		cfg.signal = func(status int, message string) error {
			return &LimitExceededError{Status: status, Message: message}
		}
	}
	return cfg
}
