package limiter

import (
	"context"
	_ "embed"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed fixed_window.lua
var fixedWindowScript string

// RedisStore is a CounterStore backed by Redis, for deployments where many
// process instances must observe one consistent counter per key. Atomicity
// of Incr is delegated to a Lua script, so there is no local locking and no
// check-then-act race between the increment and the expiry set.
type RedisStore struct {
	client    *redis.Client
	scriptSHA string
	timeout   time.Duration
}

type RedisOption func(*RedisStore)

// WithTimeout sets the per-operation timeout applied on top of the caller's
// context (default 5s). Zero or negative disables it.
func WithTimeout(d time.Duration) RedisOption {
	return func(s *RedisStore) { s.timeout = d }
}

// NewRedisStore pings the server and loads the counter script. A dead
// connection fails here rather than on the first guard call.
func NewRedisStore(client *redis.Client, opts ...RedisOption) (*RedisStore, error) {
	s := &RedisStore{
		client:  client,
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, storeErr(err)
	}

	sha, err := client.ScriptLoad(ctx, fixedWindowScript).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	s.scriptSHA = sha

	return s, nil
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	count, err := s.client.EvalSha(ctx, s.scriptSHA, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	count, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *RedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	d, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, storeErr(err)
	}
	// PTTL reports -2 for a missing key and -1 for no expiry.
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

func (s *RedisStore) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// storeErr keeps the underlying error in the chain so callers can still
// match context.Canceled and friends with errors.Is.
func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// RedisConfig is plain connection plumbing for callers that do not want to
// construct a go-redis client themselves.
type RedisConfig struct {
	Host        string        // default "localhost"
	Port        int           // default 6379
	DB          int           // default 0
	Password    string        // default none
	DialTimeout time.Duration // default 2s
}

// NewRedisClient builds a go-redis client from RedisConfig, applying the
// documented defaults for zero-value fields.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 6379
	}
	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 2 * time.Second
	}

	return redis.NewClient(&redis.Options{
		Addr:        net.JoinHostPort(host, strconv.Itoa(port)),
		DB:          cfg.DB,
		Password:    cfg.Password,
		DialTimeout: dialTimeout,
	})
}
