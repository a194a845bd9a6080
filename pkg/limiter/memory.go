package limiter

import (
	"context"
	"sync"
	"time"
)

type record struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore is a process-local CounterStore backed by a mutex-guarded map.
//
// It is safe for concurrent use by multiple goroutines, but its state is
// local to the process and is not shared across replicas. Use RedisStore
// when multiple instances must enforce one global quota.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]record
	sweep   time.Duration
}

type MemoryOption func(*MemoryStore)

// WithSweepInterval sets how often StartJanitor removes expired records
// (default 2m). Zero or negative disables the janitor.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(m *MemoryStore) { m.sweep = d }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		records: make(map[string]record),
		sweep:   2 * time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Incr is one critical section: read-or-create, expiry check, increment,
// write back. Expired-but-present records are treated as absent and
// overwritten with a fresh window.
func (m *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[key]
	if !ok || !now.Before(rec.expiresAt) {
		rec = record{expiresAt: now.Add(window)}
	}
	rec.count++
	m.records[key] = rec
	return rec.count, nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) (int64, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[key]
	if !ok || !now.Before(rec.expiresAt) {
		return 0, nil
	}
	return rec.count, nil
}

func (m *MemoryStore) Reset(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key)
	return nil
}

func (m *MemoryStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[key]
	if !ok || !now.Before(rec.expiresAt) {
		return 0, nil
	}
	return rec.expiresAt.Sub(now), nil
}

// Sweep removes expired records to bound memory. Correctness never depends
// on it running: expired records already read as absent.
func (m *MemoryStore) Sweep() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, rec := range m.records {
		if !now.Before(rec.expiresAt) {
			delete(m.records, k)
		}
	}
}

// StartJanitor sweeps expired records periodically until ctx is cancelled.
func (m *MemoryStore) StartJanitor(ctx context.Context) {
	if m.sweep <= 0 {
		return
	}

	t := time.NewTicker(m.sweep)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.Sweep()
			}
		}
	}()
}
