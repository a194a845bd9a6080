package limiter

import (
	"context"
	"sync"
	"testing"
	"time"
)

// MockRecorder captures metrics in memory for assertion
type MockRecorder struct {
	mu       sync.Mutex
	Counters map[string]float64
	Timings  map[string][]float64
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{
		Counters: make(map[string]float64),
		Timings:  make(map[string][]float64),
	}
}

func (m *MockRecorder) Add(name string, value float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[name] += value
}

func (m *MockRecorder) Observe(name string, value float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Timings[name] = append(m.Timings[name], value)
}

func TestRateLimiter_Metrics(t *testing.T) {
	ctx := context.Background()
	mock := NewMockRecorder()

	rl, err := NewRateLimiter(1, time.Minute, WithRecorder(mock))
	if err != nil {
		t.Fatalf("Failed to create limiter: %v", err)
	}

	rl.Guard(ctx, "A", "/test") // allow
	rl.Guard(ctx, "A", "/test") // deny

	if val := mock.Counters["ratelimit.call"]; val != 2 {
		t.Errorf("Expected 'ratelimit.call' counter to be 2, got %v", val)
	}
	if val := mock.Counters["ratelimit.denied"]; val != 1 {
		t.Errorf("Expected 'ratelimit.denied' counter to be 1, got %v", val)
	}

	timings := mock.Timings["ratelimit.latency"]
	if len(timings) != 2 {
		t.Fatalf("Expected 2 latency observations, got %d", len(timings))
	}
	for i, v := range timings {
		if v <= 0 {
			t.Errorf("Expected positive latency at %d, got %v", i, v)
		}
	}
}

func TestFailureLimiter_Metrics(t *testing.T) {
	ctx := context.Background()
	mock := NewMockRecorder()

	fl, err := NewFailureLimiter(1, time.Minute, WithRecorder(mock))
	if err != nil {
		t.Fatalf("Failed to create limiter: %v", err)
	}

	fl.Guard(ctx, "A", "/login") // allow
	fl.Fail(ctx, "A", "/login")
	fl.Guard(ctx, "A", "/login") // deny

	if val := mock.Counters["ratelimit.call"]; val != 2 {
		t.Errorf("Expected 'ratelimit.call' counter to be 2 (guards only), got %v", val)
	}
	if val := mock.Counters["ratelimit.denied"]; val != 1 {
		t.Errorf("Expected 'ratelimit.denied' counter to be 1, got %v", val)
	}
}
