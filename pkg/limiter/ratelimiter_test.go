package limiter

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewRateLimiter_Validation(t *testing.T) {
	if _, err := NewRateLimiter(0, time.Minute); err == nil {
		t.Error("limit 0 should be rejected")
	}
	if _, err := NewRateLimiter(5, 0); err == nil {
		t.Error("zero window should be rejected")
	}
	if _, err := NewRateLimiter(5, -time.Second); err == nil {
		t.Error("negative window should be rejected")
	}
}

func TestRateLimiter_AllowThenDeny(t *testing.T) {
	ctx := context.Background()
	rl, err := NewRateLimiter(3, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	for i := int64(1); i <= 3; i++ {
		dec, err := rl.Guard(ctx, "A", "/test")
		if err != nil {
			t.Fatalf("Guard %d failed: %v", i, err)
		}
		if !dec.Allowed {
			t.Fatalf("Guard %d was unexpectedly denied", i)
		}
		if dec.Count != i {
			t.Errorf("Guard %d: count = %d, want %d", i, dec.Count, i)
		}
		if dec.Remaining != 3-i {
			t.Errorf("Guard %d: remaining = %d, want %d", i, dec.Remaining, 3-i)
		}
		if dec.Err() != nil {
			t.Errorf("Guard %d: Err() = %v, want nil on allow", i, dec.Err())
		}
	}

	dec, err := rl.Guard(ctx, "A", "/test")
	if err != nil {
		t.Fatalf("Guard failed: %v", err)
	}
	if dec.Allowed {
		t.Fatal("4th call should be denied")
	}
	if dec.Count != 4 {
		t.Errorf("denied call count = %d, want 4", dec.Count)
	}
	if dec.Status != 429 {
		t.Errorf("status = %d, want default 429", dec.Status)
	}
	if dec.Message != "Rate Limit Exceed" {
		t.Errorf("message = %q, want default %q", dec.Message, "Rate Limit Exceed")
	}

	var lee *LimitExceededError
	if !errors.As(dec.Err(), &lee) {
		t.Fatalf("Err() = %v, want *LimitExceededError", dec.Err())
	}
	if lee.Status != 429 || lee.Message != "Rate Limit Exceed" {
		t.Errorf("signal carries (%d, %q), want (429, %q)", lee.Status, lee.Message, "Rate Limit Exceed")
	}
}

// An already-exceeded key keeps incrementing on every further call; only the
// allow comparison is capped.
func TestRateLimiter_DenialsKeepCounting(t *testing.T) {
	ctx := context.Background()
	rl, err := NewRateLimiter(1, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	rl.Guard(ctx, "A", "/test")

	for want := int64(2); want <= 4; want++ {
		dec, err := rl.Guard(ctx, "A", "/test")
		if err != nil {
			t.Fatal(err)
		}
		if dec.Allowed {
			t.Fatalf("call %d should be denied", want)
		}
		if dec.Count != want {
			t.Errorf("denied call count = %d, want %d", dec.Count, want)
		}
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	ctx := context.Background()
	rl, err := NewRateLimiter(1, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	rl.Guard(ctx, "A", "/test")

	dec, _ := rl.Guard(ctx, "A", "/test")
	if dec.Allowed {
		t.Fatal("second call inside the window should be denied")
	}

	time.Sleep(80 * time.Millisecond)

	dec, err = rl.Guard(ctx, "A", "/test")
	if err != nil {
		t.Fatal(err)
	}
	if !dec.Allowed || dec.Count != 1 {
		t.Errorf("after expiry: allowed=%v count=%d, want allowed with fresh count 1", dec.Allowed, dec.Count)
	}
}

func TestRateLimiter_InvalidInput(t *testing.T) {
	ctx := context.Background()
	rl, err := NewRateLimiter(1, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := rl.Guard(ctx, "", "/test"); !errors.Is(err, ErrInvalidKeyInput) {
		t.Errorf("empty identity: err = %v, want ErrInvalidKeyInput", err)
	}
	if _, err := rl.Guard(ctx, "A", ""); !errors.Is(err, ErrInvalidKeyInput) {
		t.Errorf("empty action: err = %v, want ErrInvalidKeyInput", err)
	}
}

func TestRateLimiter_CountersAreIsolated(t *testing.T) {
	ctx := context.Background()
	rl, err := NewRateLimiter(1, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	rl.Guard(ctx, "A", "/test")

	t.Run("DistinctIdentity", func(t *testing.T) {
		dec, err := rl.Guard(ctx, "B", "/test")
		if err != nil {
			t.Fatal(err)
		}
		if !dec.Allowed || dec.Count != 1 {
			t.Errorf("identity B shares a counter with A: count = %d", dec.Count)
		}
	})

	t.Run("DistinctAction", func(t *testing.T) {
		dec, err := rl.Guard(ctx, "A", "/other")
		if err != nil {
			t.Fatal(err)
		}
		if !dec.Allowed || dec.Count != 1 {
			t.Errorf("action /other shares a counter with /test: count = %d", dec.Count)
		}
	})
}
