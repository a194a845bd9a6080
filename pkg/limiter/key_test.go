package limiter

import (
	"errors"
	"testing"
)

func TestBuildKey(t *testing.T) {
	k1, err := buildKey("", kindRate, "/test", "1.2.3.4")
	if err != nil {
		t.Fatalf("buildKey failed: %v", err)
	}
	if k1 != "rate:/test:1.2.3.4" {
		t.Errorf("key = %q, want %q", k1, "rate:/test:1.2.3.4")
	}

	k2, _ := buildKey("", kindRate, "/test", "1.2.3.4")
	if k1 != k2 {
		t.Error("equal triples must map to the same key")
	}

	variants := []string{
		mustKey(t, "", kindFail, "/test", "1.2.3.4"),
		mustKey(t, "", kindRate, "/other", "1.2.3.4"),
		mustKey(t, "", kindRate, "/test", "5.6.7.8"),
		mustKey(t, "app:", kindRate, "/test", "1.2.3.4"),
	}
	for _, v := range variants {
		if v == k1 {
			t.Errorf("key %q collides with %q", v, k1)
		}
	}
}

func TestBuildKey_EmptyInput(t *testing.T) {
	if _, err := buildKey("", kindRate, "", "1.2.3.4"); !errors.Is(err, ErrInvalidKeyInput) {
		t.Errorf("empty action: err = %v, want ErrInvalidKeyInput", err)
	}
	if _, err := buildKey("", kindRate, "/test", ""); !errors.Is(err, ErrInvalidKeyInput) {
		t.Errorf("empty identity: err = %v, want ErrInvalidKeyInput", err)
	}
}

func mustKey(t *testing.T, prefix, kind, action, identity string) string {
	t.Helper()
	k, err := buildKey(prefix, kind, action, identity)
	if err != nil {
		t.Fatalf("buildKey(%q, %q, %q, %q) failed: %v", prefix, kind, action, identity, err)
	}
	return k
}
