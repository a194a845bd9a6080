package limiter

import (
	"errors"
	"fmt"
)

// ErrInvalidKeyInput is returned when a guard call receives an empty identity
// or action. It is raised before any store access.
var ErrInvalidKeyInput = errors.New("limiter: empty identity or action")

// ErrStoreUnavailable wraps failures reaching the counter store. It is
// distinct from a denial so callers can choose a fail-open or fail-closed
// policy; this package never decides that for them.
var ErrStoreUnavailable = errors.New("limiter: counter store unavailable")

// LimitExceededError is the default denial signal returned by Decision.Err
// when no custom SignalFunc is configured.
type LimitExceededError struct {
	Status  int
	Message string
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("limit exceeded: status=%d message=%q", e.Status, e.Message)
}
