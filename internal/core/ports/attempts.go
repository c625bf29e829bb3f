package ports

import (
	"context"
	"time"
)

// AttemptStore tracks consecutive failed sign-ins per login within a fixed
// window. Fail must be a single atomic read-modify-write so two concurrent
// failures never under-count toward the lockout threshold.
type AttemptStore interface {
	// Fail records one failed attempt and returns the consecutive failure
	// count inside the current window, including this one. A window older
	// than the given duration is discarded first.
	Fail(ctx context.Context, login string, now time.Time, window time.Duration) (int, error)
	// Count returns the consecutive failure count inside the current window
	// without mutating it.
	Count(ctx context.Context, login string, now time.Time, window time.Duration) (int, error)
	// Reset clears the counter for login.
	Reset(ctx context.Context, login string) error
}
