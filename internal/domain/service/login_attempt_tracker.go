package service

import (
	"context"
	"time"
)

// LoginAttemptTracker counts failed logins per key in a store that survives restarts.
// A key is locked once it reaches the configured number of failures and stays
// locked until its window expires.
type LoginAttemptTracker interface {
	// Locked reports whether the key is locked and until when.
	Locked(ctx context.Context, key string) (bool, time.Time, error)

	// RecordFailure adds one failure and returns the attempt count inside the current window.
	RecordFailure(ctx context.Context, key string) (int, error)

	// Reset forgets the key after a successful login.
	Reset(ctx context.Context, key string) error
}
