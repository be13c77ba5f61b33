package locker

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrLockNotAcquired is returned when the date lock cannot be taken
	// before the context deadline.
	ErrLockNotAcquired = errors.New("locker: lock not acquired")
)

// DateLocker serializes booking writes for one calendar date. The
// critical section wraps the whole check-then-reserve sequence so two
// concurrent schedules cannot both pass the conflict check against a
// stale read.
type DateLocker interface {
	WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error
}

// LocalLocker is a single-process DateLocker backed by one mutex.
// Booking write volume is low enough that a global critical section is
// an acceptable substitute when redis is not configured.
type LocalLocker struct {
	mu sync.Mutex
}

// NewLocalLocker creates an in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

// WithDateLock runs fn while holding the process-wide booking lock.
func (l *LocalLocker) WithDateLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(ctx)
}
