package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockUnavailable is returned when another process holds the file lock
// for longer than the configured timeout
var ErrLockUnavailable = errors.New("file lock unavailable")

// FileLock defines the interface for cross-process file locking
type FileLock interface {
	// TryLockContext attempts to acquire an exclusive lock with retries
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)

	// Unlock releases the lock
	Unlock() error
}

// FileLockFactory creates FileLock instances
type FileLockFactory interface {
	// New creates a new FileLock for the given path
	New(path string) FileLock
}

// FlockWrapper wraps github.com/gofrs/flock for our interface
type FlockWrapper struct {
	flock *flock.Flock
}

// TryLockContext implements FileLock.TryLockContext
func (f *FlockWrapper) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	return f.flock.TryLockContext(ctx, retryInterval)
}

// Unlock implements FileLock.Unlock
func (f *FlockWrapper) Unlock() error {
	return f.flock.Unlock()
}

// FlockFactory is the default factory implementation using flock
type FlockFactory struct{}

// New implements FileLockFactory.New
func (f *FlockFactory) New(path string) FileLock {
	return &FlockWrapper{
		flock: flock.New(path),
	}
}

// Constants for file locking
const (
	DefaultLockTimeout = 3 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

// AcquireFileLock takes lock, retrying until timeout elapses.
// Callers must already hold their in-process lock; the file lock only
// arbitrates between processes.
func AcquireFileLock(lock FileLock, timeout time.Duration) (func(), error) {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w after %v", ErrLockUnavailable, timeout)
	}

	return func() { _ = lock.Unlock() }, nil
}
