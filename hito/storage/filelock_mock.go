package storage

import (
	"context"
	"sync"
	"time"
)

// MockFileLock is a FileLock that never blocks. A held lock makes
// TryLockContext report false; a set error is returned instead.
type MockFileLock struct {
	mu      sync.Mutex
	held    bool
	failure error

	LockAttempts   int
	UnlockAttempts int
}

func (m *MockFileLock) TryLockContext(context.Context, time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LockAttempts++
	switch {
	case m.failure != nil:
		return false, m.failure
	case m.held:
		return false, nil
	}
	m.held = true
	return true, nil
}

func (m *MockFileLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnlockAttempts++
	m.held = false
	return nil
}

// IsLocked reports whether the lock is held
func (m *MockFileLock) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}

// Hold takes the lock on behalf of another process
func (m *MockFileLock) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = true
}

// SetLockError makes every lock attempt fail with err
func (m *MockFileLock) SetLockError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// MockFileLockFactory hands out one MockFileLock per path
type MockFileLockFactory struct {
	mu    sync.Mutex
	locks map[string]*MockFileLock
}

func NewMockFileLockFactory() *MockFileLockFactory {
	return &MockFileLockFactory{locks: map[string]*MockFileLock{}}
}

func (f *MockFileLockFactory) New(path string) FileLock {
	return f.GetLock(path)
}

// GetLock returns the lock for path, creating it on first use
func (f *MockFileLockFactory) GetLock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locks[path]
	if !ok {
		l = &MockFileLock{}
		f.locks[path] = l
	}
	return l
}
