// Package storage provides the exclusive-access primitive shared by the
// persistence layers of hito.
package storage

import (
	"sync"
)

// LockManager serializes every operation that touches a persisted document.
// Reads and writes take the same exclusive lock: a reader must never observe
// a file while another caller is between truncating and renaming it, and two
// read-modify-write sequences must never interleave.
//
// Acquisition blocks until the lock is free. The critical sections guarded
// here are a single file read, transform and write, so holders are short lived.
type LockManager struct {
	mu *sync.Mutex
}

// NewLockManager creates a new lock manager instance.
func NewLockManager() *LockManager {
	return &LockManager{
		mu: &sync.Mutex{},
	}
}

// Execute runs fn while holding the exclusive lock.
// The lock is released via defer, so it is freed even if fn panics.
//
// Example:
//
//	err := lockManager.Execute(func() error {
//	    // exclusive access here
//	    return nil
//	})
func (lm *LockManager) Execute(fn func() error) error {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return fn()
}

// ExecuteWithResult runs fn while holding the exclusive lock and returns its result.
func ExecuteWithResult[T any](lm *LockManager, fn func() (T, error)) (T, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return fn()
}
