package store

import (
	"log/slog"
	"time"

	"github.com/iomz/hito/hito/storage"
	"github.com/iomz/hito/types"
)

// Option is a function that modifies ConfigStore configuration
type Option func(*ConfigStore)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs storage.FileSystem) Option {
	return func(s *ConfigStore) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory storage.FileLockFactory) Option {
	return func(s *ConfigStore) {
		s.lockFactory = factory
	}
}

// WithLogger sets the logger used for debug events
func WithLogger(logger *slog.Logger) Option {
	return func(s *ConfigStore) {
		s.logger = logger
	}
}

// WithLockTimeout bounds how long an operation waits for another process
// to release the config file lock
func WithLockTimeout(d time.Duration) Option {
	return func(s *ConfigStore) {
		s.lockTimeout = d
	}
}

// WithIDFunc sets the generator used for new category and hotkey ids
func WithIDFunc(fn func() string) Option {
	return func(s *ConfigStore) {
		s.newID = fn
	}
}

// WithValidator sets a check run on every mutation before it is written. It
// receives the document as loaded and as transformed. A failing check aborts
// the mutation with ErrInvalid.
func WithValidator(fn func(prev, next types.ConfigDocument) error) Option {
	return func(s *ConfigStore) {
		s.validate = fn
	}
}
