// Package store persists the hito configuration document: categories,
// hotkeys and the directory-to-sidecar index. Every operation is a full
// read or a full read-modify-write of one JSON file, serialized on an
// exclusive lock inside the process and an advisory file lock across processes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/iomz/hito/hito/storage"
	"github.com/iomz/hito/types"
)

// ConfigStore owns one config document file
type ConfigStore struct {
	path        string
	fs          storage.FileSystem
	lockFactory storage.FileLockFactory
	lockManager *storage.LockManager
	lockTimeout time.Duration
	logger      *slog.Logger
	newID       func() string
	validate    func(prev, next types.ConfigDocument) error
}

// NewConfigStore creates a store for the document at path. Nothing is read
// or created until the first operation.
func NewConfigStore(path string, opts ...Option) *ConfigStore {
	s := &ConfigStore{
		path:        path,
		fs:          &storage.OSFileSystem{},
		lockFactory: &storage.FlockFactory{},
		lockManager: storage.NewLockManager(),
		lockTimeout: storage.DefaultLockTimeout,
		logger:      slog.Default(),
		newID:       func() string { return uuid.New().String() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Path returns the location of the document file
func (s *ConfigStore) Path() string {
	return s.path
}

// Load returns the current document. A missing or empty file yields the
// default document. Load never creates the config directory, and when the
// lock file cannot be created for a config that does not exist yet the
// default document is returned.
func (s *ConfigStore) Load() (types.ConfigDocument, error) {
	return storage.ExecuteWithResult(s.lockManager, func() (types.ConfigDocument, error) {
		release, err := s.lockFile(false)
		if err != nil {
			if errors.Is(err, ErrLockUnavailable) {
				return types.ConfigDocument{}, err
			}
			if _, exists, readErr := storage.ReadIfExists(s.fs, s.path); readErr == nil && !exists {
				s.logger.Debug("config missing and not lockable, using defaults", "path", s.path, "error", err)
				return types.NewConfigDocument(), nil
			}
			return types.ConfigDocument{}, err
		}
		defer release()

		return s.read()
	})
}

// Mutate applies transform to the current document and saves the result.
// The whole sequence runs under the store lock, so concurrent mutations
// never lose each other's updates. If transform returns an error nothing
// is written and that error is returned as is.
func (s *ConfigStore) Mutate(transform func(types.ConfigDocument) (types.ConfigDocument, error)) error {
	return s.lockManager.Execute(func() error {
		release, err := s.lockFile(true)
		if err != nil {
			return err
		}
		defer release()

		doc, err := s.read()
		if err != nil {
			return err
		}

		// Transforms may edit doc's slices in place
		var prev types.ConfigDocument
		if s.validate != nil {
			prev = doc.Clone()
		}

		next, err := transform(doc)
		if err != nil {
			s.logger.Debug("config mutation aborted", "path", s.path, "error", err)
			return err
		}

		if s.validate != nil {
			if err := s.validate(prev, next); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalid, err)
			}
		}

		return s.write(next)
	})
}

// lockFile takes the cross-process lock on <path>.lock, creating the config
// directory first when create is set.
// No locking of the in-process mutex here - caller must hold it.
func (s *ConfigStore) lockFile(create bool) (func(), error) {
	if create {
		if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return storage.AcquireFileLock(s.lockFactory.New(s.path+".lock"), s.lockTimeout)
}

// read loads the document from disk
func (s *ConfigStore) read() (types.ConfigDocument, error) {
	data, exists, err := storage.ReadIfExists(s.fs, s.path)
	if err != nil {
		return types.ConfigDocument{}, fmt.Errorf("failed to load config: %w", err)
	}

	// Missing or empty file is the default document
	if !exists || len(data) == 0 {
		s.logger.Debug("config file absent, using defaults", "path", s.path)
		return types.NewConfigDocument(), nil
	}

	var doc types.ConfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ConfigDocument{}, fmt.Errorf("%w: %s: %v", ErrConfigCorrupt, s.path, err)
	}
	doc.Normalize()

	s.logger.Debug("config loaded", "path", s.path,
		"categories", len(doc.Categories), "hotkeys", len(doc.Hotkeys))
	return doc, nil
}

// write replaces the file with a serialization of the whole document
func (s *ConfigStore) write(doc types.ConfigDocument) error {
	doc.Normalize()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := storage.WriteAtomic(s.fs, s.path, data); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	s.logger.Debug("config saved", "path", s.path, "bytes", len(data))
	return nil
}
