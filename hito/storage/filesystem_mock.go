package storage

import (
	"io/fs"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Directories are
// implicit. Set one of the error fields to make that call fail.
type MockFileSystem struct {
	mu    sync.RWMutex
	files fstest.MapFS

	ReadFileError  error
	WriteFileError error
	RenameError    error
	MkdirAllError  error
}

// NewMockFileSystem returns an empty MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{files: fstest.MapFS{}}
}

// MapFS keys are unrooted
func key(name string) string {
	return strings.TrimPrefix(name, "/")
}

func (m *MockFileSystem) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.Stat(m.files, key(name))
}

func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileError != nil {
		return nil, m.ReadFileError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.ReadFile(m.files, key(name))
}

func (m *MockFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if m.WriteFileError != nil {
		return m.WriteFileError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key(name)] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: perm, ModTime: time.Now()}
	return nil
}

func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	if m.RenameError != nil {
		return m.RenameError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[key(oldpath)]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	m.files[key(newpath)] = f
	delete(m.files, key(oldpath))
	return nil
}

func (m *MockFileSystem) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[key(name)]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, key(name))
	return nil
}

func (m *MockFileSystem) MkdirAll(string, fs.FileMode) error {
	return m.MkdirAllError
}

// FileExists reports whether name has been written
func (m *MockFileSystem) FileExists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[key(name)]
	return ok
}

// GetFileContent returns a copy of the file's bytes
func (m *MockFileSystem) GetFileContent(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[key(name)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), f.Data...), true
}
