package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem defines the file operations the persistence layers need.
// This abstraction allows failure injection in tests.
type FileSystem interface {
	// Stat returns file info for the given path
	Stat(name string) (fs.FileInfo, error)

	// ReadFile reads the entire file and returns its contents
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to a file with the specified permissions
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Rename renames (moves) a file from oldpath to newpath
	Rename(oldpath, newpath string) error

	// Remove removes the named file
	Remove(name string) error

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(path string, perm fs.FileMode) error
}

// OSFileSystem is the default implementation using the os package
type OSFileSystem struct{}

// Stat implements FileSystem.Stat
func (fs *OSFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile implements FileSystem.ReadFile
func (fs *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile implements FileSystem.WriteFile
func (fs *OSFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Rename implements FileSystem.Rename
func (fs *OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove implements FileSystem.Remove
func (fs *OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// MkdirAll implements FileSystem.MkdirAll
func (fs *OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// ReadIfExists reads a file, reporting false instead of an error when it does not exist
func ReadIfExists(fsys FileSystem, path string) ([]byte, bool, error) {
	if _, err := fsys.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}

	data, err := fsys.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read file: %w", err)
	}
	return data, true, nil
}

// WriteAtomic replaces path with data by writing a sibling temp file and
// renaming it over the target, so readers see either the old or the new
// content and never a partial write. The parent directory is created if needed.
func WriteAtomic(fsys FileSystem, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := fsys.WriteFile(tmpFile, data, 0644); err != nil {
		_ = fsys.Remove(tmpFile)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Rename temp file to actual file (atomic on most filesystems)
	if err := fsys.Rename(tmpFile, path); err != nil {
		_ = fsys.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
