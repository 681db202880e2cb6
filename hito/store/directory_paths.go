package store

import (
	"maps"
	"path/filepath"

	"github.com/iomz/hito/types"
)

// GetDirectoryPath returns the custom sidecar location recorded for dir
func (s *ConfigStore) GetDirectoryPath(dir string) (string, bool, error) {
	doc, err := s.Load()
	if err != nil {
		return "", false, err
	}

	path, ok := doc.DirectoryPaths[filepath.Clean(dir)]
	return path, ok, nil
}

// SetDirectoryPath records a custom sidecar location for dir, replacing any
// previous value. Other fields of the document are left untouched.
func (s *ConfigStore) SetDirectoryPath(dir, path string) error {
	key := filepath.Clean(dir)
	return s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		if doc.DirectoryPaths == nil {
			doc.DirectoryPaths = make(map[string]string)
		}
		doc.DirectoryPaths[key] = path
		return doc, nil
	})
}

// RemoveDirectoryPath forgets the custom sidecar location for dir.
// Removing an unknown directory is a no-op.
func (s *ConfigStore) RemoveDirectoryPath(dir string) error {
	key := filepath.Clean(dir)
	return s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		delete(doc.DirectoryPaths, key)
		return doc, nil
	})
}

// DirectoryPaths returns a copy of the whole directory index
func (s *ConfigStore) DirectoryPaths() (map[string]string, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	paths := make(map[string]string, len(doc.DirectoryPaths))
	maps.Copy(paths, doc.DirectoryPaths)
	return paths, nil
}
