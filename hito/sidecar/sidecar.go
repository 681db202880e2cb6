// Package sidecar reads and writes the per-directory assignment file that
// records which categories each image carries.
//
// The file is a JSON object keyed by image path:
//
//	{
//	  "/photos/cat.jpg": [
//	    {"category_id": "c1", "assigned_at": "2024-01-02T10:00:00Z"}
//	  ]
//	}
package sidecar

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/iomz/hito/hito/storage"
	"github.com/iomz/hito/types"
)

// DefaultFileName is the sidecar file created inside an image directory
const DefaultFileName = ".hito.json"

// ErrMalformed is returned when a sidecar file exists but is not valid JSON
var ErrMalformed = errors.New("malformed assignment file")

// Option configures Load and Save
type Option func(*options)

type options struct {
	fs storage.FileSystem
}

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs storage.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

func buildOptions(opts []Option) options {
	o := options{fs: &storage.OSFileSystem{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Path returns the sidecar location for dir. An empty override selects
// DefaultFileName inside dir; a relative override is resolved against dir;
// an absolute override is used as is.
func Path(dir, override string) string {
	switch {
	case override == "":
		return filepath.Join(dir, DefaultFileName)
	case filepath.IsAbs(override):
		return filepath.Clean(override)
	default:
		return filepath.Join(dir, override)
	}
}

// Load reads the assignment map at path. A missing or empty file yields an
// empty, non-nil map.
func Load(path string, opts ...Option) (types.AssignmentMap, error) {
	o := buildOptions(opts)

	data, exists, err := storage.ReadIfExists(o.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	if !exists || len(data) == 0 {
		return types.AssignmentMap{}, nil
	}

	var m types.AssignmentMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if m == nil {
		m = types.AssignmentMap{}
	}
	return m, nil
}

// Save atomically replaces the file at path with m. Images whose
// assignment list is empty are not written.
func Save(path string, m types.AssignmentMap, opts ...Option) error {
	o := buildOptions(opts)

	out := make(types.AssignmentMap, len(m))
	for image, list := range m {
		if len(list) > 0 {
			out[image] = list
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal assignments: %w", err)
	}

	if err := storage.WriteAtomic(o.fs, path, data); err != nil {
		return fmt.Errorf("failed to save assignments: %w", err)
	}
	return nil
}
