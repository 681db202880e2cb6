// Package types holds the value types shared by the hito packages: image and
// directory records, category assignments, filter and sort settings,
// and the persisted configuration document.
package types

// ImageRecord is one enumerated image file.
// Path is the identity of the record; no two records in one collection share it.
type ImageRecord struct {
	// Path is the absolute path of the image file
	Path string `json:"path" yaml:"path"`

	// Size is the file size in bytes. nil means unknown, not zero
	Size *uint64 `json:"size,omitempty" yaml:"size,omitempty"`

	// Created is the creation timestamp as ISO-8601 text. Empty means unknown
	Created string `json:"created,omitempty" yaml:"created,omitempty"`
}

// SizeOrZero returns the size in bytes, treating an unknown size as zero
func (r ImageRecord) SizeOrZero() uint64 {
	if r.Size == nil {
		return 0
	}
	return *r.Size
}

// NewImageRecord builds a record with a known size
func NewImageRecord(path string, size uint64, created string) ImageRecord {
	return ImageRecord{Path: path, Size: &size, Created: created}
}

// DirectoryRecord is a sub-directory entry found next to the images
type DirectoryRecord struct {
	Path    string `json:"path" yaml:"path"`
	Created string `json:"created,omitempty" yaml:"created,omitempty"`
}

// DirectoryContents is the result of enumerating one directory.
// Directories come first in the UI, then images.
type DirectoryContents struct {
	Directories []DirectoryRecord `json:"directories" yaml:"directories"`
	Images      []ImageRecord     `json:"images" yaml:"images"`
}
