// Package scan enumerates the sub-directories and image files of one directory.
package scan

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/iomz/hito/types"
)

// DefaultMinSize skips thumbnails and icons: images smaller than 15 KiB are not listed
const DefaultMinSize uint64 = 15 * 1024

var (
	// ErrNotExist is returned when the directory does not exist
	ErrNotExist = errors.New("path does not exist")

	// ErrNotDirectory is returned when the path is not a directory
	ErrNotDirectory = errors.New("path is not a directory")
)

// imageExtensions are matched case-insensitively, without the dot
var imageExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp", "webp", "svg", "ico"}

// IsImage reports whether path has one of the recognized image extensions
func IsImage(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return slices.Contains(imageExtensions, ext)
}

// Option configures List
type Option func(*options)

type options struct {
	minSize uint64
	logger  *slog.Logger
}

// WithMinSize sets the smallest file size, in bytes, that is listed
func WithMinSize(bytes uint64) Option {
	return func(o *options) {
		o.minSize = bytes
	}
}

// WithLogger sets the logger used for debug events
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// List returns the sub-directories and images directly inside dir, each
// sorted by path. Entries that cannot be stat'ed are skipped.
func List(dir string, opts ...Option) (types.DirectoryContents, error) {
	o := options{minSize: DefaultMinSize, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return types.DirectoryContents{}, fmt.Errorf("%w: %s", ErrNotExist, dir)
	}
	if err != nil {
		return types.DirectoryContents{}, fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return types.DirectoryContents{}, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return types.DirectoryContents{}, fmt.Errorf("failed to read directory: %w", err)
	}

	contents := types.DirectoryContents{
		Directories: []types.DirectoryRecord{},
		Images:      []types.ImageRecord{},
	}
	var skipped int
	var total uint64

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Follow symlinks, like the file browser does
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		created := types.FormatTimestamp(fi.ModTime())

		switch {
		case fi.IsDir():
			contents.Directories = append(contents.Directories, types.DirectoryRecord{Path: path, Created: created})
		case fi.Mode().IsRegular() && IsImage(path):
			size := uint64(fi.Size())
			if size < o.minSize {
				skipped++
				continue
			}
			total += size
			contents.Images = append(contents.Images, types.NewImageRecord(path, size, created))
		}
	}

	slices.SortFunc(contents.Directories, func(a, b types.DirectoryRecord) int {
		return strings.Compare(a.Path, b.Path)
	})
	slices.SortFunc(contents.Images, func(a, b types.ImageRecord) int {
		return strings.Compare(a.Path, b.Path)
	})

	o.logger.Debug("directory scanned",
		"dir", dir,
		"directories", len(contents.Directories),
		"images", len(contents.Images),
		"skipped_small", skipped,
		"total_size", humanize.IBytes(total))

	return contents, nil
}
