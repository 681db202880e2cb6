// Package hito ties the image browser together: it scans a directory,
// reads the category assignments kept next to the images, and runs the
// query engine over the result. Category, hotkey and directory settings
// live in the config store; assignment edits go to the sidecar file.
package hito

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/iomz/hito/hito/fileops"
	"github.com/iomz/hito/hito/query"
	"github.com/iomz/hito/hito/scan"
	"github.com/iomz/hito/hito/sidecar"
	"github.com/iomz/hito/hito/storage"
	"github.com/iomz/hito/hito/store"
	"github.com/iomz/hito/internal/validation"
	"github.com/iomz/hito/types"
)

// ErrUnknownCategory is returned when assigning a category id that is not configured
var ErrUnknownCategory = errors.New("unknown category")

// App is the backend of one running browser. It is safe for concurrent use.
type App struct {
	store    *store.ConfigStore
	dataFile string
	minSize  uint64
	logger   *slog.Logger
	now      func() time.Time

	// sidecarLock serializes read-modify-write cycles on assignment files
	sidecarLock *storage.LockManager
}

// Option configures an App
type Option func(*App)

// WithDataFile sets the sidecar file name used when a directory has no custom location
func WithDataFile(name string) Option {
	return func(a *App) {
		a.dataFile = name
	}
}

// WithMinImageSize sets the smallest image size, in bytes, that Browse lists
func WithMinImageSize(bytes uint64) Option {
	return func(a *App) {
		a.minSize = bytes
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithTimeFunc sets a custom time function for testing
func WithTimeFunc(fn func() time.Time) Option {
	return func(a *App) {
		a.now = fn
	}
}

// New creates an App backed by the given config store
func New(cfg *store.ConfigStore, opts ...Option) *App {
	a := &App{
		store:       cfg,
		minSize:     scan.DefaultMinSize,
		logger:      slog.Default(),
		now:         time.Now,
		sidecarLock: storage.NewLockManager(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewConfigStore opens the config store at path. Categories and hotkeys an
// edit adds or changes are validated; data already stored is left alone.
func NewConfigStore(path string, opts ...store.Option) *store.ConfigStore {
	base := []store.Option{store.WithValidator(validation.ValidateChange)}
	return store.NewConfigStore(path, append(base, opts...)...)
}

// Store returns the config store
func (a *App) Store() *store.ConfigStore {
	return a.store
}

// BrowseResult is one directory listing after filtering and sorting
type BrowseResult struct {
	Directory   string                  `json:"directory" yaml:"directory"`
	Directories []types.DirectoryRecord `json:"directories" yaml:"directories"`
	Images      []types.ImageRecord     `json:"images" yaml:"images"`
	Assignments types.AssignmentMap     `json:"assignments" yaml:"assignments"`

	// Summary counts the whole directory, not just the filtered images
	Summary query.Summary `json:"summary" yaml:"summary"`
}

// SidecarPath returns where the assignments of dir are kept: the custom
// location recorded in the config store, or the data file inside dir
func (a *App) SidecarPath(dir string) (string, error) {
	custom, ok, err := a.store.GetDirectoryPath(dir)
	if err != nil {
		return "", err
	}
	if ok && custom != "" {
		return custom, nil
	}
	return sidecar.Path(dir, a.dataFile), nil
}

// Assignments loads the assignment map of dir
func (a *App) Assignments(dir string) (types.AssignmentMap, error) {
	path, err := a.SidecarPath(dir)
	if err != nil {
		return nil, err
	}
	return storage.ExecuteWithResult(a.sidecarLock, func() (types.AssignmentMap, error) {
		return sidecar.Load(path)
	})
}

// Browse lists dir and applies filter and sort to its images
func (a *App) Browse(dir string, filter *types.FilterSpec, sort types.SortSpec) (*BrowseResult, error) {
	dir = filepath.Clean(dir)

	contents, err := scan.List(dir, scan.WithMinSize(a.minSize), scan.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	assignments, err := a.Assignments(dir)
	if err != nil {
		return nil, err
	}

	images := query.Execute(contents.Images, assignments, filter, sort)
	a.logger.Debug("browse", "dir", dir,
		"images", len(contents.Images), "matched", len(images),
		"sort", sort.Key.String(), "direction", sort.Direction.String())

	return &BrowseResult{
		Directory:   dir,
		Directories: contents.Directories,
		Images:      images,
		Assignments: assignments,
		Summary:     query.Summarize(contents.Images, assignments),
	}, nil
}

// editAssignments runs a read-modify-write on the sidecar of image's directory
func (a *App) editAssignments(image string, edit func(types.AssignmentMap) error) error {
	dir, err := fileops.ParentDirectory(image)
	if err != nil {
		return err
	}
	path, err := a.SidecarPath(dir)
	if err != nil {
		return err
	}

	return a.sidecarLock.Execute(func() error {
		m, err := sidecar.Load(path)
		if err != nil {
			return err
		}
		if err := edit(m); err != nil {
			return err
		}
		return sidecar.Save(path, m)
	})
}

// checkCategory fails unless id names a configured category
func (a *App) checkCategory(id string) error {
	doc, err := a.store.Load()
	if err != nil {
		return err
	}
	if doc.CategoryIndex(id) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, id)
	}
	return nil
}

// Assign gives image the category, refreshing the timestamp when it already has it
func (a *App) Assign(image, categoryID string) error {
	if err := a.checkCategory(categoryID); err != nil {
		return err
	}
	image = filepath.Clean(image)
	return a.editAssignments(image, func(m types.AssignmentMap) error {
		sidecar.Assign(m, image, categoryID, a.now())
		return nil
	})
}

// Unassign removes the category from image. It reports whether it was present.
func (a *App) Unassign(image, categoryID string) (bool, error) {
	image = filepath.Clean(image)
	var removed bool
	err := a.editAssignments(image, func(m types.AssignmentMap) error {
		removed = sidecar.Unassign(m, image, categoryID)
		return nil
	})
	return removed, err
}

// Toggle flips the category on image and reports whether it is now assigned
func (a *App) Toggle(image, categoryID string) (bool, error) {
	if err := a.checkCategory(categoryID); err != nil {
		return false, err
	}
	image = filepath.Clean(image)
	var assigned bool
	err := a.editAssignments(image, func(m types.AssignmentMap) error {
		assigned = sidecar.Toggle(m, image, categoryID, a.now())
		return nil
	})
	return assigned, err
}
