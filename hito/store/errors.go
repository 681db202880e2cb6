package store

import (
	"errors"

	"github.com/iomz/hito/hito/storage"
)

var (
	// ErrConfigCorrupt is returned when the config file exists but is not a valid document
	ErrConfigCorrupt = errors.New("config file is corrupt")

	// ErrLockUnavailable is returned when another process holds the config file lock
	ErrLockUnavailable = storage.ErrLockUnavailable

	// ErrInvalid is returned when a mutation would store an invalid document
	ErrInvalid = errors.New("invalid config")

	// ErrNotFound is returned when updating or removing an id that does not exist
	ErrNotFound = errors.New("not found")
)
