package hito

import (
	"errors"
	"os"

	"github.com/iomz/hito/hito/fileops"
	"github.com/iomz/hito/hito/scan"
	"github.com/iomz/hito/hito/sidecar"
	"github.com/iomz/hito/hito/store"
)

// IsNotFound reports whether err means a missing category, hotkey, file or directory
func IsNotFound(err error) bool {
	return isAny(err, store.ErrNotFound, ErrUnknownCategory, scan.ErrNotExist, os.ErrNotExist)
}

// IsInvalid reports whether err was caused by bad caller input rather than
// by the environment
func IsInvalid(err error) bool {
	return isAny(err,
		store.ErrInvalid,
		scan.ErrNotDirectory,
		fileops.ErrNotFile,
		fileops.ErrNoParent,
		fileops.ErrExists,
	)
}

// IsCorrupt reports whether a persisted file could not be parsed
func IsCorrupt(err error) bool {
	return isAny(err, store.ErrConfigCorrupt, sidecar.ErrMalformed)
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
