package hito

import (
	"path/filepath"

	"github.com/iomz/hito/hito/fileops"
	"github.com/iomz/hito/hito/sidecar"
	"github.com/iomz/hito/types"
)

// LoadImage returns the image as a data URL
func (a *App) LoadImage(image string) (string, error) {
	return fileops.LoadDataURL(image)
}

// TrashImage sends image to the trash and forgets its assignments
func (a *App) TrashImage(image string) (string, error) {
	image = filepath.Clean(image)
	trashed, err := fileops.Trash(image)
	if err != nil {
		return "", err
	}

	err = a.editAssignments(image, func(m types.AssignmentMap) error {
		sidecar.Forget(m, image)
		return nil
	})
	a.logger.Info("image trashed", "image", image, "trash", trashed)
	return trashed, err
}

// CopyImage copies image into dstDir. The copy starts with the same categories.
func (a *App) CopyImage(image, dstDir string) (string, error) {
	image = filepath.Clean(image)
	copied, err := fileops.Copy(image, dstDir)
	if err != nil {
		return "", err
	}

	src, err := a.Assignments(filepath.Dir(image))
	if err != nil {
		return copied, err
	}
	list := src.For(image)
	if len(list) == 0 {
		return copied, nil
	}

	err = a.editAssignments(copied, func(m types.AssignmentMap) error {
		m[copied] = append([]types.CategoryAssignment(nil), list...)
		return nil
	})
	return copied, err
}

// MoveImage moves image into dstDir, carrying its categories to the
// destination directory's sidecar
func (a *App) MoveImage(image, dstDir string) (string, error) {
	image = filepath.Clean(image)
	moved, err := fileops.Move(image, dstDir)
	if err != nil {
		return "", err
	}

	var carried []types.CategoryAssignment
	err = a.editAssignments(image, func(m types.AssignmentMap) error {
		carried = m.For(image)
		sidecar.Forget(m, image)
		return nil
	})
	if err != nil || len(carried) == 0 {
		return moved, err
	}

	err = a.editAssignments(moved, func(m types.AssignmentMap) error {
		m[moved] = carried
		return nil
	})
	a.logger.Info("image moved", "image", image, "to", moved)
	return moved, err
}

// RemoveCategory deletes a category from the config store and strips it
// from the assignments of the given directories
func (a *App) RemoveCategory(id string, dirs ...string) error {
	if err := a.store.RemoveCategory(id); err != nil {
		return err
	}

	for _, dir := range dirs {
		path, err := a.SidecarPath(filepath.Clean(dir))
		if err != nil {
			return err
		}
		err = a.sidecarLock.Execute(func() error {
			m, err := sidecar.Load(path)
			if err != nil {
				return err
			}
			if sidecar.RemoveCategory(m, id) == 0 {
				return nil
			}
			return sidecar.Save(path, m)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
