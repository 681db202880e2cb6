package sidecar

import (
	"slices"
	"time"

	"github.com/iomz/hito/types"
)

// The edit helpers change m in place; m must be non-nil (Load never returns nil).

// Assign gives image the category. Assigning a category the image already
// carries keeps a single entry and refreshes its timestamp.
func Assign(m types.AssignmentMap, image, categoryID string, at time.Time) {
	stamp := types.FormatTimestamp(at)
	list := m[image]
	for i := range list {
		if list[i].CategoryID == categoryID {
			list[i].AssignedAt = stamp
			return
		}
	}
	m[image] = append(list, types.CategoryAssignment{CategoryID: categoryID, AssignedAt: stamp})
}

// Unassign removes every entry of the category from image and reports
// whether any was present.
// An image left with no categories is dropped from the map.
func Unassign(m types.AssignmentMap, image, categoryID string) bool {
	list := m[image]
	n := len(list)
	list = slices.DeleteFunc(list, func(a types.CategoryAssignment) bool {
		return a.CategoryID == categoryID
	})
	if len(list) == n {
		return false
	}

	if len(list) == 0 {
		delete(m, image)
	} else {
		m[image] = list
	}
	return true
}

// Toggle assigns the category when absent and removes it when present.
// It returns true when the image carries the category afterwards.
func Toggle(m types.AssignmentMap, image, categoryID string, at time.Time) bool {
	if Unassign(m, image, categoryID) {
		return false
	}
	Assign(m, image, categoryID, at)
	return true
}

// Forget drops every assignment of image, used after it is deleted or moved away
func Forget(m types.AssignmentMap, image string) {
	delete(m, image)
}

// Rename carries the assignments of from over to to, replacing any the
// destination had
func Rename(m types.AssignmentMap, from, to string) {
	list, ok := m[from]
	if !ok || from == to {
		return
	}
	delete(m, from)
	m[to] = list
}

// RemoveCategory strips a category from every image, used when the
// category itself is deleted. It returns the number of images touched.
func RemoveCategory(m types.AssignmentMap, categoryID string) int {
	touched := 0
	for image := range m {
		if Unassign(m, image, categoryID) {
			touched++
		}
	}
	return touched
}
