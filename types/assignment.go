package types

import "time"

// CategoryAssignment links an image to a user-defined category at a point in time
type CategoryAssignment struct {
	CategoryID string `json:"category_id" yaml:"category_id"`

	// AssignedAt is ISO-8601 text. An unparsable value still counts as an
	// assignment but is ignored when ordering by last-categorized time.
	AssignedAt string `json:"assigned_at" yaml:"assigned_at"`
}

// AssignmentMap maps an image path to its category assignments.
// The order of each slice is not meaningful; "latest" is always computed.
// A missing entry is the same as an empty slice.
type AssignmentMap map[string][]CategoryAssignment

// For returns the assignments of an image, nil when it has none
func (m AssignmentMap) For(path string) []CategoryAssignment {
	if m == nil {
		return nil
	}
	return m[path]
}

// IsCategorized reports whether the image has at least one assignment
func (m AssignmentMap) IsCategorized(path string) bool {
	return len(m.For(path)) > 0
}

// HasCategory reports whether the image carries the given category id.
// Comparison is exact and case-sensitive.
func (m AssignmentMap) HasCategory(path, categoryID string) bool {
	for _, a := range m.For(path) {
		if a.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// Latest returns the most recent parseable assignment time of an image.
// The boolean is false when the image has no assignment with a valid timestamp.
func (m AssignmentMap) Latest(path string) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, a := range m.For(path) {
		t, ok := ParseTimestamp(a.AssignedAt)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	return latest, found
}

// Clone returns a deep copy so callers can edit without touching the original
func (m AssignmentMap) Clone() AssignmentMap {
	out := make(AssignmentMap, len(m))
	for path, list := range m {
		out[path] = append([]CategoryAssignment(nil), list...)
	}
	return out
}
