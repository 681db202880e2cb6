package query

import (
	"strings"

	"github.com/iomz/hito/types"
)

// matchesFilter checks a record against every clause; clauses are ANDed
func matchesFilter(record types.ImageRecord, assignments types.AssignmentMap, filter types.FilterSpec) bool {
	return matchesCategory(record, assignments, filter.Category) &&
		matchesName(record, filter.Name) &&
		matchesSize(record, filter.Size)
}

func matchesCategory(record types.ImageRecord, assignments types.AssignmentMap, clause types.CategoryFilter) bool {
	switch clause.Kind {
	case types.CategoryUncategorized:
		return !assignments.IsCategorized(record.Path)
	case types.CategoryExact:
		if clause.ID == "" {
			return true
		}
		return assignments.HasCategory(record.Path, clause.ID)
	default:
		return true
	}
}

// matchesName compares the lower-cased pattern with the lower-cased file name.
// The directory part of the path never participates.
func matchesName(record types.ImageRecord, clause types.NameFilter) bool {
	if clause.Pattern == "" {
		return true
	}

	name := strings.ToLower(baseName(record.Path))
	pattern := strings.ToLower(clause.Pattern)

	switch clause.Operator {
	case types.NameStartsWith:
		return strings.HasPrefix(name, pattern)
	case types.NameEndsWith:
		return strings.HasSuffix(name, pattern)
	case types.NameExact:
		return name == pattern
	default:
		return strings.Contains(name, pattern)
	}
}

// matchesSize applies the size clause. An unknown record size counts as zero.
// Absent thresholds turn the clause into a no-op.
func matchesSize(record types.ImageRecord, clause types.SizeFilter) bool {
	size := record.SizeOrZero()

	switch clause.Operator {
	case types.SizeLargerThan:
		limit, ok := clause.Value.Bytes()
		if !ok {
			return true
		}
		return size > limit
	case types.SizeLessThan:
		limit, ok := clause.Value.Bytes()
		if !ok {
			return true
		}
		return size < limit
	case types.SizeBetween:
		a, okA := clause.Value.Bytes()
		b, okB := clause.Value2.Bytes()
		if !okA || !okB {
			return true
		}
		low, high := min(a, b), max(a, b)
		return size >= low && size <= high
	default:
		return true
	}
}
