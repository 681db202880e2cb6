package query

import (
	"github.com/iomz/hito/types"
)

// Summary counts records per category for filter badges
type Summary struct {
	Total         int            `json:"total" yaml:"total"`
	Categorized   int            `json:"categorized" yaml:"categorized"`
	Uncategorized int            `json:"uncategorized" yaml:"uncategorized"`
	PerCategory   map[string]int `json:"per_category" yaml:"per_category"`
}

// Summarize counts how the records are covered by the assignment map.
// An image assigned the same category twice is counted once for it.
func Summarize(records []types.ImageRecord, assignments types.AssignmentMap) Summary {
	s := Summary{
		Total:       len(records),
		PerCategory: make(map[string]int),
	}

	for _, record := range records {
		list := assignments.For(record.Path)
		if len(list) == 0 {
			s.Uncategorized++
			continue
		}
		s.Categorized++

		seen := make(map[string]bool, len(list))
		for _, a := range list {
			if seen[a.CategoryID] {
				continue
			}
			seen[a.CategoryID] = true
			s.PerCategory[a.CategoryID]++
		}
	}

	return s
}
