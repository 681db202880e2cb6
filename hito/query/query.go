// Package query provides the image query engine for hito.
// It filters and sorts an in-memory collection of image records using a
// separate category assignment map. It performs no I/O and holds no state,
// so it is safe for any number of concurrent callers.
package query

import (
	"github.com/iomz/hito/types"
)

// Execute runs the query and returns the filtered, then sorted, records.
//
// Filtering always completes before sorting so the comparator only runs over
// the reduced set. The input slice is never modified; the result is a new
// slice. Execute never fails: malformed timestamps and thresholds degrade to
// the documented sentinels and no-ops.
func Execute(records []types.ImageRecord, assignments types.AssignmentMap, filter *types.FilterSpec, sort types.SortSpec) []types.ImageRecord {
	result := make([]types.ImageRecord, 0, len(records))

	for _, record := range records {
		if filter != nil && !matchesFilter(record, assignments, *filter) {
			continue
		}
		result = append(result, record)
	}

	sortRecords(result, assignments, sort)

	return result
}
