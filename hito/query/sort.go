package query

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/iomz/hito/types"
)

// sortRecords orders records in place.
//
// The ascending order is computed with a stable sort and descending is that
// order reversed. Every missing-data rule therefore flips together with the
// direction: records without a creation date come last ascending and first
// descending, never-categorized records come first ascending and last
// descending. SortNone leaves the input order untouched in both directions.
func sortRecords(records []types.ImageRecord, assignments types.AssignmentMap, spec types.SortSpec) {
	switch spec.Key {
	case types.SortName:
		keys := make([]string, len(records))
		for i, r := range records {
			keys[i] = strings.ToLower(baseName(r.Path))
		}
		sort.Stable(&keyedSlice[string]{records: records, keys: keys, less: func(a, b string) bool {
			return a < b
		}})
	case types.SortSize:
		keys := make([]uint64, len(records))
		for i, r := range records {
			keys[i] = r.SizeOrZero()
		}
		sort.Stable(&keyedSlice[uint64]{records: records, keys: keys, less: func(a, b uint64) bool {
			return a < b
		}})
	case types.SortDateCreated:
		// unknown creation dates sort after every known one
		sortByTimestamp(records, func(r types.ImageRecord) (time.Time, bool) {
			return types.ParseTimestamp(r.Created)
		}, false)
	case types.SortLastCategorized:
		// never categorized sorts as the oldest possible date
		sortByTimestamp(records, func(r types.ImageRecord) (time.Time, bool) {
			return assignments.Latest(r.Path)
		}, true)
	default:
		return
	}

	if spec.Direction == types.Descending {
		slices.Reverse(records)
	}
}

// sortByTimestamp stably sorts by a timestamp computed once per record.
// Records without a timestamp compare equal to each other. missingFirst puts
// them before every real timestamp, otherwise after.
func sortByTimestamp(records []types.ImageRecord, extract func(types.ImageRecord) (time.Time, bool), missingFirst bool) {
	keys := make([]timestampKey, len(records))
	for i, r := range records {
		t, ok := extract(r)
		keys[i] = timestampKey{t: t, ok: ok}
	}

	sort.Stable(&keyedSlice[timestampKey]{records: records, keys: keys, less: func(a, b timestampKey) bool {
		switch {
		case a.ok && b.ok:
			return a.t.Before(b.t)
		case !a.ok && !b.ok:
			return false
		case !a.ok:
			return missingFirst
		default:
			return !missingFirst
		}
	}})
}

type timestampKey struct {
	t  time.Time
	ok bool
}

// keyedSlice sorts records together with precomputed keys so that basename
// folding and timestamp parsing happen once per record, not once per comparison
type keyedSlice[K any] struct {
	records []types.ImageRecord
	keys    []K
	less    func(a, b K) bool
}

func (s *keyedSlice[K]) Len() int           { return len(s.records) }
func (s *keyedSlice[K]) Less(i, j int) bool { return s.less(s.keys[i], s.keys[j]) }
func (s *keyedSlice[K]) Swap(i, j int) {
	s.records[i], s.records[j] = s.records[j], s.records[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}
