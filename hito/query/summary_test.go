package query_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iomz/hito/hito/query"
	"github.com/iomz/hito/testutil"
	"github.com/iomz/hito/types"
)

func TestSummarize(t *testing.T) {
	g := testutil.LoadGallery(t)

	got := query.Summarize(g.Records, g.Assignments)
	want := query.Summary{
		Total:         6,
		Categorized:   3,
		Uncategorized: 3,
		PerCategory: map[string]int{
			"animals":   1,
			"fruit":     2,
			"favorites": 1,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	t.Run("duplicate category counted once per image", func(t *testing.T) {
		records := []types.ImageRecord{{Path: "/x.jpg"}}
		assignments := types.AssignmentMap{"/x.jpg": {
			{CategoryID: "a", AssignedAt: "2024-01-01"},
			{CategoryID: "a", AssignedAt: "2024-01-02"},
		}}
		s := query.Summarize(records, assignments)
		if s.PerCategory["a"] != 1 {
			t.Errorf("expected 1, got %d", s.PerCategory["a"])
		}
	})
}
