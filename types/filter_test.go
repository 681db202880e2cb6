package types

import (
	"math"
	"testing"
	"time"
)

func TestParseCategoryFilter(t *testing.T) {
	tests := []struct {
		input    string
		expected CategoryFilter
	}{
		{"", CategoryFilter{Kind: CategoryAny}},
		{"uncategorized", CategoryFilter{Kind: CategoryUncategorized}},
		{"Uncategorized", CategoryFilter{Kind: CategoryExact, ID: "Uncategorized"}},
		{"cat-1", CategoryFilter{Kind: CategoryExact, ID: "cat-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseCategoryFilter(tt.input); got != tt.expected {
				t.Errorf("ParseCategoryFilter(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseOperators(t *testing.T) {
	nameTests := map[string]NameOperator{
		"contains":    NameContains,
		"startsWith":  NameStartsWith,
		"starts-with": NameStartsWith,
		"ENDS_WITH":   NameEndsWith,
		"exact":       NameExact,
		"":            NameContains,
		"regex":       NameContains,
	}
	for input, expected := range nameTests {
		if got := ParseNameOperator(input); got != expected {
			t.Errorf("ParseNameOperator(%q) = %v, want %v", input, got, expected)
		}
	}

	sizeTests := map[string]SizeOperator{
		"largerThan":  SizeLargerThan,
		"larger-than": SizeLargerThan,
		"lessThan":    SizeLessThan,
		"between":     SizeBetween,
		"":            SizeAny,
		"about":       SizeAny,
	}
	for input, expected := range sizeTests {
		if got := ParseSizeOperator(input); got != expected {
			t.Errorf("ParseSizeOperator(%q) = %v, want %v", input, got, expected)
		}
	}

	sortTests := map[string]SortKey{
		"name":             SortName,
		"size":             SortSize,
		"dateCreated":      SortDateCreated,
		"date-created":     SortDateCreated,
		"lastCategorized":  SortLastCategorized,
		"last_categorized": SortLastCategorized,
		"":                 SortNone,
		"colour":           SortNone,
	}
	for input, expected := range sortTests {
		if got := ParseSortKey(input); got != expected {
			t.Errorf("ParseSortKey(%q) = %v, want %v", input, got, expected)
		}
	}

	if ParseSortDirection("DESC") != Descending || ParseSortDirection("descending") != Descending {
		t.Error("expected desc and descending to parse as Descending")
	}
	if ParseSortDirection("up") != Ascending || ParseSortDirection("") != Ascending {
		t.Error("expected unknown directions to parse as Ascending")
	}
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		input   string
		present bool
		bytes   uint64
	}{
		{"0", true, 0},
		{"15", true, 15 * 1024},
		{" 8 ", true, 8 * 1024},
		{"", false, 0},
		{"-1", false, 0},
		{"1.5", false, 0},
		{"ten", false, 0},
		{"18014398509481983", true, 18014398509481983 * 1024},
		{"18014398509481984", true, math.MaxUint64},
		{"18446744073709551615", true, math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			th := ParseThreshold(tt.input)
			if th.Present() != tt.present {
				t.Fatalf("Present() = %v, want %v", th.Present(), tt.present)
			}
			b, ok := th.Bytes()
			if ok != tt.present || b != tt.bytes {
				t.Errorf("Bytes() = (%d, %v), want (%d, %v)", b, ok, tt.bytes, tt.present)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  time.Time
	}{
		{"2024-01-03T10:20:30Z", true, time.Date(2024, 1, 3, 10, 20, 30, 0, time.UTC)},
		{"2024-01-03T10:20:30.123Z", true, time.Date(2024, 1, 3, 10, 20, 30, 123000000, time.UTC)},
		{"2024-01-03T10:20:30+02:00", true, time.Date(2024, 1, 3, 8, 20, 30, 0, time.UTC)},
		{"2024-01-03T10:20:30", true, time.Date(2024, 1, 3, 10, 20, 30, 0, time.UTC)},
		{"2024-01-03", true, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"yesterday", false, time.Time{}},
		{"2024-13-01", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAssignmentMapLatest(t *testing.T) {
	m := AssignmentMap{
		"/a.jpg": {
			{CategoryID: "x", AssignedAt: "2024-01-01"},
			{CategoryID: "y", AssignedAt: "not a date"},
			{CategoryID: "z", AssignedAt: "2024-02-01"},
		},
		"/b.jpg": {{CategoryID: "x", AssignedAt: "bad"}},
		"/c.jpg": {},
	}

	if got, ok := m.Latest("/a.jpg"); !ok || !got.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Latest(/a.jpg) = (%v, %v)", got, ok)
	}
	if _, ok := m.Latest("/b.jpg"); ok {
		t.Error("expected no latest time when every timestamp is unparsable")
	}
	if !m.IsCategorized("/b.jpg") {
		t.Error("an unparsable timestamp must still count as categorized")
	}
	if m.IsCategorized("/c.jpg") || m.IsCategorized("/missing.jpg") {
		t.Error("empty and absent entries must be uncategorized")
	}

	var nilMap AssignmentMap
	if nilMap.IsCategorized("/a.jpg") {
		t.Error("nil map must treat every image as uncategorized")
	}
}

func TestConfigDocumentNormalize(t *testing.T) {
	doc := ConfigDocument{Hotkeys: []HotkeyData{{ID: "h1"}}}
	doc.Normalize()

	if doc.Categories == nil || doc.Hotkeys[0].Modifiers == nil {
		t.Error("Normalize should replace nil slices with empty ones")
	}
	if doc.DirectoryPaths != nil {
		t.Error("Normalize must leave an unpopulated directory map alone")
	}
}
