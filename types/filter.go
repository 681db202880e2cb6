package types

import (
	"math"
	"strconv"
	"strings"
)

// UncategorizedFilterValue is the category filter value selecting images without assignments
const UncategorizedFilterValue = "uncategorized"

// CategoryFilterKind selects how the category clause constrains records
type CategoryFilterKind int

const (
	// CategoryAny imposes no constraint
	CategoryAny CategoryFilterKind = iota
	// CategoryUncategorized keeps images with no assignments
	CategoryUncategorized
	// CategoryExact keeps images carrying a specific category id
	CategoryExact
)

// String returns the string representation of the CategoryFilterKind
func (k CategoryFilterKind) String() string {
	switch k {
	case CategoryAny:
		return "any"
	case CategoryUncategorized:
		return "uncategorized"
	case CategoryExact:
		return "exact"
	default:
		return "unknown"
	}
}

// CategoryFilter is the category clause of a FilterSpec
type CategoryFilter struct {
	Kind CategoryFilterKind
	// ID is only meaningful for CategoryExact
	ID string
}

// ParseCategoryFilter maps UI input to a category clause.
// "" selects nothing, "uncategorized" the sentinel, anything else an exact id.
func ParseCategoryFilter(value string) CategoryFilter {
	switch value {
	case "":
		return CategoryFilter{Kind: CategoryAny}
	case UncategorizedFilterValue:
		return CategoryFilter{Kind: CategoryUncategorized}
	default:
		return CategoryFilter{Kind: CategoryExact, ID: value}
	}
}

// NameOperator selects how the name pattern is matched against file names
type NameOperator int

const (
	// NameContains is the default operator
	NameContains NameOperator = iota
	NameStartsWith
	NameEndsWith
	NameExact
)

// String returns the canonical UI spelling of the operator
func (op NameOperator) String() string {
	switch op {
	case NameStartsWith:
		return "startsWith"
	case NameEndsWith:
		return "endsWith"
	case NameExact:
		return "exact"
	default:
		return "contains"
	}
}

// ParseNameOperator accepts contains, startsWith, endsWith and exact in any
// case, with or without '-' or '_' separators. Anything else is NameContains.
func ParseNameOperator(value string) NameOperator {
	switch normalizeKeyword(value) {
	case "startswith":
		return NameStartsWith
	case "endswith":
		return NameEndsWith
	case "exact":
		return NameExact
	default:
		return NameContains
	}
}

// NameFilter is the name clause of a FilterSpec. An empty pattern is a no-op.
type NameFilter struct {
	Pattern  string
	Operator NameOperator
}

// SizeOperator selects how the size thresholds constrain records
type SizeOperator int

const (
	// SizeAny imposes no constraint
	SizeAny SizeOperator = iota
	SizeLargerThan
	SizeLessThan
	SizeBetween
)

// String returns the canonical UI spelling of the operator
func (op SizeOperator) String() string {
	switch op {
	case SizeLargerThan:
		return "largerThan"
	case SizeLessThan:
		return "lessThan"
	case SizeBetween:
		return "between"
	default:
		return ""
	}
}

// ParseSizeOperator accepts largerThan, lessThan and between with the same
// leniency as ParseNameOperator. Unrecognized values yield SizeAny.
func ParseSizeOperator(value string) SizeOperator {
	switch normalizeKeyword(value) {
	case "largerthan", "greaterthan":
		return SizeLargerThan
	case "lessthan", "smallerthan":
		return SizeLessThan
	case "between":
		return SizeBetween
	default:
		return SizeAny
	}
}

// Threshold is an optional size threshold expressed in kibibytes
type Threshold struct {
	kib   uint64
	valid bool
}

// KiB returns a present threshold
func KiB(n uint64) Threshold {
	return Threshold{kib: n, valid: true}
}

// ParseThreshold parses UI text as an unsigned number of kibibytes.
// Empty or non-numeric text yields an absent threshold rather than an error,
// since the UI sends partial input while the user is typing.
func ParseThreshold(value string) Threshold {
	value = strings.TrimSpace(value)
	if value == "" {
		return Threshold{}
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return Threshold{}
	}
	return KiB(n)
}

// Present reports whether the threshold holds a value
func (t Threshold) Present() bool {
	return t.valid
}

// Bytes returns the threshold converted to bytes, saturating at
// math.MaxUint64 for thresholds too large to represent
func (t Threshold) Bytes() (uint64, bool) {
	if !t.valid {
		return 0, false
	}
	if t.kib > math.MaxUint64/1024 {
		return math.MaxUint64, true
	}
	return t.kib * 1024, true
}

// String renders the threshold as the UI would send it
func (t Threshold) String() string {
	if !t.valid {
		return ""
	}
	return strconv.FormatUint(t.kib, 10)
}

// SizeFilter is the size clause of a FilterSpec.
// LargerThan and LessThan use Value; Between uses both and does not assume
// they are ordered.
type SizeFilter struct {
	Operator SizeOperator
	Value    Threshold
	Value2   Threshold
}

// FilterSpec combines the optional clauses. All clauses are ANDed and the
// zero value keeps every record.
type FilterSpec struct {
	Category CategoryFilter
	Name     NameFilter
	Size     SizeFilter
}

// FilterInput is the loosely typed form of a FilterSpec as sent by a UI or
// typed on a command line
type FilterInput struct {
	Category       string `json:"category,omitempty" yaml:"category,omitempty"`
	NamePattern    string `json:"name_pattern,omitempty" yaml:"name_pattern,omitempty"`
	NameOperator   string `json:"name_operator,omitempty" yaml:"name_operator,omitempty"`
	SizeOperator   string `json:"size_operator,omitempty" yaml:"size_operator,omitempty"`
	SizeValue      string `json:"size_value,omitempty" yaml:"size_value,omitempty"`
	SizeValueUpper string `json:"size_value2,omitempty" yaml:"size_value2,omitempty"`
}

// Spec validates the input into a FilterSpec, degrading bad values to no-ops
func (in FilterInput) Spec() FilterSpec {
	return FilterSpec{
		Category: ParseCategoryFilter(in.Category),
		Name: NameFilter{
			Pattern:  in.NamePattern,
			Operator: ParseNameOperator(in.NameOperator),
		},
		Size: SizeFilter{
			Operator: ParseSizeOperator(in.SizeOperator),
			Value:    ParseThreshold(in.SizeValue),
			Value2:   ParseThreshold(in.SizeValueUpper),
		},
	}
}

// normalizeKeyword lowercases and drops '-', '_' and spaces
func normalizeKeyword(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if r == '-' || r == '_' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
