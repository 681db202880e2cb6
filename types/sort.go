package types

// SortKey selects the attribute images are ordered by
type SortKey int

const (
	// SortNone keeps the input order
	SortNone SortKey = iota
	SortName
	SortSize
	SortDateCreated
	SortLastCategorized
)

// String returns the canonical UI spelling of the key
func (k SortKey) String() string {
	switch k {
	case SortName:
		return "name"
	case SortSize:
		return "size"
	case SortDateCreated:
		return "dateCreated"
	case SortLastCategorized:
		return "lastCategorized"
	default:
		return ""
	}
}

// ParseSortKey accepts name, size, dateCreated and lastCategorized in any case
// and with optional '-' or '_' separators. Unknown keys yield SortNone, which
// passes records through in input order.
func ParseSortKey(value string) SortKey {
	switch normalizeKeyword(value) {
	case "name":
		return SortName
	case "size":
		return SortSize
	case "datecreated", "created":
		return SortDateCreated
	case "lastcategorized", "categorized":
		return SortLastCategorized
	default:
		return SortNone
	}
}

// SortDirection is ascending unless stated otherwise
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// String returns "asc" or "desc"
func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseSortDirection maps "desc" and "descending" to Descending and
// everything else to Ascending
func ParseSortDirection(value string) SortDirection {
	switch normalizeKeyword(value) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

// SortSpec is the ordering applied after filtering
type SortSpec struct {
	Key       SortKey
	Direction SortDirection
}

// ParseSortSpec builds a SortSpec from UI text
func ParseSortSpec(key, direction string) SortSpec {
	return SortSpec{Key: ParseSortKey(key), Direction: ParseSortDirection(direction)}
}
