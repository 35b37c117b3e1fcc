package company

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Key selects the field a collection is sorted by.
type Key string

// Sortable keys.
const (
	KeyName       Key = "name"
	KeyWebsite    Key = "website"
	KeyCategory   Key = "category"
	KeyCohort     Key = "cohort"
	KeyLocation   Key = "location"
	KeyTags       Key = "tags"
	KeySimilarity Key = "similarity"
)

// Order is the sort direction.
type Order string

// Sort directions.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseKey validates a sort key from the transport layer.
func ParseKey(s string) (Key, error) {
	switch k := Key(s); k {
	case KeyName, KeyWebsite, KeyCategory, KeyCohort, KeyLocation, KeyTags, KeySimilarity:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// ParseOrder validates a sort order, defaulting to descending.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "":
		return Desc, nil
	case string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Sort returns a new slice ordered by key. String fields compare
// case-insensitively with locale-aware collation; similarity compares
// numerically with missing scores defaulting to 0; tags compare by their
// joined lowercase string. Missing string values sort first ascending and
// last descending, so the two directions remain exact reverses.
func Sort(results []Scored, key Key, order Order) []Scored {
	out := make([]Scored, len(results))
	copy(out, results)

	// Collators keep internal buffers, so build one per call rather than
	// sharing across concurrent searches.
	col := collate.New(language.English, collate.IgnoreCase)

	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareByKey(col, out[i], out[j], key)
		if order == Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// compareByKey returns an ascending-order comparison: negative when a sorts
// before b.
func compareByKey(col *collate.Collator, a, b Scored, key Key) int {
	if key == KeySimilarity {
		switch {
		case a.Similarity < b.Similarity:
			return -1
		case a.Similarity > b.Similarity:
			return 1
		default:
			return 0
		}
	}

	av := stringValue(a.Company, key)
	bv := stringValue(b.Company, key)
	switch {
	case av == "" && bv == "":
		return 0
	case av == "":
		return -1
	case bv == "":
		return 1
	}
	return col.CompareString(av, bv)
}

func stringValue(c Company, key Key) string {
	switch key {
	case KeyName:
		return c.Name
	case KeyWebsite:
		return c.Website
	case KeyCategory:
		return c.Category
	case KeyCohort:
		return c.Cohort
	case KeyLocation:
		return c.Location
	case KeyTags:
		return strings.ToLower(strings.Join(c.Tags, ", "))
	default:
		return ""
	}
}
