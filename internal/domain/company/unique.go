package company

import (
	"sort"
	"strings"
)

// UniqueValues extracts the distinct values of a field across companies,
// flattening the tags array, dropping empties, sorted ascending. Used to
// populate filter-option lists.
func UniqueValues(companies []Company, key Key) []string {
	seen := make(map[string]struct{})
	for _, c := range companies {
		switch key {
		case KeyTags:
			for _, t := range c.Tags {
				if t != "" {
					seen[t] = struct{}{}
				}
			}
		default:
			if v := stringValue(c, key); v != "" {
				seen[v] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// GroupBy buckets companies by a field value. Companies with an empty value
// for the field group under "Unknown". Tags group by their joined string.
func GroupBy(companies []Company, key Key) map[string][]Company {
	groups := make(map[string][]Company)
	for _, c := range companies {
		v := stringValue(c, key)
		if key == KeyTags {
			v = strings.Join(c.Tags, ", ")
		}
		if v == "" {
			v = "Unknown"
		}
		groups[v] = append(groups[v], c)
	}
	return groups
}
