package company

import "strings"

// FilterSet narrows a company collection. All populated criteria must hold
// (conjunctive AND). Category and cohort match exactly; location is a
// case-insensitive substring; Term is a free-text match over the visible
// fields; PodcastOnly requires the podcast flag.
type FilterSet struct {
	Category    string
	Cohort      string
	Location    string
	Term        string
	PodcastOnly bool
}

// IsEmpty reports whether no criteria are set.
func (f FilterSet) IsEmpty() bool {
	return f.Category == "" && f.Cohort == "" && f.Location == "" &&
		f.Term == "" && !f.PodcastOnly
}

// Matches reports whether c passes every populated criterion.
func (f FilterSet) Matches(c Company) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Cohort != "" && c.Cohort != f.Cohort {
		return false
	}
	if f.Location != "" &&
		!strings.Contains(strings.ToLower(c.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Term != "" && !matchesTerm(c, f.Term) {
		return false
	}
	if f.PodcastOnly && !c.HasPodcastContent {
		return false
	}
	return true
}

// matchesTerm checks name, description, tags, category, and location for a
// case-insensitive substring.
func matchesTerm(c Company, term string) bool {
	needle := strings.ToLower(term)
	fields := make([]string, 0, 4+len(c.Tags))
	fields = append(fields, c.Name, c.Description, c.Category, c.Location)
	fields = append(fields, c.Tags...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Filter returns the subset of companies matching f, preserving input order.
func Filter(companies []Company, f FilterSet) []Company {
	if f.IsEmpty() {
		return companies
	}
	out := make([]Company, 0, len(companies))
	for _, c := range companies {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// FilterScored applies f to scored results, preserving scores and order.
func FilterScored(results []Scored, f FilterSet) []Scored {
	if f.IsEmpty() {
		return results
	}
	out := make([]Scored, 0, len(results))
	for _, r := range results {
		if f.Matches(r.Company) {
			out = append(out, r)
		}
	}
	return out
}
