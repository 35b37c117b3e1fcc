// Package company holds the portfolio record model and the collection
// utilities (filter, sort, unique values) layered over it.
package company

import "strings"

// Company is a single portfolio record. The dataset is a read-only snapshot
// loaded at startup; identity fields never change after load.
type Company struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Cohort      string   `json:"cohort"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags,omitempty"`

	CrunchbaseLink   string `json:"crunchbaseLink,omitempty"`
	GoogleSearchLink string `json:"googleSearchLink,omitempty"`

	HasPodcastContent bool   `json:"hasPodcastContent,omitempty"`
	PodcastSearchLink string `json:"podcastSearchLink,omitempty"`

	// Embedding is populated from the dataset snapshot. May be absent;
	// such records are scored lexically only.
	Embedding []float32 `json:"embedding,omitempty"`
}

// SearchText concatenates name, description, category, and tags into the
// "full" searchable text variant used when embedding whole records.
func (c Company) SearchText() string {
	parts := make([]string, 0, 3+len(c.Tags))
	for _, p := range []string{c.Name, c.Description, c.Category} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	for _, t := range c.Tags {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Scored pairs a company with its per-search relevance. Instances live only
// for the duration of one search invocation.
type Scored struct {
	Company
	Similarity float64
	// HasScore distinguishes "scored 0" from "not scored" (empty query).
	HasScore bool
}

// Unscored wraps companies without similarity, for listings outside search.
func Unscored(companies []Company) []Scored {
	out := make([]Scored, len(companies))
	for i, c := range companies {
		out[i] = Scored{Company: c}
	}
	return out
}
