// Package catalog serves the browsable company directory: filtered and
// sorted listings plus the distinct values that populate filter dropdowns.
package catalog

import (
	"github.com/seedfolio/seedfolio/internal/domain/company"
)

// Service answers directory queries over the loaded snapshot.
type Service struct {
	companies []company.Company
}

// New creates a catalog service.
func New(companies []company.Company) *Service {
	return &Service{companies: companies}
}

// List returns companies matching filters, ordered by key and order.
func (s *Service) List(filters company.FilterSet, key company.Key, order company.Order) []company.Scored {
	results := company.Unscored(company.Filter(s.companies, filters))
	return company.Sort(results, key, order)
}

// FilterOptions holds the distinct values available for each filter field.
type FilterOptions struct {
	Categories []string
	Cohorts    []string
	Locations  []string
	Tags       []string
}

// Options returns the distinct filter values across the whole snapshot.
func (s *Service) Options() FilterOptions {
	return FilterOptions{
		Categories: company.UniqueValues(s.companies, company.KeyCategory),
		Cohorts:    company.UniqueValues(s.companies, company.KeyCohort),
		Locations:  company.UniqueValues(s.companies, company.KeyLocation),
		Tags:       company.UniqueValues(s.companies, company.KeyTags),
	}
}

// GroupBy buckets the snapshot by a field value. Companies with an empty
// value land under "Unknown".
func (s *Service) GroupBy(key company.Key) map[string][]company.Company {
	return company.GroupBy(s.companies, key)
}
