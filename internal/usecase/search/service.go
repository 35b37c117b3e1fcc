// Package search implements hybrid lexical and semantic ranking over the
// company snapshot.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seedfolio/seedfolio/internal/domain"
	"github.com/seedfolio/seedfolio/internal/domain/company"
	"github.com/seedfolio/seedfolio/internal/domain/vector"
	"github.com/seedfolio/seedfolio/internal/logger"
	"github.com/seedfolio/seedfolio/internal/metrics"
)

// Service scores and gates companies against a free-text query.
type Service struct {
	companies    []company.Company
	embed        Embedder
	weights      Weights
	synonyms     synonymTable
	denylist     map[string][]string
	embedTimeout time.Duration
}

// Options tune the service. Zero-value tables fall back to the built-ins.
type Options struct {
	Weights      Weights
	Synonyms     map[string][]string
	Denylist     map[string][]string
	EmbedTimeout time.Duration
}

// New creates a search service over a loaded company snapshot.
func New(companies []company.Company, embed Embedder, opts Options) *Service {
	synonyms := opts.Synonyms
	if len(synonyms) == 0 {
		synonyms = defaultSynonyms
	}
	denylist := opts.Denylist
	if len(denylist) == 0 {
		denylist = defaultDenylist
	}
	return &Service{
		companies:    companies,
		embed:        embed,
		weights:      opts.Weights,
		synonyms:     synonyms,
		denylist:     denylist,
		embedTimeout: opts.EmbedTimeout,
	}
}

// Search runs the hybrid pipeline: score every company against the query,
// gate on similarity plus keyword evidence, add exact-phrase fallbacks, then
// apply filters. Results come back sorted by similarity descending.
//
// A blank query is a browse: every company passes (subject to filters),
// unscored, sorted by name ascending.
//
// Embedding failures degrade the search to lexical-only scoring rather than
// failing the request.
func (s *Service) Search(
	ctx context.Context, query string, filters company.FilterSet,
) ([]company.Scored, error) {
	if len(query) > domain.MaxEmbedTextLen {
		return nil, fmt.Errorf("query length %d: %w", len(query), domain.ErrQueryTooLong)
	}

	if strings.TrimSpace(query) == "" {
		results := company.Unscored(company.Filter(s.companies, filters))
		results = company.Sort(results, company.KeyName, company.Asc)
		metrics.SearchesTotal.WithLabelValues("browse").Inc()
		metrics.SearchResultCount.Observe(float64(len(results)))
		return results, nil
	}

	queryEmbedding := s.embedQuery(ctx, query)

	lowerQuery := strings.ToLower(query)
	scored := s.scoreAll(lowerQuery, queryEmbedding)

	primary := s.gate(scored, lowerQuery)
	results := s.withFallbacks(primary, scored, lowerQuery)

	results = company.FilterScored(results, filters)
	results = company.Sort(results, company.KeySimilarity, company.Desc)

	mode := "hybrid"
	if queryEmbedding == nil {
		mode = "lexical_only"
	}
	metrics.SearchesTotal.WithLabelValues(mode).Inc()
	metrics.SearchResultCount.Observe(float64(len(results)))

	return results, nil
}

// embedQuery vectorizes the query with a deadline. Returns nil on failure;
// the caller falls back to lexical scoring.
func (s *Service) embedQuery(ctx context.Context, query string) []float32 {
	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	result, err := s.embed.Embed(embedCtx, query)
	if err != nil {
		logger.FromContext(ctx).Warn("Embedding failed, degrading to lexical scoring",
			zap.Error(err))
		return nil
	}
	return result.Embedding
}

// scoreAll computes the fused relevance of every company. Companies without
// an embedding (or when the query embedding is absent) score lexically only.
func (s *Service) scoreAll(lowerQuery string, queryEmbedding []float32) []company.Scored {
	scored := make([]company.Scored, len(s.companies))
	for i, c := range s.companies {
		text := textScore(lowerQuery, strings.ToLower(c.Description))

		semantic := 0.0
		if queryEmbedding != nil && len(c.Embedding) > 0 {
			if sim, err := vector.CosineSimilarity(queryEmbedding, c.Embedding); err == nil {
				semantic = sim
			}
		}

		scored[i] = company.Scored{
			Company:    c,
			Similarity: s.weights.fuse(text, semantic),
			HasScore:   true,
		}
	}
	return scored
}

// gate keeps companies that clear the similarity floor AND show keyword
// evidence in their description, minus any denylisted names for this query.
func (s *Service) gate(scored []company.Scored, lowerQuery string) []company.Scored {
	queryWords := keywordTerms(lowerQuery, s.weights.MinKeywordLen)

	out := make([]company.Scored, 0, len(scored))
	for _, r := range scored {
		if r.Similarity < s.weights.MinSimilarity {
			continue
		}
		if s.isDenylisted(lowerQuery, r.Name) {
			continue
		}
		if !s.hasKeywordMatch(strings.ToLower(r.Description), queryWords, lowerQuery) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// withFallbacks appends companies whose description contains the exact query
// phrase but that failed the gate. Gated entries keep their position and
// score.
func (s *Service) withFallbacks(
	primary, scored []company.Scored, lowerQuery string,
) []company.Scored {
	seen := make(map[string]struct{}, len(primary))
	for _, r := range primary {
		seen[r.ID] = struct{}{}
	}

	out := primary
	for _, r := range scored {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(r.Description), lowerQuery) {
			out = append(out, r)
			seen[r.ID] = struct{}{}
		}
	}
	return out
}

// hasKeywordMatch checks whether any query word (or one of its synonyms)
// appears in the description text.
func (s *Service) hasKeywordMatch(lowerText string, queryWords []string, lowerQuery string) bool {
	for _, word := range queryWords {
		if strings.Contains(lowerText, word) {
			return true
		}
		for _, syn := range s.synonyms.lookup(word, lowerQuery) {
			if strings.Contains(lowerText, syn) {
				return true
			}
		}
	}
	return false
}

func (s *Service) isDenylisted(lowerQuery, name string) bool {
	lowerName := strings.ToLower(name)
	for phrase, names := range s.denylist {
		if !strings.Contains(lowerQuery, phrase) {
			continue
		}
		for _, n := range names {
			if lowerName == n {
				return true
			}
		}
	}
	return false
}

// keywordTerms splits the query into words long enough to carry meaning.
func keywordTerms(lowerQuery string, minLen int) []string {
	words := strings.Fields(lowerQuery)
	out := words[:0]
	for _, w := range words {
		if len(w) >= minLen {
			out = append(out, w)
		}
	}
	return out
}
