package search

import "strings"

// Weights holds the tuned relevance constants. All values live in [0, 1]
// except MinKeywordLen.
type Weights struct {
	// MinSimilarity gates admission into the primary result set.
	MinSimilarity float64
	// StrongTextThreshold separates the "near-exact text match" tier.
	StrongTextThreshold float64
	// SemanticBoost is added (scaled by the semantic score) on top of a
	// strong text match, capped at 1.0.
	SemanticBoost float64
	// TextBlendWeight / SemanticBlendWeight mix the middle tier.
	TextBlendWeight     float64
	SemanticBlendWeight float64
	// SemanticOnlyWeight discounts purely semantic matches.
	SemanticOnlyWeight float64
	// MinKeywordLen is the minimum query-word length considered by the
	// keyword gate.
	MinKeywordLen int
}

// textScore rates the lexical match of query against text, both already
// lowercased. An exact substring scores 1.0; otherwise the score is the
// fraction of query words that partially match some text word (either word
// containing the other).
func textScore(query, text string) float64 {
	if strings.Contains(text, query) {
		return 1.0
	}

	queryWords := strings.Fields(query)
	if len(queryWords) == 0 {
		return 0
	}
	textWords := strings.Fields(text)

	matched := 0
	for _, qw := range queryWords {
		for _, tw := range textWords {
			if strings.Contains(tw, qw) || strings.Contains(qw, tw) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(queryWords))
}

// fuse combines the lexical and semantic scores into the final relevance.
// Strong text matches dominate and get a small semantic boost; partial text
// matches blend both signals; pure semantic matches are discounted. The
// result always lands in [0, 1].
func (w Weights) fuse(text, semantic float64) float64 {
	semantic = clamp01(semantic)

	switch {
	case text >= w.StrongTextThreshold:
		return min(1.0, text+semantic*w.SemanticBoost)
	case text > 0:
		return text*w.TextBlendWeight + semantic*w.SemanticBlendWeight
	default:
		return semantic * w.SemanticOnlyWeight
	}
}

// clamp01 bounds cosine similarity into [0, 1]; near-opposite vectors would
// otherwise produce negative scores.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
