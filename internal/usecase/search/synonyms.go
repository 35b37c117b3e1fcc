package search

// defaultSynonyms expands ambiguous industry terms for the keyword gate.
// Keys are lowercase query words (or whole queries); values are the phrases
// accepted in a company description as equivalent.
var defaultSynonyms = map[string][]string{
	"e-commerce":              {"ecommerce", "e-commerce", "commerce", "online store", "retail"},
	"ecommerce":               {"ecommerce", "e-commerce", "commerce", "online store", "retail"},
	"podcasting":              {"podcast", "podcasting", "podcasts", "audio"},
	"podcast":                 {"podcast", "podcasting", "podcasts", "audio"},
	"ai":                      {"ai", "artificial intelligence", "machine learning", "ml"},
	"artificial intelligence": {"ai", "artificial intelligence", "machine learning", "ml"},
	"hr":                      {"hr", "human resources", "personnel", "workforce"},
	"human resources":         {"hr", "human resources", "personnel", "workforce"},
	"real estate":             {"real estate", "property management", "construction", "residential", "commercial real estate", "proptech"},
	"transportation":          {"transportation", "vehicles", "ev", "electric vehicle", "automotive", "fleet"},
}

// defaultDenylist excludes companies (by lowercase name) from queries
// containing the key phrase. These are hand-curated corrections for records
// whose descriptions mislead the keyword gate.
var defaultDenylist = map[string][]string{
	"real estate": {"cobalt intelligence", "segmetrics"},
}

// synonymTable resolves a query word to its accepted equivalents.
type synonymTable map[string][]string

// lookup returns the synonyms for word, falling back to the whole query
// phrase when the word itself has no entry (multi-word keys like
// "real estate" match that way).
func (t synonymTable) lookup(word, query string) []string {
	if syns, ok := t[word]; ok {
		return syns
	}
	return t[query]
}
