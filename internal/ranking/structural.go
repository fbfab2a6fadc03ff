package ranking

import (
	"strings"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
)

// Structural tiers. Lower is more relevant.
const (
	TierCategoryMatch = 1
	TierStructural    = 2
	TierDefault       = 3
)

// StructuralRanker assigns each passage a structural tier from the domain
// category tables: tier 1 when the passage and the query hit the same
// category, tier 2 for limitation language or structural markers, tier 3
// otherwise.
type StructuralRanker struct {
	lex *lexicon.Lexicon
}

// NewStructuralRanker creates a ranker over the given lexicon.
func NewStructuralRanker(lex *lexicon.Lexicon) *StructuralRanker {
	return &StructuralRanker{lex: lex}
}

// Rank returns the structural tier of a passage for a query. Both inputs
// are lowercased before matching.
func (r *StructuralRanker) Rank(text, query string) int {
	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	for _, cat := range r.lex.CategoryOrder {
		terms := r.lex.Categories[cat]
		if containsAny(textLower, terms) && containsAny(queryLower, terms) {
			return TierCategoryMatch
		}
	}

	if containsAny(textLower, r.lex.LimitationTerms) &&
		containsAny(queryLower, r.lex.LimitationQueryTerms) {
		return TierStructural
	}

	if containsAny(textLower, r.lex.StructureMarkers) {
		return TierStructural
	}

	return TierDefault
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
