package query

import (
	"strings"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
)

// minKeywordLength filters out tokens too short to anchor a search.
const minKeywordLength = 3

// KeywordExtractor pulls search keywords from a normalized query: domain
// phrases from the lexicon first, then remaining content words with stop
// words removed.
type KeywordExtractor struct {
	lex *lexicon.Lexicon
}

// NewKeywordExtractor creates an extractor over the given lexicon.
func NewKeywordExtractor(lex *lexicon.Lexicon) *KeywordExtractor {
	return &KeywordExtractor{lex: lex}
}

// Extract returns the deduplicated keywords of a normalized query, domain
// phrases before plain words, original order otherwise preserved.
func (e *KeywordExtractor) Extract(normalized string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	add := func(kw string) {
		if _, ok := seen[kw]; ok {
			return
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	// Multiword domain phrases matched in the query come first: they are
	// the strongest anchors.
	for _, cat := range e.lex.CategoryOrder {
		for _, phrase := range e.lex.Categories[cat] {
			if strings.Contains(phrase, " ") && strings.Contains(normalized, phrase) {
				add(phrase)
			}
		}
	}

	for _, word := range strings.Fields(normalized) {
		if len(word) < minKeywordLength {
			continue
		}
		if _, stop := e.lex.StopWords[word]; stop {
			continue
		}
		add(word)
	}

	return keywords
}
