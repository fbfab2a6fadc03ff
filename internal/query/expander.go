package query

import (
	"sort"
	"strings"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
	"github.com/omkar2816/Legal-RAG-System/internal/models"
)

// MaxVariants bounds the number of query variants produced per question.
const MaxVariants = 5

// synonymsPerTerm limits how many synonyms a matched term contributes to the
// synonym-enhanced variant.
const synonymsPerTerm = 2

// keywordCombinationSize is the number of top keywords joined into the
// condensed keyword variant.
const keywordCombinationSize = 3

// intentRewrites maps a primary intent to phrase substitutions applied to
// the normalized query.
var intentRewrites = map[string][][2]string{
	models.IntentTemporal: {
		{"how long", "duration"},
		{"how long", "period"},
		{"waiting period", "time before coverage"},
	},
	models.IntentMonetary: {
		{"how much", "amount"},
		{"how much", "maximum"},
		{"cost", "amount"},
	},
	models.IntentDefinitional: {
		{"what is", "define"},
		{"what is", "explain"},
		{"meaning of", "definition of"},
	},
}

// Expander produces a bounded, deduplicated set of query variants used to
// broaden semantic recall. The original query is always the first variant.
type Expander struct {
	lex      *lexicon.Lexicon
	keywords *KeywordExtractor
}

// NewExpander creates an Expander over the given lexicon.
func NewExpander(lex *lexicon.Lexicon) *Expander {
	return &Expander{
		lex:      lex,
		keywords: NewKeywordExtractor(lex),
	}
}

// Expand generates up to MaxVariants variants for a normalized query with a
// known intent profile.
func (e *Expander) Expand(normalized string, intent models.IntentProfile) []models.QueryVariant {
	seen := map[string]struct{}{normalized: {}}
	variants := []models.QueryVariant{{Text: normalized, Origin: models.OriginOriginal}}

	add := func(text string, origin models.VariantOrigin) {
		text = strings.TrimSpace(text)
		if text == "" || len(variants) >= MaxVariants {
			return
		}
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		variants = append(variants, models.QueryVariant{Text: text, Origin: origin})
	}

	if enhanced := e.synonymEnhanced(normalized); enhanced != normalized {
		add(enhanced, models.OriginSynonymExpansion)
	}

	for _, sub := range intentRewrites[intent.Primary] {
		if rewritten := strings.ReplaceAll(normalized, sub[0], sub[1]); rewritten != normalized {
			add(rewritten, models.OriginIntentRewrite)
		}
	}

	if kws := e.keywords.Extract(normalized); len(kws) >= keywordCombinationSize {
		add(strings.Join(kws[:keywordCombinationSize], " "), models.OriginKeywordCombination)
	}

	return variants
}

// synonymEnhanced appends the top synonyms of every matched domain term.
func (e *Expander) synonymEnhanced(normalized string) string {
	enhanced := normalized
	for _, term := range sortedSynonymTerms(e.lex) {
		if !strings.Contains(normalized, term) {
			continue
		}
		syns := e.lex.Synonyms[term]
		if len(syns) > synonymsPerTerm {
			syns = syns[:synonymsPerTerm]
		}
		enhanced += " " + strings.Join(syns, " ")
	}
	return enhanced
}

// sortedSynonymTerms returns the synonym-table keys in stable order.
func sortedSynonymTerms(lex *lexicon.Lexicon) []string {
	terms := make([]string, 0, len(lex.Synonyms))
	for term := range lex.Synonyms {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
