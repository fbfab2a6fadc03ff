// Package lexicon holds the immutable domain vocabulary used by query
// analysis and ranking: synonym tables, topic categories, intent triggers,
// stop words, and the spelling dictionary. A Lexicon is built once at startup
// and passed explicitly to the components that need it.
package lexicon

import "sort"

// IntentDef binds an intent name to its trigger phrases. Declaration order
// matters: it breaks ties when two intents score equally.
type IntentDef struct {
	Name     string
	Triggers []string
}

// Lexicon is the full domain vocabulary. All fields are treated as read-only
// after construction.
type Lexicon struct {
	// Synonyms maps a canonical domain term to related phrasings. The
	// canonical term is always a fixed point of normalization.
	Synonyms map[string][]string

	// Canonical maps variant phrasings to their canonical term, used during
	// query normalization. Keys and values contain no punctuation so that
	// normalization stays idempotent.
	Canonical map[string]string

	// CategoryOrder lists topic categories in declaration order.
	CategoryOrder []string
	// Categories maps a topic category to its trigger phrases.
	Categories map[string][]string

	// Intents lists intent categories with their trigger phrases, in
	// declaration order.
	Intents []IntentDef

	// StopWords are dropped during keyword extraction.
	StopWords map[string]struct{}

	// Corrections maps common misspellings to their correct form.
	Corrections map[string]string
	// Vocabulary is the flat term list used for edit-distance suggestions.
	Vocabulary []string

	// Term groups used by the fusion re-ranker.
	TimeTerms         []string
	AmountTerms       []string
	DefinitionMarkers []string

	// StructureMarkers are generic legal-structure words used by the
	// structural ranker.
	StructureMarkers []string
	// LimitationTerms signal exclusion or limitation content in a passage.
	LimitationTerms []string
	// LimitationQueryTerms signal that a query references limitation concepts.
	LimitationQueryTerms []string
}

// Default returns the built-in insurance/legal lexicon.
func Default() *Lexicon {
	lex := &Lexicon{
		Synonyms: map[string][]string{
			"waiting period": {"exclusion period", "waiting time", "wait period", "initial period"},
			"preexisting":    {"pre existing", "prior condition", "existing illness", "medical history"},
			"coverage":       {"cover", "protection", "insurance", "benefit"},
			"exclusion":      {"not covered", "excluded", "limitation", "restriction"},
			"claim":          {"claim filing", "claim process", "claim submission"},
			"policy":         {"contract", "agreement", "document"},
			"termination":    {"cancellation", "discontinuation", "end of coverage"},
			"premium":        {"insurance premium", "monthly premium", "annual premium"},
			"deductible":     {"deductible amount", "out of pocket", "cost sharing"},
			"period":         {"duration", "timeframe", "term"},
			"amount":         {"sum", "value", "figure", "total"},
			"maximum":        {"max", "highest", "upper limit", "cap"},
			"minimum":        {"min", "lowest", "lower limit", "floor"},
		},
		Canonical: map[string]string{
			"waiting time":     "waiting period",
			"wait period":      "waiting period",
			"exclusion period": "waiting period",
			"initial period":   "waiting period",
			"pre existing":     "preexisting",
			"excluded items":   "exclusion",
			"end of coverage":  "termination",
			"out of pocket":    "deductible",
		},
		CategoryOrder: []string{
			"preexisting_diseases",
			"exclusions",
			"coverage",
			"claims",
			"deductibles",
			"premiums",
			"waiting_periods",
			"renewals",
			"terminations",
		},
		Categories: map[string][]string{
			"preexisting_diseases": {
				"preexisting", "pre-existing disease", "pre-existing condition",
				"existing illness", "medical history", "ped",
			},
			"exclusions": {
				"exclusion", "excluded", "not covered", "limitations",
				"excluded conditions", "coverage limitations",
			},
			"coverage": {
				"coverage", "covered", "benefits", "insurance coverage",
				"policy coverage", "medical coverage",
			},
			"claims": {
				"claim", "claim filing", "claim process", "claim submission",
				"claim amount", "claim limits",
			},
			"deductibles": {
				"deductible", "deductible amount", "out-of-pocket",
				"deductible limit", "cost sharing",
			},
			"premiums": {
				"premium", "insurance premium", "monthly premium",
				"annual premium",
			},
			"waiting_periods": {
				"waiting period", "waiting time", "wait period",
				"exclusion period", "initial period",
			},
			"renewals": {
				"renewal", "policy renewal", "renewal process",
				"renewal terms", "extension",
			},
			"terminations": {
				"termination", "policy termination", "cancellation",
				"end of coverage", "discontinuation",
			},
		},
		Intents: []IntentDef{
			{Name: "temporal", Triggers: []string{
				"how long", "duration", "period", "time limit", "waiting period", "when",
			}},
			{Name: "monetary", Triggers: []string{
				"how much", "amount", "cost", "price", "sum", "value",
			}},
			{Name: "definitional", Triggers: []string{
				"what is", "define", "meaning of", "explain",
			}},
			{Name: "exclusionary", Triggers: []string{
				"what is not covered", "exclusions", "not covered", "what is excluded",
			}},
			{Name: "procedural", Triggers: []string{
				"how to", "process for", "steps to", "procedure for",
			}},
			{Name: "limitation", Triggers: []string{
				"what are the limits", "maximum", "minimum", "restrictions on", "limitations of",
			}},
		},
		StopWords: toSet([]string{
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
			"of", "with", "by", "is", "are", "was", "were", "be", "been", "being",
			"have", "has", "had", "do", "does", "did", "will", "would", "could",
			"should", "may", "might", "can", "what", "when", "where", "why", "how",
		}),
		Corrections: map[string]string{
			"deductable":      "deductible",
			"benifit":         "benefit",
			"benifits":        "benefits",
			"surgury":         "surgery",
			"hospitilization": "hospitalization",
			"cancelation":     "cancellation",
			"premiume":        "premium",
			"exlusion":        "exclusion",
		},
		TimeTerms: []string{
			"period", "waiting", "duration", "months", "years", "days",
		},
		AmountTerms: []string{
			"amount", "limit", "coverage", "sum", "maximum", "minimum", "percentage",
		},
		DefinitionMarkers: []string{
			"means", "is defined", "refers to", "shall mean",
		},
		StructureMarkers: []string{
			"section", "article", "clause", "subsection",
		},
		LimitationTerms: []string{
			"exclusion", "limitation", "not covered",
		},
		LimitationQueryTerms: []string{
			"exclusion", "limit", "not covered",
		},
	}

	lex.Vocabulary = buildVocabulary(lex)
	return lex
}

// buildVocabulary flattens the synonym keys, category terms, and correction
// targets into a deduplicated sorted list used for spell suggestions.
func buildVocabulary(lex *Lexicon) []string {
	seen := make(map[string]struct{})
	var vocab []string
	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		vocab = append(vocab, term)
	}
	for term := range lex.Synonyms {
		add(term)
	}
	for _, cat := range lex.CategoryOrder {
		for _, t := range lex.Categories[cat] {
			add(t)
		}
	}
	for _, t := range lex.Corrections {
		add(t)
	}
	sort.Strings(vocab)
	return vocab
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
