package query

import (
	"sort"
	"strings"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
)

// spellMaxDistance is the largest edit distance accepted for a suggestion.
const spellMaxDistance = 2

// spellMinLength is the shortest token considered for fuzzy correction.
// Short tokens produce too many false positives.
const spellMinLength = 5

// SpellCorrector fixes near-miss domain terms before synonym substitution.
// An exact-corrections table handles known misspellings; anything else is
// matched against the lexicon vocabulary by edit distance. Corrections are
// deterministic: ties resolve to the lexicographically smallest term.
type SpellCorrector struct {
	corrections map[string]string
	multiword   []string
	vocabulary  []string
	vocabSet    map[string]struct{}
}

// NewSpellCorrector builds a corrector from the lexicon's correction table
// and vocabulary.
func NewSpellCorrector(lex *lexicon.Lexicon) *SpellCorrector {
	set := make(map[string]struct{}, len(lex.Vocabulary))
	for _, term := range lex.Vocabulary {
		set[term] = struct{}{}
	}
	var multiword []string
	for wrong := range lex.Corrections {
		if strings.Contains(wrong, " ") {
			multiword = append(multiword, wrong)
		}
	}
	sort.Strings(multiword)
	return &SpellCorrector{
		corrections: lex.Corrections,
		multiword:   multiword,
		vocabulary:  lex.Vocabulary,
		vocabSet:    set,
	}
}

// CorrectQuery corrects each token of an already lowercased query.
// Multiword corrections from the table are applied first.
func (s *SpellCorrector) CorrectQuery(q string) string {
	for _, wrong := range s.multiword {
		if strings.Contains(q, wrong) {
			q = strings.ReplaceAll(q, wrong, s.corrections[wrong])
		}
	}

	words := strings.Fields(q)
	for i, w := range words {
		words[i] = s.CorrectToken(w)
	}
	return strings.Join(words, " ")
}

// CorrectToken returns the corrected form of a single token, or the token
// unchanged when no confident correction exists.
func (s *SpellCorrector) CorrectToken(token string) string {
	if fixed, ok := s.corrections[token]; ok {
		return fixed
	}
	if _, ok := s.vocabSet[token]; ok {
		return token
	}
	if len(token) < spellMinLength {
		return token
	}

	best := token
	bestDist := spellMaxDistance + 1
	for _, term := range s.vocabulary {
		if strings.Contains(term, " ") {
			continue
		}
		// Cheap length filter before computing the full distance.
		if diff := len(term) - len(token); diff > spellMaxDistance || diff < -spellMaxDistance {
			continue
		}
		if d := LevenshteinDistance(token, term); d < bestDist {
			best = term
			bestDist = d
		}
	}
	if bestDist > spellMaxDistance {
		return token
	}
	return best
}
