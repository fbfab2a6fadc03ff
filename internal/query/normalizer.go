// Package query provides query normalization, question splitting, intent
// classification, and query expansion for the retrieval pipeline.
package query

import (
	"sort"
	"strings"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/pkg/utils"
)

// Normalizer canonicalizes raw query text: lowercasing, punctuation and
// whitespace cleanup, spell correction, and domain-synonym substitution.
// Normalize is idempotent.
type Normalizer struct {
	lex     *lexicon.Lexicon
	speller *SpellCorrector
}

// NewNormalizer creates a Normalizer over the given lexicon.
func NewNormalizer(lex *lexicon.Lexicon) *Normalizer {
	return &Normalizer{
		lex:     lex,
		speller: NewSpellCorrector(lex),
	}
}

// Normalize returns the canonical form of raw. Idempotent: applying it to
// its own output yields the same string.
func (n *Normalizer) Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = stripPunctuation(s)
	s = utils.CollapseWhitespace(s)
	s = n.speller.CorrectQuery(s)
	s = n.substituteCanonical(s)
	return utils.CollapseWhitespace(s)
}

// NormalizeInput coerces a tagged input to text and normalizes it. Missing
// or invalid inputs degrade to an empty normalized string rather than
// failing.
func (n *Normalizer) NormalizeInput(in models.RawInput) string {
	return n.Normalize(in.Text)
}

// substituteCanonical replaces known variant phrasings with their canonical
// domain term. Longer phrases are replaced first so that "waiting time
// limit" resolves before "time limit" could.
func (n *Normalizer) substituteCanonical(s string) string {
	for _, variant := range n.canonicalOrder() {
		if strings.Contains(s, variant) {
			s = strings.ReplaceAll(s, variant, n.lex.Canonical[variant])
		}
	}
	return s
}

// canonicalOrder returns the canonical-table keys longest first, then
// lexicographic for determinism.
func (n *Normalizer) canonicalOrder() []string {
	keys := make([]string, 0, len(n.lex.Canonical))
	for k := range n.lex.Canonical {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// stripPunctuation replaces every non-alphanumeric, non-space rune with a
// space, mirroring how passages were cleaned at indexing time.
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}
