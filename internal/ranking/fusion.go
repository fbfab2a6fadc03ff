package ranking

import (
	"sort"
	"strings"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/pkg/utils"
)

// Fusion merges semantic and keyword scores into a combined score, applies
// intent-based boosts, and produces the final candidate ordering.
type Fusion struct {
	config *RankingConfig
	lex    *lexicon.Lexicon
}

// NewFusion creates a Fusion with the given config and lexicon.
func NewFusion(config *RankingConfig, lex *lexicon.Lexicon) *Fusion {
	if config == nil {
		config = DefaultRankingConfig()
	}
	return &Fusion{config: config, lex: lex}
}

// Combine fuses a semantic and a keyword score with the configured weights.
// The result always lies in [0, 1].
func (f *Fusion) Combine(semantic, keyword float64) float64 {
	combined := f.config.SemanticWeight*semantic + f.config.KeywordWeight*keyword
	return utils.Clamp(combined, 0, 1)
}

// Boost returns the additive intent boost for a candidate. Term boosts are
// counted per body occurrence and capped at MaxIntentBoost per passage.
// Section label boosts for definition and exclusion headings apply on top,
// regardless of intent.
func (f *Fusion) Boost(cand *models.Candidate, intent models.IntentProfile) float64 {
	textLower := strings.ToLower(cand.Text)

	boost := 0.0
	switch intent.Primary {
	case models.IntentTemporal:
		boost = countOccurrences(textLower, f.lex.TimeTerms) * f.config.TemporalBoost
	case models.IntentMonetary:
		boost = countOccurrences(textLower, f.lex.AmountTerms) * f.config.MonetaryBoost
	case models.IntentDefinitional:
		boost = countOccurrences(textLower, f.lex.DefinitionMarkers) * f.config.DefinitionalBoost
	}
	if boost > f.config.MaxIntentBoost {
		boost = f.config.MaxIntentBoost
	}

	section := strings.ToLower(cand.SectionTitle)
	if strings.Contains(section, "definition") {
		boost += f.config.DefinitionSection
	}
	if strings.Contains(section, "exclusion") {
		boost += f.config.ExclusionSection
	}

	return boost
}

// Rerank computes the combined score of every candidate, applies intent
// boosts, and sorts the slice in place into the final order: ascending
// structural tier, then descending combined score, then candidate key.
func (f *Fusion) Rerank(cands []models.Candidate, intent models.IntentProfile) {
	for i := range cands {
		c := &cands[i]
		c.CombinedScore = f.Combine(c.SemanticScore, c.KeywordScore)
		c.CombinedScore = utils.Clamp(c.CombinedScore+f.Boost(c, intent), 0, 1)
	}
	SortCandidates(cands)
}

// SortCandidates orders candidates by ascending structural tier, then
// descending combined score, then candidate key for determinism.
func SortCandidates(cands []models.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].StructuralTier != cands[j].StructuralTier {
			return cands[i].StructuralTier < cands[j].StructuralTier
		}
		if cands[i].CombinedScore != cands[j].CombinedScore {
			return cands[i].CombinedScore > cands[j].CombinedScore
		}
		return cands[i].Key() < cands[j].Key()
	})
}

func countOccurrences(text string, terms []string) float64 {
	n := 0
	for _, term := range terms {
		n += strings.Count(text, term)
	}
	return float64(n)
}
