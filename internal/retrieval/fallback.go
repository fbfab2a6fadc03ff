package retrieval

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/internal/ranking"
	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
)

// KeywordAnchor is the last line of defense: when the semantic path yields
// nothing, it scans the corpus for keyword matches and promotes the best
// scoring passages. Anchored candidates are treated as maximally relevant.
type KeywordAnchor struct {
	corpus *CorpusAccessor
	scorer *ranking.KeywordScorer
	cfg    *Config
	logger *zap.Logger
}

// NewKeywordAnchor creates the fallback over the given corpus accessor.
func NewKeywordAnchor(corpus *CorpusAccessor, scorer *ranking.KeywordScorer, cfg *Config, logger *zap.Logger) *KeywordAnchor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KeywordAnchor{corpus: corpus, scorer: scorer, cfg: cfg, logger: logger}
}

// Anchor scores every scanned passage against the query keywords and
// returns the top MaxKeywordResults. An empty result is a valid terminal
// state, not an error.
func (a *KeywordAnchor) Anchor(ctx context.Context, keywords []string, filter vectorstore.Filter) ([]*models.Candidate, error) {
	if len(keywords) == 0 {
		a.logger.Warn("no keywords extracted for anchoring fallback")
		return nil, nil
	}

	records, err := a.corpus.Scan(ctx, filter)
	if err != nil {
		return nil, err
	}

	var candidates []*models.Candidate
	for _, record := range records {
		cand := candidateFromPayload(record.ID, record.Payload)
		if cand.Text == "" {
			continue
		}
		score, matched := a.scorer.Score(cand.Text, cand.DocTitle, cand.SectionTitle, keywords)
		if len(matched) == 0 {
			continue
		}
		cand.KeywordScore = score
		cand.KeywordMatches = matched
		cand.CombinedScore = score
		cand.StructuralTier = ranking.TierCategoryMatch
		cand.Method = models.MethodKeywordAnchoring
		candidates = append(candidates, cand)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].CombinedScore != candidates[j].CombinedScore {
			return candidates[i].CombinedScore > candidates[j].CombinedScore
		}
		return candidates[i].Key() < candidates[j].Key()
	})
	if len(candidates) > a.cfg.MaxKeywordResults {
		candidates = candidates[:a.cfg.MaxKeywordResults]
	}

	a.logger.Info("keyword anchoring applied",
		zap.Strings("keywords", keywords),
		zap.Int("results", len(candidates)))
	return candidates, nil
}
