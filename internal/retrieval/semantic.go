package retrieval

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/omkar2816/Legal-RAG-System/internal/embedding"
	"github.com/omkar2816/Legal-RAG-System/internal/metrics"
	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
)

// ErrAllVariantsFailed means every query variant hit an upstream failure.
// The pipeline proceeds directly to the keyword fallback.
var ErrAllVariantsFailed = errors.New("all query variants failed")

// SemanticSearcher fans one similarity search per query variant out to the
// vector store, with bounded parallelism and a per-variant timeout. Results
// are pooled and deduplicated by passage, keeping the highest score.
type SemanticSearcher struct {
	embedder embedding.Embedder
	store    vectorstore.VectorStore
	cfg      *Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewSemanticSearcher creates a searcher over the given embedder and store.
func NewSemanticSearcher(
	embedder embedding.Embedder,
	store vectorstore.VectorStore,
	cfg *Config,
	logger *zap.Logger,
	m *metrics.Metrics,
) *SemanticSearcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SemanticSearcher{
		embedder: embedder,
		store:    store,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
	}
}

// Search runs all variants and returns the pooled matches. A failed variant
// contributes nothing; ErrAllVariantsFailed is returned only when every
// variant failed. The merge happens single-threaded after all searches
// join.
func (s *SemanticSearcher) Search(ctx context.Context, variants []models.QueryVariant, topK int, filter vectorstore.Filter) ([]vectorstore.Match, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		batches  = make([][]vectorstore.Match, 0, len(variants))
		failures int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentVariants)
	for _, variant := range variants {
		g.Go(func() error {
			matches, err := s.searchVariant(ctx, variant, topK, filter)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				return nil
			}
			batches = append(batches, matches)
			return nil
		})
	}
	_ = g.Wait()

	if failures == len(variants) {
		return nil, ErrAllVariantsFailed
	}
	return poolMatches(batches), nil
}

// searchVariant embeds one variant and queries the store under the variant
// timeout. Transient upstream failures are logged and swallowed.
func (s *SemanticSearcher) searchVariant(ctx context.Context, variant models.QueryVariant, topK int, filter vectorstore.Filter) ([]vectorstore.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.VariantTimeout)
	defer cancel()

	start := time.Now()
	vector, err := s.embedder.Embed(ctx, variant.Text)
	if err != nil {
		s.variantFailed(variant, "embed", err)
		return nil, err
	}
	matches, err := s.store.SimilaritySearch(ctx, vector, topK, filter)
	if err != nil {
		s.variantFailed(variant, "similarity_search", err)
		return nil, err
	}

	s.logger.Debug("variant searched",
		zap.String("variant", variant.Text),
		zap.String("origin", string(variant.Origin)),
		zap.Int("matches", len(matches)),
		zap.Duration("took", time.Since(start)))
	return matches, nil
}

func (s *SemanticSearcher) variantFailed(variant models.QueryVariant, stage string, err error) {
	s.metrics.VariantFailed()
	s.logger.Warn("query variant failed",
		zap.String("variant", variant.Text),
		zap.String("stage", stage),
		zap.Error(err))
}

// poolMatches merges per-variant result batches, deduplicating by passage
// ID and keeping the highest score for duplicates.
func poolMatches(batches [][]vectorstore.Match) []vectorstore.Match {
	index := make(map[string]int)
	var pooled []vectorstore.Match
	for _, batch := range batches {
		for _, m := range batch {
			if i, seen := index[m.ID]; seen {
				if m.Score > pooled[i].Score {
					pooled[i] = m
				}
				continue
			}
			index[m.ID] = len(pooled)
			pooled = append(pooled, m)
		}
	}
	return pooled
}
