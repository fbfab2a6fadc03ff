package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
)

// CorpusAccessor is a thin read-only view over the vector store's bulk
// fetch, used only by the keyword anchoring fallback. The scan is capped to
// bound fallback latency; hitting the cap truncates with a warning rather
// than failing.
type CorpusAccessor struct {
	store   vectorstore.VectorStore
	scanCap int
	logger  *zap.Logger
}

// NewCorpusAccessor creates an accessor with the given scan cap.
func NewCorpusAccessor(store vectorstore.VectorStore, scanCap int, logger *zap.Logger) *CorpusAccessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CorpusAccessor{store: store, scanCap: scanCap, logger: logger}
}

// Scan returns up to the configured cap of stored passages satisfying the
// filter.
func (c *CorpusAccessor) Scan(ctx context.Context, filter vectorstore.Filter) ([]vectorstore.Record, error) {
	records, err := c.store.FetchBulk(ctx, c.scanCap, filter)
	if err != nil {
		return nil, err
	}
	if len(records) >= c.scanCap {
		c.logger.Warn("corpus scan truncated at cap",
			zap.Int("cap", c.scanCap))
	}
	return records, nil
}
