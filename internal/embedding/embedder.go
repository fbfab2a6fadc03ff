// Package embedding provides text embedding via a remote embeddings service
// with circuit breaking and caching.
package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable marks transient failures of the embedding service. Callers
// treat the affected query variant as empty instead of failing the request.
var ErrUnavailable = errors.New("embedding service unavailable")

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
