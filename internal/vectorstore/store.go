// Package vectorstore provides passage storage and similarity search over
// Qdrant, with an in-memory implementation for tests and small corpora.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks transient vector store failures. Callers treat the
// affected query variant as empty instead of failing the request.
var ErrUnavailable = errors.New("vector store unavailable")

// Point is a passage embedding with its payload, keyed by passage ID.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// Match is a single similarity search hit.
type Match struct {
	ID      string
	Score   float64
	Payload map[string]any
}

// Filter restricts matches to passages whose payload values equal every
// entry. A nil or empty filter matches everything.
type Filter map[string]string

// Matches reports whether a payload satisfies every filter entry. Non-string
// payload values are compared by their string form, so numeric fields like
// page_number can be filtered too.
func (f Filter) Matches(payload map[string]any) bool {
	for key, want := range f {
		got, ok := payload[key]
		if !ok || fmt.Sprint(got) != want {
			return false
		}
	}
	return true
}

// Record is a stored passage without its vector, as returned by bulk reads.
type Record struct {
	ID      string
	Payload map[string]any
}

// Stats reports store-level counters.
type Stats struct {
	PassageCount int64  `json:"passage_count"`
	Backend      string `json:"backend"`
}

// VectorStore defines passage storage and similarity search.
type VectorStore interface {
	// Upsert inserts or replaces points.
	Upsert(ctx context.Context, points []Point) error
	// SimilaritySearch returns the top-k matches for a query vector,
	// restricted to passages satisfying the filter.
	SimilaritySearch(ctx context.Context, vector []float32, topK int, filter Filter) ([]Match, error)
	// FetchBulk returns up to limit stored records satisfying the filter,
	// payload only.
	FetchBulk(ctx context.Context, limit int, filter Filter) ([]Record, error)
	// DeleteByDocument removes every passage of a document.
	DeleteByDocument(ctx context.Context, docID string) error
	// Stats returns store-level counters.
	Stats(ctx context.Context) (Stats, error)
	Close() error
}
