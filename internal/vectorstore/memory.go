package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory vector store using brute-force inner product
// search. Suitable for tests and small corpora; assumes normalized vectors
// so inner product equals cosine similarity.
type MemoryStore struct {
	dimensions int

	mu      sync.RWMutex
	ids     []string
	vectors [][]float32
	payload map[string]map[string]any
}

// NewMemoryStore creates an in-memory store with the given vector dimension.
func NewMemoryStore(dimensions int) (*MemoryStore, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryStore{
		dimensions: dimensions,
		payload:    make(map[string]map[string]any),
	}, nil
}

// Upsert inserts or replaces points.
func (m *MemoryStore) Upsert(ctx context.Context, points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range points {
		if len(p.Vector) != m.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d",
				len(p.Vector), m.dimensions)
		}
		vec := make([]float32, m.dimensions)
		copy(vec, p.Vector)
		if _, exists := m.payload[p.ID]; exists {
			for i, id := range m.ids {
				if id == p.ID {
					m.vectors[i] = vec
					break
				}
			}
		} else {
			m.ids = append(m.ids, p.ID)
			m.vectors = append(m.vectors, vec)
		}
		m.payload[p.ID] = p.Payload
	}
	return nil
}

// SimilaritySearch returns the top-k matches by inner product. Passages
// failing the payload filter never enter the ranking.
func (m *MemoryStore) SimilaritySearch(ctx context.Context, vector []float32, topK int, filter Filter) ([]Match, error) {
	if len(vector) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d",
			len(vector), m.dimensions)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if topK <= 0 || len(m.ids) == 0 {
		return nil, nil
	}

	matches := make([]Match, 0, len(m.ids))
	for i, vec := range m.vectors {
		id := m.ids[i]
		if len(filter) > 0 && !filter.Matches(m.payload[id]) {
			continue
		}
		var dot float64
		for j := 0; j < m.dimensions; j++ {
			dot += float64(vector[j] * vec[j])
		}
		matches = append(matches, Match{ID: id, Score: dot, Payload: m.payload[id]})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK], nil
}

// FetchBulk returns up to limit filtered records in insertion order.
func (m *MemoryStore) FetchBulk(ctx context.Context, limit int, filter Filter) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.ids) {
		limit = len(m.ids)
	}
	records := make([]Record, 0, limit)
	for _, id := range m.ids {
		if len(records) == limit {
			break
		}
		if len(filter) > 0 && !filter.Matches(m.payload[id]) {
			continue
		}
		records = append(records, Record{ID: id, Payload: m.payload[id]})
	}
	return records, nil
}

// DeleteByDocument removes every passage whose payload doc_id matches.
func (m *MemoryStore) DeleteByDocument(ctx context.Context, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	keepIDs := m.ids[:0]
	keepVectors := m.vectors[:0]
	for i, id := range m.ids {
		if pl := m.payload[id]; pl != nil {
			if d, _ := pl["doc_id"].(string); d == docID {
				delete(m.payload, id)
				continue
			}
		}
		keepIDs = append(keepIDs, id)
		keepVectors = append(keepVectors, m.vectors[i])
	}
	m.ids = keepIDs
	m.vectors = keepVectors
	return nil
}

// Stats returns the stored passage count.
func (m *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{PassageCount: int64(len(m.ids)), Backend: "memory"}, nil
}

// Close is a no-op for MemoryStore.
func (m *MemoryStore) Close() error {
	return nil
}
