package vectorstore

import (
	"context"
	"testing"
)

func testPoints() []Point {
	return []Point{
		{
			ID:     "p1",
			Vector: []float32{1, 0, 0},
			Payload: map[string]any{
				"doc_id": "doc1", "text": "waiting period is 48 months",
			},
		},
		{
			ID:     "p2",
			Vector: []float32{0, 1, 0},
			Payload: map[string]any{
				"doc_id": "doc1", "text": "premiums are due monthly",
			},
		},
		{
			ID:     "p3",
			Vector: []float32{0, 0, 1},
			Payload: map[string]any{
				"doc_id": "doc2", "text": "exclusions apply to cosmetic surgery",
			},
		},
	}
}

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store, err := NewMemoryStore(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(context.Background(), testPoints()); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestMemoryStore_SimilaritySearch(t *testing.T) {
	store := newTestStore(t)

	matches, err := store.SimilaritySearch(context.Background(), []float32{0.9, 0.1, 0}, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].ID != "p1" {
		t.Errorf("top match = %q, want p1", matches[0].ID)
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("matches not ordered by score: %v, %v", matches[0].Score, matches[1].Score)
	}
	if matches[0].Payload["text"] == nil {
		t.Error("payload not returned with match")
	}
}

func TestMemoryStore_SimilaritySearch_DimensionMismatch(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.SimilaritySearch(context.Background(), []float32{1, 0}, 2, nil); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestMemoryStore_FetchBulk(t *testing.T) {
	store := newTestStore(t)

	records, err := store.FetchBulk(context.Background(), 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	all, err := store.FetchBulk(context.Background(), 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d records, want 3", len(all))
	}
}

func TestMemoryStore_DeleteByDocument(t *testing.T) {
	store := newTestStore(t)

	if err := store.DeleteByDocument(context.Background(), "doc1"); err != nil {
		t.Fatal(err)
	}
	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.PassageCount != 1 {
		t.Errorf("passage count = %d, want 1", stats.PassageCount)
	}
	records, err := store.FetchBulk(context.Background(), 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "p3" {
		t.Errorf("remaining records = %v, want only p3", records)
	}
}

func TestMemoryStore_UpsertReplaces(t *testing.T) {
	store := newTestStore(t)

	err := store.Upsert(context.Background(), []Point{{
		ID:      "p1",
		Vector:  []float32{0, 0, 1},
		Payload: map[string]any{"doc_id": "doc1", "text": "updated"},
	}})
	if err != nil {
		t.Fatal(err)
	}

	stats, _ := store.Stats(context.Background())
	if stats.PassageCount != 3 {
		t.Errorf("passage count = %d, want 3 after replace", stats.PassageCount)
	}
	matches, err := store.SimilaritySearch(context.Background(), []float32{0, 0, 1}, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if matches[0].ID != "p1" && matches[0].ID != "p3" {
		t.Errorf("unexpected top match %q", matches[0].ID)
	}
}

func TestMemoryStore_SimilaritySearch_Filtered(t *testing.T) {
	store := newTestStore(t)

	matches, err := store.SimilaritySearch(context.Background(),
		[]float32{1, 0, 0}, 10, Filter{"doc_id": "doc2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].ID != "p3" {
		t.Fatalf("filtered matches = %v, want only p3", matches)
	}

	matches, err = store.SimilaritySearch(context.Background(),
		[]float32{1, 0, 0}, 10, Filter{"doc_id": "doc9"})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("got %d matches for unknown document, want 0", len(matches))
	}
}

func TestMemoryStore_FetchBulk_Filtered(t *testing.T) {
	store := newTestStore(t)

	records, err := store.FetchBulk(context.Background(), 10, Filter{"doc_id": "doc1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, r := range records {
		if r.Payload["doc_id"] != "doc1" {
			t.Errorf("record %s has doc_id %v, want doc1", r.ID, r.Payload["doc_id"])
		}
	}
}

func TestFilterMatches(t *testing.T) {
	payload := map[string]any{"doc_id": "doc1", "page_number": int64(12)}
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"nil filter", nil, true},
		{"matching string", Filter{"doc_id": "doc1"}, true},
		{"mismatched string", Filter{"doc_id": "doc2"}, false},
		{"numeric compared by string form", Filter{"page_number": "12"}, true},
		{"missing key", Filter{"section_title": "x"}, false},
		{"all entries must match", Filter{"doc_id": "doc1", "page_number": "13"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(payload); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}
