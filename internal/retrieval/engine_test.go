package retrieval

import (
	"context"
	"testing"

	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
)

func newTestEngine(t *testing.T, embedder *routingEmbedder, store vectorstore.VectorStore, cfg *Config) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	searcher := NewSemanticSearcher(embedder, store, cfg, nil, nil)
	return New(cfg, nil, searcher, newAnchor(store, cfg), nil, nil)
}

func seedPassages(t *testing.T, store vectorstore.VectorStore, points []vectorstore.Point) {
	t.Helper()
	if err := store.Upsert(context.Background(), points); err != nil {
		t.Fatal(err)
	}
}

func TestEngine_SemanticScenario(t *testing.T) {
	embedder := &routingEmbedder{topics: []string{"waiting period"}}
	store, err := vectorstore.NewMemoryStore(embedder.Dimensions())
	if err != nil {
		t.Fatal(err)
	}
	seedPassages(t, store, []vectorstore.Point{{
		ID:     "p1",
		Vector: []float32{1, 0},
		Payload: map[string]any{
			"doc_id":        "policy-1",
			"doc_title":     "Health Policy",
			"text":          "Pre-existing conditions have a 48-month waiting period",
			"section_title": "Waiting Periods",
			"page_number":   int64(12),
		},
	}})

	engine := newTestEngine(t, embedder, store, nil)
	raw := models.CoerceInput("What is the waiting period for pre-existing conditions?")
	resp, err := engine.Retrieve(context.Background(), raw, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d question results, want 1", len(resp.Results))
	}
	result := resp.Results[0]
	if result.Intent.Primary != models.IntentTemporal {
		t.Errorf("intent = %q, want temporal", result.Intent.Primary)
	}
	if result.Method != string(models.MethodSemantic) {
		t.Fatalf("method = %q, want semantic", result.Method)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(result.Candidates))
	}

	c := result.Candidates[0]
	if c.StructuralTier != 1 {
		t.Errorf("tier = %d, want 1", c.StructuralTier)
	}
	if c.CombinedScore < 0.5 {
		t.Errorf("combined score = %v, want >= 0.5 after temporal boost", c.CombinedScore)
	}
	if c.CombinedScore > 1 {
		t.Errorf("combined score = %v, exceeds 1", c.CombinedScore)
	}
	if c.PageNumber != 12 {
		t.Errorf("page = %d, want 12", c.PageNumber)
	}
	if c.ThresholdUsed < 0.2 || c.ThresholdUsed > 0.8 {
		t.Errorf("threshold used = %v, outside similarity bounds", c.ThresholdUsed)
	}
}

func TestEngine_FallsBackToKeywordAnchoring(t *testing.T) {
	// Embedding fails for every variant, so the semantic path yields
	// nothing and the corpus scan must produce the results.
	embedder := &routingEmbedder{topics: []string{"premium"}, fail: true}
	store, err := vectorstore.NewMemoryStore(embedder.Dimensions())
	if err != nil {
		t.Fatal(err)
	}
	seedPassages(t, store, []vectorstore.Point{{
		ID:      "p1",
		Vector:  []float32{1, 0},
		Payload: map[string]any{"doc_id": "policy-1", "text": "the premium is due monthly"},
	}})

	engine := newTestEngine(t, embedder, store, nil)
	resp, err := engine.Retrieve(context.Background(), models.CoerceInput("How much is the premium?"), 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	result := resp.Results[0]
	if result.Method != string(models.MethodKeywordAnchoring) {
		t.Fatalf("method = %q, want keyword_anchoring", result.Method)
	}
	for _, c := range result.Candidates {
		if c.Method != models.MethodKeywordAnchoring {
			t.Errorf("candidate method = %q, want keyword_anchoring", c.Method)
		}
		if c.StructuralTier != 1 {
			t.Errorf("tier = %d, want 1", c.StructuralTier)
		}
	}
	if len(result.Candidates) == 0 {
		t.Fatal("expected anchored candidates")
	}
}

func TestEngine_AnchoringDisabledReturnsEmpty(t *testing.T) {
	embedder := &routingEmbedder{topics: []string{"premium"}, fail: true}
	store, err := vectorstore.NewMemoryStore(embedder.Dimensions())
	if err != nil {
		t.Fatal(err)
	}
	seedPassages(t, store, []vectorstore.Point{{
		ID:      "p1",
		Vector:  []float32{1, 0},
		Payload: map[string]any{"doc_id": "policy-1", "text": "the premium is due monthly"},
	}})

	cfg := DefaultConfig()
	off := false
	cfg.KeywordAnchoring = &off
	engine := newTestEngine(t, embedder, store, cfg)

	resp, err := engine.Retrieve(context.Background(), models.CoerceInput("How much is the premium?"), 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	result := resp.Results[0]
	if result.Method != "none" {
		t.Errorf("method = %q, want none", result.Method)
	}
	if len(result.Candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(result.Candidates))
	}
}

func TestEngine_MultipleQuestions(t *testing.T) {
	embedder := &routingEmbedder{topics: []string{"waiting period", "premium"}}
	store, err := vectorstore.NewMemoryStore(embedder.Dimensions())
	if err != nil {
		t.Fatal(err)
	}
	seedPassages(t, store, []vectorstore.Point{
		{
			ID:      "p1",
			Vector:  []float32{1, 0, 0},
			Payload: map[string]any{"doc_id": "d", "text": "the waiting period is 48 months"},
		},
		{
			ID:      "p2",
			Vector:  []float32{0, 1, 0},
			Payload: map[string]any{"doc_id": "d", "text": "the premium is due monthly"},
		},
	})

	engine := newTestEngine(t, embedder, store, nil)
	raw := models.CoerceInput("What is the waiting period? How much is the premium?")
	resp, err := engine.Retrieve(context.Background(), raw, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d question results, want 2", len(resp.Results))
	}
	for _, r := range resp.Results {
		if len(r.Candidates) == 0 {
			t.Errorf("question %q returned no candidates", r.Question)
		}
	}
}

func TestEngine_MalformedInputDegrades(t *testing.T) {
	embedder := &routingEmbedder{topics: []string{"x"}}
	store, _ := vectorstore.NewMemoryStore(embedder.Dimensions())
	engine := newTestEngine(t, embedder, store, nil)

	for _, input := range []any{nil, 42, ""} {
		resp, err := engine.Retrieve(context.Background(), models.CoerceInput(input), 10, nil)
		if err != nil {
			t.Fatalf("Retrieve(%v): %v", input, err)
		}
		if len(resp.Results) == 0 {
			t.Fatalf("Retrieve(%v) returned no question results", input)
		}
	}
}

func TestEngine_RelaxedThresholdRescuesLowScores(t *testing.T) {
	// The lone passage scores 0.7*0.2 = 0.14 combined, below the 0.25
	// base threshold, so the first filter pass rejects everything and
	// the minimum-results relaxation must rescue it.
	embedder := &routingEmbedder{topics: []string{"premium"}}
	store, err := vectorstore.NewMemoryStore(embedder.Dimensions())
	if err != nil {
		t.Fatal(err)
	}
	seedPassages(t, store, []vectorstore.Point{{
		ID:      "p1",
		Vector:  []float32{0.2, 0},
		Payload: map[string]any{"doc_id": "d", "text": "the grievance redressal cell reviews complaints"},
	}})

	cfg := DefaultConfig()
	engine := newTestEngine(t, embedder, store, cfg)
	resp, err := engine.Retrieve(context.Background(), models.CoerceInput("How much is the premium?"), 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	result := resp.Results[0]
	if result.Method != string(models.MethodSemantic) {
		t.Fatalf("method = %q, want semantic; relaxation must not reach the keyword fallback", result.Method)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1 rescued by relaxation", len(result.Candidates))
	}

	c := result.Candidates[0]
	if c.CombinedScore >= cfg.Ranking.BaseThreshold {
		t.Fatalf("combined score = %v, want below base threshold %v", c.CombinedScore, cfg.Ranking.BaseThreshold)
	}
	// The relaxed threshold min(minScore, base/2) = 0.125 is recorded
	// clamped to the similarity floor. A repeated pass at the base
	// threshold would have discarded the candidate again.
	if c.ThresholdUsed != cfg.Ranking.MinSimilarity {
		t.Errorf("threshold used = %v, want the clamped relaxed value %v", c.ThresholdUsed, cfg.Ranking.MinSimilarity)
	}
}

func TestEngine_FilterRestrictsDocuments(t *testing.T) {
	embedder := &routingEmbedder{topics: []string{"premium"}}
	store, err := vectorstore.NewMemoryStore(embedder.Dimensions())
	if err != nil {
		t.Fatal(err)
	}
	seedPassages(t, store, []vectorstore.Point{
		{
			ID:      "p1",
			Vector:  []float32{1, 0},
			Payload: map[string]any{"doc_id": "policy-1", "text": "the premium is due monthly"},
		},
		{
			ID:      "p2",
			Vector:  []float32{1, 0},
			Payload: map[string]any{"doc_id": "policy-2", "text": "the premium is due monthly"},
		},
	})

	engine := newTestEngine(t, embedder, store, nil)
	resp, err := engine.Retrieve(context.Background(),
		models.CoerceInput("How much is the premium?"), 10,
		vectorstore.Filter{"doc_id": "policy-2"})
	if err != nil {
		t.Fatal(err)
	}
	result := resp.Results[0]
	if len(result.Candidates) == 0 {
		t.Fatal("expected candidates from the filtered document")
	}
	for _, c := range result.Candidates {
		if c.DocumentID != "policy-2" {
			t.Errorf("candidate document = %q, want policy-2", c.DocumentID)
		}
	}
}
