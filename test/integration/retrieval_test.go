// Package integration wires the full stack (store factory, cached
// embedder, engine, HTTP server) and exercises it over HTTP.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/omkar2816/Legal-RAG-System/internal/config"
	"github.com/omkar2816/Legal-RAG-System/internal/embedding"
	"github.com/omkar2816/Legal-RAG-System/internal/metrics"
	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/internal/ranking"
	"github.com/omkar2816/Legal-RAG-System/internal/retrieval"
	"github.com/omkar2816/Legal-RAG-System/internal/server"
	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
	"github.com/omkar2816/Legal-RAG-System/test/e2e"
)

// axisEmbedder routes a text to the axis of the first signature phrase it
// contains, mirroring the corpus point geometry.
type axisEmbedder struct {
	signatures []string
}

func (a *axisEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, len(a.signatures)+1)
	lower := strings.ToLower(text)
	for i, sig := range a.signatures {
		if strings.Contains(lower, sig) {
			vec[i] = 1
			return vec, nil
		}
	}
	vec[len(a.signatures)] = 1
	return vec, nil
}

func (a *axisEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := a.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func (a *axisEmbedder) Dimensions() int { return len(a.signatures) + 1 }
func (a *axisEmbedder) Close() error    { return nil }

func TestIntegration_RetrieveOverHTTP(t *testing.T) {
	corpus := e2e.BuildCorpus()
	inner := &axisEmbedder{signatures: corpus.Signatures()}

	store, err := vectorstore.New(vectorstore.Config{
		Backend:    string(vectorstore.BackendMemory),
		VectorSize: inner.Dimensions(),
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	embedder, err := embedding.NewCachedEmbedder(inner, 100)
	if err != nil {
		t.Fatal(err)
	}
	defer embedder.Close()

	ctx := context.Background()
	if err := store.Upsert(ctx, corpus.ToPoints()); err != nil {
		t.Fatal(err)
	}

	m := metrics.New()
	cfg := retrieval.DefaultConfig()
	searcher := retrieval.NewSemanticSearcher(embedder, store, cfg, nil, m)
	corpusAccess := retrieval.NewCorpusAccessor(store, cfg.CorpusScanCap, nil)
	anchor := retrieval.NewKeywordAnchor(
		corpusAccess, ranking.NewKeywordScorer(&cfg.Ranking), cfg, nil)
	engine := retrieval.New(cfg, nil, searcher, anchor, nil, m)

	srvCfg := &config.ServerConfig{Host: "localhost", Port: 0}
	srv := server.NewServer(engine, store, embedder, srvCfg, zap.NewNop(), m)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	// Retrieval round trip.
	resp := postJSON(t, ts.URL+"/api/v1/retrieve", map[string]any{
		"query": "Is there a waiting period for cataract surgery?",
	})
	var retrieved models.RetrievalResponse
	decodeBody(t, resp, &retrieved)
	if len(retrieved.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(retrieved.Results))
	}
	found := false
	for _, c := range retrieved.Results[0].Candidates {
		if c.DocumentID == "health-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("health-1 not in candidates: %+v", retrieved.Results[0].Candidates)
	}

	// The cache should have absorbed repeated variant embeddings by now.
	hits, misses := embedder.Stats()
	if hits+misses == 0 {
		t.Error("embedding cache was never consulted")
	}

	// Stats reflect the seeded corpus.
	statsResp, err := http.Get(ts.URL + "/api/v1/admin/stats")
	if err != nil {
		t.Fatal(err)
	}
	var stats struct {
		VectorStore vectorstore.Stats `json:"vector_store"`
	}
	decodeBody(t, statsResp, &stats)
	if stats.VectorStore.PassageCount != int64(len(corpus.Passages)) {
		t.Errorf("passage count = %d, want %d", stats.VectorStore.PassageCount, len(corpus.Passages))
	}

	// Deleting a document removes all its passages.
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/admin/documents/health-1", nil)
	if err != nil {
		t.Fatal(err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", delResp.StatusCode)
	}
	after, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	deleted := int64(0)
	for _, p := range corpus.Passages {
		if p.DocID == "health-1" {
			deleted++
		}
	}
	if after.PassageCount != int64(len(corpus.Passages))-deleted {
		t.Errorf("passage count after delete = %d, want %d",
			after.PassageCount, int64(len(corpus.Passages))-deleted)
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d for %s", resp.StatusCode, url)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}
