package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// QdrantStore implements VectorStore over a Qdrant collection.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
	logger     *zap.Logger
}

// NewQdrantStore connects to Qdrant and ensures the collection exists with
// the given vector size. urlStr is the HTTP endpoint, e.g.
// "http://localhost:6333"; the gRPC port is derived from it.
func NewQdrantStore(urlStr, collection string, vectorSize int, logger *zap.Logger) (*QdrantStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid qdrant url: %w", err)
	}
	host := parsed.Hostname()
	if host == "" {
		host = "localhost"
	}
	port := 6334
	if parsed.Port() != "" {
		if httpPort, err := strconv.Atoi(parsed.Port()); err == nil {
			// gRPC port is conventionally the HTTP port + 1.
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{Host: host, Port: port})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &QdrantStore{client: client, collection: collection, logger: logger}
	if err := s.ensureCollection(context.Background(), vectorSize); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *QdrantStore) ensureCollection(ctx context.Context, vectorSize int) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	if exists {
		return nil
	}
	s.logger.Info("creating collection",
		zap.String("collection", s.collection),
		zap.Int("vector_size", vectorSize))
	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(vectorSize),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

// Upsert inserts or replaces points.
func (s *QdrantStore) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	qdrantPoints := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		qp := &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
		}
		if len(p.Payload) > 0 {
			qp.Payload = qdrant.NewValueMap(p.Payload)
		}
		qdrantPoints = append(qdrantPoints, qp)
	}
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		return fmt.Errorf("%w: upsert: %v", ErrUnavailable, err)
	}
	return nil
}

// SimilaritySearch returns the top-k matches for a query vector, filtered
// server-side by payload match conditions.
func (s *QdrantStore) SimilaritySearch(ctx context.Context, vector []float32, topK int, filter Filter) ([]Match, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive")
	}
	limit := uint64(topK)
	scored, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		Filter:         qdrantFilter(filter),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrUnavailable, err)
	}

	matches := make([]Match, 0, len(scored))
	for _, point := range scored {
		id := ""
		if point.Id != nil {
			id = point.Id.GetUuid()
		}
		var payload map[string]any
		if point.Payload != nil {
			payload = convertPayloadToMap(point.Payload)
		}
		matches = append(matches, Match{ID: id, Score: float64(point.Score), Payload: payload})
	}
	return matches, nil
}

// FetchBulk scrolls up to limit filtered records without vectors.
func (s *QdrantStore) FetchBulk(ctx context.Context, limit int, filter Filter) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}
	scrollLimit := uint32(limit)
	points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: s.collection,
		Limit:          &scrollLimit,
		Filter:         qdrantFilter(filter),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scroll: %v", ErrUnavailable, err)
	}

	records := make([]Record, 0, len(points))
	for _, point := range points {
		id := ""
		if point.Id != nil {
			id = point.Id.GetUuid()
		}
		var payload map[string]any
		if point.Payload != nil {
			payload = convertPayloadToMap(point.Payload)
		}
		records = append(records, Record{ID: id, Payload: payload})
	}
	return records, nil
}

// DeleteByDocument removes every passage of a document via a payload filter.
func (s *QdrantStore) DeleteByDocument(ctx context.Context, docID string) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("doc_id", docID)},
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: delete: %v", ErrUnavailable, err)
	}
	return nil
}

// Stats returns the collection point count.
func (s *QdrantStore) Stats(ctx context.Context) (Stats, error) {
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
	})
	if err != nil {
		return Stats{}, fmt.Errorf("%w: count: %v", ErrUnavailable, err)
	}
	return Stats{PassageCount: int64(count), Backend: "qdrant"}, nil
}

// Close closes the underlying gRPC connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}

// qdrantFilter translates a payload filter into Qdrant match conditions.
// Every entry becomes a must condition; an empty filter maps to nil so the
// query runs unfiltered.
func qdrantFilter(filter Filter) *qdrant.Filter {
	if len(filter) == 0 {
		return nil
	}
	must := make([]*qdrant.Condition, 0, len(filter))
	for key, value := range filter {
		must = append(must, qdrant.NewMatch(key, value))
	}
	return &qdrant.Filter{Must: must}
}

// convertPayloadToMap converts a Qdrant payload to map[string]any.
func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = convertValue(v)
	}
	return result
}

// convertValue converts a Qdrant Value to a plain Go value.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(val.StructValue.Fields)
	default:
		return nil
	}
}
