package vectorstore

import (
	"fmt"

	"go.uber.org/zap"
)

// Backend represents the type of vector store to use.
type Backend string

const (
	// BackendMemory uses in-memory brute-force search. Good for tests and
	// small corpora (<10k passages).
	BackendMemory Backend = "memory"
	// BackendQdrant uses a Qdrant collection over gRPC.
	BackendQdrant Backend = "qdrant"
)

// Config selects and configures the vector store backend.
type Config struct {
	Backend    string `yaml:"backend"`     // default: qdrant
	URL        string `yaml:"url"`         // default: http://localhost:6333
	Collection string `yaml:"collection"`  // default: legal_passages
	VectorSize int    `yaml:"vector_size"` // default: 384
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = string(BackendQdrant)
	}
	if c.URL == "" {
		c.URL = "http://localhost:6333"
	}
	if c.Collection == "" {
		c.Collection = "legal_passages"
	}
	if c.VectorSize == 0 {
		c.VectorSize = 384
	}
}

// New creates a vector store of the configured backend.
// Supported backends: "qdrant" (default), "memory".
func New(cfg Config, logger *zap.Logger) (VectorStore, error) {
	cfg.ApplyDefaults()
	switch Backend(cfg.Backend) {
	case BackendMemory:
		return NewMemoryStore(cfg.VectorSize)
	case BackendQdrant:
		return NewQdrantStore(cfg.URL, cfg.Collection, cfg.VectorSize, logger)
	default:
		return nil, fmt.Errorf("unknown vector store backend: %s (supported: qdrant, memory)", cfg.Backend)
	}
}
