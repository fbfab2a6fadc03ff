// Package retrieval implements the hybrid retrieval pipeline: query
// analysis, bounded parallel semantic search over query variants, keyword
// scoring, adaptive threshold filtering, and the keyword anchoring fallback.
package retrieval

import (
	"fmt"
	"time"

	"github.com/omkar2816/Legal-RAG-System/internal/ranking"
)

// Config holds the operational settings of the retrieval engine. Scoring
// parameters live in the embedded Ranking config.
type Config struct {
	TopK                  int           `yaml:"top_k"`                   // default: 10
	MinResultsRequired    int           `yaml:"min_results_required"`    // default: 1
	MaxConcurrentVariants int           `yaml:"max_concurrent_variants"` // default: 5
	VariantTimeout        time.Duration `yaml:"variant_timeout"`         // default: 5s
	RequestTimeout        time.Duration `yaml:"request_timeout"`         // default: 30s

	KeywordAnchoring  *bool `yaml:"keyword_anchoring"`   // default: true
	MaxKeywordResults int   `yaml:"max_keyword_results"` // default: 3
	CorpusScanCap     int   `yaml:"corpus_scan_cap"`     // default: 1000

	Ranking ranking.RankingConfig `yaml:"ranking"`
}

// DefaultConfig returns the default retrieval configuration.
func DefaultConfig() *Config {
	anchoring := true
	return &Config{
		TopK:                  10,
		MinResultsRequired:    1,
		MaxConcurrentVariants: 5,
		VariantTimeout:        5 * time.Second,
		RequestTimeout:        30 * time.Second,
		KeywordAnchoring:      &anchoring,
		MaxKeywordResults:     3,
		CorpusScanCap:         1000,
		Ranking:               *ranking.DefaultRankingConfig(),
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.TopK == 0 {
		c.TopK = d.TopK
	}
	if c.MinResultsRequired == 0 {
		c.MinResultsRequired = d.MinResultsRequired
	}
	if c.MaxConcurrentVariants == 0 {
		c.MaxConcurrentVariants = d.MaxConcurrentVariants
	}
	if c.VariantTimeout == 0 {
		c.VariantTimeout = d.VariantTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.KeywordAnchoring == nil {
		c.KeywordAnchoring = d.KeywordAnchoring
	}
	if c.MaxKeywordResults == 0 {
		c.MaxKeywordResults = d.MaxKeywordResults
	}
	if c.CorpusScanCap == 0 {
		c.CorpusScanCap = d.CorpusScanCap
	}
	c.Ranking.ApplyDefaults()
}

// KeywordAnchoringEnabled reports whether the keyword fallback is on.
func (c *Config) KeywordAnchoringEnabled() bool {
	return c.KeywordAnchoring == nil || *c.KeywordAnchoring
}

// Validate checks configuration invariants. Violations are fatal at
// startup.
func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.MinResultsRequired < 0 {
		return fmt.Errorf("min_results_required cannot be negative, got %d", c.MinResultsRequired)
	}
	if c.MaxConcurrentVariants <= 0 {
		return fmt.Errorf("max_concurrent_variants must be positive, got %d", c.MaxConcurrentVariants)
	}
	if c.MaxKeywordResults <= 0 {
		return fmt.Errorf("max_keyword_results must be positive, got %d", c.MaxKeywordResults)
	}
	if c.CorpusScanCap <= 0 {
		return fmt.Errorf("corpus_scan_cap must be positive, got %d", c.CorpusScanCap)
	}
	return c.Ranking.Validate()
}
