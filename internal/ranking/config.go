package ranking

import (
	"fmt"
	"math"
)

// RankingConfig holds all configuration for scoring and fusion.
type RankingConfig struct {
	// Fusion weights, must sum to 1
	SemanticWeight float64 `yaml:"semantic_weight"` // default: 0.7
	KeywordWeight  float64 `yaml:"keyword_weight"`  // default: 0.3

	// Similarity bounds, must be ordered min <= medium <= high
	MinSimilarity    float64 `yaml:"min_similarity"`    // default: 0.2
	MediumSimilarity float64 `yaml:"medium_similarity"` // default: 0.5
	HighSimilarity   float64 `yaml:"high_similarity"`   // default: 0.8

	// Threshold settings
	BaseThreshold     float64 `yaml:"base_threshold"`     // default: 0.25
	AdaptiveThreshold *bool   `yaml:"adaptive_threshold"` // default: true

	// Keyword relevance component weights
	DensityWeight  float64 `yaml:"density_weight"`  // default: 0.4
	CoverageWeight float64 `yaml:"coverage_weight"` // default: 0.4
	PositionWeight float64 `yaml:"position_weight"` // default: 0.2

	// Intent boost values
	TemporalBoost     float64 `yaml:"temporal_boost"`     // default: 0.1 per occurrence
	MonetaryBoost     float64 `yaml:"monetary_boost"`     // default: 0.1 per occurrence
	DefinitionalBoost float64 `yaml:"definitional_boost"` // default: 0.15 per occurrence
	MaxIntentBoost    float64 `yaml:"max_intent_boost"`   // default: 0.3 per passage
	DefinitionSection float64 `yaml:"definition_section"` // default: 0.2
	ExclusionSection  float64 `yaml:"exclusion_section"`  // default: 0.15
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	adaptive := true
	return &RankingConfig{
		SemanticWeight: 0.7,
		KeywordWeight:  0.3,

		MinSimilarity:    0.2,
		MediumSimilarity: 0.5,
		HighSimilarity:   0.8,

		BaseThreshold:     0.25,
		AdaptiveThreshold: &adaptive,

		DensityWeight:  0.4,
		CoverageWeight: 0.4,
		PositionWeight: 0.2,

		TemporalBoost:     0.1,
		MonetaryBoost:     0.1,
		DefinitionalBoost: 0.15,
		MaxIntentBoost:    0.3,
		DefinitionSection: 0.2,
		ExclusionSection:  0.15,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	d := DefaultRankingConfig()
	if c.SemanticWeight == 0 && c.KeywordWeight == 0 {
		c.SemanticWeight = d.SemanticWeight
		c.KeywordWeight = d.KeywordWeight
	}
	if c.MinSimilarity == 0 {
		c.MinSimilarity = d.MinSimilarity
	}
	if c.MediumSimilarity == 0 {
		c.MediumSimilarity = d.MediumSimilarity
	}
	if c.HighSimilarity == 0 {
		c.HighSimilarity = d.HighSimilarity
	}
	if c.BaseThreshold == 0 {
		c.BaseThreshold = d.BaseThreshold
	}
	if c.AdaptiveThreshold == nil {
		c.AdaptiveThreshold = d.AdaptiveThreshold
	}
	if c.DensityWeight == 0 && c.CoverageWeight == 0 && c.PositionWeight == 0 {
		c.DensityWeight = d.DensityWeight
		c.CoverageWeight = d.CoverageWeight
		c.PositionWeight = d.PositionWeight
	}
	if c.TemporalBoost == 0 {
		c.TemporalBoost = d.TemporalBoost
	}
	if c.MonetaryBoost == 0 {
		c.MonetaryBoost = d.MonetaryBoost
	}
	if c.DefinitionalBoost == 0 {
		c.DefinitionalBoost = d.DefinitionalBoost
	}
	if c.MaxIntentBoost == 0 {
		c.MaxIntentBoost = d.MaxIntentBoost
	}
	if c.DefinitionSection == 0 {
		c.DefinitionSection = d.DefinitionSection
	}
	if c.ExclusionSection == 0 {
		c.ExclusionSection = d.ExclusionSection
	}
}

// Adaptive reports whether the adaptive threshold is enabled.
func (c *RankingConfig) Adaptive() bool {
	return c.AdaptiveThreshold == nil || *c.AdaptiveThreshold
}

// Validate checks the configuration invariants. Violations are fatal at
// startup.
func (c *RankingConfig) Validate() error {
	if math.Abs(c.SemanticWeight+c.KeywordWeight-1.0) > 1e-6 {
		return fmt.Errorf("fusion weights must sum to 1, got %.3f + %.3f",
			c.SemanticWeight, c.KeywordWeight)
	}
	if c.SemanticWeight < 0 || c.KeywordWeight < 0 {
		return fmt.Errorf("fusion weights must be non-negative")
	}
	if c.MinSimilarity > c.MediumSimilarity || c.MediumSimilarity > c.HighSimilarity {
		return fmt.Errorf("similarity bounds out of order: min=%.2f medium=%.2f high=%.2f",
			c.MinSimilarity, c.MediumSimilarity, c.HighSimilarity)
	}
	if c.MinSimilarity < 0 || c.HighSimilarity > 1 {
		return fmt.Errorf("similarity bounds must lie within [0, 1]")
	}
	if c.BaseThreshold < 0 || c.BaseThreshold > 1 {
		return fmt.Errorf("base threshold %.2f out of range [0, 1]", c.BaseThreshold)
	}
	return nil
}
