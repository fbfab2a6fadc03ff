package retrieval

import (
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name: "weights must sum to one",
			mutate: func(c *Config) {
				c.Ranking.SemanticWeight = 0.8
				c.Ranking.KeywordWeight = 0.3
			},
			wantErr: true,
		},
		{
			name: "similarity bounds must be ordered",
			mutate: func(c *Config) {
				c.Ranking.MinSimilarity = 0.9
			},
			wantErr: true,
		},
		{
			name: "base threshold within unit range",
			mutate: func(c *Config) {
				c.Ranking.BaseThreshold = 1.5
			},
			wantErr: true,
		},
		{
			name: "scan cap must be positive",
			mutate: func(c *Config) {
				c.CorpusScanCap = -1
			},
			wantErr: true,
		},
		{
			name: "top_k must be positive",
			mutate: func(c *Config) {
				c.TopK = -5
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.TopK != 10 || cfg.MaxKeywordResults != 3 || cfg.CorpusScanCap != 1000 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.KeywordAnchoringEnabled() {
		t.Error("keyword anchoring should default to enabled")
	}
	if !cfg.Ranking.Adaptive() {
		t.Error("adaptive threshold should default to enabled")
	}
}
