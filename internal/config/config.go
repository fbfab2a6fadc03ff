// Package config provides configuration loading for the legal retrieval
// server: a YAML file as the base, with environment variables on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/omkar2816/Legal-RAG-System/internal/embedding"
	"github.com/omkar2816/Legal-RAG-System/internal/retrieval"
	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
)

// Config holds all configuration for the application.
type Config struct {
	Debug       bool               `yaml:"debug"`
	Server      ServerConfig       `yaml:"server"`
	Embedding   EmbeddingConfig    `yaml:"embedding"`
	VectorStore vectorstore.Config `yaml:"vector_store"`
	Retrieval   retrieval.Config   `yaml:"retrieval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// EmbeddingConfig holds embeddings client settings.
type EmbeddingConfig struct {
	Client    embedding.ClientConfig `yaml:"client"`
	CacheSize int                    `yaml:"cache_size"`
}

// Load builds the configuration: .env file if present, then the YAML file
// at path (optional, empty path skips it), then environment variable
// overrides, then defaults. The result is validated; validation errors are
// fatal at startup.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	ApplyDefaults(cfg)

	if err := cfg.Retrieval.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retrieval config: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays environment variables on the loaded file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v, ok := intEnv("SERVER_PORT"); ok {
		cfg.Server.Port = v
	}
	if v, ok := intEnv("RATE_LIMIT_PER_MINUTE"); ok {
		cfg.Server.RateLimitPerMinute = v
	}
	if v := os.Getenv("EMBEDDINGS_BASE_URL"); v != "" {
		cfg.Embedding.Client.BaseURL = v
	}
	if v := os.Getenv("EMBEDDINGS_API_KEY"); v != "" {
		cfg.Embedding.Client.APIKey = v
	}
	if v := os.Getenv("EMBEDDINGS_MODEL"); v != "" {
		cfg.Embedding.Client.Model = v
	}
	if v, ok := intEnv("EMBEDDINGS_DIMENSIONS"); ok {
		cfg.Embedding.Client.Dimensions = v
	}
	if v := os.Getenv("QDRANT_URL"); v != "" {
		cfg.VectorStore.URL = v
	}
	if v := os.Getenv("QDRANT_COLLECTION"); v != "" {
		cfg.VectorStore.Collection = v
	}
	if v := os.Getenv("VECTOR_STORE_BACKEND"); v != "" {
		cfg.VectorStore.Backend = v
	}
	if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}
}

func intEnv(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerMinute == 0 {
		cfg.Server.RateLimitPerMinute = 120
	}
	if cfg.Embedding.Client.BaseURL == "" {
		cfg.Embedding.Client.BaseURL = "http://localhost:8081"
	}
	if cfg.Embedding.Client.Model == "" {
		cfg.Embedding.Client.Model = "all-MiniLM-L6-v2"
	}
	if cfg.Embedding.Client.Dimensions == 0 {
		cfg.Embedding.Client.Dimensions = 384
	}
	if cfg.Embedding.Client.Timeout == 0 {
		cfg.Embedding.Client.Timeout = 10 * time.Second
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	cfg.VectorStore.ApplyDefaults()
	if cfg.VectorStore.VectorSize != cfg.Embedding.Client.Dimensions {
		cfg.VectorStore.VectorSize = cfg.Embedding.Client.Dimensions
	}
	cfg.Retrieval.ApplyDefaults()
}
