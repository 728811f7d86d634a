package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	APIKey string

	// Data layout
	DataDir string

	// Qdrant connection
	QdrantHost       string
	QdrantPort       int
	QdrantAPIKey     string
	QdrantUseTLS     bool
	QdrantCollection string

	// Embeddings
	Embedder       string
	OpenAIAPIKey   string
	EmbeddingModel string
	EmbeddingDim   int
	OllamaURL      string

	// Pipeline tuning
	EmbedBatchSize    int
	SourceConcurrency int
	DownloadTimeout   time.Duration

	// Run state
	RunTTL time.Duration
}

func Load() Config {
	// Best effort: a missing .env just means the environment is already set.
	_ = godotenv.Load()

	cfg := Config{
		Port:   envOr("PORT", "8091"),
		APIKey: os.Getenv("LLMSPLIT_API_KEY"),

		DataDir: envOr("DATA_DIR", "data"),

		QdrantHost:       envOr("QDRANT_HOST", "localhost"),
		QdrantPort:       envInt("QDRANT_PORT", 6334),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		QdrantUseTLS:     envBool("QDRANT_USE_TLS", false),
		QdrantCollection: envOr("QDRANT_COLLECTION", "llms-full-silver"),

		Embedder:       envOr("EMBEDDER", "openai"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel: envOr("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDim:   envInt("EMBEDDING_DIM", 1536),
		OllamaURL:      envOr("OLLAMA_URL", "http://localhost:11434"),

		EmbedBatchSize:    envInt("EMBED_BATCH_SIZE", 100),
		SourceConcurrency: envInt("SOURCE_CONCURRENCY", 4),
		DownloadTimeout:   envDuration("DOWNLOAD_TIMEOUT", 60*time.Second),

		RunTTL: envDuration("RUN_TTL", 1*time.Hour),
	}

	if cfg.EmbedBatchSize <= 0 {
		cfg.EmbedBatchSize = 100
	}
	if cfg.SourceConcurrency <= 0 {
		cfg.SourceConcurrency = 4
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = 60 * time.Second
	}
	if cfg.RunTTL <= 0 {
		cfg.RunTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the settings the configured backends actually need.
func (c Config) Validate() error {
	switch c.Embedder {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when EMBEDDER=openai")
		}
	case "ollama", "mock":
	default:
		return fmt.Errorf("unknown EMBEDDER %q", c.Embedder)
	}
	if c.QdrantHost == "" {
		return fmt.Errorf("QDRANT_HOST is required")
	}
	if c.QdrantCollection == "" {
		return fmt.Errorf("QDRANT_COLLECTION is required")
	}
	return nil
}

// ValidateServe additionally requires the HTTP API key.
func (c Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("LLMSPLIT_API_KEY is required to serve the HTTP API")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
