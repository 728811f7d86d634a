package embed

import (
	"context"
	"fmt"
)

// Embedder generates vector embeddings for page content.
type Embedder interface {
	// EmbedBatch returns one vector per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the width of the vectors this embedder produces.
	Dimension() int
}

// Config selects and configures an embedder backend.
type Config struct {
	Provider string // "openai", "ollama" or "mock"
	APIKey   string // openai only
	Model    string
	BaseURL  string // ollama only
	Dim      int
}

// New creates an embedder for the configured provider.
func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai embedder requires an api key")
		}
		return NewOpenAIEmbedder(cfg.APIKey, cfg.Model, cfg.Dim), nil
	case "ollama":
		return NewOllamaEmbedder(cfg.BaseURL, cfg.Model, cfg.Dim), nil
	case "mock":
		dim := cfg.Dim
		if dim <= 0 {
			dim = 384
		}
		return NewMockEmbedder(dim), nil
	default:
		return nil, fmt.Errorf("unknown embedder provider %q", cfg.Provider)
	}
}

// RetryableError indicates a transient backend failure (rate limit or
// server error) that is worth retrying with backoff.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable embedding error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
