package embed

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	e := NewMockEmbedder(64)

	a, err := e.EmbedBatch(context.Background(), []string{"hello", "world", "hello"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.EmbedBatch(context.Background(), []string{"hello"})
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != 3 || len(a[0]) != 64 {
		t.Fatalf("unexpected shape: %d x %d", len(a), len(a[0]))
	}
	for i := range a[0] {
		if a[0][i] != a[2][i] || a[0][i] != b[0][i] {
			t.Fatal("identical text must embed identically")
		}
	}

	same := true
	for i := range a[0] {
		if a[0][i] != a[1][i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts produced identical vectors")
	}
}

func TestMockEmbedder_UnitLength(t *testing.T) {
	e := NewMockEmbedder(128)
	vecs, err := e.EmbedBatch(context.Background(), []string{"some page content"})
	if err != nil {
		t.Fatal(err)
	}

	var norm float64
	for _, v := range vecs[0] {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1) > 1e-3 {
		t.Errorf("expected unit vector, got squared norm %v", norm)
	}
}

func TestNew_ProviderDispatch(t *testing.T) {
	if _, err := New(Config{Provider: "openai"}); err == nil {
		t.Error("openai without api key should fail")
	}
	e, err := New(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Dimension() != 1536 {
		t.Errorf("openai default dimension: got %d", e.Dimension())
	}

	e, err = New(Config{Provider: "mock"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Dimension() != 384 {
		t.Errorf("mock default dimension: got %d", e.Dimension())
	}

	if _, err := New(Config{Provider: "duckdb"}); err == nil {
		t.Error("unknown provider should fail")
	}
}

func ollamaStub(t *testing.T, dim int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vec := make([]float32, dim)
		for i := range vec {
			vec[i] = 0.5
		}
		json.NewEncoder(w).Encode(map[string]any{"embedding": vec})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// The embedder is shared across source goroutines, so concurrent batches
// and Dimension reads must be safe.
func TestOllamaEmbedder_ConcurrentBatches(t *testing.T) {
	srv := ollamaStub(t, 8)
	e := NewOllamaEmbedder(srv.URL, "test-model", 8)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
			if err != nil {
				t.Error(err)
				return
			}
			if len(vecs) != 3 || len(vecs[0]) != e.Dimension() {
				t.Errorf("unexpected shape: %d x %d", len(vecs), len(vecs[0]))
			}
		}()
	}
	wg.Wait()
}

func TestOllamaEmbedder_WidthMismatchIsAnError(t *testing.T) {
	srv := ollamaStub(t, 768)
	e := NewOllamaEmbedder(srv.URL, "nomic-embed-text", 1536)

	_, err := e.EmbedBatch(context.Background(), []string{"page content"})
	if err == nil {
		t.Fatal("expected a width mismatch error")
	}
	if !strings.Contains(err.Error(), "expected 1536") {
		t.Errorf("error should name the configured width: %v", err)
	}
	if e.Dimension() != 1536 {
		t.Errorf("configured width must not change: got %d", e.Dimension())
	}
}

func TestRetryableError_Message(t *testing.T) {
	err := &RetryableError{StatusCode: 429, Message: "slow down"}
	if got := err.Error(); got == "" {
		t.Error("empty error message")
	}
}
