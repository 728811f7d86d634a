package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dgallion1/llmsplit/internal/source"
)

// Client downloads llms.txt and llms-full.txt files from documentation
// sites.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// maxBodyBytes caps a single download; llms-full.txt blobs run tens of
// megabytes, not hundreds.
const maxBodyBytes = 256 << 20

// FileResult records the outcome of one file download.
type FileResult struct {
	URL       string `json:"url"`
	Status    string `json:"status"`
	SizeBytes int    `json:"size_bytes"`
	Error     string `json:"error,omitempty"`
}

// SourceDownload holds both files for one source. Text fields are empty
// when the corresponding download failed.
type SourceDownload struct {
	Source    string     `json:"source"`
	Index     FileResult `json:"llms.txt"`
	Full      FileResult `json:"llms-full.txt"`
	IndexText string     `json:"-"`
	FullText  string     `json:"-"`
}

// OK reports whether the llms-full.txt blob, the one the pipeline actually
// segments, was retrieved.
func (d SourceDownload) OK() bool {
	return d.Full.Status == "success"
}

// Get fetches a single URL and returns the body as text.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(body), nil
}

// DownloadSource fetches the index and full files for one source
// concurrently. Failures are recorded per file, never returned as an
// error: one missing llms.txt must not block segmentation of the blob.
func (c *Client) DownloadSource(ctx context.Context, src source.Source) SourceDownload {
	d := SourceDownload{Source: src.Name}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.IndexText, d.Index = c.fetchFile(ctx, src.IndexURL)
	}()
	go func() {
		defer wg.Done()
		d.FullText, d.Full = c.fetchFile(ctx, src.FullURL)
	}()
	wg.Wait()

	return d
}

func (c *Client) fetchFile(ctx context.Context, url string) (string, FileResult) {
	text, err := c.Get(ctx, url)
	if err != nil {
		return "", FileResult{URL: url, Status: "failed", Error: err.Error()}
	}
	return text, FileResult{URL: url, Status: "success", SizeBytes: len(text)}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
