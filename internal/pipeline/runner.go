package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/llmsplit/internal/config"
	"github.com/dgallion1/llmsplit/internal/embed"
	"github.com/dgallion1/llmsplit/internal/fetch"
	"github.com/dgallion1/llmsplit/internal/index"
	"github.com/dgallion1/llmsplit/internal/segment"
	"github.com/dgallion1/llmsplit/internal/source"
	"github.com/dgallion1/llmsplit/internal/store"
	"github.com/dgallion1/llmsplit/internal/vectordb"
)

// VectorStore is the slice of the vector database the pipeline needs.
type VectorStore interface {
	EnsureCollection(ctx context.Context, dim int) error
	UpsertPages(ctx context.Context, sourceName string, pages []segment.Page, vectors [][]float32) error
	Validate(ctx context.Context, dim int, expected map[string]int, queryVector []float32) ([]vectordb.Check, error)
}

// Runner executes the download → segment → store → embed → upload pipeline.
// The embedder and vector store may be nil for runs that stop after
// segmentation.
type Runner struct {
	cfg      config.Config
	fetcher  *fetch.Client
	st       *store.Store
	embedder embed.Embedder
	vdb      VectorStore
	log      *slog.Logger
}

func NewRunner(cfg config.Config, fetcher *fetch.Client, st *store.Store, embedder embed.Embedder, vdb VectorStore, log *slog.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		fetcher:  fetcher,
		st:       st,
		embedder: embedder,
		vdb:      vdb,
		log:      log,
	}
}

// Execute processes every source in srcs, at most SourceConcurrency at a
// time. Sources are independent: one failure never aborts the others.
// Page ordering within a source is strict; ordering between sources is not.
func (r *Runner) Execute(ctx context.Context, run *Run, srcs []source.Source) {
	run.SetStatus(RunRunning)

	// Create the collection before the fan-out so concurrent sources never
	// race on check-then-create.
	if r.embedder != nil && r.vdb != nil {
		if err := r.EnsureCollection(ctx); err != nil {
			r.log.Error("collection setup failed", "error", err)
			for _, src := range srcs {
				run.Update(src.Name, func(res *SourceResult) {
					res.Status = SourceFailed
					res.Error = fmt.Sprintf("collection setup: %s", err)
				})
			}
			run.Finish()
			if err := r.st.WritePipelineManifest(run.Snapshot()); err != nil {
				r.log.Error("pipeline manifest write failed", "error", err)
			}
			return
		}
	}

	sem := make(chan struct{}, r.cfg.SourceConcurrency)
	var wg sync.WaitGroup
	for _, src := range srcs {
		wg.Add(1)
		sem <- struct{}{}
		go func(src source.Source) {
			defer wg.Done()
			defer func() { <-sem }()
			r.processSource(ctx, run, src)
		}(src)
	}
	wg.Wait()

	run.Finish()

	if err := r.st.WritePipelineManifest(run.Snapshot()); err != nil {
		r.log.Error("pipeline manifest write failed", "error", err)
	}
}

// processSource runs the full stage chain for one source, recording
// progress and the terminal outcome on the run.
func (r *Runner) processSource(ctx context.Context, run *Run, src source.Source) {
	log := r.log.With("source", src.Name, "strategy", string(src.Strategy))
	fail := func(stage string, err error) {
		log.Error(stage+" failed", "error", err)
		run.Update(src.Name, func(res *SourceResult) {
			res.Status = SourceFailed
			res.Error = fmt.Sprintf("%s: %s", stage, err)
		})
	}

	run.Update(src.Name, func(res *SourceResult) { res.Status = SourceDownloading })
	download, err := r.DownloadSource(ctx, src)
	if err != nil {
		fail("download", err)
		return
	}
	run.Update(src.Name, func(res *SourceResult) { res.IndexEntries = download.IndexEntries })

	run.Update(src.Name, func(res *SourceResult) { res.Status = SourceSplitting })
	manifest, err := r.SplitSource(src)
	if err != nil {
		fail("split", err)
		return
	}
	run.Update(src.Name, func(res *SourceResult) {
		res.PageCount = manifest.PageCount
		res.AvgPageSize = manifest.AvgPageSize
	})
	log.Info("segmented source", "pages", manifest.PageCount, "avg_page_size", int(manifest.AvgPageSize))

	if r.embedder == nil || r.vdb == nil {
		run.Update(src.Name, func(res *SourceResult) { res.Status = SourceCompleted })
		return
	}

	uploaded, err := r.UploadSource(ctx, src, func(status SourceStatus) {
		run.Update(src.Name, func(res *SourceResult) { res.Status = status })
	})
	if err != nil {
		fail("upload", err)
		return
	}
	log.Info("uploaded source", "points", uploaded)

	run.Update(src.Name, func(res *SourceResult) {
		res.Uploaded = uploaded
		res.Status = SourceCompleted
	})
}

// DownloadResult summarizes the download stage for one source.
type DownloadResult struct {
	fetch.SourceDownload
	IndexEntries int
}

// DownloadSource fetches both llms files, persists them under raw/, and
// counts the index entries for later comparison against the page count.
// A missing llms.txt is tolerated; a missing llms-full.txt is not.
func (r *Runner) DownloadSource(ctx context.Context, src source.Source) (*DownloadResult, error) {
	d := r.fetcher.DownloadSource(ctx, src)
	if !d.OK() {
		return nil, fmt.Errorf("fetch %s: %s", d.Full.URL, d.Full.Error)
	}

	if err := r.st.WriteRaw(src.Name, "llms-full.txt", d.FullText); err != nil {
		return nil, err
	}

	result := &DownloadResult{SourceDownload: d}
	if d.Index.Status == "success" {
		if err := r.st.WriteRaw(src.Name, "llms.txt", d.IndexText); err != nil {
			return nil, err
		}
		entries, err := index.Parse([]byte(d.IndexText))
		if err != nil {
			r.log.Warn("index parse failed", "source", src.Name, "error", err)
		} else {
			result.IndexEntries = len(entries)
		}
	}
	return result, nil
}

// SplitSource segments the stored llms-full.txt blob into pages and writes
// them plus the source manifest under pages/<source>/.
func (r *Runner) SplitSource(src source.Source) (*segment.SourceManifest, error) {
	text, err := r.st.ReadRaw(src.Name, "llms-full.txt")
	if err != nil {
		return nil, err
	}

	pages, manifest, err := segment.Process(src.Name, src.Strategy, text)
	if err != nil {
		return nil, err
	}

	if err := r.st.WritePages(src.Name, pages, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// EnsureCollection creates the vector collection for the configured
// embedding width if it does not exist yet. Callers running sources
// concurrently must call this once up front.
func (r *Runner) EnsureCollection(ctx context.Context) error {
	return r.vdb.EnsureCollection(ctx, r.embedder.Dimension())
}

// UploadSource embeds a source's stored pages in batches and upserts them
// into the vector collection, which must already exist. The progress
// callback, if non-nil, is told when a batch moves from embedding to
// upserting. Returns the number of points uploaded.
func (r *Runner) UploadSource(ctx context.Context, src source.Source, progress func(SourceStatus)) (int, error) {
	if progress == nil {
		progress = func(SourceStatus) {}
	}

	pages, err := r.st.ReadPages(src.Name)
	if err != nil {
		return 0, err
	}
	if len(pages) == 0 {
		return 0, fmt.Errorf("no stored pages for %s; run split first", src.Name)
	}

	uploaded := 0
	for start := 0; start < len(pages); start += r.cfg.EmbedBatchSize {
		end := min(start+r.cfg.EmbedBatchSize, len(pages))
		batch := pages[start:end]

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = p.Content
		}

		progress(SourceEmbedding)
		vectors, err := r.embedBatch(ctx, texts)
		if err != nil {
			return uploaded, fmt.Errorf("embed pages %d-%d: %w", start, end-1, err)
		}

		progress(SourceUploading)
		if err := r.vdb.UpsertPages(ctx, src.Name, batch, vectors); err != nil {
			return uploaded, err
		}
		uploaded += len(batch)
	}
	return uploaded, nil
}

// embedBatch calls the embedder with backoff on transient failures.
func (r *Runner) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	var lastErr error
	for attempt := range MaxRetries {
		vectors, lastErr = r.embedder.EmbedBatch(ctx, texts)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		r.log.Warn("retryable embedding error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return vectors, lastErr
}

// ValidateAll checks the vector collection against the stored manifests of
// srcs and runs a probe similarity query.
func (r *Runner) ValidateAll(ctx context.Context, srcs []source.Source) ([]vectordb.Check, error) {
	if r.embedder == nil || r.vdb == nil {
		return nil, fmt.Errorf("validation requires an embedder and a vector client")
	}

	expected := make(map[string]int, len(srcs))
	for _, src := range srcs {
		m, err := r.st.ReadSourceManifest(src.Name)
		if err != nil {
			return nil, fmt.Errorf("manifest for %s: %w", src.Name, err)
		}
		expected[src.Name] = m.PageCount
	}

	probe, err := r.embedBatch(ctx, []string{"how do I install and configure this tool"})
	if err != nil {
		return nil, fmt.Errorf("probe embedding: %w", err)
	}

	return r.vdb.Validate(ctx, r.embedder.Dimension(), expected, probe[0])
}
