package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RunStatus is the overall state of one pipeline execution.
type RunStatus string

const (
	RunQueued    RunStatus = "queued"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunPartial   RunStatus = "partial"
	RunFailed    RunStatus = "failed"
)

// SourceStatus is the state of one source within a run.
type SourceStatus string

const (
	SourceQueued      SourceStatus = "queued"
	SourceDownloading SourceStatus = "downloading"
	SourceSplitting   SourceStatus = "splitting"
	SourceEmbedding   SourceStatus = "embedding"
	SourceUploading   SourceStatus = "uploading"
	SourceCompleted   SourceStatus = "completed"
	SourceFailed      SourceStatus = "failed"
)

// SourceResult tracks one source's progress and outcome within a run.
type SourceResult struct {
	Source       string       `json:"source"`
	Status       SourceStatus `json:"status"`
	PageCount    int          `json:"page_count"`
	AvgPageSize  float64      `json:"avg_page_size"`
	IndexEntries int          `json:"index_entries,omitempty"`
	Uploaded     int          `json:"uploaded"`
	Error        string       `json:"error,omitempty"`
}

// Run tracks the state of one pipeline execution across sources.
type Run struct {
	mu sync.Mutex

	ID        string
	Status    RunStatus
	Results   []*SourceResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRun creates a queued run with one pending result slot per source.
func NewRun(sourceNames []string) *Run {
	now := time.Now()
	r := &Run{
		ID:        uuid.NewString(),
		Status:    RunQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, name := range sourceNames {
		r.Results = append(r.Results, &SourceResult{Source: name, Status: SourceQueued})
	}
	return r
}

// SetStatus updates the run-level status.
func (r *Run) SetStatus(status RunStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.UpdatedAt = time.Now()
}

// Update applies fn to the named source's result under the run lock.
func (r *Run) Update(sourceName string, fn func(*SourceResult)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.Results {
		if res.Source == sourceName {
			fn(res)
			break
		}
	}
	r.UpdatedAt = time.Now()
}

// Finish derives the final run status from the per-source outcomes.
func (r *Run) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	completed, failed := 0, 0
	for _, res := range r.Results {
		switch res.Status {
		case SourceCompleted:
			completed++
		case SourceFailed:
			failed++
		}
	}
	switch {
	case failed == 0:
		r.Status = RunCompleted
	case completed == 0:
		r.Status = RunFailed
	default:
		r.Status = RunPartial
	}
	r.UpdatedAt = time.Now()
}

// RunSnapshot is a read-only, JSON-safe copy of run state.
type RunSnapshot struct {
	ID        string         `json:"run_id"`
	Status    RunStatus      `json:"status"`
	Results   []SourceResult `json:"results"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Snapshot copies the run state for serialization.
func (r *Run) Snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := RunSnapshot{
		ID:        r.ID,
		Status:    r.Status,
		Results:   make([]SourceResult, 0, len(r.Results)),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for _, res := range r.Results {
		snap.Results = append(snap.Results, *res)
	}
	return snap
}

// RunStore is a thread-safe in-memory run registry with TTL eviction.
type RunStore struct {
	mu   sync.Mutex
	runs map[string]*Run
	ttl  time.Duration
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		runs: make(map[string]*Run),
		ttl:  ttl,
	}
}

func (s *RunStore) Put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

func (s *RunStore) Get(id string) *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id]
}

// Cleanup removes runs that have not been touched within the TTL.
func (s *RunStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, run := range s.runs {
		run.mu.Lock()
		stale := now.Sub(run.UpdatedAt) > s.ttl
		run.mu.Unlock()
		if stale {
			delete(s.runs, id)
		}
	}
}
