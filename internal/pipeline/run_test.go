package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dgallion1/llmsplit/internal/embed"
)

func TestRun_FinishDerivesStatus(t *testing.T) {
	cases := []struct {
		name     string
		statuses []SourceStatus
		want     RunStatus
	}{
		{"all completed", []SourceStatus{SourceCompleted, SourceCompleted}, RunCompleted},
		{"all failed", []SourceStatus{SourceFailed, SourceFailed}, RunFailed},
		{"mixed", []SourceStatus{SourceCompleted, SourceFailed}, RunPartial},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			names := make([]string, len(c.statuses))
			for i := range c.statuses {
				names[i] = fmt.Sprintf("S%d", i)
			}
			run := NewRun(names)
			for i, st := range c.statuses {
				run.Update(names[i], func(res *SourceResult) { res.Status = st })
			}
			run.Finish()
			if run.Snapshot().Status != c.want {
				t.Errorf("got %q, want %q", run.Snapshot().Status, c.want)
			}
		})
	}
}

func TestRun_SnapshotIsACopy(t *testing.T) {
	run := NewRun([]string{"A"})
	snap := run.Snapshot()
	snap.Results[0].Status = SourceFailed

	if run.Snapshot().Results[0].Status != SourceQueued {
		t.Error("mutating a snapshot leaked into the run")
	}
}

func TestRunStore_PutGetCleanup(t *testing.T) {
	s := NewRunStore(time.Millisecond)
	run := NewRun([]string{"A"})
	s.Put(run)

	if got := s.Get(run.ID); got != run {
		t.Fatal("expected to get the stored run back")
	}

	time.Sleep(5 * time.Millisecond)
	s.Cleanup()
	if s.Get(run.ID) != nil {
		t.Error("expired run should have been evicted")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&embed.RetryableError{StatusCode: 429}) {
		t.Error("RetryableError must be retryable")
	}
	wrapped := fmt.Errorf("batch 3: %w", &embed.RetryableError{StatusCode: 503})
	if !IsRetryable(wrapped) {
		t.Error("wrapped RetryableError must be retryable")
	}
	if IsRetryable(errors.New("bad request")) {
		t.Error("plain errors are not retryable")
	}
}

func TestBackoff_GrowsAndCaps(t *testing.T) {
	if Backoff(0) < time.Second {
		t.Error("first backoff below base")
	}
	if Backoff(10) > 45*time.Second {
		t.Error("backoff exceeds cap plus jitter")
	}
}
