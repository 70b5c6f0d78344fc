package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
)

func TestCreateJob(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateJob(ctx, models.JobKindDraft, `{"destination":"dubai"}`)
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}

	job, err := store.GetJobByID(ctx, id)
	if err != nil {
		t.Fatalf("GetJobByID error: %v", err)
	}
	if job.Kind != models.JobKindDraft {
		t.Errorf("Kind = %q, want %q", job.Kind, models.JobKindDraft)
	}
	if job.Status != models.JobQueued {
		t.Errorf("Status = %q, want %q", job.Status, models.JobQueued)
	}
	if job.StartedAt != nil || job.FinishedAt != nil {
		t.Error("new job should have no started/finished timestamps")
	}
}

func TestCreateJob_InvalidKind(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.CreateJob(context.Background(), "mystery", ""); err == nil {
		t.Fatal("expected error for unknown job kind, got nil")
	}
}

func TestGetJobByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetJobByID(context.Background(), 99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetJobByID error = %v, want ErrNotFound", err)
	}
}

func TestClaimNextJob_FIFO(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateJob(ctx, models.JobKindDraft, "first")
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	second, err := store.CreateJob(ctx, models.JobKindTranslation, "second")
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}

	claimed, err := store.ClaimNextJob(ctx)
	if err != nil {
		t.Fatalf("ClaimNextJob error: %v", err)
	}
	if claimed.ID != first {
		t.Errorf("claimed job %d, want oldest queued %d", claimed.ID, first)
	}
	if claimed.Status != models.JobRunning {
		t.Errorf("claimed status = %q, want %q", claimed.Status, models.JobRunning)
	}
	if claimed.StartedAt == nil {
		t.Error("claimed job should have StartedAt set")
	}

	claimed2, err := store.ClaimNextJob(ctx)
	if err != nil {
		t.Fatalf("second ClaimNextJob error: %v", err)
	}
	if claimed2.ID != second {
		t.Errorf("claimed job %d, want %d", claimed2.ID, second)
	}

	if _, err := store.ClaimNextJob(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ClaimNextJob on empty queue error = %v, want ErrNotFound", err)
	}
}

func TestCompleteJob(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateJob(ctx, models.JobKindFeedRefresh, "")
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}

	// Completing a job that was never claimed is an invalid transition.
	if err := store.CompleteJob(ctx, id, "done"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("CompleteJob on queued job error = %v, want ErrInvalidState", err)
	}

	if _, err := store.ClaimNextJob(ctx); err != nil {
		t.Fatalf("ClaimNextJob error: %v", err)
	}
	if err := store.CompleteJob(ctx, id, "12 new articles"); err != nil {
		t.Fatalf("CompleteJob error: %v", err)
	}

	job, err := store.GetJobByID(ctx, id)
	if err != nil {
		t.Fatalf("GetJobByID error: %v", err)
	}
	if job.Status != models.JobCompleted {
		t.Errorf("Status = %q, want %q", job.Status, models.JobCompleted)
	}
	if job.Result != "12 new articles" {
		t.Errorf("Result = %q", job.Result)
	}
	if job.FinishedAt == nil {
		t.Error("completed job should have FinishedAt set")
	}
}

func TestFailJob(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateJob(ctx, models.JobKindDraft, "")
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	if _, err := store.ClaimNextJob(ctx); err != nil {
		t.Fatalf("ClaimNextJob error: %v", err)
	}

	if err := store.FailJob(ctx, id, "provider timeout"); err != nil {
		t.Fatalf("FailJob error: %v", err)
	}

	job, err := store.GetJobByID(ctx, id)
	if err != nil {
		t.Fatalf("GetJobByID error: %v", err)
	}
	if job.Status != models.JobFailed {
		t.Errorf("Status = %q, want %q", job.Status, models.JobFailed)
	}
	if job.Error != "provider timeout" {
		t.Errorf("Error = %q", job.Error)
	}

	// Terminal jobs cannot be finished again.
	if err := store.CompleteJob(ctx, id, ""); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("CompleteJob on failed job error = %v, want ErrInvalidState", err)
	}
}

func TestCancelJob(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateJob(ctx, models.JobKindTranslation, "")
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}

	if err := store.CancelJob(ctx, id); err != nil {
		t.Fatalf("CancelJob error: %v", err)
	}
	job, err := store.GetJobByID(ctx, id)
	if err != nil {
		t.Fatalf("GetJobByID error: %v", err)
	}
	if job.Status != models.JobCancelled {
		t.Errorf("Status = %q, want %q", job.Status, models.JobCancelled)
	}

	// Cancelled jobs are no longer queued.
	if err := store.CancelJob(ctx, id); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second CancelJob error = %v, want ErrInvalidState", err)
	}
	if err := store.CancelJob(ctx, 99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("CancelJob on missing job error = %v, want ErrNotFound", err)
	}
}

func TestCancelJob_RunningNotCancellable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateJob(ctx, models.JobKindDraft, "")
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	if _, err := store.ClaimNextJob(ctx); err != nil {
		t.Fatalf("ClaimNextJob error: %v", err)
	}

	if err := store.CancelJob(ctx, id); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("CancelJob on running job error = %v, want ErrInvalidState", err)
	}
}

func TestListJobs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.CreateJob(ctx, models.JobKindDraft, ""); err != nil {
			t.Fatalf("CreateJob error: %v", err)
		}
	}
	if _, err := store.ClaimNextJob(ctx); err != nil {
		t.Fatalf("ClaimNextJob error: %v", err)
	}

	all, err := store.ListJobs(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListJobs error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d jobs, want 3", len(all))
	}

	running, err := store.ListJobs(ctx, models.JobRunning, 0)
	if err != nil {
		t.Fatalf("ListJobs(running) error: %v", err)
	}
	if len(running) != 1 {
		t.Fatalf("got %d running jobs, want 1", len(running))
	}

	limited, err := store.ListJobs(ctx, "", 2)
	if err != nil {
		t.Fatalf("ListJobs(limit) error: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("got %d jobs, want 2", len(limited))
	}
}

func TestJobSummary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	empty, err := store.JobSummary(ctx)
	if err != nil {
		t.Fatalf("JobSummary error: %v", err)
	}
	if empty != (models.JobSummary{}) {
		t.Errorf("empty summary = %+v, want zero value", empty)
	}

	ids := make([]int64, 4)
	for i := range ids {
		id, err := store.CreateJob(ctx, models.JobKindDraft, "")
		if err != nil {
			t.Fatalf("CreateJob error: %v", err)
		}
		ids[i] = id
	}

	if _, err := store.ClaimNextJob(ctx); err != nil {
		t.Fatalf("ClaimNextJob error: %v", err)
	}
	if err := store.CompleteJob(ctx, ids[0], "ok"); err != nil {
		t.Fatalf("CompleteJob error: %v", err)
	}
	if _, err := store.ClaimNextJob(ctx); err != nil {
		t.Fatalf("ClaimNextJob error: %v", err)
	}
	if err := store.CancelJob(ctx, ids[2]); err != nil {
		t.Fatalf("CancelJob error: %v", err)
	}

	summary, err := store.JobSummary(ctx)
	if err != nil {
		t.Fatalf("JobSummary error: %v", err)
	}
	want := models.JobSummary{Queued: 1, Running: 1, Completed: 1, Cancelled: 1}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestRequeueRunningJobs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateJob(ctx, models.JobKindDraft, "{}")
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	if _, err := store.CreateJob(ctx, models.JobKindFeedRefresh, ""); err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}

	claimed, err := store.ClaimNextJob(ctx)
	if err != nil {
		t.Fatalf("ClaimNextJob error: %v", err)
	}
	if claimed.ID != first {
		t.Fatalf("claimed job %d, want %d", claimed.ID, first)
	}

	n, err := store.RequeueRunningJobs(ctx)
	if err != nil {
		t.Fatalf("RequeueRunningJobs error: %v", err)
	}
	if n != 1 {
		t.Fatalf("requeued %d jobs, want 1", n)
	}

	job, err := store.GetJobByID(ctx, first)
	if err != nil {
		t.Fatalf("GetJobByID error: %v", err)
	}
	if job.Status != models.JobQueued {
		t.Errorf("Status = %q, want %q", job.Status, models.JobQueued)
	}
	if job.StartedAt != nil {
		t.Errorf("StartedAt = %v, want nil after requeue", job.StartedAt)
	}

	// The requeued job is claimable again, and still first in line.
	reclaimed, err := store.ClaimNextJob(ctx)
	if err != nil {
		t.Fatalf("ClaimNextJob after requeue error: %v", err)
	}
	if reclaimed.ID != first {
		t.Errorf("reclaimed job %d, want %d", reclaimed.ID, first)
	}
}

func TestRequeueRunningJobs_NothingRunning(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateJob(ctx, models.JobKindDraft, "{}"); err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}

	n, err := store.RequeueRunningJobs(ctx)
	if err != nil {
		t.Fatalf("RequeueRunningJobs error: %v", err)
	}
	if n != 0 {
		t.Errorf("requeued %d jobs, want 0", n)
	}
}
