package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
)

const jobColumns = `id, kind, status, payload, result, error, created_at, started_at, finished_at`

// CreateJob enqueues a new content job and returns its ID.
func (s *Store) CreateJob(ctx context.Context, kind, payload string) (int64, error) {
	if !models.ValidJobKind(kind) {
		return 0, fmt.Errorf("unknown job kind %q", kind)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO content_jobs (kind, status, payload) VALUES (?, ?, ?)`,
		kind, models.JobQueued, nullableString(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("creating %s job: %w", kind, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting job id: %w", err)
	}
	return id, nil
}

// GetJobByID returns the job with the given ID.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetJobByID(ctx context.Context, id int64) (*models.ContentJob, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM content_jobs WHERE id = ?`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting job by id: %w", err)
	}
	return job, nil
}

// ListJobs returns jobs newest first, optionally filtered by status.
func (s *Store) ListJobs(ctx context.Context, status string, limit int) ([]models.ContentJob, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + jobColumns + ` FROM content_jobs`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.ContentJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job rows: %w", err)
	}

	if jobs == nil {
		jobs = []models.ContentJob{}
	}
	return jobs, nil
}

// ClaimNextJob atomically moves the oldest queued job to running and returns
// it. Returns nil, ErrNotFound when the queue is empty.
func (s *Store) ClaimNextJob(ctx context.Context) (*models.ContentJob, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning claim transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM content_jobs WHERE status = ? ORDER BY id LIMIT 1`,
		models.JobQueued,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting queued job: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE content_jobs SET status = ?, started_at = datetime('now') WHERE id = ?`,
		models.JobRunning, id,
	); err != nil {
		return nil, fmt.Errorf("marking job %d running: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing claim: %w", err)
	}

	return s.GetJobByID(ctx, id)
}

// CompleteJob marks a running job completed with the given result.
func (s *Store) CompleteJob(ctx context.Context, id int64, result string) error {
	return s.finishJob(ctx, id, models.JobCompleted, result, "")
}

// FailJob marks a running job failed with the given error message.
func (s *Store) FailJob(ctx context.Context, id int64, errMsg string) error {
	return s.finishJob(ctx, id, models.JobFailed, "", errMsg)
}

func (s *Store) finishJob(ctx context.Context, id int64, status, result, errMsg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE content_jobs SET
			status      = ?,
			result      = ?,
			error       = ?,
			finished_at = datetime('now')
		 WHERE id = ? AND status = ?`,
		status, nullableString(result), nullableString(errMsg), id, models.JobRunning,
	)
	if err != nil {
		return fmt.Errorf("finishing job %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for job %d: %w", id, err)
	}
	if n == 0 {
		return ErrInvalidState
	}
	return nil
}

// RequeueRunningJobs moves every running job back to queued and returns how
// many were moved. It runs once at startup: a job still marked running then
// was claimed by a previous process that died before finishing it.
func (s *Store) RequeueRunningJobs(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE content_jobs SET status = ?, started_at = NULL WHERE status = ?`,
		models.JobQueued, models.JobRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("requeueing running jobs: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking requeued rows: %w", err)
	}
	return int(n), nil
}

// CancelJob cancels a queued job. Running or finished jobs cannot be
// cancelled: ErrInvalidState is returned for those, ErrNotFound when no job
// with the ID exists.
func (s *Store) CancelJob(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE content_jobs SET status = ?, finished_at = datetime('now')
		 WHERE id = ? AND status = ?`,
		models.JobCancelled, id, models.JobQueued,
	)
	if err != nil {
		return fmt.Errorf("cancelling job %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for job %d: %w", id, err)
	}
	if n == 0 {
		if _, err := s.GetJobByID(ctx, id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrInvalidState
	}
	return nil
}

// JobSummary returns per-status job counts for the dashboard.
func (s *Store) JobSummary(ctx context.Context) (models.JobSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM content_jobs GROUP BY status`)
	if err != nil {
		return models.JobSummary{}, fmt.Errorf("summarizing jobs: %w", err)
	}
	defer rows.Close()

	var summary models.JobSummary
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return models.JobSummary{}, fmt.Errorf("scanning job summary row: %w", err)
		}
		switch status {
		case models.JobQueued:
			summary.Queued = count
		case models.JobRunning:
			summary.Running = count
		case models.JobCompleted:
			summary.Completed = count
		case models.JobFailed:
			summary.Failed = count
		case models.JobCancelled:
			summary.Cancelled = count
		}
	}
	if err := rows.Err(); err != nil {
		return models.JobSummary{}, fmt.Errorf("iterating job summary rows: %w", err)
	}

	return summary, nil
}

// scanJob reads one content job row.
func scanJob(row scanner) (*models.ContentJob, error) {
	var (
		job        models.ContentJob
		payload    sql.NullString
		result     sql.NullString
		errMsg     sql.NullString
		createdAt  string
		startedAt  sql.NullString
		finishedAt sql.NullString
	)

	if err := row.Scan(
		&job.ID, &job.Kind, &job.Status, &payload, &result, &errMsg,
		&createdAt, &startedAt, &finishedAt,
	); err != nil {
		return nil, err
	}

	job.Payload = payload.String
	job.Result = result.String
	job.Error = errMsg.String
	job.CreatedAt = parseTime(createdAt)
	job.StartedAt = parseTimePtr(nullStringToPtr(startedAt))
	job.FinishedAt = parseTimePtr(nullStringToPtr(finishedAt))

	return &job, nil
}
