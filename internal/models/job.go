package models

import "time"

// Content job kinds.
const (
	JobKindDraft       = "draft"
	JobKindTranslation = "translation"
	JobKindFeedRefresh = "feed_refresh"
)

// Content job statuses.
const (
	JobQueued    = "queued"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
	JobCancelled = "cancelled"
)

// ContentJob is a unit of admin-dashboard work: an AI article draft, an AI
// translation, or a feed refresh. Jobs move queued -> running -> completed
// or failed; queued jobs may also be cancelled.
type ContentJob struct {
	ID         int64      `json:"id"`
	Kind       string     `json:"kind"`
	Status     string     `json:"status"`
	Payload    string     `json:"payload,omitempty"`
	Result     string     `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// ValidJobKind reports whether kind names a known job kind.
func ValidJobKind(kind string) bool {
	switch kind {
	case JobKindDraft, JobKindTranslation, JobKindFeedRefresh:
		return true
	}
	return false
}

// JobSummary holds per-status job counts for the dashboard.
type JobSummary struct {
	Queued    int `json:"queued"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Cancelled int `json:"cancelled"`
}
