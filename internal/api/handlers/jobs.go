package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
)

// CreateJob handles POST /api/jobs. The body names the job kind and carries
// an opaque payload the runner interprets per kind.
func CreateJob(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Kind    string          `json:"kind"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if !models.ValidJobKind(body.Kind) {
			writeError(w, http.StatusBadRequest, "Unknown job kind")
			return
		}

		id, err := store.CreateJob(ctx, body.Kind, string(body.Payload))
		if err != nil {
			slog.Error("failed to create job", "kind", body.Kind, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create job")
			return
		}

		job, err := store.GetJobByID(ctx, id)
		if err != nil {
			slog.Error("failed to load created job", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create job")
			return
		}

		writeJSON(w, http.StatusCreated, job)
	}
}

// ListJobs handles GET /api/jobs?status={status}&limit={limit}.
func ListJobs(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		jobs, err := store.ListJobs(ctx, r.URL.Query().Get("status"), parseLimit(r, 50))
		if err != nil {
			slog.Error("failed to list jobs", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list jobs")
			return
		}

		writeJSON(w, http.StatusOK, jobs)
	}
}

// GetJob handles GET /api/jobs/{id}.
func GetJob(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		job, err := store.GetJobByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Job not found")
				return
			}
			slog.Error("failed to get job", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get job")
			return
		}

		writeJSON(w, http.StatusOK, job)
	}
}

// CancelJob handles POST /api/jobs/{id}/cancel. Only queued jobs can be
// cancelled; anything else is a 409.
func CancelJob(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.CancelJob(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Job not found")
				return
			}
			if errors.Is(err, storage.ErrInvalidState) {
				writeError(w, http.StatusConflict, "Job is no longer queued")
				return
			}
			slog.Error("failed to cancel job", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to cancel job")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
	}
}

// JobSummary handles GET /api/jobs/summary. It returns per-status counts for
// the dashboard.
func JobSummary(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := store.JobSummary(r.Context())
		if err != nil {
			slog.Error("failed to summarize jobs", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to summarize jobs")
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
