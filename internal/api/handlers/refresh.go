package handlers

import (
	"log/slog"
	"net/http"

	"github.com/KBRglobal/travi-final-website-sub003/internal/feeds"
)

// Refresh handles POST /api/refresh. It runs the full ingestion pipeline
// synchronously: fetch every active source, analyze each item, store the
// results, and report what happened.
func Refresh(ingestor *feeds.Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := ingestor.Refresh(r.Context())
		if err != nil {
			slog.Error("refresh failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Refresh failed")
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
