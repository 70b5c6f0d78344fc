package handlers

import (
	"log/slog"
	"net/http"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
)

// SearchArticles handles GET /api/search?q={query}&limit={limit}. It performs
// full-text search over articles using FTS5.
func SearchArticles(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := r.URL.Query().Get("q")
		if query == "" {
			writeJSON(w, http.StatusOK, []models.Article{})
			return
		}

		articles, err := store.SearchArticles(ctx, query, parseLimit(r, 20))
		if err != nil {
			slog.Error("failed to search articles", "query", query, "error", err)
			writeError(w, http.StatusInternalServerError, "Search failed")
			return
		}

		writeJSON(w, http.StatusOK, articles)
	}
}
