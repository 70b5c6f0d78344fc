package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/KBRglobal/travi-final-website-sub003/internal/config"
	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
)

// GetTranslations handles GET /api/articles/{id}/translations.
func GetTranslations(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		translations, err := store.GetTranslations(ctx, id)
		if err != nil {
			slog.Error("failed to get translations", "article_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get translations")
			return
		}

		writeJSON(w, http.StatusOK, translations)
	}
}

// UpsertTranslation handles PUT /api/articles/{id}/translations. Reviewed
// human edits and machine output go through the same path; the status field
// says which one this is.
func UpsertTranslation(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var body struct {
			Locale string `json:"locale"`
			Title  string `json:"title"`
			Body   string `json:"body"`
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if body.Locale == "" || body.Title == "" {
			writeError(w, http.StatusBadRequest, "locale and title are required")
			return
		}

		status := body.Status
		if status == "" {
			status = models.TranslationReviewed
		}
		switch status {
		case models.TranslationPending, models.TranslationMachine, models.TranslationReviewed:
		default:
			writeError(w, http.StatusBadRequest, "Unknown translation status")
			return
		}

		err = store.UpsertTranslation(ctx, &models.Translation{
			ArticleID: id,
			Locale:    body.Locale,
			Title:     body.Title,
			Body:      body.Body,
			Status:    status,
		})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Article not found")
				return
			}
			slog.Error("failed to upsert translation", "article_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save translation")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
	}
}

// TranslationCoverage handles GET /api/translations/coverage. It reports,
// for every locale the site publishes in, how much of the catalog has a
// translation.
func TranslationCoverage(store *storage.Store, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coverage, err := store.TranslationCoverage(r.Context(), cfg.Content.Locales)
		if err != nil {
			slog.Error("failed to compute coverage", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to compute coverage")
			return
		}

		writeJSON(w, http.StatusOK, coverage)
	}
}
