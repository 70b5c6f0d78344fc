package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/KBRglobal/travi-final-website-sub003/internal/feeds"
	"github.com/KBRglobal/travi-final-website-sub003/internal/readtime"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
)

// ArticleResponse is an article plus its formatted reading times, derived
// from the persisted counts on the way out.
type ArticleResponse struct {
	Article  any               `json:"article"`
	ReadTime map[string]string `json:"read_time"`
}

// ListArticles handles GET /api/articles. Optional query parameters:
// destination_id, complexity, level, limit.
func ListArticles(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		opts := storage.ListArticlesOptions{
			Complexity: r.URL.Query().Get("complexity"),
			Level:      r.URL.Query().Get("level"),
			Limit:      parseLimit(r, 100),
		}
		if raw := r.URL.Query().Get("destination_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid destination_id")
				return
			}
			opts.DestinationID = id
		}

		articles, err := store.ListArticles(ctx, opts)
		if err != nil {
			slog.Error("failed to list articles", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list articles")
			return
		}

		writeJSON(w, http.StatusOK, articles)
	}
}

// GetArticle handles GET /api/articles/{id}. It returns the article together
// with its reading times for all four reader speeds.
func GetArticle(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		article, err := store.GetArticleByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Article not found")
				return
			}
			slog.Error("failed to get article", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get article")
			return
		}

		times := readtime.TimesForCounts(article.WordCount, article.ImageCount)
		writeJSON(w, http.StatusOK, ArticleResponse{
			Article:  article,
			ReadTime: readtime.FormatTimes(times),
		})
	}
}

// AssignDestination handles PUT /api/articles/{id}/destination. A null
// destination_id detaches the article.
func AssignDestination(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var body struct {
			DestinationID *int64 `json:"destination_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if body.DestinationID != nil {
			if _, err := store.GetDestinationByID(ctx, *body.DestinationID); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					writeError(w, http.StatusNotFound, "Destination not found")
					return
				}
				slog.Error("failed to check destination", "id", *body.DestinationID, "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to assign destination")
				return
			}
		}

		if err := store.AssignDestination(ctx, id, body.DestinationID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Article not found")
				return
			}
			slog.Error("failed to assign destination", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to assign destination")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// articleExtractor pulls the readable content of a web page. *feeds.Fetcher
// satisfies it.
type articleExtractor interface {
	ExtractArticle(ctx context.Context, url string) (*feeds.ArticleMetadata, error)
}

// ExtractArticle handles POST /api/articles/{id}/extract. It fetches the
// article's full text, re-runs the analyzer on it, and persists the result.
func ExtractArticle(store *storage.Store, fetcher articleExtractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		article, err := store.GetArticleByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Article not found")
				return
			}
			slog.Error("failed to get article", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get article")
			return
		}

		meta, err := fetcher.ExtractArticle(ctx, article.URL)
		if err != nil {
			slog.Warn("failed to extract article", "id", id, "url", article.URL, "error", err)
			writeError(w, http.StatusBadGateway, "Failed to extract article content")
			return
		}

		// Analyze the markup, not the plain text: image and heading counts
		// only exist in the HTML.
		body := meta.Content
		if body == "" {
			body = meta.TextContent
		}
		analysis := readtime.Analyze(readtime.HTML(body))
		err = store.UpdateArticleAnalysis(ctx, id, meta.TextContent,
			analysis.Words, analysis.Images, analysis.Headings,
			string(analysis.Complexity), string(analysis.Level))
		if err != nil {
			slog.Error("failed to store analysis", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to store analysis")
			return
		}

		writeJSON(w, http.StatusOK, AnalyzeResponse{
			Words:      analysis.Words,
			Images:     analysis.Images,
			Headings:   analysis.Headings,
			Complexity: analysis.Complexity,
			Level:      analysis.Level,
			Times:      analysis.Times,
			Formatted:  readtime.FormatTimes(analysis.Times),
		})
	}
}
