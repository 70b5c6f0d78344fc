package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
)

// destinationBody is the request body for creating or updating a destination.
type destinationBody struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Country      string `json:"country"`
	Summary      string `json:"summary"`
	HeroImageURL string `json:"hero_image_url"`
}

func (b *destinationBody) validate() error {
	if strings.TrimSpace(b.Slug) == "" {
		return errors.New("slug is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(b.Country) == "" {
		return errors.New("country is required")
	}
	return nil
}

// ListDestinations handles GET /api/destinations. With ?published=true only
// published destinations are returned.
func ListDestinations(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		publishedOnly := r.URL.Query().Get("published") == "true"
		destinations, err := store.ListDestinations(ctx, publishedOnly)
		if err != nil {
			slog.Error("failed to list destinations", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list destinations")
			return
		}

		writeJSON(w, http.StatusOK, destinations)
	}
}

// GetDestination handles GET /api/destinations/{id}.
func GetDestination(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		destination, err := store.GetDestinationByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Destination not found")
				return
			}
			slog.Error("failed to get destination", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get destination")
			return
		}

		writeJSON(w, http.StatusOK, destination)
	}
}

// CreateDestination handles POST /api/destinations.
func CreateDestination(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body destinationBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := body.validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		id, err := store.CreateDestination(ctx, &models.Destination{
			Slug:         body.Slug,
			Name:         body.Name,
			Country:      body.Country,
			Summary:      body.Summary,
			HeroImageURL: body.HeroImageURL,
		})
		if err != nil {
			slog.Error("failed to create destination", "slug", body.Slug, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create destination")
			return
		}

		destination, err := store.GetDestinationByID(ctx, id)
		if err != nil {
			slog.Error("failed to load created destination", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create destination")
			return
		}

		writeJSON(w, http.StatusCreated, destination)
	}
}

// UpdateDestination handles PUT /api/destinations/{id}.
func UpdateDestination(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var body destinationBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := body.validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		err = store.UpdateDestination(ctx, &models.Destination{
			ID:           id,
			Slug:         body.Slug,
			Name:         body.Name,
			Country:      body.Country,
			Summary:      body.Summary,
			HeroImageURL: body.HeroImageURL,
		})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Destination not found")
				return
			}
			slog.Error("failed to update destination", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update destination")
			return
		}

		destination, err := store.GetDestinationByID(ctx, id)
		if err != nil {
			slog.Error("failed to load updated destination", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update destination")
			return
		}

		writeJSON(w, http.StatusOK, destination)
	}
}

// SetDestinationPublished handles PUT /api/destinations/{id}/publish.
func SetDestinationPublished(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var body struct {
			IsPublished bool `json:"is_published"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if err := store.SetDestinationPublished(ctx, id, body.IsPublished); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Destination not found")
				return
			}
			slog.Error("failed to publish destination", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update destination")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// DeleteDestination handles DELETE /api/destinations/{id}. Assigned articles
// are detached, not deleted.
func DeleteDestination(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.DeleteDestination(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Destination not found")
				return
			}
			slog.Error("failed to delete destination", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete destination")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
