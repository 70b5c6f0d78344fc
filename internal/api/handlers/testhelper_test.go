package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
	"github.com/go-chi/chi/v5"
)

// newTestStore creates an in-memory SQLite store with migrations applied and
// default sources seeded. It registers a cleanup function to close the database
// when the test completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	store := storage.NewStore(db)
	if err := store.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("seeding defaults: %v", err)
	}

	return store
}

// withURLParam attaches a chi URL parameter to the request context so
// handlers can read it outside a running router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// seedArticle stores a minimal article under the first seeded source and
// returns its ID.
func seedArticle(t *testing.T, store *storage.Store, title, url string) int64 {
	t.Helper()

	id, err := store.UpsertArticle(context.Background(), &models.Article{
		SourceID:    1,
		Title:       title,
		URL:         url,
		Description: "seeded for handler tests",
		WordCount:   400,
		ImageCount:  2,
		FetchedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("seeding article: %v", err)
	}
	return id
}
