package api

import (
	"github.com/KBRglobal/travi-final-website-sub003/internal/api/handlers"
	"github.com/KBRglobal/travi-final-website-sub003/internal/config"
	"github.com/KBRglobal/travi-final-website-sub003/internal/feeds"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router with all API routes. The
// admin dashboard and public site are served separately and talk to this API
// over CORS.
func NewRouter(store *storage.Store, fetcher *feeds.Fetcher, ingestor *feeds.Ingestor, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS(cfg.Server.DashboardOrigin))

	r.Route("/api", func(api chi.Router) {
		api.Post("/analyze", handlers.Analyze())

		api.Get("/articles", handlers.ListArticles(store))
		api.Get("/articles/{id}", handlers.GetArticle(store))
		api.Put("/articles/{id}/destination", handlers.AssignDestination(store))
		api.Post("/articles/{id}/extract", handlers.ExtractArticle(store, fetcher))
		api.Get("/articles/{id}/translations", handlers.GetTranslations(store))
		api.Put("/articles/{id}/translations", handlers.UpsertTranslation(store))

		api.Get("/search", handlers.SearchArticles(store))

		api.Get("/destinations", handlers.ListDestinations(store))
		api.Post("/destinations", handlers.CreateDestination(store))
		api.Get("/destinations/{id}", handlers.GetDestination(store))
		api.Put("/destinations/{id}", handlers.UpdateDestination(store))
		api.Put("/destinations/{id}/publish", handlers.SetDestinationPublished(store))
		api.Delete("/destinations/{id}", handlers.DeleteDestination(store))

		api.Get("/sources", handlers.GetSources(store))
		api.Put("/sources/{id}", handlers.ToggleSource(store))
		api.Post("/refresh", handlers.Refresh(ingestor))

		api.Post("/jobs", handlers.CreateJob(store))
		api.Get("/jobs", handlers.ListJobs(store))
		api.Get("/jobs/summary", handlers.JobSummary(store))
		api.Get("/jobs/{id}", handlers.GetJob(store))
		api.Post("/jobs/{id}/cancel", handlers.CancelJob(store))

		api.Get("/translations/coverage", handlers.TranslationCoverage(store, cfg))
	})

	return r
}
