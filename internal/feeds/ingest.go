package feeds

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KBRglobal/travi-final-website-sub003/internal/config"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
)

// RefreshSummary reports the outcome of one ingestion run.
type RefreshSummary struct {
	Sources int          `json:"sources"`
	Fetched int          `json:"fetched"`
	Stored  int          `json:"stored"`
	Failed  []FailedFeed `json:"failed"`
}

// Ingestor runs the feed ingestion pipeline: fetch every active source,
// analyze each item, and upsert the results. It is shared by the refresh
// endpoint and the background refresh job.
type Ingestor struct {
	store   *storage.Store
	fetcher *Fetcher
	cfg     *config.Config
}

// NewIngestor creates an Ingestor backed by the given store and fetcher.
func NewIngestor(store *storage.Store, fetcher *Fetcher, cfg *config.Config) *Ingestor {
	return &Ingestor{store: store, fetcher: fetcher, cfg: cfg}
}

// Refresh fetches all active sources and upserts the discovered articles.
// Per-source fetch failures are reported in the summary, not returned as an
// error; only storage problems fail the run.
func (ing *Ingestor) Refresh(ctx context.Context) (*RefreshSummary, error) {
	sources, err := ing.store.GetActiveSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading active sources: %w", err)
	}

	summary := &RefreshSummary{
		Sources: len(sources),
		Failed:  []FailedFeed{},
	}
	if len(sources) == 0 {
		return summary, nil
	}

	slog.Info("refreshing feeds", "sources", len(sources))
	result, err := ing.fetcher.FetchAll(ctx, sources, FetchOptions{
		MaxArticlesPerFeed: ing.cfg.Feeds.MaxArticlesPerFeed,
		LookbackDays:       ing.cfg.Feeds.LookbackDays,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching feeds: %w", err)
	}

	summary.Fetched = len(result.Articles)
	if result.Failed != nil {
		summary.Failed = result.Failed
	}

	for i := range result.Articles {
		if _, err := ing.store.UpsertArticle(ctx, &result.Articles[i]); err != nil {
			slog.Warn("failed to store article",
				"url", result.Articles[i].URL,
				"error", err,
			)
			continue
		}
		summary.Stored++
	}

	slog.Info("refresh complete",
		"fetched", summary.Fetched,
		"stored", summary.Stored,
		"failed", len(summary.Failed),
	)
	return summary, nil
}
