package feeds

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/KBRglobal/travi-final-website-sub003/internal/readtime"
	"github.com/mmcdole/gofeed"
)

// parseFeedItems converts gofeed items into Article models, filtering by the
// lookback window and capping the item count per feed. Items with nil
// PublishedParsed are always included. Items with empty Title or URL are
// skipped. Each item is run through the content analyzer so the structural
// counts and classifications are available as soon as it lands.
func parseFeedItems(source models.FeedSource, feed *gofeed.Feed, opts FetchOptions) []models.Article {
	cutoff := time.Now().AddDate(0, 0, -opts.LookbackDays)
	now := time.Now()

	var articles []models.Article
	for _, item := range feed.Items {
		if opts.MaxArticlesPerFeed > 0 && len(articles) >= opts.MaxArticlesPerFeed {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}

		// Filter by publication date when available.
		if opts.LookbackDays > 0 && item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}

		var publishedAt *time.Time
		if item.PublishedParsed != nil {
			t := *item.PublishedParsed
			publishedAt = &t
		}

		// Analyze the richest HTML the feed gives us. Many feeds put the
		// full body in Content and a teaser in Description.
		raw := item.Content
		if raw == "" {
			raw = item.Description
		}
		analysis := readtime.Analyze(readtime.HTML(raw))

		articles = append(articles, models.Article{
			SourceID:     source.ID,
			Source:       source.Name,
			Title:        item.Title,
			URL:          item.Link,
			Description:  readtime.ExtractText(item.Description),
			WordCount:    analysis.Words,
			ImageCount:   analysis.Images,
			HeadingCount: analysis.Headings,
			Complexity:   string(analysis.Complexity),
			Level:        string(analysis.Level),
			PublishedAt:  publishedAt,
			FetchedAt:    now,
			ContentHash:  computeHash(item.Link),
		})
	}

	return articles
}

// computeHash returns the SHA-256 hex digest of the given string.
func computeHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}
