package models

import "time"

// FeedSource represents a travel publication we ingest via RSS. Sources
// with a scrape:// feed URL are fetched by scraping their listing page
// instead.
type FeedSource struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	FeedURL   string    `json:"feed_url"`
	SiteURL   string    `json:"site_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Article represents a piece of travel content discovered from a feed or
// drafted through the admin dashboard. The structural counts and the
// complexity/level classifications are computed by the readtime analyzer
// when content is ingested; reading times are derived from them on demand.
type Article struct {
	ID            int64      `json:"id"`
	SourceID      int64      `json:"source_id"`
	Source        string     `json:"source,omitempty"`
	DestinationID *int64     `json:"destination_id,omitempty"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Description   string     `json:"description,omitempty"`
	FullContent   string     `json:"full_content,omitempty"`
	WordCount     int        `json:"word_count"`
	ImageCount    int        `json:"image_count"`
	HeadingCount  int        `json:"heading_count"`
	Complexity    string     `json:"complexity,omitempty"`
	Level         string     `json:"level,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	FetchedAt     time.Time  `json:"fetched_at"`
	ContentHash   string     `json:"content_hash,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
