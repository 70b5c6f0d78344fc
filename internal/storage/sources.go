package storage

import (
	"context"
	"fmt"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
)

// defaultSources defines the travel publications seeded into a new database.
var defaultSources = []models.FeedSource{
	{Name: "Lonely Planet News", Region: "Global", FeedURL: "https://www.lonelyplanet.com/news/feed/atom/", SiteURL: "https://www.lonelyplanet.com/news", IsActive: true},
	{Name: "Nomadic Matt", Region: "Global", FeedURL: "https://www.nomadicmatt.com/travel-blog/feed/", SiteURL: "https://www.nomadicmatt.com", IsActive: true},
	{Name: "Atlas Obscura", Region: "Global", FeedURL: "https://www.atlasobscura.com/feeds/latest", SiteURL: "https://www.atlasobscura.com", IsActive: true},
	{Name: "Travel + Leisure", Region: "Global", FeedURL: "https://www.travelandleisure.com/feeds/all/rss.xml", SiteURL: "https://www.travelandleisure.com", IsActive: true},
	{Name: "Visit Dubai Blog", Region: "Middle East", FeedURL: "scrape://www.visitdubai.com/en/articles", SiteURL: "https://www.visitdubai.com", IsActive: true},
	{Name: "Time Out Dubai", Region: "Middle East", FeedURL: "https://www.timeoutdubai.com/feed", SiteURL: "https://www.timeoutdubai.com", IsActive: true},
	{Name: "Japan Travel", Region: "Asia", FeedURL: "https://en.japantravel.com/feed", SiteURL: "https://en.japantravel.com", IsActive: true},
	{Name: "The Points Guy", Region: "Global", FeedURL: "https://thepointsguy.com/feed/", SiteURL: "https://thepointsguy.com", IsActive: true},
	{Name: "Adventurous Kate", Region: "Global", FeedURL: "https://www.adventurouskate.com/feed/", SiteURL: "https://www.adventurouskate.com", IsActive: false},
	{Name: "Editorial Desk", Region: "Global", FeedURL: "custom://editorial", SiteURL: "", IsActive: true},
}

// GetAllSources returns all feed sources regardless of active status,
// ordered by name.
func (s *Store) GetAllSources(ctx context.Context) ([]models.FeedSource, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, region, feed_url, site_url, is_active, created_at
		 FROM feed_sources ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying all sources: %w", err)
	}
	defer rows.Close()

	return scanSources(rows)
}

// GetActiveSources returns all feed sources where is_active = 1, ordered by
// name. The sentinel "custom://" editorial source is excluded since it is
// never fetched.
func (s *Store) GetActiveSources(ctx context.Context) ([]models.FeedSource, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, region, feed_url, site_url, is_active, created_at
		 FROM feed_sources
		 WHERE is_active = 1 AND feed_url NOT LIKE 'custom://%'
		 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying active sources: %w", err)
	}
	defer rows.Close()

	return scanSources(rows)
}

// ToggleSource sets the is_active flag for the given source ID.
// It returns ErrNotFound if no source matches the given ID.
func (s *Store) ToggleSource(ctx context.Context, id int64, active bool) error {
	activeInt := 0
	if active {
		activeInt = 1
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE feed_sources SET is_active = ? WHERE id = ?`, activeInt, id)
	if err != nil {
		return fmt.Errorf("toggling source %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for source %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// GetEditorialSourceID returns the ID of the sentinel "custom://editorial"
// source that drafted articles are attached to.
func (s *Store) GetEditorialSourceID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM feed_sources WHERE feed_url = 'custom://editorial'`,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("getting editorial source id: %w", err)
	}
	return id, nil
}

// SeedDefaults inserts the default feed sources if the feed_sources table is
// empty. All inserts happen within a single transaction. This operation is
// idempotent: calling it on a non-empty table is a no-op.
func (s *Store) SeedDefaults(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feed_sources`).Scan(&count); err != nil {
		return fmt.Errorf("counting feed sources: %w", err)
	}

	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO feed_sources (name, region, feed_url, site_url, is_active)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing seed statement: %w", err)
	}
	defer stmt.Close()

	for _, src := range defaultSources {
		activeInt := 0
		if src.IsActive {
			activeInt = 1
		}

		if _, err := stmt.ExecContext(ctx, src.Name, src.Region, src.FeedURL, src.SiteURL, activeInt); err != nil {
			return fmt.Errorf("seeding source %q: %w", src.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	return nil
}

// scanSources reads all rows from a feed_sources query into a slice.
func scanSources(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
},
) ([]models.FeedSource, error) {
	var sources []models.FeedSource
	for rows.Next() {
		var (
			src       models.FeedSource
			isActive  int
			createdAt string
		)
		if err := rows.Scan(
			&src.ID, &src.Name, &src.Region, &src.FeedURL,
			&src.SiteURL, &isActive, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning source row: %w", err)
		}
		src.IsActive = isActive == 1
		src.CreatedAt = parseTime(createdAt)
		sources = append(sources, src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source rows: %w", err)
	}

	// Return empty slice instead of nil for consistent JSON serialization.
	if sources == nil {
		sources = []models.FeedSource{}
	}

	return sources, nil
}

// DefaultSourceCount returns the number of default feed sources that will be
// seeded into a new database. Useful for tests.
func DefaultSourceCount() int {
	return len(defaultSources)
}
