package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
)

const destinationColumns = `id, slug, name, country, summary, hero_image_url, is_published, created_at, updated_at`

// CreateDestination inserts a new destination and returns its ID. Slugs are
// normalized to lowercase. Returns an error if the slug is already taken.
func (s *Store) CreateDestination(ctx context.Context, d *models.Destination) (int64, error) {
	slug := normalizeSlug(d.Slug)
	if slug == "" {
		return 0, fmt.Errorf("destination slug cannot be empty")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO destinations (slug, name, country, summary, hero_image_url, is_published)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		slug, d.Name, d.Country, nullableString(d.Summary),
		nullableString(d.HeroImageURL), boolToInt(d.IsPublished),
	)
	if err != nil {
		return 0, fmt.Errorf("creating destination %q: %w", slug, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting destination id: %w", err)
	}
	return id, nil
}

// GetDestinationByID returns the destination with the given ID.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetDestinationByID(ctx context.Context, id int64) (*models.Destination, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+destinationColumns+` FROM destinations WHERE id = ?`, id)

	d, err := scanDestination(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting destination by id: %w", err)
	}
	return d, nil
}

// GetDestinationBySlug returns the destination with the given slug.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetDestinationBySlug(ctx context.Context, slug string) (*models.Destination, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+destinationColumns+` FROM destinations WHERE slug = ?`, normalizeSlug(slug))

	d, err := scanDestination(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting destination by slug: %w", err)
	}
	return d, nil
}

// ListDestinations returns destinations ordered by name. When publishedOnly
// is true, drafts are excluded.
func (s *Store) ListDestinations(ctx context.Context, publishedOnly bool) ([]models.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations`
	if publishedOnly {
		query += ` WHERE is_published = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing destinations: %w", err)
	}
	defer rows.Close()

	var destinations []models.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning destination row: %w", err)
		}
		destinations = append(destinations, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating destination rows: %w", err)
	}

	if destinations == nil {
		destinations = []models.Destination{}
	}
	return destinations, nil
}

// UpdateDestination updates the editable fields of a destination.
// Returns ErrNotFound if the destination does not exist.
func (s *Store) UpdateDestination(ctx context.Context, d *models.Destination) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE destinations SET
			name           = ?,
			country        = ?,
			summary        = ?,
			hero_image_url = ?,
			updated_at     = datetime('now')
		 WHERE id = ?`,
		d.Name, d.Country, nullableString(d.Summary), nullableString(d.HeroImageURL), d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating destination %d: %w", d.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for destination %d: %w", d.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDestinationPublished flips the publish flag on a destination.
// Returns ErrNotFound if the destination does not exist.
func (s *Store) SetDestinationPublished(ctx context.Context, id int64, published bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE destinations SET is_published = ?, updated_at = datetime('now') WHERE id = ?`,
		boolToInt(published), id,
	)
	if err != nil {
		return fmt.Errorf("publishing destination %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for destination %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDestination removes a destination. Articles linked to it are
// detached by the schema's ON DELETE SET NULL.
// Returns ErrNotFound if the destination does not exist.
func (s *Store) DeleteDestination(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM destinations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting destination %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for destination %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeSlug lowercases and trims a slug.
func normalizeSlug(slug string) string {
	return strings.TrimSpace(strings.ToLower(slug))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// scanDestination reads one destination row.
func scanDestination(row scanner) (*models.Destination, error) {
	var (
		d            models.Destination
		summary      sql.NullString
		heroImageURL sql.NullString
		isPublished  int
		createdAt    string
		updatedAt    string
	)

	if err := row.Scan(
		&d.ID, &d.Slug, &d.Name, &d.Country,
		&summary, &heroImageURL, &isPublished, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	d.Summary = summary.String
	d.HeroImageURL = heroImageURL.String
	d.IsPublished = isPublished == 1
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)

	return &d, nil
}
