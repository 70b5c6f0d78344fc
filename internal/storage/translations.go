package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
)

// UpsertTranslation inserts or replaces the translation of an article for
// one locale. Returns ErrNotFound if the article does not exist.
func (s *Store) UpsertTranslation(ctx context.Context, tr *models.Translation) error {
	locale := strings.TrimSpace(strings.ToLower(tr.Locale))
	if locale == "" {
		return fmt.Errorf("translation locale cannot be empty")
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE id = ?)`, tr.ArticleID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("checking article %d: %w", tr.ArticleID, err)
	}
	if !exists {
		return ErrNotFound
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translations (article_id, locale, title, body, status, updated_at)
		 VALUES (?, ?, ?, ?, ?, datetime('now'))
		 ON CONFLICT(article_id, locale) DO UPDATE SET
			title      = excluded.title,
			body       = excluded.body,
			status     = excluded.status,
			updated_at = excluded.updated_at`,
		tr.ArticleID, locale, tr.Title, nullableString(tr.Body), tr.Status,
	)
	if err != nil {
		return fmt.Errorf("upserting translation %d/%s: %w", tr.ArticleID, locale, err)
	}
	return nil
}

// GetTranslations returns all translations of an article, ordered by locale.
func (s *Store) GetTranslations(ctx context.Context, articleID int64) ([]models.Translation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, article_id, locale, title, body, status, updated_at
		 FROM translations WHERE article_id = ? ORDER BY locale`, articleID)
	if err != nil {
		return nil, fmt.Errorf("querying translations: %w", err)
	}
	defer rows.Close()

	var translations []models.Translation
	for rows.Next() {
		var (
			tr        models.Translation
			body      sql.NullString
			updatedAt string
		)
		if err := rows.Scan(&tr.ID, &tr.ArticleID, &tr.Locale, &tr.Title, &body, &tr.Status, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning translation row: %w", err)
		}
		tr.Body = body.String
		tr.UpdatedAt = parseTime(updatedAt)
		translations = append(translations, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating translation rows: %w", err)
	}

	if translations == nil {
		translations = []models.Translation{}
	}
	return translations, nil
}

// TranslationCoverage reports, for each of the given locales, how many
// articles have a translation in that locale out of the article total.
func (s *Store) TranslationCoverage(ctx context.Context, locales []string) ([]models.LocaleCoverage, error) {
	total, err := s.CountArticles(ctx)
	if err != nil {
		return nil, err
	}

	coverage := make([]models.LocaleCoverage, 0, len(locales))
	for _, locale := range locales {
		locale = strings.TrimSpace(strings.ToLower(locale))

		var translated int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM translations WHERE locale = ?`, locale,
		).Scan(&translated); err != nil {
			return nil, fmt.Errorf("counting translations for %q: %w", locale, err)
		}

		percent := 0.0
		if total > 0 {
			percent = float64(translated) / float64(total) * 100
		}

		coverage = append(coverage, models.LocaleCoverage{
			Locale:     locale,
			Translated: translated,
			Total:      total,
			Percent:    percent,
		})
	}

	return coverage, nil
}
