package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
)

// SearchArticles performs a full-text search over article titles,
// descriptions, and full content using FTS5. Results are ordered by rank
// and limited to the given count.
func (s *Store) SearchArticles(ctx context.Context, query string, limit int) ([]models.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Article{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles_fts fts
		 JOIN articles a ON a.id = fts.rowid
		 LEFT JOIN feed_sources fs ON fs.id = a.source_id
		 WHERE articles_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		articles = append(articles, *article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	if articles == nil {
		articles = []models.Article{}
	}
	return articles, nil
}
