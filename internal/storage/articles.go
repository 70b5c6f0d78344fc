package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
)

// articleColumns is the SELECT list shared by all article queries.
const articleColumns = `a.id, a.source_id, COALESCE(fs.name, '') AS source, a.destination_id,
	a.title, a.url, a.description, a.full_content,
	a.word_count, a.image_count, a.heading_count, a.complexity, a.level,
	a.published_at, a.fetched_at, a.content_hash, a.created_at`

// UpsertArticle inserts an article or updates it if a row with the same URL
// already exists. On conflict the content, structural counts, classifications,
// content_hash, and fetched_at fields are updated. The row ID is returned.
func (s *Store) UpsertArticle(ctx context.Context, article *models.Article) (int64, error) {
	var publishedAt *string
	if article.PublishedAt != nil {
		v := article.PublishedAt.Format("2006-01-02 15:04:05")
		publishedAt = &v
	}

	fetchedAt := article.FetchedAt.Format("2006-01-02 15:04:05")

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (source_id, destination_id, title, url, description, full_content,
			word_count, image_count, heading_count, complexity, level,
			published_at, fetched_at, content_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			description   = excluded.description,
			full_content  = excluded.full_content,
			word_count    = excluded.word_count,
			image_count   = excluded.image_count,
			heading_count = excluded.heading_count,
			complexity    = excluded.complexity,
			level         = excluded.level,
			content_hash  = excluded.content_hash,
			fetched_at    = excluded.fetched_at`,
		article.SourceID, article.DestinationID, article.Title, article.URL,
		nullableString(article.Description), nullableString(article.FullContent),
		article.WordCount, article.ImageCount, article.HeadingCount,
		nullableString(article.Complexity), nullableString(article.Level),
		publishedAt, fetchedAt, nullableString(article.ContentHash),
	)
	if err != nil {
		return 0, fmt.Errorf("upserting article: %w", err)
	}

	// Retrieve the ID of the upserted row. SQLite's last_insert_rowid()
	// may not reflect the correct ID on an UPDATE path, so we query by URL.
	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM articles WHERE url = ?`, article.URL).Scan(&id); err != nil {
		return 0, fmt.Errorf("getting upserted article id: %w", err)
	}
	return id, nil
}

// GetArticleByID returns the article with the given ID.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetArticleByID(ctx context.Context, id int64) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles a
		 LEFT JOIN feed_sources fs ON fs.id = a.source_id
		 WHERE a.id = ?`, id)

	article, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting article by id: %w", err)
	}
	return article, nil
}

// GetArticleByURL returns the article with the given URL.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetArticleByURL(ctx context.Context, url string) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles a
		 LEFT JOIN feed_sources fs ON fs.id = a.source_id
		 WHERE a.url = ?`, url)

	article, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting article by url: %w", err)
	}
	return article, nil
}

// ListArticlesOptions filters ListArticles results. Zero values mean
// "no filter"; Limit falls back to 50.
type ListArticlesOptions struct {
	DestinationID int64
	Complexity    string
	Level         string
	Limit         int
}

// ListArticles returns articles newest first, optionally filtered by
// destination and classification.
func (s *Store) ListArticles(ctx context.Context, opts ListArticlesOptions) ([]models.Article, error) {
	var (
		conds []string
		args  []any
	)
	if opts.DestinationID != 0 {
		conds = append(conds, "a.destination_id = ?")
		args = append(args, opts.DestinationID)
	}
	if opts.Complexity != "" {
		conds = append(conds, "a.complexity = ?")
		args = append(args, opts.Complexity)
	}
	if opts.Level != "" {
		conds = append(conds, "a.level = ?")
		args = append(args, opts.Level)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles a
		 LEFT JOIN feed_sources fs ON fs.id = a.source_id
		 `+where+`
		 ORDER BY COALESCE(a.published_at, a.fetched_at) DESC
		 LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		articles = append(articles, *article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating article rows: %w", err)
	}

	if articles == nil {
		articles = []models.Article{}
	}
	return articles, nil
}

// UpdateArticleAnalysis stores the full content and the structural analysis
// computed from it. Returns ErrNotFound if the article does not exist.
func (s *Store) UpdateArticleAnalysis(ctx context.Context, id int64, fullContent string, words, images, headings int, complexity, level string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE articles SET
			full_content  = ?,
			word_count    = ?,
			image_count   = ?,
			heading_count = ?,
			complexity    = ?,
			level         = ?
		 WHERE id = ?`,
		nullableString(fullContent), words, images, headings,
		nullableString(complexity), nullableString(level), id,
	)
	if err != nil {
		return fmt.Errorf("updating article analysis: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for article %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignDestination links an article to a destination, or detaches it when
// destinationID is nil. Returns ErrNotFound if the article does not exist.
func (s *Store) AssignDestination(ctx context.Context, articleID int64, destinationID *int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE articles SET destination_id = ? WHERE id = ?`, destinationID, articleID)
	if err != nil {
		return fmt.Errorf("assigning destination for article %d: %w", articleID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for article %d: %w", articleID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountArticles returns the total number of articles.
func (s *Store) CountArticles(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// scanner is the subset of sql.Row / sql.Rows used by scanArticle.
type scanner interface {
	Scan(dest ...any) error
}

// scanArticle reads one article row using the articleColumns SELECT list.
func scanArticle(row scanner) (*models.Article, error) {
	var (
		article       models.Article
		destinationID sql.NullInt64
		description   sql.NullString
		fullContent   sql.NullString
		complexity    sql.NullString
		level         sql.NullString
		publishedAt   sql.NullString
		fetchedAt     string
		contentHash   sql.NullString
		createdAt     string
	)

	if err := row.Scan(
		&article.ID, &article.SourceID, &article.Source, &destinationID,
		&article.Title, &article.URL, &description, &fullContent,
		&article.WordCount, &article.ImageCount, &article.HeadingCount,
		&complexity, &level,
		&publishedAt, &fetchedAt, &contentHash, &createdAt,
	); err != nil {
		return nil, err
	}

	if destinationID.Valid {
		article.DestinationID = &destinationID.Int64
	}
	article.Description = description.String
	article.FullContent = fullContent.String
	article.Complexity = complexity.String
	article.Level = level.String
	article.ContentHash = contentHash.String
	article.PublishedAt = parseTimePtr(nullStringToPtr(publishedAt))
	article.FetchedAt = parseTime(fetchedAt)
	article.CreatedAt = parseTime(createdAt)

	return &article, nil
}
