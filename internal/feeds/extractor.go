package feeds

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// browserHeaders sets browser-like request headers so sites that check Accept
// or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Travi/1.0; +https://github.com/KBRglobal/travi-final-website-sub003)")
}

// ArticleMetadata holds what readability recovered from a web page. Content
// is the sanitized body HTML with images and headings intact; TextContent is
// the plain-text rendering. Excerpt and PublishedAt are best-effort and may
// be empty.
type ArticleMetadata struct {
	Title       string
	SiteName    string
	Excerpt     string
	Content     string
	TextContent string
	PublishedAt *time.Time
}

// extractArticle fetches the web page at the given URL and pulls its main
// readable content and metadata with go-readability. TextContent is capped
// at maxWords words; Content keeps the full markup.
func extractArticle(url string, timeout time.Duration) (*ArticleMetadata, error) {
	article, err := readability.FromURL(url, timeout, browserHeaders)
	if err != nil {
		return nil, fmt.Errorf("readability extraction: %w", err)
	}

	return &ArticleMetadata{
		Title:       article.Title,
		SiteName:    article.SiteName,
		Excerpt:     article.Excerpt,
		Content:     article.Content,
		TextContent: truncateWords(article.TextContent, maxWords),
		PublishedAt: article.PublishedTime,
	}, nil
}

// truncateWords returns the first maxWords whitespace-delimited words from s.
// If s contains fewer than maxWords words, it is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
