package feeds

import (
	"strings"
	"testing"
	"time"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/PuerkitoBio/goquery"
)

func TestIsScrapeURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"scrape://www.visitdubai.com/en/articles", true},
		{"https://example.com/feed", false},
		{"scrape://", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsScrapeURL(tt.url); got != tt.want {
			t.Errorf("IsScrapeURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestScrapeURLToHTTPS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"scrape://www.visitdubai.com/en/articles", "https://www.visitdubai.com/en/articles"},
		{"scrape://example.com", "https://example.com"},
	}
	for _, tt := range tests {
		if got := ScrapeURLToHTTPS(tt.input); got != tt.want {
			t.Errorf("ScrapeURLToHTTPS(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func listingDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing test HTML: %v", err)
	}
	return doc
}

func TestParseListingDocument(t *testing.T) {
	source := models.FeedSource{ID: 1, Name: "Visit Dubai"}

	html := `
	<html><body>
		<article>
			<h3><a href="/en/articles/old-dubai">Exploring Old Dubai</a></h3>
			<p>Wander the souks and abra crossings of the creek.</p>
			<time datetime="2026-02-05">Feb 5, 2026</time>
		</article>
		<article>
			<h3><a href="https://www.visitdubai.com/en/articles/desert-safari">Desert Safari Basics</a></h3>
			<p>Dune bashing, camel rides, and camp dinners.</p>
			<span class="card-date">Jan 29, 2026</span>
		</article>
		<article>
			<h3><a href="/en/articles/no-date">Beach Day Guide</a></h3>
		</article>
	</body></html>`

	articles := parseListingDocument(source, listingDoc(t, html), "https://www.visitdubai.com/en/articles", 50)

	if len(articles) != 3 {
		t.Fatalf("got %d articles, want 3", len(articles))
	}

	first := articles[0]
	if first.Title != "Exploring Old Dubai" {
		t.Errorf("Title = %q, want %q", first.Title, "Exploring Old Dubai")
	}
	if first.URL != "https://www.visitdubai.com/en/articles/old-dubai" {
		t.Errorf("URL = %q: relative hrefs should be absolutized", first.URL)
	}
	if first.Description != "Wander the souks and abra crossings of the creek." {
		t.Errorf("Description = %q", first.Description)
	}
	if first.SourceID != 1 || first.Source != "Visit Dubai" {
		t.Errorf("source fields = %d/%q, want 1/%q", first.SourceID, first.Source, "Visit Dubai")
	}
	if first.PublishedAt == nil {
		t.Fatal("PublishedAt should be parsed from the time element")
	}
	wantDate := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(wantDate) {
		t.Errorf("PublishedAt = %v, want %v", first.PublishedAt, wantDate)
	}
	if first.ContentHash == "" {
		t.Error("ContentHash should not be empty")
	}

	second := articles[1]
	if second.URL != "https://www.visitdubai.com/en/articles/desert-safari" {
		t.Errorf("URL = %q: absolute hrefs should pass through", second.URL)
	}
	if second.PublishedAt == nil {
		t.Fatal("PublishedAt should be parsed from the date-classed element")
	}
	if second.PublishedAt.Day() != 29 {
		t.Errorf("PublishedAt day = %d, want 29", second.PublishedAt.Day())
	}

	third := articles[2]
	if third.PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil when no date is present", third.PublishedAt)
	}
}

func TestParseListingDocument_MaxArticles(t *testing.T) {
	source := models.FeedSource{ID: 2, Name: "Test"}

	html := `
	<html><body>
		<article><h2><a href="/a">One</a></h2></article>
		<article><h2><a href="/b">Two</a></h2></article>
		<article><h2><a href="/c">Three</a></h2></article>
	</body></html>`

	articles := parseListingDocument(source, listingDoc(t, html), "https://example.com/stories", 2)
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
}

func TestParseListingDocument_CardClasses(t *testing.T) {
	source := models.FeedSource{ID: 3, Name: "Test"}

	html := `
	<html><body>
		<div class="article-card">
			<a href="/stories/hidden-gems">Hidden Gems of Muscat</a>
		</div>
		<div class="card">
			<a href="/stories/food-tour">A Street Food Tour</a>
		</div>
		<div class="sidebar">
			<a href="/about">About Us</a>
		</div>
	</body></html>`

	articles := parseListingDocument(source, listingDoc(t, html), "https://example.com/stories", 50)
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].Title != "Hidden Gems of Muscat" {
		t.Errorf("Title = %q", articles[0].Title)
	}
}

func TestParseListingDocument_SkipsEmptyEntries(t *testing.T) {
	source := models.FeedSource{ID: 4, Name: "Test"}

	html := `
	<html><body>
		<article><h2><a href="/ok">Valid Entry</a></h2></article>
		<article><h2><a href="/empty"></a></h2></article>
		<article><h2>No link at all</h2></article>
	</body></html>`

	articles := parseListingDocument(source, listingDoc(t, html), "https://example.com", 50)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].Title != "Valid Entry" {
		t.Errorf("Title = %q, want %q", articles[0].Title, "Valid Entry")
	}
}

func TestParseHumanDate(t *testing.T) {
	tests := []struct {
		input   string
		wantNil bool
	}{
		{"Jan 29, 2026", false},
		{"February 5, 2026", false},
		{"2026-02-05", false},
		{"2026-02-05T10:30:00Z", false},
		{"yesterday", true},
		{"", true},
	}
	for _, tt := range tests {
		got := parseHumanDate(tt.input)
		if (got == nil) != tt.wantNil {
			t.Errorf("parseHumanDate(%q) = %v, wantNil = %v", tt.input, got, tt.wantNil)
		}
	}
}
