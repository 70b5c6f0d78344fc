package feeds

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// IsScrapeURL returns true if the feed URL uses the scrape:// scheme,
// indicating the source has no RSS feed and its listing page should be
// scraped instead.
func IsScrapeURL(feedURL string) bool {
	return strings.HasPrefix(feedURL, "scrape://")
}

// ScrapeURLToHTTPS converts a scrape:// URL to its https:// equivalent.
func ScrapeURLToHTTPS(feedURL string) string {
	return "https://" + strings.TrimPrefix(feedURL, "scrape://")
}

// scrapeListingPage fetches an article listing page and extracts entries from
// its HTML. Tourism-board sites like Visit Dubai publish article cards but no
// feed, so we read the cards directly.
func (f *Fetcher) scrapeListingPage(source models.FeedSource, maxArticles int) ([]models.Article, error) {
	pageURL := ScrapeURLToHTTPS(source.FeedURL)

	domain := extractDomain(pageURL)
	f.waitForRateLimit(domain)

	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %q: %w", pageURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: HTTP %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %q: %w", pageURL, err)
	}

	return parseListingDocument(source, doc, pageURL, maxArticles), nil
}

// parseListingDocument extracts article entries from a listing page document.
//
// Listing pages are expected to mark each entry up as an <article> element
// (or a container with an "article" or "card" class) holding a heading link
// and optionally a <time> element or a "date"-classed element:
//
//	<article>
//	  <h3><a href="/stories/old-dubai">Exploring Old Dubai</a></h3>
//	  <time datetime="2026-02-05">Feb 5, 2026</time>
//	</article>
func parseListingDocument(source models.FeedSource, doc *goquery.Document, pageURL string, maxArticles int) []models.Article {
	now := time.Now()
	base := strings.TrimSuffix(baseURL(pageURL), "/")

	var articles []models.Article
	doc.Find("article, .article-card, .card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if maxArticles > 0 && len(articles) >= maxArticles {
			return false
		}

		link := card.Find("h1 a, h2 a, h3 a").First()
		if link.Length() == 0 {
			link = card.Find("a[href]").First()
		}
		href, ok := link.Attr("href")
		title := strings.TrimSpace(link.Text())
		if !ok || href == "" || title == "" {
			return true
		}

		// Make relative URLs absolute.
		if strings.HasPrefix(href, "/") {
			href = base + href
		}

		description := strings.TrimSpace(card.Find("p").First().Text())

		articles = append(articles, models.Article{
			SourceID:    source.ID,
			Source:      source.Name,
			Title:       title,
			URL:         href,
			Description: description,
			PublishedAt: findCardDate(card),
			FetchedAt:   now,
			ContentHash: computeHash(href),
		})
		return true
	})

	return articles
}

// findCardDate looks for a publication date inside one listing card: a <time>
// element with a datetime attribute, a <time> with human-readable text, or
// any element with "date" in its class.
func findCardDate(card *goquery.Selection) *time.Time {
	timeEl := card.Find("time").First()
	if dt, ok := timeEl.Attr("datetime"); ok {
		if t := parseHumanDate(strings.TrimSpace(dt)); t != nil {
			return t
		}
	}
	if timeEl.Length() > 0 {
		if t := parseHumanDate(strings.TrimSpace(timeEl.Text())); t != nil {
			return t
		}
	}

	var found *time.Time
	card.Find("[class*=date]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if t := parseHumanDate(strings.TrimSpace(sel.Text())); t != nil {
			found = t
			return false
		}
		return true
	})
	return found
}

// baseURL returns the scheme://host portion of a URL, used to absolutize
// relative hrefs found on listing pages.
func baseURL(pageURL string) string {
	rest, ok := strings.CutPrefix(pageURL, "https://")
	if !ok {
		return pageURL
	}
	host, _, _ := strings.Cut(rest, "/")
	return "https://" + host
}

// parseHumanDate tries to parse date strings like "Jan 29, 2026",
// "February 5, 2026", or ISO dates/timestamps.
func parseHumanDate(s string) *time.Time {
	layouts := []string{
		"Jan 2, 2006",
		"January 2, 2006",
		"Jan 02, 2006",
		"January 02, 2006",
		"2006-01-02",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
