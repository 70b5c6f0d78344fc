package models

import "time"

// Translation statuses.
const (
	TranslationPending  = "pending"
	TranslationMachine  = "machine"
	TranslationReviewed = "reviewed"
)

// Translation holds a localized rendition of an article for one locale.
type Translation struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	Locale    string    `json:"locale"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocaleCoverage summarizes how much of the article catalog has a
// translation in one locale.
type LocaleCoverage struct {
	Locale     string  `json:"locale"`
	Translated int     `json:"translated"`
	Total      int     `json:"total"`
	Percent    float64 `json:"percent"`
}
