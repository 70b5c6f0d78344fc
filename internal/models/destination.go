package models

import "time"

// Destination represents a travel destination landing page managed through
// the admin dashboard.
type Destination struct {
	ID           int64     `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Country      string    `json:"country"`
	Summary      string    `json:"summary,omitempty"`
	HeroImageURL string    `json:"hero_image_url,omitempty"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
