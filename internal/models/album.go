package models

import (
	"gorm.io/gorm"
)

// Album groups tracks released together. ReleaseYear is optional because
// a lot of uploaded material arrives without one.
type Album struct {
	gorm.Model

	Title       string `gorm:"index;not null" json:"title"`
	Artist      string `gorm:"index" json:"artist"`
	ImageURL    string `json:"image_url"`
	ReleaseYear *int   `json:"release_year,omitempty"`

	// Track count doubles as a cheap popularity proxy for the recommender.
	Tracks []Track `json:"tracks,omitempty"`
}
