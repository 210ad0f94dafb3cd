package models

import (
	"gorm.io/gorm"
)

// Track represents a single playable song in the catalog
type Track struct {
	gorm.Model

	Title  string `gorm:"index" json:"title"`
	Artist string `gorm:"index" json:"artist"` // Free-text display name, NOT a foreign key

	// Media references (resolved by the storage layer at stream time)
	ImageURL string `json:"image_url"`
	AudioKey string `gorm:"uniqueIndex;not null" json:"audio_key"`

	// In seconds. 0 means the duration is unknown.
	Duration int `json:"duration"`

	// Optional album membership. Singles have no album.
	AlbumID *uint  `gorm:"index" json:"album_id,omitempty"`
	Album   *Album `json:"album,omitempty"`
}
