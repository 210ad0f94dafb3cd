package catalog

import (
	"context"

	"gorm.io/gorm"

	"spotify-clone/internal/models"
)

// TrackSummary is the lightweight projection returned by list-style
// endpoints. It prevents sending the full joined row for every result.
type TrackSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	ImageURL string `json:"image_url"`
	AudioKey string `json:"audio_key"`
	Duration int    `json:"duration"`
}

// Store is what the recommendation engine needs from the catalog: a count,
// a full enumeration with album metadata joined in, and a native uniform
// random sample.
type Store interface {
	Count(ctx context.Context) (int64, error)
	All(ctx context.Context) ([]models.Track, error)
	RandomSample(ctx context.Context, n int) ([]models.Track, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a gorm-backed catalog store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Track{}).Count(&total).Error
	return total, err
}

func (s *gormStore) All(ctx context.Context) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Preload("Album").
		Preload("Album.Tracks").
		Find(&tracks).Error
	return tracks, err
}

// RandomSample leans on the database's own RANDOM() ordering, which is a
// uniform draw without replacement on both Postgres and SQLite.
func (s *gormStore) RandomSample(ctx context.Context, n int) ([]models.Track, error) {
	if n <= 0 {
		return nil, nil
	}
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Preload("Album").
		Order("RANDOM()").
		Limit(n).
		Find(&tracks).Error
	return tracks, err
}

// RandomSummaries is the projection variant of RandomSample, used by the
// /tracks/random and /tracks/trending endpoints where album metadata is
// dead weight.
func RandomSummaries(ctx context.Context, db *gorm.DB, n int) ([]TrackSummary, error) {
	if n <= 0 {
		return nil, nil
	}
	var out []TrackSummary
	err := db.WithContext(ctx).Model(&models.Track{}).
		Select("id, title, artist, image_url, audio_key, duration").
		Order("RANDOM()").
		Limit(n).
		Scan(&out).Error
	return out, err
}
