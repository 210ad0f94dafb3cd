package database

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spotify-clone/internal/models"
)

// SeedAdminUser makes sure at least one admin account exists so the API
// is manageable on first boot. Password comes from config; skipped if empty.
func SeedAdminUser(db *gorm.DB, password string) {
	if password == "" {
		log.Println("Info: no admin seed password configured, skipping admin seed.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.Users{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	}

	// UPSERT on username so restarts don't clobber a rotated password
	db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&admin)

	log.Println("🌱 Admin user ensured")
}

// seedAlbum mirrors the YAML catalog fixture layout.
type seedAlbum struct {
	Title       string      `yaml:"title"`
	Artist      string      `yaml:"artist"`
	ImageURL    string      `yaml:"image_url"`
	ReleaseYear *int        `yaml:"release_year"`
	Tracks      []seedTrack `yaml:"tracks"`
}

type seedTrack struct {
	Title    string `yaml:"title"`
	Artist   string `yaml:"artist"`
	ImageURL string `yaml:"image_url"`
	AudioKey string `yaml:"audio_key"`
	Duration int    `yaml:"duration"`
}

type seedCatalog struct {
	Albums  []seedAlbum `yaml:"albums"`
	Singles []seedTrack `yaml:"singles"`
}

// SeedCatalog loads a YAML catalog fixture and upserts its albums and
// tracks. Tracks are keyed on audio_key, so re-running is safe.
func SeedCatalog(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file %q: %w", path, err)
	}

	var cat seedCatalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return fmt.Errorf("parse catalog file %q: %w", path, err)
	}

	var trackCount int

	for _, sa := range cat.Albums {
		album := models.Album{
			Title:       sa.Title,
			Artist:      sa.Artist,
			ImageURL:    sa.ImageURL,
			ReleaseYear: sa.ReleaseYear,
		}

		// Albums have no natural key; match on title+artist
		if err := db.Where("title = ? AND artist = ?", sa.Title, sa.Artist).
			FirstOrCreate(&album).Error; err != nil {
			return fmt.Errorf("seed album %q: %w", sa.Title, err)
		}

		for _, st := range sa.Tracks {
			artist := st.Artist
			if artist == "" {
				artist = sa.Artist
			}
			image := st.ImageURL
			if image == "" {
				image = sa.ImageURL
			}
			track := models.Track{
				Title:    st.Title,
				Artist:   artist,
				ImageURL: image,
				AudioKey: st.AudioKey,
				Duration: st.Duration,
				AlbumID:  &album.ID,
			}
			if err := upsertTrack(db, &track); err != nil {
				return err
			}
			trackCount++
		}
	}

	for _, st := range cat.Singles {
		track := models.Track{
			Title:    st.Title,
			Artist:   st.Artist,
			ImageURL: st.ImageURL,
			AudioKey: st.AudioKey,
			Duration: st.Duration,
		}
		if err := upsertTrack(db, &track); err != nil {
			return err
		}
		trackCount++
	}

	log.Printf("🌱 Seeded catalog: %d albums, %d tracks", len(cat.Albums), trackCount)
	return nil
}

func upsertTrack(db *gorm.DB, track *models.Track) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "audio_key"}},
		DoNothing: true,
	}).Create(track).Error
	if err != nil {
		return fmt.Errorf("seed track %q: %w", track.Title, err)
	}
	return nil
}
