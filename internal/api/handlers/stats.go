package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"spotify-clone/internal/models"
)

// StatsHandler handles stats-related requests independently of the main server
type StatsHandler struct {
	db *gorm.DB
}

// NewStatsHandler creates a new StatsHandler instance
func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// GetStats returns aggregated catalog statistics for the dashboard
func (h *StatsHandler) GetStats(c *gin.Context) {
	var totalTracks int64
	var totalAlbums int64
	var distinctArtists int64

	h.db.Model(&models.Track{}).Count(&totalTracks)
	h.db.Model(&models.Album{}).Count(&totalAlbums)
	h.db.Model(&models.Track{}).Distinct("artist").Count(&distinctArtists)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_tracks":   totalTracks,
			"total_albums":   totalAlbums,
			"unique_artists": distinctArtists,
		},
	})
}
