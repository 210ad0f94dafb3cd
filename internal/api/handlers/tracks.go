package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"spotify-clone/internal/catalog"
	"spotify-clone/internal/models"
	"spotify-clone/internal/storage"
)

// TrackHandler handles catalog browsing and stream-URL requests
type TrackHandler struct {
	db      *gorm.DB
	storage *storage.Client
}

// NewTrackHandler creates a new TrackHandler instance with its required dependencies
func NewTrackHandler(db *gorm.DB, st *storage.Client) *TrackHandler {
	return &TrackHandler{
		db:      db,
		storage: st,
	}
}

// GetTracks returns a paginated, lightweight list of tracks
func (h *TrackHandler) GetTracks(c *gin.Context) {
	// 1. Parse Query Parameters
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	search := c.Query("search")
	sortBy := c.DefaultQuery("sort", "newest")

	if limit > 200 {
		limit = 200 // Hard cap to protect the server
	}

	// 2. Build the Query
	query := h.db.Model(&models.Track{})

	// 3. Apply Search
	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("artist ILIKE ? OR title ILIKE ?", searchTerm, searchTerm)
	}

	// 4. Get Total Count (pagination metadata for the frontend)
	var total int64
	query.Count(&total)

	// 5. Apply Sorting
	switch sortBy {
	case "alphabetical":
		query = query.Order("title ASC")
	case "duration":
		query = query.Order("duration DESC")
	default: // "newest"
		// ID is sequential, so ID DESC is much cheaper than created_at
		// DESC and yields the same order.
		query = query.Order("id DESC")
	}

	// 6. Fetch ONLY the required columns into the lightweight projection
	var tracks []catalog.TrackSummary
	result := query.Select("id, title, artist, image_url, audio_key, duration").
		Limit(limit).
		Offset(offset).
		Scan(&tracks)

	if result.Error != nil {
		slog.Error("Failed to fetch tracks", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 7. Return Response
	c.JSON(http.StatusOK, gin.H{
		"data": tracks,
		"meta": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetTrack returns the FULL metadata for a single track, album included
func (h *TrackHandler) GetTrack(c *gin.Context) {
	id := c.Param("id")

	var track models.Track
	if err := h.db.Preload("Album").First(&track, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, track)
}

// GetStreamURL resolves a track's audio key to a short-lived presigned URL
func (h *TrackHandler) GetStreamURL(c *gin.Context) {
	id := c.Param("id")

	var track models.Track
	if err := h.db.First(&track, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if ok, _ := h.storage.Exists(track.AudioKey); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio not available"})
		return
	}

	url, err := h.storage.StreamURL(track.AudioKey)
	if err != nil {
		slog.Error("Failed to presign stream URL", "track_id", track.ID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *TrackHandler) UpdateTrack(c *gin.Context) {
	id := c.Param("id")

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	// Protect read-only fields from being modified via the API
	delete(updateData, "id")
	delete(updateData, "audio_key")
	delete(updateData, "duration")

	// Perform the update
	result := h.db.Model(&models.Track{}).Where("id = ?", id).Updates(updateData)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update track metadata"})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Track updated successfully"})
}
