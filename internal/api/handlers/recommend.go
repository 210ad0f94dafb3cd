package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"spotify-clone/internal/catalog"
	"spotify-clone/internal/recommend"
)

// RecommendHandler serves the "made for you" set plus the plain random
// discovery endpoints.
type RecommendHandler struct {
	db     *gorm.DB
	engine *recommend.Engine
}

func NewRecommendHandler(db *gorm.DB, engine *recommend.Engine) *RecommendHandler {
	return &RecommendHandler{db: db, engine: engine}
}

// GetForYou returns up to `count` personalized tracks.
// The count is clamped to [1,10] by the engine.
func (h *RecommendHandler) GetForYou(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "6"))

	tracks, strategy, err := h.engine.ForYou(c.Request.Context(), count)
	if err != nil {
		slog.Error("made-for-you selection failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not load recommendations"})
		return
	}

	if strategy == recommend.StrategyFallback {
		slog.Warn("made-for-you served via random fallback")
	}

	c.JSON(http.StatusOK, gin.H{
		"data": tracks,
		"meta": gin.H{
			"count":    len(tracks),
			"strategy": strategy,
		},
	})
}

// GetRandom is a pass-through to the catalog's native random sample.
func (h *RecommendHandler) GetRandom(c *gin.Context) {
	h.randomDraw(c)
}

// GetTrending has no chart data behind it yet; it is an unweighted random
// draw, same as /tracks/random.
func (h *RecommendHandler) GetTrending(c *gin.Context) {
	h.randomDraw(c)
}

func (h *RecommendHandler) randomDraw(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "10"))
	if count < 1 {
		count = 1
	}
	if count > 50 {
		count = 50 // Hard cap to protect the server
	}

	tracks, err := catalog.RandomSummaries(c.Request.Context(), h.db, count)
	if err != nil {
		slog.Error("random draw failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tracks})
}
