package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"spotify-clone/internal/catalog"
	"spotify-clone/internal/config"
	database "spotify-clone/internal/db"
	"spotify-clone/internal/recommend"
	"spotify-clone/internal/storage"

	"spotify-clone/internal/api/handlers"
	"spotify-clone/internal/api/middleware"
)

type Server struct {
	cfg     *config.Config
	db      *database.Client
	storage *storage.Client
	engine  *recommend.Engine
	router  *gin.Engine
}

func New(cfg *config.Config, db *database.Client, storage *storage.Client) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode) // Set to Release for production
	}

	s := &Server{
		cfg:     cfg,
		db:      db,
		storage: storage,
		engine:  recommend.NewEngine(catalog.NewStore(db.DB)),
		router:  gin.New(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.SilentLogger(), gin.Recovery())

	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	// "Authorization" must be allowed so the frontend can send the JWT
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	secret := []byte(s.cfg.Auth.JWTSecret)
	tokenTTL := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour

	// 1. Initialize Modular Handlers
	authHandler := handlers.NewAuthHandler(s.db.DB, secret, tokenTTL)
	statsHandler := handlers.NewStatsHandler(s.db.DB)
	trackHandler := handlers.NewTrackHandler(s.db.DB, s.storage)
	recommendHandler := handlers.NewRecommendHandler(s.db.DB, s.engine)

	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "spotify-clone"})
	})

	// API Group
	v1 := s.router.Group("/api/v1")
	{
		// ==========================================
		// PUBLIC ROUTES (No Token Required)
		// ==========================================
		v1.POST("/auth/login", authHandler.Login)

		v1.GET("/stats", statsHandler.GetStats)

		// Catalog browsing and discovery are open; only mutations and
		// streaming need a token.
		v1.GET("/tracks", trackHandler.GetTracks)
		v1.GET("/tracks/for-you", recommendHandler.GetForYou)
		v1.GET("/tracks/random", recommendHandler.GetRandom)
		v1.GET("/tracks/trending", recommendHandler.GetTrending)
		v1.GET("/tracks/:id", trackHandler.GetTrack)

		// ==========================================
		// PROTECTED ROUTES (JWT Token Required)
		// ==========================================
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(secret)) // Checks for valid JWT
		{
			// --- ADMIN ONLY ---
			// Only Admins can register new accounts or edit the catalog.
			protected.POST("/auth/register", middleware.RequireRole("admin"), authHandler.Register)
			protected.PUT("/tracks/:id", middleware.RequireRole("admin"), trackHandler.UpdateTrack)

			// --- LISTENERS ---
			protected.GET("/tracks/:id/stream", trackHandler.GetStreamURL)
		}
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
