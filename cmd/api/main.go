package main

import (
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spotify-clone/internal/config"
	database "spotify-clone/internal/db"
	"spotify-clone/internal/storage"

	// Use an alias to prevent naming collisions with the 'server' variable
	apiserver "spotify-clone/internal/api/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Spotify-Clone API Server...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)

	// 3. Run Database Migrations
	db.AutoMigrate()

	// 4. Seed initial data
	database.SeedAdminUser(db.DB, cfg.Auth.AdminPassword)
	if _, err := os.Stat(cfg.Seed.CatalogFile); err == nil {
		if err := database.SeedCatalog(db.DB, cfg.Seed.CatalogFile); err != nil {
			log.Printf("⚠️ Catalog seed failed: %v", err)
		}
	}

	// 5. Storage
	store := storage.New(cfg)

	// 6. Setup Metrics
	go func() {
		http.Handle("/_metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/_metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 7. Start Server
	srv := apiserver.New(cfg, db, store)

	log.Printf("🚀 API Server starting on %s", cfg.Server.Port)

	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
