package main

import (
	"flag"
	"log"

	"spotify-clone/internal/config"
	database "spotify-clone/internal/db"
)

// Standalone seeder: loads a YAML catalog fixture into the database and
// exits. Handy for CI fixtures and demo environments.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	file := flag.String("file", "", "catalog YAML file (defaults to the configured seed file)")
	flag.Parse()

	cfg := config.Load()
	path := cfg.Seed.CatalogFile
	if *file != "" {
		path = *file
	}

	db := database.New(cfg)
	db.AutoMigrate()

	if err := database.SeedCatalog(db.DB, path); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Println("✅ Catalog seeded")
}
