// Command seed fills the anuncios table with demo listings.
package main

import (
	"flag"
	"log"

	"datawalt/internal/config"
	"datawalt/internal/database"
	"datawalt/internal/models"
	"datawalt/internal/seed"
)

func main() {
	count := flag.Int("count", 40, "Number of random listings to create")
	clean := flag.Bool("clean", false, "Delete every listing before seeding")
	fixtures := flag.String("fixtures", "", "YAML file with hand-written listings to insert")
	dryRun := flag.Bool("dry-run", false, "Print what would be inserted without writing")
	maxDays := flag.Int("max-days", 60, "Spread created_at over this many past days")
	flag.Parse()

	log.Println("🌱 Datawalt Adds seeder")
	log.Printf("count=%d clean=%v fixtures=%q dry-run=%v", *count, *clean, *fixtures, *dryRun)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		Count:   *count,
		Clean:   *clean,
		DryRun:  *dryRun,
		MaxDays: *maxDays,
	})

	var listings []*models.Listing
	if *fixtures != "" {
		listings, err = seed.LoadFixtures(*fixtures)
		if err != nil {
			log.Fatalf("❌ Fixtures failed: %v", err)
		}
	}

	if err := s.Run(listings); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ Done.")
}
