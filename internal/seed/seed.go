package seed

import (
	"fmt"
	"log"

	"datawalt/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	Count    int
	Clean    bool
	DryRun   bool
	MaxDays  int
	RandSeed int64
}

// Seeder writes demo listings through GORM.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(opts)}
}

// ClearAll removes every listing.
func (s *Seeder) ClearAll() error {
	if s.opts.DryRun {
		log.Println("[dry-run] would delete all anuncios")
		return nil
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Listing{}).Error; err != nil {
		return fmt.Errorf("clear anuncios: %w", err)
	}
	log.Println("🧹 Cleared anuncios")
	return nil
}

// SeedListings generates and stores n random listings.
func (s *Seeder) SeedListings(n int) ([]*models.Listing, error) {
	return s.insert(s.factory.BuildListings(n))
}

// SeedFixtures stores hand-written listings. created_at is filled by the store.
func (s *Seeder) SeedFixtures(listings []*models.Listing) ([]*models.Listing, error) {
	return s.insert(listings)
}

func (s *Seeder) insert(listings []*models.Listing) ([]*models.Listing, error) {
	if len(listings) == 0 {
		return listings, nil
	}
	if s.opts.DryRun {
		for i, l := range listings {
			l.ID = uint(1000 + i)
			log.Printf("[dry-run] %s | %s | %.0f", l.Categoria, l.Titulo, l.Precio)
		}
		return listings, nil
	}
	if err := s.db.CreateInBatches(listings, 100).Error; err != nil {
		return nil, fmt.Errorf("insert anuncios: %w", err)
	}
	log.Printf("📦 Inserted %d anuncios", len(listings))
	return listings, nil
}

// Run clears the table when Options.Clean is set, inserts the given fixtures
// and then Options.Count random listings.
func (s *Seeder) Run(fixtures []*models.Listing) error {
	if s.opts.Clean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}
	if _, err := s.SeedFixtures(fixtures); err != nil {
		return err
	}
	if s.opts.Count > 0 {
		if _, err := s.SeedListings(s.opts.Count); err != nil {
			return err
		}
	}
	return nil
}
