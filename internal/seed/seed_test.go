package seed

import (
	"strings"
	"testing"
	"time"

	"datawalt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Listing{}))
	return db
}

func TestFactory_BuildListing(t *testing.T) {
	f := NewFactory(Options{RandSeed: 42, MaxDays: 10})

	for _, category := range models.Categories {
		l := f.BuildListing(category)
		assert.Equal(t, category, l.Categoria)
		assert.NotEmpty(t, l.Titulo)
		assert.True(t, strings.HasPrefix(l.Descripcion, l.Titulo))
		assert.True(t, strings.HasPrefix(l.Contacto, "+56 9 "))
		assert.GreaterOrEqual(t, l.Precio, 0.0)
		assert.Zero(t, int(l.Precio)%1000, "prices are rounded to thousands")
		assert.WithinDuration(t, time.Now(), l.CreatedAt, 11*24*time.Hour)
		assert.Contains(t, chileanCities, l.Ubicacion)
	}

	l := f.BuildListing("", func(l *models.Listing) { l.Titulo = "fijo" })
	assert.Equal(t, "fijo", l.Titulo)
	assert.True(t, models.IsKnownCategory(l.Categoria))
}

func TestFactory_DeterministicWithSeed(t *testing.T) {
	a := NewFactory(Options{RandSeed: 7}).BuildListing("Deportes")
	b := NewFactory(Options{RandSeed: 7}).BuildListing("Deportes")
	assert.Equal(t, a.Titulo, b.Titulo)
	assert.Equal(t, a.Precio, b.Precio)
}

func TestBuildListings_CoversCategories(t *testing.T) {
	listings := NewFactory(Options{RandSeed: 1}).BuildListings(len(models.Categories) * 2)
	seen := map[string]int{}
	for _, l := range listings {
		seen[l.Categoria]++
	}
	for _, c := range models.Categories {
		assert.Equal(t, 2, seen[c], c)
	}
}

func TestParseFixtures(t *testing.T) {
	doc := `
anuncios:
  - titulo: iPhone 13
    descripcion: 128GB
    precio: "850000"
    categoria: Tecnología
  - titulo: Clases de inglés
    descripcion: Online
    precio: ""
    favorito: true
`
	listings, err := ParseFixtures(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, 850000.0, listings[0].Precio)
	assert.Equal(t, 0.0, listings[1].Precio)
	assert.True(t, listings[1].Favorito)

	_, err = ParseFixtures(strings.NewReader("anuncios:\n  - descripcion: sin titulo\n"))
	assert.Error(t, err)

	_, err = ParseFixtures(strings.NewReader("anuncios:\n  - titulo: x\n    colour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")

	listings, err = ParseFixtures(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestSeeder_SeedAndClear(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db, Options{RandSeed: 3})

	listings, err := s.SeedListings(12)
	require.NoError(t, err)
	require.Len(t, listings, 12)
	assert.NotZero(t, listings[0].ID)

	var count int64
	require.NoError(t, db.Model(&models.Listing{}).Count(&count).Error)
	assert.Equal(t, int64(12), count)

	require.NoError(t, s.ClearAll())
	require.NoError(t, db.Model(&models.Listing{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeeder_DryRunWritesNothing(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db, Options{RandSeed: 3, DryRun: true})

	listings, err := s.SeedListings(3)
	require.NoError(t, err)
	assert.Equal(t, uint(1000), listings[0].ID)

	var count int64
	require.NoError(t, db.Model(&models.Listing{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.NoError(t, s.ClearAll())
}

func TestSeeder_RunCleansThenSeeds(t *testing.T) {
	db := setupSeedDB(t)
	require.NoError(t, db.Create(&models.Listing{Titulo: "viejo", Descripcion: "x"}).Error)

	fixtures, err := ParseFixtures(strings.NewReader("anuncios:\n  - titulo: Bicicleta\n    descripcion: aro 29\n    precio: 120000\n"))
	require.NoError(t, err)

	s := NewSeeder(db, Options{Clean: true, Count: 4, RandSeed: 9})
	require.NoError(t, s.Run(fixtures))

	var count int64
	require.NoError(t, db.Model(&models.Listing{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)

	var old int64
	require.NoError(t, db.Model(&models.Listing{}).Where("titulo = ?", "viejo").Count(&old).Error)
	assert.Zero(t, old)

	var bike models.Listing
	require.NoError(t, db.Where("titulo = ?", "Bicicleta").First(&bike).Error)
	assert.Equal(t, 120000.0, bike.Precio)
}

func TestLoadFixtures_File(t *testing.T) {
	listings, err := LoadFixtures("testdata/anuncios.yml")
	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, 850000.0, listings[0].Precio)
	assert.Equal(t, 520000.0, listings[1].Precio)
	assert.Equal(t, "Ñuñoa", listings[1].Ubicacion)
	assert.Zero(t, listings[2].Precio)
	assert.True(t, listings[2].Favorito)

	_, err = LoadFixtures("testdata/missing.yml")
	assert.Error(t, err)
}
