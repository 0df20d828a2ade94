// Package seed provides helpers to create demo listings for development and
// testing. These helpers are not used by the running server.
package seed

import (
	"fmt"
	"math"
	"time"

	"datawalt/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// categoryTemplate describes plausible listings for one category.
type categoryTemplate struct {
	items    []string
	details  []string
	minPrice int
	maxPrice int
}

var templates = map[string]categoryTemplate{
	"Tecnología": {
		items:    []string{"iPhone 13", "Samsung Galaxy S22", "Notebook Lenovo ThinkPad", "MacBook Air M1", "Monitor LG 27\"", "PlayStation 5", "Audífonos Sony WH-1000XM4", "iPad 9na generación"},
		details:  []string{"en perfecto estado", "con caja y cargador", "poco uso", "con garantía vigente", "batería al 90%"},
		minPrice: 40000,
		maxPrice: 1200000,
	},
	"Inmuebles": {
		items:    []string{"Departamento 2D 1B", "Casa 3D 2B", "Estudio amoblado", "Oficina en arriendo", "Estacionamiento", "Bodega"},
		details:  []string{"cerca del metro", "con vista despejada", "gastos comunes incluidos", "recién remodelado", "en condominio con piscina"},
		minPrice: 250000,
		maxPrice: 900000,
	},
	"Deportes": {
		items:    []string{"Bicicleta de montaña aro 29", "Trotadora eléctrica", "Set de pesas 20kg", "Tabla de surf", "Raqueta de tenis Wilson", "Zapatillas de running"},
		details:  []string{"casi nueva", "ideal para principiantes", "con accesorios", "usada una temporada"},
		minPrice: 15000,
		maxPrice: 450000,
	},
	"Servicios": {
		items:    []string{"Gasfitería a domicilio", "Clases de guitarra", "Mudanzas y fletes", "Reparación de computadores", "Diseño de logos", "Electricista certificado"},
		details:  []string{"presupuesto sin costo", "atención fines de semana", "más de 10 años de experiencia", "boleta disponible"},
		minPrice: 10000,
		maxPrice: 120000,
	},
	"Hogar": {
		items:    []string{"Sofá 3 cuerpos", "Mesa de comedor 6 sillas", "Refrigerador No Frost", "Lavadora 8kg", "Escritorio de madera", "Cama 2 plazas"},
		details:  []string{"buen estado", "retiro en domicilio", "por cambio de casa", "como nuevo"},
		minPrice: 20000,
		maxPrice: 600000,
	},
	"Educación": {
		items:    []string{"Clases de inglés", "Reforzamiento de matemáticas", "Preparación PAES", "Clases de piano", "Curso de Excel", "Tutorías universitarias"},
		details:  []string{"online o presencial", "primera clase gratis", "profesor titulado", "grupos reducidos"},
		minPrice: 8000,
		maxPrice: 60000,
	},
}

var chileanCities = []string{
	"Santiago", "Valparaíso", "Viña del Mar", "Concepción", "La Serena",
	"Antofagasta", "Temuco", "Rancagua", "Talca", "Puerto Montt", "Ñuñoa", "Providencia",
}

// Factory builds listings with realistic Chilean classifieds content.
type Factory struct {
	faker *gofakeit.Faker
	opts  Options
	now   func() time.Time
}

// NewFactory creates a Factory. A zero Options.RandSeed seeds from the clock.
func NewFactory(opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{faker: gofakeit.New(seed), opts: opts, now: time.Now}
}

// BuildListing constructs an unsaved listing. An empty category picks one at random.
func (f *Factory) BuildListing(category string, overrides ...func(*models.Listing)) *models.Listing {
	if category == "" {
		category = f.faker.RandomString(models.Categories)
	}
	tpl, ok := templates[category]
	if !ok {
		tpl = templates["Hogar"]
	}

	item := f.faker.RandomString(tpl.items)
	detail := f.faker.RandomString(tpl.details)

	listing := &models.Listing{
		Titulo:      item,
		Descripcion: fmt.Sprintf("%s, %s. %s", item, detail, f.faker.Sentence(8)),
		Precio:      f.price(tpl),
		Categoria:   category,
		Contacto:    f.phone(),
		Autor:       f.faker.FirstName() + " " + f.faker.LastName(),
		Image:       fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.faker.UUID()),
		Ubicacion:   f.faker.RandomString(chileanCities),
		Favorito:    f.faker.Number(1, 10) == 1,
		CreatedAt:   f.createdAt(),
	}

	for _, override := range overrides {
		override(listing)
	}
	return listing
}

// BuildListings builds n listings spread evenly over the category set.
func (f *Factory) BuildListings(n int) []*models.Listing {
	out := make([]*models.Listing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.BuildListing(models.Categories[i%len(models.Categories)]))
	}
	return out
}

// price rounds to the nearest thousand pesos, the way people list prices.
func (f *Factory) price(tpl categoryTemplate) float64 {
	raw := f.faker.Number(tpl.minPrice, tpl.maxPrice)
	return math.Round(float64(raw)/1000) * 1000
}

func (f *Factory) phone() string {
	return fmt.Sprintf("+56 9 %04d %04d", f.faker.Number(1000, 9999), f.faker.Number(0, 9999))
}

// realistic created_at spread
func (f *Factory) createdAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	return f.now().Add(-back)
}
