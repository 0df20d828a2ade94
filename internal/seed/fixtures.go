package seed

import (
	"fmt"
	"io"
	"os"

	"datawalt/internal/models"

	"gopkg.in/yaml.v3"
)

// Fixture is one hand-written listing in a YAML fixtures file:
//
//	anuncios:
//	  - titulo: iPhone 13
//	    descripcion: 128GB, con caja
//	    precio: "850000"
//	    categoria: Tecnología
type Fixture struct {
	Titulo      string `yaml:"titulo"`
	Descripcion string `yaml:"descripcion"`
	Precio      string `yaml:"precio"`
	Categoria   string `yaml:"categoria"`
	Contacto    string `yaml:"contacto"`
	Autor       string `yaml:"autor"`
	Image       string `yaml:"image"`
	Ubicacion   string `yaml:"ubicacion"`
	Favorito    bool   `yaml:"favorito"`
}

type fixtureFile struct {
	Anuncios []Fixture `yaml:"anuncios"`
}

// ParseFixtures decodes a fixtures document. Prices go through the same
// coercion as the API, so "850000", 850000 and "" are all accepted.
func ParseFixtures(r io.Reader) ([]*models.Listing, error) {
	var doc fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	out := make([]*models.Listing, 0, len(doc.Anuncios))
	for i, fx := range doc.Anuncios {
		if fx.Titulo == "" {
			return nil, fmt.Errorf("fixture %d: titulo is required", i)
		}
		out = append(out, &models.Listing{
			Titulo:      fx.Titulo,
			Descripcion: fx.Descripcion,
			Precio:      models.ParsePrice(fx.Precio),
			Categoria:   fx.Categoria,
			Contacto:    fx.Contacto,
			Autor:       fx.Autor,
			Image:       fx.Image,
			Ubicacion:   fx.Ubicacion,
			Favorito:    fx.Favorito,
		})
	}
	return out, nil
}

// LoadFixtures reads and parses a fixtures file.
func LoadFixtures(path string) ([]*models.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFixtures(f)
}
