// Package models contains data structures for the application's domain models.
package models

import "time"

// Listing is a single classified ad ("anuncio").
type Listing struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Titulo      string    `gorm:"not null" json:"titulo"`
	Descripcion string    `gorm:"type:text;not null" json:"descripcion"`
	Precio      float64   `gorm:"type:double precision;not null;default:0" json:"precio"`
	Categoria   string    `gorm:"index" json:"categoria"`
	Contacto    string    `json:"contacto"`
	Autor       string    `json:"autor"`
	Image       string    `json:"image"`
	Ubicacion   string    `json:"ubicacion"`
	Favorito    bool      `gorm:"not null;default:false" json:"favorito"`
	CreatedAt   time.Time `gorm:"index;autoCreateTime" json:"createdAt"`
}

// TableName keeps the Spanish plural used by the public API path.
func (Listing) TableName() string { return "anuncios" }

// CategoryAll is the browse pseudo-category that matches every listing.
const CategoryAll = "Todas"

// Categories is the fixed label set offered by the create and edit forms.
var Categories = []string{
	"Tecnología",
	"Inmuebles",
	"Deportes",
	"Servicios",
	"Hogar",
	"Educación",
}

// IsKnownCategory reports whether label is one of Categories.
func IsKnownCategory(label string) bool {
	for _, c := range Categories {
		if c == label {
			return true
		}
	}
	return false
}
