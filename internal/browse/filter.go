// Package browse holds the pure filtering and formatting helpers shared by the
// browse page and the list endpoint.
package browse

import (
	"strings"

	"datawalt/internal/models"
)

// Criteria is the view-local filter state of the browse page.
type Criteria struct {
	Query    string
	Category string
}

// IsZero reports whether the criteria would keep every listing.
func (c Criteria) IsZero() bool {
	return c.Query == "" && (c.Category == "" || c.Category == models.CategoryAll)
}

// Matches reports whether one listing passes both filters.
func (c Criteria) Matches(l *models.Listing) bool {
	if l == nil {
		return false
	}
	if c.Category != "" && c.Category != models.CategoryAll && l.Categoria != c.Category {
		return false
	}
	if c.Query == "" {
		return true
	}
	q := strings.ToLower(c.Query)
	return strings.Contains(strings.ToLower(l.Titulo), q) ||
		strings.Contains(strings.ToLower(l.Descripcion), q)
}

// Filter returns the listings matching c, preserving input order. The input
// slice is never modified.
func Filter(listings []*models.Listing, c Criteria) []*models.Listing {
	out := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if c.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}
