package views

import (
	"bytes"
	"testing"
	"time"

	"datawalt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_BrowseShowsPricesAndToggles(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	page := BrowsePage{
		Cards: []Card{
			{Listing: &models.Listing{ID: 1, Titulo: "iPhone 14", Precio: 850000, Categoria: "Tecnología"}, Favorite: true, ToggleURL: "/?fav=", DetailURL: "/anuncio/1?fav=1"},
			{Listing: &models.Listing{ID: 2, Titulo: "Casa <script>", Precio: 1000, Categoria: "Inmuebles"}, Persist: true, ToggleURL: "/anuncio/2/favorito"},
		},
		Categories: append([]string{models.CategoryAll}, models.Categories...),
		Category:   "Inmuebles",
		Total:      5,
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageBrowse, page))
	html := buf.String()

	assert.Contains(t, html, "$850.000")
	assert.Contains(t, html, "$1.000")
	assert.Contains(t, html, "2 de 5 anuncios")
	assert.Contains(t, html, `<option value="Inmuebles" selected>`)
	assert.Contains(t, html, `action="/anuncio/2/favorito"`)
	assert.Contains(t, html, `href="/anuncio/1?fav=1"`)
	assert.Contains(t, html, "&#9733;")
	assert.NotContains(t, html, "<script>", "titles are escaped")
}

func TestRender_EmptyBrowse(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageBrowse, BrowsePage{Categories: []string{models.CategoryAll}}))
	assert.Contains(t, buf.String(), "No se encontraron anuncios.")
}

func TestRender_DetailAndForm(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	listing := &models.Listing{
		ID:        4,
		Titulo:    "Clases de guitarra",
		Precio:    12000,
		Autor:     "Pedro",
		CreatedAt: time.Date(2024, 5, 9, 10, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageDetail, DetailPage{Card: Card{Listing: listing}, BackURL: "/"}))
	assert.Contains(t, buf.String(), "09/05/2024")
	assert.Contains(t, buf.String(), `href="/editar/4"`)

	buf.Reset()
	require.NoError(t, r.Render(&buf, PageForm, FormPage{
		Heading:    "Editar anuncio",
		Action:     "/editar/4",
		Submit:     "Guardar cambios",
		Draft:      DraftOf(listing),
		Categories: models.Categories,
		Alert:      "Ocurrió un error",
		ListingID:  4,
	}))
	out := buf.String()
	assert.Contains(t, out, `value="12000"`)
	assert.Contains(t, out, "Ocurrió un error")
	assert.Contains(t, out, "/editar/4/eliminar")
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "nope", nil))
}

func TestDraftOf_KeepsDecimals(t *testing.T) {
	d := DraftOf(&models.Listing{Precio: 12.5})
	assert.Equal(t, "12.5", d.Precio)
}
