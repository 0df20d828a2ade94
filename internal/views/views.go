// Package views renders the server-side pages of the listing site.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"datawalt/internal/browse"
	"datawalt/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Render.
const (
	PageBrowse  = "browse"
	PageDetail  = "detail"
	PageForm    = "form"
	PageConfirm = "confirm"
	PageError   = "error"
)

var pageNames = []string{PageBrowse, PageDetail, PageForm, PageConfirm, PageError}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"precio": browse.FormatPrice,
		"fecha": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page into w. Output is buffered so a failing template never
// leaves a half-written page behind.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Card is one listing as shown on the browse and detail pages. When Persist
// is set the toggle posts to ToggleURL, otherwise it is a plain link.
type Card struct {
	*models.Listing
	Favorite  bool
	Persist   bool
	ToggleURL string
	DetailURL string
}

type BrowsePage struct {
	Cards      []Card
	Query      string
	Category   string
	Categories []string
	Fav        string
	Total      int
}

type DetailPage struct {
	Card    Card
	BackURL string
}

// Draft is the unsaved state of the create and edit forms.
type Draft struct {
	Titulo      string
	Descripcion string
	Precio      string
	Categoria   string
	Contacto    string
	Image       string
	Autor       string
	Ubicacion   string
}

// DraftOf seeds a draft from a stored listing.
func DraftOf(l *models.Listing) Draft {
	return Draft{
		Titulo:      l.Titulo,
		Descripcion: l.Descripcion,
		Precio:      formatRawPrice(l.Precio),
		Categoria:   l.Categoria,
		Contacto:    l.Contacto,
		Image:       l.Image,
		Autor:       l.Autor,
		Ubicacion:   l.Ubicacion,
	}
}

type FormPage struct {
	Heading    string
	Action     string
	Submit     string
	Draft      Draft
	Categories []string
	Alert      string
	ListingID  uint
}

type ConfirmPage struct {
	Listing *models.Listing
	Action  string
	Cancel  string
}

type ErrorPage struct {
	Status  int
	Message string
}

func formatRawPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
