package server

import (
	"bytes"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"datawalt/internal/browse"
	"datawalt/internal/featureflags"
	"datawalt/internal/middleware"
	"datawalt/internal/models"
	"datawalt/internal/service"
	"datawalt/internal/views"

	"github.com/gofiber/fiber/v2"
)

const publishFailedAlert = "Ocurrió un error al publicar el anuncio."

// render writes an HTML page with the given status.
func (s *Server) render(c *fiber.Ctx, status int, page string, data any) error {
	var buf bytes.Buffer
	if err := s.views.Render(&buf, page, data); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "render failed", "page", page, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).SendString("Error interno")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// renderError shows the error page for a service failure.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	message := "Ocurrió un error inesperado."
	if status == fiber.StatusNotFound {
		message = "Anuncio no encontrado"
	} else {
		middleware.Logger.ErrorContext(c.UserContext(), "page request failed", "path", c.Path(), "error", err.Error())
	}
	return s.render(c, status, views.PageError, views.ErrorPage{Status: status, Message: message})
}

func (s *Server) persistFavorites(c *fiber.Ctx) bool {
	return s.featureFlags.Enabled(featureflags.PersistFavorites, visitorKey(c))
}

// pathID parses the :id route parameter for page routes.
func (s *Server) pathID(c *fiber.Ctx) (uint, error) {
	id, err := parsePositiveID(c.Params("id"))
	if err != nil {
		_ = s.render(c, fiber.StatusBadRequest, views.PageError,
			views.ErrorPage{Status: fiber.StatusBadRequest, Message: "Id de anuncio inválido"})
		return 0, errResponseWritten
	}
	return id, nil
}

// BrowseView handles GET /
func (s *Server) BrowseView(c *fiber.Ctx) error {
	criteria := browse.Criteria{Query: c.Query("q"), Category: c.Query("categoria")}
	if criteria.Category == "" {
		criteria.Category = models.CategoryAll
	}

	all, err := s.listingService.ListListings(c.UserContext(), browse.Criteria{})
	if err != nil {
		return s.renderError(c, err)
	}
	visible := browse.Filter(all, criteria)

	persist := s.persistFavorites(c)
	favs := parseFavSet(c.Query("fav"))
	here := c.OriginalURL()

	cards := make([]views.Card, 0, len(visible))
	for _, l := range visible {
		cards = append(cards, s.card(c, l, persist, favs, here))
	}

	return s.render(c, fiber.StatusOK, views.PageBrowse, views.BrowsePage{
		Cards:      cards,
		Query:      criteria.Query,
		Category:   criteria.Category,
		Categories: append([]string{models.CategoryAll}, models.Categories...),
		Fav:        c.Query("fav"),
		Total:      len(all),
	})
}

// DetailView handles GET /anuncio/:id
func (s *Server) DetailView(c *fiber.Ctx) error {
	id, err := s.pathID(c)
	if err != nil {
		return nil
	}

	listing, err := s.listingService.GetListing(c.UserContext(), id)
	if err != nil {
		return s.renderError(c, err)
	}

	back := "/"
	if fav := c.Query("fav"); fav != "" {
		back = "/?fav=" + url.QueryEscape(fav)
	}

	persist := s.persistFavorites(c)
	return s.render(c, fiber.StatusOK, views.PageDetail, views.DetailPage{
		Card:    s.card(c, listing, persist, parseFavSet(c.Query("fav")), c.OriginalURL()),
		BackURL: back,
	})
}

// ToggleFavoriteAction handles POST /anuncio/:id/favorito. Without the
// persist_favorites flag the store is left alone and the visitor is sent back.
func (s *Server) ToggleFavoriteAction(c *fiber.Ctx) error {
	id, err := s.pathID(c)
	if err != nil {
		return nil
	}

	if s.persistFavorites(c) {
		if _, err := s.listingService.ToggleFavorite(c.UserContext(), id); err != nil {
			return s.renderError(c, err)
		}
	}
	return c.Redirect(safeReturnPath(c.Query("volver")), fiber.StatusSeeOther)
}

// NewListingPage handles GET /nuevo
func (s *Server) NewListingPage(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, views.PageForm, newListingForm(views.Draft{Categoria: models.Categories[0]}, ""))
}

// CreateListingAction handles POST /nuevo
func (s *Server) CreateListingAction(c *fiber.Ctx) error {
	draft := draftFromForm(c)

	_, err := s.listingService.CreateListing(c.UserContext(), service.CreateListingInput{
		Titulo:      draft.Titulo,
		Descripcion: draft.Descripcion,
		Precio:      models.PriceOf(draft.Precio),
		Categoria:   draft.Categoria,
		Contacto:    draft.Contacto,
		Image:       draft.Image,
		Autor:       draft.Autor,
		Ubicacion:   draft.Ubicacion,
	})
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "create from form failed", "error", err.Error())
		return s.render(c, models.StatusFor(err), views.PageForm, newListingForm(draft, publishFailedAlert))
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// EditListingPage handles GET /editar/:id
func (s *Server) EditListingPage(c *fiber.Ctx) error {
	id, err := s.pathID(c)
	if err != nil {
		return nil
	}

	listing, err := s.listingService.GetListing(c.UserContext(), id)
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, fiber.StatusOK, views.PageForm, editListingForm(id, views.DraftOf(listing), ""))
}

// UpdateListingAction handles POST /editar/:id
func (s *Server) UpdateListingAction(c *fiber.Ctx) error {
	id, err := s.pathID(c)
	if err != nil {
		return nil
	}

	draft := draftFromForm(c)
	_, err = s.listingService.UpdateListing(c.UserContext(), service.UpdateListingInput{
		ID:          id,
		Titulo:      &draft.Titulo,
		Descripcion: &draft.Descripcion,
		Precio:      models.PriceOf(draft.Precio),
		Categoria:   &draft.Categoria,
		Contacto:    &draft.Contacto,
		Image:       &draft.Image,
		Autor:       &draft.Autor,
		Ubicacion:   &draft.Ubicacion,
	})
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return s.renderError(c, err)
		}
		middleware.Logger.ErrorContext(c.UserContext(), "update from form failed", "id", id, "error", err.Error())
		return s.render(c, models.StatusFor(err), views.PageForm,
			editListingForm(id, draft, "Ocurrió un error al guardar los cambios."))
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// DeleteConfirmPage handles GET /editar/:id/eliminar
func (s *Server) DeleteConfirmPage(c *fiber.Ctx) error {
	id, err := s.pathID(c)
	if err != nil {
		return nil
	}

	listing, err := s.listingService.GetListing(c.UserContext(), id)
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, fiber.StatusOK, views.PageConfirm, views.ConfirmPage{
		Listing: listing,
		Action:  "/editar/" + strconv.FormatUint(uint64(id), 10) + "/eliminar",
		Cancel:  "/editar/" + strconv.FormatUint(uint64(id), 10),
	})
}

// DeleteListingAction handles POST /editar/:id/eliminar
func (s *Server) DeleteListingAction(c *fiber.Ctx) error {
	id, err := s.pathID(c)
	if err != nil {
		return nil
	}

	if err := s.listingService.DeleteListing(c.UserContext(), id); err != nil {
		return s.renderError(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) card(c *fiber.Ctx, l *models.Listing, persist bool, favs map[uint]bool, here string) views.Card {
	detail := "/anuncio/" + strconv.FormatUint(uint64(l.ID), 10)
	card := views.Card{Listing: l, Persist: persist, DetailURL: detail}
	if persist {
		card.Favorite = l.Favorito
		card.ToggleURL = detail + "/favorito?volver=" + url.QueryEscape(here)
		return card
	}
	card.Favorite = favs[l.ID]
	card.ToggleURL = withFavToggled(c.Path(), c.Queries(), l.ID)
	// view-local favorites ride along to the detail page and back
	if fav := formatFavSet(favs); fav != "" {
		card.DetailURL = detail + "?fav=" + url.QueryEscape(fav)
	}
	return card
}

func newListingForm(draft views.Draft, alert string) views.FormPage {
	return views.FormPage{
		Heading:    "Publicar anuncio",
		Action:     "/nuevo",
		Submit:     "Publicar",
		Draft:      draft,
		Categories: models.Categories,
		Alert:      alert,
	}
}

func editListingForm(id uint, draft views.Draft, alert string) views.FormPage {
	return views.FormPage{
		Heading:    "Editar anuncio",
		Action:     "/editar/" + strconv.FormatUint(uint64(id), 10),
		Submit:     "Guardar cambios",
		Draft:      draft,
		Categories: models.Categories,
		Alert:      alert,
		ListingID:  id,
	}
}

func draftFromForm(c *fiber.Ctx) views.Draft {
	return views.Draft{
		Titulo:      c.FormValue("titulo"),
		Descripcion: c.FormValue("descripcion"),
		Precio:      c.FormValue("precio"),
		Categoria:   c.FormValue("categoria"),
		Contacto:    c.FormValue("contacto"),
		Image:       c.FormValue("image"),
		Autor:       c.FormValue("autor"),
		Ubicacion:   c.FormValue("ubicacion"),
	}
}

// parseFavSet reads the view-local favorites kept in the fav query parameter
// ("3,7,12"). Malformed entries are ignored.
func parseFavSet(raw string) map[uint]bool {
	favs := make(map[uint]bool)
	for _, part := range strings.Split(raw, ",") {
		if id, err := parsePositiveID(part); err == nil {
			favs[id] = true
		}
	}
	return favs
}

func formatFavSet(favs map[uint]bool) string {
	ids := make([]uint, 0, len(favs))
	for id, on := range favs {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

// withFavToggled returns path with the same query but id flipped in fav.
func withFavToggled(path string, query map[string]string, id uint) string {
	favs := parseFavSet(query["fav"])
	if favs[id] {
		delete(favs, id)
	} else {
		favs[id] = true
	}

	values := url.Values{}
	for k, v := range query {
		if k != "fav" && v != "" {
			values.Set(k, v)
		}
	}
	if fav := formatFavSet(favs); fav != "" {
		values.Set("fav", fav)
	}
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

// safeReturnPath only allows local absolute paths as redirect targets.
func safeReturnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	return raw
}
