package server

import (
	"datawalt/internal/browse"
	"datawalt/internal/models"
	"datawalt/internal/service"

	"github.com/gofiber/fiber/v2"
)

// createListingRequest is the POST /api/anuncios body. precio may be a number
// or a numeric string.
type createListingRequest struct {
	Titulo      string            `json:"titulo"`
	Descripcion string            `json:"descripcion"`
	Precio      models.PriceInput `json:"precio" swaggertype:"string" example:"850000"`
	Categoria   string            `json:"categoria"`
	Contacto    string            `json:"contacto"`
	Image       string            `json:"image"`
	Autor       string            `json:"autor"`
	Ubicacion   string            `json:"ubicacion"`
}

// updateListingRequest is the PUT /api/anuncios body; every field is optional.
type updateListingRequest struct {
	Titulo      *string           `json:"titulo"`
	Descripcion *string           `json:"descripcion"`
	Precio      models.PriceInput `json:"precio" swaggertype:"string" example:"120000"`
	Categoria   *string           `json:"categoria"`
	Contacto    *string           `json:"contacto"`
	Image       *string           `json:"image"`
	Autor       *string           `json:"autor"`
	Ubicacion   *string           `json:"ubicacion"`
	Favorito    *bool             `json:"favorito"`
}

type deleteListingRequest struct {
	ID flexibleID `json:"id" swaggertype:"integer"`
}

// MessageResponse is the body of a successful delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// GetListings handles GET /api/anuncios
// @Summary List listings or fetch one
// @Description Without id, returns every listing newest first (optionally filtered by q and categoria). With id, returns that listing.
// @Tags anuncios
// @Produce json
// @Param id query int false "Listing ID"
// @Param q query string false "Case-insensitive text in titulo or descripcion"
// @Param categoria query string false "Exact category, or Todas"
// @Success 200 {array} models.Listing
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /anuncios [get]
func (s *Server) GetListings(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		return s.GetListing(c)
	}

	listings, err := s.listingService.ListListings(c.UserContext(), browse.Criteria{
		Query:    c.Query("q"),
		Category: c.Query("categoria"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listings)
}

// GetListing handles GET /api/anuncios?id=
func (s *Server) GetListing(c *fiber.Ctx) error {
	id, err := s.parseQueryID(c)
	if err != nil {
		return nil
	}

	listing, err := s.listingService.GetListing(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// CreateListing handles POST /api/anuncios
// @Summary Create listing
// @Description Creates a listing. precio accepts a number or numeric string; empty or unparseable values are stored as 0.
// @Tags anuncios
// @Accept json
// @Produce json
// @Param body body createListingRequest true "Listing fields"
// @Success 200 {object} models.Listing
// @Failure 500 {object} models.ErrorResponse
// @Router /anuncios [post]
func (s *Server) CreateListing(c *fiber.Ctx) error {
	var req createListingRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, models.NewInternalError("Error al crear el anuncio", err))
	}

	listing, err := s.listingService.CreateListing(c.UserContext(), service.CreateListingInput{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Categoria:   req.Categoria,
		Contacto:    req.Contacto,
		Image:       req.Image,
		Autor:       req.Autor,
		Ubicacion:   req.Ubicacion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// UpdateListing handles PUT /api/anuncios?id=
// @Summary Update listing
// @Description Partially updates a listing; only supplied fields change.
// @Tags anuncios
// @Accept json
// @Produce json
// @Param id query int true "Listing ID"
// @Param body body updateListingRequest true "Fields to change"
// @Success 200 {object} models.Listing
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /anuncios [put]
func (s *Server) UpdateListing(c *fiber.Ctx) error {
	id, err := s.parseQueryID(c)
	if err != nil {
		return nil
	}

	var req updateListingRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, models.NewValidationError("Cuerpo de la solicitud inválido"))
	}

	listing, err := s.listingService.UpdateListing(c.UserContext(), service.UpdateListingInput{
		ID:          id,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Categoria:   req.Categoria,
		Contacto:    req.Contacto,
		Image:       req.Image,
		Autor:       req.Autor,
		Ubicacion:   req.Ubicacion,
		Favorito:    req.Favorito,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// DeleteListing handles DELETE /api/anuncios
// @Summary Delete listing
// @Description Permanently deletes the listing whose id is given in the JSON body.
// @Tags anuncios
// @Accept json
// @Produce json
// @Param body body deleteListingRequest true "Listing id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /anuncios [delete]
func (s *Server) DeleteListing(c *fiber.Ctx) error {
	var req deleteListingRequest
	if err := decodeJSON(c, &req); err != nil || !req.ID.set {
		return respondError(c, models.NewValidationError("Falta el id del anuncio"))
	}

	if err := s.listingService.DeleteListing(c.UserContext(), req.ID.value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: "Anuncio eliminado"})
}

// GetCategories handles GET /api/anuncios/categorias
// @Summary List categories
// @Tags anuncios
// @Produce json
// @Success 200 {array} string
// @Router /anuncios/categorias [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	return c.JSON(models.Categories)
}

// GetFeatureFlags returns configured feature flags evaluated for the caller.
// @Summary Feature flags for the current visitor
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	if s.featureFlags == nil {
		return c.JSON(map[string]bool{})
	}
	return c.JSON(s.featureFlags.Snapshot(visitorKey(c)))
}
