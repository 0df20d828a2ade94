// Package server contains the HTTP handlers for the listing API and pages.
package server

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"datawalt/internal/middleware"
	"datawalt/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

var errInvalidID = errors.New("invalid id")

// parsePositiveID parses a decimal listing id.
func parsePositiveID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// parseQueryID extracts ?id= as a positive uint. On failure it writes a 400
// JSON response and returns errResponseWritten.
func (s *Server) parseQueryID(c *fiber.Ctx) (uint, error) {
	raw := c.Query("id")
	if raw == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Falta el id del anuncio"))
		return 0, errResponseWritten
	}
	id, err := parsePositiveID(raw)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Id de anuncio inválido"))
		return 0, errResponseWritten
	}
	return id, nil
}

// flexibleID accepts a JSON id given either as a number or a numeric string.
type flexibleID struct {
	value uint
	set   bool
}

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}
	id, err := parsePositiveID(raw)
	if err != nil {
		return err
	}
	f.value, f.set = id, true
	return nil
}

// decodeJSON decodes the request body with the app's JSON decoder regardless
// of the Content-Type header.
func decodeJSON(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(body) == 0 {
		return errors.New("empty body")
	}
	return c.App().Config().JSONDecoder(body, out)
}

// respondError writes err with the status implied by its AppError code and
// logs internal failures.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "listing request failed",
			"method", c.Method(), "path", c.Path(), "error", err.Error())
	}
	return models.RespondWithError(c, status, err)
}

// visitorKey identifies an anonymous visitor for feature-flag rollouts.
func visitorKey(c *fiber.Ctx) string {
	return c.IP()
}
