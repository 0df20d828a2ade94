package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, StatusFor(NewNotFoundError("Anuncio")))
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(NewValidationError("bad")))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(NewInternalError("", errors.New("boom"))))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NewNotFoundError("Anuncio"))
	assert.Equal(t, fiber.StatusNotFound, StatusFor(wrapped))
	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.Equal(t, "Anuncio no encontrado", NewNotFoundError("Anuncio").Error())
}

func TestRespondWithError_HidesInternalCause(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError,
			NewInternalError("Error al crear el anuncio", errors.New("pq: connection refused")))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError, errors.New("secret"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error al crear el anuncio", body.Error)
	assert.Equal(t, CodeInternal, body.Code)
	assert.Empty(t, body.Details)

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/plain", nil))
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	var body2 ErrorResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&body2))
	assert.NotContains(t, body2.Error, "secret")
}
