package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"

	"datawalt/internal/models"
	"datawalt/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { SetLogLevel("info") })

	SetLogLevel(" DEBUG ")
	assert.True(t, Logger.Enabled(context.Background(), slog.LevelDebug))

	SetLogLevel("warning")
	assert.False(t, Logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, Logger.Enabled(context.Background(), slog.LevelWarn))

	SetLogLevel("verbose")
	assert.False(t, Logger.Enabled(context.Background(), slog.LevelInfo), "unknown level keeps the previous one")
}

func TestContextMiddleware_PropagatesIDs(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(ContextMiddleware())

	var requestID, correlationID string
	app.Get("/", func(c *fiber.Ctx) error {
		requestID, _ = c.UserContext().Value(RequestIDKey).(string)
		correlationID = observability.ExtractCorrelationID(c.UserContext())
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "req-123", requestID)
	assert.Len(t, correlationID, 36)
}

func TestTracingMiddleware_NamesSpanAfterRoute(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	previous := observability.Tracer
	observability.Tracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)).Tracer("test")
	t.Cleanup(func() { observability.Tracer = previous })

	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/editar/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusInternalServerError) })

	resp, err := app.Test(httptest.NewRequest("GET", "/editar/42", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get("X-Trace-ID"), 32)

	_, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "GET /editar/:id", ended[0].Name())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)

	var id string
	for _, kv := range ended[0].Attributes() {
		if kv.Key == "anuncio.id" {
			id = kv.Value.AsString()
		}
	}
	assert.Equal(t, "42", id)
	assert.Equal(t, codes.Error, ended[1].Status().Code)
}

func TestRecordListingOperation(t *testing.T) {
	okBefore := testutil.ToFloat64(ListingOperations.WithLabelValues("update", "ok"))
	errBefore := testutil.ToFloat64(ListingOperations.WithLabelValues("update", "error"))

	RecordListingOperation("update", nil)
	RecordListingOperation("update", errors.New("boom"))
	RecordListingOperation("update", nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(ListingOperations.WithLabelValues("update", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(ListingOperations.WithLabelValues("update", "error")))
}

func TestRecordListingOperation_NotFoundIsNotAnError(t *testing.T) {
	errBefore := testutil.ToFloat64(ListingOperations.WithLabelValues("delete", "error"))
	missBefore := testutil.ToFloat64(ListingOperations.WithLabelValues("delete", "not_found"))

	RecordListingOperation("delete", models.NewNotFoundError("Anuncio"))
	RecordListingOperation("delete", models.NewInternalError("Error al eliminar el anuncio", errors.New("db down")))

	assert.Equal(t, missBefore+1, testutil.ToFloat64(ListingOperations.WithLabelValues("delete", "not_found")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(ListingOperations.WithLabelValues("delete", "error")))
}

func TestMetricsMiddleware_SkipsScrapeEndpoint(t *testing.T) {
	prom := InitMetrics("datawalt-test")
	app := fiber.New()
	app.Use(MetricsMiddleware(prom))
	prom.RegisterAt(app, "/metrics")
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStructuredLogger_LevelsAndQuietPaths(t *testing.T) {
	var buf bytes.Buffer
	previous := Logger
	Logger = slog.New(&ctxHandler{slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})})
	t.Cleanup(func() { Logger = previous })

	app := fiber.New()
	app.Use(StructuredLogger())
	app.Get("/health/live", func(c *fiber.Ctx) error { return c.SendString("up") })
	app.Get("/api/anuncios", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	_, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	_, err = app.Test(httptest.NewRequest("GET", "/api/anuncios", nil))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=404")
	assert.Contains(t, buf.String(), "path=/api/anuncios")
}
