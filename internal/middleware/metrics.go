package middleware

import (
	"sync"

	"datawalt/internal/models"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "datawalt_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// CacheResults counts listing cache lookups by outcome: hit, miss, error or stale_fill.
	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "datawalt_cache_results_total",
		Help: "Listing cache lookups by result",
	}, []string{"result"})

	// ListingOperations counts listing store operations by operation and outcome.
	ListingOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "datawalt_listing_operations_total",
		Help: "Listing operations by operation and outcome",
	}, []string{"operation", "outcome"})
)

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics builds the Fiber Prometheus middleware for the given service name.
// The collectors live in the default registry, so only the first call registers.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}

// MetricsMiddleware records request metrics, skipping the scrape endpoint itself.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	handler := prom.Middleware
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		return handler(c)
	}
}

// RecordListingOperation increments the listing operation counter. A missing
// listing is its own outcome so it does not read as a store failure.
func RecordListingOperation(operation string, err error) {
	outcome := "ok"
	switch {
	case models.IsCode(err, models.CodeNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	ListingOperations.WithLabelValues(operation, outcome).Inc()
}
