package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	checkHealthy     = "healthy"
	checkUnhealthy   = "unhealthy"
	checkUnavailable = "unavailable"
	statusDegraded   = "degraded"
)

// HealthReport is the /health/ready body.
type HealthReport struct {
	Service string            `json:"service"`
	Version string            `json:"version"`
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Time    time.Time         `json:"time"`
}

// LivenessCheck handles GET /health/live. It never touches dependencies.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "up", "time": time.Now()})
}

// ReadinessCheck handles GET /health/ready. The database decides readiness;
// Redis only backs the read cache, so without it the report is "degraded"
// but still 200.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	report := HealthReport{
		Service: appName,
		Version: "1.0.0",
		Status:  checkHealthy,
		Checks: map[string]string{
			"database": s.checkDatabase(ctx),
			"redis":    s.checkRedis(ctx),
		},
		Time: time.Now(),
	}

	status := fiber.StatusOK
	switch {
	case report.Checks["database"] != checkHealthy:
		status = fiber.StatusServiceUnavailable
		report.Status = checkUnhealthy
	case report.Checks["redis"] != checkHealthy:
		report.Status = statusDegraded
	}
	return c.Status(status).JSON(report)
}

func (s *Server) checkDatabase(ctx context.Context) string {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return checkUnhealthy
	}
	return checkHealthy
}

func (s *Server) checkRedis(ctx context.Context) string {
	if s.redis == nil {
		return checkUnavailable
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return checkUnhealthy
	}
	return checkHealthy
}
