package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/config"
	"github.com/sunstate-labs/agentcrm/internal/services"
	"gorm.io/gorm"
)

// HealthHandler serves the unauthenticated liveness route
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
}

// Check handles GET /health
// @Summary Liveness and store reachability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB)
	status := fiber.StatusOK
	if result.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
