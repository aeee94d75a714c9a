package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/services"
	"github.com/sunstate-labs/agentcrm/internal/utils"
	"gorm.io/gorm"
)

// LeadHandler serves the global lead source catalog
type LeadHandler struct {
	DB *gorm.DB
}

// Sources handles GET /api/leads/sources
// @Summary List lead source catalog entries, cheapest first
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param qualityTier query string false "Quality tier filter"
// @Param active query bool false "Active filter"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /leads/sources [get]
func (h *LeadHandler) Sources(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	sources, err := services.ListLeadSources(h.DB, services.LeadSourceFilters{
		QualityTier: c.Query("qualityTier"),
		Active:      queryBool(c, "active"),
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"leadSources": sources})
}

// Available handles GET /api/leads/available
// @Summary List active lead sources with estimated conversion rates
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param qualityTier query string false "Quality tier filter"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /leads/available [get]
func (h *LeadHandler) Available(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	leads, err := services.ListAvailableLeads(h.DB, c.Query("qualityTier"))
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"availableLeads": leads})
}
