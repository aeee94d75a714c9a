package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/services"
	"github.com/sunstate-labs/agentcrm/internal/utils"
	"gorm.io/gorm"
)

// DealHandler handles the deal routes
type DealHandler struct {
	DB *gorm.DB
}

// List handles GET /api/deals
// @Summary List the caller's deals
// @Tags Deals
// @Produce json
// @Security BearerAuth
// @Param stage query string false "Pipeline stage filter"
// @Param status query string false "Status filter"
// @Param search query string false "Substring match on property address or city"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /deals [get]
func (h *DealHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	deals, err := services.ListDeals(h.DB, userID, services.DealFilters{
		Stage:  c.Query("stage"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deals": deals})
}

// Get handles GET /api/deals/:id
// @Summary Get one deal with its contact, tasks, and documents
// @Tags Deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /deals/{id} [get]
func (h *DealHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	deal, err := services.GetDeal(h.DB, userID, c.Params("id"))
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deal": deal})
}

// Create handles POST /api/deals
// @Summary Create a deal
// @Tags Deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DealInput true "Deal fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	var in services.DealInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	deal, err := services.CreateDeal(h.DB, userID, in)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"deal": deal})
}

// Update handles PUT /api/deals/:id
// @Summary Update a deal
// @Tags Deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Param body body services.DealUpdateInput true "Fields to overwrite"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /deals/{id} [put]
func (h *DealHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	var in services.DealUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	deal, err := services.UpdateDeal(h.DB, userID, c.Params("id"), in)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deal": deal})
}

// Delete handles DELETE /api/deals/:id
// @Summary Delete a deal
// @Tags Deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /deals/{id} [delete]
func (h *DealHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	if err := services.DeleteDeal(h.DB, userID, c.Params("id")); err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Deal deleted"})
}

// PipelineSummary handles GET /api/deals/pipeline/summary
// @Summary Aggregate active deals by pipeline stage
// @Tags Deals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /deals/pipeline/summary [get]
func (h *DealHandler) PipelineSummary(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	summary, err := services.PipelineSummary(h.DB, userID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"summary": summary})
}
