package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/services"
	"github.com/sunstate-labs/agentcrm/internal/utils"
	"gorm.io/gorm"
)

// InteractionHandler handles the interaction routes
type InteractionHandler struct {
	DB *gorm.DB
}

// ListByContact handles GET /api/interactions/contact/:contactId
// @Summary List logged touchpoints for one contact, newest first
// @Tags Interactions
// @Produce json
// @Security BearerAuth
// @Param contactId path string true "Contact ID"
// @Param type query string false "Interaction type filter"
// @Param limit query int false "Result cap (default 50)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /interactions/contact/{contactId} [get]
func (h *InteractionHandler) ListByContact(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	interactions, err := services.ListInteractionsByContact(h.DB, userID, c.Params("contactId"), services.InteractionFilters{
		Type:  c.Query("type"),
		Limit: queryInt(c, "limit", 0),
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"interactions": interactions})
}

// Create handles POST /api/interactions
// @Summary Log a contact touchpoint
// @Tags Interactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.InteractionInput true "Interaction fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /interactions [post]
func (h *InteractionHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	var in services.InteractionInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	interaction, err := services.CreateInteraction(h.DB, userID, in)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"interaction": interaction})
}

// Delete handles DELETE /api/interactions/:id
// @Summary Delete an interaction
// @Tags Interactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interaction ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /interactions/{id} [delete]
func (h *InteractionHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	if err := services.DeleteInteraction(h.DB, userID, c.Params("id")); err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Interaction deleted"})
}
