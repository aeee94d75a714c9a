package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/services"
	"github.com/sunstate-labs/agentcrm/internal/utils"
	"gorm.io/gorm"
)

// ContactHandler handles the contact routes
type ContactHandler struct {
	DB *gorm.DB
}

// List handles GET /api/contacts
// @Summary List the caller's contacts
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param type query string false "Contact type (LEAD, CLIENT, ...)"
// @Param search query string false "Substring match on name, email, or phone"
// @Param tag query string false "Tag membership filter"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	contacts, err := services.ListContacts(h.DB, userID, services.ContactFilters{
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"contacts": contacts})
}

// Get handles GET /api/contacts/:id
// @Summary Get one contact with nested relations
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	contact, err := services.GetContact(h.DB, userID, c.Params("id"))
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"contact": contact})
}

// Create handles POST /api/contacts
// @Summary Create a contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ContactInput true "Contact fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	var in services.ContactInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	contact, err := services.CreateContact(h.DB, userID, in)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"contact": contact})
}

// Update handles PUT /api/contacts/:id
// @Summary Update a contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Param body body services.ContactUpdateInput true "Fields to overwrite"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	var in services.ContactUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	contact, err := services.UpdateContact(h.DB, userID, c.Params("id"), in)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"contact": contact})
}

// Delete handles DELETE /api/contacts/:id
// @Summary Delete a contact
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	if err := services.DeleteContact(h.DB, userID, c.Params("id")); err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Contact deleted"})
}
