package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/services"
	"github.com/sunstate-labs/agentcrm/internal/utils"
	"gorm.io/gorm"
)

// DocumentHandler handles the document metadata routes. File bytes are the
// responsibility of an external storage collaborator.
type DocumentHandler struct {
	DB *gorm.DB
}

// List handles GET /api/documents
// @Summary List the caller's document metadata
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param contactId query string false "Contact association filter"
// @Param dealId query string false "Deal association filter"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	documents, err := services.ListDocuments(h.DB, userID, services.DocumentFilters{
		ContactID: c.Query("contactId"),
		DealID:    c.Query("dealId"),
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"documents": documents})
}

// Get handles GET /api/documents/:id
// @Summary Get one document's metadata
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	document, err := services.GetDocument(h.DB, userID, c.Params("id"))
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"document": document})
}

// Create handles POST /api/documents
// @Summary Record file metadata
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DocumentInput true "Document metadata"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	var in services.DocumentInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	document, err := services.CreateDocument(h.DB, userID, in)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"document": document})
}

// Delete handles DELETE /api/documents/:id
// @Summary Delete a document's metadata
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	if err := services.DeleteDocument(h.DB, userID, c.Params("id")); err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Document deleted"})
}
