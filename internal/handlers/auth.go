package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/services"
	"github.com/sunstate-labs/agentcrm/internal/token"
	"github.com/sunstate-labs/agentcrm/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login, and the current-user route
type AuthHandler struct {
	DB     *gorm.DB
	Tokens *token.Manager
}

// Register handles POST /api/auth/register
// @Summary Register a new agent account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Account fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	user, signed, err := services.Register(h.DB, h.Tokens, in)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": signed,
	})
}

// Login handles POST /api/auth/login
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	user, signed, err := services.Login(h.DB, h.Tokens, in.Email, in.Password)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":  user,
		"token": signed,
	})
}

// Me handles GET /api/auth/me
// @Summary Get the authenticated user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	user, err := services.CurrentUser(h.DB, userID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}
