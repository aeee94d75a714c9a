package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/services"
	"github.com/sunstate-labs/agentcrm/internal/utils"
	"gorm.io/gorm"
)

// TaskHandler handles the task routes
type TaskHandler struct {
	DB *gorm.DB
}

// List handles GET /api/tasks
// @Summary List the caller's tasks
// @Description Incomplete tasks sort before complete ones, then by ascending due date, then by descending priority.
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param completed query bool false "Completion filter"
// @Param priority query string false "Priority filter"
// @Param contactId query string false "Contact association filter"
// @Param dealId query string false "Deal association filter"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	tasks, err := services.ListTasks(h.DB, userID, services.TaskFilters{
		Completed: queryBool(c, "completed"),
		Priority:  c.Query("priority"),
		ContactID: c.Query("contactId"),
		DealID:    c.Query("dealId"),
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"tasks": tasks})
}

// Get handles GET /api/tasks/:id
// @Summary Get one task with its contact and deal
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	task, err := services.GetTask(h.DB, userID, c.Params("id"))
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"task": task})
}

// Create handles POST /api/tasks
// @Summary Create a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.TaskInput true "Task fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	var in services.TaskInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	task, err := services.CreateTask(h.DB, userID, in)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"task": task})
}

// Update handles PUT /api/tasks/:id
// @Summary Update a task
// @Description Completing a task stamps completedAt; reopening it clears the stamp.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param body body services.TaskUpdateInput true "Fields to overwrite"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	var in services.TaskUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	task, err := services.UpdateTask(h.DB, userID, c.Params("id"), in)
	if err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"task": task})
}

// Delete handles DELETE /api/tasks/:id
// @Summary Delete a task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
	}

	if err := services.DeleteTask(h.DB, userID, c.Params("id")); err != nil {
		return utils.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Task deleted"})
}
