package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/sunstate-labs/agentcrm/internal/models"
	"github.com/sunstate-labs/agentcrm/internal/types"
	"gorm.io/gorm"
)

// TaskFilters narrows the task list query
type TaskFilters struct {
	Completed *bool
	Priority  string
	ContactID string
	DealID    string
}

// TaskInput holds the fields accepted by POST /api/tasks
type TaskInput struct {
	ContactID   *string    `json:"contactId"`
	DealID      *string    `json:"dealId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
}

// TaskUpdateInput holds the fields accepted by PUT /api/tasks/:id.
// Title, description, priority, and completed are always rewritten; the
// association fields and due date are only touched when their key appears in
// the request body, which is how an explicit null is told apart from an
// omitted field.
type TaskUpdateInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	ContactID   *string    `json:"contactId"`
	DealID      *string    `json:"dealId"`
	DueDate     *time.Time `json:"dueDate"`

	HasContactID bool `json:"-"`
	HasDealID    bool `json:"-"`
	HasDueDate   bool `json:"-"`
}

type taskUpdateAlias TaskUpdateInput

// UnmarshalJSON records which optional keys were present in the payload.
func (in *TaskUpdateInput) UnmarshalJSON(data []byte) error {
	var alias taskUpdateAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*in = TaskUpdateInput(alias)
	_, in.HasContactID = keys["contactId"]
	_, in.HasDealID = keys["dealId"]
	_, in.HasDueDate = keys["dueDate"]
	return nil
}

// ListTasks returns the caller's tasks: incomplete before complete, then by
// ascending due date, then by descending priority.
func ListTasks(db *gorm.DB, userID string, f TaskFilters) ([]models.Task, error) {
	query := quiet(db).Scopes(ownedBy(userID))

	if f.Completed != nil {
		query = query.Where("completed = ?", *f.Completed)
	}
	if f.Priority != "" {
		query = query.Where("priority = ?", f.Priority)
	}
	if f.ContactID != "" {
		query = query.Where("contact_id = ?", f.ContactID)
	}
	if f.DealID != "" {
		query = query.Where("deal_id = ?", f.DealID)
	}

	var tasks []models.Task
	err := query.Preload("Contact").Preload("Deal").
		Order("completed ASC").
		Order("due_date ASC").
		Order("priority DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns one owned task with its contact and deal.
func GetTask(db *gorm.DB, userID, id string) (*models.Task, error) {
	var task models.Task
	err := quiet(db).Scopes(ownedBy(userID)).
		Preload("Contact").Preload("Deal").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Task not found")
		}
		return nil, err
	}
	return &task, nil
}

// CreateTask validates input and creates a task for the caller.
func CreateTask(db *gorm.DB, userID string, in TaskInput) (*models.Task, error) {
	if in.Title == "" {
		return nil, types.NewValidationError("Title required")
	}

	priority := in.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := models.Task{
		UserID:      userID,
		ContactID:   in.ContactID,
		DealID:      in.DealID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}

	return GetTask(db, userID, task.ID)
}

// UpdateTask re-verifies ownership and applies the update. CompletedAt is
// stamped when completed transitions to true and cleared whenever the task
// is marked incomplete, keeping the two fields in lockstep.
func UpdateTask(db *gorm.DB, userID, id string, in TaskUpdateInput) (*models.Task, error) {
	var task models.Task
	err := quiet(db).Scopes(ownedBy(userID)).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Task not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"title":       in.Title,
		"description": in.Description,
		"priority":    in.Priority,
		"completed":   in.Completed,
	}
	if in.HasContactID {
		updates["contact_id"] = in.ContactID
	}
	if in.HasDealID {
		updates["deal_id"] = in.DealID
	}
	if in.HasDueDate {
		updates["due_date"] = in.DueDate
	}
	if in.Completed && !task.Completed {
		updates["completed_at"] = time.Now().UTC()
	}
	if !in.Completed {
		updates["completed_at"] = nil
	}

	if err := db.Model(&task).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetTask(db, userID, id)
}

// DeleteTask re-verifies ownership before removing the row.
func DeleteTask(db *gorm.DB, userID, id string) error {
	var task models.Task
	err := quiet(db).Scopes(ownedBy(userID)).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Task not found")
		}
		return err
	}

	return db.Delete(&task).Error
}
