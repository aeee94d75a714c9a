package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task priorities
const (
	TaskPriorityLow    = "LOW"
	TaskPriorityMedium = "MEDIUM"
	TaskPriorityHigh   = "HIGH"
)

// Task is an actionable item, optionally linked to a contact and/or deal.
// CompletedAt is non-nil exactly when Completed is true.
type Task struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string     `gorm:"type:char(36);not null;index" json:"userId"`
	ContactID   *string    `gorm:"type:char(36);index" json:"contactId"`
	DealID      *string    `gorm:"type:char(36);index" json:"dealId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `gorm:"size:20;default:MEDIUM" json:"priority"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Deal    *Deal    `gorm:"foreignKey:DealID" json:"deal,omitempty"`
}

// BeforeCreate assigns a UUID primary key
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Task
func (Task) TableName() string {
	return "tasks"
}
