package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interaction is a logged contact touchpoint (call, email, meeting, ...).
type Interaction struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index" json:"userId"`
	ContactID string    `gorm:"type:char(36);not null;index" json:"contactId"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Subject   string    `gorm:"size:255" json:"subject,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	DateTime  time.Time `gorm:"not null" json:"dateTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key
func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Interaction
func (Interaction) TableName() string {
	return "interactions"
}
