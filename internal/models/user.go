package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered agent account. Every other owned entity carries the
// user's ID and is only visible to that user.
type User struct {
	ID             string `gorm:"type:char(36);primaryKey" json:"id"`
	Email          string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash   string `gorm:"size:255;not null" json:"-"`
	FirstName      string `gorm:"size:100;not null" json:"firstName"`
	LastName       string `gorm:"size:100;not null" json:"lastName"`
	Phone          string `gorm:"size:50" json:"phone,omitempty"`
	RealtorLicense string `gorm:"size:100" json:"realtorLicense,omitempty"`
	FloridaCounty  string `gorm:"size:100" json:"floridaCounty,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
