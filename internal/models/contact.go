package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact types
const (
	ContactTypeLead   = "LEAD"
	ContactTypeClient = "CLIENT"
)

// Contact is a person of interest owned by exactly one user. Tags is a JSON
// column holding an ordered list of free-text strings; only the contact
// service encodes or decodes it.
type Contact struct {
	ID        string `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string `gorm:"type:char(36);not null;index" json:"userId"`
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:255" json:"email,omitempty"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`
	Address   string `gorm:"size:255" json:"address,omitempty"`
	City      string `gorm:"size:100" json:"city,omitempty"`
	State     string `gorm:"size:10;default:FL" json:"state"`
	ZipCode   string `gorm:"size:20" json:"zipCode,omitempty"`
	Type      string `gorm:"size:20;default:LEAD" json:"type"`
	Tags      JSON   `json:"-"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Deals        []Deal        `gorm:"foreignKey:ContactID" json:"deals,omitempty"`
	Tasks        []Task        `gorm:"foreignKey:ContactID" json:"tasks,omitempty"`
	Interactions []Interaction `gorm:"foreignKey:ContactID" json:"interactions,omitempty"`
	Documents    []Document    `gorm:"foreignKey:ContactID" json:"documents,omitempty"`
}

// BeforeCreate assigns a UUID primary key
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}
