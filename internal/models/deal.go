package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deal statuses
const (
	DealStatusActive = "ACTIVE"
)

// Deal pipeline stages
const (
	DealStageLead = "LEAD"
)

// Deal is a property transaction owned by a user, optionally tied to a contact.
type Deal struct {
	ID                string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID            string     `gorm:"type:char(36);not null;index" json:"userId"`
	ContactID         *string    `gorm:"type:char(36);index" json:"contactId"`
	PropertyAddress   string     `gorm:"size:255;not null" json:"propertyAddress"`
	PropertyCity      string     `gorm:"size:100;not null" json:"propertyCity"`
	PropertyState     string     `gorm:"size:10;default:FL" json:"propertyState"`
	PropertyZipCode   string     `gorm:"size:20" json:"propertyZipCode,omitempty"`
	Stage             string     `gorm:"size:30;default:LEAD" json:"stage"`
	Status            string     `gorm:"size:20;default:ACTIVE" json:"status"`
	ListingPrice      *float64   `json:"listingPrice"`
	OfferPrice        *float64   `json:"offerPrice"`
	Commission        *float64   `json:"commission"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate"`
	Notes             string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	Contact   *Contact   `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Tasks     []Task     `gorm:"foreignKey:DealID" json:"tasks,omitempty"`
	Documents []Document `gorm:"foreignKey:DealID" json:"documents,omitempty"`
}

// BeforeCreate assigns a UUID primary key
func (d *Deal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Deal
func (Deal) TableName() string {
	return "deals"
}
