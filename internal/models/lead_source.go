package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Lead quality tiers
const (
	TierBronze   = "BRONZE"
	TierSilver   = "SILVER"
	TierGold     = "GOLD"
	TierPlatinum = "PLATINUM"
)

// LeadSource is a global catalog entry describing a purchasable lead tier.
// It is not owned by any user. The ID is derived from the name (lowercased,
// spaces to hyphens) so the seeding procedure can upsert on it.
type LeadSource struct {
	ID          string    `gorm:"size:255;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Type        string    `gorm:"size:50" json:"type,omitempty"`
	QualityTier string    `gorm:"size:20;not null" json:"qualityTier"`
	BasePrice   float64   `gorm:"not null" json:"basePrice"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LeadSourceID derives the stable catalog key from a source name.
func LeadSourceID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// BeforeCreate derives the primary key from the name when unset
func (l *LeadSource) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = LeadSourceID(l.Name)
	}
	return nil
}

// TableName overrides the table name for LeadSource
func (LeadSource) TableName() string {
	return "lead_sources"
}
