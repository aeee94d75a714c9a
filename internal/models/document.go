package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document holds file metadata only. The file bytes themselves are stored and
// served by an external collaborator; FilePath is its reference.
type Document struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     string    `gorm:"type:char(36);not null;index" json:"userId"`
	ContactID  *string   `gorm:"type:char(36);index" json:"contactId"`
	DealID     *string   `gorm:"type:char(36);index" json:"dealId"`
	FileName   string    `gorm:"size:255;not null" json:"fileName"`
	FilePath   string    `gorm:"size:1024;not null" json:"filePath"`
	FileType   string    `gorm:"size:100;not null" json:"fileType"`
	FileSize   int64     `gorm:"not null" json:"fileSize"`
	UploadedAt time.Time `gorm:"not null" json:"uploadedAt"`

	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Deal    *Deal    `gorm:"foreignKey:DealID" json:"deal,omitempty"`
}

// BeforeCreate assigns a UUID primary key and stamps the upload time
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}
	return nil
}

// TableName overrides the table name for Document
func (Document) TableName() string {
	return "documents"
}
