package services

import (
	"errors"

	"github.com/sunstate-labs/agentcrm/internal/models"
	"github.com/sunstate-labs/agentcrm/internal/types"
	"gorm.io/gorm"
)

// DocumentFilters narrows the document list query
type DocumentFilters struct {
	ContactID string
	DealID    string
}

// DocumentInput holds the fields accepted by POST /api/documents. The file
// itself lives with an external storage collaborator; only metadata is kept.
type DocumentInput struct {
	ContactID *string         `json:"contactId"`
	DealID    *string         `json:"dealId"`
	FileName  string          `json:"fileName"`
	FilePath  string          `json:"filePath"`
	FileType  string          `json:"fileType"`
	FileSize  types.FlexInt64 `json:"fileSize"`
}

// ListDocuments returns the caller's document metadata, newest upload first.
func ListDocuments(db *gorm.DB, userID string, f DocumentFilters) ([]models.Document, error) {
	query := quiet(db).Scopes(ownedBy(userID))

	if f.ContactID != "" {
		query = query.Where("contact_id = ?", f.ContactID)
	}
	if f.DealID != "" {
		query = query.Where("deal_id = ?", f.DealID)
	}

	var documents []models.Document
	err := query.Preload("Contact").Preload("Deal").
		Order("uploaded_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// GetDocument returns one owned document with its linked contact and deal.
func GetDocument(db *gorm.DB, userID, id string) (*models.Document, error) {
	var document models.Document
	err := quiet(db).Scopes(ownedBy(userID)).
		Preload("Contact").Preload("Deal").
		Where("id = ?", id).
		First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Document not found")
		}
		return nil, err
	}
	return &document, nil
}

// CreateDocument validates input and records the file metadata.
func CreateDocument(db *gorm.DB, userID string, in DocumentInput) (*models.Document, error) {
	if in.FileName == "" || in.FilePath == "" || in.FileType == "" || in.FileSize == 0 {
		return nil, types.NewValidationError("Missing required fields")
	}

	document := models.Document{
		UserID:    userID,
		ContactID: in.ContactID,
		DealID:    in.DealID,
		FileName:  in.FileName,
		FilePath:  in.FilePath,
		FileType:  in.FileType,
		FileSize:  in.FileSize.Int64(),
	}
	if err := db.Create(&document).Error; err != nil {
		return nil, err
	}

	return GetDocument(db, userID, document.ID)
}

// DeleteDocument re-verifies ownership before removing the metadata row.
func DeleteDocument(db *gorm.DB, userID, id string) error {
	var document models.Document
	err := quiet(db).Scopes(ownedBy(userID)).Where("id = ?", id).First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Document not found")
		}
		return err
	}

	return db.Delete(&document).Error
}
