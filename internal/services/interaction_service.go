package services

import (
	"errors"
	"time"

	"github.com/sunstate-labs/agentcrm/internal/models"
	"github.com/sunstate-labs/agentcrm/internal/types"
	"gorm.io/gorm"
)

const defaultInteractionLimit = 50

// InteractionFilters narrows the interaction list query
type InteractionFilters struct {
	Type  string
	Limit int
}

// InteractionInput holds the fields accepted by POST /api/interactions
type InteractionInput struct {
	ContactID string     `json:"contactId"`
	Type      string     `json:"type"`
	Subject   string     `json:"subject"`
	Notes     string     `json:"notes"`
	DateTime  *time.Time `json:"dateTime"`
}

// ListInteractionsByContact returns the most recent interactions for one
// owned contact, newest first, capped at 50 unless a limit is given.
func ListInteractionsByContact(db *gorm.DB, userID, contactID string, f InteractionFilters) ([]models.Interaction, error) {
	if err := verifyContactOwnership(db, userID, contactID); err != nil {
		return nil, err
	}

	query := quiet(db).Scopes(ownedBy(userID)).Where("contact_id = ?", contactID)
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultInteractionLimit
	}

	var interactions []models.Interaction
	if err := query.Order("date_time DESC").Limit(limit).Find(&interactions).Error; err != nil {
		return nil, err
	}
	return interactions, nil
}

// CreateInteraction validates input, re-verifies contact ownership, and logs
// the touchpoint. DateTime defaults to the current time.
func CreateInteraction(db *gorm.DB, userID string, in InteractionInput) (*models.Interaction, error) {
	if in.ContactID == "" || in.Type == "" {
		return nil, types.NewValidationError("Contact ID and type required")
	}

	if err := verifyContactOwnership(db, userID, in.ContactID); err != nil {
		return nil, err
	}

	dateTime := time.Now().UTC()
	if in.DateTime != nil {
		dateTime = *in.DateTime
	}

	interaction := models.Interaction{
		UserID:    userID,
		ContactID: in.ContactID,
		Type:      in.Type,
		Subject:   in.Subject,
		Notes:     in.Notes,
		DateTime:  dateTime,
	}
	if err := db.Create(&interaction).Error; err != nil {
		return nil, err
	}

	return &interaction, nil
}

// DeleteInteraction re-verifies ownership before removing the row.
func DeleteInteraction(db *gorm.DB, userID, id string) error {
	var interaction models.Interaction
	err := quiet(db).Scopes(ownedBy(userID)).Where("id = ?", id).First(&interaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Interaction not found")
		}
		return err
	}

	return db.Delete(&interaction).Error
}

// verifyContactOwnership reports not-found for contacts the caller does not own
func verifyContactOwnership(db *gorm.DB, userID, contactID string) error {
	var contact models.Contact
	err := quiet(db).Scopes(ownedBy(userID)).Where("id = ?", contactID).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Contact not found")
		}
		return err
	}
	return nil
}
