// contact_service.go
//
// Contact queries and the tag encode/decode boundary. Tags are stored as a
// JSON list in a single column; nothing outside this file sees the encoded
// form.

package services

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/sunstate-labs/agentcrm/internal/models"
	"github.com/sunstate-labs/agentcrm/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ContactFilters narrows the contact list query
type ContactFilters struct {
	Type   string
	Search string
	Tag    string
}

// ContactInput holds the fields accepted by POST /api/contacts
type ContactInput struct {
	FirstName string                 `json:"firstName"`
	LastName  string                 `json:"lastName"`
	Email     string                 `json:"email"`
	Phone     string                 `json:"phone"`
	Address   string                 `json:"address"`
	City      string                 `json:"city"`
	State     string                 `json:"state"`
	ZipCode   string                 `json:"zipCode"`
	Type      string                 `json:"type"`
	Tags      types.FlexList[string] `json:"tags"`
	Notes     string                 `json:"notes"`
}

// ContactUpdateInput holds the fields accepted by PUT /api/contacts/:id.
// Absent fields are left untouched.
type ContactUpdateInput struct {
	FirstName *string                 `json:"firstName"`
	LastName  *string                 `json:"lastName"`
	Email     *string                 `json:"email"`
	Phone     *string                 `json:"phone"`
	Address   *string                 `json:"address"`
	City      *string                 `json:"city"`
	State     *string                 `json:"state"`
	ZipCode   *string                 `json:"zipCode"`
	Type      *string                 `json:"type"`
	Tags      *types.FlexList[string] `json:"tags"`
	Notes     *string                 `json:"notes"`
}

// ContactDealRef is the deal summary embedded in contact list items
type ContactDealRef struct {
	ID     string `json:"id"`
	Stage  string `json:"stage"`
	Status string `json:"status"`
}

// ContactCounts mirrors the related-record counts of the original service
type ContactCounts struct {
	Interactions int64 `json:"interactions"`
	Tasks        int64 `json:"tasks"`
}

// ContactListItem is a contact row shaped for the list response
type ContactListItem struct {
	models.Contact
	Tags  []string         `json:"tags"`
	Deals []ContactDealRef `json:"deals"`
	Count ContactCounts    `json:"_count"`
}

// ContactDetail is a contact with decoded tags and nested relations
type ContactDetail struct {
	models.Contact
	Tags []string `json:"tags"`
}

// encodeTags serializes an ordered tag list into the storage column
func encodeTags(tags []string) models.JSON {
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	return models.JSON{JSON: datatypes.JSON(raw)}
}

// decodeTags restores the ordered tag list; malformed or empty columns decode
// to an empty list
func decodeTags(col models.JSON) []string {
	tags := []string{}
	if len(col.JSON) > 0 {
		_ = json.Unmarshal(col.JSON, &tags)
	}
	return tags
}

// ListContacts returns the caller's contacts, most recently updated first.
// Search matches first name, last name, email, or phone case-insensitively.
// The tag filter runs on the decoded lists after the store query.
func ListContacts(db *gorm.DB, userID string, f ContactFilters) ([]ContactListItem, error) {
	query := quiet(db).Scopes(ownedBy(userID)).
		Clauses(hints.CommentBefore("select", "contact list scan"))

	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			like, like, like, like,
		)
	}

	var contacts []models.Contact
	if err := query.Preload("Deals").Order("updated_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}

	interactionCounts, err := countByContact(db, userID, &models.Interaction{})
	if err != nil {
		return nil, err
	}
	taskCounts, err := countByContact(db, userID, &models.Task{})
	if err != nil {
		return nil, err
	}

	items := make([]ContactListItem, 0, len(contacts))
	for _, contact := range contacts {
		tags := decodeTags(contact.Tags)
		if f.Tag != "" && !slices.Contains(tags, f.Tag) {
			continue
		}

		refs := make([]ContactDealRef, 0, len(contact.Deals))
		for _, d := range contact.Deals {
			refs = append(refs, ContactDealRef{ID: d.ID, Stage: d.Stage, Status: d.Status})
		}
		contact.Deals = nil

		items = append(items, ContactListItem{
			Contact: contact,
			Tags:    tags,
			Deals:   refs,
			Count: ContactCounts{
				Interactions: interactionCounts[contact.ID],
				Tasks:        taskCounts[contact.ID],
			},
		})
	}

	return items, nil
}

// countByContact groups rows of the given model by contact_id for the caller
func countByContact(db *gorm.DB, userID string, model interface{}) (map[string]int64, error) {
	type row struct {
		ContactID string
		N         int64
	}
	var rows []row
	err := quiet(db).Model(model).
		Select("contact_id, COUNT(*) AS n").
		Where("user_id = ? AND contact_id IS NOT NULL", userID).
		Group("contact_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ContactID] = r.N
	}
	return counts, nil
}

// GetContact returns one owned contact with nested deals, open tasks, the 20
// most recent interactions, and documents.
func GetContact(db *gorm.DB, userID, id string) (*ContactDetail, error) {
	var contact models.Contact
	err := quiet(db).Scopes(ownedBy(userID)).
		Preload("Deals", func(db *gorm.DB) *gorm.DB {
			return db.Order("updated_at DESC")
		}).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Where("completed = ?", false).Order("due_date ASC")
		}).
		Preload("Interactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_time DESC").Limit(20)
		}).
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at DESC")
		}).
		Where("id = ?", id).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Contact not found")
		}
		return nil, err
	}

	return &ContactDetail{Contact: contact, Tags: decodeTags(contact.Tags)}, nil
}

// CreateContact validates input and creates a contact for the caller.
func CreateContact(db *gorm.DB, userID string, in ContactInput) (*ContactDetail, error) {
	if in.FirstName == "" || in.LastName == "" {
		return nil, types.NewValidationError("First name and last name required")
	}

	state := in.State
	if state == "" {
		state = "FL"
	}
	contactType := in.Type
	if contactType == "" {
		contactType = models.ContactTypeLead
	}

	contact := models.Contact{
		UserID:    userID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		State:     state,
		ZipCode:   in.ZipCode,
		Type:      contactType,
		Tags:      encodeTags(in.Tags.Slice()),
		Notes:     in.Notes,
	}
	if err := db.Create(&contact).Error; err != nil {
		return nil, err
	}

	return &ContactDetail{Contact: contact, Tags: decodeTags(contact.Tags)}, nil
}

// UpdateContact re-verifies ownership, then overwrites only the fields
// present in the request.
func UpdateContact(db *gorm.DB, userID, id string, in ContactUpdateInput) (*ContactDetail, error) {
	var contact models.Contact
	err := quiet(db).Scopes(ownedBy(userID)).Where("id = ?", id).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Contact not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "first_name", in.FirstName)
	setIfPresent(updates, "last_name", in.LastName)
	setIfPresent(updates, "email", in.Email)
	setIfPresent(updates, "phone", in.Phone)
	setIfPresent(updates, "address", in.Address)
	setIfPresent(updates, "city", in.City)
	setIfPresent(updates, "state", in.State)
	setIfPresent(updates, "zip_code", in.ZipCode)
	setIfPresent(updates, "type", in.Type)
	setIfPresent(updates, "notes", in.Notes)
	if in.Tags != nil {
		updates["tags"] = encodeTags(in.Tags.Slice())
	}

	if len(updates) > 0 {
		if err := db.Model(&contact).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := quiet(db).Where("id = ?", id).First(&contact).Error; err != nil {
			return nil, err
		}
	}

	return &ContactDetail{Contact: contact, Tags: decodeTags(contact.Tags)}, nil
}

// DeleteContact re-verifies ownership before removing the row.
func DeleteContact(db *gorm.DB, userID, id string) error {
	var contact models.Contact
	err := quiet(db).Scopes(ownedBy(userID)).Where("id = ?", id).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Contact not found")
		}
		return err
	}

	return db.Delete(&contact).Error
}

// setIfPresent adds a column update only when the request included the field
func setIfPresent(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}
