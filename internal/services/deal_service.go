package services

import (
	"errors"
	"strings"
	"time"

	"github.com/sunstate-labs/agentcrm/internal/models"
	"github.com/sunstate-labs/agentcrm/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// DealFilters narrows the deal list query
type DealFilters struct {
	Stage  string
	Status string
	Search string
}

// DealInput holds the fields accepted by POST /api/deals
type DealInput struct {
	ContactID         *string    `json:"contactId"`
	PropertyAddress   string     `json:"propertyAddress"`
	PropertyCity      string     `json:"propertyCity"`
	PropertyState     string     `json:"propertyState"`
	PropertyZipCode   string     `json:"propertyZipCode"`
	Stage             string     `json:"stage"`
	ListingPrice      *float64   `json:"listingPrice"`
	OfferPrice        *float64   `json:"offerPrice"`
	Commission        *float64   `json:"commission"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate"`
	Notes             string     `json:"notes"`
}

// DealUpdateInput holds the fields accepted by PUT /api/deals/:id.
// Absent fields are left untouched.
type DealUpdateInput struct {
	ContactID         *string    `json:"contactId"`
	PropertyAddress   *string    `json:"propertyAddress"`
	PropertyCity      *string    `json:"propertyCity"`
	PropertyState     *string    `json:"propertyState"`
	PropertyZipCode   *string    `json:"propertyZipCode"`
	Stage             *string    `json:"stage"`
	Status            *string    `json:"status"`
	ListingPrice      *float64   `json:"listingPrice"`
	OfferPrice        *float64   `json:"offerPrice"`
	Commission        *float64   `json:"commission"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate"`
	Notes             *string    `json:"notes"`
}

// DealCounts mirrors the related-record counts of the original service
type DealCounts struct {
	Tasks     int64 `json:"tasks"`
	Documents int64 `json:"documents"`
}

// DealListItem is a deal row shaped for the list response
type DealListItem struct {
	models.Deal
	Count DealCounts `json:"_count"`
}

// StageSummary aggregates the caller's active deals within one pipeline stage
type StageSummary struct {
	Count           int     `json:"count"`
	TotalValue      float64 `json:"totalValue"`
	TotalCommission float64 `json:"totalCommission"`
}

// ListDeals returns the caller's deals, most recently updated first.
func ListDeals(db *gorm.DB, userID string, f DealFilters) ([]DealListItem, error) {
	query := quiet(db).Scopes(ownedBy(userID))

	if f.Stage != "" {
		query = query.Where("stage = ?", f.Stage)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(property_address) LIKE ? OR LOWER(property_city) LIKE ?", like, like)
	}

	var deals []models.Deal
	if err := query.Preload("Contact").Order("updated_at DESC").Find(&deals).Error; err != nil {
		return nil, err
	}

	taskCounts, err := countByDeal(db, userID, &models.Task{})
	if err != nil {
		return nil, err
	}
	documentCounts, err := countByDeal(db, userID, &models.Document{})
	if err != nil {
		return nil, err
	}

	items := make([]DealListItem, 0, len(deals))
	for _, deal := range deals {
		items = append(items, DealListItem{
			Deal: deal,
			Count: DealCounts{
				Tasks:     taskCounts[deal.ID],
				Documents: documentCounts[deal.ID],
			},
		})
	}

	return items, nil
}

// countByDeal groups rows of the given model by deal_id for the caller
func countByDeal(db *gorm.DB, userID string, model interface{}) (map[string]int64, error) {
	type row struct {
		DealID string
		N      int64
	}
	var rows []row
	err := quiet(db).Model(model).
		Select("deal_id, COUNT(*) AS n").
		Where("user_id = ? AND deal_id IS NOT NULL", userID).
		Group("deal_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.DealID] = r.N
	}
	return counts, nil
}

// GetDeal returns one owned deal with its contact, tasks, and documents.
func GetDeal(db *gorm.DB, userID, id string) (*models.Deal, error) {
	var deal models.Deal
	err := quiet(db).Scopes(ownedBy(userID)).
		Preload("Contact").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at DESC")
		}).
		Where("id = ?", id).
		First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Deal not found")
		}
		return nil, err
	}
	return &deal, nil
}

// CreateDeal validates input and creates a deal for the caller.
func CreateDeal(db *gorm.DB, userID string, in DealInput) (*models.Deal, error) {
	if in.PropertyAddress == "" || in.PropertyCity == "" {
		return nil, types.NewValidationError("Property address and city required")
	}

	state := in.PropertyState
	if state == "" {
		state = "FL"
	}
	stage := in.Stage
	if stage == "" {
		stage = models.DealStageLead
	}

	deal := models.Deal{
		UserID:            userID,
		ContactID:         in.ContactID,
		PropertyAddress:   in.PropertyAddress,
		PropertyCity:      in.PropertyCity,
		PropertyState:     state,
		PropertyZipCode:   in.PropertyZipCode,
		Stage:             stage,
		Status:            models.DealStatusActive,
		ListingPrice:      in.ListingPrice,
		OfferPrice:        in.OfferPrice,
		Commission:        in.Commission,
		ExpectedCloseDate: in.ExpectedCloseDate,
		Notes:             in.Notes,
	}
	if err := db.Create(&deal).Error; err != nil {
		return nil, err
	}

	if deal.ContactID != nil {
		var contact models.Contact
		if err := quiet(db).Where("id = ?", *deal.ContactID).First(&contact).Error; err == nil {
			deal.Contact = &contact
		}
	}

	return &deal, nil
}

// UpdateDeal re-verifies ownership, then overwrites only the fields present
// in the request.
func UpdateDeal(db *gorm.DB, userID, id string, in DealUpdateInput) (*models.Deal, error) {
	var deal models.Deal
	err := quiet(db).Scopes(ownedBy(userID)).Where("id = ?", id).First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Deal not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.ContactID != nil {
		updates["contact_id"] = *in.ContactID
	}
	setIfPresent(updates, "property_address", in.PropertyAddress)
	setIfPresent(updates, "property_city", in.PropertyCity)
	setIfPresent(updates, "property_state", in.PropertyState)
	setIfPresent(updates, "property_zip_code", in.PropertyZipCode)
	setIfPresent(updates, "stage", in.Stage)
	setIfPresent(updates, "status", in.Status)
	setIfPresent(updates, "notes", in.Notes)
	if in.ListingPrice != nil {
		updates["listing_price"] = *in.ListingPrice
	}
	if in.OfferPrice != nil {
		updates["offer_price"] = *in.OfferPrice
	}
	if in.Commission != nil {
		updates["commission"] = *in.Commission
	}
	if in.ExpectedCloseDate != nil {
		updates["expected_close_date"] = *in.ExpectedCloseDate
	}

	if len(updates) > 0 {
		if err := db.Model(&deal).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return GetDeal(db, userID, id)
}

// DeleteDeal re-verifies ownership before removing the row.
func DeleteDeal(db *gorm.DB, userID, id string) error {
	var deal models.Deal
	err := quiet(db).Scopes(ownedBy(userID)).Where("id = ?", id).First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Deal not found")
		}
		return err
	}

	return db.Delete(&deal).Error
}

// PipelineSummary groups the caller's ACTIVE deals by stage. Deal value is
// the offer price when present, else the listing price, else zero; missing
// commissions count as zero.
func PipelineSummary(db *gorm.DB, userID string) (map[string]*StageSummary, error) {
	var deals []models.Deal
	err := quiet(db).Scopes(ownedBy(userID)).
		Clauses(hints.CommentBefore("select", "pipeline summary scan")).
		Select("stage", "listing_price", "offer_price", "commission").
		Where("status = ?", models.DealStatusActive).
		Find(&deals).Error
	if err != nil {
		return nil, err
	}

	summary := make(map[string]*StageSummary)
	for _, deal := range deals {
		s, ok := summary[deal.Stage]
		if !ok {
			s = &StageSummary{}
			summary[deal.Stage] = s
		}
		s.Count++
		switch {
		case deal.OfferPrice != nil:
			s.TotalValue += *deal.OfferPrice
		case deal.ListingPrice != nil:
			s.TotalValue += *deal.ListingPrice
		}
		if deal.Commission != nil {
			s.TotalCommission += *deal.Commission
		}
	}

	return summary, nil
}
