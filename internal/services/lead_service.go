package services

import (
	"github.com/sunstate-labs/agentcrm/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeadSourceFilters narrows the lead source catalog query
type LeadSourceFilters struct {
	QualityTier string
	Active      *bool
}

// AvailableLead is an active lead source annotated with its estimated
// conversion rate. Purchase is informational only; no transaction exists.
type AvailableLead struct {
	ID                      string  `json:"id"`
	SourceName              string  `json:"sourceName"`
	QualityTier             string  `json:"qualityTier"`
	Price                   float64 `json:"price"`
	Description             string  `json:"description"`
	EstimatedConversionRate float64 `json:"estimatedConversionRate"`
}

// conversionRates are static tier annotations; unknown tiers fall back to
// the bronze rate.
var conversionRates = map[string]float64{
	models.TierBronze:   0.05,
	models.TierSilver:   0.10,
	models.TierGold:     0.20,
	models.TierPlatinum: 0.35,
}

// EstimatedConversionRate returns the static rate for a quality tier.
func EstimatedConversionRate(tier string) float64 {
	if rate, ok := conversionRates[tier]; ok {
		return rate
	}
	return 0.05
}

// ListLeadSources returns catalog entries ascending by price.
func ListLeadSources(db *gorm.DB, f LeadSourceFilters) ([]models.LeadSource, error) {
	query := quiet(db).Model(&models.LeadSource{})

	if f.QualityTier != "" {
		query = query.Where("quality_tier = ?", f.QualityTier)
	}
	if f.Active != nil {
		query = query.Where("active = ?", *f.Active)
	}

	var sources []models.LeadSource
	if err := query.Order("base_price ASC").Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

// ListAvailableLeads re-exposes the active catalog with conversion-rate
// annotations, ascending by price.
func ListAvailableLeads(db *gorm.DB, qualityTier string) ([]AvailableLead, error) {
	active := true
	sources, err := ListLeadSources(db, LeadSourceFilters{QualityTier: qualityTier, Active: &active})
	if err != nil {
		return nil, err
	}

	leads := make([]AvailableLead, 0, len(sources))
	for _, source := range sources {
		leads = append(leads, AvailableLead{
			ID:                      source.ID,
			SourceName:              source.Name,
			QualityTier:             source.QualityTier,
			Price:                   source.BasePrice,
			Description:             source.Description,
			EstimatedConversionRate: EstimatedConversionRate(source.QualityTier),
		})
	}
	return leads, nil
}

// SeedLeadSources idempotently populates the lead source catalog. The upsert
// is keyed on the name-derived ID, so re-running refreshes the rows in place.
func SeedLeadSources(db *gorm.DB) error {
	sources := []models.LeadSource{
		{
			Name:        "Florida Property Search",
			Type:        "website",
			QualityTier: models.TierBronze,
			BasePrice:   50,
			Description: "Basic leads from website property searches",
			Active:      true,
		},
		{
			Name:        "Pre-Qualified Buyers",
			Type:        "pre-qualified",
			QualityTier: models.TierSilver,
			BasePrice:   125,
			Description: "Pre-qualified buyers with verified budgets",
			Active:      true,
		},
		{
			Name:        "Ready-to-Buy Leads",
			Type:        "ready-to-buy",
			QualityTier: models.TierGold,
			BasePrice:   250,
			Description: "Pre-approved buyers ready to purchase within 30 days",
			Active:      true,
		},
		{
			Name:        "Premium Closing Leads",
			Type:        "premium",
			QualityTier: models.TierPlatinum,
			BasePrice:   450,
			Description: "Pre-approved buyers with specific property identified, ready to close",
			Active:      true,
		},
	}

	for i := range sources {
		sources[i].ID = models.LeadSourceID(sources[i].Name)
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&sources).Error
}
