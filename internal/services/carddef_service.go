package services

import (
	"github.com/cardkeep/cardkeep-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// CardDefinitionPage is one page of the catalog listing
type CardDefinitionPage struct {
	Definitions []models.CardDefinition `json:"definitions"`
	Total       int64                   `json:"total"`
	Limit       int                     `json:"limit"`
	Offset      int                     `json:"offset"`
}

// ListCardDefinitions returns a page of the card catalog, optionally filtered
// by set code. The catalog is seeded externally, this is a read-only view.
func ListCardDefinitions(db *gorm.DB, setCode string, limit, offset int) (*CardDefinitionPage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := db.Model(&models.CardDefinition{})
	if setCode != "" {
		query = query.Where("set_code = ?", setCode)
		if db.Dialector.Name() == "mysql" {
			// The optimizer occasionally prefers a full scan on large sets
			query = query.Clauses(hints.UseIndex("idx_card_definitions_set_code"))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	definitions := make([]models.CardDefinition, 0, limit)
	if err := query.Order("set_code, name").
		Limit(limit).
		Offset(offset).
		Find(&definitions).Error; err != nil {
		return nil, err
	}

	return &CardDefinitionPage{
		Definitions: definitions,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}, nil
}
