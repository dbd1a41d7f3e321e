package services

import (
	"github.com/cardkeep/cardkeep-api/internal/models"
	"gorm.io/gorm"
)

// CollectionCard is a user card with its resolved catalog definition.
// Definition is nil for orphaned cards.
type CollectionCard struct {
	models.UserCard
	Definition *models.CardDefinition `json:"definition"`
}

// IntegrityReport is the read-only consistency check over a user's
// collection. It reports orphaned references, it never repairs them.
type IntegrityReport struct {
	TotalUserCards        int                     `json:"totalUserCards"`
	OrphanedCards         int                     `json:"orphanedCards"`
	ValidCards            int                     `json:"validCards"`
	OrphanedCardIDs       []string                `json:"orphanedCardIds"`
	SampleValidCards      []CollectionCard        `json:"sampleValidCards"`
	SampleCardDefinitions []models.CardDefinition `json:"sampleCardDefinitions"`
	UserID                string                  `json:"userId"`
}

// resolveDefinitions loads the card definitions referenced by the given user
// cards into a map keyed by definition id
func resolveDefinitions(db *gorm.DB, cards []models.UserCard) (map[string]models.CardDefinition, error) {
	if len(cards) == 0 {
		return map[string]models.CardDefinition{}, nil
	}

	seen := make(map[string]struct{}, len(cards))
	ids := make([]string, 0, len(cards))
	for _, card := range cards {
		if _, ok := seen[card.CardDefID]; ok {
			continue
		}
		seen[card.CardDefID] = struct{}{}
		ids = append(ids, card.CardDefID)
	}

	var defs []models.CardDefinition
	if err := db.Where("id IN ?", ids).Find(&defs).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]models.CardDefinition, len(defs))
	for _, def := range defs {
		byID[def.ID] = def
	}
	return byID, nil
}

// ListUserCards returns the user's collection with definitions resolved.
// Orphaned cards are included with a nil definition so the client can still
// render the owned copy.
func ListUserCards(db *gorm.DB, userID string) ([]CollectionCard, error) {
	var cards []models.UserCard
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, err
	}

	defs, err := resolveDefinitions(db, cards)
	if err != nil {
		return nil, err
	}

	collection := make([]CollectionCard, 0, len(cards))
	for _, card := range cards {
		entry := CollectionCard{UserCard: card}
		if def, ok := defs[card.CardDefID]; ok {
			defCopy := def
			entry.Definition = &defCopy
		}
		collection = append(collection, entry)
	}

	return collection, nil
}

// CheckCollectionIntegrity classifies every card the user owns as valid or
// orphaned and gathers a bounded sample for diagnostic display
func CheckCollectionIntegrity(db *gorm.DB, userID string) (*IntegrityReport, error) {
	var cards []models.UserCard
	if err := db.Where("user_id = ?", userID).Find(&cards).Error; err != nil {
		return nil, err
	}

	defs, err := resolveDefinitions(db, cards)
	if err != nil {
		return nil, err
	}

	report := &IntegrityReport{
		OrphanedCardIDs:  make([]string, 0),
		SampleValidCards: make([]CollectionCard, 0, 5),
		UserID:           userID,
	}
	report.TotalUserCards = len(cards)

	for _, card := range cards {
		def, ok := defs[card.CardDefID]
		if !ok {
			report.OrphanedCards++
			report.OrphanedCardIDs = append(report.OrphanedCardIDs, card.ID)
			continue
		}
		report.ValidCards++
		if len(report.SampleValidCards) < 5 {
			defCopy := def
			report.SampleValidCards = append(report.SampleValidCards, CollectionCard{
				UserCard:   card,
				Definition: &defCopy,
			})
		}
	}

	// A small slice of the catalog itself, for eyeballing seed state
	sampleDefs := make([]models.CardDefinition, 0, 5)
	if err := db.Limit(5).Find(&sampleDefs).Error; err != nil {
		return nil, err
	}
	report.SampleCardDefinitions = sampleDefs

	return report, nil
}
