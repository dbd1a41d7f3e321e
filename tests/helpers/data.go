package helpers

import (
	"testing"

	"github.com/cardkeep/cardkeep-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTestCardDefinition seeds one catalog entry and returns its id
func CreateTestCardDefinition(t *testing.T, db *gorm.DB, name, setCode string) string {
	def := models.CardDefinition{
		ID:      uuid.NewString(),
		Name:    name,
		SetCode: setCode,
		Rarity:  "common",
	}
	if err := db.Create(&def).Error; err != nil {
		t.Fatalf("Failed to create card definition: %v", err)
	}
	return def.ID
}

// CreateTestUserCard gives the user a copy of the given definition and
// returns the user card id. Passing an id with no matching definition
// produces an orphaned card on purpose.
func CreateTestUserCard(t *testing.T, db *gorm.DB, userID, cardDefID string, foil bool) string {
	card := models.UserCard{
		ID:        uuid.NewString(),
		UserID:    userID,
		CardDefID: cardDefID,
		Foil:      foil,
	}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("Failed to create user card: %v", err)
	}
	return card.ID
}

// CreateTestDeck seeds a deck without cards and returns its id
func CreateTestDeck(t *testing.T, db *gorm.DB, userID, name string) string {
	deck := models.Deck{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Format: "casual",
	}
	if err := db.Create(&deck).Error; err != nil {
		t.Fatalf("Failed to create deck: %v", err)
	}
	return deck.ID
}

// CreateTestProfile seeds a profile row with the given role
func CreateTestProfile(t *testing.T, db *gorm.DB, userID, email, role string) {
	profile := models.Profile{
		ID:       userID,
		Username: email,
		Email:    email,
		Role:     role,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}
}

// CountRows returns the number of rows matching the query on the model
func CountRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
