package services

import (
	"fmt"
	"time"

	"github.com/cardkeep/cardkeep-api/internal/models"
	"github.com/cardkeep/cardkeep-api/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeckCardInput is one entry of the cards list in a deck creation request
type DeckCardInput struct {
	UserCardID  string         `json:"user_card_id"`
	Qty         *types.FlexInt `json:"qty,omitempty"`
	IsSideboard bool           `json:"is_sideboard,omitempty"`
}

// CreateDeckInput is the deck creation payload after handler validation
type CreateDeckInput struct {
	Name        string
	Description string
	Format      string
	Cards       []DeckCardInput
}

// DeckSummary is one row of the deck listing: deck metadata plus the number
// of deck card rows attached to it
type DeckSummary struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Format      string    `json:"format"`
	CardCount   int64     `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListDecks returns summaries of the user's decks, most recently updated
// first. Returns an empty slice, never nil, when the user has no decks.
func ListDecks(db *gorm.DB, userID string) ([]DeckSummary, error) {
	summaries := make([]DeckSummary, 0)

	err := db.Model(&models.Deck{}).
		Select("decks.*, (SELECT COUNT(*) FROM deck_cards WHERE deck_cards.deck_id = decks.id) AS card_count").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

// CreateDeck inserts a deck and its card rows as a single transaction, so a
// deck row can never persist without the cards that were submitted with it.
// Qty defaults to 1 and IsSideboard to false when omitted.
func CreateDeck(db *gorm.DB, userID string, input CreateDeckInput) (*models.Deck, error) {
	format := input.Format
	if format == "" {
		format = "casual"
	}

	deck := models.Deck{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Format:      format,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deck).Error; err != nil {
			return err
		}

		if len(input.Cards) == 0 {
			return nil
		}

		deckCards := make([]models.DeckCard, 0, len(input.Cards))
		for _, card := range input.Cards {
			qty := 1
			if card.Qty != nil {
				qty = card.Qty.Int()
			}
			deckCards = append(deckCards, models.DeckCard{
				DeckID:      deck.ID,
				UserCardID:  card.UserCardID,
				Qty:         qty,
				IsSideboard: card.IsSideboard,
			})
		}

		if err := tx.Create(&deckCards).Error; err != nil {
			return err
		}

		deck.Cards = deckCards
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &deck, nil
}

// GetDeck loads one of the user's decks with its cards
func GetDeck(db *gorm.DB, userID, deckID string) (*models.Deck, error) {
	var deck models.Deck
	err := db.Preload("Cards").
		Where("id = ? AND user_id = ?", deckID, userID).
		First(&deck).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}

	if deck.Cards == nil {
		deck.Cards = []models.DeckCard{}
	}

	return &deck, nil
}
