package models

import (
	"time"
)

// Deck is a named, owned collection of user cards with format metadata
type Deck struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string     `gorm:"type:char(36);not null;index:idx_decks_user_id" json:"user_id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Format      string     `gorm:"size:32;not null;default:casual" json:"format"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Cards       []DeckCard `gorm:"foreignKey:DeckID;references:ID" json:"cards,omitempty"`
}

// DeckCard links a deck to an owned user card. Qty is always >= 1.
type DeckCard struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DeckID      string    `gorm:"type:char(36);not null;index:idx_deck_cards_deck_id" json:"deck_id"`
	UserCardID  string    `gorm:"type:char(36);not null" json:"user_card_id"`
	Qty         int       `gorm:"not null;default:1" json:"qty"`
	IsSideboard bool      `gorm:"not null;default:false" json:"is_sideboard"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name for Deck
func (Deck) TableName() string {
	return "decks"
}

// TableName overrides the table name for DeckCard
func (DeckCard) TableName() string {
	return "deck_cards"
}
