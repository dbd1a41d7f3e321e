package models

import (
	"time"

	"gorm.io/datatypes"
)

// CardDefinition is an immutable catalog entry describing a card type.
// Rows are seeded by external set migrations; this service only reads them.
type CardDefinition struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	SetCode    string `gorm:"size:16;not null;index:idx_card_definitions_set_code" json:"set_code"`
	Rarity     string `gorm:"size:16;not null;default:common" json:"rarity"`
	Attributes datatypes.JSON `gorm:"type:json" json:"attributes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// UserCard is a copy of a CardDefinition owned by a user. CardDefID is not
// an enforced foreign key: the pack function writes these rows and a
// definition can be missing, so orphans must be tolerated and reported.
type UserCard struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index:idx_user_cards_user_id" json:"user_id"`
	CardDefID string    `gorm:"type:char(36);not null;index:idx_user_cards_card_def_id" json:"card_def_id"`
	Foil      bool      `gorm:"not null;default:false" json:"foil"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for CardDefinition
func (CardDefinition) TableName() string {
	return "card_definitions"
}

// TableName overrides the table name for UserCard
func (UserCard) TableName() string {
	return "user_cards"
}
