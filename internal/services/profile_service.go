package services

import (
	"strings"

	"github.com/cardkeep/cardkeep-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertProfile creates the profile row for an authorizer user if it does not
// already exist. Conflicts on the primary key leave the existing row alone, so
// repeating the auth callback never duplicates or clobbers a profile.
func UpsertProfile(db *gorm.DB, userID, email, username string) error {
	if username == "" {
		// Fall back to the mailbox name when the provider has no username
		if at := strings.Index(email, "@"); at > 0 {
			username = email[:at]
		} else {
			username = email
		}
	}

	profile := models.Profile{
		ID:       userID,
		Username: username,
		Email:    email,
		Role:     "standard",
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&profile).Error
}

// GetProfile loads the profile for a user id, returning gorm.ErrRecordNotFound
// when absent
func GetProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// IsAdmin reports whether the user's profile carries the admin role. Missing
// profiles are not an error, they are simply not admins.
func IsAdmin(db *gorm.DB, userID string) (bool, error) {
	profile, err := GetProfile(db, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return profile.Role == "admin", nil
}
