package database

import (
	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
)

// Migrate applies the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Offer{},
		&models.OfferDetail{},
		&models.Order{},
		&models.Review{},
	)
}
