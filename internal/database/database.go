package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/config"
)

// Connect opens the production postgres connection.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
}
