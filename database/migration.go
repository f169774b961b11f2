package database

import (
	"fmt"
	"log"

	"github.com/fahadhasan-x/AgriZoo/models"
	"gorm.io/gorm"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	log.Println("Starting GORM AutoMigrate...")

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	log.Println("Migration completed")
	return nil
}
