package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"receipt-insights-backend/entities"
)

// Migrate prepares the receipts table for the postgres store backend.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Receipt{}); err != nil {
		log.Fatalf("Error migrating receipt database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
