package main

import (
	"log"

	"gorm.io/gorm"

	"receipt-insights-backend/cmd/config"
	migration "receipt-insights-backend/cmd/database/migrate"
	"receipt-insights-backend/internal/utils"
)

func main() {
	utils.LoadConfig()

	var db *gorm.DB
	if utils.GetConfig("STORE_BACKEND") == "postgres" {
		var err error
		db, err = config.ConnectDB()
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to set up app: %v", err)
	}

	if err := app.Listen(":" + utils.GetConfig("PORT")); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
