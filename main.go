package main

import (
	"Receipt-Ledger-Backend/cmd/config"
	migration "Receipt-Ledger-Backend/cmd/database/migrate"
	"Receipt-Ledger-Backend/internal/utils"
	"log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	mirrorStore, err := config.ConnectMirror()
	if err != nil {
		log.Fatalf("failed to open mirror store: %v", err)
	}
	defer func() {
		if err := mirrorStore.Close(); err != nil {
			log.Printf("failed to close mirror store: %v", err)
		}
	}()

	app, err := config.NewApp(db, mirrorStore)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
