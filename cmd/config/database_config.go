package config

import (
	"Receipt-Ledger-Backend/internal/utils"
	"Receipt-Ledger-Backend/pkg/mirror"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}

func ConnectMirror() (mirror.MirrorRepository, error) {
	path := utils.GetConfig("MIRROR_DB_PATH")
	if path == "" {
		path = "receipts.db"
	}

	store, err := mirror.NewMirrorRepository(path)
	if err != nil {
		log.Fatalf("Mirror store connection failed: %v", err)
		return nil, err
	}
	return store, nil
}
