package migration

import (
	"Receipt-Ledger-Backend/entities"
	"Receipt-Ledger-Backend/pkg/currency"
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.PendingReceipt{}); err != nil {
		log.Fatalf("Error migrating pending receipt database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Transaction{}); err != nil {
		log.Fatalf("Error migrating transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Currency{}); err != nil {
		log.Fatalf("Error migrating currency database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ExchangeRate{}); err != nil {
		log.Fatalf("Error migrating exchange rate database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.AuditLog{}); err != nil {
		log.Fatalf("Error migrating audit log database: %v", err)
		return err
	}

	currencyRepository := currency.NewCurrencyRepository(db)
	if err := currencyRepository.SeedCurrencies(context.Background(), currency.Catalog()); err != nil {
		log.Fatalf("Error seeding currency catalog: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
