package config

import (
	"Receipt-Ledger-Backend/internal/api/handlers"
	"Receipt-Ledger-Backend/internal/api/routes"
	"Receipt-Ledger-Backend/internal/middleware"
	"Receipt-Ledger-Backend/internal/utils"
	"Receipt-Ledger-Backend/internal/utils/storage"
	"Receipt-Ledger-Backend/pkg/archive"
	"Receipt-Ledger-Backend/pkg/audit"
	"Receipt-Ledger-Backend/pkg/currency"
	"Receipt-Ledger-Backend/pkg/extraction"
	"Receipt-Ledger-Backend/pkg/jwt"
	"Receipt-Ledger-Backend/pkg/mirror"
	"Receipt-Ledger-Backend/pkg/receipt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, mirrorStore mirror.MirrorRepository) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	receiptRepository := receipt.NewReceiptRepository(db)
	currencyRepository := currency.NewCurrencyRepository(db)
	auditRepository := audit.NewAuditRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	currencyService := currency.NewCurrencyService(currencyRepository)
	auditService := audit.NewAuditService(auditRepository)
	extractionService := extraction.NewGeminiService()
	receiptService := receipt.NewReceiptService(
		receiptRepository,
		mirrorStore,
		currencyService,
		extractionService,
		auditService,
		s3,
	)
	archiveService := archive.NewArchiveService(mirrorStore)

	// Handler
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	currencyHandler := handlers.NewCurrencyHandler(currencyService, validator)
	archiveHandler := handlers.NewArchiveHandler(archiveService, validator)
	auditHandler := handlers.NewAuditHandler(auditService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		ReceiptHandler:  receiptHandler,
		CurrencyHandler: currencyHandler,
		ArchiveHandler:  archiveHandler,
		AuditHandler:    auditHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
