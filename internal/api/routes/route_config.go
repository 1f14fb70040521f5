package routes

import (
	"Receipt-Ledger-Backend/internal/api/handlers"
	"Receipt-Ledger-Backend/internal/middleware"
	"Receipt-Ledger-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	ReceiptHandler  handlers.ReceiptHandler
	CurrencyHandler handlers.CurrencyHandler
	ArchiveHandler  handlers.ArchiveHandler
	AuditHandler    handlers.AuditHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Receipts()
	c.Currencies()
	c.Audit()
	c.GuestRoute()
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))

	receipts.Post("", c.ReceiptHandler.UploadReceipt)
	receipts.Get("", c.ArchiveHandler.ListReceipts)
	receipts.Get("/search", c.ReceiptHandler.SearchReceipts)
	receipts.Get("/stats", c.ReceiptHandler.GetReceiptStats)
	receipts.Get("/transactions", c.ReceiptHandler.GetTransactions)
	receipts.Get("/:id", c.ReceiptHandler.GetReceipt)

	// Confirmation lifecycle
	receipts.Post("/:id/confirm", c.ReceiptHandler.ConfirmReceipt)
	receipts.Post("/:id/reject", c.ReceiptHandler.RejectReceipt)
	receipts.Post("/:id/cancel", c.ReceiptHandler.CancelReceipt)

	// Storage lifecycle
	receipts.Post("/:id/archive", c.ArchiveHandler.ArchiveReceipt)
	receipts.Post("/:id/unarchive", c.ArchiveHandler.UnarchiveReceipt)
	receipts.Post("/bulk-archive", c.ArchiveHandler.BulkArchive)
}

func (c *Config) Currencies() {
	currencies := c.App.Group("/api/v1/currencies")

	currencies.Get("", c.CurrencyHandler.GetCurrencies)
	currencies.Get("/rates", c.CurrencyHandler.GetLatestRates)
	currencies.Post("/convert", c.CurrencyHandler.ConvertCurrency)
	currencies.Post("/rates", c.Middleware.AuthMiddleware(c.JWTService), c.CurrencyHandler.SaveRateSnapshot)
}

func (c *Config) Audit() {
	audit := c.App.Group("/api/v1/audit", c.Middleware.AuthMiddleware(c.JWTService))

	audit.Get("/receipts/:id", c.AuditHandler.GetResourceHistory)
	audit.Get("/activity", c.AuditHandler.GetUserActivity)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
