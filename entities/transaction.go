package entities

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the canonical financial record. Exactly one exists per
// CONFIRMED receipt; it is only ever created inside the confirm transaction.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ReceiptID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"receipt_id"`

	OriginalAmount   float64   `gorm:"type:numeric(10,2)" json:"original_amount"`
	OriginalCurrency string    `gorm:"type:varchar(3)" json:"original_currency"`
	BaseAmount       float64   `gorm:"type:numeric(10,2)" json:"base_amount"`
	BaseCurrency     string    `gorm:"type:varchar(3)" json:"base_currency"`
	ExchangeRateUsed float64   `gorm:"type:numeric(20,10)" json:"exchange_rate_used"`
	RateTimestamp    time.Time `json:"rate_timestamp"`

	VendorName      string    `json:"vendor_name"`
	TransactionDate time.Time `gorm:"index" json:"transaction_date"`
	ReceiptNumber   string    `gorm:"index" json:"receipt_number,omitempty"`
	Description     string    `json:"description,omitempty"`
	UploaderID      uuid.UUID `json:"uploader_id"`

	Timestamp
}
