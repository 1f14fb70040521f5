package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	ReceiptStatusPendingConfirmation = "PENDING_CONFIRMATION"
	ReceiptStatusConfirmed           = "CONFIRMED"
	ReceiptStatusRejected            = "REJECTED"
	ReceiptStatusCancelled           = "CANCELLED"
)

// PendingReceipt holds an uploaded receipt image and the raw AI extraction
// until the uploader confirms, rejects or cancels it. Extracted fields are
// untrusted until Confirm validates them.
type PendingReceipt struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UploaderID    uuid.UUID       `json:"uploader_id"`
	ImageURL      string          `json:"image_url"`
	RawExtraction json.RawMessage `gorm:"type:jsonb" json:"raw_extraction,omitempty"`

	// Extracted fields, all optional until validated at confirm time.
	VendorName      string     `json:"vendor_name,omitempty"`
	TotalAmount     *float64   `gorm:"type:numeric(10,2)" json:"total_amount,omitempty"`
	CurrencyCode    string     `gorm:"type:varchar(3)" json:"currency_code,omitempty"`
	TransactionDate *time.Time `json:"transaction_date,omitempty"`
	ReceiptNumber   string     `json:"receipt_number,omitempty"`
	PayerName       string     `json:"payer_name,omitempty"`

	Status       string `gorm:"type:varchar(32);index" json:"status"` // PENDING_CONFIRMATION, CONFIRMED, REJECTED, CANCELLED
	RejectReason string `json:"reject_reason,omitempty"`

	Transaction *Transaction `gorm:"foreignKey:ReceiptID" json:"transaction,omitempty"`
	Timestamp
}
