package mirror

import (
	"encoding/json"
	"time"
)

// ReceiptDocument is the mirror-store projection of a receipt and its
// transaction. It is derived, lag-tolerant data: the relational store stays
// authoritative, and a missing or stale document never corrupts it. The
// archived flag is a storage-lifecycle concern and is independent of the
// business status field.
type ReceiptDocument struct {
	ReceiptID     string          `json:"receipt_id"`
	UploaderID    string          `json:"uploader_id"`
	Status        string          `json:"status"`
	ImageURL      string          `json:"image_url"`
	RawExtraction json.RawMessage `json:"raw_extraction,omitempty"`

	VendorName      string   `json:"vendor_name,omitempty"`
	TotalAmount     *float64 `json:"total_amount,omitempty"`
	CurrencyCode    string   `json:"currency_code,omitempty"`
	TransactionDate string   `json:"transaction_date,omitempty"`
	ReceiptNumber   string   `json:"receipt_number,omitempty"`
	PayerName       string   `json:"payer_name,omitempty"`

	BaseAmount       *float64 `json:"base_amount,omitempty"`
	BaseCurrency     string   `json:"base_currency,omitempty"`
	ExchangeRateUsed *float64 `json:"exchange_rate_used,omitempty"`
	RejectReason     string   `json:"reject_reason,omitempty"`

	Tags     []string `json:"tags,omitempty"`
	FileName string   `json:"file_name,omitempty"`
	FileSize int64    `json:"file_size,omitempty"`
	MimeType string   `json:"mime_type,omitempty"`

	Archived      bool       `json:"archived"`
	ArchiveDate   *time.Time `json:"archive_date,omitempty"`
	ArchiveReason string     `json:"archive_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
