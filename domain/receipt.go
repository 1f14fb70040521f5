package domain

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessUploadReceipt   = "receipt uploaded successfully"
	MessageSuccessGetReceipt      = "receipt retrieved successfully"
	MessageSuccessConfirmReceipt  = "receipt confirmed successfully"
	MessageSuccessRejectReceipt   = "receipt rejected successfully"
	MessageSuccessCancelReceipt   = "receipt cancelled successfully"
	MessageSuccessGetTransactions = "transactions retrieved successfully"

	MessageFailedUploadReceipt   = "failed to upload receipt"
	MessageFailedGetReceipt      = "failed to retrieve receipt"
	MessageFailedConfirmReceipt  = "failed to confirm receipt"
	MessageFailedRejectReceipt   = "failed to reject receipt"
	MessageFailedCancelReceipt   = "failed to cancel receipt"
	MessageFailedGetTransactions = "failed to retrieve transactions"

	ErrReceiptNotFound        = errors.New("receipt not found")
	ErrInvalidStateTransition = errors.New("receipt already resolved")
	ErrVendorNameRequired     = errors.New("vendor name is required")
	ErrInvalidTotalAmount     = errors.New("total amount must be positive")
	ErrInvalidTransactionDate = errors.New("invalid transaction date")
	ErrRejectReasonRequired   = errors.New("reject reason is required")
	ErrInvalidImageFormat     = errors.New("invalid image format")
	ErrUnauthorizedAccess     = errors.New("unauthorized access to receipt")
)

type (
	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	UploadReceiptResponse struct {
		ReceiptID       string           `json:"receipt_id"`
		ImageURL        string           `json:"image_url"`
		Status          string           `json:"status"`
		ExtractedFields *ExtractedFields `json:"extracted_fields,omitempty"`
	}

	// ExtractedFields is the untrusted shape the AI extraction produces.
	// Nothing here is validated until confirm time.
	ExtractedFields struct {
		VendorName      string   `json:"vendor_name,omitempty"`
		TotalAmount     *float64 `json:"total_amount,omitempty"`
		CurrencyCode    string   `json:"currency_code,omitempty"`
		TransactionDate string   `json:"transaction_date,omitempty"`
		ReceiptNumber   string   `json:"receipt_number,omitempty"`
		PayerName       string   `json:"payer_name,omitempty"`
	}

	ConfirmReceiptRequest struct {
		VendorName      string  `json:"vendor_name" validate:"required"`
		TotalAmount     float64 `json:"total_amount" validate:"required"`
		CurrencyCode    string  `json:"currency_code" validate:"required,len=3"`
		TransactionDate string  `json:"transaction_date" validate:"required"`
		ReceiptNumber   string  `json:"receipt_number" validate:"omitempty"`
		Description     string  `json:"description" validate:"omitempty"`
	}

	ConfirmReceiptResponse struct {
		ReceiptID        string    `json:"receipt_id"`
		TransactionID    string    `json:"transaction_id"`
		Status           string    `json:"status"`
		OriginalAmount   float64   `json:"original_amount"`
		OriginalCurrency string    `json:"original_currency"`
		BaseAmount       float64   `json:"base_amount"`
		BaseCurrency     string    `json:"base_currency"`
		ExchangeRateUsed float64   `json:"exchange_rate_used"`
		RateTimestamp    time.Time `json:"rate_timestamp"`
	}

	RejectReceiptRequest struct {
		Reason string `json:"reason" validate:"required"`
	}

	ReceiptResponse struct {
		ID              string           `json:"id"`
		UploaderID      string           `json:"uploader_id"`
		ImageURL        string           `json:"image_url"`
		Status          string           `json:"status"`
		RejectReason    string           `json:"reject_reason,omitempty"`
		ExtractedFields *ExtractedFields `json:"extracted_fields,omitempty"`
		RawExtraction   json.RawMessage  `json:"raw_extraction,omitempty"`
		CreatedAt       time.Time        `json:"created_at"`
	}

	TransactionResponse struct {
		ID               string    `json:"id"`
		ReceiptID        string    `json:"receipt_id"`
		VendorName       string    `json:"vendor_name"`
		ReceiptNumber    string    `json:"receipt_number,omitempty"`
		OriginalAmount   float64   `json:"original_amount"`
		OriginalCurrency string    `json:"original_currency"`
		BaseAmount       float64   `json:"base_amount"`
		BaseCurrency     string    `json:"base_currency"`
		ExchangeRateUsed float64   `json:"exchange_rate_used"`
		RateTimestamp    time.Time `json:"rate_timestamp"`
		TransactionDate  time.Time `json:"transaction_date"`
		Description      string    `json:"description,omitempty"`
		CreatedAt        time.Time `json:"created_at"`
	}
)
