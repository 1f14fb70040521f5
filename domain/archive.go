package domain

import (
	"errors"
)

var (
	MessageSuccessArchiveReceipt   = "receipt archived successfully"
	MessageSuccessUnarchiveReceipt = "receipt unarchived successfully"
	MessageSuccessBulkArchive      = "old receipts archived successfully"
	MessageSuccessSearchReceipts   = "receipts retrieved successfully"
	MessageSuccessGetReceiptStats  = "receipt statistics retrieved successfully"

	MessageFailedArchiveReceipt   = "failed to archive receipt"
	MessageFailedUnarchiveReceipt = "failed to unarchive receipt"
	MessageFailedBulkArchive      = "failed to archive old receipts"
	MessageFailedSearchReceipts   = "failed to search receipts"
	MessageFailedGetReceiptStats  = "failed to retrieve receipt statistics"

	ErrDocumentNotFound        = errors.New("receipt document not found")
	ErrAlreadyArchived         = errors.New("receipt document already archived")
	ErrNotArchived             = errors.New("receipt document is not archived")
	ErrRetentionPeriodTooShort = errors.New("retention period must be at least 30 days")
)

type (
	ArchiveReceiptRequest struct {
		Reason string `json:"reason" validate:"omitempty"`
	}

	BulkArchiveRequest struct {
		Days int `json:"days" validate:"required,min=1"`
	}

	BulkArchiveResponse struct {
		ArchivedCount int `json:"archived_count"`
	}

	ReceiptStatsResponse struct {
		Total     int `json:"total"`
		Archived  int `json:"archived"`
		Active    int `json:"active"`
		Pending   int `json:"pending"`
		Confirmed int `json:"confirmed"`
	}
)
