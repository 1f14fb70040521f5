package domain

import (
	"encoding/json"
	"time"
)

const (
	AuditActionUploadReceipt  = "UPLOAD_RECEIPT"
	AuditActionConfirmReceipt = "CONFIRM_RECEIPT"
	AuditActionRejectReceipt  = "REJECT_RECEIPT"
	AuditActionCancelReceipt  = "CANCEL_RECEIPT"

	AuditResourceReceipt = "Receipt"
)

var (
	MessageSuccessGetAuditLogs = "audit logs retrieved successfully"
	MessageFailedGetAuditLogs  = "failed to retrieve audit logs"
)

type (
	// AuditEntry is the event emitted for every receipt state transition.
	AuditEntry struct {
		UserID       string
		UserRole     string
		Action       string
		ResourceType string
		ResourceID   string
		Success      bool
		ErrorMessage string
		Metadata     map[string]interface{}
	}

	AuditLogResponse struct {
		ID           string          `json:"id"`
		UserID       string          `json:"user_id,omitempty"`
		UserRole     string          `json:"user_role,omitempty"`
		Action       string          `json:"action"`
		ResourceType string          `json:"resource_type,omitempty"`
		ResourceID   string          `json:"resource_id,omitempty"`
		Success      bool            `json:"success"`
		ErrorMessage string          `json:"error_message,omitempty"`
		Metadata     json.RawMessage `json:"metadata,omitempty"`
		LoggedAt     time.Time       `json:"logged_at"`
	}
)
