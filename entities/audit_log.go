package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog records one action against a resource. Every receipt state
// transition produces exactly one row.
type AuditLog struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	UserRole     string          `json:"user_role,omitempty"`
	Action       string          `gorm:"index" json:"action"`
	ResourceType string          `gorm:"index" json:"resource_type,omitempty"`
	ResourceID   string          `gorm:"index" json:"resource_id,omitempty"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Metadata     json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	LoggedAt     time.Time       `gorm:"index" json:"logged_at"`
}
