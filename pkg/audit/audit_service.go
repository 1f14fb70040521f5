package audit

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/entities"
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

type (
	// AuditService persists one event per receipt state transition. It must
	// never fail its caller: a lost audit row is logged, not surfaced.
	AuditService interface {
		LogAction(ctx context.Context, entry domain.AuditEntry)
		GetResourceHistory(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLogResponse, error)
		GetUserActivity(ctx context.Context, userID string, page, limit int) ([]*domain.AuditLogResponse, int64, error)
	}

	auditService struct {
		auditRepository AuditRepository
	}
)

func NewAuditService(auditRepository AuditRepository) AuditService {
	return &auditService{auditRepository: auditRepository}
}

func (s *auditService) LogAction(ctx context.Context, entry domain.AuditEntry) {
	auditLog := &entities.AuditLog{
		ID:           uuid.New(),
		UserRole:     entry.UserRole,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Success:      entry.Success,
		ErrorMessage: entry.ErrorMessage,
		LoggedAt:     time.Now().UTC(),
	}

	if entry.UserID != "" {
		if userUUID, err := uuid.Parse(entry.UserID); err == nil {
			auditLog.UserID = &userUUID
		}
	}

	if entry.Metadata != nil {
		if data, err := json.Marshal(entry.Metadata); err == nil {
			auditLog.Metadata = data
		}
	}

	if err := s.auditRepository.CreateAuditLog(ctx, auditLog); err != nil {
		log.Printf("audit: failed to record %s for %s/%s: %v",
			entry.Action, entry.ResourceType, entry.ResourceID, err)
	}
}

func (s *auditService) GetResourceHistory(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLogResponse, error) {
	logs, err := s.auditRepository.GetResourceHistory(ctx, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	return toResponses(logs), nil
}

func (s *auditService) GetUserActivity(ctx context.Context, userID string, page, limit int) ([]*domain.AuditLogResponse, int64, error) {
	logs, count, err := s.auditRepository.GetUserActivity(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(logs), count, nil
}

func toResponses(logs []*entities.AuditLog) []*domain.AuditLogResponse {
	result := make([]*domain.AuditLogResponse, 0, len(logs))
	for _, auditLog := range logs {
		response := &domain.AuditLogResponse{
			ID:           auditLog.ID.String(),
			UserRole:     auditLog.UserRole,
			Action:       auditLog.Action,
			ResourceType: auditLog.ResourceType,
			ResourceID:   auditLog.ResourceID,
			Success:      auditLog.Success,
			ErrorMessage: auditLog.ErrorMessage,
			Metadata:     auditLog.Metadata,
			LoggedAt:     auditLog.LoggedAt,
		}
		if auditLog.UserID != nil {
			response.UserID = auditLog.UserID.String()
		}
		result = append(result, response)
	}
	return result
}
