package audit

import (
	"Receipt-Ledger-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	AuditRepository interface {
		CreateAuditLog(ctx context.Context, log *entities.AuditLog) error
		GetResourceHistory(ctx context.Context, resourceType, resourceID string) ([]*entities.AuditLog, error)
		GetUserActivity(ctx context.Context, userID string, page, limit int) ([]*entities.AuditLog, int64, error)
	}

	auditRepository struct {
		db *gorm.DB
	}
)

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) CreateAuditLog(ctx context.Context, log *entities.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditRepository) GetResourceHistory(ctx context.Context, resourceType, resourceID string) ([]*entities.AuditLog, error) {
	var logs []*entities.AuditLog
	if err := r.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("logged_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditRepository) GetUserActivity(ctx context.Context, userID string, page, limit int) ([]*entities.AuditLog, int64, error) {
	var logs []*entities.AuditLog
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.AuditLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, count, nil
}
