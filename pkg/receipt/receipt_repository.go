package receipt

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		CreateReceipt(ctx context.Context, receipt *entities.PendingReceipt) error
		GetReceiptByID(ctx context.Context, id string) (*entities.PendingReceipt, error)

		// ConfirmReceipt is the atomic check-and-set: the status guard and the
		// transaction insert commit together or not at all.
		ConfirmReceipt(ctx context.Context, receiptID string, confirmed ConfirmedFields, transaction *entities.Transaction) error

		// ResolveReceipt moves a receipt to a terminal status (REJECTED or
		// CANCELLED) guarded by the same conditional update.
		ResolveReceipt(ctx context.Context, receiptID string, status string, rejectReason string) error

		GetTransactions(ctx context.Context, uploaderID string, page, limit int) ([]*entities.Transaction, int64, error)
		GetTransactionByReceiptID(ctx context.Context, receiptID string) (*entities.Transaction, error)
	}

	// ConfirmedFields is what the reviewer validated; it overwrites the
	// untrusted extraction on the receipt row at confirm time.
	ConfirmedFields struct {
		VendorName      string
		TotalAmount     float64
		CurrencyCode    string
		TransactionDate time.Time
		ReceiptNumber   string
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateReceipt(ctx context.Context, receipt *entities.PendingReceipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id string) (*entities.PendingReceipt, error) {
	var receipt entities.PendingReceipt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) ConfirmReceipt(ctx context.Context, receiptID string, confirmed ConfirmedFields, transaction *entities.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.PendingReceipt{}).
			Where("id = ? AND status = ?", receiptID, entities.ReceiptStatusPendingConfirmation).
			Updates(map[string]interface{}{
				"status":           entities.ReceiptStatusConfirmed,
				"vendor_name":      confirmed.VendorName,
				"total_amount":     confirmed.TotalAmount,
				"currency_code":    confirmed.CurrencyCode,
				"transaction_date": confirmed.TransactionDate,
				"receipt_number":   confirmed.ReceiptNumber,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrInvalidStateTransition
		}
		return tx.Create(transaction).Error
	})
}

func (r *receiptRepository) ResolveReceipt(ctx context.Context, receiptID string, status string, rejectReason string) error {
	updates := map[string]interface{}{"status": status}
	if rejectReason != "" {
		updates["reject_reason"] = rejectReason
	}

	result := r.db.WithContext(ctx).
		Model(&entities.PendingReceipt{}).
		Where("id = ? AND status = ?", receiptID, entities.ReceiptStatusPendingConfirmation).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidStateTransition
	}
	return nil
}

func (r *receiptRepository) GetTransactions(ctx context.Context, uploaderID string, page, limit int) ([]*entities.Transaction, int64, error) {
	var transactions []*entities.Transaction
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("uploader_id = ?", uploaderID)

	if err := query.Model(&entities.Transaction{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("transaction_date DESC").Offset(offset).Limit(limit).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

func (r *receiptRepository) GetTransactionByReceiptID(ctx context.Context, receiptID string) (*entities.Transaction, error) {
	var transaction entities.Transaction
	if err := r.db.WithContext(ctx).Where("receipt_id = ?", receiptID).First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}
