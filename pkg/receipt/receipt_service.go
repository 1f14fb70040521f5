package receipt

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/entities"
	"Receipt-Ledger-Backend/internal/utils/storage"
	"Receipt-Ledger-Backend/pkg/audit"
	"Receipt-Ledger-Backend/pkg/currency"
	"Receipt-Ledger-Backend/pkg/extraction"
	"Receipt-Ledger-Backend/pkg/mirror"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const transactionDateLayout = "2006-01-02"

type (
	// ReceiptService owns the pending-receipt lifecycle and coordinates the
	// two stores: the relational write always commits first and is
	// authoritative; the mirror document follows best-effort and is never
	// allowed to fail or delay the caller.
	ReceiptService interface {
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (*domain.UploadReceiptResponse, error)
		GetReceipt(ctx context.Context, id string, userID string) (*domain.ReceiptResponse, error)
		Confirm(ctx context.Context, id string, req domain.ConfirmReceiptRequest, userID, userRole string) (*domain.ConfirmReceiptResponse, error)
		Reject(ctx context.Context, id string, req domain.RejectReceiptRequest, userID, userRole string) error
		Cancel(ctx context.Context, id string, userID, userRole string) error
		GetTransactions(ctx context.Context, userID string, page, limit int) ([]*domain.TransactionResponse, int64, error)
		SearchReceipts(ctx context.Context, query, userID string, includeArchived bool) ([]*mirror.ReceiptDocument, error)
		GetReceiptStats(ctx context.Context, userID string) (*domain.ReceiptStatsResponse, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		mirrorRepository  mirror.MirrorRepository
		currencyService   currency.CurrencyService
		extractionService extraction.ExtractionService
		auditService      audit.AuditService
		s3                storage.AwsS3
	}
)

func NewReceiptService(
	receiptRepository ReceiptRepository,
	mirrorRepository mirror.MirrorRepository,
	currencyService currency.CurrencyService,
	extractionService extraction.ExtractionService,
	auditService audit.AuditService,
	s3 storage.AwsS3,
) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		mirrorRepository:  mirrorRepository,
		currencyService:   currencyService,
		extractionService: extractionService,
		auditService:      auditService,
		s3:                s3,
	}
}

func (s *receiptService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (*domain.UploadReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	receiptID := uuid.New()
	fileName := fmt.Sprintf("receipt-%s", receiptID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.ReceiptImage, "receipts", storage.AllowImage...)
	if err != nil {
		return nil, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	// Extraction output is untrusted; a failed call still leaves a usable
	// pending receipt the reviewer can fill in by hand.
	rawExtraction, fields, err := s.extractionService.ExtractReceiptData(ctx, req.ReceiptImage)
	if err != nil {
		log.Printf("extraction: receipt %s: %v", receiptID, err)
	}

	pendingReceipt := &entities.PendingReceipt{
		ID:            receiptID,
		UploaderID:    userUUID,
		ImageURL:      imageURL,
		RawExtraction: rawExtraction,
		Status:        entities.ReceiptStatusPendingConfirmation,
	}
	if fields != nil {
		pendingReceipt.VendorName = fields.VendorName
		pendingReceipt.TotalAmount = fields.TotalAmount
		pendingReceipt.CurrencyCode = fields.CurrencyCode
		pendingReceipt.ReceiptNumber = fields.ReceiptNumber
		pendingReceipt.PayerName = fields.PayerName
		if parsed, parseErr := time.Parse(transactionDateLayout, fields.TransactionDate); parseErr == nil {
			pendingReceipt.TransactionDate = &parsed
		}
	}

	if err := s.receiptRepository.CreateReceipt(ctx, pendingReceipt); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return nil, err
	}

	document := &mirror.ReceiptDocument{
		ReceiptID:     receiptID.String(),
		UploaderID:    userID,
		Status:        entities.ReceiptStatusPendingConfirmation,
		ImageURL:      imageURL,
		RawExtraction: rawExtraction,
		FileName:      req.ReceiptImage.Filename,
		FileSize:      req.ReceiptImage.Size,
		MimeType:      req.ReceiptImage.Header.Get("Content-Type"),
	}
	if fields != nil {
		document.VendorName = fields.VendorName
		document.TotalAmount = fields.TotalAmount
		document.CurrencyCode = fields.CurrencyCode
		document.TransactionDate = fields.TransactionDate
		document.ReceiptNumber = fields.ReceiptNumber
		document.PayerName = fields.PayerName
	}
	go func() {
		if err := s.mirrorRepository.SaveDocument(document); err != nil {
			log.Printf("mirror: failed to save document %s: %v", receiptID, err)
		}
	}()

	s.auditService.LogAction(ctx, domain.AuditEntry{
		UserID:       userID,
		Action:       domain.AuditActionUploadReceipt,
		ResourceType: domain.AuditResourceReceipt,
		ResourceID:   receiptID.String(),
		Success:      true,
	})

	return &domain.UploadReceiptResponse{
		ReceiptID:       receiptID.String(),
		ImageURL:        imageURL,
		Status:          entities.ReceiptStatusPendingConfirmation,
		ExtractedFields: fields,
	}, nil
}

func (s *receiptService) GetReceipt(ctx context.Context, id string, userID string) (*domain.ReceiptResponse, error) {
	pendingReceipt, err := s.loadScoped(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	fields := &domain.ExtractedFields{
		VendorName:    pendingReceipt.VendorName,
		TotalAmount:   pendingReceipt.TotalAmount,
		CurrencyCode:  pendingReceipt.CurrencyCode,
		ReceiptNumber: pendingReceipt.ReceiptNumber,
		PayerName:     pendingReceipt.PayerName,
	}
	if pendingReceipt.TransactionDate != nil {
		fields.TransactionDate = pendingReceipt.TransactionDate.Format(transactionDateLayout)
	}

	return &domain.ReceiptResponse{
		ID:              pendingReceipt.ID.String(),
		UploaderID:      pendingReceipt.UploaderID.String(),
		ImageURL:        pendingReceipt.ImageURL,
		Status:          pendingReceipt.Status,
		RejectReason:    pendingReceipt.RejectReason,
		ExtractedFields: fields,
		RawExtraction:   pendingReceipt.RawExtraction,
		CreatedAt:       pendingReceipt.CreatedAt,
	}, nil
}

func (s *receiptService) Confirm(ctx context.Context, id string, req domain.ConfirmReceiptRequest, userID, userRole string) (*domain.ConfirmReceiptResponse, error) {
	pendingReceipt, err := s.loadScoped(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.VendorName) == "" {
		return nil, domain.ErrVendorNameRequired
	}
	if req.TotalAmount <= 0 {
		return nil, domain.ErrInvalidTotalAmount
	}
	transactionDate, err := time.Parse(transactionDateLayout, req.TransactionDate)
	if err != nil {
		return nil, domain.ErrInvalidTransactionDate
	}

	// A currency failure aborts before any write: the receipt stays pending
	// so the user can retry once a rate snapshot lands.
	conversion, err := s.currencyService.Convert(ctx, req.TotalAmount, req.CurrencyCode, currency.BaseCurrency)
	if err != nil {
		s.logTransition(ctx, domain.AuditActionConfirmReceipt, id, userID, userRole, false, err)
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Transaction processed from receipt %s", id)
	}

	transaction := &entities.Transaction{
		ID:               uuid.New(),
		ReceiptID:        pendingReceipt.ID,
		OriginalAmount:   req.TotalAmount,
		OriginalCurrency: conversion.FromCurrency,
		BaseAmount:       conversion.ConvertedAmount,
		BaseCurrency:     conversion.ToCurrency,
		ExchangeRateUsed: conversion.RateUsed,
		RateTimestamp:    conversion.RateTimestamp,
		VendorName:       req.VendorName,
		TransactionDate:  transactionDate,
		ReceiptNumber:    req.ReceiptNumber,
		Description:      description,
		UploaderID:       pendingReceipt.UploaderID,
	}

	confirmed := ConfirmedFields{
		VendorName:      req.VendorName,
		TotalAmount:     req.TotalAmount,
		CurrencyCode:    conversion.FromCurrency,
		TransactionDate: transactionDate,
		ReceiptNumber:   req.ReceiptNumber,
	}

	if err := s.receiptRepository.ConfirmReceipt(ctx, id, confirmed, transaction); err != nil {
		s.logTransition(ctx, domain.AuditActionConfirmReceipt, id, userID, userRole, false, err)
		return nil, err
	}

	s.mirrorTransition(id, func(document *mirror.ReceiptDocument) {
		document.Status = entities.ReceiptStatusConfirmed
		document.VendorName = req.VendorName
		document.TotalAmount = &transaction.OriginalAmount
		document.CurrencyCode = transaction.OriginalCurrency
		document.TransactionDate = req.TransactionDate
		document.ReceiptNumber = req.ReceiptNumber
		document.BaseAmount = &transaction.BaseAmount
		document.BaseCurrency = transaction.BaseCurrency
		document.ExchangeRateUsed = &transaction.ExchangeRateUsed
	})

	s.auditService.LogAction(ctx, domain.AuditEntry{
		UserID:       userID,
		UserRole:     userRole,
		Action:       domain.AuditActionConfirmReceipt,
		ResourceType: domain.AuditResourceReceipt,
		ResourceID:   id,
		Success:      true,
		Metadata: map[string]interface{}{
			"transaction_id":     transaction.ID.String(),
			"base_amount":        transaction.BaseAmount,
			"exchange_rate_used": transaction.ExchangeRateUsed,
		},
	})

	return &domain.ConfirmReceiptResponse{
		ReceiptID:        id,
		TransactionID:    transaction.ID.String(),
		Status:           entities.ReceiptStatusConfirmed,
		OriginalAmount:   transaction.OriginalAmount,
		OriginalCurrency: transaction.OriginalCurrency,
		BaseAmount:       transaction.BaseAmount,
		BaseCurrency:     transaction.BaseCurrency,
		ExchangeRateUsed: transaction.ExchangeRateUsed,
		RateTimestamp:    transaction.RateTimestamp,
	}, nil
}

func (s *receiptService) Reject(ctx context.Context, id string, req domain.RejectReceiptRequest, userID, userRole string) error {
	if strings.TrimSpace(req.Reason) == "" {
		return domain.ErrRejectReasonRequired
	}

	if _, err := s.loadScoped(ctx, id, userID); err != nil {
		return err
	}

	if err := s.receiptRepository.ResolveReceipt(ctx, id, entities.ReceiptStatusRejected, req.Reason); err != nil {
		s.logTransition(ctx, domain.AuditActionRejectReceipt, id, userID, userRole, false, err)
		return err
	}

	s.mirrorTransition(id, func(document *mirror.ReceiptDocument) {
		document.Status = entities.ReceiptStatusRejected
		document.RejectReason = req.Reason
	})

	s.logTransition(ctx, domain.AuditActionRejectReceipt, id, userID, userRole, true, nil)
	return nil
}

func (s *receiptService) Cancel(ctx context.Context, id string, userID, userRole string) error {
	if _, err := s.loadScoped(ctx, id, userID); err != nil {
		return err
	}

	if err := s.receiptRepository.ResolveReceipt(ctx, id, entities.ReceiptStatusCancelled, ""); err != nil {
		s.logTransition(ctx, domain.AuditActionCancelReceipt, id, userID, userRole, false, err)
		return err
	}

	s.mirrorTransition(id, func(document *mirror.ReceiptDocument) {
		document.Status = entities.ReceiptStatusCancelled
	})

	s.logTransition(ctx, domain.AuditActionCancelReceipt, id, userID, userRole, true, nil)
	return nil
}

func (s *receiptService) GetTransactions(ctx context.Context, userID string, page, limit int) ([]*domain.TransactionResponse, int64, error) {
	transactions, count, err := s.receiptRepository.GetTransactions(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		result = append(result, &domain.TransactionResponse{
			ID:               transaction.ID.String(),
			ReceiptID:        transaction.ReceiptID.String(),
			VendorName:       transaction.VendorName,
			ReceiptNumber:    transaction.ReceiptNumber,
			OriginalAmount:   transaction.OriginalAmount,
			OriginalCurrency: transaction.OriginalCurrency,
			BaseAmount:       transaction.BaseAmount,
			BaseCurrency:     transaction.BaseCurrency,
			ExchangeRateUsed: transaction.ExchangeRateUsed,
			RateTimestamp:    transaction.RateTimestamp,
			TransactionDate:  transaction.TransactionDate,
			Description:      transaction.Description,
			CreatedAt:        transaction.CreatedAt,
		})
	}
	return result, count, nil
}

func (s *receiptService) SearchReceipts(ctx context.Context, query, userID string, includeArchived bool) ([]*mirror.ReceiptDocument, error) {
	return s.mirrorRepository.Search(query, userID, includeArchived)
}

func (s *receiptService) GetReceiptStats(ctx context.Context, userID string) (*domain.ReceiptStatsResponse, error) {
	return s.mirrorRepository.Stats(userID)
}

func (s *receiptService) loadScoped(ctx context.Context, id string, userID string) (*entities.PendingReceipt, error) {
	pendingReceipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, err
	}
	if pendingReceipt.UploaderID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return pendingReceipt, nil
}

// mirrorTransition applies a status change to the mirror document after the
// relational transaction commits. It runs detached: a mirror failure is
// logged and the authoritative record stands.
func (s *receiptService) mirrorTransition(receiptID string, update func(*mirror.ReceiptDocument)) {
	go func() {
		if err := s.mirrorRepository.UpdateDocument(receiptID, update); err != nil {
			log.Printf("mirror: failed to update document %s: %v", receiptID, err)
		}
	}()
}

func (s *receiptService) logTransition(ctx context.Context, action, receiptID, userID, userRole string, success bool, cause error) {
	entry := domain.AuditEntry{
		UserID:       userID,
		UserRole:     userRole,
		Action:       action,
		ResourceType: domain.AuditResourceReceipt,
		ResourceID:   receiptID,
		Success:      success,
	}
	if cause != nil {
		entry.ErrorMessage = cause.Error()
	}
	s.auditService.LogAction(ctx, entry)
}
