package archive

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/pkg/mirror"
	"context"
	"fmt"
	"time"
)

// MinRetentionDays guards bulk archival: sweeps of anything younger than a
// month are rejected outright.
const MinRetentionDays = 30

const bulkArchiveBatchSize = 100

type (
	// ArchiveService manages the storage-lifecycle flag on mirror documents.
	// Archiving is invisible to the relational store: it never changes
	// business status, only whether default listings show the document.
	ArchiveService interface {
		Archive(ctx context.Context, receiptID, reason string) error
		Unarchive(ctx context.Context, receiptID string) error
		BulkArchiveOlderThan(ctx context.Context, days int) (int, error)
		ListReceipts(ctx context.Context, uploaderID string, includeArchived bool, page, limit int) ([]*mirror.ReceiptDocument, error)
	}

	archiveService struct {
		mirrorRepository mirror.MirrorRepository
	}
)

func NewArchiveService(mirrorRepository mirror.MirrorRepository) ArchiveService {
	return &archiveService{mirrorRepository: mirrorRepository}
}

func (s *archiveService) Archive(ctx context.Context, receiptID, reason string) error {
	if reason == "" {
		reason = "user_requested"
	}
	return s.mirrorRepository.ArchiveDocument(receiptID, reason)
}

func (s *archiveService) Unarchive(ctx context.Context, receiptID string) error {
	return s.mirrorRepository.UnarchiveDocument(receiptID)
}

func (s *archiveService) BulkArchiveOlderThan(ctx context.Context, days int) (int, error) {
	if days < MinRetentionDays {
		return 0, domain.ErrRetentionPeriodTooShort
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	reason := fmt.Sprintf("auto_archived_after_%d_days", days)
	return s.mirrorRepository.BulkArchiveBefore(cutoff, reason, bulkArchiveBatchSize)
}

func (s *archiveService) ListReceipts(ctx context.Context, uploaderID string, includeArchived bool, page, limit int) ([]*mirror.ReceiptDocument, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	skip := (page - 1) * limit
	return s.mirrorRepository.ListByUploader(uploaderID, includeArchived, limit, skip)
}
