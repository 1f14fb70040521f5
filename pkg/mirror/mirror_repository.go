package mirror

import (
	"Receipt-Ledger-Backend/domain"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const documentBucket = "receipt_documents"

type (
	// MirrorRepository is the secondary, best-effort document store. Writes
	// here are never allowed to fail the authoritative relational path.
	MirrorRepository interface {
		SaveDocument(document *ReceiptDocument) error
		GetDocument(receiptID string, includeArchived bool) (*ReceiptDocument, error)
		UpdateDocument(receiptID string, update func(*ReceiptDocument)) error
		ListByUploader(uploaderID string, includeArchived bool, limit, skip int) ([]*ReceiptDocument, error)
		Search(query string, uploaderID string, includeArchived bool) ([]*ReceiptDocument, error)
		ArchiveDocument(receiptID, reason string) error
		UnarchiveDocument(receiptID string) error
		BulkArchiveBefore(cutoff time.Time, reason string, batchSize int) (int, error)
		Stats(uploaderID string) (*domain.ReceiptStatsResponse, error)
		Close() error
	}

	boltMirror struct {
		db *bbolt.DB
	}
)

func NewMirrorRepository(path string) (MirrorRepository, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening mirror store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(documentBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating mirror bucket: %w", err)
	}

	return &boltMirror{db: db}, nil
}

func (m *boltMirror) SaveDocument(document *ReceiptDocument) error {
	return m.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		if bucket.Get([]byte(document.ReceiptID)) != nil {
			// Ingestion mirrors are written once; later changes go through
			// UpdateDocument so the archive fields survive.
			return nil
		}
		now := time.Now().UTC()
		if document.CreatedAt.IsZero() {
			document.CreatedAt = now
		}
		document.UpdatedAt = now
		data, err := json.Marshal(document)
		if err != nil {
			return fmt.Errorf("marshaling receipt document: %w", err)
		}
		return bucket.Put([]byte(document.ReceiptID), data)
	})
}

func (m *boltMirror) GetDocument(receiptID string, includeArchived bool) (*ReceiptDocument, error) {
	var document *ReceiptDocument
	err := m.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		data := bucket.Get([]byte(receiptID))
		if data == nil {
			return domain.ErrDocumentNotFound
		}
		return json.Unmarshal(data, &document)
	})
	if err != nil {
		return nil, err
	}
	if document.Archived && !includeArchived {
		return nil, domain.ErrDocumentNotFound
	}
	return document, nil
}

func (m *boltMirror) UpdateDocument(receiptID string, update func(*ReceiptDocument)) error {
	return m.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		data := bucket.Get([]byte(receiptID))
		if data == nil {
			return domain.ErrDocumentNotFound
		}
		var document ReceiptDocument
		if err := json.Unmarshal(data, &document); err != nil {
			return fmt.Errorf("unmarshaling receipt document: %w", err)
		}
		update(&document)
		document.UpdatedAt = time.Now().UTC()
		updated, err := json.Marshal(&document)
		if err != nil {
			return fmt.Errorf("marshaling receipt document: %w", err)
		}
		return bucket.Put([]byte(receiptID), updated)
	})
}

func (m *boltMirror) ListByUploader(uploaderID string, includeArchived bool, limit, skip int) ([]*ReceiptDocument, error) {
	documents, err := m.collect(func(document *ReceiptDocument) bool {
		if document.UploaderID != uploaderID {
			return false
		}
		if document.Archived && !includeArchived {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].CreatedAt.After(documents[j].CreatedAt)
	})

	if skip >= len(documents) {
		return []*ReceiptDocument{}, nil
	}
	documents = documents[skip:]
	if limit > 0 && limit < len(documents) {
		documents = documents[:limit]
	}
	return documents, nil
}

func (m *boltMirror) Search(query string, uploaderID string, includeArchived bool) ([]*ReceiptDocument, error) {
	needle := strings.ToLower(query)
	documents, err := m.collect(func(document *ReceiptDocument) bool {
		if uploaderID != "" && document.UploaderID != uploaderID {
			return false
		}
		if document.Archived && !includeArchived {
			return false
		}
		if strings.Contains(strings.ToLower(document.VendorName), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(document.ReceiptNumber), needle) {
			return true
		}
		for _, tag := range document.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].CreatedAt.After(documents[j].CreatedAt)
	})
	return documents, nil
}

func (m *boltMirror) ArchiveDocument(receiptID, reason string) error {
	return m.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		data := bucket.Get([]byte(receiptID))
		if data == nil {
			return domain.ErrDocumentNotFound
		}
		var document ReceiptDocument
		if err := json.Unmarshal(data, &document); err != nil {
			return fmt.Errorf("unmarshaling receipt document: %w", err)
		}
		if document.Archived {
			return domain.ErrAlreadyArchived
		}
		now := time.Now().UTC()
		document.Archived = true
		document.ArchiveDate = &now
		document.ArchiveReason = reason
		document.UpdatedAt = now
		updated, err := json.Marshal(&document)
		if err != nil {
			return fmt.Errorf("marshaling receipt document: %w", err)
		}
		return bucket.Put([]byte(receiptID), updated)
	})
}

func (m *boltMirror) UnarchiveDocument(receiptID string) error {
	return m.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		data := bucket.Get([]byte(receiptID))
		if data == nil {
			return domain.ErrDocumentNotFound
		}
		var document ReceiptDocument
		if err := json.Unmarshal(data, &document); err != nil {
			return fmt.Errorf("unmarshaling receipt document: %w", err)
		}
		if !document.Archived {
			return domain.ErrNotArchived
		}
		document.Archived = false
		document.ArchiveDate = nil
		document.ArchiveReason = ""
		document.UpdatedAt = time.Now().UTC()
		updated, err := json.Marshal(&document)
		if err != nil {
			return fmt.Errorf("marshaling receipt document: %w", err)
		}
		return bucket.Put([]byte(receiptID), updated)
	})
}

// BulkArchiveBefore archives non-archived documents created before cutoff,
// one bounded write transaction per batch so a large sweep never holds the
// store locked end to end.
func (m *boltMirror) BulkArchiveBefore(cutoff time.Time, reason string, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	archived := 0
	for {
		candidates, err := m.collect(func(document *ReceiptDocument) bool {
			return !document.Archived && document.CreatedAt.Before(cutoff)
		})
		if err != nil {
			return archived, err
		}
		if len(candidates) == 0 {
			return archived, nil
		}
		if len(candidates) > batchSize {
			candidates = candidates[:batchSize]
		}

		err = m.db.Update(func(tx *bbolt.Tx) error {
			bucket := tx.Bucket([]byte(documentBucket))
			now := time.Now().UTC()
			for _, document := range candidates {
				document.Archived = true
				document.ArchiveDate = &now
				document.ArchiveReason = reason
				document.UpdatedAt = now
				data, err := json.Marshal(document)
				if err != nil {
					return fmt.Errorf("marshaling receipt document: %w", err)
				}
				if err := bucket.Put([]byte(document.ReceiptID), data); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return archived, err
		}
		archived += len(candidates)
	}
}

func (m *boltMirror) Stats(uploaderID string) (*domain.ReceiptStatsResponse, error) {
	stats := &domain.ReceiptStatsResponse{}
	err := m.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var document ReceiptDocument
			if err := json.Unmarshal(v, &document); err != nil {
				return fmt.Errorf("unmarshaling receipt document: %w", err)
			}
			if uploaderID != "" && document.UploaderID != uploaderID {
				return nil
			}
			stats.Total++
			if document.Archived {
				stats.Archived++
			} else {
				stats.Active++
			}
			switch document.Status {
			case "PENDING_CONFIRMATION":
				stats.Pending++
			case "CONFIRMED":
				stats.Confirmed++
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (m *boltMirror) collect(match func(*ReceiptDocument) bool) ([]*ReceiptDocument, error) {
	documents := make([]*ReceiptDocument, 0)
	err := m.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var document ReceiptDocument
			if err := json.Unmarshal(v, &document); err != nil {
				return fmt.Errorf("unmarshaling receipt document: %w", err)
			}
			if match(&document) {
				documents = append(documents, &document)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (m *boltMirror) Close() error {
	return m.db.Close()
}
