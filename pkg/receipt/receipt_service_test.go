package receipt

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/entities"
	"Receipt-Ledger-Backend/pkg/mirror"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestReceiptService(t *testing.T) {
	// Mirror and audit failures are logged, not surfaced; keep test output clean.
	log.SetOutput(io.Discard)

	RegisterFailHandler(Fail)
	RunSpecs(t, "Receipt Suite")
}

// fakeReceiptRepository replicates the conditional status update the real
// repository does in SQL, guarded by a mutex so concurrent confirms contend
// the same way.
type fakeReceiptRepository struct {
	mu           sync.Mutex
	receipts     map[string]*entities.PendingReceipt
	transactions map[string]*entities.Transaction
	createErr    error
}

func newFakeReceiptRepository() *fakeReceiptRepository {
	return &fakeReceiptRepository{
		receipts:     make(map[string]*entities.PendingReceipt),
		transactions: make(map[string]*entities.Transaction),
	}
}

func (f *fakeReceiptRepository) CreateReceipt(ctx context.Context, receipt *entities.PendingReceipt) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts[receipt.ID.String()] = receipt
	return nil
}

func (f *fakeReceiptRepository) GetReceiptByID(ctx context.Context, id string) (*entities.PendingReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.receipts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *receipt
	return &copied, nil
}

func (f *fakeReceiptRepository) ConfirmReceipt(ctx context.Context, receiptID string, confirmed ConfirmedFields, transaction *entities.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.receipts[receiptID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if receipt.Status != entities.ReceiptStatusPendingConfirmation {
		return domain.ErrInvalidStateTransition
	}
	receipt.Status = entities.ReceiptStatusConfirmed
	receipt.VendorName = confirmed.VendorName
	receipt.TotalAmount = &confirmed.TotalAmount
	receipt.CurrencyCode = confirmed.CurrencyCode
	receipt.TransactionDate = &confirmed.TransactionDate
	receipt.ReceiptNumber = confirmed.ReceiptNumber
	f.transactions[receiptID] = transaction
	return nil
}

func (f *fakeReceiptRepository) ResolveReceipt(ctx context.Context, receiptID string, status string, rejectReason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.receipts[receiptID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if receipt.Status != entities.ReceiptStatusPendingConfirmation {
		return domain.ErrInvalidStateTransition
	}
	receipt.Status = status
	receipt.RejectReason = rejectReason
	return nil
}

func (f *fakeReceiptRepository) GetTransactions(ctx context.Context, uploaderID string, page, limit int) ([]*entities.Transaction, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entities.Transaction
	for _, t := range f.transactions {
		if t.UploaderID.String() == uploaderID {
			result = append(result, t)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeReceiptRepository) GetTransactionByReceiptID(ctx context.Context, receiptID string) (*entities.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.transactions[receiptID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeReceiptRepository) transactionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transactions)
}

type fakeMirror struct {
	mu        sync.Mutex
	documents map[string]*mirror.ReceiptDocument
	saveErr   error
	updateErr error
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{documents: make(map[string]*mirror.ReceiptDocument)}
}

func (f *fakeMirror) SaveDocument(document *mirror.ReceiptDocument) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.documents[document.ReceiptID]; ok {
		return nil
	}
	f.documents[document.ReceiptID] = document
	return nil
}

func (f *fakeMirror) GetDocument(receiptID string, includeArchived bool) (*mirror.ReceiptDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	document, ok := f.documents[receiptID]
	if !ok || (document.Archived && !includeArchived) {
		return nil, domain.ErrDocumentNotFound
	}
	copied := *document
	return &copied, nil
}

func (f *fakeMirror) UpdateDocument(receiptID string, update func(*mirror.ReceiptDocument)) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	document, ok := f.documents[receiptID]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	update(document)
	return nil
}

func (f *fakeMirror) ListByUploader(uploaderID string, includeArchived bool, limit, skip int) ([]*mirror.ReceiptDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*mirror.ReceiptDocument
	for _, d := range f.documents {
		if d.UploaderID == uploaderID && (includeArchived || !d.Archived) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeMirror) Search(query string, uploaderID string, includeArchived bool) ([]*mirror.ReceiptDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*mirror.ReceiptDocument
	for _, d := range f.documents {
		if d.UploaderID != uploaderID || (d.Archived && !includeArchived) {
			continue
		}
		if strings.Contains(strings.ToLower(d.VendorName), strings.ToLower(query)) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeMirror) ArchiveDocument(receiptID, reason string) error {
	return f.UpdateDocument(receiptID, func(d *mirror.ReceiptDocument) {
		d.Archived = true
		d.ArchiveReason = reason
	})
}

func (f *fakeMirror) UnarchiveDocument(receiptID string) error {
	return f.UpdateDocument(receiptID, func(d *mirror.ReceiptDocument) {
		d.Archived = false
	})
}

func (f *fakeMirror) BulkArchiveBefore(cutoff time.Time, reason string, batchSize int) (int, error) {
	return 0, nil
}

func (f *fakeMirror) Stats(uploaderID string) (*domain.ReceiptStatsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &domain.ReceiptStatsResponse{}
	for _, d := range f.documents {
		if d.UploaderID != uploaderID {
			continue
		}
		stats.Total++
		if d.Archived {
			stats.Archived++
		} else {
			stats.Active++
		}
	}
	return stats, nil
}

func (f *fakeMirror) Close() error { return nil }

func (f *fakeMirror) document(receiptID string) *mirror.ReceiptDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	document, ok := f.documents[receiptID]
	if !ok {
		return nil
	}
	copied := *document
	return &copied
}

type fakeCurrencyService struct {
	conversion *domain.ConvertCurrencyResponse
	convertErr error
}

func (f *fakeCurrencyService) Convert(ctx context.Context, amount float64, fromCurrency, toCurrency string) (*domain.ConvertCurrencyResponse, error) {
	if f.convertErr != nil {
		return nil, f.convertErr
	}
	return f.conversion, nil
}

func (f *fakeCurrencyService) GetCurrencies(ctx context.Context) ([]*domain.CurrencyResponse, error) {
	return nil, nil
}

func (f *fakeCurrencyService) GetLatestRates(ctx context.Context) ([]*domain.ExchangeRateResponse, error) {
	return nil, nil
}

func (f *fakeCurrencyService) SaveRateSnapshot(ctx context.Context, req domain.SaveRateSnapshotRequest) error {
	return nil
}

func (f *fakeCurrencyService) IsSupported(ctx context.Context, code string) (bool, error) {
	return true, nil
}

type fakeAuditService struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (f *fakeAuditService) LogAction(ctx context.Context, entry domain.AuditEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
}

func (f *fakeAuditService) GetResourceHistory(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLogResponse, error) {
	return nil, nil
}

func (f *fakeAuditService) GetUserActivity(ctx context.Context, userID string, page, limit int) ([]*domain.AuditLogResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeAuditService) lastEntry() *domain.AuditEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) == 0 {
		return nil
	}
	entry := f.entries[len(f.entries)-1]
	return &entry
}

type fakeExtractionService struct {
	raw        json.RawMessage
	fields     *domain.ExtractedFields
	extractErr error
}

func (f *fakeExtractionService) ExtractReceiptData(ctx context.Context, imageFile *multipart.FileHeader) (json.RawMessage, *domain.ExtractedFields, error) {
	return f.raw, f.fields, f.extractErr
}

type fakeS3 struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	return folder + "/" + fileName + ".jpg", nil
}

func (f *fakeS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	return objectKey, nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.test.amazonaws.com/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.s3.test.amazonaws.com/")
}

func imageHeader() *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "receipt.jpg",
		Size:     2048,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/jpeg"}},
	}
}

var _ = Describe("ReceiptService", func() {
	var (
		repo        *fakeReceiptRepository
		mirrorStore *fakeMirror
		converter   *fakeCurrencyService
		extractor   *fakeExtractionService
		auditor     *fakeAuditService
		s3          *fakeS3
		service     ReceiptService
		ctx         context.Context

		userID    string
		receiptID string
	)

	seedPending := func() {
		id := uuid.New()
		receiptID = id.String()
		repo.receipts[receiptID] = &entities.PendingReceipt{
			ID:         id,
			UploaderID: uuid.MustParse(userID),
			ImageURL:   "https://bucket.s3.test.amazonaws.com/receipts/" + receiptID,
			Status:     entities.ReceiptStatusPendingConfirmation,
		}
		mirrorStore.documents[receiptID] = &mirror.ReceiptDocument{
			ReceiptID:  receiptID,
			UploaderID: userID,
			Status:     entities.ReceiptStatusPendingConfirmation,
		}
	}

	BeforeEach(func() {
		repo = newFakeReceiptRepository()
		mirrorStore = newFakeMirror()
		converter = &fakeCurrencyService{
			conversion: &domain.ConvertCurrencyResponse{
				OriginalAmount:  500,
				ConvertedAmount: 9.00,
				FromCurrency:    "PHP",
				ToCurrency:      "USD",
				RateUsed:        0.018,
				RateTimestamp:   time.Now().UTC(),
			},
		}
		extractor = &fakeExtractionService{}
		auditor = &fakeAuditService{}
		s3 = &fakeS3{}
		service = NewReceiptService(repo, mirrorStore, converter, extractor, auditor, s3)
		ctx = context.Background()

		userID = uuid.New().String()
		seedPending()
	})

	Describe("UploadReceipt", func() {
		var (
			req    domain.UploadReceiptRequest
			result *domain.UploadReceiptResponse
			err    error
		)

		BeforeEach(func() {
			req = domain.UploadReceiptRequest{ReceiptImage: imageHeader()}
		})

		JustBeforeEach(func() {
			result, err = service.UploadReceipt(ctx, req, userID)
		})

		When("extraction succeeds", func() {
			BeforeEach(func() {
				amount := 500.0
				extractor.raw = json.RawMessage(`{"vendor_name":"SM Supermarket"}`)
				extractor.fields = &domain.ExtractedFields{
					VendorName:      "SM Supermarket",
					TotalAmount:     &amount,
					CurrencyCode:    "PHP",
					TransactionDate: "2026-08-20",
				}
			})

			It("creates a pending receipt carrying the extracted fields", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Status).To(Equal(entities.ReceiptStatusPendingConfirmation))

				stored, getErr := repo.GetReceiptByID(ctx, result.ReceiptID)
				Expect(getErr).NotTo(HaveOccurred())
				Expect(stored.VendorName).To(Equal("SM Supermarket"))
				Expect(stored.CurrencyCode).To(Equal("PHP"))
				Expect(stored.TransactionDate).NotTo(BeNil())
			})

			It("mirrors the document asynchronously", func() {
				Expect(err).NotTo(HaveOccurred())
				Eventually(func() *mirror.ReceiptDocument {
					return mirrorStore.document(result.ReceiptID)
				}).ShouldNot(BeNil())

				document := mirrorStore.document(result.ReceiptID)
				Expect(document.VendorName).To(Equal("SM Supermarket"))
				Expect(document.Status).To(Equal(entities.ReceiptStatusPendingConfirmation))
			})

			It("records an audit entry", func() {
				Expect(err).NotTo(HaveOccurred())
				entry := auditor.lastEntry()
				Expect(entry).NotTo(BeNil())
				Expect(entry.Action).To(Equal(domain.AuditActionUploadReceipt))
				Expect(entry.Success).To(BeTrue())
			})
		})

		When("extraction fails", func() {
			BeforeEach(func() {
				extractor.extractErr = errors.New("model overloaded")
			})

			It("still creates a pending receipt with empty fields", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Status).To(Equal(entities.ReceiptStatusPendingConfirmation))
				Expect(result.ExtractedFields).To(BeNil())

				stored, getErr := repo.GetReceiptByID(ctx, result.ReceiptID)
				Expect(getErr).NotTo(HaveOccurred())
				Expect(stored.VendorName).To(BeEmpty())
			})
		})

		When("the relational write fails", func() {
			BeforeEach(func() {
				repo.createErr = errors.New("connection reset")
			})

			It("cleans up the uploaded object", func() {
				Expect(err).To(HaveOccurred())
				s3.mu.Lock()
				defer s3.mu.Unlock()
				Expect(s3.deleted).To(HaveLen(1))
			})
		})

		When("the user id is malformed", func() {
			JustBeforeEach(func() {
				result, err = service.UploadReceipt(ctx, req, "not-a-uuid")
			})

			It("returns ErrParseUUID", func() {
				Expect(err).To(MatchError(domain.ErrParseUUID))
			})
		})
	})

	Describe("Confirm", func() {
		var (
			req    domain.ConfirmReceiptRequest
			result *domain.ConfirmReceiptResponse
			err    error
		)

		BeforeEach(func() {
			req = domain.ConfirmReceiptRequest{
				VendorName:      "SM Supermarket",
				TotalAmount:     500,
				CurrencyCode:    "PHP",
				TransactionDate: "2026-08-20",
				ReceiptNumber:   "OR-12345",
			}
		})

		JustBeforeEach(func() {
			result, err = service.Confirm(ctx, receiptID, req, userID, domain.RoleReceiptLogger)
		})

		When("the receipt is pending and the data is valid", func() {
			It("creates exactly one transaction with normalized amounts", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Status).To(Equal(entities.ReceiptStatusConfirmed))
				Expect(result.BaseAmount).To(Equal(9.00))
				Expect(result.BaseCurrency).To(Equal("USD"))
				Expect(result.ExchangeRateUsed).To(Equal(0.018))
				Expect(repo.transactionCount()).To(Equal(1))
			})

			It("moves the receipt row to CONFIRMED", func() {
				Expect(err).NotTo(HaveOccurred())
				stored, getErr := repo.GetReceiptByID(ctx, receiptID)
				Expect(getErr).NotTo(HaveOccurred())
				Expect(stored.Status).To(Equal(entities.ReceiptStatusConfirmed))
				Expect(stored.VendorName).To(Equal("SM Supermarket"))
			})

			It("propagates the transition to the mirror document", func() {
				Expect(err).NotTo(HaveOccurred())
				Eventually(func() string {
					return mirrorStore.document(receiptID).Status
				}).Should(Equal(entities.ReceiptStatusConfirmed))

				document := mirrorStore.document(receiptID)
				Expect(*document.BaseAmount).To(Equal(9.00))
				Expect(*document.ExchangeRateUsed).To(Equal(0.018))
			})

			It("audits the confirmation with conversion metadata", func() {
				Expect(err).NotTo(HaveOccurred())
				entry := auditor.lastEntry()
				Expect(entry.Action).To(Equal(domain.AuditActionConfirmReceipt))
				Expect(entry.Success).To(BeTrue())
				Expect(entry.Metadata).To(HaveKeyWithValue("base_amount", 9.00))
			})
		})

		When("the vendor name is blank", func() {
			BeforeEach(func() {
				req.VendorName = "   "
			})

			It("returns ErrVendorNameRequired without touching the receipt", func() {
				Expect(err).To(MatchError(domain.ErrVendorNameRequired))
				stored, _ := repo.GetReceiptByID(ctx, receiptID)
				Expect(stored.Status).To(Equal(entities.ReceiptStatusPendingConfirmation))
			})
		})

		When("the amount is not positive", func() {
			BeforeEach(func() {
				req.TotalAmount = 0
			})

			It("returns ErrInvalidTotalAmount", func() {
				Expect(err).To(MatchError(domain.ErrInvalidTotalAmount))
			})
		})

		When("the transaction date is malformed", func() {
			BeforeEach(func() {
				req.TransactionDate = "20/08/2026"
			})

			It("returns ErrInvalidTransactionDate", func() {
				Expect(err).To(MatchError(domain.ErrInvalidTransactionDate))
			})
		})

		When("no rate snapshot is available", func() {
			BeforeEach(func() {
				converter.convertErr = domain.ErrRateUnavailable
			})

			It("leaves the receipt pending so the confirm can be retried", func() {
				Expect(err).To(MatchError(domain.ErrRateUnavailable))
				stored, _ := repo.GetReceiptByID(ctx, receiptID)
				Expect(stored.Status).To(Equal(entities.ReceiptStatusPendingConfirmation))
				Expect(repo.transactionCount()).To(BeZero())
			})

			It("audits the failed attempt", func() {
				Expect(err).To(HaveOccurred())
				entry := auditor.lastEntry()
				Expect(entry.Success).To(BeFalse())
				Expect(entry.ErrorMessage).NotTo(BeEmpty())
			})

			It("succeeds on retry once a snapshot lands", func() {
				Expect(err).To(MatchError(domain.ErrRateUnavailable))

				converter.convertErr = nil
				retried, retryErr := service.Confirm(ctx, receiptID, req, userID, domain.RoleReceiptLogger)
				Expect(retryErr).NotTo(HaveOccurred())
				Expect(retried.Status).To(Equal(entities.ReceiptStatusConfirmed))
				Expect(repo.transactionCount()).To(Equal(1))
			})
		})

		When("the receipt was already resolved", func() {
			BeforeEach(func() {
				repo.receipts[receiptID].Status = entities.ReceiptStatusRejected
			})

			It("returns ErrInvalidStateTransition", func() {
				Expect(err).To(MatchError(domain.ErrInvalidStateTransition))
				Expect(repo.transactionCount()).To(BeZero())
			})
		})

		When("a different user owns the receipt", func() {
			JustBeforeEach(func() {
				result, err = service.Confirm(ctx, receiptID, req, uuid.New().String(), domain.RoleReceiptLogger)
			})

			It("returns ErrUnauthorizedAccess", func() {
				Expect(err).To(MatchError(domain.ErrUnauthorizedAccess))
			})
		})

		When("the receipt does not exist", func() {
			JustBeforeEach(func() {
				result, err = service.Confirm(ctx, uuid.New().String(), req, userID, domain.RoleReceiptLogger)
			})

			It("returns ErrReceiptNotFound", func() {
				Expect(err).To(MatchError(domain.ErrReceiptNotFound))
			})
		})

		When("the mirror update fails", func() {
			BeforeEach(func() {
				mirrorStore.updateErr = errors.New("mirror unavailable")
			})

			It("still confirms; the relational store is authoritative", func() {
				Expect(err).NotTo(HaveOccurred())
				stored, _ := repo.GetReceiptByID(ctx, receiptID)
				Expect(stored.Status).To(Equal(entities.ReceiptStatusConfirmed))
				Expect(repo.transactionCount()).To(Equal(1))
			})
		})

		When("several confirms race on the same receipt", func() {
			It("lets exactly one through", func() {
				// The JustBeforeEach confirm above is one contender.
				var wg sync.WaitGroup
				successes := 1
				if err != nil {
					successes = 0
				}

				var mu sync.Mutex
				for i := 0; i < 7; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						defer GinkgoRecover()
						_, raceErr := service.Confirm(ctx, receiptID, req, userID, domain.RoleReceiptLogger)
						mu.Lock()
						defer mu.Unlock()
						if raceErr == nil {
							successes++
						} else {
							Expect(raceErr).To(MatchError(domain.ErrInvalidStateTransition))
						}
					}()
				}
				wg.Wait()

				Expect(successes).To(Equal(1))
				Expect(repo.transactionCount()).To(Equal(1))
			})
		})
	})

	Describe("Reject", func() {
		var (
			req domain.RejectReceiptRequest
			err error
		)

		BeforeEach(func() {
			req = domain.RejectReceiptRequest{Reason: "amount does not match the image"}
		})

		JustBeforeEach(func() {
			err = service.Reject(ctx, receiptID, req, userID, domain.RoleReceiptLogger)
		})

		When("a reason is given", func() {
			It("moves the receipt to REJECTED and records the reason", func() {
				Expect(err).NotTo(HaveOccurred())
				stored, _ := repo.GetReceiptByID(ctx, receiptID)
				Expect(stored.Status).To(Equal(entities.ReceiptStatusRejected))
				Expect(stored.RejectReason).To(Equal("amount does not match the image"))
			})

			It("propagates the rejection to the mirror", func() {
				Expect(err).NotTo(HaveOccurred())
				Eventually(func() string {
					return mirrorStore.document(receiptID).Status
				}).Should(Equal(entities.ReceiptStatusRejected))
			})
		})

		When("the reason is blank", func() {
			BeforeEach(func() {
				req.Reason = "  "
			})

			It("returns ErrRejectReasonRequired", func() {
				Expect(err).To(MatchError(domain.ErrRejectReasonRequired))
			})
		})

		When("the receipt is already confirmed", func() {
			BeforeEach(func() {
				repo.receipts[receiptID].Status = entities.ReceiptStatusConfirmed
			})

			It("returns ErrInvalidStateTransition", func() {
				Expect(err).To(MatchError(domain.ErrInvalidStateTransition))
			})
		})
	})

	Describe("Cancel", func() {
		var err error

		JustBeforeEach(func() {
			err = service.Cancel(ctx, receiptID, userID, domain.RoleReceiptLogger)
		})

		When("the receipt is pending", func() {
			It("moves it to CANCELLED", func() {
				Expect(err).NotTo(HaveOccurred())
				stored, _ := repo.GetReceiptByID(ctx, receiptID)
				Expect(stored.Status).To(Equal(entities.ReceiptStatusCancelled))
			})
		})

		When("the receipt was already cancelled", func() {
			BeforeEach(func() {
				repo.receipts[receiptID].Status = entities.ReceiptStatusCancelled
			})

			It("returns ErrInvalidStateTransition", func() {
				Expect(err).To(MatchError(domain.ErrInvalidStateTransition))
			})
		})
	})
})
