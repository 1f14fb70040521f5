package audit

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/entities"
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuditService(t *testing.T) {
	log.SetOutput(io.Discard)

	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Suite")
}

type fakeAuditRepository struct {
	logs      []*entities.AuditLog
	createErr error
}

func (f *fakeAuditRepository) CreateAuditLog(ctx context.Context, auditLog *entities.AuditLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.logs = append(f.logs, auditLog)
	return nil
}

func (f *fakeAuditRepository) GetResourceHistory(ctx context.Context, resourceType, resourceID string) ([]*entities.AuditLog, error) {
	var result []*entities.AuditLog
	for _, l := range f.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeAuditRepository) GetUserActivity(ctx context.Context, userID string, page, limit int) ([]*entities.AuditLog, int64, error) {
	var result []*entities.AuditLog
	for _, l := range f.logs {
		if l.UserID != nil && l.UserID.String() == userID {
			result = append(result, l)
		}
	}
	return result, int64(len(result)), nil
}

var _ = Describe("AuditService", func() {
	var (
		repo    *fakeAuditRepository
		service AuditService
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = &fakeAuditRepository{}
		service = NewAuditService(repo)
		ctx = context.Background()
	})

	Describe("LogAction", func() {
		It("records the entry with parsed user id and marshaled metadata", func() {
			userID := uuid.New().String()
			service.LogAction(ctx, domain.AuditEntry{
				UserID:       userID,
				UserRole:     domain.RoleReceiptLogger,
				Action:       domain.AuditActionConfirmReceipt,
				ResourceType: domain.AuditResourceReceipt,
				ResourceID:   "r-1",
				Success:      true,
				Metadata:     map[string]interface{}{"base_amount": 9.00},
			})

			Expect(repo.logs).To(HaveLen(1))
			Expect(repo.logs[0].UserID).NotTo(BeNil())
			Expect(repo.logs[0].UserID.String()).To(Equal(userID))
			Expect(string(repo.logs[0].Metadata)).To(ContainSubstring("base_amount"))
		})

		It("drops an unparseable user id rather than failing", func() {
			service.LogAction(ctx, domain.AuditEntry{
				UserID:     "not-a-uuid",
				Action:     domain.AuditActionUploadReceipt,
				ResourceID: "r-1",
			})

			Expect(repo.logs).To(HaveLen(1))
			Expect(repo.logs[0].UserID).To(BeNil())
		})

		It("swallows repository failures", func() {
			repo.createErr = errors.New("connection refused")

			Expect(func() {
				service.LogAction(ctx, domain.AuditEntry{
					Action:     domain.AuditActionUploadReceipt,
					ResourceID: "r-1",
				})
			}).NotTo(Panic())
			Expect(repo.logs).To(BeEmpty())
		})
	})

	Describe("GetResourceHistory", func() {
		It("returns only entries for the requested resource", func() {
			service.LogAction(ctx, domain.AuditEntry{
				Action:       domain.AuditActionUploadReceipt,
				ResourceType: domain.AuditResourceReceipt,
				ResourceID:   "r-1",
				Success:      true,
			})
			service.LogAction(ctx, domain.AuditEntry{
				Action:       domain.AuditActionRejectReceipt,
				ResourceType: domain.AuditResourceReceipt,
				ResourceID:   "r-2",
				Success:      true,
			})

			history, err := service.GetResourceHistory(ctx, domain.AuditResourceReceipt, "r-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(1))
			Expect(history[0].Action).To(Equal(domain.AuditActionUploadReceipt))
		})
	})

	Describe("GetUserActivity", func() {
		It("returns the user's entries with a total count", func() {
			userID := uuid.New().String()
			service.LogAction(ctx, domain.AuditEntry{
				UserID:     userID,
				Action:     domain.AuditActionUploadReceipt,
				ResourceID: "r-1",
			})
			service.LogAction(ctx, domain.AuditEntry{
				UserID:     uuid.New().String(),
				Action:     domain.AuditActionUploadReceipt,
				ResourceID: "r-2",
			})

			activity, count, err := service.GetUserActivity(ctx, userID, 1, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(activity).To(HaveLen(1))
			Expect(count).To(Equal(int64(1)))
			Expect(activity[0].UserID).To(Equal(userID))
		})
	})
})
