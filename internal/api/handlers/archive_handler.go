package handlers

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/internal/api/presenters"
	"Receipt-Ledger-Backend/pkg/archive"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ArchiveHandler interface {
		ArchiveReceipt(c *fiber.Ctx) error
		UnarchiveReceipt(c *fiber.Ctx) error
		BulkArchive(c *fiber.Ctx) error
		ListReceipts(c *fiber.Ctx) error
	}

	archiveHandler struct {
		archiveService archive.ArchiveService
		validator      *validator.Validate
	}
)

func NewArchiveHandler(archiveService archive.ArchiveService, validator *validator.Validate) ArchiveHandler {
	return &archiveHandler{
		archiveService: archiveService,
		validator:      validator,
	}
}

func (h *archiveHandler) ArchiveReceipt(c *fiber.Ctx) error {
	receiptID := c.Params("id")
	req := new(domain.ArchiveReceiptRequest)

	// Body is optional; archiving defaults to a user_requested reason.
	_ = c.BodyParser(req)

	if err := h.archiveService.Archive(c.Context(), receiptID, req.Reason); err != nil {
		return presenters.ErrorResponse(c, archiveErrorStatus(err), domain.MessageFailedArchiveReceipt, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessArchiveReceipt)
}

func (h *archiveHandler) UnarchiveReceipt(c *fiber.Ctx) error {
	receiptID := c.Params("id")

	if err := h.archiveService.Unarchive(c.Context(), receiptID); err != nil {
		return presenters.ErrorResponse(c, archiveErrorStatus(err), domain.MessageFailedUnarchiveReceipt, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnarchiveReceipt)
}

func (h *archiveHandler) BulkArchive(c *fiber.Ctx) error {
	req := new(domain.BulkArchiveRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBulkArchive, err)
	}

	count, err := h.archiveService.BulkArchiveOlderThan(c.Context(), req.Days)
	if err != nil {
		return presenters.ErrorResponse(c, archiveErrorStatus(err), domain.MessageFailedBulkArchive, err)
	}

	return presenters.SuccessResponse(c, domain.BulkArchiveResponse{ArchivedCount: count}, fiber.StatusOK, domain.MessageSuccessBulkArchive)
}

func (h *archiveHandler) ListReceipts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	includeArchived := c.QueryBool("include_archived", false)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	documents, err := h.archiveService.ListReceipts(c.Context(), userID, includeArchived, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchReceipts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"receipts": documents,
		"count":    len(documents),
	}, fiber.StatusOK, domain.MessageSuccessSearchReceipts)
}

func archiveErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyArchived), errors.Is(err, domain.ErrNotArchived):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrRetentionPeriodTooShort):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadRequest
	}
}
