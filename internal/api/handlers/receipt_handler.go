package handlers

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/internal/api/presenters"
	"Receipt-Ledger-Backend/pkg/receipt"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReceiptHandler interface {
		UploadReceipt(c *fiber.Ctx) error
		GetReceipt(c *fiber.Ctx) error
		ConfirmReceipt(c *fiber.Ctx) error
		RejectReceipt(c *fiber.Ctx) error
		CancelReceipt(c *fiber.Ctx) error
		GetTransactions(c *fiber.Ctx) error
		SearchReceipts(c *fiber.Ctx) error
		GetReceiptStats(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) UploadReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadReceiptRequest)

	file, err := c.FormFile("receipt_image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.ReceiptImage = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	res, err := h.receiptService.UploadReceipt(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadReceipt)
}

func (h *receiptHandler) GetReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	receiptID := c.Params("id")

	res, err := h.receiptService.GetReceipt(c.Context(), receiptID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, receiptErrorStatus(err), domain.MessageFailedGetReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceipt)
}

func (h *receiptHandler) ConfirmReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	receiptID := c.Params("id")
	req := new(domain.ConfirmReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmReceipt, err)
	}

	res, err := h.receiptService.Confirm(c.Context(), receiptID, *req, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, receiptErrorStatus(err), domain.MessageFailedConfirmReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConfirmReceipt)
}

func (h *receiptHandler) RejectReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	receiptID := c.Params("id")
	req := new(domain.RejectReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRejectReceipt, err)
	}

	if err := h.receiptService.Reject(c.Context(), receiptID, *req, userID, role); err != nil {
		return presenters.ErrorResponse(c, receiptErrorStatus(err), domain.MessageFailedRejectReceipt, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRejectReceipt)
}

func (h *receiptHandler) CancelReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	receiptID := c.Params("id")

	if err := h.receiptService.Cancel(c.Context(), receiptID, userID, role); err != nil {
		return presenters.ErrorResponse(c, receiptErrorStatus(err), domain.MessageFailedCancelReceipt, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelReceipt)
}

func (h *receiptHandler) GetTransactions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	transactions, count, err := h.receiptService.GetTransactions(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTransactions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetTransactions)
}

func (h *receiptHandler) SearchReceipts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	query := c.Query("q")
	includeArchived := c.QueryBool("include_archived", false)

	documents, err := h.receiptService.SearchReceipts(c.Context(), query, userID, includeArchived)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchReceipts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"receipts": documents,
		"count":    len(documents),
	}, fiber.StatusOK, domain.MessageSuccessSearchReceipts)
}

func (h *receiptHandler) GetReceiptStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.receiptService.GetReceiptStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceiptStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetReceiptStats)
}

func receiptErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrReceiptNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorizedAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrCurrencyNotSupported), errors.Is(err, domain.ErrRateUnavailable):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}
