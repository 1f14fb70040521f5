package handlers

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/internal/api/presenters"
	"Receipt-Ledger-Backend/pkg/audit"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	AuditHandler interface {
		GetResourceHistory(c *fiber.Ctx) error
		GetUserActivity(c *fiber.Ctx) error
	}

	auditHandler struct {
		auditService audit.AuditService
	}
)

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandler{
		auditService: auditService,
	}
}

func (h *auditHandler) GetResourceHistory(c *fiber.Ctx) error {
	resourceID := c.Params("id")

	logs, err := h.auditService.GetResourceHistory(c.Context(), domain.AuditResourceReceipt, resourceID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAuditLogs, err)
	}

	return presenters.SuccessResponse(c, logs, fiber.StatusOK, domain.MessageSuccessGetAuditLogs)
}

func (h *auditHandler) GetUserActivity(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	logs, total, err := h.auditService.GetUserActivity(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAuditLogs, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"logs": logs,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	}, fiber.StatusOK, domain.MessageSuccessGetAuditLogs)
}
