package handlers

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/internal/api/presenters"
	"Receipt-Ledger-Backend/pkg/currency"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CurrencyHandler interface {
		GetCurrencies(c *fiber.Ctx) error
		GetLatestRates(c *fiber.Ctx) error
		ConvertCurrency(c *fiber.Ctx) error
		SaveRateSnapshot(c *fiber.Ctx) error
	}

	currencyHandler struct {
		currencyService currency.CurrencyService
		validator       *validator.Validate
	}
)

func NewCurrencyHandler(currencyService currency.CurrencyService, validator *validator.Validate) CurrencyHandler {
	return &currencyHandler{
		currencyService: currencyService,
		validator:       validator,
	}
}

func (h *currencyHandler) GetCurrencies(c *fiber.Ctx) error {
	currencies, err := h.currencyService.GetCurrencies(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCurrencies, err)
	}

	return presenters.SuccessResponse(c, currencies, fiber.StatusOK, domain.MessageSuccessGetCurrencies)
}

func (h *currencyHandler) GetLatestRates(c *fiber.Ctx) error {
	rates, err := h.currencyService.GetLatestRates(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRates, err)
	}

	return presenters.SuccessResponse(c, rates, fiber.StatusOK, domain.MessageSuccessGetRates)
}

func (h *currencyHandler) ConvertCurrency(c *fiber.Ctx) error {
	req := new(domain.ConvertCurrencyRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConvertCurrency, err)
	}

	res, err := h.currencyService.Convert(c.Context(), req.Amount, req.FromCurrency, req.ToCurrency)
	if err != nil {
		return presenters.ErrorResponse(c, currencyErrorStatus(err), domain.MessageFailedConvertCurrency, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConvertCurrency)
}

func (h *currencyHandler) SaveRateSnapshot(c *fiber.Ctx) error {
	req := new(domain.SaveRateSnapshotRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveRate, err)
	}

	if err := h.currencyService.SaveRateSnapshot(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, currencyErrorStatus(err), domain.MessageFailedSaveRate, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessSaveRate)
}

func currencyErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrCurrencyNotSupported):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRateUnavailable):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}
