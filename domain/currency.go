package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetCurrencies   = "currencies retrieved successfully"
	MessageSuccessGetRates        = "exchange rates retrieved successfully"
	MessageSuccessConvertCurrency = "currency converted successfully"
	MessageSuccessSaveRate        = "exchange rate snapshot saved successfully"

	MessageFailedGetCurrencies   = "failed to retrieve currencies"
	MessageFailedGetRates        = "failed to retrieve exchange rates"
	MessageFailedConvertCurrency = "failed to convert currency"
	MessageFailedSaveRate        = "failed to save exchange rate snapshot"

	ErrCurrencyNotSupported = errors.New("currency not supported")
	ErrRateUnavailable      = errors.New("exchange rate unavailable")
	ErrInvalidRateSnapshot  = errors.New("invalid exchange rate snapshot")
)

type (
	CurrencyResponse struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		IsActive bool   `json:"is_active"`
	}

	ExchangeRateResponse struct {
		CurrencyCode string    `json:"currency_code"`
		RateToBase   float64   `json:"rate_to_base"`
		RateFromBase float64   `json:"rate_from_base"`
		Timestamp    time.Time `json:"timestamp"`
		Source       string    `json:"source,omitempty"`
		Stale        bool      `json:"stale"`
	}

	ConvertCurrencyRequest struct {
		Amount       float64 `json:"amount" validate:"required,gt=0"`
		FromCurrency string  `json:"from_currency" validate:"required,len=3"`
		ToCurrency   string  `json:"to_currency" validate:"required,len=3"`
	}

	ConvertCurrencyResponse struct {
		OriginalAmount  float64   `json:"original_amount"`
		ConvertedAmount float64   `json:"converted_amount"`
		FromCurrency    string    `json:"from_currency"`
		ToCurrency      string    `json:"to_currency"`
		RateUsed        float64   `json:"rate_used"`
		RateTimestamp   time.Time `json:"rate_timestamp"`
	}

	// SaveRateSnapshotRequest is what the external rate feed posts after each
	// refresh cycle. Rates are relative to the base currency.
	SaveRateSnapshotRequest struct {
		CurrencyCode string  `json:"currency_code" validate:"required,len=3"`
		RateToBase   float64 `json:"rate_to_base" validate:"required,gt=0"`
		RateFromBase float64 `json:"rate_from_base" validate:"required,gt=0"`
		Source       string  `json:"source" validate:"omitempty"`
	}
)
