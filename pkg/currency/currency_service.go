package currency

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/entities"
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
)

// BaseCurrency is the single currency every transaction is normalized to.
const BaseCurrency = "USD"

// RateRefreshInterval matches the external feed's cadence. A rate older than
// this is stale but still usable; staleness is a quality signal, not a
// failure.
const RateRefreshInterval = 12 * time.Hour

type (
	CurrencyService interface {
		Convert(ctx context.Context, amount float64, fromCurrency, toCurrency string) (*domain.ConvertCurrencyResponse, error)
		GetCurrencies(ctx context.Context) ([]*domain.CurrencyResponse, error)
		GetLatestRates(ctx context.Context) ([]*domain.ExchangeRateResponse, error)
		SaveRateSnapshot(ctx context.Context, req domain.SaveRateSnapshotRequest) error
		IsSupported(ctx context.Context, code string) (bool, error)
	}

	currencyService struct {
		currencyRepository CurrencyRepository
	}
)

func NewCurrencyService(currencyRepository CurrencyRepository) CurrencyService {
	return &currencyService{currencyRepository: currencyRepository}
}

func (s *currencyService) IsSupported(ctx context.Context, code string) (bool, error) {
	currency, err := s.currencyRepository.GetCurrencyByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return currency.IsActive, nil
}

// Convert converts amount between currencies through the base currency using
// the latest committed rate snapshots. Read-only; safe to run concurrently
// with the external rate refresh.
func (s *currencyService) Convert(ctx context.Context, amount float64, fromCurrency, toCurrency string) (*domain.ConvertCurrencyResponse, error) {
	fromCurrency = strings.ToUpper(fromCurrency)
	toCurrency = strings.ToUpper(toCurrency)

	for _, code := range []string{fromCurrency, toCurrency} {
		supported, err := s.IsSupported(ctx, code)
		if err != nil {
			return nil, err
		}
		if !supported {
			return nil, domain.ErrCurrencyNotSupported
		}
	}

	if fromCurrency == toCurrency {
		return &domain.ConvertCurrencyResponse{
			OriginalAmount:  amount,
			ConvertedAmount: amount,
			FromCurrency:    fromCurrency,
			ToCurrency:      toCurrency,
			RateUsed:        1,
			RateTimestamp:   time.Now().UTC(),
		}, nil
	}

	fromRate, err := s.latestRate(ctx, fromCurrency)
	if err != nil {
		return nil, err
	}
	toRate, err := s.latestRate(ctx, toCurrency)
	if err != nil {
		return nil, err
	}

	amountInBase := amount * fromRate.RateToBase
	converted := amountInBase * toRate.RateFromBase
	rateUsed := fromRate.RateToBase * toRate.RateFromBase

	// The effective rate timestamp is the older of the two snapshots.
	rateTimestamp := fromRate.Timestamp
	if toRate.Timestamp.Before(rateTimestamp) {
		rateTimestamp = toRate.Timestamp
	}

	return &domain.ConvertCurrencyResponse{
		OriginalAmount:  amount,
		ConvertedAmount: roundTo(converted, 2),
		FromCurrency:    fromCurrency,
		ToCurrency:      toCurrency,
		RateUsed:        roundTo(rateUsed, 6),
		RateTimestamp:   rateTimestamp,
	}, nil
}

func (s *currencyService) latestRate(ctx context.Context, code string) (*entities.ExchangeRate, error) {
	rate, err := s.currencyRepository.GetLatestRate(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRateUnavailable
		}
		return nil, err
	}
	return rate, nil
}

func (s *currencyService) GetCurrencies(ctx context.Context) ([]*domain.CurrencyResponse, error) {
	currencies, err := s.currencyRepository.GetCurrencies(ctx, true)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CurrencyResponse, 0, len(currencies))
	for _, currency := range currencies {
		result = append(result, &domain.CurrencyResponse{
			Code:     currency.Code,
			Name:     currency.Name,
			Symbol:   currency.Symbol,
			IsActive: currency.IsActive,
		})
	}
	return result, nil
}

func (s *currencyService) GetLatestRates(ctx context.Context) ([]*domain.ExchangeRateResponse, error) {
	currencies, err := s.currencyRepository.GetCurrencies(ctx, true)
	if err != nil {
		return nil, err
	}

	var result []*domain.ExchangeRateResponse
	for _, currency := range currencies {
		rate, err := s.currencyRepository.GetLatestRate(ctx, currency.Code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, &domain.ExchangeRateResponse{
			CurrencyCode: rate.CurrencyCode,
			RateToBase:   rate.RateToBase,
			RateFromBase: rate.RateFromBase,
			Timestamp:    rate.Timestamp,
			Source:       rate.Source,
			Stale:        IsRateStale(rate.Timestamp),
		})
	}
	return result, nil
}

func (s *currencyService) SaveRateSnapshot(ctx context.Context, req domain.SaveRateSnapshotRequest) error {
	code := strings.ToUpper(req.CurrencyCode)
	supported, err := s.IsSupported(ctx, code)
	if err != nil {
		return err
	}
	if !supported {
		return domain.ErrCurrencyNotSupported
	}
	if req.RateToBase <= 0 || req.RateFromBase <= 0 {
		return domain.ErrInvalidRateSnapshot
	}

	return s.currencyRepository.SaveRateSnapshot(ctx, &entities.ExchangeRate{
		CurrencyCode: code,
		RateToBase:   req.RateToBase,
		RateFromBase: req.RateFromBase,
		Timestamp:    time.Now().UTC(),
		Source:       req.Source,
	})
}

func IsRateStale(timestamp time.Time) bool {
	return time.Since(timestamp) > RateRefreshInterval
}

// roundTo rounds half away from zero, which is half-up for the positive
// amounts this pipeline deals in.
func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
