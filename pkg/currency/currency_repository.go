package currency

import (
	"Receipt-Ledger-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	CurrencyRepository interface {
		GetCurrencies(ctx context.Context, activeOnly bool) ([]*entities.Currency, error)
		GetCurrencyByCode(ctx context.Context, code string) (*entities.Currency, error)
		GetLatestRate(ctx context.Context, currencyCode string) (*entities.ExchangeRate, error)
		SaveRateSnapshot(ctx context.Context, rate *entities.ExchangeRate) error
		SeedCurrencies(ctx context.Context, currencies []*entities.Currency) error
	}

	currencyRepository struct {
		db *gorm.DB
	}
)

func NewCurrencyRepository(db *gorm.DB) CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) GetCurrencies(ctx context.Context, activeOnly bool) ([]*entities.Currency, error) {
	var currencies []*entities.Currency
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("code asc").Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}

func (r *currencyRepository) GetCurrencyByCode(ctx context.Context, code string) (*entities.Currency, error) {
	var currency entities.Currency
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&currency).Error; err != nil {
		return nil, err
	}
	return &currency, nil
}

func (r *currencyRepository) GetLatestRate(ctx context.Context, currencyCode string) (*entities.ExchangeRate, error) {
	var rate entities.ExchangeRate
	if err := r.db.WithContext(ctx).
		Where("currency_code = ?", currencyCode).
		Order("timestamp DESC").
		First(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *currencyRepository) SaveRateSnapshot(ctx context.Context, rate *entities.ExchangeRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *currencyRepository) SeedCurrencies(ctx context.Context, currencies []*entities.Currency) error {
	for _, currency := range currencies {
		var existing entities.Currency
		err := r.db.WithContext(ctx).Where("code = ?", currency.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := r.db.WithContext(ctx).Create(currency).Error; err != nil {
			return err
		}
	}
	return nil
}
