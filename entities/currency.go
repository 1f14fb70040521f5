package entities

import (
	"time"
)

// Currency is one entry in the supported-currency catalog.
type Currency struct {
	Code     string `gorm:"type:varchar(3);primary_key" json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	IsActive bool   `json:"is_active"`

	Timestamp
}

// ExchangeRate is one timestamped rate snapshot for a currency, relative to
// the base currency. The external rate feed appends rows; the normalizer
// only ever reads the latest row per currency.
type ExchangeRate struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	CurrencyCode string    `gorm:"type:varchar(3);index" json:"currency_code"`
	RateToBase   float64   `gorm:"type:numeric(20,10)" json:"rate_to_base"`
	RateFromBase float64   `gorm:"type:numeric(20,10)" json:"rate_from_base"`
	Timestamp    time.Time `gorm:"index" json:"timestamp"`
	Source       string    `json:"source,omitempty"`
}
