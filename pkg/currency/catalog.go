package currency

import (
	"Receipt-Ledger-Backend/entities"
)

// Catalog is the supported-currency seed. Codes absent from this list are
// rejected at conversion time.
func Catalog() []*entities.Currency {
	seed := []struct {
		code, name, symbol string
	}{
		{"USD", "United States Dollar", "$"},
		{"EUR", "Euro", "€"},
		{"GBP", "British Pound Sterling", "£"},
		{"JPY", "Japanese Yen", "¥"},
		{"CNY", "Chinese Yuan", "¥"},
		{"PHP", "Philippine Peso", "₱"},
		{"CAD", "Canadian Dollar", "CA$"},
		{"AUD", "Australian Dollar", "A$"},
		{"CHF", "Swiss Franc", "CHF"},
		{"INR", "Indian Rupee", "₹"},
		{"KRW", "South Korean Won", "₩"},
		{"SGD", "Singapore Dollar", "S$"},
		{"HKD", "Hong Kong Dollar", "HK$"},
		{"MXN", "Mexican Peso", "MX$"},
		{"BRL", "Brazilian Real", "R$"},
		{"ZAR", "South African Rand", "R"},
		{"NZD", "New Zealand Dollar", "NZ$"},
		{"SEK", "Swedish Krona", "kr"},
		{"NOK", "Norwegian Krone", "kr"},
		{"DKK", "Danish Krone", "kr"},
		{"THB", "Thai Baht", "฿"},
		{"MYR", "Malaysian Ringgit", "RM"},
		{"IDR", "Indonesian Rupiah", "Rp"},
		{"VND", "Vietnamese Dong", "₫"},
	}

	currencies := make([]*entities.Currency, 0, len(seed))
	for _, c := range seed {
		currencies = append(currencies, &entities.Currency{
			Code:     c.code,
			Name:     c.name,
			Symbol:   c.symbol,
			IsActive: true,
		})
	}
	return currencies
}
