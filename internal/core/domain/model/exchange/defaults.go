package exchange

import (
	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// defaultRates is the fallback table used when neither the cache nor the
// remote API can provide a rate. Values are KRW per unit.
var defaultRates = []struct {
	code string
	rate string
}{
	{"USD", "1100.00"},
	{"JPY", "8.50"},
	{"CNY", "160.00"},
	{"EUR", "1300.00"},
	{"THB", "32.00"},
	{"VND", "0.047"},
	{"SGD", "850.00"},
	{"HKD", "140.00"},
}

// DefaultRate returns the fallback rate for currency, if the table has one.
func DefaultRate(currency kernel.Currency) (decimal.Decimal, bool) {
	for _, row := range defaultRates {
		if row.code == currency.Code() {
			return decimal.RequireFromString(row.rate), true
		}
	}
	return decimal.Zero, false
}

// DefaultCurrencies lists the currencies of the fallback table in table order.
// These are the currencies refreshed by the scheduled job.
func DefaultCurrencies() []kernel.Currency {
	currencies := make([]kernel.Currency, 0, len(defaultRates))
	for _, row := range defaultRates {
		currencies = append(currencies, kernel.MustCurrency(row.code))
	}
	return currencies
}
