package tariff

import (
	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Calculation keeps every stage of a duty computation for one item line, in
// pipeline order. Stages are stored, never recomputed downstream:
//
//	TotalValue -> KrwValue -> TariffAmount -> CifValue -> SpecialTaxAmount
//	-> VatAmount -> TotalTax -> TotalAmount
//
// Amounts from KrwValue on are whole KRW. The exemption fields are advisory:
// an eligible item still carries its computed taxes.
type Calculation struct {
	HSCode         string
	Currency       kernel.Currency
	UnitPrice      decimal.Decimal
	Quantity       int64
	Classification Classification

	TotalValue   decimal.Decimal
	ExchangeRate exchange.Rate
	KrwValue     decimal.Decimal

	TariffRate   decimal.Decimal
	TariffAmount decimal.Decimal
	CifValue     decimal.Decimal

	SpecialTaxRate   decimal.Decimal
	SpecialTaxAmount decimal.Decimal

	VatRate   decimal.Decimal
	VatAmount decimal.Decimal

	TotalTax    decimal.Decimal
	TotalAmount decimal.Decimal

	DutyFreeEligible     bool
	SmallAmountExemption bool
	DutyFreeMessage      string
}

// OrderCalculation aggregates the per-item calculations of one order.
type OrderCalculation struct {
	Lines         []Calculation
	TotalKrwValue decimal.Decimal
	TotalTax      decimal.Decimal
	TotalAmount   decimal.Decimal
}

// NewOrderCalculation sums the KRW stages of lines.
func NewOrderCalculation(lines []Calculation) OrderCalculation {
	result := OrderCalculation{
		Lines:         lines,
		TotalKrwValue: decimal.Zero,
		TotalTax:      decimal.Zero,
		TotalAmount:   decimal.Zero,
	}
	for _, line := range lines {
		result.TotalKrwValue = result.TotalKrwValue.Add(line.KrwValue)
		result.TotalTax = result.TotalTax.Add(line.TotalTax)
		result.TotalAmount = result.TotalAmount.Add(line.TotalAmount)
	}
	return result
}
