package services

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/tariff"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TariffCalculator computes customs duty, special excise tax and VAT for a
// declared line.
//
// Pipeline, in order, amounts in whole KRW from step 2 on (half-up):
//  1. totalValue = unitPrice x quantity, in the declared currency
//  2. krwValue = totalValue x rate(currency)
//  3. tariffAmount = krwValue x dutyRate / 100, dutyRate from the HS prefix table
//  4. cifValue = krwValue + tariffAmount
//  5. specialTaxAmount = cifValue x specialRate / 100, specialRate by 4-digit heading
//  6. vatAmount = (cifValue + specialTaxAmount) x vatRate / 100
//  7. totalTax = tariffAmount + specialTaxAmount + vatAmount
//  8. totalAmount = krwValue + totalTax
//  9. exemption flags against the duty-free and small-amount limits; advisory,
//     the taxes above are kept
//
// Soft data issues (unknown HS prefix, empty HS code, unavailable live rate)
// fall back to defaults. Only negative prices and non-positive quantities fail.
type TariffCalculator struct {
	policy   Policy
	schedule tariff.Schedule
	rates    RateProvider
}

func NewTariffCalculator(policy Policy, schedule tariff.Schedule, rates RateProvider) *TariffCalculator {
	return &TariffCalculator{policy: policy, schedule: schedule, rates: rates}
}

// Calculate resolves the current rate of currency and runs the pipeline.
//
// Example (rate THB 38.75):
//
//	calc.Calculate(ctx, "6109", decimal.NewFromInt(1000), 1, kernel.THB)
//	// KrwValue 38750, TariffAmount 5038, CifValue 43788, VatAmount 4379,
//	// TotalTax 9417, TotalAmount 48167
func (c *TariffCalculator) Calculate(
	ctx context.Context,
	hsCode string,
	unitPrice decimal.Decimal,
	quantity int64,
	currency kernel.Currency,
) (tariff.Calculation, error) {
	if err := validateLine(unitPrice, quantity, currency); err != nil {
		return tariff.Calculation{}, err
	}

	rate := c.rates.GetRate(ctx, currency, nil)
	return c.CalculateWithRate(hsCode, unitPrice, quantity, rate)
}

// CalculateWithRate runs the pipeline with a rate the caller already holds.
func (c *TariffCalculator) CalculateWithRate(
	hsCode string,
	unitPrice decimal.Decimal,
	quantity int64,
	rate exchange.Rate,
) (tariff.Calculation, error) {
	currency := rate.Currency()
	if err := errors.Join(validateLine(unitPrice, quantity, currency), rate.Validate()); err != nil {
		return tariff.Calculation{}, err
	}

	classification := c.schedule.Classify(hsCode)

	totalValue := unitPrice.Mul(decimal.NewFromInt(quantity))
	krwValue := rate.ToBase(totalValue)

	tariffRate := classification.AppliedRate()
	tariffAmount := percentOf(krwValue, tariffRate)
	cifValue := krwValue.Add(tariffAmount)

	specialRate := classification.SpecialRate()
	specialTaxAmount := decimal.Zero
	if specialRate.IsPositive() {
		specialTaxAmount = percentOf(cifValue, specialRate)
	}

	vatAmount := percentOf(cifValue.Add(specialTaxAmount), c.policy.VatRate)
	totalTax := tariffAmount.Add(specialTaxAmount).Add(vatAmount)

	calc := tariff.Calculation{
		HSCode:           classification.HSCode(),
		Currency:         currency,
		UnitPrice:        unitPrice,
		Quantity:         quantity,
		Classification:   classification,
		TotalValue:       currency.Round(totalValue),
		ExchangeRate:     rate,
		KrwValue:         krwValue,
		TariffRate:       tariffRate,
		TariffAmount:     tariffAmount,
		CifValue:         cifValue,
		SpecialTaxRate:   specialRate,
		SpecialTaxAmount: specialTaxAmount,
		VatRate:          c.policy.VatRate,
		VatAmount:        vatAmount,
		TotalTax:         totalTax,
		TotalAmount:      krwValue.Add(totalTax),
	}
	c.applyExemptions(&calc)

	return calc, nil
}

// CalculateOrder runs the pipeline for every item of o. Item prices are
// declared in THB; one rate is resolved for the whole order. Items with zero
// quantity are skipped.
func (c *TariffCalculator) CalculateOrder(ctx context.Context, o *order.Order) (tariff.OrderCalculation, error) {
	if err := o.Validate(); err != nil {
		return tariff.OrderCalculation{}, err
	}

	rate := c.rates.GetRate(ctx, kernel.THB, nil)

	lines := make([]tariff.Calculation, 0, len(o.Items()))
	for i, item := range o.Items() {
		if item.Quantity() == 0 {
			continue
		}
		calc, err := c.CalculateWithRate(item.HSCode(), item.UnitPrice(), item.Quantity(), rate)
		if err != nil {
			return tariff.OrderCalculation{}, fmt.Errorf("item %d: %w", i, err)
		}
		lines = append(lines, calc)
	}

	return tariff.NewOrderCalculation(lines), nil
}

func (c *TariffCalculator) applyExemptions(calc *tariff.Calculation) {
	if calc.KrwValue.GreaterThan(c.policy.DutyFreeLimitKrw) {
		calc.DutyFreeMessage = fmt.Sprintf("value %s KRW exceeds the duty-free limit of %s KRW, duties apply",
			calc.KrwValue, c.policy.DutyFreeLimitKrw)
		return
	}

	calc.DutyFreeEligible = true
	calc.DutyFreeMessage = fmt.Sprintf("value %s KRW is within the duty-free limit of %s KRW",
		calc.KrwValue, c.policy.DutyFreeLimitKrw)

	if !calc.KrwValue.GreaterThan(c.policy.SmallAmountExemptionKrw) {
		calc.SmallAmountExemption = true
		calc.DutyFreeMessage = fmt.Sprintf("value %s KRW is within the small-amount exemption limit of %s KRW",
			calc.KrwValue, c.policy.SmallAmountExemptionKrw)
	}
}

func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return kernel.KRW.Round(amount.Mul(pct).Div(hundred))
}

func validateLine(unitPrice decimal.Decimal, quantity int64, currency kernel.Currency) error {
	var priceErr, quantityErr error
	if unitPrice.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid", fmt.Errorf("%s is negative", unitPrice))
	}
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return errors.Join(priceErr, quantityErr, currency.Validate())
}
