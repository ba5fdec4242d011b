package services_test

import (
	"context"
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/tariff"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTariffCalculator(t *testing.T, thb string) (*services.TariffCalculator, *rateProviderMock) {
	t.Helper()
	rates := &rateProviderMock{}
	rates.On("GetRate", mock.Anything, kernel.THB, mock.Anything).Return(rate(t, kernel.THB, thb))
	return services.NewTariffCalculator(services.DefaultPolicy(), tariff.DefaultSchedule(), rates), rates
}

func assertTotals(t *testing.T, calc tariff.Calculation) {
	t.Helper()
	assert.True(t, calc.CifValue.Equal(calc.KrwValue.Add(calc.TariffAmount)), "cif")
	assert.True(t, calc.TotalTax.Equal(calc.TariffAmount.Add(calc.SpecialTaxAmount).Add(calc.VatAmount)), "total tax")
	assert.True(t, calc.TotalAmount.Equal(calc.KrwValue.Add(calc.TotalTax)), "total amount")
}

func TestTariffCalculator_Calculate(t *testing.T) {
	ctx := context.Background()

	t.Run("clothing at 38.75", func(t *testing.T) {
		calc, rates := newTariffCalculator(t, "38.75")

		result, err := calc.Calculate(ctx, "6109", decimal.NewFromInt(1000), 1, kernel.THB)

		require.NoError(t, err)
		assert.Equal(t, "6109", result.HSCode)
		assert.True(t, d("1000").Equal(result.TotalValue))
		assert.True(t, d("38750").Equal(result.KrwValue))
		assert.True(t, d("13").Equal(result.TariffRate))
		assert.True(t, d("5038").Equal(result.TariffAmount))
		assert.True(t, d("43788").Equal(result.CifValue))
		assert.True(t, result.SpecialTaxAmount.IsZero())
		assert.True(t, d("4379").Equal(result.VatAmount))
		assert.True(t, d("9417").Equal(result.TotalTax))
		assert.True(t, d("48167").Equal(result.TotalAmount))
		assert.True(t, result.DutyFreeEligible)
		assert.True(t, result.SmallAmountExemption)
		assert.NotEmpty(t, result.DutyFreeMessage)
		assertTotals(t, result)
		rates.AssertExpectations(t)
	})

	t.Run("cosmetics carry special tax", func(t *testing.T) {
		calc, _ := newTariffCalculator(t, "38.75")

		result, err := calc.Calculate(ctx, "3304.99", decimal.NewFromInt(1000), 1, kernel.THB)

		require.NoError(t, err)
		assert.Equal(t, "330499", result.HSCode)
		assert.True(t, d("8").Equal(result.TariffRate))
		assert.True(t, d("3100").Equal(result.TariffAmount))
		assert.True(t, d("41850").Equal(result.CifValue))
		assert.True(t, d("7").Equal(result.SpecialTaxRate))
		assert.True(t, d("2930").Equal(result.SpecialTaxAmount))
		assert.True(t, d("4478").Equal(result.VatAmount))
		assert.True(t, d("10508").Equal(result.TotalTax))
		assert.True(t, d("49258").Equal(result.TotalAmount))
		assertTotals(t, result)
	})

	t.Run("books are duty free but still pay VAT", func(t *testing.T) {
		calc, _ := newTariffCalculator(t, "40")

		result, err := calc.Calculate(ctx, "4901", decimal.NewFromInt(100), 2, kernel.THB)

		require.NoError(t, err)
		assert.True(t, d("8000").Equal(result.KrwValue))
		assert.True(t, result.TariffAmount.IsZero())
		assert.True(t, d("800").Equal(result.VatAmount))
		assertTotals(t, result)
	})

	t.Run("unknown and empty HS codes use the default rate", func(t *testing.T) {
		calc, _ := newTariffCalculator(t, "40")

		for _, hs := range []string{"9999", "", "abc"} {
			result, err := calc.Calculate(ctx, hs, decimal.NewFromInt(100), 1, kernel.THB)

			require.NoError(t, err, hs)
			assert.True(t, d("8").Equal(result.TariffRate), hs)
			assert.True(t, d("320").Equal(result.TariffAmount), hs)
		}
	})

	t.Run("zero price yields zero taxes", func(t *testing.T) {
		calc, _ := newTariffCalculator(t, "40")

		result, err := calc.Calculate(ctx, "6109", decimal.Zero, 3, kernel.THB)

		require.NoError(t, err)
		assert.True(t, result.TotalTax.IsZero())
		assert.True(t, result.TotalAmount.IsZero())
	})

	t.Run("value over duty-free limit is not eligible", func(t *testing.T) {
		calc, _ := newTariffCalculator(t, "38.75")

		result, err := calc.Calculate(ctx, "6109", decimal.NewFromInt(20000), 1, kernel.THB)

		require.NoError(t, err)
		assert.True(t, d("775000").Equal(result.KrwValue))
		assert.False(t, result.DutyFreeEligible)
		assert.False(t, result.SmallAmountExemption)
		assert.True(t, result.TotalTax.IsPositive())
	})

	t.Run("value between limits is duty free only", func(t *testing.T) {
		calc, _ := newTariffCalculator(t, "38.75")

		result, err := calc.Calculate(ctx, "6109", decimal.NewFromInt(10000), 1, kernel.THB)

		require.NoError(t, err)
		assert.True(t, result.DutyFreeEligible)
		assert.False(t, result.SmallAmountExemption)
	})

	t.Run("rejects negative price and non-positive quantity", func(t *testing.T) {
		rates := &rateProviderMock{}
		calc := services.NewTariffCalculator(services.DefaultPolicy(), tariff.DefaultSchedule(), rates)

		_, err := calc.Calculate(ctx, "6109", decimal.NewFromInt(-1), 0, kernel.THB)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "unitPrice")
		assert.Contains(t, err.Error(), "quantity")
		rates.AssertNotCalled(t, "GetRate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTariffCalculator_CalculateOrder(t *testing.T) {
	calc, rates := newTariffCalculator(t, "38.75")
	o := newOrder(t, "M", []order.Item{
		item(t, "6109", 1, "1000", order.Dimensions{}),
		item(t, "3304", 0, "500", order.Dimensions{}),
		item(t, "3304", 1, "1000", order.Dimensions{}),
	}, nil)

	result, err := calc.CalculateOrder(context.Background(), o)

	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	assert.True(t, d("77500").Equal(result.TotalKrwValue))
	assert.True(t, d("19925").Equal(result.TotalTax))
	assert.True(t, d("97425").Equal(result.TotalAmount))
	rates.AssertNumberOfCalls(t, "GetRate", 1)
}
