package billing

import (
	"errors"
	"fmt"
	"slices"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrSnapshotIsNotConstructed is returned when a zero-value Snapshot is validated.
var ErrSnapshotIsNotConstructed = errors.New("Snapshot must be created via NewSnapshot")

// Snapshot is the computed content of a billing: fee lines in THB, the THB
// exchange rate in effect when it was computed and both totals.
//
// TotalKrw is derived from TotalThb with the embedded rate, so a snapshot is
// self-consistent even if the live rate moves afterwards.
type Snapshot struct {
	orderID      kernel.UUID
	feeLines     []FeeLine
	exchangeRate exchange.Rate
	totalThb     decimal.Decimal
	totalKrw     decimal.Decimal
}

// NewSnapshot computes fee lines and totals for orderID.
//
// Parameters:
//   - orderID: order being billed
//   - fees: fee amounts, none negative
//   - rate: current THB to KRW rate
//
// Returns:
//   - Snapshot with TotalThb = sum of lines (2 places) and
//     TotalKrw = TotalThb x rate (whole won, half-up)
//   - joined validation errors otherwise
func NewSnapshot(orderID kernel.UUID, fees FeeRequest, rate exchange.Rate) (Snapshot, error) {
	if err := errors.Join(orderID.Validate(), fees.Validate(), validateThbRate(rate)); err != nil {
		return Snapshot{}, err
	}

	lines := fees.Lines()
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.AmountThb)
	}
	total = kernel.THB.Round(total)

	return Snapshot{
		orderID:      orderID,
		feeLines:     lines,
		exchangeRate: rate,
		totalThb:     total,
		totalKrw:     rate.ToBase(total),
	}, nil
}

// RestoreSnapshot rebuilds a persisted snapshot without recomputing totals.
func RestoreSnapshot(
	orderID kernel.UUID,
	feeLines []FeeLine,
	rate exchange.Rate,
	totalThb, totalKrw decimal.Decimal,
) (Snapshot, error) {
	if err := errors.Join(orderID.Validate(), validateThbRate(rate)); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		orderID:      orderID,
		feeLines:     slices.Clone(feeLines),
		exchangeRate: rate,
		totalThb:     totalThb,
		totalKrw:     totalKrw,
	}, nil
}

func (s Snapshot) OrderID() kernel.UUID {
	return s.orderID
}

// FeeLines returns a copy of the fee lines in billing order.
func (s Snapshot) FeeLines() []FeeLine {
	return slices.Clone(s.feeLines)
}

func (s Snapshot) ExchangeRate() exchange.Rate {
	return s.exchangeRate
}

func (s Snapshot) TotalThb() decimal.Decimal {
	return s.totalThb
}

func (s Snapshot) TotalKrw() decimal.Decimal {
	return s.totalKrw
}

func (s Snapshot) Validate() error {
	if s.orderID.Validate() != nil || s.exchangeRate.Validate() != nil {
		return ErrSnapshotIsNotConstructed
	}
	return nil
}

func validateThbRate(rate exchange.Rate) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	if !rate.Currency().IsEqual(kernel.THB) {
		return errs.NewValueIsInvalidErrorWithCause(
			"exchange rate is invalid",
			fmt.Errorf("billing needs a THB rate, got %s", rate.Currency()),
		)
	}
	return nil
}
