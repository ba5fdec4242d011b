package tariff

import "github.com/shopspring/decimal"

// Schedule combines the duty and special-tax tables into classifications.
//
// The duty table is the single source of truth for duty rates: Classify puts
// the resolved duty rate in BasicRate and leaves WTORate at zero, so
// AppliedRate always equals the table rate.
type Schedule struct {
	duty    RateTable
	special RateTable
}

func NewSchedule(duty, special RateTable) Schedule {
	return Schedule{duty: duty, special: special}
}

// DefaultSchedule uses DefaultDutyTable and DefaultSpecialTaxTable.
func DefaultSchedule() Schedule {
	return NewSchedule(DefaultDutyTable(), DefaultSpecialTaxTable())
}

// Classify never fails: table rates are non-negative by construction.
func (s Schedule) Classify(hsCode string) Classification {
	return Classification{
		hsCode:      NormalizeHSCode(hsCode),
		basicRate:   s.duty.DutyRate(hsCode),
		wtoRate:     decimal.Zero,
		specialRate: s.special.ExactRate(hsCode),
	}
}
