// Package raterepo keeps the history of fetched exchange rates.
package raterepo

import (
	"time"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ExchangeRateDTO is one stored rate observation.
type ExchangeRateDTO struct {
	ID       uint            `gorm:"primaryKey;autoIncrement"`
	Currency string          `gorm:"type:char(3);not null;index:idx_exchange_rates_currency_as_of,priority:1"`
	Rate     decimal.Decimal `gorm:"type:numeric;not null"`
	AsOf     time.Time       `gorm:"not null;index:idx_exchange_rates_currency_as_of,priority:2"`
	Source   string          `gorm:"type:varchar(16);not null"`
}

// TableName specifies the database table name for rate history.
func (ExchangeRateDTO) TableName() string {
	return "exchange_rates"
}

func fromDomain(rate exchange.Rate) ExchangeRateDTO {
	return ExchangeRateDTO{
		Currency: rate.Currency().Code(),
		Rate:     rate.Rate(),
		AsOf:     rate.AsOf().UTC(),
		Source:   rate.Source().String(),
	}
}

func toDomain(dto ExchangeRateDTO) (exchange.Rate, error) {
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return exchange.Rate{}, err
	}

	source, err := exchange.ParseSource(dto.Source)
	if err != nil {
		return exchange.Rate{}, err
	}

	return exchange.NewRate(currency, dto.Rate, dto.AsOf.UTC(), source)
}
