package raterepo

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormExchangeRateRepository implements ports.ExchangeRateRepository using GORM.
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GORM rate history repository.
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// Save appends rate to the history. Rows are never updated.
func (r *GormExchangeRateRepository) Save(ctx context.Context, rate exchange.Rate) error {
	if err := rate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// FindLatest returns the newest rate of currency observed at or before asOf.
func (r *GormExchangeRateRepository) FindLatest(
	ctx context.Context,
	currency kernel.Currency,
	asOf time.Time,
) (exchange.Rate, error) {
	if err := currency.Validate(); err != nil {
		return exchange.Rate{}, err
	}

	var dto ExchangeRateDTO
	err := r.db.WithContext(ctx).
		Where("currency = ? AND as_of <= ?", currency.Code(), asOf.UTC()).
		Order("as_of DESC").
		Order("id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exchange.Rate{}, errs.NewObjectNotFoundError("exchange rate", currency.Code()+"@"+asOf.UTC().Format(time.RFC3339))
		}
		return exchange.Rate{}, err
	}

	return toDomain(dto)
}
