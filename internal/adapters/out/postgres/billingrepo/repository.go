package billingrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBillingRepository implements ports.BillingRepository using GORM.
type GormBillingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBillingRepository creates a new GORM billing repository.
func NewGormBillingRepository(db *gorm.DB, tracker aggregateTracker) *GormBillingRepository {
	return &GormBillingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new billing. The unique index on order_id rejects a second
// billing for the same order even when two requests race past the handler's
// existence check.
func (r *GormBillingRepository) Add(ctx context.Context, aggregate *billing.Billing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewIllegalStateTransitionErrorWithCause("order", "BILLED", "create billing for", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes status, payment and finalization fields if the stored
// version still matches the aggregate's, then bumps both versions.
// The snapshot columns are never rewritten.
func (r *GormBillingRepository) Update(ctx context.Context, aggregate *billing.Billing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	columns := []string{"status", "payment_status", "finalized_at", "version"}
	if dto.Payment != nil {
		columns = append(columns, "payment_method", "payment_reference", "payment_depositor_name", "payment_paid_at")
	}

	result := r.db.WithContext(ctx).
		Model(&BillingDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select(columns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&BillingDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("billing", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidErrorWithCause("billing " + aggregate.ID().String())
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a billing by ID.
func (r *GormBillingRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Billing, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BillingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("billing", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the billing issued for an order.
func (r *GormBillingRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*billing.Billing, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto BillingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("billing of order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListPendingByAccount returns the unpaid billings of an account, oldest first.
func (r *GormBillingRepository) ListPendingByAccount(ctx context.Context, accountID kernel.UUID) ([]*billing.Billing, error) {
	if err := accountID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BillingDTO
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND payment_status = ?", accountID.Bytes(), billing.Pending.String()).
		Order("issued_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	billings := make([]*billing.Billing, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		billings = append(billings, b)
	}

	return billings, nil
}
