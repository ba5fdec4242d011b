package queries

import (
	"context"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPendingBillingsQueryHandler reads unpaid billings straight from the
// billings table, skipping aggregate reconstruction.
type GetPendingBillingsQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingBillingsQueryHandler(db *gorm.DB) GetPendingBillingsQueryHandler {
	return GetPendingBillingsQueryHandler{db: db}
}

// Handle returns Draft and Final billings whose payment is pending, oldest
// first. An account with none gets an empty, non-nil slice.
func (h GetPendingBillingsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingBillingsQuery,
) ([]GetPendingBillingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	billings := make([]GetPendingBillingsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			total_thb,
			total_krw,
			issued_at
		FROM billings
		WHERE account_id = ? AND payment_status = ?
		ORDER BY issued_at, id
	`, query.AccountID().Bytes(), billing.Pending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingBillingsQueryResponse
		var id, orderID uuid.UUID
		var status string
		var totalThb, totalKrw decimal.Decimal

		err = rows.Scan(
			&id,
			&orderID,
			&status,
			&totalThb,
			&totalKrw,
			&resp.IssuedAt,
		)
		if err != nil {
			return nil, err
		}

		billingID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = billingID

		billedOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = billedOrderID

		parsed, statusErr := billing.ParseStatus(status)
		if statusErr != nil {
			return nil, statusErr
		}
		resp.Status = parsed
		resp.TotalThb = totalThb
		resp.TotalKrw = totalKrw
		resp.IssuedAt = resp.IssuedAt.UTC()

		billings = append(billings, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return billings, nil
}
