package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPendingBillingsQueryIsNotConstructed = errors.New(
	"GetPendingBillingsQuery must be created via NewGetPendingBillingsQuery constructor",
)

// GetPendingBillingsQuery lists the billings an account still has to pay.
//
// Example:
//
//	query, err := NewGetPendingBillingsQuery(accountID)
//	if err != nil {
//	    return err
//	}
//	pending, err := handler.Handle(ctx, query)
//	for _, b := range pending {
//	    fmt.Printf("%s: %s KRW\n", b.ID, b.TotalKrw)
//	}
type GetPendingBillingsQuery struct {
	accountID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPendingBillingsQuery(accountID kernel.UUID) (GetPendingBillingsQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetPendingBillingsQuery{}, err
	}

	return GetPendingBillingsQuery{accountID: accountID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingBillingsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingBillingsQueryIsNotConstructed)
}

func (q GetPendingBillingsQuery) AccountID() kernel.UUID {
	return q.accountID
}

// GetPendingBillingsQueryResponse is the read model of one unpaid billing.
type GetPendingBillingsQueryResponse struct {
	ID       kernel.UUID
	OrderID  kernel.UUID
	Status   billing.Status
	TotalThb decimal.Decimal
	TotalKrw decimal.Decimal
	IssuedAt time.Time
}
