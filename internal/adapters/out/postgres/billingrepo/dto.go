// Package billingrepo persists billing aggregates. The snapshot is stored
// flat on the billing row: fee lines as JSON, the exchange rate and both
// totals as numeric columns.
package billingrepo

import (
	"time"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingDTO represents the database structure for persisting billings.
type BillingDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_billings_account_payment"`
	Status        string          `gorm:"type:varchar(16);not null"`
	PaymentStatus string          `gorm:"type:varchar(16);not null;index:idx_billings_account_payment"`
	FeeLines      []FeeLineDTO    `gorm:"type:jsonb;serializer:json;not null"`
	Rate          ExchangeRateDTO `gorm:"embedded;embeddedPrefix:rate_"`
	TotalThb      decimal.Decimal `gorm:"type:numeric;not null"`
	TotalKrw      decimal.Decimal `gorm:"type:numeric;not null"`
	Payment       *PaymentDTO     `gorm:"embedded;embeddedPrefix:payment_"`
	IssuedAt      time.Time       `gorm:"not null"`
	FinalizedAt   *time.Time
	Version       int64 `gorm:"not null"`
}

// TableName specifies the database table name for billing entities.
func (BillingDTO) TableName() string {
	return "billings"
}

// FeeLineDTO is the JSON form of one fee line.
type FeeLineDTO struct {
	Label     string          `json:"label"`
	AmountThb decimal.Decimal `json:"amountThb"`
}

// ExchangeRateDTO is the THB rate snapshotted with the billing.
type ExchangeRateDTO struct {
	Currency string          `gorm:"type:char(3);not null"`
	Value    decimal.Decimal `gorm:"type:numeric;not null"`
	AsOf     time.Time       `gorm:"not null"`
	Source   string          `gorm:"type:varchar(16);not null"`
}

// PaymentDTO holds the payment details once a payment is confirmed.
type PaymentDTO struct {
	Method        *string `gorm:"type:varchar(32)"`
	Reference     *string `gorm:"type:varchar(128)"`
	DepositorName *string `gorm:"type:varchar(128)"`
	PaidAt        *time.Time
}

func fromDomain(aggregate *billing.Billing) BillingDTO {
	snapshot := aggregate.Snapshot()
	rate := snapshot.ExchangeRate()

	lines := make([]FeeLineDTO, 0, len(snapshot.FeeLines()))
	for _, line := range snapshot.FeeLines() {
		lines = append(lines, FeeLineDTO{Label: line.Label, AmountThb: line.AmountThb})
	}

	dto := BillingDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       snapshot.OrderID().Bytes(),
		AccountID:     aggregate.AccountID().Bytes(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		FeeLines:      lines,
		Rate: ExchangeRateDTO{
			Currency: rate.Currency().Code(),
			Value:    rate.Rate(),
			AsOf:     rate.AsOf(),
			Source:   rate.Source().String(),
		},
		TotalThb:    snapshot.TotalThb(),
		TotalKrw:    snapshot.TotalKrw(),
		IssuedAt:    aggregate.IssuedAt(),
		FinalizedAt: aggregate.FinalizedAt(),
		Version:     aggregate.Version(),
	}

	if payment := aggregate.Payment(); payment != nil {
		method := payment.Method().String()
		reference := payment.Reference()
		depositor := payment.DepositorName()
		paidAt := payment.PaidAt()
		dto.Payment = &PaymentDTO{
			Method:        &method,
			Reference:     &reference,
			DepositorName: &depositor,
			PaidAt:        &paidAt,
		}
	}

	return dto
}

func toDomain(dto BillingDTO) (*billing.Billing, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}

	rate, err := rateToDomain(dto.Rate)
	if err != nil {
		return nil, err
	}

	lines := make([]billing.FeeLine, 0, len(dto.FeeLines))
	for _, line := range dto.FeeLines {
		lines = append(lines, billing.FeeLine{Label: line.Label, AmountThb: line.AmountThb})
	}

	snapshot, err := billing.RestoreSnapshot(orderID, lines, rate, dto.TotalThb, dto.TotalKrw)
	if err != nil {
		return nil, err
	}

	status, err := billing.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := billing.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	payment, err := paymentToDomain(dto.Payment)
	if err != nil {
		return nil, err
	}

	return billing.RestoreBilling(
		id,
		accountID,
		snapshot,
		status,
		paymentStatus,
		payment,
		dto.IssuedAt,
		dto.FinalizedAt,
		dto.Version,
	)
}

func rateToDomain(dto ExchangeRateDTO) (exchange.Rate, error) {
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return exchange.Rate{}, err
	}
	source, err := exchange.ParseSource(dto.Source)
	if err != nil {
		return exchange.Rate{}, err
	}
	return exchange.NewRate(currency, dto.Value, dto.AsOf, source)
}

func paymentToDomain(dto *PaymentDTO) (*billing.Payment, error) {
	if dto == nil || dto.Method == nil || dto.PaidAt == nil {
		return nil, nil
	}

	payment, err := billing.NewPayment(
		billing.PaymentMethod(*dto.Method),
		deref(dto.Reference),
		deref(dto.DepositorName),
		*dto.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
