package http

import (
	"errors"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/tariff"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the body of the order intake endpoint. The order id
// is generated when omitted.
type CreateOrderRequest struct {
	ID               string        `json:"id" validate:"omitempty,uuid"`
	AccountID        string        `json:"accountId" validate:"required,uuid"`
	MemberCode       string        `json:"memberCode" validate:"max=64"`
	ShippingMethod   string        `json:"shippingMethod" validate:"required"`
	RecipientAddress string        `json:"recipientAddress" validate:"max=512"`
	Items            []ItemRequest `json:"items" validate:"required,min=1,dive"`
	Boxes            []BoxRequest  `json:"boxes" validate:"dive"`
}

type ItemRequest struct {
	HSCode    string          `json:"hsCode" validate:"max=16"`
	Quantity  int64           `json:"quantity" validate:"gte=0"`
	Weight    decimal.Decimal `json:"weight" validate:"gte=0"`
	Width     decimal.Decimal `json:"width" validate:"gte=0"`
	Height    decimal.Decimal `json:"height" validate:"gte=0"`
	Depth     decimal.Decimal `json:"depth" validate:"gte=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0"`
}

type BoxRequest struct {
	Width  decimal.Decimal `json:"width" validate:"gte=0"`
	Height decimal.Decimal `json:"height" validate:"gte=0"`
	Depth  decimal.Decimal `json:"depth" validate:"gte=0"`
}

func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	orderID := kernel.NewUUID()
	var idErr error
	if r.ID != "" {
		orderID, idErr = kernel.UUIDFromString(r.ID)
	}

	accountID, err := kernel.UUIDFromString(r.AccountID)
	if err != nil {
		return commands.CreateOrderCommand{}, errors.Join(idErr, err)
	}
	account, err := order.NewAccount(accountID, r.MemberCode)
	if err != nil {
		return commands.CreateOrderCommand{}, errors.Join(idErr, err)
	}

	method, methodErr := order.ParseShippingMethod(r.ShippingMethod)

	items := make([]order.Item, 0, len(r.Items))
	var itemErrs []error
	for _, it := range r.Items {
		item, itemErr := order.NewItem(
			it.HSCode,
			it.Quantity,
			it.Weight,
			order.NewDimensions(it.Width, it.Height, it.Depth),
			it.UnitPrice,
		)
		if itemErr != nil {
			itemErrs = append(itemErrs, itemErr)
			continue
		}
		items = append(items, item)
	}

	boxes := make([]order.Box, len(r.Boxes))
	for i, b := range r.Boxes {
		boxes[i] = order.NewBox(order.NewDimensions(b.Width, b.Height, b.Depth))
	}

	if err = errors.Join(idErr, methodErr, errors.Join(itemErrs...)); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(orderID, account, method, r.RecipientAddress, items, boxes)
}

// FeeRequest is the body of the preview and create billing endpoints.
// Omitted fees are zero.
type FeeRequest struct {
	ShippingFee      decimal.Decimal `json:"shippingFee" validate:"gte=0"`
	LocalDeliveryFee decimal.Decimal `json:"localDeliveryFee" validate:"gte=0"`
	RepackingFee     decimal.Decimal `json:"repackingFee" validate:"gte=0"`
	HandlingFee      decimal.Decimal `json:"handlingFee" validate:"gte=0"`
	InsuranceFee     decimal.Decimal `json:"insuranceFee" validate:"gte=0"`
	CustomsFee       decimal.Decimal `json:"customsFee" validate:"gte=0"`
}

func (r FeeRequest) toDomain() billing.FeeRequest {
	return billing.FeeRequest{
		ShippingFee:      r.ShippingFee,
		LocalDeliveryFee: r.LocalDeliveryFee,
		RepackingFee:     r.RepackingFee,
		HandlingFee:      r.HandlingFee,
		InsuranceFee:     r.InsuranceFee,
		CustomsFee:       r.CustomsFee,
	}
}

// TariffRequest is the body of the single-line tariff endpoint.
type TariffRequest struct {
	HSCode    string          `json:"hsCode" validate:"max=16"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	Currency  string          `json:"currency" validate:"required,len=3,alpha"`
}

// PaymentRequest is the body of the payment confirmation endpoint.
type PaymentRequest struct {
	Method        string    `json:"method" validate:"required"`
	Reference     string    `json:"reference" validate:"max=128"`
	DepositorName string    `json:"depositorName" validate:"max=128"`
	PaidAt        time.Time `json:"paidAt" validate:"required"`
}

type RuleResultResponse struct {
	TotalCbm                   decimal.Decimal `json:"totalCbm"`
	CbmExceedsThreshold        bool            `json:"cbmExceedsThreshold"`
	TotalDeclaredValue         decimal.Decimal `json:"totalDeclaredValue"`
	ValueExceedsThreshold      bool            `json:"valueExceedsThreshold"`
	HasNoMemberCode            bool            `json:"hasNoMemberCode"`
	RecommendedShippingMethod  string          `json:"recommendedShippingMethod"`
	RequiresExtraRecipientInfo bool            `json:"requiresExtraRecipientInfo"`
	Warnings                   []string        `json:"warnings"`
}

func newRuleResultResponse(r order.RuleResult) RuleResultResponse {
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return RuleResultResponse{
		TotalCbm:                   r.TotalCbm,
		CbmExceedsThreshold:        r.CbmExceedsThreshold,
		TotalDeclaredValue:         r.TotalDeclaredValue,
		ValueExceedsThreshold:      r.ValueExceedsThreshold,
		HasNoMemberCode:            r.HasNoMemberCode,
		RecommendedShippingMethod:  r.RecommendedShippingMethod.String(),
		RequiresExtraRecipientInfo: r.RequiresExtraRecipientInfo,
		Warnings:                   warnings,
	}
}

type OrderResponse struct {
	ID                      string              `json:"id"`
	AccountID               string              `json:"accountId"`
	MemberCode              string              `json:"memberCode,omitempty"`
	RequestedShippingMethod string              `json:"requestedShippingMethod"`
	ShippingMethod          string              `json:"shippingMethod"`
	RecipientAddress        string              `json:"recipientAddress"`
	DeclaredValue           decimal.Decimal     `json:"declaredValue"`
	ItemCount               int                 `json:"itemCount"`
	BoxCount                int                 `json:"boxCount"`
	RuleResult              *RuleResultResponse `json:"ruleResult,omitempty"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:                      o.ID().String(),
		AccountID:               o.Account().ID().String(),
		MemberCode:              o.Account().MemberCode(),
		RequestedShippingMethod: o.RequestedShippingMethod().String(),
		ShippingMethod:          o.ShippingMethod().String(),
		RecipientAddress:        o.RecipientAddress(),
		DeclaredValue:           o.DeclaredValue(),
		ItemCount:               len(o.Items()),
		BoxCount:                len(o.Boxes()),
	}
	if result, ok := o.RuleResult(); ok {
		r := newRuleResultResponse(result)
		resp.RuleResult = &r
	}
	return resp
}

type ExchangeRateResponse struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
	AsOf     time.Time       `json:"asOf"`
	Source   string          `json:"source"`
}

func newExchangeRateResponse(r exchange.Rate) ExchangeRateResponse {
	return ExchangeRateResponse{
		Currency: r.Currency().Code(),
		Rate:     r.Rate(),
		AsOf:     r.AsOf(),
		Source:   r.Source().String(),
	}
}

type TariffResponse struct {
	HSCode               string               `json:"hsCode"`
	Currency             string               `json:"currency"`
	UnitPrice            decimal.Decimal      `json:"unitPrice"`
	Quantity             int64                `json:"quantity"`
	TotalValue           decimal.Decimal      `json:"totalValue"`
	ExchangeRate         ExchangeRateResponse `json:"exchangeRate"`
	KrwValue             decimal.Decimal      `json:"krwValue"`
	TariffRate           decimal.Decimal      `json:"tariffRate"`
	TariffAmount         decimal.Decimal      `json:"tariffAmount"`
	CifValue             decimal.Decimal      `json:"cifValue"`
	SpecialTaxRate       decimal.Decimal      `json:"specialTaxRate"`
	SpecialTaxAmount     decimal.Decimal      `json:"specialTaxAmount"`
	VatRate              decimal.Decimal      `json:"vatRate"`
	VatAmount            decimal.Decimal      `json:"vatAmount"`
	TotalTax             decimal.Decimal      `json:"totalTax"`
	TotalAmount          decimal.Decimal      `json:"totalAmount"`
	DutyFreeEligible     bool                 `json:"dutyFreeEligible"`
	SmallAmountExemption bool                 `json:"smallAmountExemption"`
	DutyFreeMessage      string               `json:"dutyFreeMessage,omitempty"`
}

func newTariffResponse(c tariff.Calculation) TariffResponse {
	return TariffResponse{
		HSCode:               c.HSCode,
		Currency:             c.Currency.Code(),
		UnitPrice:            c.UnitPrice,
		Quantity:             c.Quantity,
		TotalValue:           c.TotalValue,
		ExchangeRate:         newExchangeRateResponse(c.ExchangeRate),
		KrwValue:             c.KrwValue,
		TariffRate:           c.TariffRate,
		TariffAmount:         c.TariffAmount,
		CifValue:             c.CifValue,
		SpecialTaxRate:       c.SpecialTaxRate,
		SpecialTaxAmount:     c.SpecialTaxAmount,
		VatRate:              c.VatRate,
		VatAmount:            c.VatAmount,
		TotalTax:             c.TotalTax,
		TotalAmount:          c.TotalAmount,
		DutyFreeEligible:     c.DutyFreeEligible,
		SmallAmountExemption: c.SmallAmountExemption,
		DutyFreeMessage:      c.DutyFreeMessage,
	}
}

type OrderTariffsResponse struct {
	Lines         []TariffResponse `json:"lines"`
	TotalKrwValue decimal.Decimal  `json:"totalKrwValue"`
	TotalTax      decimal.Decimal  `json:"totalTax"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
}

func newOrderTariffsResponse(c tariff.OrderCalculation) OrderTariffsResponse {
	lines := make([]TariffResponse, len(c.Lines))
	for i, line := range c.Lines {
		lines[i] = newTariffResponse(line)
	}
	return OrderTariffsResponse{
		Lines:         lines,
		TotalKrwValue: c.TotalKrwValue,
		TotalTax:      c.TotalTax,
		TotalAmount:   c.TotalAmount,
	}
}

type FeeLineResponse struct {
	Label     string          `json:"label"`
	AmountThb decimal.Decimal `json:"amountThb"`
}

type PaymentResponse struct {
	Method        string    `json:"method"`
	Reference     string    `json:"reference,omitempty"`
	DepositorName string    `json:"depositorName,omitempty"`
	PaidAt        time.Time `json:"paidAt"`
}

// BillingResponse serves stored billings and previews. A preview has no id,
// account, payment status or version.
type BillingResponse struct {
	ID            string               `json:"id,omitempty"`
	OrderID       string               `json:"orderId"`
	AccountID     string               `json:"accountId,omitempty"`
	Status        string               `json:"status"`
	PaymentStatus string               `json:"paymentStatus,omitempty"`
	FeeLines      []FeeLineResponse    `json:"feeLines"`
	ExchangeRate  ExchangeRateResponse `json:"exchangeRate"`
	TotalThb      decimal.Decimal      `json:"totalThb"`
	TotalKrw      decimal.Decimal      `json:"totalKrw"`
	IssuedAt      *time.Time           `json:"issuedAt,omitempty"`
	FinalizedAt   *time.Time           `json:"finalizedAt,omitempty"`
	Payment       *PaymentResponse     `json:"payment,omitempty"`
	Version       int64                `json:"version,omitempty"`
}

func snapshotResponse(s billing.Snapshot, status billing.Status) BillingResponse {
	lines := make([]FeeLineResponse, len(s.FeeLines()))
	for i, line := range s.FeeLines() {
		lines[i] = FeeLineResponse{Label: line.Label, AmountThb: line.AmountThb}
	}
	return BillingResponse{
		OrderID:      s.OrderID().String(),
		Status:       status.String(),
		FeeLines:     lines,
		ExchangeRate: newExchangeRateResponse(s.ExchangeRate()),
		TotalThb:     s.TotalThb(),
		TotalKrw:     s.TotalKrw(),
	}
}

func newPreviewResponse(p queries.BillingPreview) BillingResponse {
	return snapshotResponse(p.Snapshot, p.Status)
}

func newBillingResponse(b *billing.Billing) BillingResponse {
	resp := snapshotResponse(b.Snapshot(), b.Status())
	issuedAt := b.IssuedAt()

	resp.ID = b.ID().String()
	resp.AccountID = b.AccountID().String()
	resp.PaymentStatus = b.PaymentStatus().String()
	resp.IssuedAt = &issuedAt
	resp.FinalizedAt = b.FinalizedAt()
	resp.Version = b.Version()

	if payment := b.Payment(); payment != nil {
		resp.Payment = &PaymentResponse{
			Method:        payment.Method().String(),
			Reference:     payment.Reference(),
			DepositorName: payment.DepositorName(),
			PaidAt:        payment.PaidAt(),
		}
	}
	return resp
}

type PendingBillingResponse struct {
	ID       string          `json:"id"`
	OrderID  string          `json:"orderId"`
	Status   string          `json:"status"`
	TotalThb decimal.Decimal `json:"totalThb"`
	TotalKrw decimal.Decimal `json:"totalKrw"`
	IssuedAt time.Time       `json:"issuedAt"`
}

func newPendingBillingResponse(r queries.GetPendingBillingsQueryResponse) PendingBillingResponse {
	return PendingBillingResponse{
		ID:       r.ID.String(),
		OrderID:  r.OrderID.String(),
		Status:   r.Status.String(),
		TotalThb: r.TotalThb,
		TotalKrw: r.TotalKrw,
		IssuedAt: r.IssuedAt,
	}
}
