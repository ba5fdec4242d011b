// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Items and boxes live in child tables ordered by position; the last rule
// result is stored as a JSON document on the order row.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AccountID               uuid.UUID      `gorm:"type:uuid;not null;index"`
	MemberCode              string         `gorm:"type:varchar(64)"`
	RequestedShippingMethod string         `gorm:"type:varchar(8);not null"`
	ShippingMethod          string         `gorm:"type:varchar(8);not null"`
	RecipientAddress        string         `gorm:"type:text"`
	Items                   []ItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Boxes                   []BoxDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	RuleResult              *RuleResultDTO `gorm:"type:jsonb;serializer:json"`
	RuleEvaluatedAt         *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one declared line of an order.
type ItemDTO struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	HSCode    string          `gorm:"type:varchar(16)"`
	Quantity  int64           `gorm:"not null"`
	Weight    decimal.Decimal `gorm:"type:numeric;not null"`
	Width     decimal.Decimal `gorm:"type:numeric;not null"`
	Height    decimal.Decimal `gorm:"type:numeric;not null"`
	Depth     decimal.Decimal `gorm:"type:numeric;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// BoxDTO is one measured carton of an order.
type BoxDTO struct {
	ID       uint            `gorm:"primaryKey;autoIncrement"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position int             `gorm:"not null"`
	Width    decimal.Decimal `gorm:"type:numeric;not null"`
	Height   decimal.Decimal `gorm:"type:numeric;not null"`
	Depth    decimal.Decimal `gorm:"type:numeric;not null"`
}

func (BoxDTO) TableName() string {
	return "order_boxes"
}

// RuleResultDTO is the JSON form of order.RuleResult.
type RuleResultDTO struct {
	TotalCbm                   decimal.Decimal `json:"totalCbm"`
	CbmExceedsThreshold        bool            `json:"cbmExceedsThreshold"`
	TotalDeclaredValue         decimal.Decimal `json:"totalDeclaredValue"`
	ValueExceedsThreshold      bool            `json:"valueExceedsThreshold"`
	HasNoMemberCode            bool            `json:"hasNoMemberCode"`
	RecommendedShippingMethod  string          `json:"recommendedShippingMethod"`
	RequiresExtraRecipientInfo bool            `json:"requiresExtraRecipientInfo"`
	Warnings                   []string        `json:"warnings"`
}

// fromDomain converts an order aggregate to its database representation,
// children included.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   orderID,
			Position:  i,
			HSCode:    item.HSCode(),
			Quantity:  item.Quantity(),
			Weight:    item.Weight(),
			Width:     item.Dimensions().Width(),
			Height:    item.Dimensions().Height(),
			Depth:     item.Dimensions().Depth(),
			UnitPrice: item.UnitPrice(),
		})
	}

	boxes := make([]BoxDTO, 0, len(aggregate.Boxes()))
	for i, box := range aggregate.Boxes() {
		boxes = append(boxes, BoxDTO{
			OrderID:  orderID,
			Position: i,
			Width:    box.Dimensions().Width(),
			Height:   box.Dimensions().Height(),
			Depth:    box.Dimensions().Depth(),
		})
	}

	dto := OrderDTO{
		ID:                      orderID,
		AccountID:               aggregate.Account().ID().Bytes(),
		MemberCode:              aggregate.Account().MemberCode(),
		RequestedShippingMethod: aggregate.RequestedShippingMethod().String(),
		ShippingMethod:          aggregate.ShippingMethod().String(),
		RecipientAddress:        aggregate.RecipientAddress(),
		Items:                   items,
		Boxes:                   boxes,
	}

	if result, ok := aggregate.RuleResult(); ok {
		dto.RuleResult = ruleResultFromDomain(result)
		evaluatedAt := aggregate.RuleEvaluatedAt()
		dto.RuleEvaluatedAt = &evaluatedAt
	}

	return dto
}

func ruleResultFromDomain(result order.RuleResult) *RuleResultDTO {
	return &RuleResultDTO{
		TotalCbm:                   result.TotalCbm,
		CbmExceedsThreshold:        result.CbmExceedsThreshold,
		TotalDeclaredValue:         result.TotalDeclaredValue,
		ValueExceedsThreshold:      result.ValueExceedsThreshold,
		HasNoMemberCode:            result.HasNoMemberCode,
		RecommendedShippingMethod:  result.RecommendedShippingMethod.String(),
		RequiresExtraRecipientInfo: result.RequiresExtraRecipientInfo,
		Warnings:                   result.Warnings,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
// Children must be loaded in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	accountID, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}

	account, err := order.NewAccount(accountID, dto.MemberCode)
	if err != nil {
		return nil, err
	}

	requested, err := order.ParseShippingMethod(dto.RequestedShippingMethod)
	if err != nil {
		return nil, err
	}

	effective, err := order.ParseShippingMethod(dto.ShippingMethod)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(
			itemDTO.HSCode,
			itemDTO.Quantity,
			itemDTO.Weight,
			order.NewDimensions(itemDTO.Width, itemDTO.Height, itemDTO.Depth),
			itemDTO.UnitPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	boxes := make([]order.Box, 0, len(dto.Boxes))
	for _, boxDTO := range dto.Boxes {
		boxes = append(boxes, order.NewBox(order.NewDimensions(boxDTO.Width, boxDTO.Height, boxDTO.Depth)))
	}

	var (
		ruleResult      *order.RuleResult
		ruleEvaluatedAt time.Time
	)
	if dto.RuleResult != nil {
		ruleResult, err = ruleResultToDomain(*dto.RuleResult)
		if err != nil {
			return nil, err
		}
		if dto.RuleEvaluatedAt != nil {
			ruleEvaluatedAt = *dto.RuleEvaluatedAt
		}
	}

	return order.RestoreOrder(
		id,
		account,
		requested,
		effective,
		dto.RecipientAddress,
		items,
		boxes,
		ruleResult,
		ruleEvaluatedAt,
	)
}

func ruleResultToDomain(dto RuleResultDTO) (*order.RuleResult, error) {
	recommended, err := order.ParseShippingMethod(dto.RecommendedShippingMethod)
	if err != nil {
		return nil, err
	}

	warnings := dto.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return &order.RuleResult{
		TotalCbm:                   dto.TotalCbm,
		CbmExceedsThreshold:        dto.CbmExceedsThreshold,
		TotalDeclaredValue:         dto.TotalDeclaredValue,
		ValueExceedsThreshold:      dto.ValueExceedsThreshold,
		HasNoMemberCode:            dto.HasNoMemberCode,
		RecommendedShippingMethod:  recommended,
		RequiresExtraRecipientInfo: dto.RequiresExtraRecipientInfo,
		Warnings:                   warnings,
	}, nil
}
