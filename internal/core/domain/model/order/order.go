package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the shipment request of one account. It is the aggregate root for
// declared items, measured boxes and the latest business-rule evaluation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owning account
//   - Must declare at least one item
//   - The requested shipping method is SEA or AIR
//   - The rule result, once applied, is replaced only as a whole and decides
//     the effective shipping method
type Order struct {
	id                      kernel.UUID
	account                 Account
	requestedShippingMethod ShippingMethod
	shippingMethod          ShippingMethod
	recipientAddress        string
	items                   []Item
	boxes                   []Box

	// ruleResult is nil until the order has been evaluated.
	ruleResult      *RuleResult
	ruleEvaluatedAt time.Time

	isConstructed bool
}

// NewOrder creates an order that has not been evaluated yet. Its effective
// shipping method is the requested one until a RuleResult is applied.
//
// Parameters:
//   - id: order identifier
//   - account: owning account, member code optional
//   - requested: shipping method chosen by the customer
//   - recipientAddress: free-form delivery address
//   - items: declared lines, at least one
//   - boxes: measured cartons, may be empty
//
// Returns:
//   - *Order on success
//   - joined validation errors otherwise
//
// Example:
//
//	account, _ := order.NewAccount(accountID, "M-1024")
//	item, _ := order.NewItem("6109.10", 3, weight, dims, decimal.NewFromInt(250))
//	o, err := order.NewOrder(kernel.NewUUID(), account, order.Sea, "Bangkok 10110", []order.Item{item}, nil)
//	if err != nil {
//	    return nil, err
//	}
//	o.ShippingMethod() // SEA until a rule result is applied
func NewOrder(
	id kernel.UUID,
	account Account,
	requested ShippingMethod,
	recipientAddress string,
	items []Item,
	boxes []Box,
) (*Order, error) {
	o := &Order{
		recipientAddress: strings.TrimSpace(recipientAddress),
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setAccount(account),
		o.setRequestedShippingMethod(requested),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.shippingMethod = requested
	o.boxes = slices.Clone(boxes)
	return o, nil
}

// RestoreOrder rebuilds an order from persistence, including its last rule
// result. ruleResult may be nil for orders that were never evaluated.
//
// Unlike NewOrder it takes the effective shipping method as stored, so an
// order evaluated into AIR comes back as AIR even when SEA was requested.
// The same validation as NewOrder applies; a corrupt row is reported rather
// than silently repaired.
func RestoreOrder(
	id kernel.UUID,
	account Account,
	requested ShippingMethod,
	effective ShippingMethod,
	recipientAddress string,
	items []Item,
	boxes []Box,
	ruleResult *RuleResult,
	ruleEvaluatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, account, requested, recipientAddress, items, boxes)
	if err != nil {
		return nil, err
	}

	if err = effective.Validate(); err != nil {
		return nil, err
	}
	o.shippingMethod = effective

	if ruleResult != nil {
		if err = ruleResult.Validate(); err != nil {
			return nil, err
		}
		restored := ruleResult.Clone()
		o.ruleResult = &restored
		o.ruleEvaluatedAt = ruleEvaluatedAt
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder. It is
// safe to call on a nil pointer.
//
// Example:
//
//	if err := o.Validate(); err != nil {
//	    return err // ErrOrderIsNotConstructed
//	}
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity. Two snapshots of the same order taken
// before and after a rule evaluation are equal.
//
// Example:
//
//	loaded, _ := repo.Get(ctx, o.ID())
//	o.IsEqual(loaded) // true
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Account() Account {
	return o.account
}

// RequestedShippingMethod is the method the customer asked for.
func (o *Order) RequestedShippingMethod() ShippingMethod {
	return o.requestedShippingMethod
}

// ShippingMethod is the effective method: the recommendation of the last
// rule evaluation, or the requested method before any evaluation.
func (o *Order) ShippingMethod() ShippingMethod {
	return o.shippingMethod
}

func (o *Order) RecipientAddress() string {
	return o.recipientAddress
}

// Items returns a copy of the declared lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// Boxes returns a copy of the measured cartons.
func (o *Order) Boxes() []Box {
	return slices.Clone(o.boxes)
}

// DeclaredValue sums unit price times quantity over all items, in THB,
// rounded half-up to two places.
//
// Example:
//
//	// 3 x 250.00 + 1 x 99.995
//	o.DeclaredValue() // 850.00
func (o *Order) DeclaredValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.DeclaredValue())
	}
	return kernel.THB.Round(total)
}

// RuleResult returns the last applied evaluation and whether there is one.
// The returned value is a copy; changing its warnings does not touch the order.
//
// Example:
//
//	if result, ok := o.RuleResult(); ok && result.HasWarnings() {
//	    logger.Warn("order needs review", "order_id", o.ID().String())
//	}
func (o *Order) RuleResult() (RuleResult, bool) {
	if o.ruleResult == nil {
		return RuleResult{}, false
	}
	return o.ruleResult.Clone(), true
}

// RuleEvaluatedAt is the time the current RuleResult was applied, zero if none.
func (o *Order) RuleEvaluatedAt() time.Time {
	return o.ruleEvaluatedAt
}

// ApplyRuleResult replaces the previous evaluation with result and switches the
// effective shipping method to the recommended one, overriding the request.
//
// Returns:
//   - nil on success
//   - error if result carries no valid shipping method
//
// Example:
//
//	result, err := evaluator.Evaluate(o)
//	if err != nil {
//	    return err
//	}
//	if err = o.ApplyRuleResult(result, time.Now()); err != nil {
//	    return err
//	}
//	o.ShippingMethod() == result.RecommendedShippingMethod // true
func (o *Order) ApplyRuleResult(result RuleResult, evaluatedAt time.Time) error {
	if err := result.Validate(); err != nil {
		return err
	}

	applied := result.Clone()
	o.ruleResult = &applied
	o.ruleEvaluatedAt = evaluatedAt
	o.shippingMethod = applied.RecommendedShippingMethod
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAccount(account Account) error {
	if err := account.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("account", err)
	}
	o.account = account
	return nil
}

func (o *Order) setRequestedShippingMethod(m ShippingMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	o.requestedShippingMethod = m
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = slices.Clone(items)
	return nil
}
