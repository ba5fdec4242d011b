package services

import (
	"fmt"

	"freight/internal/core/domain/model/order"
)

// RuleEvaluator derives the business-rule result of an order.
//
// Decision sequence, each step adding at most one warning:
//  1. total CBM above the threshold recommends AIR, otherwise SEA; the
//     recommendation overrides the method the customer requested
//  2. declared value above the threshold requires extra recipient information
//  3. an account without member code is flagged for possible delay
//
// Evaluate has no side effects: the caller applies the result to the order.
// Running it twice on the same order yields equal results.
//
// Example usage:
//
//	evaluator := services.NewRuleEvaluator(services.DefaultPolicy())
//	result, err := evaluator.Evaluate(o)
//	if err != nil {
//	    return err
//	}
//	err = o.ApplyRuleResult(result, time.Now())
type RuleEvaluator struct {
	policy Policy
	cbm    CbmCalculator
}

func NewRuleEvaluator(policy Policy) RuleEvaluator {
	return RuleEvaluator{policy: policy, cbm: NewCbmCalculator(policy)}
}

// Evaluate computes the rule result of o.
//
// Returns:
//   - order.RuleResult with warnings in the order CBM, declared value, member code
//   - error only when o was not properly constructed
func (e RuleEvaluator) Evaluate(o *order.Order) (order.RuleResult, error) {
	if err := o.Validate(); err != nil {
		return order.RuleResult{}, err
	}

	cbm := e.cbm.ComputeOrder(o)
	declared := o.DeclaredValue()

	result := order.RuleResult{
		TotalCbm:                  cbm.TotalCbm,
		CbmExceedsThreshold:       cbm.ExceedsThreshold,
		TotalDeclaredValue:        declared,
		ValueExceedsThreshold:     declared.GreaterThan(e.policy.DeclaredValueThreshold),
		HasNoMemberCode:           !o.Account().HasMemberCode(),
		RecommendedShippingMethod: order.Sea,
		Warnings:                  []string{},
	}

	if result.CbmExceedsThreshold {
		result.RecommendedShippingMethod = order.Air
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"CBM %s m³ exceeds the %s m³ threshold, shipping method switched to AIR",
			cbm.TotalCbm.StringFixed(cbmScale), e.policy.CbmThreshold.StringFixed(1),
		))
	}

	if result.ValueExceedsThreshold {
		result.RequiresExtraRecipientInfo = true
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"declared value %s THB exceeds the %s THB threshold, extra recipient information is required",
			declared.StringFixed(2), e.policy.DeclaredValueThreshold.StringFixed(0),
		))
	}

	if result.HasNoMemberCode {
		result.Warnings = append(result.Warnings, "member code is missing, delivery may be delayed")
	}

	return result, nil
}

// Volume exposes the CBM breakdown Evaluate bases its decision on, for callers
// that report incomplete measurements.
func (e RuleEvaluator) Volume(o *order.Order) CbmResult {
	return e.cbm.ComputeOrder(o)
}
