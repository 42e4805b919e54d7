package pricing

import (
	"math"
)

// FailureReason explains why a unit price could not be computed.
// zero_quantity is deliberately distinct from invalid_values so callers can
// tell "quantity not printed" apart from "actually zero".
type FailureReason string

const (
	ReasonMissingNetAmount FailureReason = "missing_net_amount"
	ReasonMissingQuantity  FailureReason = "missing_quantity"
	ReasonInvalidValues    FailureReason = "invalid_values"
	ReasonZeroQuantity     FailureReason = "zero_quantity"
)

// Result is the outcome of a unit-price computation. UnitPrice is nil
// exactly when Success is false.
type Result struct {
	Success   bool
	UnitPrice *float64
	Reason    FailureReason
}

// CalculateUnitPrice converts (amount, quantity) into a per-unit price.
// Checks run in a fixed order: missing net amount, missing quantity, NaN,
// negative, zero quantity. A zero net amount with a valid quantity succeeds
// and yields a unit price of 0. No rounding is applied here; presentation
// rounding is a caller concern.
func CalculateUnitPrice(netAmount, quantity *float64) Result {
	if netAmount == nil {
		return failure(ReasonMissingNetAmount)
	}
	if quantity == nil {
		return failure(ReasonMissingQuantity)
	}
	if math.IsNaN(*netAmount) || math.IsNaN(*quantity) {
		return failure(ReasonInvalidValues)
	}
	if *netAmount < 0 || *quantity < 0 {
		return failure(ReasonInvalidValues)
	}
	if *quantity == 0 {
		return failure(ReasonZeroQuantity)
	}
	up := *netAmount / *quantity
	return Result{Success: true, UnitPrice: &up}
}

func failure(reason FailureReason) Result {
	return Result{Success: false, UnitPrice: nil, Reason: reason}
}
