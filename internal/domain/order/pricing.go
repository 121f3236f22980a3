package order

import "github.com/shopspring/decimal"

// birthdayDiscount is the fraction of the total kept when the birthday
// discount applies (10% off).
var birthdayDiscount = decimal.RequireFromString("0.9")

// ComputeTotal returns the total price for quantity units at unitPrice.
// When discountApplies is set, the discounted total is rounded half-up to the
// nearest integer currency unit, so no fractional cents are ever produced by
// the discount path. The function is pure: callers pre-validate inputs.
func ComputeTotal(quantity int, unitPrice decimal.Decimal, discountApplies bool) decimal.Decimal {
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if discountApplies {
		total = total.Mul(birthdayDiscount).Round(0)
	}
	return total
}
