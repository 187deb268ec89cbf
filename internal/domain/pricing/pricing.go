// Package pricing computes display prices for catalog products.
//
// Products without an explicit discount fall back to an ID-indexed ramp that
// starts at 10% and grows by 2% per ID. The ramp is capped (DefaultMaxDiscount
// unless overridden) so that high product IDs cannot drive the discount past
// the cap and produce zero or negative prices.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Ashrafbing/crystalloom/internal/domain/product"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)

	rampBase = decimal.RequireFromString("0.10")
	rampStep = decimal.RequireFromString("0.02")
)

// DefaultMaxDiscount caps the effective discount fraction at 90%.
var DefaultMaxDiscount = decimal.RequireFromString("0.90")

// Calculator derives discounted prices for products.
type Calculator struct {
	maxDiscount decimal.Decimal
}

// NewCalculator creates a Calculator with the given discount cap. The cap is
// a fraction in (0, 1]; non-positive values fall back to DefaultMaxDiscount.
func NewCalculator(maxDiscount decimal.Decimal) *Calculator {
	if !maxDiscount.IsPositive() {
		maxDiscount = DefaultMaxDiscount
	}
	return &Calculator{maxDiscount: maxDiscount}
}

// DiscountedPrice returns the product's price after discount, rounded to
// whole rupees. An explicit product discount (percent) takes precedence;
// otherwise the ID ramp applies, capped at the calculator's maximum.
func (c *Calculator) DiscountedPrice(p product.Product) decimal.Decimal {
	d := c.effectiveDiscount(p)
	return p.Price.Mul(one.Sub(d)).Round(0)
}

// effectiveDiscount returns the discount fraction for the product.
func (c *Calculator) effectiveDiscount(p product.Product) decimal.Decimal {
	var d decimal.Decimal
	if p.Discount != nil {
		d = p.Discount.Div(hundred)
	} else {
		d = rampBase.Add(rampStep.Mul(decimal.NewFromInt(p.ID)))
	}
	if d.GreaterThan(c.maxDiscount) {
		d = c.maxDiscount
	}
	if d.IsNegative() {
		d = decimal.Zero
	}
	return d
}

// PriceDisplay holds the renderer-agnostic triple for showing a struck-through
// original price next to the discounted one.
type PriceDisplay struct {
	Original   decimal.Decimal
	Discounted decimal.Decimal
	PercentOff int64
}

// FormatPriceDisplay computes the percent-off between original and discounted
// prices. A zero original yields 0% off rather than dividing by zero.
func FormatPriceDisplay(original, discounted decimal.Decimal) PriceDisplay {
	display := PriceDisplay{
		Original:   original,
		Discounted: discounted,
	}
	if original.IsZero() {
		return display
	}
	display.PercentOff = original.Sub(discounted).Div(original).Mul(hundred).Round(0).IntPart()
	return display
}
