package renderer

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats an amount in the conventions of its currency, e.g. "$1,234.50".
func Money(amount decimal.Decimal, currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedMoney is Money with an explicit sign, "-" standing for zero.
func SignedMoney(amount decimal.Decimal, currency string) string {
	switch {
	case amount.IsZero():
		return "-"
	case amount.IsPositive():
		return "+" + Money(amount, currency)
	default:
		return Money(amount, currency)
	}
}

// Percent formats a ratio as a percentage: 0.0525 is "5.25%".
func Percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// SignedPercent is Percent with an explicit sign, "-" standing for zero.
func SignedPercent(ratio float64) string {
	if ratio == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", ratio*100)
}
