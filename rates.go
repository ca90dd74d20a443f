package folio

import (
	"context"
	"fmt"
	"maps"
	"math"

	"github.com/shopspring/decimal"
)

// rates converts amounts into the reporting currency at one rate per currency.
// A rates value is never mutated once built, with returns a copy.
type rates struct {
	base string
	to   map[string]decimal.Decimal
}

func newRates(base string) rates { return rates{base: base, to: map[string]decimal.Decimal{}} }

// convert returns v expressed in the reporting currency.
// An empty currency is taken as the reporting currency.
func (r rates) convert(v decimal.Decimal, from string) (decimal.Decimal, bool) {
	if from == "" || from == r.base {
		return v, true
	}
	rate, ok := r.to[from]
	if !ok {
		return decimal.Zero, false
	}
	return v.Mul(rate), true
}

// mustConvert is convert for currencies known to be present.
func (r rates) mustConvert(v decimal.Decimal, from string) decimal.Decimal {
	c, _ := r.convert(v, from)
	return c
}

// with returns rates extended with every currency it does not know yet.
func (r rates) with(ctx context.Context, ex Exchanger, currencies ...string) (rates, error) {
	var next rates
	for _, cur := range currencies {
		if cur == "" || cur == r.base {
			continue
		}
		if _, ok := r.to[cur]; ok {
			continue
		}
		if next.to == nil {
			next = rates{base: r.base, to: maps.Clone(r.to)}
		}
		if _, ok := next.to[cur]; ok {
			continue
		}
		rate, err := ex.Rate(ctx, cur, r.base)
		if err != nil {
			return r, fmt.Errorf("failed to get %s/%s rate: %w", cur, r.base, err)
		}
		next.to[cur] = rate
	}
	if next.to == nil {
		return r, nil
	}
	return next, nil
}

// ratio returns num/den as a float, or fallback when den is zero or the result is not finite.
func ratio(num, den decimal.Decimal, fallback float64) float64 {
	if den.IsZero() {
		return fallback
	}
	f := num.Div(den).InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// roundTo rounds f to places decimals, half away from zero.
func roundTo(f float64, places int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}
