package folio

import (
	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// Performance is the gain of the portfolio over a DateRange, today included.
//
// Percentages are ratios: 0.05 is 5%. They are zero when the reference investment is zero.
type Performance struct {
	Range                          DateRange
	Reference                      date.Date // zero when the range covers the whole history
	CurrentValue                   decimal.Decimal
	CurrentGrossPerformance        decimal.Decimal
	CurrentGrossPerformancePercent float64
	CurrentNetPerformance          decimal.Decimal
	CurrentNetPerformancePercent   float64
}

// Performance computes the gross and net gain over r.
//
// Over the whole history, the gain is measured against the committed funds.
// Over a window, it is measured against the value and investment on the
// reference date, committed funds standing in for a zero value.
func (p *Portfolio) Performance(r DateRange) Performance {
	st := p.load()
	today := p.today()
	minDate, _ := st.minDate()
	ref, windowed := r.ReferenceDate(today, minDate)

	currentInvestment := st.investment(today)
	currentValue, _ := st.value(today)

	originalInvestment := currentInvestment
	originalValue := st.committedFunds()
	if windowed {
		originalInvestment = st.investment(ref)
		if v, ok := st.value(ref); ok && !v.IsZero() {
			originalValue = v
		}
	}

	gross := currentValue.Sub(currentInvestment).Sub(originalValue.Sub(originalInvestment))
	net := gross.Sub(st.fees(ref))
	perf := Performance{
		Range:                          r,
		CurrentValue:                   currentValue,
		CurrentGrossPerformance:        gross,
		CurrentGrossPerformancePercent: ratio(gross, originalInvestment, 0),
		CurrentNetPerformance:          net,
		CurrentNetPerformancePercent:   ratio(net, originalInvestment, 0),
	}
	if windowed {
		perf.Reference = ref
	}
	return perf
}
