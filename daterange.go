package folio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/folio/date"
)

// ErrUnknownDateRange is returned when parsing an unsupported range name.
var ErrUnknownDateRange = errors.New("unknown date range")

// DateRange is a named performance window ending today.
type DateRange string

const (
	OneDay     DateRange = "1d"
	YearToDate DateRange = "ytd"
	OneYear    DateRange = "1y"
	FiveYears  DateRange = "5y"
	WholeLife  DateRange = "max"
)

// DateRanges lists every supported range, shortest first.
var DateRanges = []DateRange{OneDay, YearToDate, OneYear, FiveYears, WholeLife}

// ParseDateRange parses a range name, case insensitive.
func ParseDateRange(s string) (DateRange, error) {
	r := DateRange(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case OneDay, YearToDate, OneYear, FiveYears, WholeLife:
		return r, nil
	}
	return "", fmt.Errorf("%w %q, want one of %v", ErrUnknownDateRange, s, DateRanges)
}

// Set implements flag.Value.
func (r *DateRange) Set(s string) error {
	v, err := ParseDateRange(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r DateRange) String() string { return string(r) }

// ReferenceDate resolves the range into the day performance is measured from.
//
// It reports false when the window covers the whole history: for WholeLife,
// and for the calendar ranges when their start is not after the first full
// month of the history. minDate is the first committed transaction date, the
// zero Date if there is none.
func (r DateRange) ReferenceDate(today, minDate date.Date) (date.Date, bool) {
	if r == OneDay {
		return today.Add(-1), true
	}
	if minDate.IsZero() {
		return date.Date{}, false
	}
	// the first snapshot that holds the whole activity of its month
	normalized := minDate
	if minDate.Day() != 1 {
		normalized = minDate.StartOf(date.Monthly).AddMonth(1)
	}

	var ref date.Date
	switch r {
	case YearToDate:
		ref = today.StartOf(date.Yearly)
	case OneYear:
		ref = today.StartOf(date.Monthly).AddYear(-1)
	case FiveYears:
		ref = today.StartOf(date.Monthly).AddYear(-5)
	default:
		return date.Date{}, false
	}
	if !ref.After(normalized) {
		return date.Date{}, false
	}
	return ref, true
}
