// Package date provides a calendar day type and day-keyed series.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // lenient on read: 2025-7-1 is accepted

// Format is the ISO-8601 layout used to write dates.
const Format = "2006-01-02"

// Date is a calendar day, with no time of day and no location.
//
// The zero Date is year 0, January 0 and is used as "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns the normalized Date for year, month and day.
// Out of range values roll over, New(2025, 13, 1) is 2026-01-01.
func New(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// On returns the UTC calendar day of t.
func On(t time.Time) Date { return New(t.UTC().Date()) }

// Today returns the current UTC day.
func Today() Date { return On(time.Now()) }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int             { return d.y }
func (d Date) Month() time.Month     { return d.m }
func (d Date) Day() int              { return d.d }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.compare(x) < 0 }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.compare(x) > 0 }

func (d Date) compare(x Date) int {
	switch {
	case d.y != x.y:
		return d.y - x.y
	case d.m != x.m:
		return int(d.m - x.m)
	default:
		return d.d - x.d
	}
}

// Compare returns -1, 0 or +1 for d before, equal or after x.
func (d Date) Compare(x Date) int {
	switch c := d.compare(x); {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}

// Add returns d shifted by i days.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// AddMonth returns d shifted by i months. The day of month rolls over like time.AddDate.
func (d Date) AddMonth(i int) Date { return New(d.y, d.m+time.Month(i), d.d) }

// AddYear returns d shifted by i years.
func (d Date) AddYear(i int) Date { return New(d.y+i, d.m, d.d) }

// String formats the date as 2006-01-02.
func (d Date) String() string { return d.Time().Format(Format) }

// Parse parses a Date. It accepts single digit months and days.
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		// RFC 3339 timestamps come out of most brokers' exports.
		ts, tsErr := time.Parse(time.RFC3339, str)
		if tsErr != nil {
			return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
		}
		return On(ts), nil
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*d = Date{}
		return nil
	}
	on, err := Parse(str)
	if err != nil {
		return err
	}
	*d = on
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalText lets a Date be used in CSV or flag parsing.
func (d *Date) UnmarshalText(text []byte) error {
	on, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = on
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
