package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewNormalizes(t *testing.T) {
	testCases := []struct {
		y    int
		m    time.Month
		d    int
		want string
	}{
		{2025, 13, 1, "2026-01-01"},
		{2025, 3, 0, "2025-02-28"},
		{2024, 2, 30, "2024-03-01"},
	}
	for _, tc := range testCases {
		if got := New(tc.y, tc.m, tc.d).String(); got != tc.want {
			t.Errorf("New(%d, %d, %d) = %v, want %v", tc.y, tc.m, tc.d, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, 7, 1), false},
		{"2025-7-1", New(2025, 7, 1), false},
		{"2023-01-05T14:30:00Z", New(2023, 1, 5), false},
		{"01/05/2023", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, 12, 31), New(2025, 1, 1)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Errorf("Before/After inconsistent for %v and %v", a, b)
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare() inconsistent for %v and %v", a, b)
	}
	if !(Date{}).Before(a) {
		t.Errorf("zero Date should be before %v", a)
	}
}

func TestPeriodBounds(t *testing.T) {
	d := New(2025, time.September, 10) // a Wednesday
	testCases := []struct {
		p          Period
		start, end Date
	}{
		{Daily, d, d},
		{Weekly, New(2025, 9, 8), New(2025, 9, 14)},
		{Monthly, New(2025, 9, 1), New(2025, 9, 30)},
		{Quarterly, New(2025, 7, 1), New(2025, 9, 30)},
		{Yearly, New(2025, 1, 1), New(2025, 12, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.p.String(), func(t *testing.T) {
			if got := d.StartOf(tc.p); got != tc.start {
				t.Errorf("StartOf(%v) = %v, want %v", tc.p, got, tc.start)
			}
			if got := d.EndOf(tc.p); got != tc.end {
				t.Errorf("EndOf(%v) = %v, want %v", tc.p, got, tc.end)
			}
		})
	}
}

func TestRangeSteps(t *testing.T) {
	r := Range{From: New(2025, 1, 1), To: New(2025, 4, 1)}
	var got []string
	for on := range r.Steps(Monthly) {
		got = append(got, on.String())
	}
	want := []string{"2025-01-01", "2025-02-01", "2025-03-01"}
	if len(got) != len(want) {
		t.Fatalf("Steps(Monthly) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Steps(Monthly)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{From: New(2025, 1, 1), To: New(2025, 1, 31)}
	for _, on := range []Date{New(2025, 1, 1), New(2025, 1, 15), New(2025, 1, 31)} {
		if !r.Contains(on) {
			t.Errorf("Contains(%v) = false, want true", on)
		}
	}
	for _, on := range []Date{New(2024, 12, 31), New(2025, 2, 1)} {
		if r.Contains(on) {
			t.Errorf("Contains(%v) = true, want false", on)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in   string
		want Period
	}{
		{"day", Daily},
		{"Monthly", Monthly},
		{"w", Weekly},
		{"quarter", Quarterly},
		{"yearly", Yearly},
	}
	for _, tc := range testCases {
		got, err := ParsePeriod(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParsePeriod(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
		if back, _ := ParsePeriod(got.String()); back != got {
			t.Errorf("ParsePeriod(%q.String()) = %v", got, back)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("ParsePeriod(fortnight) error = nil, want an error")
	}
}

func TestJSON(t *testing.T) {
	type doc struct {
		On  Date `json:"on"`
		Off Date `json:"off"`
	}
	in := doc{On: New(2025, 8, 3)}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(b) != `{"on":"2025-08-03","off":""}` {
		t.Errorf("json.Marshal() = %s", b)
	}
	var out doc
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if out != in {
		t.Errorf("json round trip = %v, want %v", out, in)
	}
}
