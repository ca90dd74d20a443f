package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	h.Append(d1, v1)
	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Fatalf("History.Len() = %v want 2", h.Len())
	}
	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("history days = %v want [%v %v]", h.days, d2, d1)
	}

	h.Append(d1, "replaced")
	if h.Len() != 2 {
		t.Errorf("Append(existing).Len() = %v want 2", h.Len())
	}
	if got, _ := h.Get(d1); got != "replaced" {
		t.Errorf("Get(d1) = %q want %q", got, "replaced")
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2025, 1, 1), 1).Append(New(2025, 2, 1), 2).Append(New(2025, 3, 1), 3)

	testCases := []struct {
		on     Date
		want   float64
		wantOk bool
	}{
		{New(2024, 12, 31), 0, false},
		{New(2025, 1, 1), 1, true},
		{New(2025, 1, 15), 1, true},
		{New(2025, 2, 1), 2, true},
		{New(2026, 1, 1), 3, true},
	}
	for _, tc := range testCases {
		t.Run(tc.on.String(), func(t *testing.T) {
			got, ok := h.ValueAsOf(tc.on)
			if got != tc.want || ok != tc.wantOk {
				t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.on, got, ok, tc.want, tc.wantOk)
			}
		})
	}
}

func TestNilHistory(t *testing.T) {
	var h *History[int]
	if h.Len() != 0 {
		t.Errorf("nil History.Len() = %d want 0", h.Len())
	}
	if _, ok := h.ValueAsOf(Today()); ok {
		t.Errorf("nil History.ValueAsOf() found a value")
	}
	for range h.Values() {
		t.Errorf("nil History.Values() yielded a value")
	}
}
