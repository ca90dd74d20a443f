package date

import (
	"iter"
	"slices"
)

// History is a chronological series of values keyed by unique days.
// The zero value is an empty history ready to use.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of points.
func (h *History[T]) Len() int {
	if h == nil {
		return 0
	}
	return len(h.days)
}

// Append sets the value on day, replacing any previous value for that day.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the value recorded exactly on day.
func (h *History[T]) Get(on Date) (v T, ok bool) {
	if h == nil {
		return v, false
	}
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if !found {
		return v, false
	}
	return h.values[i], true
}

// ValueAsOf returns the value on day, or the most recent one before it.
func (h *History[T]) ValueAsOf(on Date) (v T, ok bool) {
	if h == nil {
		return v, false
	}
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		return v, false
	}
	return h.values[i-1], true
}

// Latest returns the last point, or zero values on an empty history.
func (h *History[T]) Latest() (on Date, v T) {
	if h.Len() == 0 {
		return on, v
	}
	last := len(h.days) - 1
	return h.days[last], h.values[last]
}

// Values iterates over the points in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		if h == nil {
			return
		}
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
