package date

import "iter"

// Range is an inclusive span of days.
type Range struct{ From, To Date }

// Contains reports whether on is within the range, bounds included.
func (r Range) Contains(on Date) bool { return !on.Before(r.From) && !on.After(r.To) }

// Steps iterates from r.From, one period at a time, while the day is before r.To.
// r.To itself is not yielded.
func (r Range) Steps(p Period) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for on := r.From; on.Before(r.To); on = step(on, p) {
			if !yield(on) {
				return
			}
		}
	}
}

func step(on Date, p Period) Date {
	switch p {
	case Weekly:
		return on.Add(7)
	case Monthly:
		return on.AddMonth(1)
	case Quarterly:
		return on.AddMonth(3)
	case Yearly:
		return on.AddYear(1)
	default:
		return on.Add(1)
	}
}
