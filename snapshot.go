package folio

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// Position is the state of one symbol in a snapshot.
//
// Investment is in the reporting currency, InvestmentInOriginalCurrency and
// the prices are in Currency. AveragePrice is zero unless Quantity is positive.
type Position struct {
	Symbol                       string          `json:"symbol"`
	Quantity                     decimal.Decimal `json:"quantity"`
	AveragePrice                 decimal.Decimal `json:"averagePrice"`
	Currency                     string          `json:"currency,omitempty"`
	FirstBuyDate                 date.Date       `json:"firstBuyDate"` // zero until the first buy
	Investment                   decimal.Decimal `json:"investment"`
	InvestmentInOriginalCurrency decimal.Decimal `json:"investmentInOriginalCurrency"`
	MarketPrice                  decimal.Decimal `json:"marketPrice"`
	TransactionCount             int             `json:"transactionCount"`
}

// price is the unit price used for valuation on day on.
// Before the first buy, or without a market price, the position is valued at cost.
func (p Position) price(on date.Date) decimal.Decimal {
	if on.Before(p.FirstBuyDate) || p.MarketPrice.IsZero() {
		return p.AveragePrice
	}
	return p.MarketPrice
}

// Snapshot is the reconstructed portfolio on one calendar day.
//
// A Snapshot obtained from a Portfolio is a read-only view: its positions are
// never modified after publication and can be shared between goroutines.
type Snapshot struct {
	Date                    date.Date
	Investment              decimal.Decimal     // total, in the reporting currency
	Value                   decimal.NullDecimal // invalid when a conversion rate is missing
	GrossPerformancePercent float64

	positions map[string]Position
}

func newSnapshot(on date.Date) Snapshot {
	return Snapshot{Date: on, positions: map[string]Position{}}
}

// Position returns the position of symbol.
func (s Snapshot) Position(symbol string) (Position, bool) {
	p, ok := s.positions[symbol]
	return p, ok
}

// Positions iterates over the positions by symbol order.
func (s Snapshot) Positions() iter.Seq2[string, Position] {
	return func(yield func(string, Position) bool) {
		for _, sym := range slices.Sorted(maps.Keys(s.positions)) {
			if !yield(sym, s.positions[sym]) {
				return
			}
		}
	}
}

// Len returns the number of positions, including closed ones.
func (s Snapshot) Len() int { return len(s.positions) }

// Held returns the symbols with a positive quantity, sorted.
func (s Snapshot) Held() []string {
	var held []string
	for sym, p := range s.positions {
		if p.Quantity.IsPositive() {
			held = append(held, sym)
		}
	}
	slices.Sort(held)
	return held
}

// clone returns a snapshot with its own positions map.
func (s Snapshot) clone() Snapshot {
	s.positions = maps.Clone(s.positions)
	if s.positions == nil {
		s.positions = map[string]Position{}
	}
	return s
}

// value computes the valuation rule: sum of held quantities at their price,
// converted. It reports false when a conversion rate is missing.
func (s Snapshot) value(r rates) (decimal.Decimal, bool) {
	sum := decimal.Zero
	for _, p := range s.positions {
		if !p.Quantity.IsPositive() {
			continue
		}
		v, ok := r.convert(p.Quantity.Mul(p.price(s.Date)), p.Currency)
		if !ok {
			return decimal.Zero, false
		}
		sum = sum.Add(v)
	}
	return sum, true
}

// revalue refreshes Value and GrossPerformancePercent from the positions.
func (s *Snapshot) revalue(r rates) {
	v, ok := s.value(r)
	s.Value = decimal.NullDecimal{Decimal: v, Valid: ok}
	s.GrossPerformancePercent = 0
	if ok {
		s.GrossPerformancePercent = ratio(v, s.Investment, 1) - 1
	}
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	positions := make([]Position, 0, len(s.positions))
	for _, p := range s.Positions() {
		positions = append(positions, p)
	}
	var w jsonObjectWriter
	w.Append("date", s.Date)
	w.Append("investment", s.Investment)
	w.Append("value", s.Value)
	w.Append("grossPerformancePercent", s.GrossPerformancePercent)
	w.Append("positions", positions)
	return w.MarshalJSON()
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var temp struct {
		Date                    date.Date           `json:"date"`
		Investment              decimal.Decimal     `json:"investment"`
		Value                   decimal.NullDecimal `json:"value"`
		GrossPerformancePercent float64             `json:"grossPerformancePercent"`
		Positions               []Position          `json:"positions"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*s = newSnapshot(temp.Date)
	s.Investment = temp.Investment
	s.Value = temp.Value
	s.GrossPerformancePercent = temp.GrossPerformancePercent
	for _, p := range temp.Positions {
		s.positions[p.Symbol] = p
	}
	return nil
}
