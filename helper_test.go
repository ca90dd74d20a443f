package folio

import (
	"context"
	"testing"
	"time"

	"github.com/etnz/folio/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// today is the day every test portfolio lives in.
var today = date.New(2023, 6, 15)

func clock() time.Time { return today.Time().Add(10 * time.Hour) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tx(typ Type, on, symbol string, quantity, price float64) Transaction {
	return Transaction{
		ID:        on + "-" + symbol,
		Symbol:    symbol,
		Type:      typ,
		Date:      date.MustParse(on),
		Quantity:  decimal.NewFromFloat(quantity),
		UnitPrice: decimal.NewFromFloat(price),
		Currency:  "USD",
	}
}

func buy(on, symbol string, quantity, price float64) Transaction {
	return tx(Buy, on, symbol, quantity, price)
}

func sell(on, symbol string, quantity, price float64) Transaction {
	return tx(Sell, on, symbol, quantity, price)
}

func draft(t Transaction) Transaction {
	t.Draft = true
	return t
}

// cmpOptions compare decimals by value and snapshots including their positions.
var cmpOptions = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
	cmp.AllowUnexported(Snapshot{}),
}

// fakeQuotes serves fixed prices.
type fakeQuotes struct {
	current map[string]Quote
	monthly Prices
	daily   Prices
}

func (f *fakeQuotes) Current(_ context.Context, symbols []string) (map[string]Quote, error) {
	quotes := map[string]Quote{}
	for _, s := range symbols {
		if q, ok := f.current[s]; ok {
			quotes[s] = q
		}
	}
	return quotes, nil
}

func (f *fakeQuotes) Historical(_ context.Context, _ []string, granularity date.Period, _, _ date.Date) (Prices, error) {
	if granularity == date.Daily {
		return f.daily, nil
	}
	return f.monthly, nil
}

// history builds a price series from day, price pairs.
func history(points ...any) *date.History[decimal.Decimal] {
	h := &date.History[decimal.Decimal]{}
	for i := 0; i+1 < len(points); i += 2 {
		h.Append(date.MustParse(points[i].(string)), decimal.NewFromFloat(points[i+1].(float64)))
	}
	return h
}

// fixedRates is an Exchanger over constant rates to any currency.
type fixedRates map[string]float64

func (f fixedRates) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	r, ok := f[from]
	if !ok {
		return decimal.Zero, ErrNoExchanger
	}
	return decimal.NewFromFloat(r), nil
}

// newPortfolio returns a USD portfolio set with txs.
func newPortfolio(t *testing.T, txs []Transaction, opts ...Option) *Portfolio {
	t.Helper()
	opts = append([]Option{WithClock(clock)}, opts...)
	p := New("USD", opts...)
	if err := p.SetTransactions(context.Background(), txs); err != nil {
		t.Fatalf("SetTransactions() error = %v", err)
	}
	return p
}
