package folio

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"testing"

	"github.com/etnz/folio/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestPortfolio_Symbols(t *testing.T) {
	p := newPortfolio(t, []Transaction{
		buy("2023-02-05", "ZZZ", 1, 10),
		buy("2023-01-05", "AAA", 1, 10),
		buy("2023-03-05", "AAA", 1, 10),
		draft(buy("2023-07-05", "DRAFT", 1, 10)),
		sell("2023-04-05", "ZZZ", 1, 10),
	})
	if diff := cmp.Diff([]string{"AAA", "ZZZ"}, p.Symbols()); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"AAA"}, p.SymbolsAt(date.New(2023, 5, 1))); diff != "" {
		t.Errorf("SymbolsAt() mismatch (-want +got):\n%s", diff)
	}
	if got := p.SymbolsAt(date.New(2023, 5, 2)); got != nil {
		t.Errorf("SymbolsAt(no snapshot) = %v, want nil", got)
	}
	if got, ok := p.MinDate(); !ok || got != date.New(2023, 1, 5) {
		t.Errorf("MinDate() = %v, %v, want 2023-01-05, true", got, ok)
	}
	if got := len(p.Transactions("AAA")); got != 2 {
		t.Errorf("len(Transactions(AAA)) = %d, want 2", got)
	}
	all := p.Transactions("")
	if len(all) != 5 {
		t.Fatalf("len(Transactions()) = %d, want 5", len(all))
	}
	if !slices.IsSortedFunc(all, func(a, b Transaction) int { return a.Date.Compare(b.Date) }) {
		t.Errorf("Transactions() is not sorted by date")
	}
}

func TestPortfolio_Empty(t *testing.T) {
	p := New("USD", WithClock(clock))
	if _, ok := p.MinDate(); ok {
		t.Errorf("MinDate() ok on an empty portfolio")
	}
	if got := p.Symbols(); len(got) != 0 {
		t.Errorf("Symbols() = %v, want none", got)
	}
	if got := p.Positions(today); len(got) != 0 {
		t.Errorf("Positions() = %v, want none", got)
	}
	if got := p.Investment(today); !got.IsZero() {
		t.Errorf("Investment() = %v, want 0", got)
	}
	if got := p.CommittedFunds(); !got.IsZero() {
		t.Errorf("CommittedFunds() = %v, want 0", got)
	}
}

func TestPortfolio_Totals(t *testing.T) {
	b := buy("2023-01-05", "XYZ", 10, 100)
	b.Fee = dec("5")
	s := sell("2023-03-10", "XYZ", 4, 120)
	s.Fee = dec("2")
	item := tx(Item, "2023-02-01", "WATCH", 1, 300)
	d := draft(buy("2023-07-01", "XYZ", 1, 100))
	d.Fee = dec("100")
	p := newPortfolio(t, []Transaction{b, s, item, d})

	testCases := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"TotalBuy", p.TotalBuy(), "1000"},
		{"TotalSell", p.TotalSell(), "480"},
		{"CommittedFunds", p.CommittedFunds(), "520"},
		{"Fees()", p.Fees(date.Date{}), "7"},
		{"Fees(2023-01-05)", p.Fees(date.New(2023, 1, 5)), "2"},
		{"Fees(2023-03-10)", p.Fees(date.New(2023, 3, 10)), "0"},
	}
	for _, tc := range testCases {
		if !tc.got.Equal(dec(tc.want)) {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestPortfolio_DraftsNeverFolded(t *testing.T) {
	committed := []Transaction{buy("2023-01-05", "XYZ", 10, 100)}
	withDrafts := append(slices.Clone(committed),
		draft(buy("2023-02-05", "XYZ", 10, 100)),
		draft(sell("2023-03-05", "XYZ", 5, 100)),
	)
	want := newPortfolio(t, committed).Snapshots()
	got := newPortfolio(t, withDrafts).Snapshots()
	if diff := cmp.Diff(want, got, cmpOptions); diff != "" {
		t.Errorf("drafts changed the history (-without +with):\n%s", diff)
	}
}

func TestPortfolio_AddCurrent(t *testing.T) {
	quotes := &fakeQuotes{current: map[string]Quote{
		"XYZ": {MarketPrice: dec("130"), Currency: "USD", MarketState: MarketOpen},
	}}
	p := newPortfolio(t, []Transaction{buy("2023-01-05", "XYZ", 10, 100)}, WithQuotes(quotes))

	if err := p.AddCurrent(context.Background()); err != nil {
		t.Fatalf("AddCurrent() error = %v", err)
	}
	s, ok := p.At(today)
	if !ok {
		t.Fatalf("At(today) not found after AddCurrent")
	}
	if got, want := s.Investment, dec("1000"); !got.Equal(want) {
		t.Errorf("Investment = %v, want %v", got, want)
	}
	if got, _ := p.Value(today); !got.Equal(dec("1300")) {
		t.Errorf("Value(today) = %v, want 1300", got)
	}
	if got, want := s.GrossPerformancePercent, 0.3; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("GrossPerformancePercent = %v, want %v", got, want)
	}

	// a second call replaces today's snapshot
	n := len(p.Snapshots())
	if err := p.AddCurrent(context.Background()); err != nil {
		t.Fatalf("AddCurrent() error = %v", err)
	}
	if got := len(p.Snapshots()); got != n {
		t.Errorf("len(Snapshots()) = %d after a second AddCurrent, want %d", got, n)
	}
	if !slices.IsSortedFunc(p.Snapshots(), func(a, b Snapshot) int { return a.Date.Compare(b.Date) }) {
		t.Errorf("Snapshots() is not sorted")
	}
}

func TestPortfolio_AddCurrentWithoutInvestment(t *testing.T) {
	p := newPortfolio(t, []Transaction{
		buy("2023-01-05", "XYZ", 10, 100),
		sell("2023-02-05", "XYZ", 10, 100),
	})
	n := len(p.Snapshots())
	if err := p.AddCurrent(context.Background()); err != nil {
		t.Fatalf("AddCurrent() error = %v", err)
	}
	if got := len(p.Snapshots()); got != n {
		t.Errorf("len(Snapshots()) = %d, want %d", got, n)
	}
}

func TestPortfolio_AddFuture(t *testing.T) {
	p := newPortfolio(t, []Transaction{
		buy("2023-06-15", "XYZ", 10, 100),
		draft(buy("2023-09-01", "XYZ", 1, 100)),
		draft(buy("2023-08-01", "XYZ", 2, 100)),
	})
	for range 2 {
		if err := p.AddFuture(context.Background()); err != nil {
			t.Fatalf("AddFuture() error = %v", err)
		}
	}
	want := map[string]string{
		"2023-06-15": "1000",
		"2023-08-01": "1200",
		"2023-09-01": "1300",
	}
	got := map[string]string{}
	for _, s := range p.Snapshots() {
		got[s.Date.String()] = s.Investment.String()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("projected investments mismatch (-want +got):\n%s", diff)
	}
	if s, _ := p.At(date.New(2023, 8, 1)); s.Len() != 0 {
		t.Errorf("projected snapshot has %d positions, want 0", s.Len())
	}

	// a rebuild allows a new projection
	if err := p.SetTransactions(context.Background(), p.Transactions("")); err != nil {
		t.Fatalf("SetTransactions() error = %v", err)
	}
	if got := len(p.Snapshots()); got != 1 {
		t.Errorf("len(Snapshots()) = %d after rebuild, want 1", got)
	}
}

func TestPortfolio_Restore(t *testing.T) {
	txs := []Transaction{
		buy("2023-01-05", "XYZ", 10, 100),
		sell("2023-03-10", "XYZ", 4, 120),
	}
	src := newPortfolio(t, txs)
	data, err := json.Marshal(src.Snapshots())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var snaps []Snapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	dst := New("USD", WithClock(clock))
	if err := dst.Restore(context.Background(), txs, snaps); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if diff := cmp.Diff(src.Snapshots(), dst.Snapshots(), cmpOptions); diff != "" {
		t.Errorf("restored snapshots mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(src.Performance(WholeLife), dst.Performance(WholeLife), cmpOptions); diff != "" {
		t.Errorf("restored performance mismatch (-want +got):\n%s", diff)
	}
}

func TestPortfolio_ReadOnlySnapshots(t *testing.T) {
	p := newPortfolio(t, []Transaction{buy("2023-01-05", "XYZ", 10, 100)})
	on := date.New(2023, 2, 1)
	positions := p.Positions(on)
	positions["XYZ"] = Position{}
	delete(positions, "XYZ")

	snaps := p.Snapshots()
	snaps[0].Investment = dec("-1")

	if pos := p.Positions(on)["XYZ"]; !pos.Quantity.Equal(dec("10")) {
		t.Errorf("Quantity = %v after caller mutation, want 10", pos.Quantity)
	}
	if got := p.Investment(on); !got.Equal(dec("1000")) {
		t.Errorf("Investment() = %v after caller mutation, want 1000", got)
	}
}

func TestPortfolio_ConcurrentReads(t *testing.T) {
	a := []Transaction{buy("2023-01-05", "XYZ", 10, 100)}
	b := []Transaction{buy("2023-01-05", "XYZ", 20, 100)}
	p := newPortfolio(t, a)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txs := a
			if i%2 == 1 {
				txs = b
			}
			for range 20 {
				if err := p.SetTransactions(ctx, txs); err != nil {
					t.Errorf("SetTransactions() error = %v", err)
					return
				}
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				// every published state is complete: the investment and the position agree
				s, ok := p.At(date.New(2023, 3, 1))
				if !ok {
					t.Errorf("At() not found")
					return
				}
				pos, _ := s.Position("XYZ")
				if !pos.Investment.Equal(s.Investment) {
					t.Errorf("position investment %v != snapshot investment %v", pos.Investment, s.Investment)
					return
				}
			}
		}()
	}
	wg.Wait()
}
