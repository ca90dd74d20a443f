package folio

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Portfolio owns a transaction list and the snapshot sequence rebuilt from it.
//
// All methods are safe for concurrent use. Mutating methods build a new state
// and publish it at once; readers see either the previous or the new state.
type Portfolio struct {
	currency string
	userID   string

	quotes    QuoteSource
	exchanger Exchanger
	cash      CashSource
	now       func() time.Time
	relief    ReliefMethod
	log       *zap.SugaredLogger

	writer sync.Mutex // at most one rebuild in flight
	mu     sync.RWMutex
	st     *state
}

// state is an immutable view of a portfolio.
type state struct {
	txs       []Transaction // sorted by date, drafts included
	snapshots []Snapshot
	rates     rates
	projected bool // AddFuture already applied
}

// New returns an empty portfolio reporting in currency.
func New(currency string, opts ...Option) *Portfolio {
	p := &Portfolio{
		currency:  currency,
		quotes:    NoQuotes{},
		exchanger: noExchanger{},
		cash:      NoCash{},
		now:       time.Now,
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.st = &state{rates: newRates(currency)}
	return p
}

// Currency returns the reporting currency.
func (p *Portfolio) Currency() string { return p.currency }

// today is the current UTC day according to the portfolio clock.
func (p *Portfolio) today() date.Date { return date.On(p.now()) }

func (p *Portfolio) load() *state {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.st
}

func (p *Portfolio) publish(st *state) {
	p.mu.Lock()
	p.st = st
	p.mu.Unlock()
}

// SetTransactions replaces every transaction and rebuilds the snapshot sequence.
//
// Transactions may come in any order, they are sorted by date (stable).
// On error, the portfolio keeps its previous state.
func (p *Portfolio) SetTransactions(ctx context.Context, txs []Transaction) error {
	p.writer.Lock()
	defer p.writer.Unlock()

	start := time.Now()
	sorted := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return err
		}
		tx.Profile = tx.Profile.clone()
		sorted = append(sorted, tx)
	}
	slices.SortStableFunc(sorted, func(a, b Transaction) int { return a.Date.Compare(b.Date) })

	currencies := make([]string, 0, len(sorted))
	for _, tx := range sorted {
		currencies = append(currencies, tx.Currency)
	}
	rs, err := newRates(p.currency).with(ctx, p.exchanger, currencies...)
	if err != nil {
		return err
	}

	committed := slices.DeleteFunc(slices.Clone(sorted), func(tx Transaction) bool { return tx.Draft })
	today := p.today()
	var monthly, daily Prices
	if len(committed) > 0 {
		symbols := symbolsOf(committed)
		from := committed[0].Date.StartOf(date.Monthly)
		if monthly, err = p.quotes.Historical(ctx, symbols, date.Monthly, from, today); err != nil {
			return fmt.Errorf("failed to get monthly prices: %w", err)
		}
		// a week back so that yesterday has a close even after a weekend
		yesterday := today.Add(-1)
		if daily, err = p.quotes.Historical(ctx, symbols, date.Daily, yesterday.Add(-6), yesterday); err != nil {
			return fmt.Errorf("failed to get daily prices: %w", err)
		}
	}

	b := builder{today: today, rates: rs, relief: p.relief, log: p.log}
	snaps := b.build(committed, monthly, daily)
	p.publish(&state{txs: sorted, snapshots: snaps, rates: rs})

	p.log.Debugw("portfolio rebuilt",
		"transactions", len(sorted),
		"snapshots", len(snaps),
		"duration", time.Since(start),
	)
	return nil
}

// Restore replaces the portfolio state with previously computed snapshots,
// for instance decoded from JSON, without querying any collaborator but the Exchanger.
func (p *Portfolio) Restore(ctx context.Context, txs []Transaction, snapshots []Snapshot) error {
	p.writer.Lock()
	defer p.writer.Unlock()

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b Transaction) int { return a.Date.Compare(b.Date) })
	snaps := make([]Snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		snaps = append(snaps, s.clone())
	}
	slices.SortStableFunc(snaps, func(a, b Snapshot) int { return a.Date.Compare(b.Date) })

	currencies := make([]string, 0, len(sorted))
	for _, tx := range sorted {
		currencies = append(currencies, tx.Currency)
	}
	rs, err := newRates(p.currency).with(ctx, p.exchanger, currencies...)
	if err != nil {
		return err
	}
	p.publish(&state{txs: sorted, snapshots: snaps, rates: rs})
	return nil
}

// AddCurrent appends a snapshot for today, made of yesterday's positions
// priced with current quotes. Nothing is added when yesterday has no investment.
// A snapshot already dated today is replaced.
func (p *Portfolio) AddCurrent(ctx context.Context) error {
	p.writer.Lock()
	defer p.writer.Unlock()

	st := p.load()
	today := p.today()
	symbols := st.symbols()
	quotes, err := p.quotes.Current(ctx, symbols)
	if err != nil {
		return fmt.Errorf("failed to get current quotes: %w", err)
	}

	yesterday, ok := st.at(today.Add(-1))
	if !ok || yesterday.Investment.IsZero() {
		return nil
	}
	current := newSnapshot(today)
	current.Investment = yesterday.Investment
	for _, sym := range symbols {
		pos := yesterday.positions[sym]
		pos.Symbol = sym
		if q, ok := quotes[sym]; ok {
			pos.MarketPrice = q.MarketPrice
		}
		current.positions[sym] = pos
	}
	current.revalue(st.rates)

	next := *st
	next.snapshots = slices.DeleteFunc(slices.Clone(st.snapshots), func(s Snapshot) bool { return s.Date == today })
	next.snapshots = insertSorted(next.snapshots, current)
	p.publish(&next)
	return nil
}

// AddFuture projects draft transactions: starting from today's investment,
// each draft adds its converted total, and the running investment is set on
// the snapshot dated like the draft, created with no positions if needed.
// Only the first call after a rebuild has an effect.
func (p *Portfolio) AddFuture(ctx context.Context) error {
	p.writer.Lock()
	defer p.writer.Unlock()

	st := p.load()
	if st.projected {
		return nil
	}
	investment := st.investment(p.today())
	next := *st
	next.projected = true
	next.snapshots = slices.Clone(st.snapshots)
	for _, tx := range st.txs {
		if !tx.Draft {
			continue
		}
		investment = investment.Add(st.rates.mustConvert(tx.Total(), tx.Currency))
		i := slices.IndexFunc(next.snapshots, func(s Snapshot) bool { return s.Date == tx.Date })
		if i >= 0 {
			next.snapshots[i].Investment = investment
			continue
		}
		s := newSnapshot(tx.Date)
		s.Investment = investment
		next.snapshots = insertSorted(next.snapshots, s)
	}
	p.publish(&next)
	return nil
}

func insertSorted(snaps []Snapshot, s Snapshot) []Snapshot {
	i, _ := slices.BinarySearchFunc(snaps, s.Date, func(x Snapshot, on date.Date) int { return x.Date.Compare(on) })
	return slices.Insert(snaps, i, s)
}

// Snapshots returns the snapshot sequence in date order.
// The returned slice is the caller's, the snapshots are read-only views.
func (p *Portfolio) Snapshots() []Snapshot { return slices.Clone(p.load().snapshots) }

// At returns the snapshot of day on.
func (p *Portfolio) At(on date.Date) (Snapshot, bool) { return p.load().at(on) }

// Value returns the valuation of day on. It reports false when a conversion
// rate is missing. A day without snapshot is worth zero.
func (p *Portfolio) Value(on date.Date) (decimal.Decimal, bool) { return p.load().value(on) }

// Investment returns the invested amount on day on, zero without snapshot.
func (p *Portfolio) Investment(on date.Date) decimal.Decimal { return p.load().investment(on) }

// Positions returns the positions of day on, keyed by symbol.
func (p *Portfolio) Positions(on date.Date) map[string]Position {
	s, ok := p.load().at(on)
	if !ok {
		return map[string]Position{}
	}
	return s.clone().positions
}

// Symbols returns the distinct symbols of committed transactions, sorted.
func (p *Portfolio) Symbols() []string { return p.load().symbols() }

// SymbolsAt returns the symbols held with a positive quantity on day on, sorted.
func (p *Portfolio) SymbolsAt(on date.Date) []string {
	s, ok := p.load().at(on)
	if !ok {
		return nil
	}
	return s.Held()
}

// MinDate returns the date of the earliest committed transaction.
func (p *Portfolio) MinDate() (date.Date, bool) { return p.load().minDate() }

// Transactions returns the transactions of symbol, or all of them when symbol is empty, by date.
func (p *Portfolio) Transactions(symbol string) []Transaction {
	st := p.load()
	if symbol == "" {
		return slices.Clone(st.txs)
	}
	var txs []Transaction
	for _, tx := range st.txs {
		if tx.Symbol == symbol {
			txs = append(txs, tx)
		}
	}
	return txs
}

// Fees returns the converted fees of committed transactions strictly after day after.
// The zero Date counts every fee.
func (p *Portfolio) Fees(after date.Date) decimal.Decimal { return p.load().fees(after) }

// TotalBuy returns the converted total of committed buys and items.
func (p *Portfolio) TotalBuy() decimal.Decimal { return p.load().total(Buy) }

// TotalSell returns the converted total of committed sells.
func (p *Portfolio) TotalSell() decimal.Decimal { return p.load().total(Sell) }

// CommittedFunds is TotalBuy minus TotalSell.
func (p *Portfolio) CommittedFunds() decimal.Decimal { return p.load().committedFunds() }

func (st *state) at(on date.Date) (Snapshot, bool) {
	i, found := slices.BinarySearchFunc(st.snapshots, on, func(s Snapshot, on date.Date) int { return s.Date.Compare(on) })
	if !found {
		return Snapshot{}, false
	}
	return st.snapshots[i], true
}

func (st *state) value(on date.Date) (decimal.Decimal, bool) {
	s, ok := st.at(on)
	if !ok {
		return decimal.Zero, true
	}
	return s.value(st.rates)
}

func (st *state) investment(on date.Date) decimal.Decimal {
	s, _ := st.at(on)
	return s.Investment
}

func (st *state) committed() []Transaction {
	var txs []Transaction
	for _, tx := range st.txs {
		if !tx.Draft {
			txs = append(txs, tx)
		}
	}
	return txs
}

func (st *state) symbols() []string { return symbolsOf(st.committed()) }

func (st *state) minDate() (date.Date, bool) {
	for _, tx := range st.txs {
		if !tx.Draft {
			return tx.Date, true
		}
	}
	return date.Date{}, false
}

func (st *state) fees(after date.Date) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range st.committed() {
		if tx.Date.After(after) {
			sum = sum.Add(st.rates.mustConvert(tx.Fee, tx.Currency))
		}
	}
	return sum
}

func (st *state) total(types ...Type) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range st.committed() {
		if slices.Contains(types, tx.Type) {
			sum = sum.Add(st.rates.mustConvert(tx.Total(), tx.Currency))
		}
	}
	return sum
}

func (st *state) committedFunds() decimal.Decimal { return st.total(Buy).Sub(st.total(Sell)) }
