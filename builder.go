package folio

import (
	"slices"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// builder folds a chronological list of committed transactions into a snapshot sequence.
type builder struct {
	today  date.Date
	rates  rates
	relief ReliefMethod
	log    *zap.SugaredLogger
}

// build returns one snapshot on the first of every month from the month of
// the first transaction up to today, plus one for yesterday. Yesterday and
// today are never part of the monthly series. txs must be sorted by date and
// must not contain drafts.
func (b *builder) build(txs []Transaction, monthly, daily Prices) []Snapshot {
	if len(txs) == 0 {
		return nil
	}
	first := txs[0].Date
	symbols := symbolsOf(txs)
	yesterday := b.today.Add(-1)

	var snaps []Snapshot
	months := date.Range{From: first.StartOf(date.Monthly), To: b.today}
	for on := range months.Steps(date.Monthly) {
		if on == yesterday {
			continue
		}
		snaps = append(snaps, seed(on, symbols, monthly))
	}
	if yesterday.After(first) {
		snaps = append(snaps, seed(yesterday, symbols, daily, monthly))
	}
	if len(snaps) == 0 {
		// Trades happened on the first of this month, which is today.
		snaps = append(snaps, seed(b.today, symbols, daily, monthly))
	}

	if len(snaps) == 1 {
		// All trades happened this month and there is no yesterday to report.
		snaps[0].Date = b.today
	} else {
		snaps = slices.DeleteFunc(snaps, func(s Snapshot) bool { return s.Date.Before(first) })
	}

	for _, tx := range txs {
		b.fold(snaps, tx)
	}
	return snaps
}

// seed returns a snapshot holding every symbol at zero quantity, with its market price on that day.
func seed(on date.Date, symbols []string, prices ...Prices) Snapshot {
	s := newSnapshot(on)
	for _, sym := range symbols {
		s.positions[sym] = Position{Symbol: sym, MarketPrice: priceAsOf(on, sym, prices...)}
	}
	s.Value = decimal.NewNullDecimal(decimal.Zero)
	return s
}

// priceAsOf returns the first price found on or before day on. Missing prices are zero.
func priceAsOf(on date.Date, symbol string, sources ...Prices) decimal.Decimal {
	for _, prices := range sources {
		if v, ok := prices[symbol].ValueAsOf(on); ok {
			return v
		}
	}
	return decimal.Zero
}

// fold applies tx to every snapshot from the one of its month onward.
// A transaction after the last snapshot lands in the last one.
func (b *builder) fold(snaps []Snapshot, tx Transaction) {
	if len(snaps) == 0 {
		return
	}
	month := tx.Date.StartOf(date.Monthly)
	from := slices.IndexFunc(snaps, func(s Snapshot) bool { return !s.Date.Before(month) })
	if from < 0 {
		from = len(snaps) - 1
	}

	total := tx.Total()
	converted := b.rates.mustConvert(total, tx.Currency)
	for i := from; i < len(snaps); i++ {
		s := &snaps[i]
		p := s.positions[tx.Symbol]
		p.Symbol = tx.Symbol
		p.Currency = tx.Currency
		p.TransactionCount++

		switch tx.Type {
		case Sell:
			original, reporting := b.relieve(p, tx, converted)
			p.Quantity = p.Quantity.Sub(tx.Quantity)
			if p.Quantity.IsZero() {
				p.Investment = decimal.Zero
				p.InvestmentInOriginalCurrency = decimal.Zero
			} else {
				p.Investment = p.Investment.Sub(reporting)
				p.InvestmentInOriginalCurrency = p.InvestmentInOriginalCurrency.Sub(original)
			}
			// The portfolio gets the whole sale back, whatever the relief method.
			s.Investment = s.Investment.Sub(converted)
		case Item:
			// Items are recorded, they hold no quantity and no investment.
		default:
			if p.FirstBuyDate.IsZero() {
				p.FirstBuyDate = tx.Date
			}
			p.Quantity = p.Quantity.Add(tx.Quantity)
			p.Investment = p.Investment.Add(converted)
			p.InvestmentInOriginalCurrency = p.InvestmentInOriginalCurrency.Add(total)
			s.Investment = s.Investment.Add(converted)
		}

		p.AveragePrice = decimal.Zero
		if p.Quantity.IsPositive() {
			p.AveragePrice = p.InvestmentInOriginalCurrency.Div(p.Quantity)
		}
		s.positions[tx.Symbol] = p
		s.revalue(b.rates)
	}

	if p := snaps[from].positions[tx.Symbol]; p.Quantity.IsNegative() {
		b.log.Warnw("sell exceeds held quantity", "symbol", tx.Symbol, "date", tx.Date.String(), "quantity", p.Quantity.String())
	}
}

// relieve returns the cost basis removed by a sell, in the position currency
// and in the reporting currency.
func (b *builder) relieve(p Position, tx Transaction, proceeds decimal.Decimal) (original, reporting decimal.Decimal) {
	if b.relief == Proceeds || !p.Quantity.IsPositive() {
		return tx.Total(), proceeds
	}
	// The quantity beyond what is held carries no cost basis.
	sold := decimal.Min(tx.Quantity, p.Quantity)
	return p.InvestmentInOriginalCurrency.Mul(sold).Div(p.Quantity), p.Investment.Mul(sold).Div(p.Quantity)
}

// symbolsOf returns the distinct symbols of txs, sorted.
func symbolsOf(txs []Transaction) []string {
	symbols := make([]string, 0, len(txs))
	for _, tx := range txs {
		symbols = append(symbols, tx.Symbol)
	}
	slices.Sort(symbols)
	return slices.Compact(symbols)
}
