package folio

import (
	"context"
	"fmt"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

const (
	// CashSymbol is the Details key of the cash pseudo position.
	CashSymbol = "CASH"
	// UnknownKey stands for a missing account, country or sector name.
	UnknownKey = "UNKNOWN"
)

// AccountShare is what one account contributes to a position, in the reporting currency.
type AccountShare struct {
	Current  decimal.Decimal
	Original decimal.Decimal
}

// CountryShare is a country exposure with its resolved name and continent.
type CountryShare struct {
	Code      string
	Name      string
	Continent string
	Weight    float64
}

// SectorShare is a sector exposure.
type SectorShare struct {
	Name   string
	Weight float64
}

// Detail describes one held position today, measured over a DateRange.
//
// Value and Investment are in the reporting currency, MarketPrice is in Currency.
type Detail struct {
	Symbol      string
	Name        string
	Type        string
	Currency    string
	MarketPrice decimal.Decimal
	MarketState MarketState

	Quantity         decimal.Decimal
	Investment       decimal.Decimal
	Value            decimal.Decimal
	TransactionCount int

	AllocationCurrent       float64 // share of the total value, cash included
	AllocationInvestment    float64 // share of the total investment, cash included
	GrossPerformance        decimal.Decimal
	GrossPerformancePercent float64

	Accounts  map[string]AccountShare
	Countries []CountryShare
	Sectors   []SectorShare
}

// Details returns a Detail for every symbol held today plus the CashSymbol
// entry. Today is the latest snapshot not after today.
//
// It fails when the current quotes or the cash balances cannot be fetched.
func (p *Portfolio) Details(ctx context.Context, r DateRange) (map[string]Detail, error) {
	st := p.load()
	today := p.today()

	cash, err := p.cash.CashDetails(ctx, p.userID, p.currency)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash details: %w", err)
	}

	now, ok := st.latest(today)
	symbols := now.Held()
	quotes, err := p.quotes.Current(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to get current quotes: %w", err)
	}

	minDate, _ := st.minDate()
	ref, windowed := r.ReferenceDate(today, minDate)
	var before Snapshot
	var hasBefore bool
	if windowed {
		before, hasBefore = st.at(ref)
	}

	investment := cash.Balance
	value := cash.Balance
	if ok {
		investment = investment.Add(now.Investment)
		v, _ := now.value(st.rates)
		value = value.Add(v)
	}

	details := make(map[string]Detail, len(symbols)+1)
	for _, sym := range symbols {
		pos, _ := now.Position(sym)
		quote := quotes[sym]

		nowPrice := pos.price(now.Date)
		if pos.FirstBuyDate == today {
			nowPrice = pos.AveragePrice
		}
		beforePrice := pos.AveragePrice
		if hasBefore && pos.FirstBuyDate.Before(before.Date) {
			prev, _ := before.Position(sym)
			switch r {
			case OneDay:
				beforePrice = prev.MarketPrice
			case YearToDate:
				if !prev.MarketPrice.IsZero() {
					beforePrice = prev.MarketPrice
				}
			}
		}

		currency := quote.Currency
		if currency == "" {
			currency = pos.Currency
		} else if _, known := st.rates.convert(decimal.Zero, currency); !known {
			p.log.Warnw("no rate for quote currency, using the transaction currency", "symbol", sym, "quote", currency, "currency", pos.Currency)
			currency = pos.Currency
		}
		current, _ := st.rates.convert(pos.Quantity.Mul(nowPrice), currency)
		change := nowPrice.Sub(beforePrice)

		d := Detail{
			Symbol:                  sym,
			Name:                    quote.Name,
			Type:                    quote.Type,
			Currency:                currency,
			MarketPrice:             pos.MarketPrice,
			MarketState:             quote.MarketState,
			Quantity:                pos.Quantity,
			Investment:              pos.Investment,
			Value:                   current,
			TransactionCount:        pos.TransactionCount,
			AllocationCurrent:       ratio(current, value, 0),
			AllocationInvestment:    ratio(pos.Investment, investment, 0),
			GrossPerformance:        pos.Quantity.Mul(change).Round(2),
			GrossPerformancePercent: roundTo(ratio(change, beforePrice, 0), 4),
			Accounts:                map[string]AccountShare{},
		}
		var last Transaction
		for _, tx := range st.committed() {
			if tx.Symbol != sym {
				continue
			}
			share := AccountShare{
				Current:  st.rates.mustConvert(tx.Quantity.Mul(nowPrice), tx.Currency),
				Original: st.rates.mustConvert(tx.Total(), tx.Currency),
			}
			if tx.Type == Sell {
				share.Current, share.Original = share.Current.Neg(), share.Original.Neg()
			}
			acc := d.Accounts[tx.AccountName()]
			acc.Current = acc.Current.Add(share.Current)
			acc.Original = acc.Original.Add(share.Original)
			d.Accounts[tx.AccountName()] = acc
			last = tx
		}
		for _, c := range last.Profile.Countries {
			name, continent := CountryOf(c.Code)
			d.Countries = append(d.Countries, CountryShare{Code: c.Code, Name: name, Continent: continent, Weight: c.Weight})
		}
		for _, s := range last.Profile.Sectors {
			name := s.Name
			if name == "" {
				name = UnknownKey
			}
			d.Sectors = append(d.Sectors, SectorShare{Name: name, Weight: s.Weight})
		}
		details[sym] = d
	}

	details[CashSymbol] = cashDetail(p.currency, cash, investment, value)
	return details, nil
}

func cashDetail(currency string, cash CashDetails, investment, value decimal.Decimal) Detail {
	d := Detail{
		Symbol:               CashSymbol,
		Name:                 "Cash",
		Type:                 "Cash",
		Currency:             currency,
		MarketState:          MarketOpen,
		Investment:           cash.Balance,
		Value:                cash.Balance,
		AllocationCurrent:    ratio(cash.Balance, value, 0),
		AllocationInvestment: ratio(cash.Balance, investment, 0),
		Accounts:             map[string]AccountShare{},
	}
	for _, acc := range cash.Accounts {
		d.Accounts[acc.Name] = AccountShare{Current: acc.Balance, Original: acc.Balance}
	}
	return d
}

// latest returns the last snapshot dated on or before on.
func (st *state) latest(on date.Date) (Snapshot, bool) {
	for i := len(st.snapshots) - 1; i >= 0; i-- {
		if !st.snapshots[i].Date.After(on) {
			return st.snapshots[i], true
		}
	}
	return Snapshot{}, false
}
