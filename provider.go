package folio

//go:generate mockgen -source=provider.go -destination=internal/mocks/mock_provider.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// MarketState tells how fresh a current quote is.
type MarketState string

const (
	MarketOpen    MarketState = "open"
	MarketClosed  MarketState = "closed"
	MarketDelayed MarketState = "delayed"
)

// Quote is the current market data of one symbol.
type Quote struct {
	MarketPrice decimal.Decimal
	Currency    string
	MarketState MarketState
	Name        string
	Type        string // e.g. "EQUITY", "ETF"
}

// Prices is a historical price series per symbol.
type Prices map[string]*date.History[decimal.Decimal]

// QuoteSource supplies market prices.
//
// Implementations return an empty or partial result for unknown symbols
// instead of an error. An error means the source itself failed.
type QuoteSource interface {
	// Current returns the latest quote of each symbol.
	Current(ctx context.Context, symbols []string) (map[string]Quote, error)
	// Historical returns prices between from and to, both included, sampled
	// by granularity (date.Daily or date.Monthly).
	Historical(ctx context.Context, symbols []string, granularity date.Period, from, to date.Date) (Prices, error)
}

// Exchanger returns how many units of currency `to` one unit of `from` is worth now.
type Exchanger interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// AccountBalance is the cash held on one account.
type AccountBalance struct {
	Name    string
	Balance decimal.Decimal
}

// CashDetails is the cash held by a user, in the requested currency.
type CashDetails struct {
	Balance  decimal.Decimal
	Accounts []AccountBalance
}

// CashSource supplies cash balances.
type CashSource interface {
	CashDetails(ctx context.Context, userID, currency string) (CashDetails, error)
}

// ErrNoExchanger is returned when amounts need a conversion and no Exchanger was configured.
var ErrNoExchanger = errors.New("no exchanger configured")

// NoQuotes is a QuoteSource without any data, every position is valued at cost.
type NoQuotes struct{}

func (NoQuotes) Current(context.Context, []string) (map[string]Quote, error) {
	return map[string]Quote{}, nil
}

func (NoQuotes) Historical(context.Context, []string, date.Period, date.Date, date.Date) (Prices, error) {
	return Prices{}, nil
}

// NoCash is a CashSource reporting no cash at all.
type NoCash struct{}

func (NoCash) CashDetails(context.Context, string, string) (CashDetails, error) {
	return CashDetails{}, nil
}

// noExchanger only knows the identity rate.
type noExchanger struct{}

func (noExchanger) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	return decimal.Zero, fmt.Errorf("%w: cannot convert %s to %s", ErrNoExchanger, from, to)
}

// StaticCash is a CashSource over fixed balances, already in the reporting currency.
type StaticCash []AccountBalance

func (s StaticCash) CashDetails(context.Context, string, string) (CashDetails, error) {
	details := CashDetails{Accounts: append([]AccountBalance(nil), s...)}
	for _, acc := range s {
		details.Balance = details.Balance.Add(acc.Balance)
	}
	return details, nil
}
