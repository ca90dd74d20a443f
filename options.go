package folio

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Portfolio.
type Option func(*Portfolio)

// WithQuotes sets the source of market prices. Without it, positions are valued at cost.
func WithQuotes(q QuoteSource) Option {
	return func(p *Portfolio) {
		if q != nil {
			p.quotes = q
		}
	}
}

// WithExchanger sets the currency converter. Without it, only the reporting currency is accepted.
func WithExchanger(ex Exchanger) Option {
	return func(p *Portfolio) {
		if ex != nil {
			p.exchanger = ex
		}
	}
}

// WithCash sets the source of cash balances.
func WithCash(c CashSource) Option {
	return func(p *Portfolio) {
		if c != nil {
			p.cash = c
		}
	}
}

// WithClock sets the function returning the current time, today is its UTC day.
func WithClock(now func() time.Time) Option {
	return func(p *Portfolio) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Portfolio) {
		if log != nil {
			p.log = log
		}
	}
}

// WithRelief sets how sells relieve the cost basis.
func WithRelief(m ReliefMethod) Option { return func(p *Portfolio) { p.relief = m } }

// WithUser sets the user id passed to the CashSource.
func WithUser(id string) Option { return func(p *Portfolio) { p.userID = id } }
