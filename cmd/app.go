// Package cmd implements the CLI application to analyze a portfolio.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/cache"
	"github.com/etnz/folio/eodhd"
	"github.com/etnz/folio/internal/config"
	"github.com/etnz/folio/internal/logger"
	"github.com/etnz/folio/yahoo"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// as a CLI application, it has a very short lived lifecycle: every command
// loads the app once and exits.

// app is what every command needs.
type app struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// loadApp reads the configuration and builds the logger.
func loadApp(ctx context.Context) (*app, context.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, ctx, err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, ctx, err
	}
	return &app{cfg: cfg, log: log}, logger.WithContext(ctx, log), nil
}

// provider returns the configured quote source and exchanger, cached.
func (a *app) provider() (folio.QuoteSource, folio.Exchanger) {
	var (
		quotes folio.QuoteSource
		ex     folio.Exchanger
	)
	switch a.cfg.Provider {
	case config.ProviderEODHD:
		c := eodhd.New(a.cfg.EODHDAPIKey, eodhd.WithTimeout(a.cfg.HTTPTimeout), eodhd.WithLogger(a.log))
		quotes, ex = c, c
	default:
		c := yahoo.New(yahoo.WithTimeout(a.cfg.HTTPTimeout), yahoo.WithRateLimit(a.cfg.RateLimit), yahoo.WithLogger(a.log))
		quotes, ex = c, c
	}
	return cache.NewQuotes(quotes, a.cfg.CacheTTL), cache.NewExchanger(ex, a.cfg.CacheTTL)
}

// portfolio loads the transactions and the cash accounts, and reconstructs
// the history up to today.
func (a *app) portfolio(ctx context.Context) (*folio.Portfolio, error) {
	relief, err := folio.ParseReliefMethod(a.cfg.Relief)
	if err != nil {
		return nil, err
	}
	txs, err := a.transactions()
	if err != nil {
		return nil, err
	}
	cash, err := a.accounts()
	if err != nil {
		return nil, err
	}
	quotes, ex := a.provider()
	p := folio.New(a.cfg.Currency,
		folio.WithQuotes(quotes),
		folio.WithExchanger(ex),
		folio.WithCash(cash),
		folio.WithRelief(relief),
		folio.WithLogger(a.log),
	)
	if err := p.SetTransactions(ctx, txs); err != nil {
		return nil, err
	}
	if err := p.AddCurrent(ctx); err != nil {
		return nil, err
	}
	a.log.Debugw("portfolio loaded", "transactions", len(txs), "snapshots", len(p.Snapshots()))
	return p, nil
}

// transactions decodes the transaction file. A missing file is an empty portfolio.
func (a *app) transactions() ([]folio.Transaction, error) {
	f, err := os.Open(a.cfg.Transactions)
	if errors.Is(err, fs.ErrNotExist) {
		a.log.Warnw("transaction file does not exist, starting from an empty portfolio", "file", a.cfg.Transactions)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txs, err := folio.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", a.cfg.Transactions, err)
	}
	return txs, nil
}

// appendTransactions writes txs at the end of the transaction file.
func (a *app) appendTransactions(txs []folio.Transaction) error {
	f, err := os.OpenFile(a.cfg.Transactions, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error opening transaction file %q: %w", a.cfg.Transactions, err)
	}
	if err := folio.EncodeTransactions(f, txs); err != nil {
		f.Close()
		return fmt.Errorf("error writing to transaction file %q: %w", a.cfg.Transactions, err)
	}
	return f.Close()
}

type accountRow struct {
	Name    string          `csv:"name"`
	Balance decimal.Decimal `csv:"balance"`
}

// accounts reads the cash accounts file, if configured.
func (a *app) accounts() (folio.StaticCash, error) {
	if a.cfg.Accounts == "" {
		return nil, nil
	}
	f, err := os.Open(a.cfg.Accounts)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeAccounts(f)
}

func decodeAccounts(r io.Reader) (folio.StaticCash, error) {
	var rows []accountRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("error decoding accounts: %w", err)
	}
	cash := make(folio.StaticCash, 0, len(rows))
	for _, row := range rows {
		cash = append(cash, folio.AccountBalance{Name: row.Name, Balance: row.Balance})
	}
	return cash, nil
}
