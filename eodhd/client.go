// Package eodhd implements folio.QuoteSource and folio.Exchanger over the
// EODHD REST API (https://eodhd.com/financial-apis).
//
// Symbols are EODHD tickers such as "MCD.US" or "SAP.XETRA". Responses are
// cached on disk and expire with the period they were fetched in: prices of
// the day expire the next day, the monthly series the next month.
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://eodhd.com/api"

// Client queries EODHD.
type Client struct {
	apiKey   string
	baseURL  string
	cacheDir string
	timeout  time.Duration
	base     http.RoundTripper
	log      *zap.SugaredLogger

	daily, monthly *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mostly for tests.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithCacheDir sets where responses are cached. The empty string disables the cache.
func WithCacheDir(dir string) Option { return func(c *Client) { c.cacheDir = dir } }

// WithTransport sets the transport used on cache misses.
func WithTransport(rt http.RoundTripper) Option { return func(c *Client) { c.base = rt } }

// WithTimeout sets the timeout of every request.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option { return func(c *Client) { c.log = log } }

// New returns a client authenticated with apiKey ("demo" works for a few tickers).
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		cacheDir: os.TempDir(),
		timeout:  30 * time.Second,
		base:     http.DefaultTransport,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.daily = c.cachingClient(date.Daily)
	c.monthly = c.cachingClient(date.Monthly)
	return c
}

var (
	_ folio.QuoteSource = (*Client)(nil)
	_ folio.Exchanger   = (*Client)(nil)
)

// Historical returns closing prices. Monthly granularity returns one close per
// month, dated on the first trading day EODHD reports for it.
func (c *Client) Historical(ctx context.Context, symbols []string, granularity date.Period, from, to date.Date) (folio.Prices, error) {
	prices := folio.Prices{}
	for _, sym := range symbols {
		h, err := c.fetchPrices(ctx, sym, granularity, from, to)
		if err != nil {
			return nil, err
		}
		if h.Len() > 0 {
			prices[sym] = h
		}
	}
	return prices, nil
}

// Current returns delayed live quotes.
func (c *Client) Current(ctx context.Context, symbols []string) (map[string]folio.Quote, error) {
	quotes := make(map[string]folio.Quote, len(symbols))
	for _, sym := range symbols {
		q, ok, err := c.fetchRealTime(ctx, sym)
		if err != nil {
			return nil, err
		}
		if ok {
			quotes[sym] = q
		}
	}
	return quotes, nil
}

// Rate returns the latest forex rate from one currency to another.
func (c *Client) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	q, ok, err := c.fetchRealTime(ctx, forexTicker(from, to))
	if err != nil {
		return decimal.Zero, err
	}
	if !ok || !q.MarketPrice.IsPositive() {
		return decimal.Zero, fmt.Errorf("no %s/%s rate on eodhd", from, to)
	}
	return q.MarketPrice, nil
}

// forexTicker is the EODHD ticker of a currency pair.
func forexTicker(from, to string) string { return from + to + ".FOREX" }
