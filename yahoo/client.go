// Package yahoo implements folio.QuoteSource and folio.Exchanger over the
// Yahoo Finance chart API.
//
// The API is unofficial and throttles aggressively, so every request waits
// on a rate limiter first.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client queries the chart endpoint.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

type options struct {
	baseURL string
	timeout time.Duration
	rps     float64
	log     *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL overrides the API root, mostly for tests.
func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

// WithTimeout sets the timeout of every request.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithRateLimit sets the number of requests allowed per second. Zero or less disables the limit.
func WithRateLimit(rps float64) Option { return func(o *options) { o.rps = rps } }

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option { return func(o *options) { o.log = log } }

// New returns a Client.
func New(opts ...Option) *Client {
	o := options{
		baseURL: defaultBaseURL,
		timeout: 30 * time.Second,
		rps:     2,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	limit := rate.Inf
	if o.rps > 0 {
		limit = rate.Limit(o.rps)
	}
	return &Client{
		http: resty.New().
			SetTimeout(o.timeout).
			SetBaseURL(o.baseURL).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", "Mozilla/5.0 (compatible; folio)"),
		limiter: rate.NewLimiter(limit, 1),
		log:     o.log,
	}
}

var (
	_ folio.QuoteSource = (*Client)(nil)
	_ folio.Exchanger   = (*Client)(nil)
)

// Current returns the regular market price of each symbol.
func (c *Client) Current(ctx context.Context, symbols []string) (map[string]folio.Quote, error) {
	quotes := make(map[string]folio.Quote, len(symbols))
	for _, sym := range symbols {
		ch, err := c.chart(ctx, sym, map[string]string{"interval": "1d", "range": "1d"})
		if err != nil {
			return nil, err
		}
		if ch == nil {
			continue
		}
		q, err := ch.quote()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s quote: %w", sym, err)
		}
		if q.MarketPrice.IsPositive() {
			quotes[sym] = q
		}
	}
	return quotes, nil
}

// Historical returns the closes between from and to. Monthly closes are dated
// on the 1st of their month.
func (c *Client) Historical(ctx context.Context, symbols []string, granularity date.Period, from, to date.Date) (folio.Prices, error) {
	interval := "1d"
	if granularity == date.Monthly {
		interval = "1mo"
	}
	params := map[string]string{
		"interval": interval,
		"period1":  strconv.FormatInt(from.Time().Unix(), 10),
		// period2 is exclusive
		"period2": strconv.FormatInt(to.Add(1).Time().Unix(), 10),
	}
	prices := folio.Prices{}
	for _, sym := range symbols {
		ch, err := c.chart(ctx, sym, params)
		if err != nil {
			return nil, err
		}
		if ch == nil {
			continue
		}
		h, err := ch.closes(granularity == date.Monthly)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s closes: %w", sym, err)
		}
		if h.Len() > 0 {
			prices[sym] = h
		}
	}
	return prices, nil
}

// Rate returns the latest forex rate between two currencies.
func (c *Client) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	quotes, err := c.Current(ctx, []string{from + to + "=X"})
	if err != nil {
		return decimal.Zero, err
	}
	q, ok := quotes[from+to+"=X"]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s/%s rate on yahoo", from, to)
	}
	return q.MarketPrice, nil
}

// chart fetches the chart of one symbol. It returns nil for unknown symbols.
func (c *Client) chart(ctx context.Context, symbol string, params map[string]string) (*chart, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(params).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("failed to get %s chart: %w", symbol, err)
	}
	c.log.Debugw("yahoo request", "symbol", symbol, "status", resp.StatusCode(), "duration", resp.Time())
	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to get %s chart: %s", symbol, resp.Status())
	}
	return parseChart(resp.Body())
}
