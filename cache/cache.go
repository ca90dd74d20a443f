// Package cache decorates quote sources and exchangers with an in-memory TTL cache.
package cache

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// Quotes caches the answers of a QuoteSource.
//
// Current quotes are cached per symbol, historical series per request.
type Quotes struct {
	src   folio.QuoteSource
	store *gocache.Cache
}

// NewQuotes returns src cached for ttl.
func NewQuotes(src folio.QuoteSource, ttl time.Duration) *Quotes {
	return &Quotes{src: src, store: gocache.New(ttl, 2*ttl)}
}

var _ folio.QuoteSource = (*Quotes)(nil)

func (q *Quotes) Current(ctx context.Context, symbols []string) (map[string]folio.Quote, error) {
	quotes := make(map[string]folio.Quote, len(symbols))
	var missing []string
	for _, sym := range symbols {
		if v, found := q.store.Get("current:" + sym); found {
			if quote, ok := v.(folio.Quote); ok {
				quotes[sym] = quote
			}
			// a cached miss is stored as nil
			continue
		}
		missing = append(missing, sym)
	}
	if len(missing) == 0 {
		return quotes, nil
	}
	fetched, err := q.src.Current(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, sym := range missing {
		quote, ok := fetched[sym]
		if !ok {
			q.store.SetDefault("current:"+sym, nil)
			continue
		}
		q.store.SetDefault("current:"+sym, quote)
		quotes[sym] = quote
	}
	return quotes, nil
}

func (q *Quotes) Historical(ctx context.Context, symbols []string, granularity date.Period, from, to date.Date) (folio.Prices, error) {
	sorted := slices.Sorted(slices.Values(symbols))
	key := fmt.Sprintf("historical:%s:%s:%s:%s", granularity, from, to, strings.Join(sorted, ","))
	if v, found := q.store.Get(key); found {
		return v.(folio.Prices), nil
	}
	prices, err := q.src.Historical(ctx, symbols, granularity, from, to)
	if err != nil {
		return nil, err
	}
	q.store.SetDefault(key, prices)
	return prices, nil
}

// Flush drops every cached answer.
func (q *Quotes) Flush() { q.store.Flush() }

// Exchanger caches rates of an Exchanger.
type Exchanger struct {
	src   folio.Exchanger
	store *gocache.Cache
}

// NewExchanger returns src cached for ttl.
func NewExchanger(src folio.Exchanger, ttl time.Duration) *Exchanger {
	return &Exchanger{src: src, store: gocache.New(ttl, 2*ttl)}
}

var _ folio.Exchanger = (*Exchanger)(nil)

func (e *Exchanger) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := "rate:" + from + ":" + to
	if v, found := e.store.Get(key); found {
		return v.(decimal.Decimal), nil
	}
	r, err := e.src.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	e.store.SetDefault(key, r)
	return r, nil
}
