package eodhd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

func (c *Client) endpoint(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("fmt", "json")
	query.Set("api_token", c.apiKey)
	return c.baseURL + path + "?" + query.Encode()
}

// fetchPrices returns the closing prices of an EODHD ticker ("SYMBOL.EXCHANGECODE").
func (c *Client) fetchPrices(ctx context.Context, ticker string, granularity date.Period, from, to date.Date) (*date.History[decimal.Decimal], error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&period=m
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	// bounds are included in the response, and time is limited to 1 year with free subscription.
	period, client := "d", c.daily
	if granularity == date.Monthly {
		period, client = "m", c.monthly
	}
	addr := c.endpoint("/eod/"+url.PathEscape(ticker), url.Values{
		"period": {period},
		"from":   {from.String()},
		"to":     {to.String()},
	})

	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	content := make([]Info, 0)
	h := &date.History[decimal.Decimal]{}
	if err := jwget(ctx, client, addr, &content); err != nil {
		if errors.Is(err, errNotFound) {
			c.log.Debugw("unknown ticker", "ticker", ticker)
			return h, nil
		}
		return nil, fmt.Errorf("failed to fetch %s prices: %w", ticker, err)
	}
	for _, info := range content {
		if info.Close.IsPositive() {
			h.Append(info.Date, info.Close)
		}
	}
	return h, nil
}

// fetchRealTime returns the delayed quote of a ticker. It reports false for unknown tickers.
func (c *Client) fetchRealTime(ctx context.Context, ticker string) (folio.Quote, bool, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {"code":"AAPL.US","timestamp":1701464400,"gmtoffset":0,"open":190.33,"high":191.56,
	//  "low":189.23,"close":191.24,"volume":45679300,"previousClose":189.95,"change":1.29}
	// "close" is the string "NA" when EODHD has no data.
	addr := c.endpoint("/real-time/"+url.PathEscape(ticker), nil)
	var content struct {
		Code  string          `json:"code"`
		Close json.RawMessage `json:"close"`
	}
	if err := jwget(ctx, c.daily, addr, &content); err != nil {
		if errors.Is(err, errNotFound) {
			return folio.Quote{}, false, nil
		}
		return folio.Quote{}, false, fmt.Errorf("failed to fetch %s quote: %w", ticker, err)
	}
	price, err := decimal.NewFromString(strings.Trim(string(content.Close), `"`))
	if err != nil {
		c.log.Debugw("no real time price", "ticker", ticker, "close", string(content.Close))
		return folio.Quote{}, false, nil
	}
	return folio.Quote{
		MarketPrice: price,
		MarketState: folio.MarketDelayed,
		Name:        content.Code,
	}, true, nil
}
