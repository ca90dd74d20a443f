package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeEODHD serves canned responses and counts the requests it receives.
func fakeEODHD(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/eod/MCD.US", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "KEY", r.URL.Query().Get("api_token"))
		require.Equal(t, "json", r.URL.Query().Get("fmt"))
		switch r.URL.Query().Get("period") {
		case "m":
			fmt.Fprint(w, `[{"date":"2024-01-02","close":290.5},{"date":"2024-02-01","close":295.25}]`)
		default:
			require.Equal(t, "2024-02-12", r.URL.Query().Get("from"))
			require.Equal(t, "2024-02-13", r.URL.Query().Get("to"))
			fmt.Fprint(w, `[{"date":"2024-02-12","close":291},{"date":"2024-02-13","close":0}]`)
		}
	})
	mux.HandleFunc("/real-time/MCD.US", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"code":"MCD.US","timestamp":1701464400,"close":291.42,"previousClose":290}`)
	})
	mux.HandleFunc("/real-time/NOPE.US", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"code":"NOPE.US","timestamp":"NA","close":"NA"}`)
	})
	mux.HandleFunc("/real-time/EURUSD.FOREX", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"code":"EURUSD.FOREX","close":1.0825}`)
	})
	mux.HandleFunc("/eod/FAIL.US", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestHistorical(t *testing.T) {
	srv, _ := fakeEODHD(t)
	c := New("KEY", WithBaseURL(srv.URL), WithCacheDir(""))
	ctx := context.Background()

	prices, err := c.Historical(ctx, []string{"MCD.US", "UNKNOWN.US"}, date.Daily, date.New(2024, 2, 12), date.New(2024, 2, 13))
	require.NoError(t, err)
	require.Len(t, prices, 1, "unknown tickers are left out")
	h := prices["MCD.US"]
	require.Equal(t, 1, h.Len(), "zero closes are ignored")
	v, ok := h.Get(date.New(2024, 2, 12))
	require.True(t, ok)
	require.True(t, decimal.NewFromInt(291).Equal(v))

	prices, err = c.Historical(ctx, []string{"MCD.US"}, date.Monthly, date.New(2024, 1, 1), date.New(2024, 2, 13))
	require.NoError(t, err)
	on, v := prices["MCD.US"].Latest()
	require.Equal(t, date.New(2024, 2, 1), on)
	require.Equal(t, "295.25", v.String())
}

func TestHistorical_HTTPError(t *testing.T) {
	srv, _ := fakeEODHD(t)
	c := New("KEY", WithBaseURL(srv.URL), WithCacheDir(""))
	_, err := c.Historical(context.Background(), []string{"FAIL.US"}, date.Daily, date.New(2024, 2, 12), date.New(2024, 2, 13))
	require.ErrorContains(t, err, "402")
}

func TestCurrent(t *testing.T) {
	srv, _ := fakeEODHD(t)
	c := New("KEY", WithBaseURL(srv.URL), WithCacheDir(""))

	quotes, err := c.Current(context.Background(), []string{"MCD.US", "NOPE.US", "GONE.US"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	q := quotes["MCD.US"]
	require.Equal(t, "291.42", q.MarketPrice.String())
	require.Equal(t, folio.MarketDelayed, q.MarketState)
}

func TestRate(t *testing.T) {
	srv, hits := fakeEODHD(t)
	c := New("KEY", WithBaseURL(srv.URL), WithCacheDir(""))
	ctx := context.Background()

	r, err := c.Rate(ctx, "USD", "USD")
	require.NoError(t, err)
	require.True(t, r.Equal(decimal.NewFromInt(1)))
	require.Zero(t, hits.Load(), "identity rates need no request")

	r, err = c.Rate(ctx, "EUR", "USD")
	require.NoError(t, err)
	require.Equal(t, "1.0825", r.String())

	_, err = c.Rate(ctx, "EUR", "XXX")
	require.Error(t, err)
}

func TestDiskCache(t *testing.T) {
	srv, hits := fakeEODHD(t)
	dir := t.TempDir()
	ctx := context.Background()

	for range 3 {
		c := New("KEY", WithBaseURL(srv.URL), WithCacheDir(dir))
		quotes, err := c.Current(ctx, []string{"MCD.US"})
		require.NoError(t, err)
		require.Equal(t, "291.42", quotes["MCD.US"].MarketPrice.String())
	}
	require.EqualValues(t, 1, hits.Load(), "later calls are served from disk")

	// errors are never cached
	c := New("KEY", WithBaseURL(srv.URL), WithCacheDir(dir))
	for range 2 {
		_, err := c.Historical(ctx, []string{"FAIL.US"}, date.Daily, date.New(2024, 2, 12), date.New(2024, 2, 13))
		require.Error(t, err)
	}
	require.EqualValues(t, 3, hits.Load())
}
