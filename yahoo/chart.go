package yahoo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

/*
	{
	    "chart": {
	        "result": [{
	            "meta": {
	                "currency": "USD",
	                "symbol": "MCD",
	                "instrumentType": "EQUITY",
	                "regularMarketPrice": 291.42,
	                "gmtoffset": -18000,
	                "longName": "McDonald's Corporation",
	                "marketState": "REGULAR"
	            },
	            "timestamp": [1707748200, 1707834600],
	            "indicators": {"quote": [{"close": [291.0, null]}]}
	        }],
	        "error": null
	    }
	}
*/
type chart struct {
	root any
}

func parseChart(body []byte) (*chart, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("invalid chart payload: %w", err)
	}
	ch := &chart{root: root}
	// an empty result list is how yahoo answers for delisted symbols
	if list, ok := ch.get("$.chart.result").([]any); !ok || len(list) == 0 {
		return nil, nil
	}
	return ch, nil
}

// get evaluates path and returns nil when it does not match.
func (ch *chart) get(path string) any {
	v, err := jsonpath.Get(path, ch.root)
	if err != nil {
		return nil
	}
	return v
}

func (ch *chart) str(path string) string {
	s, _ := ch.get(path).(string)
	return s
}

func (ch *chart) quote() (folio.Quote, error) {
	price, ok := ch.get("$.chart.result[0].meta.regularMarketPrice").(float64)
	if !ok {
		return folio.Quote{}, fmt.Errorf("no regularMarketPrice")
	}
	name := ch.str("$.chart.result[0].meta.longName")
	if name == "" {
		name = ch.str("$.chart.result[0].meta.shortName")
	}
	return folio.Quote{
		MarketPrice: decimal.NewFromFloat(price),
		Currency:    ch.str("$.chart.result[0].meta.currency"),
		MarketState: marketState(ch.str("$.chart.result[0].meta.marketState")),
		Name:        name,
		Type:        ch.str("$.chart.result[0].meta.instrumentType"),
	}, nil
}

// closes returns the non null closes. Monthly closes are dated on the 1st.
func (ch *chart) closes(monthly bool) (*date.History[decimal.Decimal], error) {
	h := &date.History[decimal.Decimal]{}
	stamps, _ := ch.get("$.chart.result[0].timestamp").([]any)
	closes, _ := ch.get("$.chart.result[0].indicators.quote[0].close").([]any)
	if len(stamps) != len(closes) {
		return nil, fmt.Errorf("%d timestamps for %d closes", len(stamps), len(closes))
	}
	offset, _ := ch.get("$.chart.result[0].meta.gmtoffset").(float64)
	for i, s := range stamps {
		ts, ok := s.(float64)
		if !ok {
			return nil, fmt.Errorf("invalid timestamp %v", s)
		}
		c, ok := closes[i].(float64)
		if !ok || c <= 0 {
			// null closes happen on days without trades
			continue
		}
		on := date.On(time.Unix(int64(ts)+int64(offset), 0))
		if monthly {
			on = on.StartOf(date.Monthly)
		}
		h.Append(on, decimal.NewFromFloat(c))
	}
	return h, nil
}

func marketState(s string) folio.MarketState {
	switch s {
	case "REGULAR":
		return folio.MarketOpen
	case "CLOSED", "PRE", "PREPRE", "POST", "POSTPOST":
		return folio.MarketClosed
	default:
		return folio.MarketDelayed
	}
}
