// Package rules implements the risk checks run by folio.Portfolio.Report.
//
// Every rule is a pure function of the portfolio details registered under a
// unique key. Default returns them in the groups shown by `pcs report`.
package rules

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/etnz/folio"
)

// Func evaluates a rule. It returns a verdict and whether the portfolio passes,
// or folio.ErrSkip when the rule does not apply.
type Func func(in folio.RuleInput, rc folio.RuleContext) (evaluation string, pass bool, err error)

type rule struct {
	key, name string
	eval      Func
}

func (r rule) Key() string  { return r.key }
func (r rule) Name() string { return r.name }

func (r rule) Evaluate(in folio.RuleInput, rc folio.RuleContext) (folio.RuleResult, error) {
	evaluation, pass, err := r.eval(in, rc)
	if err != nil {
		return folio.RuleResult{}, err
	}
	return folio.RuleResult{Key: r.key, Name: r.name, Evaluation: evaluation, Value: pass}, nil
}

var (
	mu       sync.RWMutex
	registry = map[string]folio.Rule{}
)

// Register adds a rule under key. It panics if key is already taken.
func Register(key, name string, eval Func) folio.Rule {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("rules: %s registered twice", key))
	}
	r := rule{key: key, name: name, eval: eval}
	registry[key] = r
	return r
}

// Lookup returns the rule registered under key.
func Lookup(key string) (folio.Rule, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[key]
	return r, ok
}

// Keys returns every registered key, sorted.
func Keys() []string {
	mu.RLock()
	defer mu.RUnlock()
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Default returns the standard rule groups.
func Default() []folio.RuleGroup {
	return []folio.RuleGroup{
		{Name: "accountClusterRisk", Rules: []folio.Rule{
			AccountClusterRiskInitialInvestment,
			AccountClusterRiskCurrentInvestment,
			AccountClusterRiskSingleAccount,
		}},
		{Name: "currencyClusterRisk", Rules: []folio.Rule{
			CurrencyClusterRiskBaseCurrencyInitialInvestment,
			CurrencyClusterRiskBaseCurrencyCurrentInvestment,
			CurrencyClusterRiskInitialInvestment,
			CurrencyClusterRiskCurrentInvestment,
		}},
		{Name: "fees", Rules: []folio.Rule{
			FeeRatioInitialInvestment,
		}},
	}
}

// Report evaluates the Default groups on p.
func Report(ctx context.Context, p *folio.Portfolio) (folio.Report, error) {
	return p.Report(ctx, Default()...)
}

// percent formats a ratio as a percentage with three significant digits.
func percent(ratio float64) string { return strconv.FormatFloat(ratio*100, 'g', 3, 64) }
