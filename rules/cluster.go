package rules

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

var (
	AccountClusterRiskInitialInvestment = Register("AccountClusterRiskInitialInvestment",
		"Initial Investment", accountCluster("initial", func(s folio.AccountShare) decimal.Decimal { return s.Original }))

	AccountClusterRiskCurrentInvestment = Register("AccountClusterRiskCurrentInvestment",
		"Current Investment", accountCluster("current", func(s folio.AccountShare) decimal.Decimal { return s.Current }))

	AccountClusterRiskSingleAccount = Register("AccountClusterRiskSingleAccount",
		"Single Account", singleAccount)

	CurrencyClusterRiskBaseCurrencyInitialInvestment = Register("CurrencyClusterRiskBaseCurrencyInitialInvestment",
		"Initial Investment: Base Currency", baseCurrency("initial", investment))

	CurrencyClusterRiskBaseCurrencyCurrentInvestment = Register("CurrencyClusterRiskBaseCurrencyCurrentInvestment",
		"Current Investment: Base Currency", baseCurrency("current", value))

	CurrencyClusterRiskInitialInvestment = Register("CurrencyClusterRiskInitialInvestment",
		"Initial Investment", currencyCluster("initial", investment))

	CurrencyClusterRiskCurrentInvestment = Register("CurrencyClusterRiskCurrentInvestment",
		"Current Investment", currencyCluster("current", value))
)

func investment(d folio.Detail) decimal.Decimal { return d.Investment }
func value(d folio.Detail) decimal.Decimal      { return d.Value }

// group is an amount summed under a key.
type group struct {
	key    string
	amount decimal.Decimal
}

// sum adds amounts by key, and returns the groups in key order with their total.
func sum(add func(yield func(key string, amount decimal.Decimal))) ([]group, decimal.Decimal) {
	byKey := map[string]decimal.Decimal{}
	add(func(key string, amount decimal.Decimal) { byKey[key] = byKey[key].Add(amount) })
	groups := make([]group, 0, len(byKey))
	total := decimal.Zero
	for k, v := range byKey {
		groups = append(groups, group{k, v})
		total = total.Add(v)
	}
	slices.SortFunc(groups, func(a, b group) int { return cmp.Compare(a.key, b.key) })
	return groups, total
}

// largest returns the group with the greatest amount, the first one on ties.
func largest(groups []group) group {
	top := groups[0]
	for _, g := range groups[1:] {
		if g.amount.GreaterThan(top.amount) {
			top = g
		}
	}
	return top
}

func ratio(num, den decimal.Decimal) float64 { return num.Div(den).InexactFloat64() }

func accountCluster(kind string, amount func(folio.AccountShare) decimal.Decimal) Func {
	return func(in folio.RuleInput, _ folio.RuleContext) (string, bool, error) {
		groups, total := sum(func(add func(string, decimal.Decimal)) {
			for _, d := range in.Details {
				for name, share := range d.Accounts {
					add(name, amount(share))
				}
			}
		})
		if len(groups) == 0 || !total.IsPositive() {
			return "", false, folio.ErrSkip
		}
		top := largest(groups)
		share := ratio(top.amount, total)
		if share > 0.5 {
			return fmt.Sprintf("Over 50%% of your %s investment is at %s (%s%%)", kind, top.key, percent(share)), false, nil
		}
		return fmt.Sprintf("The major part of your %s investment is at %s (%s%%)", kind, top.key, percent(share)), true, nil
	}
}

func singleAccount(in folio.RuleInput, _ folio.RuleContext) (string, bool, error) {
	accounts := map[string]bool{}
	for _, d := range in.Details {
		for name := range d.Accounts {
			accounts[name] = true
		}
	}
	switch n := len(accounts); n {
	case 0:
		return "", false, folio.ErrSkip
	case 1:
		return "Your net worth is managed by a single account", false, nil
	default:
		return fmt.Sprintf("Your net worth is managed by %d accounts", n), true, nil
	}
}

func byCurrency(in folio.RuleInput, amount func(folio.Detail) decimal.Decimal) ([]group, decimal.Decimal) {
	return sum(func(add func(string, decimal.Decimal)) {
		for _, d := range in.Details {
			add(d.Currency, amount(d))
		}
	})
}

func baseCurrency(kind string, amount func(folio.Detail) decimal.Decimal) Func {
	return func(in folio.RuleInput, rc folio.RuleContext) (string, bool, error) {
		groups, total := byCurrency(in, amount)
		if len(groups) == 0 || !total.IsPositive() {
			return "", false, folio.ErrSkip
		}
		base := decimal.Zero
		for _, g := range groups {
			if g.key == rc.BaseCurrency {
				base = g.amount
			}
		}
		share := ratio(base, total)
		if largest(groups).key != rc.BaseCurrency {
			return fmt.Sprintf("The major part of your %s investment is not in your base currency (%s%% in %s)", kind, percent(share), rc.BaseCurrency), false, nil
		}
		return fmt.Sprintf("The major part of your %s investment is in your base currency (%s%% in %s)", kind, percent(share), rc.BaseCurrency), true, nil
	}
}

func currencyCluster(kind string, amount func(folio.Detail) decimal.Decimal) Func {
	return func(in folio.RuleInput, _ folio.RuleContext) (string, bool, error) {
		groups, total := byCurrency(in, amount)
		if len(groups) == 0 || !total.IsPositive() {
			return "", false, folio.ErrSkip
		}
		top := largest(groups)
		share := ratio(top.amount, total)
		if share > 0.5 {
			return fmt.Sprintf("Over 50%% of your %s investment is in %s (%s%%)", kind, top.key, percent(share)), false, nil
		}
		return fmt.Sprintf("The major part of your %s investment is in %s (%s%%)", kind, top.key, percent(share)), true, nil
	}
}
