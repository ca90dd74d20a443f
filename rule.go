package folio

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// ErrSkip is returned by a Rule that does not apply to the portfolio.
var ErrSkip = errors.New("rule skipped")

// RuleContext carries the settings a rule is evaluated with.
type RuleContext struct {
	BaseCurrency string
}

// RuleInput is everything a rule can look at. It is computed once per Report.
type RuleInput struct {
	Details        map[string]Detail
	Fees           decimal.Decimal // every committed fee, reporting currency
	TotalBuy       decimal.Decimal
	CommittedFunds decimal.Decimal
}

// RuleResult is the outcome of one rule.
type RuleResult struct {
	Key        string
	Name       string
	Evaluation string // human readable verdict
	Value      bool   // true when the portfolio passes the rule
}

// Rule is a risk check over a RuleInput. Implementations must be pure.
type Rule interface {
	Key() string
	Name() string
	// Evaluate returns the verdict, or ErrSkip.
	Evaluate(in RuleInput, rc RuleContext) (RuleResult, error)
}

// Evaluate runs rules in order and collects the results keyed by rule key.
// Skipped rules are left out, any other error stops the evaluation.
func Evaluate(in RuleInput, rc RuleContext, rules ...Rule) (map[string]RuleResult, error) {
	results := make(map[string]RuleResult, len(rules))
	for _, rule := range rules {
		res, err := rule.Evaluate(in, rc)
		if errors.Is(err, ErrSkip) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Key(), err)
		}
		res.Key, res.Name = rule.Key(), rule.Name()
		results[rule.Key()] = res
	}
	return results, nil
}

// RuleGroup is a named, ordered list of rules.
type RuleGroup struct {
	Name  string
	Rules []Rule
}

// Report holds the rule results by group name, then by rule key.
type Report map[string]map[string]RuleResult

// Report evaluates every group against the max range details.
// It is empty when no security is held.
func (p *Portfolio) Report(ctx context.Context, groups ...RuleGroup) (Report, error) {
	details, err := p.Details(ctx, WholeLife)
	if err != nil {
		return nil, err
	}
	report := Report{}
	if len(details) <= 1 {
		// nothing but cash
		return report, nil
	}

	st := p.load()
	in := RuleInput{
		Details:        details,
		Fees:           st.fees(date.Date{}),
		TotalBuy:       st.total(Buy),
		CommittedFunds: st.committedFunds(),
	}
	rc := RuleContext{BaseCurrency: p.currency}
	for _, g := range groups {
		res, err := Evaluate(in, rc, g.Rules...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.Name, err)
		}
		report[g.Name] = res
	}
	p.log.Debugw("report evaluated", "groups", len(groups))
	return report, nil
}
