package renderer

import (
	"cmp"
	"context"
	"maps"
	"slices"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// PerformanceView is the performance of a portfolio over every date range.
type PerformanceView struct {
	Currency   string
	Date       date.Date
	Volatility float64
	Rows       []folio.Performance
}

// NewPerformanceView computes the performance of p on every date range.
func NewPerformanceView(p *folio.Portfolio, on date.Date) (*PerformanceView, error) {
	vol, err := p.Volatility()
	if err != nil {
		return nil, err
	}
	v := &PerformanceView{Currency: p.Currency(), Date: on, Volatility: vol}
	for _, r := range folio.DateRanges {
		v.Rows = append(v.Rows, p.Performance(r))
	}
	return v, nil
}

// DetailsView lists the held positions, cash last.
type DetailsView struct {
	Currency  string
	Range     folio.DateRange
	Positions []folio.Detail
	Cash      folio.Detail
	Accounts  []AccountRow
	Countries []ExposureRow
	Sectors   []ExposureRow
}

// AccountRow is the total held on one account.
type AccountRow struct {
	Name              string
	Current, Original decimal.Decimal
}

// ExposureRow is a share of the current value, by country or by sector.
type ExposureRow struct {
	Name   string
	Weight float64
}

// NewDetailsView fetches the details of p over r.
func NewDetailsView(ctx context.Context, p *folio.Portfolio, r folio.DateRange) (*DetailsView, error) {
	details, err := p.Details(ctx, r)
	if err != nil {
		return nil, err
	}
	v := &DetailsView{Currency: p.Currency(), Range: r, Cash: details[folio.CashSymbol]}
	accounts := map[string]AccountRow{}
	countries := map[string]float64{}
	sectors := map[string]float64{}
	for _, sym := range slices.Sorted(maps.Keys(details)) {
		d := details[sym]
		for name, share := range d.Accounts {
			acc := accounts[name]
			acc.Name = name
			acc.Current = acc.Current.Add(share.Current)
			acc.Original = acc.Original.Add(share.Original)
			accounts[name] = acc
		}
		if sym == folio.CashSymbol {
			continue
		}
		v.Positions = append(v.Positions, d)
		for _, c := range d.Countries {
			countries[c.Name] += c.Weight * d.AllocationCurrent
		}
		for _, s := range d.Sectors {
			sectors[s.Name] += s.Weight * d.AllocationCurrent
		}
	}
	for _, name := range slices.Sorted(maps.Keys(accounts)) {
		v.Accounts = append(v.Accounts, accounts[name])
	}
	v.Countries = exposure(countries)
	v.Sectors = exposure(sectors)
	return v, nil
}

// exposure sorts weights, largest first.
func exposure(weights map[string]float64) []ExposureRow {
	rows := make([]ExposureRow, 0, len(weights))
	for name, w := range weights {
		rows = append(rows, ExposureRow{Name: name, Weight: w})
	}
	slices.SortFunc(rows, func(a, b ExposureRow) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return rows
}

// SnapshotsView is the snapshot history of a portfolio.
type SnapshotsView struct {
	Currency  string
	Snapshots []folio.Snapshot
}

// NewSnapshotsView returns the snapshots of p.
func NewSnapshotsView(p *folio.Portfolio) *SnapshotsView {
	return &SnapshotsView{Currency: p.Currency(), Snapshots: p.Snapshots()}
}

// ReportView is a rule report with its groups sorted by name.
type ReportView struct {
	Groups []ReportGroup
}

// ReportGroup is the results of one rule group, sorted by key.
type ReportGroup struct {
	Name    string
	Results []folio.RuleResult
}

// NewReportView sorts r.
func NewReportView(r folio.Report) *ReportView {
	v := &ReportView{}
	for _, name := range slices.Sorted(maps.Keys(r)) {
		g := ReportGroup{Name: name}
		for _, key := range slices.Sorted(maps.Keys(r[name])) {
			g.Results = append(g.Results, r[name][key])
		}
		v.Groups = append(v.Groups, g)
	}
	return v
}
