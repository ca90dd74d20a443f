// Package export writes a portfolio as an xlsx workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/etnz/folio"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sheet names.
const (
	SnapshotsSheet   = "Snapshots"
	DetailsSheet     = "Details"
	PerformanceSheet = "Performance"
)

var (
	snapshotHeader    = []any{"Date", "Investment", "Value", "Gross performance %"}
	detailsHeader     = []any{"Symbol", "Name", "Type", "Currency", "Quantity", "Market price", "Investment", "Value", "Allocation %", "Gross performance", "Gross performance %"}
	performanceHeader = []any{"Range", "Reference", "Value", "Gross performance", "Gross performance %", "Net performance", "Net performance %"}
)

// Workbook builds the workbook of p: every snapshot, the details over r, and
// the performance over each date range.
func Workbook(ctx context.Context, p *folio.Portfolio, r folio.DateRange) (*excelize.File, error) {
	details, err := p.Details(ctx, r)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	w := &writer{f: f}
	w.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#cfe2f3"}},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	w.percent, err = f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		f.Close()
		return nil, err
	}

	w.sheet(SnapshotsSheet, snapshotHeader)
	for _, s := range p.Snapshots() {
		var value any
		if s.Value.Valid {
			value = s.Value.Decimal.InexactFloat64()
		}
		w.row(s.Date.String(), s.Investment.InexactFloat64(), value, s.GrossPerformancePercent)
	}
	w.percentColumn("D")

	w.sheet(DetailsSheet, detailsHeader)
	for _, sym := range slices.Sorted(maps.Keys(details)) {
		d := details[sym]
		w.row(d.Symbol, d.Name, d.Type, d.Currency,
			d.Quantity.InexactFloat64(), d.MarketPrice.InexactFloat64(),
			d.Investment.InexactFloat64(), d.Value.InexactFloat64(),
			d.AllocationCurrent, d.GrossPerformance.InexactFloat64(), d.GrossPerformancePercent)
	}
	w.percentColumn("I")
	w.percentColumn("K")

	w.sheet(PerformanceSheet, performanceHeader)
	for _, dr := range folio.DateRanges {
		perf := p.Performance(dr)
		ref := ""
		if !perf.Reference.IsZero() {
			ref = perf.Reference.String()
		}
		w.row(dr.String(), ref, perf.CurrentValue.InexactFloat64(),
			perf.CurrentGrossPerformance.InexactFloat64(), perf.CurrentGrossPerformancePercent,
			perf.CurrentNetPerformance.InexactFloat64(), perf.CurrentNetPerformancePercent)
	}
	w.percentColumn("E")
	w.percentColumn("G")

	if w.err == nil {
		w.err = f.DeleteSheet("Sheet1")
	}
	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to build workbook: %w", w.err)
	}
	return f, nil
}

// Write writes the workbook of p to out.
func Write(ctx context.Context, out io.Writer, p *folio.Portfolio, r folio.DateRange, log *zap.SugaredLogger) error {
	f, err := Workbook(ctx, p, r)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnw("failed to close workbook", "error", err)
		}
	}()
	_, err = f.WriteTo(out)
	return err
}

// writer fills sheets one row at a time and keeps the first error.
type writer struct {
	f       *excelize.File
	header  int
	percent int
	name    string
	n       int // last written row
	err     error
}

func (w *writer) sheet(name string, header []any) {
	if w.err != nil {
		return
	}
	if _, w.err = w.f.NewSheet(name); w.err != nil {
		return
	}
	w.name, w.n = name, 0
	w.row(header...)
	if w.err != nil {
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	w.err = w.f.SetCellStyle(name, "A1", last, w.header)
	if w.err == nil {
		w.err = w.f.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}
}

func (w *writer) row(values ...any) {
	if w.err != nil {
		return
	}
	w.n++
	cell, _ := excelize.CoordinatesToCellName(1, w.n)
	w.err = w.f.SetSheetRow(w.name, cell, &values)
}

// percentColumn formats the values of a column of the current sheet as percentages.
func (w *writer) percentColumn(col string) {
	if w.err != nil || w.n < 2 {
		return
	}
	w.err = w.f.SetCellStyle(w.name, col+"2", fmt.Sprintf("%s%d", col, w.n), w.percent)
}
