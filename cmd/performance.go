package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// performanceCmd holds the flags for the 'performance' subcommand.
type performanceCmd struct {
	dateRange folio.DateRange
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "display the portfolio performance" }
func (*performanceCmd) Usage() string {
	return `pcs performance [-r <range>]

  Displays the gross and net performance over every date range, and the
  details of one range when -r is set.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.dateRange, "r", "also print the performance over this range: 1d, ytd, 1y, 5y or max")
}

func (c *performanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := loadApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := a.portfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	v, err := renderer.NewPerformanceView(p, date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing performance: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.dateRange != "" {
		v.Rows = []folio.Performance{p.Performance(c.dateRange)}
	}
	printMarkdown(renderer.RenderPerformance(v))
	return subcommands.ExitSuccess
}
