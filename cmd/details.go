package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type detailsCmd struct {
	dateRange folio.DateRange
}

func (*detailsCmd) Name() string     { return "details" }
func (*detailsCmd) Synopsis() string { return "display the positions held today" }
func (*detailsCmd) Usage() string {
	return `pcs details [-r <range>]

  Displays every position held today with its allocation and its gain over the range.
`
}

func (c *detailsCmd) SetFlags(f *flag.FlagSet) {
	c.dateRange = folio.WholeLife
	f.Var(&c.dateRange, "r", "range of the gain: 1d, ytd, 1y, 5y or max")
}

func (c *detailsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	v, err := renderer.NewDetailsView(ctx, p, c.dateRange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing details: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderDetails(v))
	return subcommands.ExitSuccess
}
