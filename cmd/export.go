package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/export"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output    string
	dateRange folio.DateRange
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the portfolio to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `pcs export -o <file.xlsx> [-r <range>]

  Writes the snapshots, the details and the performance into an xlsx workbook.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.dateRange = folio.WholeLife
	f.StringVar(&c.output, "o", "portfolio.xlsx", "output file")
	f.Var(&c.dateRange, "r", "range of the details: 1d, ytd, 1y, 5y or max")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := export.Write(ctx, out, p, c.dateRange, a.log); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error exporting portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Portfolio exported to %s\n", c.output)
	return subcommands.ExitSuccess
}
