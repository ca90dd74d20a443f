package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/rules"
	"github.com/google/subcommands"
)

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "run the risk checks" }
func (*reportCmd) Usage() string {
	return `pcs report

  Evaluates the account, currency and fee checks against the positions held today.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	r, err := rules.Report(ctx, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating rules: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderReport(renderer.NewReportView(r)))
	return subcommands.ExitSuccess
}
