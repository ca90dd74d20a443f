package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type snapshotsCmd struct {
	future bool
}

func (*snapshotsCmd) Name() string     { return "snapshots" }
func (*snapshotsCmd) Synopsis() string { return "display the reconstructed portfolio history" }
func (*snapshotsCmd) Usage() string {
	return `pcs snapshots [-future]

  Displays the investment and value of the portfolio on every snapshot date.
`
}

func (c *snapshotsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.future, "future", false, "include the investment projected by draft transactions")
}

func (c *snapshotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if c.future {
		if err := p.AddFuture(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error projecting drafts: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.RenderSnapshots(renderer.NewSnapshotsView(p)))
	return subcommands.ExitSuccess
}
