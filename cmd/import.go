package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type importCmd struct {
	csv string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a CSV file" }
func (*importCmd) Usage() string {
	return `pcs import -csv <file.csv>

  Appends the transactions of a CSV file to the transaction file.
  See 'pcs topic transactions' for the columns.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csv, "csv", "", "CSV file to import")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.csv == "" {
		fmt.Fprintln(os.Stderr, "Error: -csv is required")
		return subcommands.ExitUsageError
	}
	a, _, err := loadApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	in, err := os.Open(c.csv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.csv, err)
		return subcommands.ExitFailure
	}
	defer in.Close()
	txs, err := folio.DecodeTransactionsCSV(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding %q: %v\n", c.csv, err)
		return subcommands.ExitFailure
	}
	if err := a.appendTransactions(txs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended %d transactions to %s\n", len(txs), a.cfg.Transactions)
	return subcommands.ExitSuccess
}
