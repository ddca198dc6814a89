package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// fundsCmd searches the fund base interactively.
type fundsCmd struct {
	limit int
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "search the fund base" }
func (*fundsCmd) Usage() string {
	return `rsim funds [-n <limit>] <query>

  Lists funds whose code, ticker, or name contains the query.
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Maximum number of results")
}

func (c *fundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one query is required")
		return subcommands.ExitUsageError
	}
	dir, err := LoadDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fund base: %v\n", err)
		return subcommands.ExitFailure
	}

	results := dir.Search(f.Arg(0), c.limit)
	if len(results) == 0 {
		fmt.Println("no funds found")
		return subcommands.ExitSuccess
	}
	for _, fund := range results {
		ticker := fund.Ticker
		if ticker == "" {
			ticker = "-"
		}
		fmt.Printf("%-12s %-8s %-50s %s\n", fund.Code, ticker, fund.Name, fund.DelayString())
	}
	return subcommands.ExitSuccess
}
