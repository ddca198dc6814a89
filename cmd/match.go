package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/romulocorcinotag/simulador-realocacao/date"
)

// matchCmd resolves free-text identifiers against the fund base, the
// same way the simulator does.
type matchCmd struct {
	settleBy string
}

func (*matchCmd) Name() string     { return "match" }
func (*matchCmd) Synopsis() string { return "resolve free-text identifiers against the fund base" }
func (*matchCmd) Usage() string {
	return `rsim match [-by <date>] <identifier> [<identifier>...]

  Resolves each identifier (code, ticker, or fund name) and prints the
  matching fund with the rule that won. Unresolved identifiers are listed
  for manual resolution.

  With -by, also prints the latest date a redemption can be ordered so
  that its cash settles no later than the given date.
`
}

func (c *matchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.settleBy, "by", "", "Settlement deadline for the latest-request column")
}

func (c *matchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one identifier is required")
		return subcommands.ExitUsageError
	}
	dir, err := LoadDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fund base: %v\n", err)
		return subcommands.ExitFailure
	}

	var deadline date.Date
	var cal *date.Calendar
	if c.settleBy != "" {
		deadline, err = date.Parse(c.settleBy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -by date: %v\n", err)
			return subcommands.ExitUsageError
		}
		_, holidays, err := LoadPolicy()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading policy: %v\n", err)
			return subcommands.ExitFailure
		}
		cal = date.NewCalendar(holidays...)
	}

	status := subcommands.ExitSuccess
	for _, query := range f.Args() {
		res, ok := dir.Match(query)
		if !ok {
			fmt.Printf("%-30s UNRESOLVED\n", query)
			status = subcommands.ExitFailure
			continue
		}
		line := fmt.Sprintf("%-30s %s  %s  (%s, rule %s)", query, res.Fund.Code, res.Fund.Name, res.Fund.DelayString(), res.Rule)
		if cal != nil {
			line += fmt.Sprintf("  order by %s", res.Fund.LatestRequest(cal, deadline))
		}
		fmt.Println(line)
	}
	return status
}
