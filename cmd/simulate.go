package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"

	simulador "github.com/romulocorcinotag/simulador-realocacao"
	"github.com/romulocorcinotag/simulador-realocacao/date"
	"github.com/romulocorcinotag/simulador-realocacao/renderer"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	portfolio  string
	model      string
	start      string
	showLedger bool
	fullLedger bool
	showDiag   bool
}

func (*simulateCmd) Name() string { return "simulate" }
func (*simulateCmd) Synopsis() string {
	return "compute the transition schedule from the current portfolio to a model"
}
func (*simulateCmd) Usage() string {
	return `rsim simulate -portfolio <file.xlsx> -model <file.xlsx> [-d <date>] [-ledger] [-diag]

  Resolves the portfolio and model against the fund base, then schedules
  the redemptions and investments that reach the target allocation while
  the projected cash balance stays non-negative on every day.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "Current portfolio extract (.xlsx)")
	f.StringVar(&c.model, "model", "", "Model portfolio (.xlsx)")
	f.StringVar(&c.start, "d", date.Today().String(), "Simulation start date")
	f.BoolVar(&c.showLedger, "ledger", false, "Print the day-by-day cash ledger")
	f.BoolVar(&c.fullLedger, "full-ledger", false, "Print every ledger day, including quiet ones")
	f.BoolVar(&c.showDiag, "diag", false, "Print the before/after diagnostics")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" || c.model == "" {
		fmt.Fprintln(os.Stderr, "both -portfolio and -model are required")
		return subcommands.ExitUsageError
	}
	start, err := date.Parse(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}

	dir, err := LoadDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fund base: %v\n", err)
		return subcommands.ExitFailure
	}
	policy, holidays, err := LoadPolicy()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading policy: %v\n", err)
		return subcommands.ExitFailure
	}

	p, err := simulador.ReadPortfolioXLSX(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	unresolved := p.Resolve(dir)
	if len(unresolved) > 0 {
		log.Printf("warning, %d holding(s) could not be resolved and are excluded from the simulation:", len(unresolved))
		for _, h := range unresolved {
			log.Printf("  %s (%s)", h.Description, h.Value)
		}
	}

	model, err := simulador.ReadModelXLSX(c.model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		return subcommands.ExitFailure
	}
	target, err := simulador.ResolveModel(dir, model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving model: %v\n", err)
		return subcommands.ExitFailure
	}

	sim := simulador.NewSimulator(date.NewCalendar(holidays...), policy)
	plan, err := sim.Run(start, p, target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PlanMarkdown(plan))
	if c.showLedger || c.fullLedger {
		printMarkdown(renderer.LedgerMarkdown(plan.Ledger, c.fullLedger))
	}
	if c.showDiag {
		printMarkdown(renderer.DiagnosticsMarkdown(plan.Before, plan.After))
	}
	return subcommands.ExitSuccess
}
