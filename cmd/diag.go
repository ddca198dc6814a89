package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"

	simulador "github.com/romulocorcinotag/simulador-realocacao"
	"github.com/romulocorcinotag/simulador-realocacao/renderer"
)

// diagCmd prints the concentration and liquidity diagnostics of the
// current portfolio, without scheduling anything.
type diagCmd struct {
	portfolio string
}

func (*diagCmd) Name() string     { return "diag" }
func (*diagCmd) Synopsis() string { return "diagnose the current portfolio's concentration and liquidity" }
func (*diagCmd) Usage() string {
	return `rsim diag -portfolio <file.xlsx>

  Prints the concentration index, top-N concentration, and liquidity
  bucket mix of the current portfolio.
`
}

func (c *diagCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "Current portfolio extract (.xlsx)")
}

func (c *diagCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "-portfolio is required")
		return subcommands.ExitUsageError
	}
	dir, err := LoadDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fund base: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := simulador.ReadPortfolioXLSX(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if unresolved := p.Resolve(dir); len(unresolved) > 0 {
		log.Printf("warning, %d holding(s) unresolved and excluded from diagnostics", len(unresolved))
	}

	d := simulador.DiagnosePortfolio(p)
	printMarkdown(renderer.DiagnosticsMarkdown(d, d))
	return subcommands.ExitSuccess
}
