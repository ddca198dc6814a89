package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	simulador "github.com/romulocorcinotag/simulador-realocacao"
)

// exportCmd converts the fund base into the JSONL import/export format,
// typically from the xlsx liquidation master into a git-friendly file.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the fund base in the JSONL format" }
func (*exportCmd) Usage() string {
	return `rsim export [-o <file.jsonl>]

  Reads the fund base (see -fund-base) and writes it in the JSONL
  import/export format, sorted by code. Writes to stdout by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (stdout by default)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dir, err := LoadDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fund base: %v\n", err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if c.output != "" {
		out, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}

	if err := simulador.EncodeDirectory(out, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting fund base: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
