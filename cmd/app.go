// Package cmd implements the CLI application to plan portfolio
// transitions.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	simulador "github.com/romulocorcinotag/simulador-realocacao"
	"github.com/romulocorcinotag/simulador-realocacao/date"
)

// Commands lists the subcommands a main package registers.
// As a CLI application it has a very short lived lifecycle, so it is ok
// to keep the shared configuration in global flags.
var Commands = []subcommands.Command{
	&simulateCmd{},
	&matchCmd{},
	&fundsCmd{},
	&exportCmd{},
	&diagCmd{},
	&topicCmd{},
}

var fundBasePath = flag.String("fund-base", "funds.jsonl", "Path to the fund base (JSONL export or the liquidation master .xlsx)")
var policyPath = flag.String("policy", "", "Path to the YAML policy file (optional; defaults apply)")

// LoadDirectory opens the fund base, dispatching on the file extension,
// and applies the policy's fuzzy threshold.
func LoadDirectory() (*simulador.Directory, error) {
	var dir *simulador.Directory
	var err error
	switch strings.ToLower(filepath.Ext(*fundBasePath)) {
	case ".xlsx":
		dir, err = simulador.ReadDirectoryXLSX(*fundBasePath)
	default:
		var f *os.File
		f, err = os.Open(*fundBasePath)
		if err != nil {
			return nil, fmt.Errorf("cannot open fund base %q: %w", *fundBasePath, err)
		}
		defer f.Close()
		dir, err = simulador.DecodeDirectory(f)
	}
	if err != nil {
		return nil, err
	}
	policy, _, err := LoadPolicy()
	if err != nil {
		return nil, err
	}
	dir.SetFuzzyThreshold(policy.FuzzyThreshold)
	return dir, nil
}

// LoadPolicy returns the policy constants and holiday set, from the
// policy file when one is given.
func LoadPolicy() (simulador.Policy, []date.Date, error) {
	if *policyPath == "" {
		return simulador.DefaultPolicy(), nil, nil
	}
	return simulador.LoadPolicy(*policyPath)
}
