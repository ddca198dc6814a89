package simulador

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/romulocorcinotag/simulador-realocacao/date"
)

// policyFile is the on-disk form of the policy constants and the holiday
// set. Every field is optional; absent fields keep their defaults.
type policyFile struct {
	HorizonDays          *int     `yaml:"horizon_days"`
	TargetSumTolerance   *float64 `yaml:"target_sum_tolerance"`
	ConvergenceTolerance *float64 `yaml:"convergence_tolerance"`
	MinTradeSize         *float64 `yaml:"min_trade_size"`
	FuzzyThreshold       *float64 `yaml:"fuzzy_threshold"`
	Holidays             []string `yaml:"holidays"`
}

// LoadPolicy reads the policy constants and holiday set from a YAML
// file, overlaying them on DefaultPolicy.
func LoadPolicy(path string) (Policy, []date.Date, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, nil, fmt.Errorf("cannot read policy %q: %w", path, err)
	}
	return parsePolicy(raw, path)
}

func parsePolicy(raw []byte, path string) (Policy, []date.Date, error) {
	var pf policyFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return Policy{}, nil, fmt.Errorf("invalid policy %q: %w", path, err)
	}

	p := DefaultPolicy()
	if pf.HorizonDays != nil {
		if *pf.HorizonDays <= 0 {
			return Policy{}, nil, fmt.Errorf("invalid policy %q: horizon_days must be positive", path)
		}
		p.HorizonDays = *pf.HorizonDays
	}
	if pf.TargetSumTolerance != nil {
		p.TargetSumTolerance = Percent(*pf.TargetSumTolerance)
	}
	if pf.ConvergenceTolerance != nil {
		p.ConvergenceTolerance = Percent(*pf.ConvergenceTolerance)
	}
	if pf.MinTradeSize != nil {
		p.MinTradeSize = M(*pf.MinTradeSize)
	}
	if pf.FuzzyThreshold != nil {
		if *pf.FuzzyThreshold <= 0 || *pf.FuzzyThreshold > 1 {
			return Policy{}, nil, fmt.Errorf("invalid policy %q: fuzzy_threshold must be in (0, 1]", path)
		}
		p.FuzzyThreshold = *pf.FuzzyThreshold
	}

	holidays := make([]date.Date, 0, len(pf.Holidays))
	for _, h := range pf.Holidays {
		d, err := date.Parse(h)
		if err != nil {
			return Policy{}, nil, fmt.Errorf("invalid policy %q: %w", path, err)
		}
		holidays = append(holidays, d)
	}
	return p, holidays, nil
}
