package simulador

import "fmt"

// TargetAllocation is one line of the model portfolio: a fund and the
// percentage of total patrimony it should hold after the transition.
type TargetAllocation struct {
	Fund   *FundRecord
	Weight Percent
}

// Target is the desired post-rebalancing allocation. Weights must sum to
// 100% within the configured tolerance; any remainder below 100% is an
// implicit cash allocation only when within tolerance.
type Target struct {
	Allocations []TargetAllocation
}

// InvalidTargetError reports target percentages that do not sum to 100%
// within tolerance. The engine fails fast on it: no schedule is produced,
// and nothing is silently normalized.
type InvalidTargetError struct {
	Sum       Percent
	Tolerance Percent
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target: allocations sum to %s, want 100%% within ±%.1f p.p.", e.Sum, float64(e.Tolerance))
}

// Sum returns the total of all allocation weights.
func (t Target) Sum() Percent {
	var sum Percent
	for _, a := range t.Allocations {
		sum += a.Weight
	}
	return sum
}

// Validate checks the target for structural correctness: every line must
// reference a resolved fund, no fund may appear twice, and the weights
// must sum to 100% within tol.
func (t Target) Validate(tol Percent) error {
	seen := make(map[string]bool, len(t.Allocations))
	for _, a := range t.Allocations {
		if a.Fund == nil {
			return fmt.Errorf("invalid target: allocation without a resolved fund")
		}
		if seen[a.Fund.Code] {
			return fmt.Errorf("invalid target: fund %q appears more than once", a.Fund.Code)
		}
		seen[a.Fund.Code] = true
		if a.Weight < 0 {
			return fmt.Errorf("invalid target: fund %q has negative weight %s", a.Fund.Code, a.Weight)
		}
	}
	if sum := t.Sum(); !sum.Within(100, tol) {
		return &InvalidTargetError{Sum: sum, Tolerance: tol}
	}
	return nil
}

// valueByFund returns the target value per fund code for a given total
// patrimony.
func (t Target) valueByFund(total Money) map[string]Money {
	values := make(map[string]Money, len(t.Allocations))
	for _, a := range t.Allocations {
		values[a.Fund.Code] = total.ApplyPercent(a.Weight)
	}
	return values
}

// fundsByCode indexes the target's fund records.
func (t Target) fundsByCode() map[string]*FundRecord {
	funds := make(map[string]*FundRecord, len(t.Allocations))
	for _, a := range t.Allocations {
		funds[a.Fund.Code] = a.Fund
	}
	return funds
}
