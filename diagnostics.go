package simulador

import (
	"fmt"
	"slices"
	"strings"
)

// Position is one aggregated fund position of a portfolio snapshot, the
// input unit of the diagnostics functions.
type Position struct {
	Fund  *FundRecord
	Value Money
}

// FundWeight is a fund's fractional share of total patrimony.
type FundWeight struct {
	Fund   *FundRecord
	Value  Money
	Weight Percent
}

// Diagnosis summarizes the concentration and liquidity mix of one
// portfolio snapshot. It is computed for display only and never feeds
// back into scheduling decisions.
type Diagnosis struct {
	Total Money
	Cash  Money
	// HHI is the Herfindahl-Hirschman concentration index: the sum of
	// squared fractional fund weights, in [0, 1]. Cash is excluded.
	HHI float64
	// Weights lists the fund weights in descending order, ties broken by
	// fund code.
	Weights []FundWeight
	// Buckets is the fraction of total value per liquidity bucket. Cash
	// counts as immediate.
	Buckets map[LiquidityBucket]Percent
}

// Diagnose computes the concentration and liquidity metrics of a
// snapshot. Pure and stateless: the same positions always yield the same
// diagnosis.
func Diagnose(positions []Position, cash Money) Diagnosis {
	total := cash
	for _, p := range positions {
		total = total.Add(p.Value)
	}

	d := Diagnosis{
		Total:   total,
		Cash:    cash,
		Buckets: make(map[LiquidityBucket]Percent),
	}
	if total.IsZero() {
		return d
	}

	for _, p := range positions {
		w := p.Value.PercentOf(total)
		d.Weights = append(d.Weights, FundWeight{Fund: p.Fund, Value: p.Value, Weight: w})
		fraction := float64(w) / 100
		d.HHI += fraction * fraction
		d.Buckets[p.Fund.Bucket()] += w
	}
	d.Buckets[Immediate] += cash.PercentOf(total)

	slices.SortFunc(d.Weights, func(a, b FundWeight) int {
		if a.Weight != b.Weight {
			if a.Weight > b.Weight {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Fund.Code, b.Fund.Code)
	})
	return d
}

// DiagnosePortfolio diagnoses the current state of a portfolio,
// aggregating resolved holdings per fund. Unresolved holdings are
// excluded, consistent with their exclusion from the simulation.
func DiagnosePortfolio(p *Portfolio) Diagnosis {
	values := p.valueByFund()
	funds := p.fundsByCode()

	codes := make([]string, 0, len(values))
	for code := range values {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	positions := make([]Position, 0, len(codes))
	for _, code := range codes {
		positions = append(positions, Position{Fund: funds[code], Value: values[code]})
	}
	return Diagnose(positions, p.Cash)
}

// Top returns the combined weight of the n largest positions.
func (d Diagnosis) Top(n int) Percent {
	var sum Percent
	for i, w := range d.Weights {
		if i == n {
			break
		}
		sum += w.Weight
	}
	return sum
}

// QuickCash returns the fraction of value convertible to cash within
// D+5: the immediate and short buckets combined.
func (d Diagnosis) QuickCash() Percent {
	return d.Buckets[Immediate] + d.Buckets[Short]
}

// AdherenceRow is one line of the gap table comparing the current
// allocation with the model: how far a fund is from its target and what
// movement closes the gap.
type AdherenceRow struct {
	Fund    *FundRecord
	Current Percent
	Target  Percent
	GapPP   Percent // target minus current, in percentage points
	Gap     Money   // the same gap in currency
	Action  string
}

// BuildAdherence derives the gap table from the Phase 1 deltas. Display
// only.
func BuildAdherence(deltas []FundDelta, total Money) []AdherenceRow {
	rows := make([]AdherenceRow, 0, len(deltas))
	for _, d := range deltas {
		row := AdherenceRow{
			Fund:    d.Fund,
			Current: d.Current.PercentOf(total),
			Target:  d.Target.PercentOf(total),
			Gap:     d.Delta,
		}
		row.GapPP = row.Target - row.Current
		switch {
		case row.GapPP.Within(0, 0.1):
			row.Action = "OK"
		case d.Delta.IsPositive():
			row.Action = fmt.Sprintf("invest %s", d.Delta)
		default:
			row.Action = fmt.Sprintf("redeem %s", d.Delta.Neg())
		}
		rows = append(rows, row)
	}
	return rows
}
