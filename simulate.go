package simulador

import (
	"fmt"
	"slices"
	"strings"

	"github.com/romulocorcinotag/simulador-realocacao/date"
)

// Policy carries the tunable constants of the scheduling algorithm. The
// reference values are inferred from advisory practice, not mandated, so
// they are data rather than code.
type Policy struct {
	// HorizonDays bounds the forward scan of Phase 4: an investment that
	// cannot be fully funded within this many days of the start is
	// reported as an unfunded residual.
	HorizonDays int
	// TargetSumTolerance is the allowed deviation, in percentage points,
	// of the target weights' sum from 100%.
	TargetSumTolerance Percent
	// ConvergenceTolerance is the allowed deviation of each final fund
	// value from its target, as a percentage of total patrimony.
	ConvergenceTolerance Percent
	// MinTradeSize is the smallest movement worth emitting; gaps below it
	// are left alone.
	MinTradeSize Money
	// FuzzyThreshold is the minimum similarity for the matcher's
	// last-resort name rule.
	FuzzyThreshold float64
}

// DefaultPolicy returns the reference policy constants.
func DefaultPolicy() Policy {
	return Policy{
		HorizonDays:          60,
		TargetSumTolerance:   0.5,
		ConvergenceTolerance: 0.5,
		MinTradeSize:         M(100),
		FuzzyThreshold:       DefaultFuzzyThreshold,
	}
}

// FundDelta is the Phase 1 net position of one fund: target value minus
// current value. Positive means net investment needed, negative net
// redemption.
type FundDelta struct {
	Fund    *FundRecord
	Current Money
	Target  Money
	Delta   Money
}

// Residual is an investment amount Phase 4 could not fund within the
// horizon. It is reported with the partial schedule, never silently
// dropped.
type Residual struct {
	Fund   *FundRecord
	Amount Money
}

// Plan is the output of one simulation run.
type Plan struct {
	Start  date.Date
	Events []CashEvent // ordered by trade date, redemptions first, then fund code
	Ledger *Ledger

	Deltas    []FundDelta
	Unfunded  []Residual
	Adherence []AdherenceRow

	// Diagnostics of the current state and of the projected state after
	// the schedule executes. Reporting only; never feeds back into
	// scheduling.
	Before Diagnosis
	After  Diagnosis
}

// Simulator runs portfolio transitions. It holds only immutable shared
// collaborators, so one Simulator may serve concurrent runs.
type Simulator struct {
	cal    *date.Calendar
	policy Policy
}

// NewSimulator returns a Simulator over the given business calendar and
// policy constants.
func NewSimulator(cal *date.Calendar, policy Policy) *Simulator {
	return &Simulator{cal: cal, policy: policy}
}

// Run computes the transition schedule from the portfolio's current state
// to the target allocation, starting on the first business day at or
// after start.
//
// The five phases run in strict sequence as pure transformations:
// net deltas, redemption ordering, the cash-availability timeline,
// serialized investment scheduling, and a full revalidation of the final
// event list. Unresolved holdings must have been excluded beforehand
// (see Portfolio.Resolve); a holding without a fund here is a usage
// error.
func (s *Simulator) Run(start date.Date, p *Portfolio, t Target) (*Plan, error) {
	for _, h := range p.Holdings {
		if !h.Resolved() {
			return nil, fmt.Errorf("unresolved holding %q: resolve or exclude it before simulating", h.Description)
		}
	}
	if err := t.Validate(s.policy.TargetSumTolerance); err != nil {
		return nil, err
	}
	start = s.cal.NextBusinessDay(start)

	// Phase 1 — net position per fund.
	deltas := s.netDeltas(p, t)

	// Phase 2 — redemption queue, fastest-settling first.
	redemptions := s.scheduleRedemptions(deltas, start)

	// Phase 3 — cash-availability timeline. Redemptions never consume
	// cash, so this phase cannot violate the invariant.
	end := s.horizonEnd(start, redemptions)
	timeline := buildLedger(start, end, p.Cash, redemptions)

	// Phase 4 — investments serialized against the shared cash pool.
	investments, unfunded := s.scheduleInvestments(deltas, timeline, start)

	events := append(slices.Clone(redemptions), investments...)
	slices.SortFunc(events, compareEvents)

	// Phase 5 — recompute the ledger from the finalized event list and
	// validate it independently of the scheduling state above.
	ledger := buildLedger(start, s.horizonEnd(start, events), p.Cash, events)
	if err := ledger.checkNonNegative(); err != nil {
		return nil, err
	}
	if len(unfunded) == 0 {
		if err := s.checkConvergence(deltas, events, p.TotalValue()); err != nil {
			return nil, err
		}
	}

	plan := &Plan{
		Start:     start,
		Events:    events,
		Ledger:    ledger,
		Deltas:    deltas,
		Unfunded:  unfunded,
		Adherence: BuildAdherence(deltas, p.TotalValue()),
		Before:    DiagnosePortfolio(p),
		After:     s.diagnoseAfter(deltas, events, ledger),
	}
	return plan, nil
}

// netDeltas computes, for every fund present in the portfolio or the
// target, the signed difference between target value and current value.
// Funds absent from the target are fully redeemed; funds absent from the
// portfolio are fully invested from freed cash. Results are ordered by
// fund code.
func (s *Simulator) netDeltas(p *Portfolio, t Target) []FundDelta {
	current := p.valueByFund()
	targetValues := t.valueByFund(p.TotalValue())

	funds := p.fundsByCode()
	for code, f := range t.fundsByCode() {
		funds[code] = f
	}

	codes := make([]string, 0, len(funds))
	for code := range funds {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	deltas := make([]FundDelta, 0, len(codes))
	for _, code := range codes {
		cur := current[code]
		tgt := targetValues[code]
		deltas = append(deltas, FundDelta{
			Fund:    funds[code],
			Current: cur,
			Target:  tgt,
			Delta:   tgt.Sub(cur),
		})
	}
	return deltas
}

// scheduleRedemptions emits one REDEMPTION per fund with a negative
// delta, all traded on the start date. The queue is ordered by ascending
// settlement class, then descending amount, then fund code: front-loading
// the fastest cash minimizes the settlement dates Phase 4 must wait on.
func (s *Simulator) scheduleRedemptions(deltas []FundDelta, start date.Date) []CashEvent {
	var queue []FundDelta
	for _, d := range deltas {
		if d.Delta.IsNegative() && d.Delta.Neg().GreaterThanOrEqual(s.policy.MinTradeSize) {
			queue = append(queue, d)
		}
	}
	slices.SortFunc(queue, func(a, b FundDelta) int {
		if a.Fund.Class() != b.Fund.Class() {
			return int(a.Fund.Class()) - int(b.Fund.Class())
		}
		if !a.Delta.Equal(b.Delta) {
			// more negative delta means a larger redemption: it goes first
			if a.Delta.LessThan(b.Delta) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Fund.Code, b.Fund.Code)
	})

	events := make([]CashEvent, 0, len(queue))
	for _, d := range queue {
		amount := d.Delta.Neg().Min(d.Current) // never redeem more than is held
		events = append(events, CashEvent{
			Type:       Redemption,
			Fund:       d.Fund,
			Amount:     amount,
			TradeDate:  start,
			SettleDate: d.Fund.SettleRedemption(s.cal, start),
		})
	}
	return events
}

// horizonEnd returns the last day the ledger must cover: the scheduling
// horizon, extended when a slow fund settles beyond it.
func (s *Simulator) horizonEnd(start date.Date, events []CashEvent) date.Date {
	end := start.Add(s.policy.HorizonDays)
	for _, e := range events {
		if e.SettleDate.After(end) {
			end = e.SettleDate
		}
	}
	return end
}

// scheduleInvestments walks the investment queue, largest capital need
// first, and finds for each the earliest business day whose cash balance
// covers it on that day and every later day. Investments compete for the
// same cash pool, so they are serialized: each scan starts on the day the
// previous investment was scheduled.
//
// When the full amount is not affordable anywhere within the horizon, the
// investment is split into tranches: the affordable part is invested at
// the earliest viable day and the scan repeats for the remainder. What is
// still unfunded when the horizon is exhausted becomes a Residual.
func (s *Simulator) scheduleInvestments(deltas []FundDelta, timeline *Ledger, start date.Date) (events []CashEvent, unfunded []Residual) {
	var queue []FundDelta
	for _, d := range deltas {
		if d.Delta.IsPositive() && d.Delta.GreaterThanOrEqual(s.policy.MinTradeSize) {
			queue = append(queue, d)
		}
	}
	slices.SortFunc(queue, func(a, b FundDelta) int {
		if !a.Delta.Equal(b.Delta) {
			if a.Delta.GreaterThan(b.Delta) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Fund.Code, b.Fund.Code)
	})

	// balances[i] is the projected closing balance of day start+i after
	// every settlement and every investment scheduled so far. Debiting an
	// investment lowers all days from its trade day onward, which is
	// exactly "min over the remaining days" affordability.
	entries := timeline.Entries()
	balances := make([]Money, len(entries))
	days := make([]date.Date, len(entries))
	for i, entry := range entries {
		balances[i] = entry.Closing
		days[i] = entry.Day
	}
	horizonIdx := min(s.policy.HorizonDays, len(balances)-1)

	scanStart := 0
	for _, d := range queue {
		remaining := d.Delta
		for remaining.GreaterThanOrEqual(s.policy.MinTradeSize) {
			idx, affordable := s.earliestAffordable(days, balances, scanStart, horizonIdx, remaining)
			if idx < 0 {
				break
			}
			amount := remaining.Min(affordable)
			day := entries[idx].Day
			events = append(events, CashEvent{
				Type:       Investment,
				Fund:       d.Fund,
				Amount:     amount,
				TradeDate:  day,
				SettleDate: d.Fund.SettleInvestment(s.cal, day),
			})
			for i := idx; i < len(balances); i++ {
				balances[i] = balances[i].Sub(amount)
			}
			scanStart = idx
			remaining = remaining.Sub(amount)
		}
		if remaining.GreaterThanOrEqual(s.policy.MinTradeSize) {
			unfunded = append(unfunded, Residual{Fund: d.Fund, Amount: remaining})
		}
	}
	return events, unfunded
}

// earliestAffordable finds the earliest business day index in
// [scanStart, horizonIdx] whose balance stays sufficient on that day and
// all later days. The first pass looks for a day funding the full amount;
// the second settles for the earliest day affording at least a
// MinTradeSize tranche. It returns the index and the affordable amount
// there, or -1 when no day qualifies.
func (s *Simulator) earliestAffordable(days []date.Date, balances []Money, scanStart, horizonIdx int, want Money) (int, Money) {
	// suffix minimum of balances: investing amount a on day i keeps every
	// later day non-negative iff a <= minFrom[i].
	minFrom := make([]Money, len(balances))
	for i := len(balances) - 1; i >= 0; i-- {
		minFrom[i] = balances[i]
		if i+1 < len(balances) && minFrom[i+1].LessThan(minFrom[i]) {
			minFrom[i] = minFrom[i+1]
		}
	}
	for i := scanStart; i <= horizonIdx; i++ {
		if !s.cal.IsBusinessDay(days[i]) {
			continue
		}
		if minFrom[i].GreaterThanOrEqual(want) {
			return i, want
		}
	}
	for i := scanStart; i <= horizonIdx; i++ {
		if !s.cal.IsBusinessDay(days[i]) {
			continue
		}
		if minFrom[i].GreaterThanOrEqual(s.policy.MinTradeSize) {
			return i, minFrom[i]
		}
	}
	return -1, Money{}
}

// checkConvergence verifies, once every investment is fully funded, that
// each fund's final value matches its target within tolerance. A mismatch
// is a defect in the scheduling logic and aborts the run.
func (s *Simulator) checkConvergence(deltas []FundDelta, events []CashEvent, total Money) error {
	moved := make(map[string]Money)
	for _, e := range events {
		switch e.Type {
		case Redemption:
			moved[e.Fund.Code] = moved[e.Fund.Code].Sub(e.Amount)
		case Investment:
			moved[e.Fund.Code] = moved[e.Fund.Code].Add(e.Amount)
		}
	}
	allowed := total.ApplyPercent(s.policy.ConvergenceTolerance)
	if allowed.LessThan(s.policy.MinTradeSize) {
		// gaps below the minimum trade size are deliberately left open
		allowed = s.policy.MinTradeSize
	}
	for _, d := range deltas {
		final := d.Current.Add(moved[d.Fund.Code])
		if final.Sub(d.Target).Abs().GreaterThan(allowed) {
			return fmt.Errorf("scheduling defect: fund %q ends at %s, target %s (tolerance %s)",
				d.Fund.Code, final, d.Target, allowed)
		}
	}
	return nil
}

// diagnoseAfter computes the diagnostics of the projected state: final
// fund values after all scheduled movements, plus the cash left at the
// end of the ledger.
func (s *Simulator) diagnoseAfter(deltas []FundDelta, events []CashEvent, ledger *Ledger) Diagnosis {
	moved := make(map[string]Money)
	for _, e := range events {
		switch e.Type {
		case Redemption:
			moved[e.Fund.Code] = moved[e.Fund.Code].Sub(e.Amount)
		case Investment:
			moved[e.Fund.Code] = moved[e.Fund.Code].Add(e.Amount)
		}
	}
	var positions []Position
	for _, d := range deltas {
		final := d.Current.Add(moved[d.Fund.Code])
		if final.IsPositive() {
			positions = append(positions, Position{Fund: d.Fund, Value: final})
		}
	}
	finalCash := ledger.Entries()[len(ledger.Entries())-1].Closing
	return Diagnose(positions, finalCash)
}
