package simulador

import (
	"fmt"

	"github.com/romulocorcinotag/simulador-realocacao/date"
)

// DailyLedgerEntry is the projected cash state of one simulated calendar
// day: the opening balance, the settlements maturing that day, the
// investments debited that day, and the closing balance.
//
// Invariant: Closing = Opening + net settled cash - net invested cash,
// and Closing >= 0 on every day of a valid schedule.
type DailyLedgerEntry struct {
	Day         date.Date
	Opening     Money
	Settlements []CashEvent // redemptions whose cash arrives this day
	Investments []CashEvent // investments debited this day
	Closing     Money
}

// Ledger is the day-indexed projection of one simulation run. It is
// derived data, owned by a single run and never shared across runs.
type Ledger struct {
	entries []DailyLedgerEntry
	index   map[date.Date]int
}

// buildLedger replays events over consecutive calendar days from start to
// end (inclusive) and records one entry per day. The opening balance of
// the first day is the portfolio's pre-existing uninvested cash.
func buildLedger(start, end date.Date, openingCash Money, events []CashEvent) *Ledger {
	byTrade := make(map[date.Date][]CashEvent)
	bySettle := make(map[date.Date][]CashEvent)
	for _, e := range events {
		switch e.Type {
		case Redemption:
			bySettle[e.SettleDate] = append(bySettle[e.SettleDate], e)
		case Investment:
			byTrade[e.TradeDate] = append(byTrade[e.TradeDate], e)
		}
	}

	l := &Ledger{index: make(map[date.Date]int)}
	balance := openingCash
	for day := start; !day.After(end); day = day.Add(1) {
		entry := DailyLedgerEntry{
			Day:         day,
			Opening:     balance,
			Settlements: bySettle[day],
			Investments: byTrade[day],
		}
		for _, e := range entry.Settlements {
			balance = balance.Add(e.Amount)
		}
		for _, e := range entry.Investments {
			balance = balance.Sub(e.Amount)
		}
		entry.Closing = balance
		l.index[day] = len(l.entries)
		l.entries = append(l.entries, entry)
	}
	return l
}

// Entries returns the ledger entries in day order.
func (l *Ledger) Entries() []DailyLedgerEntry { return l.entries }

// Start returns the first simulated day.
func (l *Ledger) Start() date.Date { return l.entries[0].Day }

// End returns the last simulated day.
func (l *Ledger) End() date.Date { return l.entries[len(l.entries)-1].Day }

// On returns the entry for a given day.
func (l *Ledger) On(day date.Date) (DailyLedgerEntry, bool) {
	i, ok := l.index[day]
	if !ok {
		return DailyLedgerEntry{}, false
	}
	return l.entries[i], true
}

// InvariantViolationError reports a day whose closing balance went
// negative in the final validated schedule. It indicates a defect in the
// scheduling logic, never a recoverable input condition; the full ledger
// is attached for diagnosis.
type InvariantViolationError struct {
	Day     date.Date
	Closing Money
	Ledger  *Ledger
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("scheduling defect: projected cash balance %s is negative on %s", e.Closing, e.Day)
}

// checkNonNegative returns an InvariantViolationError for the first day
// with a negative closing balance, or nil.
func (l *Ledger) checkNonNegative() error {
	for _, entry := range l.entries {
		if entry.Closing.IsNegative() {
			return &InvariantViolationError{Day: entry.Day, Closing: entry.Closing, Ledger: l}
		}
	}
	return nil
}
