package simulador

import (
	"strings"

	"github.com/romulocorcinotag/simulador-realocacao/date"
)

// EventType distinguishes the two scheduled cash movements.
type EventType int

const (
	Redemption EventType = iota
	Investment
)

func (t EventType) String() string {
	switch t {
	case Redemption:
		return "REDEMPTION"
	case Investment:
		return "INVESTMENT"
	default:
		return "unknown"
	}
}

// CashEvent is one scheduled movement of the transition plan. Events are
// immutable once emitted; the ordered event sequence is the engine's
// primary output.
//
// A redemption credits cash on SettleDate. An investment debits cash on
// TradeDate and its quota converts on SettleDate.
type CashEvent struct {
	Type       EventType
	Fund       *FundRecord
	Amount     Money
	TradeDate  date.Date
	SettleDate date.Date
}

// compareEvents orders events for output: by trade date, redemptions
// before investments on the same day, then by fund code so identical
// inputs always produce byte-identical sequences.
func compareEvents(a, b CashEvent) int {
	if a.TradeDate != b.TradeDate {
		if a.TradeDate.Before(b.TradeDate) {
			return -1
		}
		return 1
	}
	if a.Type != b.Type {
		return int(a.Type) - int(b.Type)
	}
	return strings.Compare(a.Fund.Code, b.Fund.Code)
}
