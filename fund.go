package simulador

import (
	"fmt"

	"github.com/romulocorcinotag/simulador-realocacao/date"
)

// DayCount selects how a fund counts its settlement delays.
type DayCount int

const (
	// BusinessDays counts only business days ("úteis"), skipping weekends and holidays.
	BusinessDays DayCount = iota
	// CalendarDays counts every calendar day ("corridos").
	CalendarDays
)

func (c DayCount) String() string {
	switch c {
	case BusinessDays:
		return "business"
	case CalendarDays:
		return "calendar"
	default:
		return "unknown"
	}
}

// ParseDayCount parses a string into a DayCount. It also accepts the
// Portuguese terms found in the fund base ("Úteis", "Corridos").
func ParseDayCount(s string) (DayCount, error) {
	switch s {
	case "business", "Úteis", "Uteis", "úteis", "uteis":
		return BusinessDays, nil
	case "calendar", "Corridos", "corridos":
		return CalendarDays, nil
	default:
		return 0, fmt.Errorf("unknown day count convention: %q", s)
	}
}

// SettlementClass bands a fund's total redemption delay.
type SettlementClass int

const (
	D0 SettlementClass = iota // same-day settlement
	D1
	D2to5
	D6to30
	D30Plus
)

func (c SettlementClass) String() string {
	switch c {
	case D0:
		return "D+0"
	case D1:
		return "D+1"
	case D2to5:
		return "D+2-5"
	case D6to30:
		return "D+6-30"
	case D30Plus:
		return "D+30+"
	default:
		return "unknown"
	}
}

// ClassOf bands a total redemption delay (in days) into its SettlementClass.
func ClassOf(delay int) SettlementClass {
	switch {
	case delay <= 0:
		return D0
	case delay == 1:
		return D1
	case delay <= 5:
		return D2to5
	case delay <= 30:
		return D6to30
	default:
		return D30Plus
	}
}

// LiquidityBucket groups settlement classes into the four speed buckets
// used for diagnostics and for redemption-ordering tie-breaks.
type LiquidityBucket int

const (
	Immediate LiquidityBucket = iota // settles in at most one day
	Short                            // D+2 to D+5
	Medium                           // D+6 to D+30
	Long                             // beyond D+30
)

func (b LiquidityBucket) String() string {
	switch b {
	case Immediate:
		return "immediate"
	case Short:
		return "short"
	case Medium:
		return "medium"
	case Long:
		return "long"
	default:
		return "unknown"
	}
}

// Bucket maps a settlement class to its liquidity bucket.
func (c SettlementClass) Bucket() LiquidityBucket {
	switch c {
	case D0, D1:
		return Immediate
	case D2to5:
		return Short
	case D6to30:
		return Medium
	default:
		return Long
	}
}

// FundRecord is the canonical identity of a fund in the reference base.
//
// Records are immutable after load: the engine looks them up, never
// mutates them, so a single Directory can be shared across runs.
//
// A redemption settles in two legs, conversion ("cotização") then
// settlement ("liquidação"); an investment only has its conversion leg.
// Both legs are counted in the fund's own day-count convention.
type FundRecord struct {
	Code   string // Anbima-style canonical identifier
	Name   string // display name
	Ticker string // exchange ticker, empty for unlisted funds

	RedeemConversion int // D+n until redemption quota conversion
	RedeemSettlement int // D+n from conversion until cash settles
	InvestConversion int // D+n until an investment quota converts
	Count            DayCount
}

// RedemptionDelay returns the total days between a redemption order and
// cash availability.
func (f *FundRecord) RedemptionDelay() int { return f.RedeemConversion + f.RedeemSettlement }

// Class returns the settlement-delay class of the fund.
func (f *FundRecord) Class() SettlementClass { return ClassOf(f.RedemptionDelay()) }

// Bucket returns the liquidity bucket of the fund.
func (f *FundRecord) Bucket() LiquidityBucket { return f.Class().Bucket() }

// addDays applies n days after d under the fund's day-count convention.
func (f *FundRecord) addDays(cal *date.Calendar, d date.Date, n int) date.Date {
	if f.Count == CalendarDays {
		return cal.AddCalendarDays(d, n)
	}
	return cal.AddBusinessDays(d, n)
}

// SettleRedemption projects the settlement date of a redemption traded on
// trade: the conversion leg, then the settlement leg.
func (f *FundRecord) SettleRedemption(cal *date.Calendar, trade date.Date) date.Date {
	converted := f.addDays(cal, trade, f.RedeemConversion)
	return f.addDays(cal, converted, f.RedeemSettlement)
}

// SettleInvestment projects the quota-conversion date of an investment
// traded on trade.
func (f *FundRecord) SettleInvestment(cal *date.Calendar, trade date.Date) date.Date {
	return f.addDays(cal, trade, f.InvestConversion)
}

// LatestRequest returns the latest trade date for a redemption that must
// settle no later than target. It walks both legs backwards.
func (f *FundRecord) LatestRequest(cal *date.Calendar, target date.Date) date.Date {
	if f.Count == CalendarDays {
		return target.Add(-f.RedemptionDelay())
	}
	preSettlement := cal.SubtractBusinessDays(target, f.RedeemSettlement)
	return cal.SubtractBusinessDays(preSettlement, f.RedeemConversion)
}

// DelayString renders the redemption legs the way advisors read them,
// e.g. "D+1+2 (business)".
func (f *FundRecord) DelayString() string {
	return fmt.Sprintf("D+%d+%d (%s)", f.RedeemConversion, f.RedeemSettlement, f.Count)
}
