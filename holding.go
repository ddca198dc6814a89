package simulador

import (
	"github.com/romulocorcinotag/simulador-realocacao/date"
)

// Holding is one line of the current portfolio. Fund stays nil until the
// matcher resolves Description against the Directory; after resolution a
// holding is immutable for the duration of a simulation run.
type Holding struct {
	Description string // free-text identifier from the upload or manual entry
	Fund        *FundRecord
	Value       Money
	AsOf        date.Date
}

// Resolved reports whether the holding references a canonical fund.
func (h Holding) Resolved() bool { return h.Fund != nil }

// Portfolio is the client's current position: the holding lines plus any
// pre-existing uninvested cash.
type Portfolio struct {
	Holdings []Holding
	Cash     Money
}

// TotalValue returns the sum of all holding values plus cash, resolved or
// not. It is the patrimony the target percentages apply to.
func (p *Portfolio) TotalValue() Money {
	total := p.Cash
	for _, h := range p.Holdings {
		total = total.Add(h.Value)
	}
	return total
}

// Resolve matches every unresolved holding against the directory. Lines
// that stay unresolved are removed from the portfolio and returned: they
// are excluded from the simulation until a human resolves them, and
// their value no longer counts towards total patrimony.
func (p *Portfolio) Resolve(dir *Directory) (unresolved []Holding) {
	kept := p.Holdings[:0]
	for _, h := range p.Holdings {
		if !h.Resolved() {
			if res, ok := dir.Match(h.Description); ok {
				h.Fund = res.Fund
			}
		}
		if h.Resolved() {
			kept = append(kept, h)
		} else {
			unresolved = append(unresolved, h)
		}
	}
	p.Holdings = kept
	return unresolved
}

// valueByFund aggregates resolved holdings per fund code. Multiple lines
// of the same fund collapse into one position.
func (p *Portfolio) valueByFund() map[string]Money {
	values := make(map[string]Money)
	for _, h := range p.Holdings {
		if !h.Resolved() {
			continue
		}
		values[h.Fund.Code] = values[h.Fund.Code].Add(h.Value)
	}
	return values
}

// fundsByCode indexes the resolved holdings' fund records.
func (p *Portfolio) fundsByCode() map[string]*FundRecord {
	funds := make(map[string]*FundRecord)
	for _, h := range p.Holdings {
		if h.Resolved() {
			funds[h.Fund.Code] = h.Fund
		}
	}
	return funds
}
