package simulador

import (
	"testing"
	"time"

	"github.com/romulocorcinotag/simulador-realocacao/date"
)

func TestParsePolicy_Defaults(t *testing.T) {
	p, holidays, err := parsePolicy([]byte(""), "empty.yaml")
	if err != nil {
		t.Fatalf("parsePolicy: %v", err)
	}
	if p != DefaultPolicy() {
		t.Errorf("empty file should yield defaults, got %+v", p)
	}
	if len(holidays) != 0 {
		t.Errorf("unexpected holidays: %v", holidays)
	}
}

func TestParsePolicy_Overrides(t *testing.T) {
	const raw = `
horizon_days: 90
min_trade_size: 250
fuzzy_threshold: 0.9
holidays:
  - 2025-04-21
  - 2025-12-25
`
	p, holidays, err := parsePolicy([]byte(raw), "policy.yaml")
	if err != nil {
		t.Fatalf("parsePolicy: %v", err)
	}
	if p.HorizonDays != 90 {
		t.Errorf("horizon = %d, want 90", p.HorizonDays)
	}
	if !p.MinTradeSize.Equal(M(250)) {
		t.Errorf("min trade = %s, want %s", p.MinTradeSize, M(250))
	}
	if p.FuzzyThreshold != 0.9 {
		t.Errorf("fuzzy threshold = %v, want 0.9", p.FuzzyThreshold)
	}
	// untouched fields keep their defaults
	if !p.ConvergenceTolerance.Equal(DefaultPolicy().ConvergenceTolerance) {
		t.Errorf("convergence tolerance = %s, want default", p.ConvergenceTolerance)
	}
	want := []date.Date{date.New(2025, time.April, 21), date.New(2025, time.December, 25)}
	if len(holidays) != 2 || holidays[0] != want[0] || holidays[1] != want[1] {
		t.Errorf("holidays = %v, want %v", holidays, want)
	}
}

func TestParsePolicy_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"broken yaml", "horizon_days: ["},
		{"zero horizon", "horizon_days: 0"},
		{"negative horizon", "horizon_days: -5"},
		{"threshold too high", "fuzzy_threshold: 1.5"},
		{"threshold zero", "fuzzy_threshold: 0"},
		{"bad holiday", "holidays: [not-a-date]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := parsePolicy([]byte(tc.raw), "policy.yaml"); err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}
