package simulador

import (
	"strings"
	"testing"
)

func TestDecodeDirectory(t *testing.T) {
	const base = `
{"code":"35927","name":"BTG Pactual Tesouro Selic FI RF","redeem_conversion":0,"redeem_settlement":1,"invest_conversion":0}

{"code":"50881","name":"Kinea Credito Privado FIC FIM","ticker":"KNCA11","redeem_conversion":29,"redeem_settlement":1,"invest_conversion":1,"count":"calendar"}
`
	d, err := DecodeDirectory(strings.NewReader(base))
	if err != nil {
		t.Fatalf("DecodeDirectory: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("got %d funds, want 2", d.Len())
	}

	btg := d.Get("35927")
	if btg == nil || btg.RedeemSettlement != 1 || btg.Count != BusinessDays {
		t.Errorf("unexpected BTG record: %+v", btg)
	}
	kinea := d.Get("50881")
	if kinea == nil || kinea.Ticker != "KNCA11" || kinea.Count != CalendarDays {
		t.Errorf("unexpected Kinea record: %+v", kinea)
	}
	if kinea.Class() != D6to30 {
		t.Errorf("Kinea class = %s, want D+6-30", kinea.Class())
	}
}

func TestDecodeDirectory_Errors(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{"broken json", `{"code":"1"`},
		{"bad day count", `{"code":"1","name":"A","count":"weekly"}`},
		{"duplicate code", `{"code":"1","name":"A"}` + "\n" + `{"code":"1","name":"B"}`},
		{"missing code", `{"name":"A"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeDirectory(strings.NewReader(tc.base)); err == nil {
				t.Error("expected a decode error")
			}
		})
	}
}

func TestEncodeDirectory_RoundTrip(t *testing.T) {
	d, err := NewDirectory(
		&FundRecord{Code: "2", Name: "Second", RedeemConversion: 1, Count: CalendarDays},
		&FundRecord{Code: "1", Name: "First", Ticker: "FST11", RedeemSettlement: 2},
	)
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}

	var buf strings.Builder
	if err := EncodeDirectory(&buf, d); err != nil {
		t.Fatalf("EncodeDirectory: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	// sorted by code regardless of insertion order
	if !strings.Contains(lines[0], `"code":"1"`) {
		t.Errorf("first line should be fund 1, got %q", lines[0])
	}
	// the default convention is omitted from the wire form
	if strings.Contains(lines[0], "count") {
		t.Errorf("business day count should be omitted, got %q", lines[0])
	}
	if !strings.Contains(lines[1], `"count":"calendar"`) {
		t.Errorf("calendar day count should be explicit, got %q", lines[1])
	}

	back, err := DecodeDirectory(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("DecodeDirectory: %v", err)
	}
	for _, want := range d.All() {
		got := back.Get(want.Code)
		if got == nil || *got != *want {
			t.Errorf("round trip of %q: got %+v, want %+v", want.Code, got, want)
		}
	}
}
