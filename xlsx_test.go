package simulador

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeSheet saves a workbook with the given rows into dir and returns
// its path.
func writeSheet(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestReadDirectoryXLSX(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "base.xlsx", [][]interface{}{
		{"Código Anbima", "Nome", "Ticker", "Conversão Resgate", "Liquid. Resgate", "Conversão Aplic.", "Contagem Resgate"},
		{"35927", "BTG Pactual Tesouro Selic FI RF", "", 0, 1, 0, "Úteis"},
		{"50881", "<b>Kinea Credito Privado FIC FIM</b>", "KNCA11", 29, 1, 1, "Corridos"},
		{"", "row without code is skipped", "", 0, 0, 0, ""},
	})

	d, err := ReadDirectoryXLSX(path)
	if err != nil {
		t.Fatalf("ReadDirectoryXLSX: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("got %d funds, want 2", d.Len())
	}

	kinea := d.Get("50881")
	if kinea == nil {
		t.Fatal("fund 50881 not loaded")
	}
	if kinea.Name != "Kinea Credito Privado FIC FIM" {
		t.Errorf("HTML not stripped from name: %q", kinea.Name)
	}
	if kinea.RedeemConversion != 29 || kinea.RedeemSettlement != 1 || kinea.Count != CalendarDays {
		t.Errorf("unexpected settlement fields: %+v", kinea)
	}
	if btg := d.Get("35927"); btg.Count != BusinessDays {
		t.Errorf("BTG count = %s, want business", btg.Count)
	}
}

func TestReadDirectoryXLSX_MissingColumns(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "base.xlsx", [][]interface{}{
		{"Nome", "Valor"},
		{"Fund", 100},
	})
	if _, err := ReadDirectoryXLSX(path); err == nil {
		t.Error("expected an error for missing columns")
	}
}

func TestReadPortfolioXLSX(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "portfolio.xlsx", [][]interface{}{
		{"ATIVO", "CÓD. ATIVO", "FINANCEIRO", "DATA"},
		{"BTG Pactual Tesouro Selic", "35927", "R$1.234,56", "2025-03-03"},
		{"Kinea Credito Privado", "", "1000", ""},
		{"", "", "", ""},
	})

	p, err := ReadPortfolioXLSX(path)
	if err != nil {
		t.Fatalf("ReadPortfolioXLSX: %v", err)
	}
	if len(p.Holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(p.Holdings))
	}

	first := p.Holdings[0]
	if first.Description != "35927" {
		t.Errorf("description = %q, want the code column to win", first.Description)
	}
	if !first.Value.Equal(M(1234.56)) {
		t.Errorf("value = %s, want %s", first.Value, M(1234.56))
	}
	if first.AsOf.String() != "2025-03-03" {
		t.Errorf("as-of = %s, want 2025-03-03", first.AsOf)
	}
	second := p.Holdings[1]
	if second.Description != "Kinea Credito Privado" || !second.Value.Equal(M(1000)) {
		t.Errorf("unexpected second holding: %+v", second)
	}
}

func TestReadModelXLSX(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "model.xlsx", [][]interface{}{
		{"Código", "Ativo", "% Alvo"},
		{"35927", "BTG Pactual Tesouro Selic", "60"},
		{"", "Kinea Credito Privado", "40"},
	})

	model, err := ReadModelXLSX(path)
	if err != nil {
		t.Fatalf("ReadModelXLSX: %v", err)
	}
	if len(model) != 2 {
		t.Fatalf("got %d rows, want 2", len(model))
	}
	if model[0].Code != "35927" || !model[0].Weight.Equal(60) {
		t.Errorf("unexpected first row: %+v", model[0])
	}
	if model[1].Code != "" || model[1].Name != "Kinea Credito Privado" || !model[1].Weight.Equal(40) {
		t.Errorf("unexpected second row: %+v", model[1])
	}
}

func TestResolveModel(t *testing.T) {
	dir, err := NewDirectory(
		&FundRecord{Code: "35927", Name: "BTG Pactual Tesouro Selic FI RF"},
		&FundRecord{Code: "50881", Name: "Kinea Credito Privado FIC FIM"},
	)
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}

	target, err := ResolveModel(dir, []ModelRow{
		{Code: "35927", Weight: 60},
		{Name: "Kinea Credito Privado", Weight: 40},
	})
	if err != nil {
		t.Fatalf("ResolveModel: %v", err)
	}
	if len(target.Allocations) != 2 {
		t.Fatalf("got %d allocations, want 2", len(target.Allocations))
	}
	if target.Allocations[0].Fund.Code != "35927" || target.Allocations[1].Fund.Code != "50881" {
		t.Errorf("unexpected resolution: %+v", target.Allocations)
	}

	if _, err := ResolveModel(dir, []ModelRow{{Name: "XYZ-UNKNOWN", Weight: 100}}); err == nil {
		t.Error("an unresolved model line should be an error")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1234.56", 1234.56},
		{"1.234,56", 1234.56},
		{"R$1.234,56", 1234.56},
		{"R$ 1000", 1000},
		{"1000", 1000},
	}
	for _, tc := range tests {
		got, err := parseNumber(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("parseNumber(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := parseNumber("abc"); err == nil {
		t.Error("parseNumber should reject non-numeric input")
	}
	if got, err := parseNumber(""); err != nil || got != 0 {
		t.Errorf("empty cell = %v, %v, want 0", got, err)
	}
}
