package simulador

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/romulocorcinotag/simulador-realocacao/date"
)

// This file reads the three xlsx inputs the surrounding application
// produces: the fund liquidation master ("Dados de liquid"), the current
// portfolio extract, and the model portfolio. Column headers vary between
// exports, so each loader locates its columns from a candidate list,
// exact match first, then prefix.

var htmlTagRegex = regexp.MustCompile(`<[^>]+>`)

// stripHTML removes the HTML tags some exports leave inside cell values.
func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagRegex.ReplaceAllString(s, ""))
}

// findColumn locates the first header matching one of the candidates:
// exact (case-insensitive) first, then by 6-character prefix. Returns -1
// when no candidate matches.
func findColumn(header []string, candidates ...string) int {
	for _, c := range candidates {
		for i, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), c) {
				return i
			}
		}
	}
	for _, c := range candidates {
		prefix := strings.ToUpper(c)
		if len(prefix) > 6 {
			prefix = prefix[:6]
		}
		for i, col := range header {
			if strings.Contains(strings.ToUpper(col), prefix) {
				return i
			}
		}
	}
	return -1
}

// cell returns the stripped cell at index i, or "" past the row's end.
// xlsx rows are ragged: trailing empty cells are simply absent.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return stripHTML(row[i])
}

// parseNumber parses a numeric cell, accepting both decimal conventions
// ("1234.56" and "1.234,56") and a leading currency symbol.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

func parseIntCell(s string) int {
	n, err := parseNumber(s)
	if err != nil {
		return 0
	}
	return int(n)
}

// ReadDirectoryXLSX loads the fund base from the liquidation master
// workbook. Expected columns: Código Anbima (or Id Carteira), Nome or
// Apelido, optional Ticker, Conversão Resgate, Liquid. Resgate,
// Conversão Aplic., Contagem Resgate.
func ReadDirectoryXLSX(path string) (*Directory, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open fund base %q: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("fund base %q has no data rows", path)
	}

	header := rows[0]
	codeCol := findColumn(header, "Código Anbima", "Codigo Anbima", "Id Carteira")
	nameCol := findColumn(header, "Nome", "Apelido")
	nickCol := findColumn(header, "Apelido")
	tickerCol := findColumn(header, "Ticker")
	convCol := findColumn(header, "Conversão Resgate", "Conversao Resgate")
	settleCol := findColumn(header, "Liquid. Resgate", "Liquidação Resgate")
	investCol := findColumn(header, "Conversão Aplic.", "Conversao Aplic.")
	countCol := findColumn(header, "Contagem Resgate")
	if codeCol < 0 || nameCol < 0 || convCol < 0 || settleCol < 0 {
		return nil, fmt.Errorf("fund base %q: missing required columns", path)
	}

	var funds []*FundRecord
	for _, row := range rows[1:] {
		code := cell(row, codeCol)
		if code == "" {
			continue
		}
		name := cell(row, nameCol)
		if nick := cell(row, nickCol); name == "" && nick != "" {
			name = nick
		}
		count := BusinessDays
		if c := cell(row, countCol); c != "" {
			if parsed, err := ParseDayCount(c); err == nil {
				// anything unexpected in the convention column stays
				// business days, as the reference base does
				count = parsed
			}
		}
		funds = append(funds, &FundRecord{
			Code:             code,
			Name:             name,
			Ticker:           cell(row, tickerCol),
			RedeemConversion: parseIntCell(cell(row, convCol)),
			RedeemSettlement: parseIntCell(cell(row, settleCol)),
			InvestConversion: parseIntCell(cell(row, investCol)),
			Count:            count,
		})
	}
	return NewDirectory(funds...)
}

// ReadPortfolioXLSX loads the current portfolio extract. Expected
// columns: ATIVO, CÓD. ATIVO, FINANCEIRO, optional DATA. Rows whose code
// and name are both empty are skipped.
func ReadPortfolioXLSX(path string) (*Portfolio, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open portfolio %q: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("portfolio %q has no data rows", path)
	}

	header := rows[0]
	codeCol := findColumn(header, "CÓD. ATIVO", "COD. ATIVO", "Código", "Codigo")
	nameCol := findColumn(header, "ATIVO", "Nome")
	valueCol := findColumn(header, "FINANCEIRO", "Valor")
	dateCol := findColumn(header, "DATA")
	if nameCol < 0 && codeCol < 0 {
		return nil, fmt.Errorf("portfolio %q: no asset identifier column", path)
	}
	if valueCol < 0 {
		return nil, fmt.Errorf("portfolio %q: no value column", path)
	}

	p := &Portfolio{}
	for _, row := range rows[1:] {
		description := cell(row, codeCol)
		if description == "" {
			description = cell(row, nameCol)
		}
		if description == "" {
			continue
		}
		value, err := parseNumber(cell(row, valueCol))
		if err != nil {
			return nil, fmt.Errorf("portfolio %q: bad value for %q: %w", path, description, err)
		}
		asOf := date.Today()
		if raw := cell(row, dateCol); raw != "" {
			if d, err := date.Parse(raw); err == nil {
				asOf = d
			}
		}
		p.Holdings = append(p.Holdings, Holding{
			Description: description,
			Value:       M(value),
			AsOf:        asOf,
		})
	}
	return p, nil
}

// ModelRow is one line of the model portfolio file, still unresolved
// against the fund base.
type ModelRow struct {
	Code   string
	Name   string
	Weight Percent
}

// ReadModelXLSX loads the model portfolio. Expected columns: Código,
// Ativo, % Alvo.
func ReadModelXLSX(path string) ([]ModelRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open model %q: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("model %q has no data rows", path)
	}

	header := rows[0]
	codeCol := findColumn(header, "Código", "Codigo", "Cod")
	nameCol := findColumn(header, "Ativo", "Nome", "Fundo")
	pctCol := findColumn(header, "% Alvo", "%Alvo", "Peso", "Alocação")
	if pctCol < 0 || (codeCol < 0 && nameCol < 0) {
		return nil, fmt.Errorf("model %q: missing required columns", path)
	}

	var model []ModelRow
	for _, row := range rows[1:] {
		code := cell(row, codeCol)
		name := cell(row, nameCol)
		if code == "" && name == "" {
			continue
		}
		pct, err := parseNumber(cell(row, pctCol))
		if err != nil {
			return nil, fmt.Errorf("model %q: bad target percentage for %q: %w", path, name, err)
		}
		model = append(model, ModelRow{Code: code, Name: name, Weight: Percent(pct)})
	}
	return model, nil
}

// ResolveModel matches model rows against the directory into a Target.
// Unlike holdings, a model line that cannot be resolved is an error: a
// target allocation without a canonical fund cannot be scheduled.
func ResolveModel(dir *Directory, model []ModelRow) (Target, error) {
	var t Target
	for _, row := range model {
		query := row.Code
		if query == "" {
			query = row.Name
		}
		res, ok := dir.Match(query)
		if !ok && row.Code != "" && row.Name != "" {
			res, ok = dir.Match(row.Name)
		}
		if !ok {
			return Target{}, fmt.Errorf("model line %q: no matching fund in the base", query)
		}
		t.Allocations = append(t.Allocations, TargetAllocation{Fund: res.Fund, Weight: row.Weight})
	}
	return t, nil
}
