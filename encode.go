package simulador

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// This file contains the fund base import/export format. It is a JSONL
// file, one fund per line, human readable and git-friendly, so a fund
// base exported once from the xlsx master can live as plain text.

// jfund is the wire form of a FundRecord.
type jfund struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	Ticker           string `json:"ticker,omitempty"`
	RedeemConversion int    `json:"redeem_conversion"`
	RedeemSettlement int    `json:"redeem_settlement"`
	InvestConversion int    `json:"invest_conversion"`
	Count            string `json:"count,omitempty"` // "business" (default) or "calendar"
}

// DecodeDirectory reads a fund base in the JSONL import/export format.
func DecodeDirectory(r io.Reader) (*Directory, error) {
	var funds []*FundRecord
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		var jf jfund
		if err := json.Unmarshal([]byte(txt), &jf); err != nil {
			return nil, fmt.Errorf("format error on line %d: %q: %w", line, txt, err)
		}
		count := BusinessDays
		if jf.Count != "" {
			var err error
			count, err = ParseDayCount(jf.Count)
			if err != nil {
				return nil, fmt.Errorf("format error on line %d: %w", line, err)
			}
		}
		funds = append(funds, &FundRecord{
			Code:             jf.Code,
			Name:             jf.Name,
			Ticker:           jf.Ticker,
			RedeemConversion: jf.RedeemConversion,
			RedeemSettlement: jf.RedeemSettlement,
			InvestConversion: jf.InvestConversion,
			Count:            count,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read fund base: %w", err)
	}
	return NewDirectory(funds...)
}

// EncodeDirectory writes the fund base to 'w' in the import/export
// format, sorted by code so the output is reproducible.
func EncodeDirectory(w io.Writer, d *Directory) error {
	enc := json.NewEncoder(w)
	for _, f := range d.All() {
		jf := jfund{
			Code:             f.Code,
			Name:             f.Name,
			Ticker:           f.Ticker,
			RedeemConversion: f.RedeemConversion,
			RedeemSettlement: f.RedeemSettlement,
			InvestConversion: f.InvestConversion,
		}
		if f.Count != BusinessDays {
			jf.Count = f.Count.String()
		}
		if err := enc.Encode(jf); err != nil {
			return fmt.Errorf("cannot encode fund %q: %w", f.Code, err)
		}
	}
	return nil
}
