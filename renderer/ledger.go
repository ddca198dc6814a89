package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	simulador "github.com/romulocorcinotag/simulador-realocacao"
)

// LedgerMarkdown renders the day-by-day cash projection. Days with no
// activity are collapsed unless full is set, to keep a 60-day horizon
// readable.
func LedgerMarkdown(l *simulador.Ledger, full bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Cash Ledger %s to %s", l.Start(), l.End()))

	table := md.TableSet{
		Header: []string{"Day", "Opening", "Settled", "Invested", "Closing"},
	}
	skipped := 0
	for _, entry := range l.Entries() {
		if !full && len(entry.Settlements) == 0 && len(entry.Investments) == 0 {
			skipped++
			continue
		}
		table.Rows = append(table.Rows, []string{
			entry.Day.String(),
			entry.Opening.String(),
			describeEvents(entry.Settlements),
			describeEvents(entry.Investments),
			entry.Closing.String(),
		})
	}
	doc.Table(table)
	if skipped > 0 {
		doc.PlainText(fmt.Sprintf("%d quiet days omitted.", skipped))
	}

	return doc.String()
}

func describeEvents(events []simulador.CashEvent) string {
	if len(events) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, fmt.Sprintf("%s %s", e.Fund.Code, e.Amount))
	}
	return strings.Join(parts, ", ")
}
