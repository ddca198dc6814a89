package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	simulador "github.com/romulocorcinotag/simulador-realocacao"
)

// DiagnosticsMarkdown renders the before/after comparison of
// concentration and liquidity metrics.
func DiagnosticsMarkdown(before, after simulador.Diagnosis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Allocation Diagnostics")

	doc.Table(md.TableSet{
		Header: []string{"Metric", "Current", "Proposed"},
		Rows: [][]string{
			{"Total", before.Total.String(), after.Total.String()},
			{"Cash", before.Cash.String(), after.Cash.String()},
			{"HHI", fmt.Sprintf("%.4f", before.HHI), fmt.Sprintf("%.4f", after.HHI)},
			{"Top 5 concentration", before.Top(5).String(), after.Top(5).String()},
			{"Cash within D+5", before.QuickCash().String(), after.QuickCash().String()},
		},
	})

	doc.H2("Liquidity Mix")
	buckets := md.TableSet{Header: []string{"Bucket", "Current", "Proposed"}}
	for _, b := range []simulador.LiquidityBucket{
		simulador.Immediate, simulador.Short, simulador.Medium, simulador.Long,
	} {
		buckets.Rows = append(buckets.Rows, []string{
			b.String(),
			before.Buckets[b].String(),
			after.Buckets[b].String(),
		})
	}
	doc.Table(buckets)

	doc.H2("Largest Positions (proposed)")
	weights := md.TableSet{Header: []string{"Fund", "Value", "Weight", "Liquidity"}}
	for i, w := range after.Weights {
		if i == 10 {
			break
		}
		weights.Rows = append(weights.Rows, []string{
			w.Fund.Name,
			w.Value.String(),
			w.Weight.String(),
			w.Fund.DelayString(),
		})
	}
	doc.Table(weights)

	return doc.String()
}
