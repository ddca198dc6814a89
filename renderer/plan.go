// Package renderer turns simulation results into markdown reports for
// terminal display.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	simulador "github.com/romulocorcinotag/simulador-realocacao"
)

// PlanMarkdown renders the transition plan: the ordered movements with
// their settlement paths, any unfunded residuals, and the adherence gap
// table.
func PlanMarkdown(p *simulador.Plan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Transition Plan starting %s", p.Start))

	if len(p.Events) == 0 {
		doc.PlainText("The portfolio already matches the target: nothing to trade.")
	} else {
		table := md.TableSet{
			Header: []string{"#", "Operation", "Fund", "Amount", "D+", "Trade", "Settle"},
		}
		for i, e := range p.Events {
			delay := e.Fund.DelayString()
			if e.Type == simulador.Investment {
				delay = fmt.Sprintf("D+%d", e.Fund.InvestConversion)
			}
			table.Rows = append(table.Rows, []string{
				fmt.Sprintf("%d", i+1),
				e.Type.String(),
				e.Fund.Name,
				e.Amount.String(),
				delay,
				e.TradeDate.String(),
				e.SettleDate.String(),
			})
		}
		doc.Table(table)
	}

	if len(p.Unfunded) > 0 {
		doc.H2("Unfunded Residuals")
		doc.PlainText("These amounts could not be funded within the scheduling horizon and need manual intervention.")
		table := md.TableSet{Header: []string{"Fund", "Residual"}}
		for _, r := range p.Unfunded {
			table.Rows = append(table.Rows, []string{r.Fund.Name, r.Amount.String()})
		}
		doc.Table(table)
	}

	doc.H2("Adherence to Model")
	adherence := md.TableSet{
		Header: []string{"Fund", "Current", "Target", "Gap (p.p.)", "Gap", "Action"},
	}
	for _, row := range p.Adherence {
		adherence.Rows = append(adherence.Rows, []string{
			row.Fund.Name,
			row.Current.String(),
			row.Target.String(),
			row.GapPP.SignedString(),
			row.Gap.SignedString(),
			row.Action,
		})
	}
	doc.Table(adherence)

	return doc.String()
}
