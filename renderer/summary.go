package renderer

import (
	"bytes"

	"github.com/etnz/tradebook"
	md "github.com/nao1215/markdown"
)

// estimatedNote explains the marker put on marks that are not market prices.
const estimatedNote = `\* no market price, valued at the unit cost of the most recent lot.`

// SummaryMarkdown renders the open positions and their totals.
func SummaryMarkdown(summaries []tradebook.PositionSummary, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := opts.currency()

	doc.H1("Positions")
	if len(summaries) == 0 {
		doc.PlainText("No open position.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Quantity", "Avg Cost", "Invested", "Mark", "Value", "Unrealized P/L"},
		Rows:   [][]string{},
	}
	for _, s := range summaries {
		mark := s.MarkPrice.Format(cur)
		if s.IsEstimated() {
			mark += `\*`
		}
		table.Rows = append(table.Rows, []string{
			s.Symbol,
			s.Quantity.String(),
			s.AverageCost.Format(cur),
			s.Invested.Format(cur),
			mark,
			s.CurrentValue.Format(cur),
			s.UnrealizedPL.SignedFormat(cur),
		})
	}
	totals := tradebook.SumTotals(summaries)
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"),
		"",
		"",
		md.Bold(totals.Invested.Format(cur)),
		"",
		md.Bold(totals.Value.Format(cur)),
		md.Bold(totals.UnrealizedPL.SignedFormat(cur)),
	})
	doc.Table(table)

	if totals.Estimated {
		doc.PlainText(estimatedNote)
	}
	return doc.String()
}
