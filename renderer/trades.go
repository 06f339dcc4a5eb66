package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tradebook"
	md "github.com/nao1215/markdown"
)

// Trade renders a trade event to a one line sentence.
func Trade(e tradebook.TradeEvent, opts Options) string {
	cur := opts.currency()
	var s string
	switch e.Side {
	case tradebook.Buy:
		s = fmt.Sprintf("Bought %s %s at %s", e.Quantity, e.Symbol, e.Price.Format(cur))
	case tradebook.Sell:
		s = fmt.Sprintf("Sold %s %s at %s", e.Quantity, e.Symbol, e.Price.Format(cur))
	default:
		return e.String()
	}
	if !e.Fees.IsZero() {
		s += fmt.Sprintf(" with %s of fees", e.Fees.Format(cur))
	}
	return s + " on " + e.Date.String()
}

// TradesMarkdown renders the ledger events in order, with the realized
// profit or loss of each sell.
func TradesMarkdown(l *tradebook.Ledger, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := opts.currency()

	events := l.Events()
	doc.H1("Trades")
	if len(events) == 0 {
		doc.PlainText("No trade.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Date", "Side", "Symbol", "Quantity", "Price", "Fees", "Realized P/L", "ID", "Note"},
		Rows:   [][]string{},
	}
	// Outcomes are in the order of the sell events.
	outcomes := l.RealizedHistory()
	for _, e := range events {
		realized := ""
		if e.Side == tradebook.Sell && len(outcomes) > 0 {
			realized = outcomes[0].RealizedPL.SignedFormat(cur)
			outcomes = outcomes[1:]
		}
		table.Rows = append(table.Rows, []string{
			e.Date.String(),
			e.Side.String(),
			e.Symbol,
			e.Quantity.String(),
			e.Price.Format(cur),
			e.Fees.Format(cur),
			realized,
			shortID(e.ID),
			e.Note,
		})
	}
	doc.Table(table)
	return doc.String()
}
