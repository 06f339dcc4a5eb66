package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/tradebook"
)

// RealizedMarkdown renders the realized profit and loss per symbol. When
// details is set, every sell is listed with the lots it consumed.
func RealizedMarkdown(history []tradebook.SellOutcome, policy tradebook.MatchingPolicy, details bool, opts Options) string {
	var b strings.Builder
	cur := opts.currency()
	r := tradebook.SumRealized(history)

	fmt.Fprint(&b, "# Realized Gains\n\n")
	fmt.Fprintf(&b, "Method: %s\n\n", strings.ToUpper(policy.String()))

	if len(r.Symbols) == 0 {
		fmt.Fprint(&b, "Nothing sold yet.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Sells | Quantity | Proceeds | Cost | Realized P/L |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, s := range r.Symbols {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s |\n",
			s.Symbol,
			s.Sells,
			s.Quantity,
			s.Proceeds.Format(cur),
			s.CostOfGoodsSold.Format(cur),
			s.RealizedPL.SignedFormat(cur),
		)
	}
	fmt.Fprintf(&b, "| **%s** | | | **%s** | **%s** | **%s** |\n",
		"Total",
		r.Proceeds.Format(cur),
		r.CostOfGoodsSold.Format(cur),
		r.RealizedPL.SignedFormat(cur),
	)

	ConditionalBlock(&b, func(w io.Writer) bool {
		if !details {
			return false
		}
		fmt.Fprint(w, "\n## Sells\n")
		for _, o := range history {
			fmt.Fprintf(w, "\n### %s %s %s @ %s\n\n", o.Date, o.Symbol, o.Quantity, o.Price.Format(cur))
			fmt.Fprintf(w, "Proceeds %s, cost %s, realized %s.\n\n",
				o.Proceeds.Format(cur), o.CostOfGoodsSold.Format(cur), o.RealizedPL.SignedFormat(cur))
			fmt.Fprintln(w, "| Lot Date | Quantity | Unit Cost | Cost |")
			fmt.Fprintln(w, "|:---|---:|---:|---:|")
			for _, f := range o.Fragments {
				fmt.Fprintf(w, "| %s | %s | %s | %s |\n", f.LotDate, f.Quantity, f.UnitCost.Format(cur), f.Cost.Format(cur))
			}
		}
		return len(history) > 0
	})
	return b.String()
}
