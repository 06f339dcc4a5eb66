package renderer

import (
	"strings"
	"text/template"

	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/date"
)

// LotsView is the data behind the lots report.
type LotsView struct {
	Policy   string
	Currency string
	Symbols  []SymbolLots
}

// SymbolLots lists the lots of one symbol.
type SymbolLots struct {
	Position tradebook.Position
	Lots     []tradebook.Lot
}

// NewLotsView collects the lots of symbols, or of every traded symbol when
// symbols is empty. Exhausted lots are only kept when all is set, and
// symbols without any lot to show are skipped.
func NewLotsView(l *tradebook.Ledger, symbols []string, all bool, opts Options) *LotsView {
	if len(symbols) == 0 {
		symbols = l.Symbols()
	}
	v := &LotsView{Policy: strings.ToUpper(l.Policy().String()), Currency: opts.currency()}
	for _, symbol := range symbols {
		s := SymbolLots{Position: l.Position(symbol)}
		if all {
			s.Lots = l.Lots(symbol)
		} else {
			s.Lots = s.Position.Lots
		}
		if len(s.Lots) == 0 {
			continue
		}
		v.Symbols = append(v.Symbols, s)
	}
	return v
}

// LotsMarkdown renders the lots queue of each symbol.
func LotsMarkdown(v *LotsView) string {
	partials := map[string]string{
		"lots_symbol": "lots_symbol.md",
	}
	funcs := template.FuncMap{
		"money": func(m tradebook.Money) string { return m.Format(v.Currency) },
		"short": shortID,
		"day":   func(d date.Date) string { return d.String() },
	}
	return renderTemplate("lots", "lots.md", partials, funcs, v)
}
