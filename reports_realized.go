package tradebook

import (
	"slices"
)

// SymbolRealized aggregates the sells of one symbol.
type SymbolRealized struct {
	Symbol          string
	Sells           int
	Quantity        Quantity
	Proceeds        Money
	CostOfGoodsSold Money
	RealizedPL      Money
}

// RealizedSummary aggregates a realized history per symbol.
type RealizedSummary struct {
	Symbols         []SymbolRealized // sorted by symbol
	Proceeds        Money
	CostOfGoodsSold Money
	RealizedPL      Money
}

// SumRealized groups sell outcomes by symbol and totals them.
func SumRealized(history []SellOutcome) RealizedSummary {
	bySymbol := make(map[string]SymbolRealized)
	var r RealizedSummary
	for _, o := range history {
		s := bySymbol[o.Symbol]
		s.Symbol = o.Symbol
		s.Sells++
		s.Quantity = s.Quantity.Add(o.Quantity)
		s.Proceeds = s.Proceeds.Add(o.Proceeds)
		s.CostOfGoodsSold = s.CostOfGoodsSold.Add(o.CostOfGoodsSold)
		s.RealizedPL = s.RealizedPL.Add(o.RealizedPL)
		bySymbol[o.Symbol] = s

		r.Proceeds = r.Proceeds.Add(o.Proceeds)
		r.CostOfGoodsSold = r.CostOfGoodsSold.Add(o.CostOfGoodsSold)
		r.RealizedPL = r.RealizedPL.Add(o.RealizedPL)
	}
	var symbols []string
	for symbol := range bySymbol {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)
	for _, symbol := range symbols {
		r.Symbols = append(r.Symbols, bySymbol[symbol])
	}
	return r
}
