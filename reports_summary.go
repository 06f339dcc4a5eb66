package tradebook

// MarkSource tells where the mark price of a summary comes from.
type MarkSource string

const (
	// MarkFromMarket is a price supplied by the caller.
	MarkFromMarket MarkSource = "market"
	// MarkFromLotCost is the unit cost of the most recent remaining lot, used
	// when no price is supplied. It is an approximation, not a live price.
	MarkFromLotCost MarkSource = "lot-cost"
)

// PositionSummary provides an at-a-glance valuation of one open position.
type PositionSummary struct {
	Symbol       string
	Quantity     Quantity
	AverageCost  Money
	Invested     Money // remaining cost basis, quantity * average cost
	MarkPrice    Money
	MarkSource   MarkSource
	CurrentValue Money // quantity * mark price
	UnrealizedPL Money // current value - invested
}

// IsEstimated reports whether the valuation fell back to the lot cost.
func (s PositionSummary) IsEstimated() bool { return s.MarkSource == MarkFromLotCost }

// Summarize values every open position of the ledger using marks, a price
// per symbol. Symbols are matched case-insensitively.
//
// A symbol without a mark is valued at the unit cost of its most recently
// created remaining lot and flagged with MarkFromLotCost. Fully sold
// symbols are omitted. The result is sorted by symbol.
func Summarize(l *Ledger, marks map[string]Money) []PositionSummary {
	normalized := make(map[string]Money, len(marks))
	for symbol, price := range marks {
		normalized[NormalizeSymbol(symbol)] = price
	}

	var summaries []PositionSummary
	for _, symbol := range l.Symbols() {
		p := l.Position(symbol)
		if p.IsEmpty() {
			continue
		}
		mark, source := normalized[symbol], MarkFromMarket
		if _, ok := normalized[symbol]; !ok {
			mark, source = p.Lots[len(p.Lots)-1].UnitCost(), MarkFromLotCost
		}
		avg := p.AverageCost()
		invested := avg.Mul(p.Quantity)
		value := mark.Mul(p.Quantity)
		summaries = append(summaries, PositionSummary{
			Symbol:       symbol,
			Quantity:     p.Quantity,
			AverageCost:  avg,
			Invested:     invested,
			MarkPrice:    mark,
			MarkSource:   source,
			CurrentValue: value,
			UnrealizedPL: value.Sub(invested),
		})
	}
	return summaries
}

// Totals sums up position summaries.
type Totals struct {
	Invested     Money
	Value        Money
	UnrealizedPL Money
	Estimated    bool // at least one position is valued at lot cost
}

// SumTotals reduces summaries into Totals. It is all zero for no summary.
func SumTotals(summaries []PositionSummary) Totals {
	var t Totals
	for _, s := range summaries {
		t.Invested = t.Invested.Add(s.Invested)
		t.Value = t.Value.Add(s.CurrentValue)
		t.UnrealizedPL = t.UnrealizedPL.Add(s.UnrealizedPL)
		t.Estimated = t.Estimated || s.IsEstimated()
	}
	return t
}
