package tradebook

import (
	"fmt"
	"slices"
)

// Ledger owns the append-only list of trade events and the lots derived
// from them, one queue per symbol.
//
// Events must be recorded in chronological order. Edits in the past go
// through Replay, Without or Insert, which rebuild a new Ledger from the
// event list. A Ledger is not safe for concurrent use.
type Ledger struct {
	policy   MatchingPolicy
	events   []TradeEvent
	books    map[string]lots // lots by symbol, in creation order
	outcomes []SellOutcome
}

// NewLedger creates an empty ledger consuming lots with policy.
func NewLedger(policy MatchingPolicy) *Ledger {
	return &Ledger{
		policy: policy,
		events: make([]TradeEvent, 0),
		books:  make(map[string]lots),
	}
}

// Replay builds a new ledger by recording events in chronological order.
// The sort is stable, events on the same day keep their relative order.
func Replay(policy MatchingPolicy, events []TradeEvent) (*Ledger, error) {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b TradeEvent) int { return a.Date.Compare(b.Date) })

	l := NewLedger(policy)
	for i, e := range sorted {
		if _, err := l.Record(e); err != nil {
			return nil, fmt.Errorf("replay event #%d (%s): %w", i+1, e, err)
		}
	}
	return l, nil
}

// Policy returns the matching policy of the ledger.
func (l *Ledger) Policy() MatchingPolicy { return l.policy }

// Record validates and applies a trade event.
//
// A buy appends a new lot to the symbol's queue and returns a nil outcome.
// A sell consumes lots following the ledger policy and returns its outcome.
// A failed call leaves the ledger unchanged.
func (l *Ledger) Record(e TradeEvent) (*SellOutcome, error) {
	e = e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if n := len(l.events); n > 0 && e.Date.Before(l.events[n-1].Date) {
		return nil, &OutOfOrderError{Date: e.Date, Last: l.events[n-1].Date}
	}

	book := l.books[e.Symbol]
	switch e.Side {
	case Buy:
		l.books[e.Symbol] = append(book, newLot(e))
		l.events = append(l.events, e)
		return nil, nil
	default: // Sell, Validate rejects anything else.
		if available := book.available(); available.LessThan(e.Quantity) {
			return nil, &InsufficientInventoryError{Symbol: e.Symbol, Requested: e.Quantity, Available: available}
		}
		outcome := newSellOutcome(e, book.sell(l.policy, e.Quantity))
		l.events = append(l.events, e)
		l.outcomes = append(l.outcomes, outcome)
		return &outcome, nil
	}
}

// Position returns the remaining lots of symbol. Unknown or fully sold
// symbols get an empty position.
func (l *Ledger) Position(symbol string) Position {
	symbol = NormalizeSymbol(symbol)
	p := Position{Symbol: symbol}
	for _, current := range l.books[symbol] {
		if current.IsExhausted() {
			continue
		}
		p.Lots = append(p.Lots, current)
		p.Quantity = p.Quantity.Add(current.Remaining)
		p.Cost = p.Cost.Add(current.RemainingCost())
	}
	return p
}

// Lots returns every lot ever opened for symbol, exhausted ones included.
func (l *Ledger) Lots(symbol string) []Lot {
	return slices.Clone(l.books[NormalizeSymbol(symbol)])
}

// Symbols returns all symbols that have been traded, sorted.
func (l *Ledger) Symbols() []string {
	var symbols []string
	for symbol := range l.books {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)
	return symbols
}

// Events returns the recorded events in order.
func (l *Ledger) Events() []TradeEvent {
	return slices.Clone(l.events)
}

// RealizedHistory returns the outcome of every sell, in event order.
func (l *Ledger) RealizedHistory() []SellOutcome {
	return slices.Clone(l.outcomes)
}

// Without rebuilds the ledger without the event identified by id.
func (l *Ledger) Without(id string) (*Ledger, error) {
	i := slices.IndexFunc(l.events, func(e TradeEvent) bool { return e.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, id)
	}
	return Replay(l.policy, slices.Delete(slices.Clone(l.events), i, i+1))
}

// Insert rebuilds the ledger with e added at its chronological place, after
// the events of the same day.
func (l *Ledger) Insert(e TradeEvent) (*Ledger, error) {
	return Replay(l.policy, append(slices.Clone(l.events), e))
}

// Summarize values the open positions, see [Summarize].
func (l *Ledger) Summarize(marks map[string]Money) []PositionSummary {
	return Summarize(l, marks)
}

// Position is the set of remaining lots of a symbol.
type Position struct {
	Symbol   string
	Lots     []Lot // remaining lots, in creation order
	Quantity Quantity
	Cost     Money // remaining cost basis
}

// AverageCost returns the quantity-weighted mean unit cost of the remaining
// lots, or zero when nothing is held. A single lot gives its unit cost.
func (p Position) AverageCost() Money {
	switch {
	case p.Quantity.IsZero():
		return Money{}
	case len(p.Lots) == 1:
		return p.Lots[0].UnitCost()
	}
	return p.Cost.Div(p.Quantity)
}

// IsEmpty reports whether no share is held.
func (p Position) IsEmpty() bool { return p.Quantity.IsZero() }
