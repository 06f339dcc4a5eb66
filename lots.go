package tradebook

import (
	"github.com/etnz/tradebook/date"
)

// Lot represents a single purchase of a security, used for cost basis calculations.
//
// Cost is fixed at creation and includes the buy fees. Sells release the
// cost of the shares they consume; an exhausted lot stays in the queue with
// nothing remaining so the history can be audited.
type Lot struct {
	Symbol    string
	Date      date.Date
	EventID   string
	Quantity  Quantity // Quantity acquired by the buy.
	Remaining Quantity
	Cost      Money // Total cost of the lot (quantity * price + fees)
	released  Money // cost already attributed to sells
}

// UnitCost returns the per-share cost basis of the lot, fees included.
func (l Lot) UnitCost() Money { return l.Cost.Div(l.Quantity) }

// RemainingCost returns the cost basis of the shares still held, valued at
// the unit cost so that a partly sold lot keeps the unit cost it was bought at.
func (l Lot) RemainingCost() Money {
	if l.IsExhausted() {
		return Money{}
	}
	return l.UnitCost().Mul(l.Remaining)
}

// IsExhausted reports whether every share of the lot has been sold.
func (l Lot) IsExhausted() bool { return l.Remaining.IsZero() }

// newLot creates the lot opened by a buy event.
func newLot(e TradeEvent) Lot {
	return Lot{
		Symbol:    e.Symbol,
		Date:      e.Date,
		EventID:   e.ID,
		Quantity:  e.Quantity,
		Remaining: e.Quantity,
		Cost:      e.Gross().Add(e.Fees),
	}
}

// take removes q shares from the lot and returns their cost at the unit
// cost. The fragment that exhausts the lot takes exactly the cost not yet
// released instead, so the fragments of a lot always sum up to its Cost.
func (l *Lot) take(q Quantity) Money {
	cost := l.UnitCost().Mul(q)
	if q.Equal(l.Remaining) {
		cost = l.Cost.Sub(l.released)
	}
	l.Remaining = l.Remaining.Sub(q)
	l.released = l.released.Add(cost)
	return cost
}

type lots []Lot

// available returns the number of shares still held across all lots.
func (l lots) available() Quantity {
	var total Quantity
	for _, current := range l {
		total = total.Add(current.Remaining)
	}
	return total
}

// order returns lot indexes in consumption order for the policy.
func (l lots) order(policy MatchingPolicy) []int {
	indexes := make([]int, 0, len(l))
	for i := range l {
		if policy == LIFO {
			i = len(l) - 1 - i
		}
		if !l[i].IsExhausted() {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// sell consumes quantityToSell shares following the policy and returns the
// consumed fragments. The caller must have checked available() first.
func (l lots) sell(policy MatchingPolicy, quantityToSell Quantity) []Fragment {
	var fragments []Fragment
	for _, i := range l.order(policy) {
		if quantityToSell.IsZero() {
			break
		}
		current := &l[i]
		q := quantityToSell.Min(current.Remaining)
		unit := current.UnitCost()
		cost := current.take(q)
		fragments = append(fragments, Fragment{
			Lot:      i,
			LotDate:  current.Date,
			LotEvent: current.EventID,
			Quantity: q,
			UnitCost: unit,
			Cost:     cost,
		})
		quantityToSell = quantityToSell.Sub(q)
	}
	return fragments
}
