package tradebook

import (
	"testing"

	"github.com/etnz/tradebook/date"
	"github.com/google/go-cmp/cmp"
)

// decimalComparers lets cmp compare exact values by amount.
var decimalComparers = cmp.Options{
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

// buy is a test helper for a buy event on day.
func buy(day, symbol string, quantity, price, fees float64) TradeEvent {
	return NewBuy(date.MustParse(day), symbol, Q(quantity), M(price), M(fees))
}

// sell is a test helper for a sell event on day.
func sell(day, symbol string, quantity, price, fees float64) TradeEvent {
	return NewSell(date.MustParse(day), symbol, Q(quantity), M(price), M(fees))
}

// mustRecord records all events or fails the test.
func mustRecord(t *testing.T, l *Ledger, events ...TradeEvent) []*SellOutcome {
	t.Helper()
	var outcomes []*SellOutcome
	for _, e := range events {
		o, err := l.Record(e)
		if err != nil {
			t.Fatalf("Record(%v) error = %v", e, err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertQuantity(t *testing.T, name string, got, want Quantity) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
