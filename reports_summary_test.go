package tradebook

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize(t *testing.T) {
	l := NewLedger(FIFO)
	mustRecord(t, l,
		buy("2025-01-01", "AAPL", 10, 100, 0),
		buy("2025-01-01", "MSFT", 5, 200, 0),
		buy("2025-01-02", "MSFT", 5, 220, 0),
		sell("2025-01-03", "AAPL", 4, 120, 0),
		buy("2025-01-03", "TSLA", 1, 250, 0),
		sell("2025-01-04", "TSLA", 1, 260, 0),
	)

	got := Summarize(l, map[string]Money{"aapl": M(130)})
	want := []PositionSummary{
		{
			Symbol:       "AAPL",
			Quantity:     Q(6),
			AverageCost:  M(100),
			Invested:     M(600),
			MarkPrice:    M(130),
			MarkSource:   MarkFromMarket,
			CurrentValue: M(780),
			UnrealizedPL: M(180),
		},
		{
			Symbol:       "MSFT",
			Quantity:     Q(10),
			AverageCost:  M(210),
			Invested:     M(2100),
			MarkPrice:    M(220), // most recent lot
			MarkSource:   MarkFromLotCost,
			CurrentValue: M(2200),
			UnrealizedPL: M(100),
		},
	}
	if diff := cmp.Diff(want, got, decimalComparers); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
	if got[0].IsEstimated() || !got[1].IsEstimated() {
		t.Errorf("IsEstimated() = %v, %v, want false, true", got[0].IsEstimated(), got[1].IsEstimated())
	}

	totals := SumTotals(got)
	assertMoney(t, "Totals.Invested", totals.Invested, M(2700))
	assertMoney(t, "Totals.Value", totals.Value, M(2980))
	assertMoney(t, "Totals.UnrealizedPL", totals.UnrealizedPL, M(280))
	if !totals.Estimated {
		t.Errorf("Totals.Estimated = false, want true")
	}
}

func TestSummarize_FallbackFollowsRemainingLots(t *testing.T) {
	l := NewLedger(LIFO)
	mustRecord(t, l,
		buy("2025-01-01", "MSFT", 5, 200, 0),
		buy("2025-01-02", "MSFT", 5, 220, 0),
		sell("2025-01-03", "MSFT", 5, 230, 0),
	)
	got := Summarize(l, nil)
	if len(got) != 1 {
		t.Fatalf("len(Summarize()) = %d, want 1", len(got))
	}
	// The 220 lot is gone, the most recent remaining one is at 200.
	assertMoney(t, "MarkPrice", got[0].MarkPrice, M(200))
	assertMoney(t, "UnrealizedPL", got[0].UnrealizedPL, M(0))
}

func TestSumTotals_Empty(t *testing.T) {
	got := SumTotals(Summarize(NewLedger(FIFO), nil))
	if diff := cmp.Diff(Totals{}, got, decimalComparers); diff != "" {
		t.Errorf("SumTotals() mismatch (-want +got):\n%s", diff)
	}
}
