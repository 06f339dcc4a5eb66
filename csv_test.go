package tradebook

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func csvLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger(FIFO)
	mustRecord(t, l,
		buy("2025-01-02", "AAPL", 10, 100, 1),
		sell("2025-01-03", "AAPL", 4, 120, 0),
	)
	return l
}

func TestExportTradesCSV(t *testing.T) {
	var sb strings.Builder
	if err := ExportTradesCSV(&sb, csvLedger(t)); err != nil {
		t.Fatalf("ExportTradesCSV() error = %v", err)
	}
	want := `Date,Symbol,Side,Quantity,Price,Fees,AvgCost,RealizedPL
2025-01-02,AAPL,buy,10,100,1,100.1,
2025-01-03,AAPL,sell,4,120,0,100.1,79.6
`
	if got := sb.String(); got != want {
		t.Errorf("ExportTradesCSV() got\n%s\nwant\n%s", got, want)
	}
}

func TestExportSummaryCSV(t *testing.T) {
	summaries := Summarize(csvLedger(t), map[string]Money{"AAPL": M(110)})
	var sb strings.Builder
	if err := ExportSummaryCSV(&sb, summaries); err != nil {
		t.Fatalf("ExportSummaryCSV() error = %v", err)
	}
	want := `Symbol,Quantity,AvgCost,Invested,MarkPrice,CurrentValue,UnrealizedPL
AAPL,6,100.1,600.6,110,660,59.4
`
	if got := sb.String(); got != want {
		t.Errorf("ExportSummaryCSV() got\n%s\nwant\n%s", got, want)
	}
}

func TestImportTradesCSV(t *testing.T) {
	t.Run("exported trades", func(t *testing.T) {
		var sb strings.Builder
		if err := ExportTradesCSV(&sb, csvLedger(t)); err != nil {
			t.Fatalf("ExportTradesCSV() error = %v", err)
		}
		events, err := ImportTradesCSV(strings.NewReader(sb.String()))
		if err != nil {
			t.Fatalf("ImportTradesCSV() error = %v", err)
		}
		want := csvLedger(t).Events()
		if diff := cmp.Diff(want, events, decimalComparers); diff != "" {
			t.Errorf("ImportTradesCSV() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("any column order", func(t *testing.T) {
		input := `side, SYMBOL ,quantity,price,date,note,id,broker
Sell,aapl,2,10.5,2025-03-01,rebalance,x1,ACME
`
		events, err := ImportTradesCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ImportTradesCSV() error = %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("len(ImportTradesCSV()) = %d, want 1", len(events))
		}
		e := events[0]
		if e.Side != Sell || e.Symbol != "aapl" || e.Note != "rebalance" || e.ID != "x1" {
			t.Errorf("ImportTradesCSV() = %+v", e)
		}
		assertMoney(t, "Price", e.Price, M(10.5))
		assertMoney(t, "Fees", e.Fees, M(0))
	})

	t.Run("missing column", func(t *testing.T) {
		input := "date,symbol,side,quantity\n2025-03-01,AAPL,buy,1\n"
		_, err := ImportTradesCSV(strings.NewReader(input))
		if err == nil || !strings.Contains(err.Error(), "price") {
			t.Errorf("ImportTradesCSV() error = %v, want a missing price column", err)
		}
	})

	t.Run("invalid row", func(t *testing.T) {
		input := "date,symbol,side,quantity,price\n2025-03-01,AAPL,buy,1,1\n2025-03-02,AAPL,buy,lots,1\n"
		_, err := ImportTradesCSV(strings.NewReader(input))
		if err == nil || !strings.Contains(err.Error(), "line 3") {
			t.Errorf("ImportTradesCSV() error = %v, want it to mention line 3", err)
		}
	})
}
