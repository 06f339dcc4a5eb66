package tradebook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/tradebook/date"
)

// TradeColumns is the header of the trades CSV export.
var TradeColumns = []string{"Date", "Symbol", "Side", "Quantity", "Price", "Fees", "AvgCost", "RealizedPL"}

// SummaryColumns is the header of the summary CSV export.
var SummaryColumns = []string{"Symbol", "Quantity", "AvgCost", "Invested", "MarkPrice", "CurrentValue", "UnrealizedPL"}

// ExportTradesCSV writes the ledger events as CSV. AvgCost is the average
// cost of the symbol's position right after the event, RealizedPL is only
// set on sells. Amounts are exact, rounding is left to the reader.
func ExportTradesCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TradeColumns); err != nil {
		return err
	}

	// Walk the journal again to get the position after each event.
	running := NewLedger(l.Policy())
	for _, e := range l.Events() {
		outcome, err := running.Record(e)
		if err != nil {
			return fmt.Errorf("cannot export %s: %w", e, err)
		}
		var realized string
		if outcome != nil {
			realized = outcome.RealizedPL.String()
		}
		row := []string{
			e.Date.String(),
			e.Symbol,
			e.Side.String(),
			e.Quantity.String(),
			e.Price.String(),
			e.Fees.String(),
			running.Position(e.Symbol).AverageCost().String(),
			realized,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSummaryCSV writes position summaries as CSV.
func ExportSummaryCSV(w io.Writer, summaries []PositionSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryColumns); err != nil {
		return err
	}
	for _, s := range summaries {
		row := []string{
			s.Symbol,
			s.Quantity.String(),
			s.AverageCost.String(),
			s.Invested.String(),
			s.MarkPrice.String(),
			s.CurrentValue.String(),
			s.UnrealizedPL.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportTradesCSV reads trade events from CSV. The header must contain the
// Date, Symbol, Side, Quantity and Price columns, in any order. Fees, Note
// and ID are optional; other columns, like the exported AvgCost and
// RealizedPL, are ignored. Events are returned in file order, unvalidated.
func ImportTradesCSV(r io.Reader) ([]TradeEvent, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "symbol", "side", "quantity", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", required)
		}
	}
	cr.FieldsPerRecord = len(header)

	field := func(record []string, name string) string {
		if i, ok := cols[name]; ok {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	var events []TradeEvent
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		e, err := parseTradeRecord(func(name string) string { return field(record, name) })
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func parseTradeRecord(field func(string) string) (TradeEvent, error) {
	var e TradeEvent
	var err error
	if e.Date, err = date.Parse(field("date")); err != nil {
		return e, err
	}
	if e.Side, err = ParseSide(field("side")); err != nil {
		return e, err
	}
	if e.Quantity, err = ParseQuantity(field("quantity")); err != nil {
		return e, fmt.Errorf("invalid quantity %q: %w", field("quantity"), err)
	}
	if e.Price, err = ParseMoney(field("price")); err != nil {
		return e, fmt.Errorf("invalid price %q: %w", field("price"), err)
	}
	if fees := field("fees"); fees != "" {
		if e.Fees, err = ParseMoney(fees); err != nil {
			return e, fmt.Errorf("invalid fees %q: %w", fees, err)
		}
	}
	e.Symbol = field("symbol")
	e.Note = field("note")
	e.ID = field("id")
	return e, nil
}
