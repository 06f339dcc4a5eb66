package tradebook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/tradebook/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON writes the event with a stable key order. Zero fees and empty
// notes or IDs are omitted.
func (e TradeEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", e.Date)
	w.Append("side", e.Side)
	w.Append("symbol", e.Symbol)
	w.Append("quantity", e.Quantity)
	w.Append("price", e.Price)
	w.Optional("fees", e.Fees)
	w.Optional("note", e.Note)
	w.Optional("id", e.ID)
	return w.MarshalJSON()
}

// UnmarshalJSON reads an event written by MarshalJSON.
func (e *TradeEvent) UnmarshalJSON(data []byte) error {
	var temp struct {
		Date     date.Date `json:"date"`
		Side     Side      `json:"side"`
		Symbol   string    `json:"symbol"`
		Quantity Quantity  `json:"quantity"`
		Price    Money     `json:"price"`
		Fees     Money     `json:"fees"`
		Note     string    `json:"note"`
		ID       string    `json:"id"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*e = TradeEvent{
		ID:       temp.ID,
		Date:     temp.Date,
		Symbol:   temp.Symbol,
		Side:     temp.Side,
		Quantity: temp.Quantity,
		Price:    temp.Price,
		Fees:     temp.Fees,
		Note:     temp.Note,
	}
	return nil
}

// DecodeEvents decodes trade events from a stream of JSONL data, one event
// per line, in file order. Empty lines are skipped.
func DecodeEvents(r io.Reader) ([]TradeEvent, error) {
	var events []TradeEvent
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var e TradeEvent
		if err := json.Unmarshal(lineBytes, &e); err != nil {
			return nil, fmt.Errorf("could not decode event on line %d %q: %w", line, string(lineBytes), err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return events, nil
}

// EncodeEvent marshals a single event to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeEvent(w io.Writer, e TradeEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// EncodeEvents writes events in JSONL format, in the given order.
func EncodeEvents(w io.Writer, events []TradeEvent) error {
	for _, e := range events {
		if err := EncodeEvent(w, e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger decodes a JSONL journal and replays it into a new Ledger.
func DecodeLedger(r io.Reader, policy MatchingPolicy) (*Ledger, error) {
	events, err := DecodeEvents(r)
	if err != nil {
		return nil, err
	}
	return Replay(policy, events)
}
