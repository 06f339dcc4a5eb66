package tradebook

import (
	"fmt"
	"strings"

	"github.com/etnz/tradebook/date"
	"github.com/google/uuid"
)

// Side is the direction of a trade.
type Side int

const (
	// Buy acquires shares and opens a new lot.
	Buy Side = iota + 1
	// Sell disposes of shares held in existing lots.
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses "buy" or "sell", case-insensitive.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, &InvalidTradeEventError{Problems: []string{fmt.Sprintf("unrecognized side %q", s)}}
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	if s != Buy && s != Sell {
		return nil, fmt.Errorf("cannot marshal side %d", int(s))
	}
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Side) UnmarshalJSON(data []byte) error {
	side, err := ParseSide(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// TradeEvent is a single buy or sell, the only source of truth of the ledger.
// Quantity is always a positive magnitude, the direction comes from Side.
type TradeEvent struct {
	ID       string    // ID identifies the event in the journal, it has no accounting effect.
	Date     date.Date // Date orders events; ties are kept in insertion order.
	Symbol   string
	Side     Side
	Quantity Quantity
	Price    Money // Price per share.
	Fees     Money // Fees is the total fee paid for the whole trade.
	Note     string
}

// NewBuy creates a buy event.
func NewBuy(on date.Date, symbol string, quantity Quantity, price, fees Money) TradeEvent {
	return TradeEvent{Date: on, Symbol: symbol, Side: Buy, Quantity: quantity, Price: price, Fees: fees}
}

// NewSell creates a sell event.
func NewSell(on date.Date, symbol string, quantity Quantity, price, fees Money) TradeEvent {
	return TradeEvent{Date: on, Symbol: symbol, Side: Sell, Quantity: quantity, Price: price, Fees: fees}
}

// NewEventID returns a fresh random event ID.
func NewEventID() string { return uuid.NewString() }

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// Gross returns price * quantity.
func (e TradeEvent) Gross() Money { return e.Price.Mul(e.Quantity) }

// Normalize returns a copy of e with its symbol normalized.
func (e TradeEvent) Normalize() TradeEvent {
	e.Symbol = NormalizeSymbol(e.Symbol)
	return e
}

// Validate checks the event fields and returns an *InvalidTradeEventError
// listing every failure.
func (e TradeEvent) Validate() error {
	var problems []string
	if NormalizeSymbol(e.Symbol) == "" {
		problems = append(problems, "symbol is missing")
	}
	if e.Side != Buy && e.Side != Sell {
		problems = append(problems, fmt.Sprintf("unrecognized side %d", int(e.Side)))
	}
	if !e.Quantity.IsPositive() {
		problems = append(problems, fmt.Sprintf("quantity must be positive, got %s", e.Quantity))
	}
	if e.Price.IsNegative() {
		problems = append(problems, fmt.Sprintf("price must not be negative, got %s", e.Price))
	}
	if e.Fees.IsNegative() {
		problems = append(problems, fmt.Sprintf("fees must not be negative, got %s", e.Fees))
	}
	if e.Date.IsZero() {
		problems = append(problems, "date is missing")
	}
	if len(problems) > 0 {
		return &InvalidTradeEventError{Problems: problems}
	}
	return nil
}

func (e TradeEvent) String() string {
	return fmt.Sprintf("%s %s %s %s @ %s", e.Date, e.Side, e.Quantity, e.Symbol, e.Price)
}
