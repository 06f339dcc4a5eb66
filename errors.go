package tradebook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/tradebook/date"
)

var (
	// ErrInvalidTradeEvent is matched by every *InvalidTradeEventError.
	ErrInvalidTradeEvent = errors.New("invalid trade event")
	// ErrInsufficientInventory is matched by every *InsufficientInventoryError.
	ErrInsufficientInventory = errors.New("insufficient inventory")
	// ErrOutOfOrder is matched by every *OutOfOrderError.
	ErrOutOfOrder = errors.New("trade event out of order")
	// ErrUnknownEvent is returned when an edit refers to an event ID that is not in the ledger.
	ErrUnknownEvent = errors.New("unknown trade event")
)

// InvalidTradeEventError reports every problem found in a trade event.
type InvalidTradeEventError struct {
	Problems []string
}

func (e *InvalidTradeEventError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidTradeEvent, strings.Join(e.Problems, "; "))
}

func (e *InvalidTradeEventError) Is(target error) bool { return target == ErrInvalidTradeEvent }

// InsufficientInventoryError is returned when a sell asks for more shares
// than the remaining lots of the symbol hold.
type InsufficientInventoryError struct {
	Symbol    string
	Requested Quantity
	Available Quantity
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("%s: cannot sell %s %s, only %s held", ErrInsufficientInventory, e.Requested, e.Symbol, e.Available)
}

func (e *InsufficientInventoryError) Is(target error) bool { return target == ErrInsufficientInventory }

// Shortfall returns the quantity missing to fulfill the sell.
func (e *InsufficientInventoryError) Shortfall() Quantity { return e.Requested.Sub(e.Available) }

// OutOfOrderError is returned when an event is dated before the last recorded one.
// Such edits must go through Replay.
type OutOfOrderError struct {
	Date, Last date.Date
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("%s: event on %s recorded after %s, use replay to insert it", ErrOutOfOrder, e.Date, e.Last)
}

func (e *OutOfOrderError) Is(target error) bool { return target == ErrOutOfOrder }
