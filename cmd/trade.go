package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/date"
	"github.com/etnz/tradebook/renderer"
	"github.com/google/subcommands"
)

// tradeFlags are the flags shared by buy and sell.
type tradeFlags struct {
	date     string
	symbol   string
	quantity string
	price    string
	fees     string
	note     string
}

func (c *tradeFlags) setFlags(f *flag.FlagSet, quantityUsage string) {
	f.StringVar(&c.date, "d", date.Today().String(), "Trade date. See the user manual for supported date formats.")
	f.StringVar(&c.symbol, "s", "", "Ticker symbol")
	f.StringVar(&c.quantity, "q", "", quantityUsage)
	f.StringVar(&c.price, "p", "", "Price per share")
	f.StringVar(&c.fees, "fees", "0", "Total fees paid for the trade")
	f.StringVar(&c.note, "m", "", "An optional note for the trade")
}

// event parses the flags into a new event. held is used when the quantity is "all".
func (c *tradeFlags) event(side tradebook.Side, held func(symbol string) tradebook.Quantity) (tradebook.TradeEvent, error) {
	e := tradebook.TradeEvent{ID: tradebook.NewEventID(), Side: side, Symbol: tradebook.NormalizeSymbol(c.symbol), Note: c.note}
	var err error
	if e.Date, err = date.Parse(c.date); err != nil {
		return e, fmt.Errorf("invalid date: %w", err)
	}
	if e.Symbol == "" {
		return e, fmt.Errorf("missing symbol")
	}
	if c.price == "" {
		return e, fmt.Errorf("missing price")
	}
	if e.Price, err = tradebook.ParseMoney(c.price); err != nil {
		return e, fmt.Errorf("invalid price %q: %w", c.price, err)
	}
	if e.Fees, err = tradebook.ParseMoney(c.fees); err != nil {
		return e, fmt.Errorf("invalid fees %q: %w", c.fees, err)
	}
	switch {
	case c.quantity == "":
		return e, fmt.Errorf("missing quantity")
	case held != nil && strings.EqualFold(c.quantity, "all"):
		e.Quantity = held(c.symbol)
	default:
		if e.Quantity, err = tradebook.ParseQuantity(c.quantity); err != nil {
			return e, fmt.Errorf("invalid quantity %q: %w", c.quantity, err)
		}
	}
	return e, e.Validate()
}

// --- Buy Command ---

type buyCmd struct {
	tradeFlags
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares, opening a new lot" }
func (*buyCmd) Usage() string {
	return `tbk buy [-d <date>] -s <symbol> -q <quantity> -p <price> [-fees <fees>] [-m <note>]

  Records a purchase. Each buy opens a lot whose cost includes the fees.
  A back-dated buy is inserted at its place and later sells are matched again.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f, "Number of shares")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}
	e, err := c.event(tradebook.Buy, nil)
	if err != nil {
		return usagef(f, "%v", err)
	}
	l, err := decodeLedger(cfg)
	if err != nil {
		return failf("%v", err)
	}
	if _, err := recordEvent(cfg, l, e); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintln(output, renderer.Trade(e, cfg.Options()))
	return subcommands.ExitSuccess
}

// --- Sell Command ---

type sellCmd struct {
	tradeFlags
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares out of existing lots" }
func (*sellCmd) Usage() string {
	return `tbk sell [-d <date>] -s <symbol> -q <quantity|all> -p <price> [-fees <fees>] [-m <note>]

  Records a sale. Lots are consumed in the configured matching method order
  and the realized profit or loss is printed. Selling more than held fails.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f, `Number of shares, or "all" to close the position`)
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}
	l, err := decodeLedger(cfg)
	if err != nil {
		return failf("%v", err)
	}
	held := func(symbol string) tradebook.Quantity { return l.Position(symbol).Quantity }
	e, err := c.event(tradebook.Sell, held)
	if err != nil {
		return usagef(f, "%v", err)
	}
	outcome, err := recordEvent(cfg, l, e)
	if err != nil {
		return failf("%v", err)
	}
	opts := cfg.Options()
	fmt.Fprintln(output, renderer.Trade(e, opts))
	if outcome != nil {
		fmt.Fprintf(output, "Realized P/L: %s\n", outcome.RealizedPL.SignedFormat(opts.Currency))
	}
	return subcommands.ExitSuccess
}
